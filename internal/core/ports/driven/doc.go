// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - BookStore: Book and index-metadata persistence
//   - ChunkStore: Chunk persistence, keyed by book and generation
//   - CharacterStore: Character definition persistence
//   - ReportStore: Judge report persistence
//   - EvaluationStore: Evaluation result persistence
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - EmbeddingService: Generates vector embeddings. Without it,
//     indexing and grounding search are disabled.
//   - LibraryWatcher: Watches a directory for book file changes.
//     Without it, the watch command is disabled.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
