// Package domain defines the core business entities for Lorebase.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Book: An uploaded book with indexing metadata
//   - Chunk: An embedded slice of book text used for grounding
//   - CharacterDefinition: The behavior-relevant definition of a character
//   - JudgeReport: Per-judge scores produced by the evaluation collaborator
//   - EvaluationResult: The classified outcome of an evaluation run
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
