package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/storyloom-labs/lorebase/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/storyloom-labs/lorebase/internal/core/domain"
	"github.com/storyloom-labs/lorebase/internal/core/ports/driven"
)

// Store is a unified SQLite-based storage that provides access to
// all metadata store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.lorebase/data/lorebase.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".lorebase", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "lorebase.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// BookStore returns a BookStore interface backed by this store.
func (s *Store) BookStore() driven.BookStore {
	return &bookStore{store: s}
}

// ChunkStore returns a ChunkStore interface backed by this store.
func (s *Store) ChunkStore() driven.ChunkStore {
	return &chunkStore{store: s}
}

// CharacterStore returns a CharacterStore interface backed by this store.
func (s *Store) CharacterStore() driven.CharacterStore {
	return &characterStore{store: s}
}

// ReportStore returns a ReportStore interface backed by this store.
func (s *Store) ReportStore() driven.ReportStore {
	return &reportStore{store: s}
}

// EvaluationStore returns an EvaluationStore interface backed by this store.
func (s *Store) EvaluationStore() driven.EvaluationStore {
	return &evaluationStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Book Store ====================

// bookStore implements driven.BookStore.
type bookStore struct {
	store *Store
}

var _ driven.BookStore = (*bookStore)(nil)

// SaveBook stores or updates a book record.
func (s *bookStore) SaveBook(ctx context.Context, book *domain.Book) error {
	if book.CreatedAt.IsZero() {
		book.CreatedAt = time.Now().UTC()
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO books (id, owner_id, title, author, has_content, chunk_count,
			content_length, active_generation, content_updated_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			owner_id = excluded.owner_id,
			title = excluded.title,
			author = excluded.author,
			has_content = excluded.has_content,
			chunk_count = excluded.chunk_count,
			content_length = excluded.content_length,
			active_generation = excluded.active_generation,
			content_updated_at = excluded.content_updated_at
	`, book.ID, book.OwnerID, book.Title, book.Author, book.HasContent, book.ChunkCount,
		book.ContentLength, book.ActiveGeneration, nullTime(book.ContentUpdatedAt), book.CreatedAt)

	if err != nil {
		return fmt.Errorf("saving book: %w", err)
	}
	return nil
}

// GetBook retrieves a book by ID.
func (s *bookStore) GetBook(ctx context.Context, id string) (*domain.Book, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, owner_id, title, author, has_content, chunk_count,
			content_length, active_generation, content_updated_at, created_at
		FROM books WHERE id = ?
	`, id)

	book, err := scanBook(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning book: %w", err)
	}
	return book, nil
}

// ListBooks returns books owned by the given owner.
func (s *bookStore) ListBooks(ctx context.Context, ownerID string) ([]domain.Book, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, owner_id, title, author, has_content, chunk_count,
			content_length, active_generation, content_updated_at, created_at
		FROM books WHERE owner_id = ?
		ORDER BY created_at
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("querying books: %w", err)
	}
	defer rows.Close()

	var books []domain.Book //nolint:prealloc // size unknown from query
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning book: %w", err)
		}
		books = append(books, *book)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating books: %w", err)
	}

	return books, nil
}

// DeleteBook removes a book. Chunk rows cascade via the foreign key.
func (s *bookStore) DeleteBook(ctx context.Context, id string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM books WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting book: %w", err)
	}
	return nil
}

// UpdateIndexMetadata replaces a book's index metadata. A single UPDATE
// keeps the generation swap atomic.
func (s *bookStore) UpdateIndexMetadata(ctx context.Context, bookID string, meta domain.BookIndexMetadata) error {
	result, err := s.store.db.ExecContext(ctx, `
		UPDATE books SET
			has_content = ?,
			chunk_count = ?,
			content_length = ?,
			active_generation = ?,
			content_updated_at = ?
		WHERE id = ?
	`, meta.HasContent, meta.ChunkCount, meta.ContentLength,
		meta.ActiveGeneration, nullTime(meta.ContentUpdatedAt), bookID)
	if err != nil {
		return fmt.Errorf("updating index metadata: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// scanner abstracts sql.Row and sql.Rows for shared scan helpers.
type scanner interface {
	Scan(dest ...any) error
}

func scanBook(row scanner) (*domain.Book, error) {
	var book domain.Book
	var contentUpdatedAt sql.NullTime
	var createdAt sql.NullTime
	if err := row.Scan(&book.ID, &book.OwnerID, &book.Title, &book.Author,
		&book.HasContent, &book.ChunkCount, &book.ContentLength,
		&book.ActiveGeneration, &contentUpdatedAt, &createdAt); err != nil {
		return nil, err
	}
	if contentUpdatedAt.Valid {
		book.ContentUpdatedAt = contentUpdatedAt.Time
	}
	if createdAt.Valid {
		book.CreatedAt = createdAt.Time
	}
	return &book, nil
}

// ==================== Chunk Store ====================

// chunkStore implements driven.ChunkStore.
type chunkStore struct {
	store *Store
}

var _ driven.ChunkStore = (*chunkStore)(nil)

// SaveChunks stores a batch of chunks.
func (s *chunkStore) SaveChunks(ctx context.Context, chunks []domain.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (id, book_id, generation, chunk_index, content, embedding, word_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing chunk insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, chunk := range chunks {
		if chunk.CreatedAt.IsZero() {
			chunk.CreatedAt = now
		}
		if _, err := stmt.ExecContext(ctx, chunk.ID, chunk.BookID, chunk.Generation,
			chunk.Index, chunk.Content, float32SliceToBytes(chunk.Embedding),
			chunk.WordCount, chunk.CreatedAt); err != nil {
			return fmt.Errorf("inserting chunk %s: %w", chunk.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing chunks: %w", err)
	}
	return nil
}

// GetChunks retrieves all chunks for a book's generation, ordered by index.
func (s *chunkStore) GetChunks(ctx context.Context, bookID, generation string) ([]domain.Chunk, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, book_id, generation, chunk_index, content, embedding, word_count, created_at
		FROM chunks WHERE book_id = ? AND generation = ?
		ORDER BY chunk_index
	`, bookID, generation)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	var chunks []domain.Chunk //nolint:prealloc // size unknown from query
	for rows.Next() {
		var chunk domain.Chunk
		var embedding []byte
		var createdAt sql.NullTime
		if err := rows.Scan(&chunk.ID, &chunk.BookID, &chunk.Generation, &chunk.Index,
			&chunk.Content, &embedding, &chunk.WordCount, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}
		chunk.Embedding = bytesToFloat32Slice(embedding)
		if createdAt.Valid {
			chunk.CreatedAt = createdAt.Time
		}
		chunks = append(chunks, chunk)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
	}

	return chunks, nil
}

// CountChunks returns the number of chunks in a book's generation.
func (s *chunkStore) CountChunks(ctx context.Context, bookID, generation string) (int, error) {
	var count int
	row := s.store.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM chunks WHERE book_id = ? AND generation = ?", bookID, generation)
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("counting chunks: %w", err)
	}
	return count, nil
}

// PruneGenerations removes every generation of a book except the one given.
func (s *chunkStore) PruneGenerations(ctx context.Context, bookID, keep string) error {
	_, err := s.store.db.ExecContext(ctx,
		"DELETE FROM chunks WHERE book_id = ? AND generation != ?", bookID, keep)
	if err != nil {
		return fmt.Errorf("pruning generations: %w", err)
	}
	return nil
}

// DeleteChunks removes all chunks for a book.
func (s *chunkStore) DeleteChunks(ctx context.Context, bookID string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM chunks WHERE book_id = ?", bookID)
	if err != nil {
		return fmt.Errorf("deleting chunks: %w", err)
	}
	return nil
}

// ==================== Character Store ====================

// characterStore implements driven.CharacterStore.
type characterStore struct {
	store *Store
}

var _ driven.CharacterStore = (*characterStore)(nil)

// SaveCharacter stores or updates a character definition.
func (s *characterStore) SaveCharacter(ctx context.Context, def *domain.CharacterDefinition) error {
	knowledgeJSON, err := json.Marshal(def.Knowledge)
	if err != nil {
		return fmt.Errorf("marshalling knowledge: %w", err)
	}

	now := time.Now().UTC()
	if def.CreatedAt.IsZero() {
		def.CreatedAt = now
	}
	def.UpdatedAt = now

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO characters (id, owner_id, book_id, name, role, personality,
			instructions, knowledge, voice, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			owner_id = excluded.owner_id,
			book_id = excluded.book_id,
			name = excluded.name,
			role = excluded.role,
			personality = excluded.personality,
			instructions = excluded.instructions,
			knowledge = excluded.knowledge,
			voice = excluded.voice,
			updated_at = excluded.updated_at
	`, def.ID, def.OwnerID, def.BookID, def.Name, def.Role, def.Personality,
		def.Instructions, string(knowledgeJSON), def.Voice, def.CreatedAt, def.UpdatedAt)

	if err != nil {
		return fmt.Errorf("saving character: %w", err)
	}
	return nil
}

// GetCharacter retrieves a character by ID.
func (s *characterStore) GetCharacter(ctx context.Context, id string) (*domain.CharacterDefinition, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, owner_id, book_id, name, role, personality,
			instructions, knowledge, voice, created_at, updated_at
		FROM characters WHERE id = ?
	`, id)

	def, err := scanCharacter(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning character: %w", err)
	}
	return def, nil
}

// ListCharacters returns characters owned by the given owner.
func (s *characterStore) ListCharacters(ctx context.Context, ownerID string) ([]domain.CharacterDefinition, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, owner_id, book_id, name, role, personality,
			instructions, knowledge, voice, created_at, updated_at
		FROM characters WHERE owner_id = ?
		ORDER BY created_at
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("querying characters: %w", err)
	}
	defer rows.Close()

	var defs []domain.CharacterDefinition //nolint:prealloc // size unknown from query
	for rows.Next() {
		def, err := scanCharacter(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning character: %w", err)
		}
		defs = append(defs, *def)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating characters: %w", err)
	}

	return defs, nil
}

// DeleteCharacter removes a character.
func (s *characterStore) DeleteCharacter(ctx context.Context, id string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM characters WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting character: %w", err)
	}
	return nil
}

func scanCharacter(row scanner) (*domain.CharacterDefinition, error) {
	var def domain.CharacterDefinition
	var knowledgeJSON string
	var createdAt, updatedAt sql.NullTime
	if err := row.Scan(&def.ID, &def.OwnerID, &def.BookID, &def.Name, &def.Role,
		&def.Personality, &def.Instructions, &knowledgeJSON, &def.Voice,
		&createdAt, &updatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(knowledgeJSON), &def.Knowledge); err != nil {
		return nil, fmt.Errorf("unmarshaling knowledge: %w", err)
	}
	if def.Knowledge == nil {
		def.Knowledge = []string{}
	}
	if createdAt.Valid {
		def.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		def.UpdatedAt = updatedAt.Time
	}
	return &def, nil
}

// ==================== Report Store ====================

// reportStore implements driven.ReportStore.
type reportStore struct {
	store *Store
}

var _ driven.ReportStore = (*reportStore)(nil)

// SaveReports stores a batch of judge reports.
func (s *reportStore) SaveReports(ctx context.Context, reports []domain.JudgeReport) error {
	if len(reports) == 0 {
		return nil
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO judge_reports (id, character_id, judge_id, judge_name, results, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing report insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, report := range reports {
		resultsJSON, err := json.Marshal(report.Results)
		if err != nil {
			return fmt.Errorf("marshalling results: %w", err)
		}
		if report.CreatedAt.IsZero() {
			report.CreatedAt = now
		}
		if _, err := stmt.ExecContext(ctx, report.ID, report.CharacterID, report.JudgeID,
			report.JudgeName, string(resultsJSON), report.CreatedAt); err != nil {
			return fmt.Errorf("inserting report %s: %w", report.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing reports: %w", err)
	}
	return nil
}

// ListReports returns all reports for a character, newest first.
func (s *reportStore) ListReports(ctx context.Context, characterID string) ([]domain.JudgeReport, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, character_id, judge_id, judge_name, results, created_at
		FROM judge_reports WHERE character_id = ?
		ORDER BY created_at DESC, rowid DESC
	`, characterID)
	if err != nil {
		return nil, fmt.Errorf("querying reports: %w", err)
	}
	defer rows.Close()

	var reports []domain.JudgeReport //nolint:prealloc // size unknown from query
	for rows.Next() {
		var report domain.JudgeReport
		var resultsJSON string
		var createdAt sql.NullTime
		if err := rows.Scan(&report.ID, &report.CharacterID, &report.JudgeID,
			&report.JudgeName, &resultsJSON, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning report: %w", err)
		}
		if err := json.Unmarshal([]byte(resultsJSON), &report.Results); err != nil {
			return nil, fmt.Errorf("unmarshaling results: %w", err)
		}
		if createdAt.Valid {
			report.CreatedAt = createdAt.Time
		}
		reports = append(reports, report)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating reports: %w", err)
	}

	return reports, nil
}

// DeleteReports removes all reports for a character.
func (s *reportStore) DeleteReports(ctx context.Context, characterID string) error {
	_, err := s.store.db.ExecContext(ctx,
		"DELETE FROM judge_reports WHERE character_id = ?", characterID)
	if err != nil {
		return fmt.Errorf("deleting reports: %w", err)
	}
	return nil
}

// ==================== Evaluation Store ====================

// evaluationStore implements driven.EvaluationStore.
type evaluationStore struct {
	store *Store
}

var _ driven.EvaluationStore = (*evaluationStore)(nil)

// SaveEvaluation stores an evaluation result.
func (s *evaluationStore) SaveEvaluation(ctx context.Context, result *domain.EvaluationResult) error {
	scoresJSON, err := json.Marshal(result.Scores)
	if err != nil {
		return fmt.Errorf("marshalling scores: %w", err)
	}
	suggestionsJSON, err := json.Marshal(result.Suggestions)
	if err != nil {
		return fmt.Errorf("marshalling suggestions: %w", err)
	}

	if result.CreatedAt.IsZero() {
		result.CreatedAt = time.Now().UTC()
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO evaluations (id, character_id, definition_hash, scores,
			total_score, passed, rating, suggestions, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, result.ID, result.CharacterID, result.DefinitionHash, string(scoresJSON),
		result.TotalScore, result.Passed, string(result.Rating), string(suggestionsJSON),
		result.CreatedAt)

	if err != nil {
		return fmt.Errorf("saving evaluation: %w", err)
	}
	return nil
}

// LatestEvaluation returns the most recent result for a character.
// The rowid tiebreak makes same-timestamp inserts resolve to the last
// one stored.
func (s *evaluationStore) LatestEvaluation(ctx context.Context, characterID string) (*domain.EvaluationResult, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, character_id, definition_hash, scores,
			total_score, passed, rating, suggestions, created_at
		FROM evaluations WHERE character_id = ?
		ORDER BY created_at DESC, rowid DESC
		LIMIT 1
	`, characterID)

	result, err := scanEvaluation(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning evaluation: %w", err)
	}
	return result, nil
}

// ListEvaluations returns all results for a character, newest first.
func (s *evaluationStore) ListEvaluations(ctx context.Context, characterID string) ([]domain.EvaluationResult, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, character_id, definition_hash, scores,
			total_score, passed, rating, suggestions, created_at
		FROM evaluations WHERE character_id = ?
		ORDER BY created_at DESC, rowid DESC
	`, characterID)
	if err != nil {
		return nil, fmt.Errorf("querying evaluations: %w", err)
	}
	defer rows.Close()

	var results []domain.EvaluationResult //nolint:prealloc // size unknown from query
	for rows.Next() {
		result, err := scanEvaluation(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning evaluation: %w", err)
		}
		results = append(results, *result)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating evaluations: %w", err)
	}

	return results, nil
}

func scanEvaluation(row scanner) (*domain.EvaluationResult, error) {
	var result domain.EvaluationResult
	var scoresJSON, suggestionsJSON, rating string
	var createdAt sql.NullTime
	if err := row.Scan(&result.ID, &result.CharacterID, &result.DefinitionHash,
		&scoresJSON, &result.TotalScore, &result.Passed, &rating,
		&suggestionsJSON, &createdAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(scoresJSON), &result.Scores); err != nil {
		return nil, fmt.Errorf("unmarshaling scores: %w", err)
	}
	if err := json.Unmarshal([]byte(suggestionsJSON), &result.Suggestions); err != nil {
		return nil, fmt.Errorf("unmarshaling suggestions: %w", err)
	}
	if result.Suggestions == nil {
		result.Suggestions = []string{}
	}
	result.Rating = domain.Rating(rating)
	if createdAt.Valid {
		result.CreatedAt = createdAt.Time
	}
	return &result, nil
}

// ==================== Helpers ====================

// nullTime converts a zero time to a SQL NULL.
func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}

// float32SliceToBytes serialises an embedding vector as little-endian
// IEEE 754 for BLOB storage.
func float32SliceToBytes(floats []float32) []byte {
	if floats == nil {
		return nil
	}
	bytes := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(bytes[i*4:], math.Float32bits(f))
	}
	return bytes
}

// bytesToFloat32Slice deserialises an embedding BLOB back to a vector.
func bytesToFloat32Slice(bytes []byte) []float32 {
	if len(bytes) == 0 {
		return nil
	}
	floats := make([]float32, len(bytes)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(bytes[i*4:]))
	}
	return floats
}
