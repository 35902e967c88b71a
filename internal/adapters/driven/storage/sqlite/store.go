package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/ganzhi/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/ganzhi/internal/core/domain"
	"github.com/custodia-labs/ganzhi/internal/core/ports/driven"
	"github.com/custodia-labs/ganzhi/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.WritableCorpusStore = (*Store)(nil)

var log = logger.Component("sqlite")

// StoredDocument is a persisted corpus document.
type StoredDocument struct {
	ID        string
	Document  domain.Document
	CreatedAt time.Time
}

// Store is a SQLite-backed corpus store.
type Store struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.ganzhi/data/corpus.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".ganzhi", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "corpus.db")

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
		now:  time.Now,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	log.Debug("Opened %s", dbPath)
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

// Describe returns the database file path.
func (s *Store) Describe() string {
	return s.path
}

// Load returns every document in import order.
func (s *Store) Load(ctx context.Context) ([]domain.Document, error) {
	stored, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	docs := make([]domain.Document, len(stored))
	for i := range stored {
		docs[i] = stored[i].Document
	}
	return docs, nil
}

// List returns every stored document with its row identity, in import order.
func (s *Store) List(ctx context.Context) ([]StoredDocument, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, content, source, category, created_at
		FROM documents ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	var docs []StoredDocument
	for rows.Next() {
		var d StoredDocument
		if err := rows.Scan(&d.ID, &d.Document.Content, &d.Document.Source,
			&d.Document.Category, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}
	return docs, nil
}

// Append adds documents after the existing ones in a single transaction.
func (s *Store) Append(ctx context.Context, docs []domain.Document) error {
	if len(docs) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO documents (id, content, source, category, created_at)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	now := s.now().UTC()
	for _, d := range docs {
		if _, err := stmt.ExecContext(ctx, uuid.NewString(), d.Content, d.Source, d.Category, now); err != nil {
			return fmt.Errorf("inserting document: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing documents: %w", err)
	}
	log.Debug("Appended %d documents", len(docs))
	return nil
}

// Delete removes a document by its row identity.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// Remove deletes the document at position in import order.
func (s *Store) Remove(ctx context.Context, position int) error {
	if position < 0 {
		return fmt.Errorf("document %d: %w", position, domain.ErrNotFound)
	}

	var id string
	err := s.db.QueryRowContext(ctx,
		"SELECT id FROM documents ORDER BY position LIMIT 1 OFFSET ?", position).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("document %d: %w", position, domain.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("finding document %d: %w", position, err)
	}
	return s.Delete(ctx, id)
}

// Count returns the number of stored documents.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM documents").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting documents: %w", err)
	}
	return n, nil
}

// Seed appends docs only when the store is empty.
// It reports whether anything was written.
func (s *Store) Seed(ctx context.Context, docs []domain.Document) (bool, error) {
	n, err := s.Count(ctx)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}
	if err := s.Append(ctx, docs); err != nil {
		return false, err
	}
	return len(docs) > 0, nil
}

// migrate runs all pending up migrations in version order.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_corpus.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if err := s.apply(version, string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		log.Debug("Applied migration %s", name)
	}

	return nil
}

// apply runs one migration and records its version atomically.
func (s *Store) apply(version int, script string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(script); err != nil {
		return errors.Join(err, tx.Rollback())
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
		return errors.Join(err, tx.Rollback())
	}
	return tx.Commit()
}
