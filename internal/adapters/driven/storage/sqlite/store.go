package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/loci-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/loci-cli/internal/core/domain"
	"github.com/custodia-labs/loci-cli/internal/core/ports/driven"
)

// Store is a SQLite-backed database holding Loci's search history.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.loci/data/history.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".loci", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "history.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

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

// HistoryStore returns a HistoryStore interface backed by this store.
func (s *Store) HistoryStore() driven.HistoryStore {
	return &historyStore{store: s}
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

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	// Apply each migration newer than the current version
	for _, name := range upFiles {
		version, err := migrationVersion(name)
		if err != nil {
			return err
		}
		if version <= currentVersion {
			continue
		}

		script, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		tx, err := s.db.Begin()
		if err != nil {
			return fmt.Errorf("beginning migration %s: %w", name, err)
		}
		if _, err := tx.Exec(string(script)); err != nil {
			tx.Rollback()
			return fmt.Errorf("applying migration %s: %w", name, err)
		}
		if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			tx.Rollback()
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration %s: %w", name, err)
		}
	}

	return nil
}

// migrationVersion extracts the numeric prefix of a migration file
// name, e.g. "0001_create_searches.up.sql" -> 1.
func migrationVersion(name string) (int, error) {
	prefix, _, ok := strings.Cut(name, "_")
	if !ok {
		return 0, fmt.Errorf("malformed migration name %q", name)
	}
	version, err := strconv.Atoi(prefix)
	if err != nil {
		return 0, fmt.Errorf("malformed migration version in %q: %w", name, err)
	}
	return version, nil
}

// Ensure historyStore implements the interface.
var _ driven.HistoryStore = (*historyStore)(nil)

// historyStore provides the HistoryStore view of the database.
type historyStore struct {
	store *Store
}

// Record stores one completed run.
func (h *historyStore) Record(ctx context.Context, rec domain.SearchRecord) error {
	roots, err := json.Marshal(rec.Roots)
	if err != nil {
		return fmt.Errorf("marshalling roots: %w", err)
	}

	_, err = h.store.db.ExecContext(ctx, `
		INSERT INTO searches (
			id, roots, include_pattern, exclude_pattern, content_pattern,
			include_hidden, match_count, error_count, started_at, duration_ms
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, string(roots), rec.Include, rec.Exclude, rec.Content,
		rec.IncludeHidden, rec.Matches, rec.Errors,
		rec.StartedAt.UTC(), rec.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("inserting search record: %w", err)
	}
	return nil
}

// List returns the most recent runs, newest first.
func (h *historyStore) List(ctx context.Context, limit int) ([]domain.SearchRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := h.store.db.QueryContext(ctx, `
		SELECT id, roots, include_pattern, exclude_pattern, content_pattern,
		       include_hidden, match_count, error_count, started_at, duration_ms
		FROM searches
		ORDER BY started_at DESC, id
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying search records: %w", err)
	}
	defer rows.Close()

	var records []domain.SearchRecord
	for rows.Next() {
		var rec domain.SearchRecord
		var roots string
		var durationMS int64
		if err := rows.Scan(
			&rec.ID, &roots, &rec.Include, &rec.Exclude, &rec.Content,
			&rec.IncludeHidden, &rec.Matches, &rec.Errors,
			&rec.StartedAt, &durationMS,
		); err != nil {
			return nil, fmt.Errorf("scanning search record: %w", err)
		}
		if err := json.Unmarshal([]byte(roots), &rec.Roots); err != nil {
			return nil, fmt.Errorf("unmarshalling roots: %w", err)
		}
		rec.Duration = time.Duration(durationMS) * time.Millisecond
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating search records: %w", err)
	}

	return records, nil
}

// Clear deletes all recorded runs.
func (h *historyStore) Clear(ctx context.Context) error {
	if _, err := h.store.db.ExecContext(ctx, "DELETE FROM searches"); err != nil {
		return fmt.Errorf("clearing search records: %w", err)
	}
	return nil
}

// Close closes the underlying store.
func (h *historyStore) Close() error {
	return h.store.Close()
}
