package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/roach88/projector/internal/projector"
)

//go:embed schema.sql
var schemaSQL string

// Schema version tracking:
// 1 - entries table
const currentSchemaVersion = 1

// SQLStore keeps the store in a SQLite database, one row per (dir, key).
//
// Directories whose local map is empty have no rows, so they do not survive
// a save/load round trip. They contribute nothing to resolution either way.
type SQLStore struct {
	path   string
	logger *slog.Logger
}

// NewSQLStore returns a SQLStore backed by the database at path.
func NewSQLStore(path string, opts ...Option) *SQLStore {
	o := buildOptions(opts)
	return &SQLStore{path: path, logger: o.logger}
}

// Path returns the database location.
func (s *SQLStore) Path() string {
	return s.path
}

// Load reads every entry, falling back to an empty store.
// The database is opened read-only so a missing file is never created.
func (s *SQLStore) Load(ctx context.Context) projector.Data {
	if _, err := os.Stat(s.path); errors.Is(err, fs.ErrNotExist) {
		s.logger.Debug("store database not found, starting empty", "path", s.path)
		return projector.NewData()
	}

	data, err := s.readAll(ctx)
	if err != nil {
		s.logger.Warn("store database unusable, starting empty", "path", s.path, "error", err)
		return projector.NewData()
	}

	s.logger.Debug("store loaded", "path", s.path, "dirs", data.Len())
	return data
}

func (s *SQLStore) readAll(ctx context.Context) (projector.Data, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=ro", s.path))
	if err != nil {
		return projector.Data{}, fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT dir, key, value FROM entries`)
	if err != nil {
		return projector.Data{}, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	data := projector.NewData()
	for rows.Next() {
		var dir, key, value string
		if err := rows.Scan(&dir, &key, &value); err != nil {
			return projector.Data{}, fmt.Errorf("scan entry: %w", err)
		}
		local := data.Projector[dir]
		if local == nil {
			local = projector.KeyValueMap{}
			data.Projector[dir] = local
		}
		local[key] = value
	}
	if err := rows.Err(); err != nil {
		return projector.Data{}, fmt.Errorf("iterate entries: %w", err)
	}

	return data, nil
}

// Save replaces every row with the contents of data in one transaction.
// The database and its parent directory are created if needed.
func (s *SQLStore) Save(ctx context.Context, data projector.Data) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("save store: create directory: %w", err)
	}

	db, err := openDB(s.path)
	if err != nil {
		return fmt.Errorf("save store: %w", err)
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save store: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	if _, err := tx.ExecContext(ctx, `DELETE FROM entries`); err != nil {
		return fmt.Errorf("save store: clear entries: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO entries (dir, key, value) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("save store: prepare insert: %w", err)
	}
	defer stmt.Close()

	for dir, local := range data.Projector {
		for key, value := range local {
			if _, err := stmt.ExecContext(ctx, dir, key, value); err != nil {
				return fmt.Errorf("save store: insert %s/%s: %w", dir, key, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save store: commit: %w", err)
	}

	s.logger.Debug("store saved", "path", s.path, "dirs", data.Len())
	return nil
}

// openDB opens (creating if necessary) a writable database at path with
// pragmas and schema applied.
func openDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// One invocation, one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return db, nil
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA synchronous = FULL",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

// applySchema creates tables if they don't exist and records the schema
// version. This function is idempotent.
func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("get user_version: %w", err)
	}
	if version > currentSchemaVersion {
		return fmt.Errorf("database schema version %d is newer than supported version %d", version, currentSchemaVersion)
	}

	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}

	return nil
}

// schemaVersion reports the user_version of the database at path.
// Used for testing.
func schemaVersion(path string) (int, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return 0, err
	}
	return version, nil
}
