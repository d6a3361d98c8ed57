// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package manifest records converted documents in a SQLite database so batch
// runs can skip sources that have not changed since their last conversion.
package manifest

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/admonish/pkg/types"
)

const dbFile = "manifest.db"

// Store manages the manifest SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the manifest database at cfg.Dir/manifest.db and
// creates the schema if it does not exist.
func Open(cfg types.ManifestConfig) (*Store, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = types.DefaultConfig().Manifest.Dir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating manifest directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			path TEXT PRIMARY KEY,
			output_path TEXT NOT NULL,
			sha256 TEXT NOT NULL,
			admonitions INTEGER NOT NULL DEFAULT 0,
			types TEXT,
			backend TEXT,
			status TEXT NOT NULL,
			converted_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_documents_status ON documents(status)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Lookup returns the record for path. The boolean is false when the path has
// never been recorded.
func (s *Store) Lookup(ctx context.Context, path string) (types.DocumentRecord, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT path, output_path, sha256, admonitions, types, backend, status, converted_at
		 FROM documents WHERE path = ?`, path)

	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return types.DocumentRecord{}, false, nil
	}
	if err != nil {
		return types.DocumentRecord{}, false, fmt.Errorf("looking up %s: %w", path, err)
	}
	return rec, true, nil
}

// Record inserts or replaces the record for rec.Path.
func (s *Store) Record(ctx context.Context, rec types.DocumentRecord) error {
	if rec.ConvertedAt.IsZero() {
		rec.ConvertedAt = time.Now()
	}
	typesJSON, err := json.Marshal(rec.Types)
	if err != nil {
		return fmt.Errorf("encoding types for %s: %w", rec.Path, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO documents (path, output_path, sha256, admonitions, types, backend, status, converted_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET
			output_path=excluded.output_path, sha256=excluded.sha256,
			admonitions=excluded.admonitions, types=excluded.types,
			backend=excluded.backend, status=excluded.status,
			converted_at=excluded.converted_at`,
		rec.Path, rec.OutputPath, rec.SHA256, rec.Admonitions, string(typesJSON),
		string(rec.Backend), string(rec.Status), rec.ConvertedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("recording %s: %w", rec.Path, err)
	}
	return tx.Commit()
}

// List returns every record ordered by path.
func (s *Store) List(ctx context.Context) ([]types.DocumentRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT path, output_path, sha256, admonitions, types, backend, status, converted_at
		 FROM documents ORDER BY path`)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	var records []types.DocumentRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Forget removes the record for path. Removing an unknown path is not an error.
func (s *Store) Forget(ctx context.Context, path string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE path = ?`, path); err != nil {
		return fmt.Errorf("forgetting %s: %w", path, err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (types.DocumentRecord, error) {
	var (
		rec         types.DocumentRecord
		typesJSON   sql.NullString
		backend     sql.NullString
		status      string
		convertedAt string
	)
	if err := row.Scan(&rec.Path, &rec.OutputPath, &rec.SHA256, &rec.Admonitions,
		&typesJSON, &backend, &status, &convertedAt); err != nil {
		return types.DocumentRecord{}, err
	}

	rec.Backend = types.ConversionBackend(backend.String)
	rec.Status = types.ConversionStatus(status)
	if typesJSON.Valid && typesJSON.String != "" && typesJSON.String != "null" {
		if err := json.Unmarshal([]byte(typesJSON.String), &rec.Types); err != nil {
			return types.DocumentRecord{}, fmt.Errorf("decoding types: %w", err)
		}
	}
	if t, err := time.Parse(time.RFC3339Nano, convertedAt); err == nil {
		rec.ConvertedAt = t
	}
	return rec, nil
}
