// Package sqlite provides the SQLite-backed local cache: the durable copy of
// the document and the user's preferences.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/checklists/internal/storage"
)

// Ensure SQLiteStore implements the storage contracts
var (
	_ storage.DocumentStore   = (*SQLiteStore)(nil)
	_ storage.PreferenceStore = (*SQLiteStore)(nil)
)

// documentName is the single row holding the checklist document.
const documentName = "checklists"

// SQLiteStore implements storage.DocumentStore and storage.PreferenceStore
// using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One writer at a time; saves are small and sequential.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// LoadDocument returns the cached document bytes.
func (s *SQLiteStore) LoadDocument(ctx context.Context) ([]byte, error) {
	var body []byte
	err := s.db.QueryRowContext(ctx,
		"SELECT body FROM documents WHERE name = ?",
		documentName,
	).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("document %s: %w", documentName, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load document: %w", err)
	}
	return body, nil
}

// SaveDocument replaces the cached document.
func (s *SQLiteStore) SaveDocument(ctx context.Context, data []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO documents (name, body, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`,
		documentName, data, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}
	return nil
}
