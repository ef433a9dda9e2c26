package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mmynk/checklists/internal/storage"
)

// GetPreference retrieves a preference by key.
func (s *SQLiteStore) GetPreference(ctx context.Context, key string) (string, error) {
	var value sql.NullString
	err := s.db.QueryRowContext(ctx,
		"SELECT value FROM preferences WHERE key = ?",
		key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("preference %s: %w", key, storage.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("failed to get preference: %w", err)
	}
	if !value.Valid {
		return "", fmt.Errorf("preference %s: %w", key, storage.ErrNotFound)
	}
	return value.String, nil
}

// SetPreference stores a preference, replacing any previous value.
// An empty value clears the preference.
func (s *SQLiteStore) SetPreference(ctx context.Context, key, value string) error {
	var v interface{} = nil
	if value != "" {
		v = value
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO preferences (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, v, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to set preference: %w", err)
	}
	return nil
}
