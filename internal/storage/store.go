// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned (optionally wrapped) when nothing is stored under
// the requested key.
var ErrNotFound = errors.New("not found")

// DocumentStore holds one opaque serialized document.
// This abstraction allows swapping storage backends (SQLite, HTTP, Redis)
// without the caller knowing the wire format or transport.
type DocumentStore interface {
	// LoadDocument returns the stored document bytes.
	// Returns ErrNotFound if nothing has been saved yet.
	LoadDocument(ctx context.Context) ([]byte, error)

	// SaveDocument replaces the stored document.
	SaveDocument(ctx context.Context, data []byte) error
}

// PreferenceStore persists small scalar settings, such as the acting user.
type PreferenceStore interface {
	// GetPreference returns the value stored under key.
	// Returns ErrNotFound if the key was never set.
	GetPreference(ctx context.Context, key string) (string, error)

	// SetPreference stores value under key, replacing any previous value.
	SetPreference(ctx context.Context, key, value string) error
}
