// Package remote provides best-effort mirrors of the checklist document:
// an HTTP document endpoint and a Redis key.
package remote

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mmynk/checklists/internal/storage"
)

// maxDocumentSize caps how much of a remote response is read.
const maxDocumentSize = 10 << 20

// ErrDocumentTooLarge means the remote document exceeds maxDocumentSize.
var ErrDocumentTooLarge = errors.New("remote document too large")

var _ storage.DocumentStore = (*HTTPStore)(nil)

// HTTPStore reads the document with GET and replaces it with PUT on a single
// URL, e.g. http://localhost:8000/data.json served by the docstore binary.
type HTTPStore struct {
	url    string
	client *http.Client
}

// NewHTTPStore creates an HTTPStore for url. Each call is bounded by timeout.
func NewHTTPStore(url string, timeout time.Duration) *HTTPStore {
	return &HTTPStore{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// LoadDocument fetches the document. A 404 maps to storage.ErrNotFound.
func (s *HTTPStore) LoadDocument(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch remote document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("remote document %s: %w", s.url, storage.ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("remote store returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read remote document: %w", err)
	}
	if len(body) > maxDocumentSize {
		return nil, fmt.Errorf("%w: over %d bytes", ErrDocumentTooLarge, maxDocumentSize)
	}
	return body, nil
}

// SaveDocument replaces the remote document.
func (s *HTTPStore) SaveDocument(ctx context.Context, data []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, s.url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to put remote document: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("remote store returned status %d", resp.StatusCode)
	}
	return nil
}
