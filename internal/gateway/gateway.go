// Package gateway implements the persistence gateway: the local cache is the
// source of truth, and a remote store is mirrored on a best-effort basis.
package gateway

//go:generate mockgen -source=gateway.go -destination=mocks/mocks.go -package=mocks Store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mmynk/checklists/internal/metrics"
	"github.com/mmynk/checklists/internal/models"
	"github.com/mmynk/checklists/internal/storage"
)

// Sources a document can be loaded from, in the order they are tried.
const (
	SourceLocal   = "local"
	SourceRemote  = "remote"
	SourceDefault = "default"
	SourceEmpty   = "empty"
)

// Store is an opaque document store. Both the local cache and the remote
// mirror satisfy it.
type Store interface {
	LoadDocument(ctx context.Context) ([]byte, error)
	SaveDocument(ctx context.Context, data []byte) error
}

// Options tune a Gateway.
type Options struct {
	// DefaultPath is the bundled document used when neither store has one.
	DefaultPath string
	// RemoteTimeout bounds each remote call.
	RemoteTimeout time.Duration
}

// Gateway loads and saves the checklist document.
type Gateway struct {
	local   Store
	remote  Store
	opts    Options
	metrics *metrics.Metrics

	wg  sync.WaitGroup
	seq atomic.Uint64

	// remoteMu serializes remote writes; latest is the newest seq attempted.
	remoteMu sync.Mutex
	latest   uint64
}

// New creates a Gateway. remote may be nil to run local-only.
func New(local, remote Store, opts Options, m *metrics.Metrics) *Gateway {
	if opts.RemoteTimeout <= 0 {
		opts.RemoteTimeout = 5 * time.Second
	}
	return &Gateway{
		local:   local,
		remote:  remote,
		opts:    opts,
		metrics: m,
	}
}

// Load returns the document and the source that served it. It tries the local
// cache, then the remote store, then the bundled default document, and finally
// falls back to an empty document. Load never fails: unavailable or corrupt
// sources are logged and skipped.
func (g *Gateway) Load(ctx context.Context) (*models.Document, string) {
	if doc, ok := g.loadFrom(ctx, SourceLocal, g.local); ok {
		return g.loaded(doc, SourceLocal)
	}

	if g.remote != nil {
		rctx, cancel := context.WithTimeout(ctx, g.opts.RemoteTimeout)
		doc, ok := g.loadFrom(rctx, SourceRemote, g.remote)
		cancel()
		if ok {
			return g.loaded(doc, SourceRemote)
		}
	}

	if doc, ok := g.loadDefault(); ok {
		return g.loaded(doc, SourceDefault)
	}

	return g.loaded(&models.Document{Lists: []*models.Checklist{}}, SourceEmpty)
}

func (g *Gateway) loaded(doc *models.Document, source string) (*models.Document, string) {
	slog.Info("Document loaded", "source", source, "lists", len(doc.Lists))
	g.metrics.ObserveLoad(source)
	return doc, source
}

func (g *Gateway) loadFrom(ctx context.Context, source string, store Store) (*models.Document, bool) {
	data, err := store.LoadDocument(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		slog.Debug("No document in store", "source", source)
		return nil, false
	}
	if err != nil {
		slog.Warn("Document store unavailable", "source", source, "error", err)
		return nil, false
	}

	doc, err := Decode(data)
	if err != nil {
		slog.Warn("Ignoring corrupt document", "source", source, "error", err)
		return nil, false
	}
	return doc, true
}

func (g *Gateway) loadDefault() (*models.Document, bool) {
	if g.opts.DefaultPath == "" {
		return nil, false
	}
	data, err := os.ReadFile(g.opts.DefaultPath)
	if errors.Is(err, os.ErrNotExist) {
		slog.Debug("No bundled default document", "path", g.opts.DefaultPath)
		return nil, false
	}
	if err != nil {
		slog.Warn("Failed to read default document", "path", g.opts.DefaultPath, "error", err)
		return nil, false
	}

	doc, err := Decode(data)
	if err != nil {
		slog.Warn("Ignoring corrupt default document", "path", g.opts.DefaultPath, "error", err)
		return nil, false
	}
	return doc, true
}

// Save writes doc to the local cache and then, if a remote store is
// configured, starts a background write to it.
//
// Only the local write is reported. The remote write has no result handle:
// its failure is logged and counted but is never observable by the caller.
// If the local write fails the remote write is not attempted, so the remote
// copy is never fresher than the local one.
func (g *Gateway) Save(ctx context.Context, doc *models.Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	if err := g.local.SaveDocument(ctx, data); err != nil {
		slog.Error("Local cache write failed", "error", err)
		return fmt.Errorf("write local cache: %w", err)
	}

	if g.remote == nil {
		return nil
	}

	seq := g.seq.Add(1)
	g.wg.Add(1)
	go g.pushRemote(context.WithoutCancel(ctx), seq, data)
	return nil
}

// pushRemote writes one snapshot to the remote store. Snapshots older than
// one already attempted are skipped.
func (g *Gateway) pushRemote(ctx context.Context, seq uint64, data []byte) {
	defer g.wg.Done()

	g.remoteMu.Lock()
	defer g.remoteMu.Unlock()

	if seq < g.latest {
		slog.Debug("Skipping stale remote write", "seq", seq, "latest", g.latest)
		g.metrics.ObserveRemoteSave(metrics.ResultSkipped)
		return
	}
	g.latest = seq

	ctx, cancel := context.WithTimeout(ctx, g.opts.RemoteTimeout)
	defer cancel()

	if err := g.remote.SaveDocument(ctx, data); err != nil {
		slog.Warn("Server persistence failed", "seq", seq, "error", err)
		g.metrics.ObserveRemoteSave(metrics.ResultError)
		return
	}
	slog.Debug("Remote document saved", "seq", seq, "bytes", len(data))
	g.metrics.ObserveRemoteSave(metrics.ResultOK)
}

// Close waits for in-flight remote writes.
func (g *Gateway) Close() {
	g.wg.Wait()
}

// Decode parses a stored document. Stored documents are trusted, so only the
// JSON shape is checked here.
func Decode(data []byte) (*models.Document, error) {
	var doc models.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}
