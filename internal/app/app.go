// Package app holds the application state: the checklist document, the roster
// and the acting user. Every operation runs to completion under one lock, so
// mutations never interleave.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mmynk/checklists/internal/checklist"
	"github.com/mmynk/checklists/internal/metrics"
	"github.com/mmynk/checklists/internal/models"
	"github.com/mmynk/checklists/internal/storage"
	"github.com/mmynk/checklists/pkg/requestcontext"
)

// actingUserKey is the preference holding the acting user.
const actingUserKey = "acting_user"

// Gateway loads and persists the document.
type Gateway interface {
	Load(ctx context.Context) (*models.Document, string)
	Save(ctx context.Context, doc *models.Document) error
}

// App owns the in-memory document.
type App struct {
	mu      sync.Mutex
	roster  models.Roster
	doc     *models.Document
	gateway Gateway
	prefs   storage.PreferenceStore
	metrics *metrics.Metrics
}

// Open loads the document, reconciles it against the roster and saves the
// normalized result once.
func Open(ctx context.Context, roster models.Roster, gw Gateway, prefs storage.PreferenceStore, m *metrics.Metrics) *App {
	doc, source := gw.Load(ctx)
	if dropped := checklist.ReconcileDocument(doc, roster); dropped > 0 {
		slog.Warn("Dropped duplicate response rows on load", "source", source, "count", dropped)
	}

	a := &App{
		roster:  roster,
		doc:     doc,
		gateway: gw,
		prefs:   prefs,
		metrics: m,
	}

	if err := gw.Save(ctx, doc); err != nil {
		slog.Error("Failed to save document after load", "error", err)
	}
	return a
}

// Roster returns the fixed roster.
func (a *App) Roster() models.Roster {
	return a.roster
}

// ActingUser resolves who is acting: a per-request override first, then the
// stored preference, then the first roster member.
func (a *App) ActingUser(ctx context.Context) string {
	if u := requestcontext.ActingUser(ctx); u != "" {
		return u
	}

	u, err := a.prefs.GetPreference(ctx, actingUserKey)
	if err == nil && u != "" {
		return u
	}
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		slog.Warn("Failed to read acting user preference", "error", err)
	}
	return a.roster.Default()
}

// SetActingUser stores the acting user preference.
func (a *App) SetActingUser(ctx context.Context, user string) error {
	if !a.roster.Contains(user) {
		a.reject("acting_user", ErrUnknownUser, "user", user)
		return fmt.Errorf("%w: %q", ErrUnknownUser, user)
	}
	if err := a.prefs.SetPreference(ctx, actingUserKey, user); err != nil {
		slog.Error("Failed to store acting user", "user", user, "error", err)
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}
	slog.Info("Acting user changed", "user", user)
	a.metrics.IncrementMutation("acting_user")
	return nil
}

// persist saves the document after an accepted mutation. Callers hold a.mu.
func (a *App) persist(ctx context.Context, op string) error {
	if err := a.gateway.Save(ctx, a.doc); err != nil {
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}
	a.metrics.IncrementMutation(op)
	return nil
}

func (a *App) reject(op string, err error, attrs ...any) {
	slog.Warn("Mutation rejected", append([]any{"operation", op, "reason", err.Error()}, attrs...)...)
	a.metrics.IncrementRejected(op)
}

// reconcileLocked keeps every checklist aligned with the roster. Callers hold a.mu.
func (a *App) reconcileLocked() {
	if dropped := checklist.ReconcileDocument(a.doc, a.roster); dropped > 0 {
		slog.Warn("Dropped duplicate response rows", "count", dropped)
	}
}

func cloneChecklist(c *models.Checklist) *models.Checklist {
	out := *c
	out.Responses = append([]models.Response(nil), c.Responses...)
	if c.Extra != nil {
		out.Extra = append([]models.Response(nil), c.Extra...)
	}
	return &out
}
