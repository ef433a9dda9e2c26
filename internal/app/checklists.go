package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mmynk/checklists/internal/checklist"
	"github.com/mmynk/checklists/internal/models"
)

// Create adds a checklist authored by the acting user at the top of the list.
// Every roster member starts unanswered with an empty note.
func (a *App) Create(ctx context.Context, title, details string) (*models.Checklist, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		a.reject("create", ErrEmptyTitle)
		return nil, ErrEmptyTitle
	}

	creator := a.ActingUser(ctx)
	if !a.roster.Contains(creator) {
		a.reject("create", ErrUnknownUser, "user", creator)
		return nil, fmt.Errorf("%w: %q", ErrUnknownUser, creator)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.reconcileLocked()

	created, _ := checklist.Reconcile(models.Checklist{
		ID:      checklist.NewID(),
		Title:   title,
		Details: details,
		Creator: creator,
	}, a.roster)
	prev := a.doc.Lists
	a.doc.Lists = append([]*models.Checklist{&created}, a.doc.Lists...)

	if err := a.persist(ctx, "create"); err != nil {
		a.doc.Lists = prev
		return nil, err
	}
	slog.Info("Checklist created", "checklist_id", created.ID, "creator", creator)
	return cloneChecklist(&created), nil
}

// Delete removes the checklist with the given ID. Unknown IDs are a no-op.
func (a *App) Delete(ctx context.Context, id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	kept := make([]*models.Checklist, 0, len(a.doc.Lists))
	for _, l := range a.doc.Lists {
		if l.ID != id {
			kept = append(kept, l)
		}
	}
	if len(kept) == len(a.doc.Lists) {
		slog.Debug("Delete of unknown checklist ignored", "checklist_id", id)
		return nil
	}
	prev := a.doc.Lists
	a.doc.Lists = kept

	if err := a.persist(ctx, "delete"); err != nil {
		a.doc.Lists = prev
		return err
	}
	slog.Info("Checklist deleted", "checklist_id", id)
	return nil
}

// SetAnswer records user's yes/no on a checklist. Only the row's own user may
// answer, and never on a checklist they created.
func (a *App) SetAnswer(ctx context.Context, id, user string, answer models.Answer) (*models.Checklist, error) {
	if answer != models.AnswerYes && answer != models.AnswerNo {
		a.reject("answer", ErrInvalidAnswer, "answer", string(answer))
		return nil, fmt.Errorf("%w: %q", ErrInvalidAnswer, answer)
	}

	return a.updateRow(ctx, "answer", id, user, func(c checklist.Capability, row *models.Response) bool {
		if !c.CanAnswer() {
			return false
		}
		row.Answer = answer
		return true
	})
}

// SetNote replaces user's note on a checklist. The row's own user may edit it,
// including a creator on their own checklist.
func (a *App) SetNote(ctx context.Context, id, user, note string) (*models.Checklist, error) {
	return a.updateRow(ctx, "note", id, user, func(c checklist.Capability, row *models.Response) bool {
		if !c.CanNote() {
			return false
		}
		row.Note = note
		return true
	})
}

// updateRow finds the row, checks the acting user's capability through apply
// and persists when apply accepts the change.
func (a *App) updateRow(ctx context.Context, op, id, user string, apply func(checklist.Capability, *models.Response) bool) (*models.Checklist, error) {
	actor := a.ActingUser(ctx)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.reconcileLocked()

	list := a.doc.Find(id)
	if list == nil {
		a.reject(op, ErrChecklistNotFound, "checklist_id", id)
		return nil, fmt.Errorf("%w: %s", ErrChecklistNotFound, id)
	}
	row := list.Response(user)
	if row == nil {
		a.reject(op, ErrResponseNotFound, "checklist_id", id, "user", user)
		return nil, fmt.Errorf("%w: %s on %s", ErrResponseNotFound, user, id)
	}

	capability := checklist.CapabilityFor(list, *row, actor)
	prev := *row
	if !apply(capability, row) {
		a.reject(op, ErrPermissionDenied, "checklist_id", id, "user", user, "acting_user", actor, "capability", capability.String())
		return nil, fmt.Errorf("%w: %s may not change %s's %s", ErrPermissionDenied, actor, user, op)
	}

	if err := a.persist(ctx, op); err != nil {
		*row = prev
		return nil, err
	}
	slog.Info("Response updated", "operation", op, "checklist_id", id, "user", user)
	return cloneChecklist(list), nil
}

// Clear replaces the document with an empty one. It cannot be undone, so the
// caller must confirm.
func (a *App) Clear(ctx context.Context, confirmed bool) error {
	if !confirmed {
		a.reject("clear", ErrConfirmationRequired)
		return ErrConfirmationRequired
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	prev := a.doc
	a.doc = &models.Document{Lists: []*models.Checklist{}}
	if err := a.persist(ctx, "clear"); err != nil {
		a.doc = prev
		return err
	}
	slog.Info("Document cleared", "lists_removed", len(prev.Lists))
	return nil
}
