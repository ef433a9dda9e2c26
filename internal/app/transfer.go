package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mmynk/checklists/internal/checklist"
	"github.com/mmynk/checklists/internal/models"
)

// ExportFileName is the suggested name for downloaded exports.
const ExportFileName = "checklists-export.json"

// Export returns the current document pretty-printed, exactly as it is held
// in memory.
func (a *App) Export(ctx context.Context) ([]byte, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(a.doc); err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Import replaces the whole document with data. The data is untrusted: it
// must be a JSON object with a "lists" array, no two checklists may share an
// id and no checklist may hold two rows for the same user. Nothing changes
// when validation fails.
// It returns the number of imported checklists.
func (a *App) Import(ctx context.Context, data []byte) (int, error) {
	doc, err := ParseImport(data)
	if err != nil {
		a.reject("import", err)
		return 0, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	checklist.ReconcileDocument(doc, a.roster)
	prev := a.doc
	a.doc = doc
	if err := a.persist(ctx, "import"); err != nil {
		a.doc = prev
		return 0, err
	}
	slog.Info("Document imported", "lists", len(doc.Lists))
	return len(doc.Lists), nil
}

// ParseImport validates and decodes an imported file.
func ParseImport(data []byte) (*models.Document, error) {
	if !json.Valid(data) {
		return nil, ErrParse
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("%w: top level must be an object", ErrInvalidFile)
	}
	raw, ok := top["lists"]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, fmt.Errorf("%w: missing lists", ErrInvalidFile)
	}

	var lists []*models.Checklist
	if err := json.Unmarshal(raw, &lists); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFile, err)
	}

	ids := make(map[string]bool, len(lists))
	for _, l := range lists {
		if l == nil {
			continue
		}
		// Lists without an id get a fresh one on reconcile.
		if l.ID != "" {
			if ids[l.ID] {
				return nil, fmt.Errorf("%w: %q", ErrDuplicateID, l.ID)
			}
			ids[l.ID] = true
		}
		if dups := checklist.FindDuplicates(l); len(dups) > 0 {
			return nil, fmt.Errorf("%w: checklist %q has several rows for %s",
				ErrDuplicateResponse, l.ID, strings.Join(dups, ", "))
		}
	}

	return &models.Document{Lists: lists}, nil
}
