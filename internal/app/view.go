package app

import (
	"context"

	"github.com/mmynk/checklists/internal/checklist"
	"github.com/mmynk/checklists/internal/models"
)

// View is what a renderer needs to draw the document for the acting user.
type View struct {
	ActingUser string
	Roster     []string
	Checklists []ChecklistView
}

// ChecklistView is one reconciled checklist with per-row capabilities.
type ChecklistView struct {
	ID      string
	Title   string
	Details string
	Creator string
	Rows    []RowView
}

// RowView is one response row as the acting user may interact with it.
type RowView struct {
	models.Response
	IsCreator  bool
	Capability checklist.Capability
}

// View returns every checklist, newest first, with the capability of each
// row for the acting user.
func (a *App) View(ctx context.Context) View {
	actor := a.ActingUser(ctx)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.reconcileLocked()

	v := View{
		ActingUser: actor,
		Roster:     a.roster.Users(),
		Checklists: make([]ChecklistView, 0, len(a.doc.Lists)),
	}
	for _, l := range a.doc.Lists {
		cv := ChecklistView{
			ID:      l.ID,
			Title:   l.Title,
			Details: l.Details,
			Creator: l.Creator,
			Rows:    make([]RowView, 0, len(l.Responses)),
		}
		for _, r := range l.Responses {
			cv.Rows = append(cv.Rows, RowView{
				Response:   r,
				IsCreator:  checklist.IsCreatorRow(l, r),
				Capability: checklist.CapabilityFor(l, r, actor),
			})
		}
		v.Checklists = append(v.Checklists, cv)
	}
	return v
}
