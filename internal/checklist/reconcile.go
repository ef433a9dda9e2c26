// Package checklist holds the rules that keep checklists consistent with the
// roster and decide who may edit which response row. Everything here is pure:
// callers own persistence and state.
package checklist

import (
	"github.com/google/uuid"

	"github.com/mmynk/checklists/internal/models"
)

// NewID returns a fresh checklist identifier.
func NewID() string {
	return "l_" + uuid.New().String()
}

// Reconcile returns a copy of c whose Responses hold exactly one row per
// roster member, in roster order.
//
// Existing rows are kept as they are, so answers and notes survive. Missing
// rows are added unanswered with an empty note. When a user has several rows
// the first one wins and the rest are dropped; the number dropped is returned.
// Rows for users outside the roster are moved to Extra, and a roster member's
// row found in Extra is moved back. Reconciling a reconciled checklist
// changes nothing.
func Reconcile(c models.Checklist, roster models.Roster) (models.Checklist, int) {
	users := roster.Users()

	byUser := make(map[string]models.Response, len(c.Responses)+len(c.Extra))
	var order []string
	dropped := 0
	for _, r := range c.Responses {
		if _, seen := byUser[r.User]; seen {
			dropped++
			continue
		}
		byUser[r.User] = r
		order = append(order, r.User)
	}
	for _, r := range c.Extra {
		if _, seen := byUser[r.User]; seen {
			continue
		}
		byUser[r.User] = r
		order = append(order, r.User)
	}

	responses := make([]models.Response, 0, len(users))
	for _, u := range users {
		if r, ok := byUser[u]; ok {
			responses = append(responses, r)
			continue
		}
		responses = append(responses, models.Response{User: u, Answer: models.AnswerNone})
	}

	var extra []models.Response
	for _, u := range order {
		if roster.Contains(u) {
			continue
		}
		extra = append(extra, byUser[u])
	}

	out := c
	out.Responses = responses
	out.Extra = extra
	return out, dropped
}

// ReconcileDocument reconciles every checklist in doc in place. It also
// drops null entries, gives an ID to any checklist without one, and turns a
// missing list into an empty one. It returns the total number of duplicate
// rows dropped.
func ReconcileDocument(doc *models.Document, roster models.Roster) int {
	lists := make([]*models.Checklist, 0, len(doc.Lists))
	dropped := 0
	for _, l := range doc.Lists {
		if l == nil {
			continue
		}
		if l.ID == "" {
			l.ID = NewID()
		}
		reconciled, n := Reconcile(*l, roster)
		*l = reconciled
		dropped += n
		lists = append(lists, l)
	}
	doc.Lists = lists
	return dropped
}

// FindDuplicates returns the users that have more than one row in
// c.Responses, in the order they first appear.
func FindDuplicates(c *models.Checklist) []string {
	counts := make(map[string]int, len(c.Responses))
	var dups []string
	for _, r := range c.Responses {
		counts[r.User]++
		if counts[r.User] == 2 {
			dups = append(dups, r.User)
		}
	}
	return dups
}
