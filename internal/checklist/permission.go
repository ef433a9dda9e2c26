package checklist

import "github.com/mmynk/checklists/internal/models"

// Capability is what the acting user may change on one response row.
type Capability int

const (
	// CapabilityNone means the row is read-only.
	CapabilityNone Capability = iota
	// CapabilityNoteOnly lets a checklist's creator annotate their own row.
	CapabilityNoteOnly
	// CapabilityAnswerAndNote lets a responder answer and annotate their row.
	CapabilityAnswerAndNote
)

func (c Capability) String() string {
	switch c {
	case CapabilityNoteOnly:
		return "note_only"
	case CapabilityAnswerAndNote:
		return "answer_and_note"
	default:
		return "none"
	}
}

// CanAnswer reports whether the yes/no controls are enabled.
func (c Capability) CanAnswer() bool {
	return c == CapabilityAnswerAndNote
}

// CanNote reports whether the note is editable.
func (c Capability) CanNote() bool {
	return c == CapabilityNoteOnly || c == CapabilityAnswerAndNote
}

// IsCreatorRow reports whether row belongs to the checklist's creator.
// Checklists without a recorded creator have no creator row.
func IsCreatorRow(c *models.Checklist, row models.Response) bool {
	return c.Creator != "" && row.User == c.Creator
}

// CapabilityFor decides what actingUser may change on row of checklist c.
//
// The creator never answers their own question: on their row they may only
// edit the note, and only when they are the acting user. Every other row is
// owned by its user for both answer and note. An acting user who owns no row
// (e.g. someone outside the roster) gets a read-only view.
func CapabilityFor(c *models.Checklist, row models.Response, actingUser string) Capability {
	if actingUser == "" || actingUser != row.User {
		return CapabilityNone
	}
	if IsCreatorRow(c, row) {
		return CapabilityNoteOnly
	}
	return CapabilityAnswerAndNote
}
