package models

import (
	"encoding/json"
	"fmt"
)

// Answer is the tri-state reply on a response row.
// The zero value means the user has not answered yet.
type Answer string

const (
	AnswerNone Answer = ""
	AnswerYes  Answer = "yes"
	AnswerNo   Answer = "no"
)

// Valid reports whether a is one of the three known states.
func (a Answer) Valid() bool {
	switch a {
	case AnswerNone, AnswerYes, AnswerNo:
		return true
	}
	return false
}

// MarshalJSON encodes AnswerNone as null, matching documents written by
// earlier versions of the tool.
func (a Answer) MarshalJSON() ([]byte, error) {
	if a == AnswerNone {
		return []byte("null"), nil
	}
	return json.Marshal(string(a))
}

// UnmarshalJSON accepts null, "yes" and "no".
func (a *Answer) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*a = AnswerNone
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("answer must be a string or null: %w", err)
	}
	v := Answer(s)
	if v == AnswerNone || !v.Valid() {
		return fmt.Errorf("unknown answer %q", s)
	}
	*a = v
	return nil
}

// Document is the root aggregate that gets persisted and exported.
type Document struct {
	// Lists holds every checklist in display order (newest first).
	Lists []*Checklist `json:"lists"`
}

// Checklist is a question posed by its creator to the rest of the roster.
type Checklist struct {
	// ID is the opaque unique identifier, assigned at creation.
	ID string `json:"id"`

	// Title is the question itself. Never empty for lists created here.
	Title string `json:"title"`

	// Details is optional free text shown under the title.
	Details string `json:"details"`

	// Creator is the roster member who posed the question.
	// Empty for lists created before creators were recorded.
	Creator string `json:"creator,omitempty"`

	// Responses holds one row per roster member, in roster order, once the
	// checklist has been reconciled.
	Responses []Response `json:"responses"`

	// Extra holds rows for users that are not on the current roster.
	// They are kept so a roster change does not lose answers.
	Extra []Response `json:"extraResponses,omitempty"`
}

// Response is one user's answer and note on a checklist.
type Response struct {
	User   string `json:"user"`
	Answer Answer `json:"answer"`
	Note   string `json:"note"`
}

// Find returns the checklist with the given ID, or nil.
func (d *Document) Find(id string) *Checklist {
	for _, l := range d.Lists {
		if l.ID == id {
			return l
		}
	}
	return nil
}

// Response returns a pointer to the first row for user, or nil.
func (c *Checklist) Response(user string) *Response {
	for i := range c.Responses {
		if c.Responses[i].User == user {
			return &c.Responses[i]
		}
	}
	return nil
}
