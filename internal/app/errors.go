package app

import "errors"

// Validation failures. State is unchanged when one of these is returned.
var (
	ErrEmptyTitle           = errors.New("title is required")
	ErrInvalidAnswer        = errors.New("answer must be yes or no")
	ErrInvalidFile          = errors.New("invalid file")
	ErrParse                = errors.New("could not parse JSON")
	ErrDuplicateResponse    = errors.New("duplicate response rows")
	ErrDuplicateID          = errors.New("duplicate checklist id")
	ErrConfirmationRequired = errors.New("confirmation required")
	ErrUnknownUser          = errors.New("user is not on the roster")
)

// Lookup and permission failures.
var (
	ErrChecklistNotFound = errors.New("checklist not found")
	ErrResponseNotFound  = errors.New("response row not found")
	ErrPermissionDenied  = errors.New("permission denied")
)

// ErrPersist means the mutation was applied in memory but the local cache
// could not be written.
var ErrPersist = errors.New("could not save to local cache")
