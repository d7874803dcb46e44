package convert

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingID is returned when the response carries no group id.
	ErrMissingID = errors.New("missing id")

	// ErrMissingDisplayName is returned when the group has no display name.
	ErrMissingDisplayName = errors.New("missing display name")

	// ErrInvalidResourceName is returned when the display name does not slug
	// into a valid object name.
	ErrInvalidResourceName = errors.New("display name does not produce a valid resource name")
)

// ValidationError is a group level conversion failure.
type ValidationError struct {
	GroupID string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.GroupID == "" {
		return fmt.Sprintf("invalid directory group: %v", e.Err)
	}
	return fmt.Sprintf("invalid directory group %s: %v", e.GroupID, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }
