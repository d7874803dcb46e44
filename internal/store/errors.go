package store

import (
	"errors"
	"fmt"
)

// ErrMissingNamespace is returned when a write targets a manager that has no
// namespace. Both kinds are namespaced, so this only happens with a malformed
// object.
var ErrMissingNamespace = errors.New("manager has no namespace")

// ErrOwnedByOtherManager is returned when the AzureGroup to apply is
// controlled by a different manager, typically because two directory groups
// share a display name.
var ErrOwnedByOtherManager = errors.New("azure group is controlled by manager")

// WriteError is a rejected or failed API write.
type WriteError struct {
	Op        string
	Kind      string
	Namespace string
	Name      string
	Err       error
}

func (e *WriteError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("failed to %s %s in %s: %v", e.Op, e.Kind, e.Namespace, e.Err)
	}
	return fmt.Sprintf("failed to %s %s %s/%s: %v", e.Op, e.Kind, e.Namespace, e.Name, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
