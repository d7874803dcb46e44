package reconciler

import (
	"errors"
	"time"

	"az-group-manager/internal/convert"
	"az-group-manager/internal/directory"
	"az-group-manager/internal/store"
)

// Classify returns the category of a cycle failure.
func Classify(err error) Category {
	if err == nil {
		return CategoryUnknown
	}

	var validationErr *convert.ValidationError
	if errors.As(err, &validationErr) {
		return CategoryValidation
	}

	var writeErr *store.WriteError
	if errors.Is(err, store.ErrMissingNamespace) || errors.As(err, &writeErr) {
		return CategoryStore
	}

	if directory.IsDirectoryError(err) {
		return CategoryTransport
	}

	return CategoryUnknown
}

// ErrorPolicy returns the delay before a failed cycle is retried. Every
// category is retried on the same short interval, indefinitely.
func ErrorPolicy(_ error, retryInterval time.Duration) time.Duration {
	return retryInterval
}
