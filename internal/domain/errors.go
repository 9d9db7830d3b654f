package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyCorpus signals a fit attempt over zero entries.
	ErrEmptyCorpus = errors.New("empty corpus")
	// ErrNotFitted signals a query against an index that was never built.
	ErrNotFitted = errors.New("index not fitted")
	// ErrResourceUnavailable signals a missing linguistic resource.
	ErrResourceUnavailable = errors.New("linguistic resource unavailable")
	// ErrEntryNotFound signals a corpus index outside the loaded corpus.
	ErrEntryNotFound = errors.New("corpus entry not found")
	// ErrHistoryUnavailable signals an unreachable conversation store.
	ErrHistoryUnavailable = errors.New("conversation history unavailable")
	// ErrInvalidEntry signals a corpus entry that fails validation.
	ErrInvalidEntry = errors.New("invalid corpus entry")
)

// OutOfRangeError wraps ErrEntryNotFound with the offending index.
type OutOfRangeError struct {
	Index int
	Size  int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("%s: index %d outside corpus of %d", ErrEntryNotFound.Error(), e.Index, e.Size)
}

func (e *OutOfRangeError) Unwrap() error { return ErrEntryNotFound }

// NewOutOfRange creates an out-of-range corpus access error.
func NewOutOfRange(index, size int) error {
	return &OutOfRangeError{Index: index, Size: size}
}
