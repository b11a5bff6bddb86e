package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidInput indicates a request failed validation before
	// traversal started: missing root, non-directory root, or a
	// malformed pattern. Fatal - no partial search is attempted.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrWatchUnavailable indicates no change notifier is configured.
	// Watch mode is disabled without one.
	ErrWatchUnavailable = errors.New("watch unavailable")

	// ErrHistoryUnavailable indicates no history store is configured.
	ErrHistoryUnavailable = errors.New("history unavailable")
)

// TraversalError associates a per-entry failure with the path where it
// happened. Permission denials, broken links, entries that vanish
// mid-walk and unreadable content all map here; a TraversalError for
// one subtree never terminates traversal of sibling subtrees.
type TraversalError struct {
	// Path is the file or directory that failed.
	Path string

	// Op names the operation that failed ("read dir", "open", "scan").
	Op string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *TraversalError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying cause for errors.Is/As.
func (e *TraversalError) Unwrap() error {
	return e.Err
}
