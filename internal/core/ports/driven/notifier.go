package driven

import "context"

// ChangeNotifier reports files created or modified beneath a set of
// watched roots.
type ChangeNotifier interface {
	// Events returns a channel of paths of changed files. The channel
	// closes when ctx is cancelled or the notifier is closed.
	Events(ctx context.Context) <-chan string

	// Close releases the underlying watches.
	Close() error
}

// NotifierFactory builds a ChangeNotifier for a set of roots under the
// given hidden-entry policy.
type NotifierFactory func(roots []string, includeHidden bool) (ChangeNotifier, error)
