package driven

import (
	"context"

	"github.com/custodia-labs/loci-cli/internal/core/domain"
)

// Traverser walks one directory tree and streams what it finds.
type Traverser interface {
	// Walk produces a lazy, finite sequence of entries beneath root.
	// The order is deterministic for a fixed filesystem snapshot.
	//
	// When includeHidden is false, hidden entries are skipped and a
	// skipped hidden directory is never descended into. Per-entry
	// failures are sent on the error channel and traversal continues
	// with the next sibling. Both channels close when the walk ends or
	// ctx is cancelled.
	Walk(ctx context.Context, root string, includeHidden bool) (<-chan domain.Entry, <-chan *domain.TraversalError)
}
