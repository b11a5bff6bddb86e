package driving

import (
	"context"

	"github.com/custodia-labs/loci-cli/internal/core/domain"
)

// Finder runs validated search requests and streams results.
type Finder interface {
	// Find walks the request's roots and streams matches and traversal
	// errors as they are produced. Both channels close when the search
	// completes or ctx is cancelled; the caller must drain both.
	Find(ctx context.Context, req *domain.SearchRequest) (<-chan domain.Match, <-chan *domain.TraversalError)

	// Watch keeps observing the request's roots after an initial scan
	// would have completed, emitting matches for files that appear or
	// change. Runs until ctx is cancelled. Returns
	// domain.ErrWatchUnavailable when no notifier is configured.
	Watch(ctx context.Context, req *domain.SearchRequest) (<-chan domain.Match, <-chan *domain.TraversalError, error)
}
