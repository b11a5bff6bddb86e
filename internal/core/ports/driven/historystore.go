package driven

import (
	"context"

	"github.com/custodia-labs/loci-cli/internal/core/domain"
)

// HistoryStore persists completed search runs.
type HistoryStore interface {
	// Record stores one completed run.
	Record(ctx context.Context, rec domain.SearchRecord) error

	// List returns the most recent runs, newest first, at most limit.
	List(ctx context.Context, limit int) ([]domain.SearchRecord, error)

	// Clear deletes all recorded runs.
	Clear(ctx context.Context) error

	// Close releases resources.
	Close() error
}
