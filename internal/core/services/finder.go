package services

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/loci-cli/internal/core/domain"
	"github.com/custodia-labs/loci-cli/internal/core/ports/driven"
	"github.com/custodia-labs/loci-cli/internal/core/ports/driving"
	"github.com/custodia-labs/loci-cli/internal/logger"
)

// Ensure FinderService implements the interface.
var _ driving.Finder = (*FinderService)(nil)

// FinderService composes traversal, the name filter stage and the
// content filter stage into one pull-based pipeline. Each entry is
// fully evaluated before the traverser hands over the next, so peak
// memory is one in-flight entry plus the content stage's buffer.
type FinderService struct {
	traverser driven.Traverser
	notify    driven.NotifierFactory
	history   driven.HistoryStore
	open      opener
}

// NewFinderService creates a new finder service.
func NewFinderService(traverser driven.Traverser) *FinderService {
	return &FinderService{
		traverser: traverser,
		open: func(path string) (io.ReadCloser, error) {
			return os.Open(path)
		},
	}
}

// SetNotifierFactory enables watch mode.
func (s *FinderService) SetNotifierFactory(f driven.NotifierFactory) {
	s.notify = f
}

// SetHistoryStore enables recording of completed runs.
func (s *FinderService) SetHistoryStore(store driven.HistoryStore) {
	s.history = store
}

// SetFileOpener replaces the content stage's file opener. Tests use
// this to count reads and to inject read failures.
func (s *FinderService) SetFileOpener(open func(path string) (io.ReadCloser, error)) {
	s.open = open
}

// Find walks the request's roots in order and streams matches and
// traversal errors. Both channels close when the search finishes or
// ctx is cancelled; callers must drain both.
func (s *FinderService) Find(ctx context.Context, req *domain.SearchRequest) (<-chan domain.Match, <-chan *domain.TraversalError) {
	matches := make(chan domain.Match)
	errs := make(chan *domain.TraversalError)

	go func() {
		defer close(matches)
		defer close(errs)

		logger.Section("Search Execution")
		logger.Debug("Roots: %v", req.Roots)
		logger.Debug("Include: %s", req.Include)
		if req.Exclude != nil {
			logger.Debug("Exclude: %s", req.Exclude)
		}
		if req.Content != nil {
			logger.Debug("Content: %s", req.Content)
		}
		logger.Debug("Include hidden: %t", req.IncludeHidden)

		started := time.Now()
		matched, failed := 0, 0

		for _, root := range req.Roots {
			if ctx.Err() != nil {
				return
			}
			m, f := s.findRoot(ctx, root, req, matches, errs)
			matched += m
			failed += f
			logger.Debug("Root %s done: %d matches, %d errors", root, m, f)
		}

		logger.Info("Search complete: %d matches, %d errors in %s",
			matched, failed, time.Since(started).Round(time.Millisecond))

		if ctx.Err() == nil {
			s.record(ctx, req, matched, failed, started)
		}
	}()

	return matches, errs
}

// findRoot runs one root's traversal through the filter chain.
func (s *FinderService) findRoot(
	ctx context.Context,
	root string,
	req *domain.SearchRequest,
	matches chan<- domain.Match,
	errs chan<- *domain.TraversalError,
) (matched, failed int) {
	entries, walkErrs := s.traverser.Walk(ctx, root, req.IncludeHidden)

	for entries != nil || walkErrs != nil {
		select {
		case <-ctx.Done():
			return matched, failed

		case e, ok := <-entries:
			if !ok {
				entries = nil
				continue
			}
			m, f := s.evaluate(ctx, e, req, matches, errs)
			if m {
				matched++
			}
			if f {
				failed++
			}

		case te, ok := <-walkErrs:
			if !ok {
				walkErrs = nil
				continue
			}
			failed++
			select {
			case <-ctx.Done():
				return matched, failed
			case errs <- te:
			}
		}
	}

	return matched, failed
}

// evaluate runs the filter chain for one entry: regular-file check,
// name stage, then the content stage only for names that passed. The
// content stage is strictly more expensive and must never run for a
// file destined for rejection.
func (s *FinderService) evaluate(
	ctx context.Context,
	e domain.Entry,
	req *domain.SearchRequest,
	matches chan<- domain.Match,
	errs chan<- *domain.TraversalError,
) (matched, failed bool) {
	if !e.Regular {
		// Directories feed descent only; symlinks and other special
		// files are never matches.
		return false, false
	}
	if !matchesName(e.Name, req.Include, req.Exclude) {
		return false, false
	}

	match := domain.Match{Path: e.Path}
	if req.Content != nil {
		m, ok, err := scanContent(e.Path, req.Content, s.open)
		if err != nil {
			te := &domain.TraversalError{Path: e.Path, Op: "scan content", Err: err}
			select {
			case <-ctx.Done():
			case errs <- te:
			}
			return false, true
		}
		if !ok {
			return false, false
		}
		match = m
	}

	select {
	case <-ctx.Done():
		return false, false
	case matches <- match:
		return true, false
	}
}

// Watch streams further matches as files appear or change beneath the
// request's roots. It runs until ctx is cancelled.
func (s *FinderService) Watch(ctx context.Context, req *domain.SearchRequest) (<-chan domain.Match, <-chan *domain.TraversalError, error) {
	if s.notify == nil {
		return nil, nil, domain.ErrWatchUnavailable
	}

	notifier, err := s.notify(req.Roots, req.IncludeHidden)
	if err != nil {
		return nil, nil, err
	}

	matches := make(chan domain.Match)
	errs := make(chan *domain.TraversalError)

	go func() {
		defer close(matches)
		defer close(errs)
		defer notifier.Close()

		logger.Section("Watch")
		logger.Debug("Watching roots: %v", req.Roots)

		events := notifier.Events(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case path, ok := <-events:
				if !ok {
					return
				}
				info, err := os.Lstat(path)
				if err != nil || !info.Mode().IsRegular() {
					// Vanished between event and evaluation, or not a
					// regular file. Not worth reporting.
					continue
				}
				entry := domain.Entry{
					Path:    path,
					Name:    filepath.Base(path),
					Regular: true, // established by the Lstat above
					Hidden:  domain.IsHidden(filepath.Base(path)),
				}
				s.evaluate(ctx, entry, req, matches, errs)
			}
		}
	}()

	return matches, errs, nil
}

// record persists the run to the optional history store.
func (s *FinderService) record(ctx context.Context, req *domain.SearchRequest, matched, failed int, started time.Time) {
	if s.history == nil {
		return
	}

	rec := domain.SearchRecord{
		ID:            uuid.NewString(),
		Roots:         req.Roots,
		Include:       req.Include.String(),
		IncludeHidden: req.IncludeHidden,
		Matches:       matched,
		Errors:        failed,
		StartedAt:     started,
		Duration:      time.Since(started),
	}
	if req.Exclude != nil {
		rec.Exclude = req.Exclude.String()
	}
	if req.Content != nil {
		rec.Content = req.Content.String()
	}

	if err := s.history.Record(ctx, rec); err != nil {
		logger.Warn("Recording search history failed: %v", err)
	}
}
