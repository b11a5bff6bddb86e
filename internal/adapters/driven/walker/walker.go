// Package walker implements filesystem traversal for Loci.
//
// The walker is the driven.Traverser adapter: it walks one directory
// tree depth-first with an explicit work stack, streams entries over a
// channel, and isolates per-entry failures so one unreadable directory
// never aborts its siblings.
//
// Symlink policy: symlinks are never followed. A symlink to a
// directory is treated as a leaf entry, which rules out traversal
// cycles without bookkeeping.
package walker

import (
	"context"
	"os"
	"path/filepath"

	"github.com/custodia-labs/loci-cli/internal/core/domain"
	"github.com/custodia-labs/loci-cli/internal/core/ports/driven"
)

// Ensure Walker implements the interface.
var _ driven.Traverser = (*Walker)(nil)

// Walker walks directory trees. It is stateless; every Walk starts a
// fresh traversal with its own stack.
type Walker struct{}

// New creates a new Walker.
func New() *Walker {
	return &Walker{}
}

// Walk streams the entries beneath root. Entries within a directory
// arrive in lexical name order and a directory's entries arrive before
// any of its descendants, so the order is deterministic for a fixed
// filesystem snapshot.
func (w *Walker) Walk(ctx context.Context, root string, includeHidden bool) (<-chan domain.Entry, <-chan *domain.TraversalError) {
	entries := make(chan domain.Entry)
	errs := make(chan *domain.TraversalError)

	go func() {
		defer close(entries)
		defer close(errs)
		w.walk(ctx, root, includeHidden, entries, errs)
	}()

	return entries, errs
}

// walk drains an explicit stack of pending directories instead of
// recursing, so very deep trees cannot exhaust the call stack.
func (w *Walker) walk(
	ctx context.Context,
	root string,
	includeHidden bool,
	entries chan<- domain.Entry,
	errs chan<- *domain.TraversalError,
) {
	stack := []string{root}

	for len(stack) > 0 {
		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		listing, err := os.ReadDir(dir)
		if err != nil {
			// Report and move on: the rest of the stack holds this
			// directory's siblings and unrelated subtrees.
			te := &domain.TraversalError{Path: dir, Op: "read dir", Err: err}
			select {
			case <-ctx.Done():
				return
			case errs <- te:
			}
			continue
		}

		// os.ReadDir returns entries sorted by name.
		var subdirs []string
		for _, de := range listing {
			name := de.Name()
			hidden := domain.IsHidden(name)
			if hidden && !includeHidden {
				// Skipping a hidden directory here prunes its whole
				// subtree: it is never pushed onto the stack.
				continue
			}

			// DirEntry type info comes from lstat, so a symlink to a
			// directory reports Dir == false and stays a leaf.
			entry := domain.Entry{
				Path:    filepath.Join(dir, name),
				Name:    name,
				Dir:     de.IsDir(),
				Regular: de.Type().IsRegular(),
				Hidden:  hidden,
			}

			select {
			case <-ctx.Done():
				return
			case entries <- entry:
			}

			if entry.Dir {
				subdirs = append(subdirs, entry.Path)
			}
		}

		// Push in reverse so the lexically first subdirectory pops
		// next.
		for i := len(subdirs) - 1; i >= 0; i-- {
			stack = append(stack, subdirs[i])
		}
	}
}
