package walker

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/loci-cli/internal/core/domain"
	"github.com/custodia-labs/loci-cli/internal/core/ports/driven"
)

// Ensure Watcher implements the interface.
var _ driven.ChangeNotifier = (*Watcher)(nil)

// dedupeWindow suppresses repeat notifications for the same path.
// Editors commonly fire several write events per save.
const dedupeWindow = 2 * time.Second

// dedupe tracks recently notified paths. Stale entries are evicted on
// every consultation, so the map stays bounded by the number of paths
// changed within one window.
type dedupe struct {
	window time.Duration
	recent map[string]time.Time
}

func newDedupe(window time.Duration) *dedupe {
	return &dedupe{
		window: window,
		recent: make(map[string]time.Time),
	}
}

// allow reports whether path should be notified at now, recording it
// when it should.
func (d *dedupe) allow(path string, now time.Time) bool {
	for p, ts := range d.recent {
		if now.Sub(ts) >= d.window {
			delete(d.recent, p)
		}
	}
	if last, seen := d.recent[path]; seen && now.Sub(last) < d.window {
		return false
	}
	d.recent[path] = now
	return true
}

// Watcher streams the paths of files created or modified beneath a set
// of roots. Hidden entries follow the same policy as traversal: with
// includeHidden false, hidden directories are never watched and events
// for hidden files are dropped.
type Watcher struct {
	fsw           *fsnotify.Watcher
	limiter       *rate.Limiter
	includeHidden bool
}

// NewWatcher creates a watcher covering every directory beneath the
// given roots. New directories are picked up as they appear.
func NewWatcher(roots []string, includeHidden bool) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsw: fsw,
		// Event bursts are smoothed rather than dropped; 100 events/s
		// is far above what a human-driven tree produces.
		limiter:       rate.NewLimiter(rate.Limit(100), 200),
		includeHidden: includeHidden,
	}

	for _, root := range roots {
		if err := w.watchTree(root); err != nil {
			fsw.Close()
			return nil, err
		}
	}

	return w, nil
}

// watchTree registers root and every non-pruned directory beneath it.
// The root must be watchable; descendants are best effort, matching
// the traversal engine's per-entry failure isolation.
func (w *Watcher) watchTree(root string) error {
	if err := w.fsw.Add(root); err != nil {
		return err
	}

	stack := []string{root}
	for len(stack) > 0 {
		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		listing, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, de := range listing {
			if !de.IsDir() {
				continue
			}
			name := de.Name()
			if domain.IsHidden(name) && !w.includeHidden {
				continue
			}
			sub := filepath.Join(dir, name)
			if err := w.fsw.Add(sub); err == nil {
				stack = append(stack, sub)
			}
		}
	}

	return nil
}

// Events returns the stream of changed file paths. The channel closes
// when ctx is cancelled or the watcher is closed.
func (w *Watcher) Events(ctx context.Context) <-chan string {
	out := make(chan string)

	go func() {
		defer close(out)

		seen := newDedupe(dedupeWindow)

		for {
			select {
			case <-ctx.Done():
				return

			case ev, ok := <-w.fsw.Events:
				if !ok {
					return
				}
				if ev.Op&(fsnotify.Create|fsnotify.Write) == 0 {
					continue
				}
				if err := w.limiter.Wait(ctx); err != nil {
					return
				}

				name := filepath.Base(ev.Name)
				if domain.IsHidden(name) && !w.includeHidden {
					continue
				}

				// A new directory extends the watch instead of
				// producing an event.
				if ev.Op&fsnotify.Create != 0 {
					if info, err := os.Lstat(ev.Name); err == nil && info.IsDir() {
						w.watchTree(ev.Name)
						continue
					}
				}

				if !seen.allow(ev.Name, time.Now()) {
					continue
				}

				select {
				case <-ctx.Done():
					return
				case out <- ev.Name:
				}

			case _, ok := <-w.fsw.Errors:
				if !ok {
					return
				}
				// Watch errors are non-fatal; keep observing the
				// directories that still work.
			}
		}
	}()

	return out
}

// Close releases the underlying watches.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
