// Package tui provides an interactive terminal browser for search
// results built on Bubble Tea.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/loci-cli/internal/core/domain"
	"github.com/custodia-labs/loci-cli/internal/core/ports/driving"
)

// Messages emitted by the result stream. Each one carries at most a
// single event so the Bubble Tea loop stays responsive while the walk
// is still running.
type (
	matchMsg   domain.Match
	walkErrMsg struct {
		err *domain.TraversalError
	}
	matchesClosedMsg struct{}
	errsClosedMsg    struct{}
)

// Browser streams matches from a running search into a navigable list.
type Browser struct {
	styles *Styles
	keymap *KeyMap

	finder driving.Finder
	req    *domain.SearchRequest
	ctx    context.Context

	// Result channels; set to nil once closed so waitForActivity
	// stops selecting on them.
	matches <-chan domain.Match
	errs    <-chan *domain.TraversalError

	items    []domain.Match
	failures []string
	selected int

	width  int
	height int
	ready  bool
	done   bool
}

// NewBrowser creates a browser for the given request. The search does
// not start until the Bubble Tea program calls Init.
func NewBrowser(finder driving.Finder, req *domain.SearchRequest) *Browser {
	return &Browser{
		styles:   DefaultStyles(),
		keymap:   DefaultKeyMap(),
		finder:   finder,
		req:      req,
		ctx:      context.Background(),
		items:    nil,
		failures: nil,
		selected: 0,
		width:    80,
		height:   24,
	}
}

// WithContext sets the context for the search.
func (b *Browser) WithContext(ctx context.Context) *Browser {
	b.ctx = ctx
	return b
}

// Init starts the search and begins consuming its streams.
func (b *Browser) Init() tea.Cmd {
	b.matches, b.errs = b.finder.Find(b.ctx, b.req)
	return waitForActivity(b.matches, b.errs)
}

// waitForActivity returns a command that delivers the next event from
// either stream. A nil channel blocks forever in select, so a closed
// stream simply drops out of the race. Returns nil once both streams
// are exhausted.
func waitForActivity(matches <-chan domain.Match, errs <-chan *domain.TraversalError) tea.Cmd {
	if matches == nil && errs == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case m, ok := <-matches:
			if !ok {
				return matchesClosedMsg{}
			}
			return matchMsg(m)
		case te, ok := <-errs:
			if !ok {
				return errsClosedMsg{}
			}
			return walkErrMsg{err: te}
		}
	}
}

// Update handles messages for the browser.
func (b *Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.height = msg.Height
		b.ready = true
		return b, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, b.keymap.Quit):
			return b, tea.Quit
		case key.Matches(msg, b.keymap.Up):
			b.MoveUp()
		case key.Matches(msg, b.keymap.Down):
			b.MoveDown()
		}
		return b, nil

	case matchMsg:
		b.items = append(b.items, domain.Match(msg))
		return b, waitForActivity(b.matches, b.errs)

	case walkErrMsg:
		b.failures = append(b.failures, msg.err.Error())
		return b, waitForActivity(b.matches, b.errs)

	case matchesClosedMsg:
		b.matches = nil
		b.checkDone()
		return b, waitForActivity(b.matches, b.errs)

	case errsClosedMsg:
		b.errs = nil
		b.checkDone()
		return b, waitForActivity(b.matches, b.errs)
	}

	return b, nil
}

func (b *Browser) checkDone() {
	if b.matches == nil && b.errs == nil {
		b.done = true
	}
}

// View renders the browser.
func (b *Browser) View() string {
	if !b.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 6)

	header := b.styles.Title.Render(fmt.Sprintf("loci: %s", b.req.Include))
	sections = append(sections, header, "")

	sections = append(sections, b.renderList())

	if n := len(b.failures); n > 0 {
		last := b.failures[n-1]
		sections = append(sections, "", b.styles.Error.Render(last))
	}

	sections = append(sections, "", b.renderStatus())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderList renders the visible window of the match list.
func (b *Browser) renderList() string {
	if len(b.items) == 0 {
		if b.done {
			return b.styles.Muted.Render("No files found matching the criteria.")
		}
		return b.styles.Muted.Render("Scanning...")
	}

	// Reserve space for header, error line and status bar. Each match
	// takes one line, two when it carries a content excerpt.
	visibleCount := b.height - 7
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := 0
	if b.selected >= visibleCount {
		start = b.selected - visibleCount + 1
	}
	end := start + visibleCount
	if end > len(b.items) {
		end = len(b.items)
	}

	lines := make([]string, 0, (end-start)*2)
	for i := start; i < end; i++ {
		lines = append(lines, b.renderItem(i, &b.items[i]))
	}
	return strings.Join(lines, "\n")
}

// renderItem formats a single match, with its excerpt when the search
// scanned content.
func (b *Browser) renderItem(index int, m *domain.Match) string {
	indicator := "  "
	if index == b.selected {
		indicator = "> "
	}

	path := m.Path
	maxPathLen := b.width - 4
	if maxPathLen < 10 {
		maxPathLen = 10
	}
	if len(path) > maxPathLen {
		path = "..." + path[len(path)-maxPathLen+3:]
	}

	var line string
	if index == b.selected {
		line = b.styles.Selected.Render(indicator + path)
	} else {
		line = b.styles.Normal.Render(indicator + path)
	}

	if m.Line > 0 {
		excerpt := m.Excerpt
		maxExcerptLen := b.width - 10
		if maxExcerptLen < 20 {
			maxExcerptLen = 20
		}
		if len(excerpt) > maxExcerptLen {
			excerpt = excerpt[:maxExcerptLen-3] + "..."
		}
		line += "\n" + b.styles.Muted.Render(fmt.Sprintf("    %d: %s", m.Line, excerpt))
	}

	return line
}

// renderStatus renders the bottom status bar.
func (b *Browser) renderStatus() string {
	var left string
	switch {
	case !b.done:
		left = fmt.Sprintf("Scanning... %d match(es)", len(b.items))
	case len(b.failures) > 0:
		left = fmt.Sprintf("Done: %d match(es), %d error(s)", len(b.items), len(b.failures))
	default:
		left = fmt.Sprintf("Done: %d match(es)", len(b.items))
	}

	hints := make([]string, 0, 3)
	for _, binding := range b.keymap.ShortHelp() {
		h := binding.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	right := strings.Join(hints, " | ")

	padding := b.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if padding < 1 {
		padding = 1
	}

	return b.styles.StatusBar.Width(b.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

// MoveUp moves selection up.
func (b *Browser) MoveUp() {
	if b.selected > 0 {
		b.selected--
	}
}

// MoveDown moves selection down.
func (b *Browser) MoveDown() {
	if b.selected < len(b.items)-1 {
		b.selected++
	}
}

// Matches returns the matches received so far.
func (b *Browser) Matches() []domain.Match {
	return b.items
}

// Selected returns the index of the selected match.
func (b *Browser) Selected() int {
	return b.selected
}

// SelectedMatch returns the currently selected match, or nil if none.
func (b *Browser) SelectedMatch() *domain.Match {
	if len(b.items) == 0 || b.selected < 0 || b.selected >= len(b.items) {
		return nil
	}
	return &b.items[b.selected]
}

// Done reports whether both result streams have closed.
func (b *Browser) Done() bool {
	return b.done
}
