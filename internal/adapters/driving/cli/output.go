package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/loci-cli/internal/core/domain"
)

// styles holds the lipgloss styles for CLI output. All styles collapse
// to plain text when the output is not a terminal.
type styles struct {
	header lipgloss.Style
	match  lipgloss.Style
	detail lipgloss.Style
	errMsg lipgloss.Style
}

func newStyles(enabled bool) styles {
	if !enabled {
		plain := lipgloss.NewStyle()
		return styles{header: plain, match: plain, detail: plain, errMsg: plain}
	}
	return styles{
		header: lipgloss.NewStyle().Bold(true),
		match:  lipgloss.NewStyle(),
		detail: lipgloss.NewStyle().Faint(true),
		errMsg: lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}
}

// isTerminal reports whether w is an interactive terminal. Piped
// output gets no styling.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// printParams echoes the effective request, mirroring what the engine
// will actually use rather than the raw flag values.
func printParams(cmd *cobra.Command, st styles, req *domain.SearchRequest) {
	cmd.Println(st.header.Render("Search Parameters:"))
	cmd.Printf("  Include pattern: %s\n", req.Include)
	if req.Exclude != nil {
		cmd.Printf("  Exclude pattern: %s\n", req.Exclude)
	} else {
		cmd.Println("  Exclude pattern: None")
	}
	if req.Content != nil {
		cmd.Printf("  Content pattern: %s\n", req.Content)
	} else {
		cmd.Println("  Content pattern: None")
	}
	cmd.Printf("  Include hidden: %t\n", req.IncludeHidden)
	cmd.Println("  Directories searched:")
	for _, root := range req.Roots {
		cmd.Printf("    - %s\n", root)
	}
	cmd.Println()
}

// streamResults prints matches and errors as they arrive, so a slow
// walk shows progress instead of a silent pause. Matches go to stdout,
// errors to stderr; the two streams stay independently consumable.
func streamResults(
	cmd *cobra.Command,
	st styles,
	matches <-chan domain.Match,
	errs <-chan *domain.TraversalError,
) (found, failed int) {
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	for matches != nil || errs != nil {
		select {
		case m, ok := <-matches:
			if !ok {
				matches = nil
				continue
			}
			found++
			if m.Line > 0 {
				fmt.Fprintf(out, "  - %s%s\n",
					st.match.Render(m.Path),
					st.detail.Render(fmt.Sprintf(":%d: %s", m.Line, m.Excerpt)))
			} else {
				fmt.Fprintf(out, "  - %s\n", st.match.Render(m.Path))
			}
		case te, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			failed++
			fmt.Fprintf(errOut, "  %s\n", st.errMsg.Render(te.Error()))
		}
	}
	return found, failed
}

// printJSON collects all matches and emits them as one JSON document.
// Traversal errors still stream to stderr as text so the JSON on
// stdout stays parseable.
func printJSON(
	cmd *cobra.Command,
	st styles,
	matches <-chan domain.Match,
	errs <-chan *domain.TraversalError,
) error {
	errOut := cmd.ErrOrStderr()
	collected := []domain.Match{}

	for matches != nil || errs != nil {
		select {
		case m, ok := <-matches:
			if !ok {
				matches = nil
				continue
			}
			collected = append(collected, m)
		case te, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			fmt.Fprintf(errOut, "  %s\n", st.errMsg.Render(te.Error()))
		}
	}

	data, err := json.MarshalIndent(collected, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal matches: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
