package cli

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/loci-cli/internal/adapters/driving/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui <pattern> [directory...]",
	Short: "Browse matches in an interactive terminal UI",
	Long: `Runs the search and streams matches into a scrollable list.

Controls:
  ↑/k, ↓/j - Navigate matches
  q, Esc   - Quit`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	if finderService == nil {
		return errors.New("finder service not configured")
	}

	req, err := buildRequest(cmd, args)
	if err != nil {
		return err
	}

	browser := tui.NewBrowser(finderService, req).WithContext(cmd.Context())

	p := tea.NewProgram(browser, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
