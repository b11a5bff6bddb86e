package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/loci-cli/internal/core/domain"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent searches",
	Long: `Lists recently completed searches with their parameters and result
counts. Matches themselves are never stored.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all recorded searches",
	Args:  cobra.NoArgs,
	RunE:  runHistoryClear,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "maximum number of runs to show (0 uses the configured default)")
	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if historyStore == nil {
		return fmt.Errorf("%w: enable it in the config file", domain.ErrHistoryUnavailable)
	}

	limit := historyLimit
	if limit <= 0 {
		limit = cfg.History.Limit
	}

	records, err := historyStore.List(cmd.Context(), limit)
	if err != nil {
		return fmt.Errorf("listing history: %w", err)
	}

	if len(records) == 0 {
		cmd.Println("No searches recorded.")
		return nil
	}

	cmd.Println("Recent searches:")
	for _, rec := range records {
		cmd.Printf("  %s  %s", rec.StartedAt.Local().Format(time.DateTime), rec.Include)
		if rec.Exclude != "" {
			cmd.Printf("  -e %s", rec.Exclude)
		}
		if rec.Content != "" {
			cmd.Printf("  -c %s", rec.Content)
		}
		if rec.IncludeHidden {
			cmd.Print("  -a")
		}
		cmd.Printf("  %v\n", rec.Roots)
		cmd.Printf("      %d match(es), %d error(s) in %s\n",
			rec.Matches, rec.Errors, rec.Duration.Round(time.Millisecond))
	}
	return nil
}

func runHistoryClear(cmd *cobra.Command, _ []string) error {
	if historyStore == nil {
		return fmt.Errorf("%w: enable it in the config file", domain.ErrHistoryUnavailable)
	}

	if err := historyStore.Clear(cmd.Context()); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	cmd.Println("History cleared.")
	return nil
}
