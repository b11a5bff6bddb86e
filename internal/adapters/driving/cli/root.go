// Package cli implements the loci command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/loci-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/loci-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/loci-cli/internal/adapters/driven/walker"
	"github.com/custodia-labs/loci-cli/internal/core/domain"
	"github.com/custodia-labs/loci-cli/internal/core/ports/driven"
	"github.com/custodia-labs/loci-cli/internal/core/ports/driving"
	"github.com/custodia-labs/loci-cli/internal/core/services"
	"github.com/custodia-labs/loci-cli/internal/logger"
)

var version = "dev"

// Services wired by Execute. Tests substitute their own.
var (
	finderService driving.Finder
	historyStore  driven.HistoryStore
	cfg           = file.Default()
)

var (
	excludePattern string
	includeHidden  bool
	contentPattern string
	showParams     bool
	outputJSON     bool
	watchMode      bool
	verbose        bool
)

var rootCmd = &cobra.Command{
	Use:   "loci <pattern> [directory...]",
	Short: "Find files whose names match a regular expression",
	Long: `Loci walks one or more directory trees and prints the files whose
names match a regular expression. The pattern matches anywhere in the
file's base name, never against the full path.

Hidden files and directories are skipped unless --all is given; a
skipped hidden directory is not descended into. With --content, only
files whose content matches the given pattern are reported.

Directories default to the current directory when none are given.`,
	Example: `  loci '\.go$' ./src
  loci '\.txt$' --exclude '^ignore_' /srv/docs /home/user
  loci '\.log$' --content 'ERROR' --watch /var/log`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	RunE: runFind,
}

func init() {
	// Shared with the tui subcommand.
	rootCmd.PersistentFlags().StringVarP(&excludePattern, "exclude", "e", "", "reject names matching this pattern, even when included")
	rootCmd.PersistentFlags().BoolVarP(&includeHidden, "all", "a", false, "include hidden files and directories")
	rootCmd.PersistentFlags().StringVarP(&contentPattern, "content", "c", "", "only report files whose content matches this pattern")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	rootCmd.Flags().BoolVarP(&showParams, "show-params", "p", false, "print the effective search parameters")
	rootCmd.Flags().BoolVar(&outputJSON, "json", false, "output matches as JSON")
	rootCmd.Flags().BoolVar(&watchMode, "watch", false, "keep watching the directories for new matches")
}

// Execute wires the adapters into the services and runs the CLI.
// Returns a non-nil error on request validation failure; completing
// with zero matches is not an error.
func Execute(ctx context.Context, ver string) error {
	version = ver

	if path, err := file.DefaultPath(); err == nil {
		loaded, err := file.Load(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		} else {
			cfg = loaded
		}
	}

	svc := services.NewFinderService(walker.New())
	svc.SetNotifierFactory(func(roots []string, hidden bool) (driven.ChangeNotifier, error) {
		return walker.NewWatcher(roots, hidden)
	})

	if cfg.History.Enabled {
		store, err := sqlite.NewStore("")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: history disabled: %v\n", err)
		} else {
			defer store.Close()
			historyStore = store.HistoryStore()
			svc.SetHistoryStore(historyStore)
		}
	}

	finderService = svc

	return rootCmd.ExecuteContext(ctx)
}

// buildRequest turns positional arguments, flags and config defaults
// into a validated request. Flags given on the command line win over
// config values.
func buildRequest(cmd *cobra.Command, args []string) (*domain.SearchRequest, error) {
	pattern := args[0]
	roots := args[1:]
	if len(roots) == 0 {
		roots = []string{"."}
	}

	exclude := excludePattern
	if !cmd.Flags().Changed("exclude") && cfg.Search.Exclude != "" {
		exclude = cfg.Search.Exclude
	}

	hidden := includeHidden
	if !cmd.Flags().Changed("all") {
		hidden = cfg.Search.IncludeHidden
	}

	return domain.NewSearchRequest(roots, pattern, exclude, contentPattern, hidden)
}

func runFind(cmd *cobra.Command, args []string) error {
	if finderService == nil {
		return errors.New("finder service not configured")
	}

	req, err := buildRequest(cmd, args)
	if err != nil {
		return err
	}

	st := newStyles(isTerminal(cmd.OutOrStdout()))

	if showParams {
		printParams(cmd, st, req)
	}

	ctx := cmd.Context()
	matches, errs := finderService.Find(ctx, req)

	if outputJSON {
		return printJSON(cmd, st, matches, errs)
	}

	cmd.Println(st.header.Render("Search Results:"))
	found, failed := streamResults(cmd, st, matches, errs)
	if found == 0 {
		cmd.Println("  No files found matching the criteria.")
	}
	cmd.Printf("\nFound %d file(s)", found)
	if failed > 0 {
		cmd.Printf(", %d error(s)", failed)
	}
	cmd.Println(".")

	if watchMode {
		cmd.Println()
		cmd.Println(st.header.Render("Watching for changes (interrupt to stop):"))
		wMatches, wErrs, err := finderService.Watch(ctx, req)
		if err != nil {
			return fmt.Errorf("watch: %w", err)
		}
		streamResults(cmd, st, wMatches, wErrs)
	}

	return nil
}
