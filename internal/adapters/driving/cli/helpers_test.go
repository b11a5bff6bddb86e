package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/loci-cli/internal/adapters/driven/walker"
	"github.com/custodia-labs/loci-cli/internal/core/services"
)

// setupTestServices wires a real finder over the filesystem walker and
// returns a cleanup restoring the previous globals and flag state.
func setupTestServices() func() {
	oldFinder := finderService
	oldHistory := historyStore
	oldCfg := cfg

	finderService = services.NewFinderService(walker.New())
	historyStore = nil

	return func() {
		finderService = oldFinder
		historyStore = oldHistory
		cfg = oldCfg
		resetFlags()
	}
}

// resetFlags clears bound flag variables and their Changed state,
// which cobra does not do between Execute calls.
func resetFlags() {
	excludePattern = ""
	includeHidden = false
	contentPattern = ""
	showParams = false
	outputJSON = false
	watchMode = false
	verbose = false
	historyLimit = 0

	for _, name := range []string{"exclude", "all", "content", "verbose"} {
		if f := rootCmd.PersistentFlags().Lookup(name); f != nil {
			f.Changed = false
		}
	}
	for _, name := range []string{"show-params", "json", "watch"} {
		if f := rootCmd.Flags().Lookup(name); f != nil {
			f.Changed = false
		}
	}
}

// writeTestTree creates a small fixture tree and returns its root.
func writeTestTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range map[string]string{
		"main.go":          "package main\n",
		"util.go":          "package main // ERROR placeholder\n",
		"notes.txt":        "plain text\n",
		".hidden.go":       "package hidden\n",
		"sub/handler.go":   "package sub\n",
		"sub/ignore_me.go": "package sub\n",
	} {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}
