package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config holds user defaults applied before flag parsing.
type Config struct {
	Search  SearchConfig  `toml:"search"`
	History HistoryConfig `toml:"history"`
}

// SearchConfig holds defaults for the search command.
type SearchConfig struct {
	// Exclude is a default exclusion pattern, applied when the
	// --exclude flag is not given.
	Exclude string `toml:"exclude"`

	// IncludeHidden makes hidden entries visible by default.
	IncludeHidden bool `toml:"include_hidden"`
}

// HistoryConfig controls search history recording.
type HistoryConfig struct {
	// Enabled turns history recording on or off.
	Enabled bool `toml:"enabled"`

	// Limit is the default number of runs the history command shows.
	Limit int `toml:"limit"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		History: HistoryConfig{
			Enabled: true,
			Limit:   20,
		},
	}
}

// DefaultPath returns the conventional config file location,
// ~/.loci/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".loci", "config.toml"), nil
}

// Load reads the configuration at path. A missing file is not an
// error; defaults are returned.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration to path, creating the directory if
// needed. Used by tests and first-run setup.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	// Write with restricted permissions
	return os.WriteFile(path, data, 0600)
}
