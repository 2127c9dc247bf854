// Package config manages fastsort settings and filesystem paths.
//
// Settings live in a TOML file under the fastsort root directory
// (default ~/.fastsort, overridable with FASTSORT_ROOT). The rule file
// the organizer reads keeps its own flat text format and is only
// pointed to from here.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"fastsort/internal/dedup"
)

//go:embed sample_config.toml
var sampleConfig string

// Config holds the app settings.
type Config struct {
	// RulesFile is the path of the rule file
	RulesFile string `toml:"rules_file"`

	// LogDir is where run logs are written
	LogDir string `toml:"log_dir"`

	// HistoryDB is the path of the run history database
	HistoryDB string `toml:"history_db"`

	// DedupPolicy is the default duplicate policy (skip, prompt,
	// force-newest)
	DedupPolicy string `toml:"dedup_policy"`

	// PreviewSampleSize is how many files per category the preview
	// tree shows before eliding
	PreviewSampleSize int `toml:"preview_sample_size"`
}

// Paths contains the fastsort data directories.
type Paths struct {
	// Root is the base directory (default ~/.fastsort)
	Root string

	// ConfigFile is the settings file path
	ConfigFile string
}

// DefaultPaths resolves the fastsort root, honoring FASTSORT_ROOT.
func DefaultPaths() (*Paths, error) {
	root := os.Getenv("FASTSORT_ROOT")
	if root == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		root = filepath.Join(home, ".fastsort")
	}
	return &Paths{
		Root:       root,
		ConfigFile: filepath.Join(root, "config.toml"),
	}, nil
}

// Defaults returns the settings used when no config file exists,
// anchored at root.
func Defaults(root string) *Config {
	return &Config{
		RulesFile:         filepath.Join(root, "rules.conf"),
		LogDir:            filepath.Join(root, "logs"),
		HistoryDB:         filepath.Join(root, "history.db"),
		DedupPolicy:       string(dedup.PolicySkip),
		PreviewSampleSize: 5,
	}
}

// Load reads the settings file under paths, filling in defaults for
// unset fields. A missing file yields pure defaults; a malformed file
// is an error.
func Load(paths *Paths) (*Config, error) {
	cfg := Defaults(paths.Root)

	data, err := os.ReadFile(paths.ConfigFile)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", paths.ConfigFile, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", paths.ConfigFile, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", paths.ConfigFile, err)
	}
	return cfg, nil
}

// Validate checks field values.
func (c *Config) Validate() error {
	if _, err := dedup.ParsePolicy(c.DedupPolicy); err != nil {
		return err
	}
	if c.PreviewSampleSize < 1 {
		return fmt.Errorf("preview_sample_size must be positive, got %d", c.PreviewSampleSize)
	}
	return nil
}

// EnsureDirectories creates the root and log directories.
func EnsureDirectories(paths *Paths, cfg *Config) error {
	for _, dir := range []string{paths.Root, cfg.LogDir, filepath.Dir(cfg.HistoryDB)} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// WriteSample writes the embedded sample settings file to the config
// path unless one already exists.
func WriteSample(paths *Paths) (bool, error) {
	if _, err := os.Lstat(paths.ConfigFile); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, err
	}
	if err := os.MkdirAll(paths.Root, 0755); err != nil {
		return false, fmt.Errorf("failed to create %s: %w", paths.Root, err)
	}
	if err := os.WriteFile(paths.ConfigFile, []byte(sampleConfig), 0644); err != nil {
		return false, fmt.Errorf("failed to write sample config: %w", err)
	}
	return true, nil
}
