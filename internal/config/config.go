// Package config provides configuration management for agentsync.
// It supports YAML and TOML configuration files, environment variable
// overrides, and sensible defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/alexandrbasis/claude-agents-sync/internal/util"
)

// Config represents the complete agentsync configuration.
type Config struct {
	// Root is the default project root for discovery when no path is
	// given on the command line. Empty means the working directory.
	Root string `yaml:"root" toml:"root"`

	// Log configures the append-only sync log.
	Log LogConfig `yaml:"log" toml:"log"`

	// Discovery configures the pair discovery walk.
	Discovery DiscoveryConfig `yaml:"discovery" toml:"discovery"`

	// Watch configures watch mode.
	Watch WatchConfig `yaml:"watch" toml:"watch"`
}

// LogConfig holds sync log settings.
type LogConfig struct {
	// File is the sync log path. Empty means
	// <root>/.claude/hooks/sync.log. "-" disables the file log.
	File string `yaml:"file" toml:"file"`
}

// DiscoveryConfig holds discovery walk settings.
type DiscoveryConfig struct {
	// Exclude lists extra gitignore-style patterns skipped during the
	// walk, on top of the built-in noise list.
	Exclude []string `yaml:"exclude" toml:"exclude"`
}

// WatchConfig holds watch mode settings.
type WatchConfig struct {
	// Debounce is how long to wait after an event before reconciling,
	// coalescing an editor's rapid-fire write notifications.
	Debounce Duration `yaml:"debounce" toml:"debounce"`
}

// Duration is a time.Duration that unmarshals from strings like
// "500ms" in both YAML and TOML.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// UnmarshalText implements encoding.TextUnmarshaler for TOML.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Candidate config file names, checked in order at the project root
// and then in the user config directory.
var fileNames = []string{".agentsync.yaml", ".agentsync.yml", ".agentsync.toml"}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Watch: WatchConfig{Debounce: Duration(250 * time.Millisecond)},
	}
}

// Load reads configuration from the given path, or searches the
// standard locations when path is empty. A missing file is not an
// error; defaults apply. Environment variables override file values.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = findConfigFile()
	}

	if path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

// SyncLogPath resolves the effective sync log path for a project
// root. Empty means the file log is disabled.
func (c *Config) SyncLogPath(root string) string {
	switch c.Log.File {
	case "":
		return util.DefaultSyncLogPath(root)
	case "-":
		return ""
	default:
		return util.ExpandPath(c.Log.File, root)
	}
}

// ResolveRoot returns the project root to operate on: the explicit
// argument when present, then the configured root, then the working
// directory.
func (c *Config) ResolveRoot(arg string) string {
	if arg != "" {
		return util.ExpandPath(arg, "")
	}
	if c.Root != "" {
		return util.ExpandPath(c.Root, "")
	}
	cwd, _ := os.Getwd()
	return cwd
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path) // #nosec G304 - config path from user flags
	if err != nil {
		return fmt.Errorf("failed to read config %q: %w", path, err)
	}

	switch filepath.Ext(path) {
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse TOML config %q: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse YAML config %q: %w", path, err)
		}
	}
	return nil
}

func findConfigFile() string {
	cwd, err := os.Getwd()
	if err == nil {
		for _, name := range fileNames {
			candidate := filepath.Join(cwd, name)
			if util.PathExists(candidate) {
				return candidate
			}
		}
	}

	for _, name := range []string{"config.yaml", "config.yml", "config.toml"} {
		candidate := filepath.Join(util.ConfigDir(), name)
		if util.PathExists(candidate) {
			return candidate
		}
	}
	return ""
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("AGENTSYNC_ROOT"); v != "" {
		cfg.Root = v
	}
	if v := os.Getenv("AGENTSYNC_LOG"); v != "" {
		cfg.Log.File = v
	}
}
