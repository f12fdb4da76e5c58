package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/dshills/linedit/internal/config/loader"
)

// Config holds the resolved linedit settings.
type Config struct {
	Editor   EditorConfig
	Document DocumentConfig
	Logging  LoggingConfig
}

// EditorConfig holds editor.* settings.
type EditorConfig struct {
	// TabWidth is the number of spaces inserted by Tab.
	TabWidth int
}

// DocumentConfig holds document.* settings.
type DocumentConfig struct {
	// SessionGuard refuses to open a file that already has a recovery artifact.
	SessionGuard bool
	// Recovery enables periodic recovery snapshots of unsaved edits.
	Recovery bool
	// RecoveryInterval is the time between recovery snapshots.
	RecoveryInterval time.Duration
	// Watch reports external changes to the open file.
	Watch bool
}

// LoggingConfig holds logging.* settings.
type LoggingConfig struct {
	Level string
	// File receives log output. Empty discards logs.
	File string
}

// logLevels are the accepted logging.level values.
var logLevels = []string{"debug", "info", "warn", "warning", "error"}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			TabWidth: 4,
		},
		Document: DocumentConfig{
			SessionGuard:     false,
			Recovery:         true,
			RecoveryInterval: 2 * time.Second,
			Watch:            true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// DefaultPath returns the user config file location.
func DefaultPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "linedit", "config.toml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "linedit", "config.toml")
}

// Load resolves the configuration from the defaults, the file at path and
// LINEDIT_* environment variables, in increasing priority. A missing file
// is not an error; an empty path skips the file layer.
func Load(path string) (*Config, error) {
	return LoadFS(loader.DefaultFS(), path)
}

// LoadFS is Load reading the config file from fsys.
func LoadFS(fsys loader.FileSystem, path string) (*Config, error) {
	merged := make(map[string]any)

	if path != "" {
		fl, err := loader.ForPath(fsys, path)
		if err != nil {
			return nil, err
		}
		file, err := fl.Load()
		if err != nil {
			return nil, err
		}
		merged = loader.DeepMerge(merged, file)
	}

	env, err := loader.NewEnvLoader(loader.DefaultEnvPrefix).Load()
	if err != nil {
		return nil, err
	}
	merged = loader.DeepMerge(merged, env)

	cfg := Default()
	if err := cfg.apply(merged); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Editor.TabWidth < 1 {
		return &ValueError{Path: "editor.tabWidth", Value: c.Editor.TabWidth, Reason: "must be at least 1"}
	}
	if c.Document.RecoveryInterval <= 0 {
		return &ValueError{Path: "document.recoveryInterval", Value: c.Document.RecoveryInterval, Reason: "must be positive"}
	}
	if !slices.Contains(logLevels, strings.ToLower(c.Logging.Level)) {
		return &ValueError{Path: "logging.level", Value: c.Logging.Level, Reason: "must be one of debug, info, warn, error"}
	}
	return nil
}

// setting binds a config path to a typed field.
type setting struct {
	path string
	set  func(c *Config, v any) (reason string)
}

var settings = []setting{
	{"editor.tabWidth", intSetting(func(c *Config) *int { return &c.Editor.TabWidth })},
	{"document.sessionGuard", boolSetting(func(c *Config) *bool { return &c.Document.SessionGuard })},
	{"document.recovery", boolSetting(func(c *Config) *bool { return &c.Document.Recovery })},
	{"document.recoveryInterval", durationSetting(func(c *Config) *time.Duration { return &c.Document.RecoveryInterval })},
	{"document.watch", boolSetting(func(c *Config) *bool { return &c.Document.Watch })},
	{"logging.level", stringSetting(func(c *Config) *string { return &c.Logging.Level })},
	{"logging.file", stringSetting(func(c *Config) *string { return &c.Logging.File })},
}

// apply copies known settings out of a merged map. Unknown keys are ignored.
func (c *Config) apply(m map[string]any) error {
	for _, s := range settings {
		v, ok := loader.Lookup(m, s.path)
		if !ok {
			continue
		}
		if reason := s.set(c, v); reason != "" {
			return &ValueError{Path: s.path, Value: v, Reason: reason}
		}
	}
	return nil
}

func intSetting(field func(*Config) *int) func(*Config, any) string {
	return func(c *Config, v any) string {
		switch n := v.(type) {
		case int:
			*field(c) = n
		case int64:
			*field(c) = int(n)
		case float64:
			if n != float64(int(n)) {
				return "must be a whole number"
			}
			*field(c) = int(n)
		default:
			return fmt.Sprintf("must be an integer, got %T", v)
		}
		return ""
	}
}

func boolSetting(field func(*Config) *bool) func(*Config, any) string {
	return func(c *Config, v any) string {
		b, ok := v.(bool)
		if !ok {
			return fmt.Sprintf("must be a boolean, got %T", v)
		}
		*field(c) = b
		return ""
	}
}

func stringSetting(field func(*Config) *string) func(*Config, any) string {
	return func(c *Config, v any) string {
		s, ok := v.(string)
		if !ok {
			return fmt.Sprintf("must be a string, got %T", v)
		}
		*field(c) = s
		return ""
	}
}

func durationSetting(field func(*Config) *time.Duration) func(*Config, any) string {
	return func(c *Config, v any) string {
		switch d := v.(type) {
		case time.Duration:
			*field(c) = d
		case string:
			parsed, err := time.ParseDuration(d)
			if err != nil {
				return `must be a duration such as "2s"`
			}
			*field(c) = parsed
		default:
			return `must be a duration such as "2s"`
		}
		return ""
	}
}
