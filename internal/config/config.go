// Package config handles configuration loading and defaults for pomo.
// Configuration is loaded from XDG-compliant paths (typically ~/.config/pomo/config.yaml).
//
// Phase lengths are deliberately absent: Work and Break durations are fixed.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"pomo/internal/fsutil"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	// StateFile overrides the session file path (default ~/.pomo.json)
	StateFile string `yaml:"state_file,omitempty"`

	// Theme customizes the visual appearance
	Theme ThemeConfig `yaml:"theme,omitempty"`

	// Keys customizes keyboard shortcuts
	Keys KeysConfig `yaml:"keys,omitempty"`

	// Notifications configures desktop notifications
	Notifications NotificationConfig `yaml:"notifications"`

	// Log configures the diagnostic log
	Log LogConfig `yaml:"log,omitempty"`
}

// ThemeConfig defines color settings.
type ThemeConfig struct {
	// Primary color for the title bar and progress bar (hex, e.g., "#FF5733")
	Primary string `yaml:"primary,omitempty"`

	// Accent color for the break phase (hex)
	Accent string `yaml:"accent,omitempty"`

	// Muted color for secondary text (hex)
	Muted string `yaml:"muted,omitempty"`

	// Text color (hex)
	Text string `yaml:"text,omitempty"`
}

// KeysConfig defines customizable keyboard shortcuts.
// Each field accepts a comma-separated list of key bindings.
// Examples: "q,ctrl+c", "p", "space"
type KeysConfig struct {
	Pause  string `yaml:"pause,omitempty"`  // default: "p"
	Resume string `yaml:"resume,omitempty"` // default: "r"
	Toggle string `yaml:"toggle,omitempty"` // default: "space"
	Quit   string `yaml:"quit,omitempty"`   // default: "q,ctrl+c"
	Help   string `yaml:"help,omitempty"`   // default: "?"
}

// NotificationConfig defines desktop notification settings.
type NotificationConfig struct {
	// Enabled enables/disables phase-change notifications
	Enabled bool `yaml:"enabled"`

	// Sound enables notification sounds
	Sound bool `yaml:"sound"`
}

// LogConfig defines where diagnostics go while the timer UI is running.
type LogConfig struct {
	// Level is a zerolog level name: debug, info, warn, error
	Level string `yaml:"level,omitempty"`

	// File is the log file used while the full-screen UI owns the terminal
	File string `yaml:"file,omitempty"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		StateFile: "",
		Theme: ThemeConfig{
			Primary: "#E4572E", // Tomato
			Accent:  "#10B981", // Emerald
			Muted:   "#6B7280", // Gray
			Text:    "",        // Terminal default
		},
		Keys: KeysConfig{},
		Notifications: NotificationConfig{
			Enabled: true,
			Sound:   false,
		},
		Log: LogConfig{
			Level: "info",
			File:  "",
		},
	}
}

// Dir returns the configuration directory path (XDG compliant).
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "pomo")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "pomo")
}

// Path returns the path to the config file, or "" when no config
// directory can be resolved.
func Path() string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads configuration from disk, merging with defaults.
// If no config file exists, returns default configuration.
func Load() (*Config, error) {
	return LoadFile(Path())
}

// LoadFile reads configuration from path, merging with defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	var userCfg Config
	if err := yaml.Unmarshal(data, &userCfg); err != nil {
		return nil, err
	}

	var doc yaml.Node
	_ = yaml.Unmarshal(data, &doc) // best-effort; fall back to conservative merge if this fails

	cfg.mergeFromYAML(&userCfg, &doc)
	return cfg, nil
}

// mergeNonEmpty applies non-empty strings from other to c.
// Booleans need presence-aware merging and are left alone.
func (c *Config) mergeNonEmpty(other *Config) {
	setIf := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}

	setIf(&c.StateFile, other.StateFile)

	setIf(&c.Theme.Primary, other.Theme.Primary)
	setIf(&c.Theme.Accent, other.Theme.Accent)
	setIf(&c.Theme.Muted, other.Theme.Muted)
	setIf(&c.Theme.Text, other.Theme.Text)

	setIf(&c.Keys.Pause, other.Keys.Pause)
	setIf(&c.Keys.Resume, other.Keys.Resume)
	setIf(&c.Keys.Toggle, other.Keys.Toggle)
	setIf(&c.Keys.Quit, other.Keys.Quit)
	setIf(&c.Keys.Help, other.Keys.Help)

	setIf(&c.Log.Level, other.Log.Level)
	setIf(&c.Log.File, other.Log.File)
}

func (c *Config) mergeFromYAML(other *Config, doc *yaml.Node) {
	c.mergeNonEmpty(other)

	// Without a document we cannot tell an explicit false from an omitted key.
	if doc == nil || len(doc.Content) == 0 {
		return
	}

	if yamlHasPath(doc, "notifications", "enabled") {
		c.Notifications.Enabled = other.Notifications.Enabled
	}
	if yamlHasPath(doc, "notifications", "sound") {
		c.Notifications.Sound = other.Notifications.Sound
	}
}

func yamlHasPath(doc *yaml.Node, path ...string) bool {
	if doc == nil || len(path) == 0 {
		return false
	}

	n := doc
	if n.Kind == yaml.DocumentNode && len(n.Content) > 0 {
		n = n.Content[0]
	}
	for _, key := range path {
		if n == nil || n.Kind != yaml.MappingNode {
			return false
		}
		var next *yaml.Node
		for i := 0; i+1 < len(n.Content); i += 2 {
			if k := n.Content[i]; k.Kind == yaml.ScalarNode && k.Value == key {
				next = n.Content[i+1]
				break
			}
		}
		if next == nil {
			return false
		}
		n = next
	}
	return true
}

// Marshal renders c as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Save writes the configuration to the default config path.
func (c *Config) Save() error {
	return c.SaveFile(Path())
}

// SaveFile writes the configuration to path.
func (c *Config) SaveFile(path string) error {
	if path == "" {
		return nil
	}
	if err := fsutil.EnsureDir(filepath.Dir(path), 0700); err != nil {
		return err
	}
	data, err := c.Marshal()
	if err != nil {
		return err
	}
	return fsutil.WriteFileAtomic(path, data, 0600)
}

// GetLogFile returns the resolved log file path.
func (c *Config) GetLogFile() string {
	if c.Log.File != "" {
		return expandHome(c.Log.File)
	}
	dir := Dir()
	if dir == "" {
		return filepath.Join(os.TempDir(), "pomo.log")
	}
	return filepath.Join(dir, "pomo.log")
}

// GetStateFile returns the configured session path with ~ expanded, or ""
// when the default should be used.
func (c *Config) GetStateFile() string {
	if c.StateFile == "" {
		return ""
	}
	return expandHome(c.StateFile)
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") && !strings.HasPrefix(p, `~\`) {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	if p == "~" {
		return home
	}
	return filepath.Join(home, p[2:])
}
