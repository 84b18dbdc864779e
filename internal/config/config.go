package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yourusername/gridwm/internal/display"
	"github.com/yourusername/gridwm/internal/events"
	"github.com/yourusername/gridwm/internal/layout"
)

const (
	DefaultConfigDir  = ".config/gridwm"
	DefaultConfigFile = "config.yaml"
	DefaultStateDir   = ".local/state/gridwm"

	DefaultSocketPath      = "/tmp/grid-server.sock"
	DefaultTerminalCommand = "open -n -a Terminal"
	DefaultPollInterval    = 100 * time.Millisecond
)

// ErrNoConfigFile is returned by LoadConfig when no path is given and no file
// exists in the default location.
var ErrNoConfigFile = errors.New("no config file found")

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Settings: Settings{
			WindowPadding:   display.DefaultWindowPadding,
			MenuBarHeight:   display.DefaultMenuBarHeight,
			StatusBarHeight: display.DefaultStatusBarHeight,
			ResizeStep:      layout.DefaultResizeAmount,
			MinWindowWidth:  400,
			MinWindowHeight: 300,
			PollInterval:    Duration{DefaultPollInterval},
			TerminalCommand: DefaultTerminalCommand,
			SocketPath:      DefaultSocketPath,
			StatusPath:      filepath.Join("~", DefaultStateDir, "status.json"),
		},
		Logging: LoggingConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Keybindings: events.DefaultBindings(),
	}
}

// LoadConfig loads configuration from the specified path or default location.
// If path is empty, ~/.config/gridwm/config.yaml and then config.json are
// tried. Values missing from the file keep their defaults, and bindings in
// the file are added to the default bindings.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot determine home directory: %w", err)
		}
		yamlPath := filepath.Join(home, DefaultConfigDir, "config.yaml")
		jsonPath := filepath.Join(home, DefaultConfigDir, "config.json")

		if _, err := os.Stat(yamlPath); err == nil {
			path = yamlPath
		} else if _, err := os.Stat(jsonPath); err == nil {
			path = jsonPath
		} else {
			return nil, fmt.Errorf("%w at %s or %s", ErrNoConfigFile, yamlPath, jsonPath)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	return LoadConfigFromBytes(data, ext)
}

// LoadConfigOrDefault is LoadConfig, except that a missing default file
// yields DefaultConfig.
func LoadConfigOrDefault(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if errors.Is(err, ErrNoConfigFile) {
		return DefaultConfig(), nil
	}
	return cfg, err
}

// LoadConfigFromBytes loads configuration from raw bytes
// format should be "yaml" or "json"
func LoadConfigFromBytes(data []byte, format string) (*Config, error) {
	cfg := DefaultConfig()

	switch format {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	case "json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format: %s", format)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// GetConfigPath returns the default config file path
func GetConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, DefaultConfigDir, DefaultConfigFile)
}

// WriteDefault writes the default configuration as YAML to path. An existing
// file is only replaced when force is set.
func WriteDefault(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists: %s", path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// DisplayConfig returns the layout settings used by the display registry.
func (c *Config) DisplayConfig() display.Config {
	return display.Config{
		WindowPadding:   c.Settings.WindowPadding,
		MenuBarHeight:   c.Settings.MenuBarHeight,
		StatusBarHeight: c.Settings.StatusBarHeight,
		ResizeStep:      c.Settings.ResizeStep,
		Fit: layout.FitPolicy{
			MinWidth:  c.Settings.MinWindowWidth,
			MinHeight: c.Settings.MinWindowHeight,
		},
	}
}

// Keymap parses the key bindings.
func (c *Config) Keymap() (events.Keymap, error) {
	return events.NewKeymap(c.Keybindings)
}

// IsIgnored reports whether windows of app are never tiled.
func (c *Config) IsIgnored(app string) bool {
	for _, ignored := range c.IgnoreApps {
		if strings.EqualFold(ignored, app) {
			return true
		}
	}
	return false
}

// StatusPath returns the status file location with ~ expanded.
func (c *Config) StatusPath() string {
	return ExpandPath(c.Settings.StatusPath)
}

// LogPath returns the log file location, defaulting to the state directory.
func (c *Config) LogPath() string {
	if c.Logging.Path != "" {
		return ExpandPath(c.Logging.Path)
	}
	return ExpandPath(filepath.Join("~", DefaultStateDir, "gridwm.log"))
}

// ExpandPath replaces a leading ~ with the home directory.
func ExpandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
