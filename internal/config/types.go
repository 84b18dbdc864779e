package config

import (
	"encoding/json"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure
type Config struct {
	Settings    Settings          `yaml:"settings" json:"settings"`
	Logging     LoggingConfig     `yaml:"logging" json:"logging"`
	Keybindings map[string]string `yaml:"keybindings" json:"keybindings"`
	IgnoreApps  []string          `yaml:"ignore_apps" json:"ignore_apps"`
}

// Settings contains the tiling and runtime settings
type Settings struct {
	WindowPadding   float64  `yaml:"window_padding" json:"window_padding"`
	MenuBarHeight   float64  `yaml:"menu_bar_height" json:"menu_bar_height"`
	StatusBarHeight float64  `yaml:"status_bar_height" json:"status_bar_height"`
	ResizeStep      float64  `yaml:"resize_step" json:"resize_step"`
	MinWindowWidth  float64  `yaml:"min_window_width" json:"min_window_width"`
	MinWindowHeight float64  `yaml:"min_window_height" json:"min_window_height"`
	PollInterval    Duration `yaml:"poll_interval" json:"poll_interval"`
	TerminalCommand string   `yaml:"terminal_command" json:"terminal_command"`
	SocketPath      string   `yaml:"socket_path" json:"socket_path"`
	StatusPath      string   `yaml:"status_path" json:"status_path"`
}

// LoggingConfig controls the log file and its rotation
type LoggingConfig struct {
	Level      string `yaml:"level" json:"level"`
	Path       string `yaml:"path,omitempty" json:"path,omitempty"`
	MaxSizeMB  int    `yaml:"max_size_mb" json:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups" json:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days" json:"max_age_days"`
}

// Duration is a time.Duration written as a string such as "100ms".
type Duration struct {
	time.Duration
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return fmt.Errorf("line %d: duration must be a string: %w", node.Line, err)
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("duration must be a string: %w", err)
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}
