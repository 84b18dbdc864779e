package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

const (
	maxChromeHeight = 200
	maxPadding      = 200
)

// Validate checks the configuration for errors
func (c *Config) Validate() error {
	if err := validateSettings(&c.Settings); err != nil {
		return fmt.Errorf("settings: %w", err)
	}

	if err := validateLogging(&c.Logging); err != nil {
		return fmt.Errorf("logging: %w", err)
	}

	if _, err := c.Keymap(); err != nil {
		return fmt.Errorf("keybindings: %w", err)
	}

	for i, app := range c.IgnoreApps {
		if strings.TrimSpace(app) == "" {
			return fmt.Errorf("ignore_apps %d: empty app name", i)
		}
	}

	return nil
}

func validateSettings(s *Settings) error {
	nonNegative := []struct {
		name  string
		value float64
	}{
		{"window_padding", s.WindowPadding},
		{"menu_bar_height", s.MenuBarHeight},
		{"status_bar_height", s.StatusBarHeight},
		{"min_window_width", s.MinWindowWidth},
		{"min_window_height", s.MinWindowHeight},
	}
	for _, f := range nonNegative {
		if f.value < 0 {
			return fmt.Errorf("%s must be non-negative, got %v", f.name, f.value)
		}
	}

	if s.WindowPadding > maxPadding {
		return fmt.Errorf("window_padding must be at most %d, got %v", maxPadding, s.WindowPadding)
	}
	if s.MenuBarHeight > maxChromeHeight || s.StatusBarHeight > maxChromeHeight {
		return fmt.Errorf("bar heights must be at most %d", maxChromeHeight)
	}
	if s.ResizeStep <= 0 {
		return fmt.Errorf("resize_step must be positive, got %v", s.ResizeStep)
	}
	if s.PollInterval.Duration <= 0 {
		return fmt.Errorf("poll_interval must be positive, got %v", s.PollInterval)
	}
	if strings.TrimSpace(s.TerminalCommand) == "" {
		return fmt.Errorf("terminal_command must not be empty")
	}
	if s.SocketPath == "" {
		return fmt.Errorf("socket_path must not be empty")
	}

	return nil
}

func validateLogging(l *LoggingConfig) error {
	if _, err := zerolog.ParseLevel(l.Level); err != nil {
		return fmt.Errorf("invalid level %q: %w", l.Level, err)
	}
	if l.MaxSizeMB < 0 || l.MaxBackups < 0 || l.MaxAgeDays < 0 {
		return fmt.Errorf("rotation limits must be non-negative")
	}
	return nil
}
