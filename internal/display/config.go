package display

import "github.com/yourusername/gridwm/internal/layout"

const (
	DefaultMenuBarHeight   = 37.0
	DefaultStatusBarHeight = 25.0
	DefaultWindowPadding   = 8.0
)

// Config holds the layout settings shared by every display.
type Config struct {
	WindowPadding   float64
	MenuBarHeight   float64
	StatusBarHeight float64
	ResizeStep      float64
	Fit             layout.FitPolicy
}

// DefaultConfig returns the settings used when no config file is present.
func DefaultConfig() Config {
	return Config{
		WindowPadding:   DefaultWindowPadding,
		MenuBarHeight:   DefaultMenuBarHeight,
		StatusBarHeight: DefaultStatusBarHeight,
		ResizeStep:      layout.DefaultResizeAmount,
		Fit:             layout.FitPolicy{MinWidth: 400, MinHeight: 300},
	}
}
