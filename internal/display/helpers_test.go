package display

import (
	"github.com/yourusername/gridwm/internal/layout"
	"github.com/yourusername/gridwm/internal/types"
	"github.com/yourusername/gridwm/internal/window/windowtest"
)

var monitor = types.Rect{X: 0, Y: 0, Width: 1000, Height: 800}

// testConfig has no padding or chrome so tile sizes are easy to predict.
// Three windows do not fit side by side on monitor.
func testConfig() Config {
	return Config{
		ResizeStep: 50,
		Fit:        layout.FitPolicy{MinWidth: 400, MinHeight: 300},
	}
}

func newLogical(rec *windowtest.Recorder, ids ...types.WindowID) (*LogicalDisplay, error) {
	l := NewLogicalDisplay(monitor, testConfig())
	for _, id := range ids {
		if err := l.AddWindow(rec.Window(id)); err != nil {
			return l, err
		}
	}
	return l, nil
}

func sameIDs(a, b []types.WindowID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
