// Package windowtest provides an in-memory implementation of the window ports
// for tests.
package windowtest

import (
	"fmt"
	"sync"

	"github.com/yourusername/gridwm/internal/types"
	"github.com/yourusername/gridwm/internal/window"
)

// Recorder records every geometry and notification call it receives.
type Recorder struct {
	mu       sync.Mutex
	bounds   map[types.WindowID]types.Rect
	disabled map[types.WindowID]int
	calls    []string

	// FailMove makes MoveTo fail for the listed windows.
	FailMove map[types.WindowID]bool
	// FailDisable makes Disable fail for the listed windows.
	FailDisable map[types.WindowID]bool
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		bounds:      make(map[types.WindowID]types.Rect),
		disabled:    make(map[types.WindowID]int),
		FailMove:    make(map[types.WindowID]bool),
		FailDisable: make(map[types.WindowID]bool),
	}
}

// Ports returns window ports backed by r.
func (r *Recorder) Ports() window.Ports {
	return window.Ports{Geometry: r, Notifier: r}
}

// Window returns a managed window with id bound to r.
func (r *Recorder) Window(id types.WindowID) window.Window {
	return window.New(id, r.Ports())
}

func (r *Recorder) MoveTo(id types.WindowID, x, y float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, fmt.Sprintf("move %d", id))
	if r.FailMove[id] {
		return fmt.Errorf("move rejected")
	}
	b := r.bounds[id]
	b.X, b.Y = x, y
	r.bounds[id] = b
	return nil
}

func (r *Recorder) Resize(id types.WindowID, width, height float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, fmt.Sprintf("resize %d", id))
	b := r.bounds[id]
	b.Width, b.Height = width, height
	r.bounds[id] = b
	return nil
}

func (r *Recorder) Disable(id types.WindowID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, fmt.Sprintf("disable %d", id))
	if r.FailDisable[id] {
		return fmt.Errorf("observer unavailable")
	}
	r.disabled[id]++
	return nil
}

func (r *Recorder) Enable(id types.WindowID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, fmt.Sprintf("enable %d", id))
	r.disabled[id]--
	return nil
}

// Bounds returns the last geometry applied to id.
func (r *Recorder) Bounds(id types.WindowID) (types.Rect, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bounds[id]
	return b, ok
}

// Suspended reports whether notifications for id are currently disabled.
func (r *Recorder) Suspended(id types.WindowID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.disabled[id] > 0
}

// Calls returns the calls received so far, in order.
func (r *Recorder) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

// Reset forgets recorded calls but keeps applied bounds.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}
