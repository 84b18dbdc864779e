// Package events defines what the window manager loop reacts to: window and
// display changes reported by the server, and key commands.
package events

import (
	"fmt"

	"github.com/yourusername/gridwm/internal/types"
)

// Event is a single input to the manager loop.
type Event interface {
	EventName() string
}

// WindowAdded reports a tileable window that appeared on a display.
type WindowAdded struct {
	Display   types.PhysicalDisplayID
	Window    types.WindowID
	App       string
	MinWidth  float64
	MinHeight float64
}

// WindowRemoved reports a window that closed or stopped being tileable.
type WindowRemoved struct {
	Display types.PhysicalDisplayID
	Window  types.WindowID
}

// WindowFocused reports the window the OS currently has focused.
type WindowFocused struct {
	Window types.WindowID
}

// DisplayAdded reports a newly connected monitor.
type DisplayAdded struct {
	Display types.PhysicalDisplayID
	Bounds  types.Rect
	Main    bool
}

// DisplayRemoved reports a disconnected monitor.
type DisplayRemoved struct {
	Display types.PhysicalDisplayID
}

// KeyCommand is a bound hotkey that fired.
type KeyCommand struct {
	Command Command
}

func (WindowAdded) EventName() string    { return "window_added" }
func (WindowRemoved) EventName() string  { return "window_removed" }
func (WindowFocused) EventName() string  { return "window_focused" }
func (DisplayAdded) EventName() string   { return "display_added" }
func (DisplayRemoved) EventName() string { return "display_removed" }
func (KeyCommand) EventName() string     { return "key_command" }

func (e WindowAdded) String() string {
	return fmt.Sprintf("window %d (%s) added on display %d", e.Window, e.App, e.Display)
}

func (e WindowRemoved) String() string {
	return fmt.Sprintf("window %d removed from display %d", e.Window, e.Display)
}

func (e KeyCommand) String() string {
	return "key command " + e.Command.String()
}
