package wm

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/yourusername/gridwm/internal/server"
	"github.com/yourusername/gridwm/internal/types"
	"github.com/yourusername/gridwm/internal/window"
)

// WindowFactory builds layout windows bound to the native geometry ports.
type WindowFactory interface {
	Window(id types.WindowID, minWidth, minHeight float64) window.Window
}

// Enumerator lists displays and windows.
type Enumerator interface {
	Snapshot(ctx context.Context) (*server.Snapshot, error)
}

// Focuser moves OS focus and the pointer.
type Focuser interface {
	Focus(ctx context.Context, id types.WindowID) error
	FocusedWindow(ctx context.Context) (types.WindowID, error)
	WarpMouse(ctx context.Context, id types.WindowID) error
	WarpMouseTo(ctx context.Context, p types.Point) error
}

// WindowControl minimises, restores and closes native windows.
type WindowControl interface {
	Minimize(ctx context.Context, id types.WindowID) error
	Unminimize(ctx context.Context, id types.WindowID) error
	Close(ctx context.Context, id types.WindowID) error
}

// Launcher opens a new terminal window.
type Launcher interface {
	OpenTerminal(ctx context.Context) error
}

// HotkeyRegistrar tells the server which chords to report.
type HotkeyRegistrar interface {
	RegisterHotkeys(ctx context.Context, chords []string) error
}

// Ports groups everything the manager needs from the outside world.
type Ports struct {
	Windows    WindowFactory
	Enumerator Enumerator
	Focuser    Focuser
	Control    WindowControl
	Launcher   Launcher
	Hotkeys    HotkeyRegistrar // optional
}

// BridgePorts wires every port except the launcher to b.
func BridgePorts(b *server.Bridge, launcher Launcher) Ports {
	return Ports{
		Windows:    b,
		Enumerator: b,
		Focuser:    b,
		Control:    b,
		Launcher:   launcher,
		Hotkeys:    b,
	}
}

// CommandLauncher runs a shell-style command line such as
// "open -n -a Terminal". Arguments are split on whitespace.
type CommandLauncher struct {
	Command string
}

// OpenTerminal starts the command without waiting for it to exit.
func (l CommandLauncher) OpenTerminal(ctx context.Context) error {
	fields := strings.Fields(l.Command)
	if len(fields) == 0 {
		return fmt.Errorf("no terminal command configured")
	}

	cmd := exec.Command(fields[0], fields[1:]...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %q: %w", fields[0], err)
	}
	go cmd.Wait()
	return nil
}
