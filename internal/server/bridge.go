package server

import (
	"context"
	"fmt"
	"time"

	"github.com/yourusername/gridwm/internal/mouse"
	"github.com/yourusername/gridwm/internal/types"
	"github.com/yourusername/gridwm/internal/window"
)

// Caller sends one RPC to the server. *client.Client implements it.
type Caller interface {
	CallMethod(ctx context.Context, method string, params map[string]interface{}) (map[string]interface{}, error)
}

// DefaultCallTimeout bounds each RPC issued through the window ports, which
// carry no context of their own.
const DefaultCallTimeout = 2 * time.Second

// Bridge drives native windows through the server. It implements the
// window geometry and notification ports as well as the focus, minimise and
// enumeration calls the manager needs.
type Bridge struct {
	ctx     context.Context
	caller  Caller
	timeout time.Duration
}

// NewBridge returns a bridge whose port calls are bounded by ctx and timeout.
func NewBridge(ctx context.Context, caller Caller, timeout time.Duration) *Bridge {
	if timeout <= 0 {
		timeout = DefaultCallTimeout
	}
	return &Bridge{ctx: ctx, caller: caller, timeout: timeout}
}

// Ports returns window ports backed by the bridge.
func (b *Bridge) Ports() window.Ports {
	return window.Ports{Geometry: b, Notifier: b}
}

// Window returns a managed window bound to the bridge.
func (b *Bridge) Window(id types.WindowID, minWidth, minHeight float64) window.Window {
	return window.New(id, b.Ports()).WithMinSize(minWidth, minHeight)
}

func (b *Bridge) call(method string, params map[string]interface{}) (map[string]interface{}, error) {
	ctx, cancel := context.WithTimeout(b.ctx, b.timeout)
	defer cancel()
	return b.caller.CallMethod(ctx, method, params)
}

func (b *Bridge) MoveTo(id types.WindowID, x, y float64) error {
	_, err := b.call("window.move", map[string]interface{}{
		"windowId": uint32(id),
		"x":        x,
		"y":        y,
	})
	return err
}

func (b *Bridge) Resize(id types.WindowID, width, height float64) error {
	_, err := b.call("window.resize", map[string]interface{}{
		"windowId": uint32(id),
		"width":    width,
		"height":   height,
	})
	return err
}

// Disable stops the server from reporting moves and resizes of id.
func (b *Bridge) Disable(id types.WindowID) error {
	_, err := b.call("observer.disable", map[string]interface{}{"windowId": uint32(id)})
	return err
}

// Enable resumes move and resize reporting for id.
func (b *Bridge) Enable(id types.WindowID) error {
	_, err := b.call("observer.enable", map[string]interface{}{"windowId": uint32(id)})
	return err
}

// Snapshot enumerates displays and windows.
func (b *Bridge) Snapshot(ctx context.Context) (*Snapshot, error) {
	return Fetch(ctx, b.caller)
}

// Focus raises and focuses id.
func (b *Bridge) Focus(ctx context.Context, id types.WindowID) error {
	return b.windowCall(ctx, "window.focus", id)
}

// FocusedWindow asks the server which window has focus.
func (b *Bridge) FocusedWindow(ctx context.Context) (types.WindowID, error) {
	result, err := b.caller.CallMethod(ctx, "window.focused", nil)
	if err != nil {
		return 0, err
	}
	id, ok := result["windowId"]
	if !ok {
		return 0, fmt.Errorf("no focused window")
	}
	return types.WindowID(toFloat64(id)), nil
}

func (b *Bridge) Minimize(ctx context.Context, id types.WindowID) error {
	return b.windowCall(ctx, "window.minimize", id)
}

func (b *Bridge) Unminimize(ctx context.Context, id types.WindowID) error {
	return b.windowCall(ctx, "window.unminimize", id)
}

func (b *Bridge) Close(ctx context.Context, id types.WindowID) error {
	return b.windowCall(ctx, "window.close", id)
}

// WarpMouse centers the pointer on id.
func (b *Bridge) WarpMouse(ctx context.Context, id types.WindowID) error {
	return mouse.WarpToWindow(ctx, b.caller, id)
}

// WarpMouseTo moves the pointer to p, for workspaces with no window.
func (b *Bridge) WarpMouseTo(ctx context.Context, p types.Point) error {
	return mouse.WarpToPoint(ctx, b.caller, p)
}

// RegisterHotkeys asks the server to report the given chords as hotkey
// events.
func (b *Bridge) RegisterHotkeys(ctx context.Context, chords []string) error {
	_, err := b.caller.CallMethod(ctx, "hotkey.register", map[string]interface{}{
		"chords": chords,
	})
	if err != nil {
		return fmt.Errorf("register %d hotkeys: %w", len(chords), err)
	}
	return nil
}

func (b *Bridge) windowCall(ctx context.Context, method string, id types.WindowID) error {
	if _, err := b.caller.CallMethod(ctx, method, map[string]interface{}{"windowId": uint32(id)}); err != nil {
		return fmt.Errorf("%s %d: %w", method, id, err)
	}
	return nil
}
