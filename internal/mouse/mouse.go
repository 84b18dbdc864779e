package mouse

import (
	"context"
	"fmt"

	"github.com/yourusername/gridwm/internal/types"
)

// Caller sends one RPC to the server.
type Caller interface {
	CallMethod(ctx context.Context, method string, params map[string]interface{}) (map[string]interface{}, error)
}

// WarpToWindow moves the mouse cursor to the center of the specified window.
func WarpToWindow(ctx context.Context, c Caller, windowID types.WindowID) error {
	_, err := c.CallMethod(ctx, "mouse.warp", map[string]interface{}{
		"windowId": uint32(windowID),
	})
	if err != nil {
		return fmt.Errorf("mouse warp to window %d failed: %w", windowID, err)
	}
	return nil
}

// WarpToPoint moves the mouse cursor to p in global coordinates.
func WarpToPoint(ctx context.Context, c Caller, p types.Point) error {
	_, err := c.CallMethod(ctx, "mouse.warp", map[string]interface{}{
		"x": p.X,
		"y": p.Y,
	})
	if err != nil {
		return fmt.Errorf("mouse warp to (%.0f, %.0f) failed: %w", p.X, p.Y, err)
	}
	return nil
}
