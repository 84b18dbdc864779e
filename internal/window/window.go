package window

import (
	"errors"
	"fmt"

	"github.com/yourusername/gridwm/internal/types"
)

// Geometry moves and resizes native windows.
type Geometry interface {
	MoveTo(id types.WindowID, x, y float64) error
	Resize(id types.WindowID, width, height float64) error
}

// Notifier toggles move/resize/focus notifications for a native window.
type Notifier interface {
	Disable(id types.WindowID) error
	Enable(id types.WindowID) error
}

// Ports bundles the native capabilities a managed window needs.
// A nil field turns the matching operation into a no-op.
type Ports struct {
	Geometry Geometry
	Notifier Notifier
}

// Window is a native window under management.
type Window struct {
	ID        types.WindowID
	MinWidth  float64
	MinHeight float64

	ports Ports
}

// New creates a managed window bound to the given ports.
func New(id types.WindowID, ports Ports) Window {
	return Window{ID: id, ports: ports}
}

// WithMinSize returns a copy of w with the given minimum size.
func (w Window) WithMinSize(width, height float64) Window {
	w.MinWidth = width
	w.MinHeight = height
	return w
}

// Apply moves and resizes the native window to b.
func (w Window) Apply(b types.Rect) error {
	if w.ports.Geometry == nil {
		return nil
	}
	if err := w.ports.Geometry.MoveTo(w.ID, b.X, b.Y); err != nil {
		return &Error{ID: w.ID, Op: "move", Err: err}
	}
	if err := w.ports.Geometry.Resize(w.ID, b.Width, b.Height); err != nil {
		return &Error{ID: w.ID, Op: "resize", Err: err}
	}
	return nil
}

// Suspend stops notifications for the native window.
func (w Window) Suspend() error {
	if w.ports.Notifier == nil {
		return nil
	}
	if err := w.ports.Notifier.Disable(w.ID); err != nil {
		return &Error{ID: w.ID, Op: "disable notifications", Err: err}
	}
	return nil
}

// Resume restarts notifications for the native window.
func (w Window) Resume() error {
	if w.ports.Notifier == nil {
		return nil
	}
	if err := w.ports.Notifier.Enable(w.ID); err != nil {
		return &Error{ID: w.ID, Op: "enable notifications", Err: err}
	}
	return nil
}

// Quiet runs fn with notifications suspended for every window in ws.
// Notifications are resumed on every exit path, and resume failures are
// joined with the error from fn.
func Quiet(ws []Window, fn func() error) (err error) {
	var errs []error
	suspended := make([]Window, 0, len(ws))
	for _, w := range ws {
		if serr := w.Suspend(); serr != nil {
			errs = append(errs, serr)
			continue
		}
		suspended = append(suspended, w)
	}

	defer func() {
		for _, w := range suspended {
			if rerr := w.Resume(); rerr != nil {
				errs = append(errs, rerr)
			}
		}
		err = errors.Join(errs...)
	}()

	if ferr := fn(); ferr != nil {
		errs = append(errs, ferr)
	}
	return nil
}

// Error reports a failed native window operation.
type Error struct {
	ID  types.WindowID
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("window %d: %s: %v", e.ID, e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
