package display

import (
	"fmt"
	"sort"

	"github.com/yourusername/gridwm/internal/layout"
	"github.com/yourusername/gridwm/internal/types"
	"github.com/yourusername/gridwm/internal/window"
)

// LogicalDisplay is one workspace: a layout tree plus the window that has
// focus in it.
type LogicalDisplay struct {
	root     *layout.Container
	focused  types.WindowID
	hasFocus bool
	cfg      Config
}

// NewLogicalDisplay creates an empty workspace filling monitor, minus the menu
// bar at the top and the status bar at the bottom.
func NewLogicalDisplay(monitor types.Rect, cfg Config) *LogicalDisplay {
	return &LogicalDisplay{
		root: layout.NewEmpty(usableBounds(monitor, cfg)),
		cfg:  cfg,
	}
}

func usableBounds(monitor types.Rect, cfg Config) types.Rect {
	monitor.Y += cfg.MenuBarHeight
	monitor.Height -= cfg.MenuBarHeight + cfg.StatusBarHeight
	return monitor
}

// Root returns the layout tree. Callers must not mutate it.
func (l *LogicalDisplay) Root() *layout.Container { return l.root }

// Bounds returns the tileable area of the workspace.
func (l *LogicalDisplay) Bounds() types.Rect { return l.root.Bounds() }

// Focused returns the focused window, if any.
func (l *LogicalDisplay) Focused() (types.WindowID, bool) {
	return l.focused, l.hasFocus
}

// SetFocused focuses id, which must be on this workspace.
func (l *LogicalDisplay) SetFocused(id types.WindowID) error {
	if !l.root.Contains(id) {
		return fmt.Errorf("focus window %d: %w", id, layout.ErrWindowNotFound)
	}
	l.focus(id)
	return nil
}

func (l *LogicalDisplay) focus(id types.WindowID) {
	l.focused = id
	l.hasFocus = true
}

func (l *LogicalDisplay) unfocus() {
	l.focused = 0
	l.hasFocus = false
}

// AddWindow tiles w next to the focused window and focuses it. With nothing
// focused the window goes to the root. ErrCannotFitWindow leaves the
// workspace untouched.
func (l *LogicalDisplay) AddWindow(w window.Window) error {
	if l.root.Contains(w.ID) {
		return fmt.Errorf("window %d: %w", w.ID, ErrWindowAlreadyManaged)
	}

	target := l.root
	if id, ok := l.Focused(); ok {
		if parent := l.root.ParentOf(id); parent != nil {
			target = parent
		}
	}

	err := target.AddWindowChecked(w, l.cfg.WindowPadding, l.cfg.Fit)
	if l.root.Contains(w.ID) {
		l.focus(w.ID)
	}
	return err
}

// RemoveWindow takes id off the workspace. If it had focus, focus moves to
// the first remaining window.
func (l *LogicalDisplay) RemoveWindow(id types.WindowID) (window.Window, bool, error) {
	w, ok, err := l.root.RemoveWindow(id, l.cfg.WindowPadding)
	if !ok {
		return w, false, err
	}
	if l.hasFocus && l.focused == id {
		if ids := l.root.WindowIDs(); len(ids) > 0 {
			l.focus(ids[0])
		} else {
			l.unfocus()
		}
	}
	return w, true, err
}

// ShiftFocus moves focus to the next window in dir, ordering windows by
// their left edge for left/right and their top edge for up/down. Focus stays
// put at the last window in that order.
func (l *LogicalDisplay) ShiftFocus(dir types.Direction) (types.WindowID, error) {
	placements := l.root.Placements()
	if len(placements) == 0 {
		return 0, ErrCannotFocusEmptyDisplay
	}

	horizontal := dir.Axis() == types.AxisHorizontal
	sort.SliceStable(placements, func(i, j int) bool {
		a, b := placements[i].Bounds, placements[j].Bounds
		if horizontal {
			if a.X != b.X {
				return a.X < b.X
			}
			return a.Y < b.Y
		}
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})

	index := -1
	if l.hasFocus {
		for i, p := range placements {
			if p.WindowID == l.focused {
				index = i
				break
			}
		}
	}

	switch {
	case index < 0:
		index = 0
	case dir.Forward() && index+1 < len(placements):
		index++
	case !dir.Forward() && index > 0:
		index--
	}

	l.focus(placements[index].WindowID)
	return l.focused, nil
}

// Split prepares the focused window's tile to take its next neighbour along
// axis. With nothing focused the root is split.
func (l *LogicalDisplay) Split(axis types.Axis) error {
	id, ok := l.Focused()
	if !ok {
		return l.root.Split(axis)
	}

	// A window alone in its split only needs the split's axis changed.
	if parent := l.root.ParentOf(id); parent != nil && len(parent.Children()) < 2 {
		return parent.Split(axis)
	}

	leaf := l.root.LeafOf(id)
	if leaf == nil {
		return fmt.Errorf("window %d: %w", id, ErrCannotFindParentLeaf)
	}
	return leaf.Split(axis)
}

// ResizeFocused grows the focused window toward dir by the configured step.
func (l *LogicalDisplay) ResizeFocused(dir types.Direction) error {
	id, ok := l.Focused()
	if !ok {
		return fmt.Errorf("resize focused window: %w", layout.ErrWindowNotFound)
	}
	return l.ResizeWindow(id, dir, l.cfg.ResizeStep)
}

// ResizeWindow grows id toward dir by amount.
func (l *LogicalDisplay) ResizeWindow(id types.WindowID, dir types.Direction, amount float64) error {
	return l.root.ResizeWindow(id, dir, amount, l.cfg.WindowPadding)
}

// Recalculate re-tiles the workspace for a monitor with new bounds.
func (l *LogicalDisplay) Recalculate(monitor types.Rect) error {
	return l.root.RecalculateLayout(usableBounds(monitor, l.cfg), l.cfg.WindowPadding)
}

// Refresh reapplies the current layout to every window.
func (l *LogicalDisplay) Refresh() error {
	return l.root.RecalculateLayout(l.root.Bounds(), l.cfg.WindowPadding)
}

// Reconfigure switches to cfg and re-tiles for monitor.
func (l *LogicalDisplay) Reconfigure(monitor types.Rect, cfg Config) error {
	l.cfg = cfg
	return l.Recalculate(monitor)
}

func (l *LogicalDisplay) Contains(id types.WindowID) bool { return l.root.Contains(id) }

// IsEmpty reports whether the workspace holds no windows.
func (l *LogicalDisplay) IsEmpty() bool { return len(l.root.WindowIDs()) == 0 }

// Windows returns the managed windows in tree order.
func (l *LogicalDisplay) Windows() []window.Window { return l.root.Windows() }

// WindowIDs returns the window ids in ascending order.
func (l *LogicalDisplay) WindowIDs() []types.WindowID {
	ids := l.root.WindowIDs()
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// WindowBounds maps each window to its tile.
func (l *LogicalDisplay) WindowBounds() map[types.WindowID]types.Rect {
	return l.root.WindowBounds()
}

// Placements returns each window with its tile, in tree order.
func (l *LogicalDisplay) Placements() []types.WindowPlacement {
	return l.root.Placements()
}
