package wm

import (
	"context"
	"errors"
	"fmt"

	"github.com/yourusername/gridwm/internal/events"
	"github.com/yourusername/gridwm/internal/logging"
	"github.com/yourusername/gridwm/internal/types"
)

// errNoFocusedWindow is returned by commands that act on the focused window
// when there is none.
var errNoFocusedWindow = errors.New("no focused window")

func (m *Manager) keyCommand(ctx context.Context, cmd events.Command) error {
	switch cmd.Kind {
	case events.CmdNewTerminal:
		return m.ports.Launcher.OpenTerminal(ctx)
	case events.CmdCloseWindow:
		return m.closeFocused(ctx)
	case events.CmdFocus:
		return m.shiftFocus(ctx, cmd.Dir)
	case events.CmdFocusDisplay:
		return m.focusLogicalDisplay(ctx, cmd.Target)
	case events.CmdMoveWindowToDisplay:
		return m.moveFocusedToDisplay(ctx, cmd.Target)
	case events.CmdToggleVerticalSplit:
		return m.split(types.AxisVertical)
	case events.CmdToggleHorizontalSplit:
		return m.split(types.AxisHorizontal)
	case events.CmdResizeWindow:
		return m.displays.ResizeFocused(cmd.Dir)
	default:
		return fmt.Errorf("unknown command %q", cmd.Kind)
	}
}

// focusedWindow asks the OS which window has focus and falls back to the
// layout's idea when the OS answer is not a managed window.
func (m *Manager) focusedWindow(ctx context.Context) (types.WindowID, error) {
	id, err := m.ports.Focuser.FocusedWindow(ctx)
	if err == nil && id != 0 && m.managed(id) {
		return id, nil
	}
	if err != nil {
		logging.Debug().Err(err).Msg("failed to query focused window")
	}
	if id, ok := m.displays.Focused(); ok {
		return id, nil
	}
	return 0, errNoFocusedWindow
}

func (m *Manager) closeFocused(ctx context.Context) error {
	id, err := m.focusedWindow(ctx)
	if err != nil {
		return err
	}
	// The window leaves the layout when the next poll sees it gone.
	return m.ports.Control.Close(ctx, id)
}

func (m *Manager) shiftFocus(ctx context.Context, dir types.Direction) error {
	if id, err := m.focusedWindow(ctx); err == nil {
		_ = m.displays.SetFocused(id)
	}
	id, err := m.displays.ShiftFocus(dir)
	if err != nil {
		return err
	}
	return m.focusWindow(ctx, id)
}

func (m *Manager) split(axis types.Axis) error {
	if err := m.displays.Split(axis); err != nil {
		return err
	}
	logging.Info().Str("axis", axis.String()).Msg("split focused container")
	return nil
}

// focusLogicalDisplay shows workspace lid on its monitor. The workspace it
// replaces is minimised, or deleted when it held no windows.
func (m *Manager) focusLogicalDisplay(ctx context.Context, lid types.LogicalDisplayID) error {
	var hide []types.WindowID
	if owner, ok := m.displays.OwnerOf(lid); ok {
		if pd, ok := m.displays.Physical(owner); ok {
			hide = pd.Active().WindowIDs()
		}
	} else if pd, err := m.displays.ActivePhysical(); err == nil {
		hide = pd.Active().WindowIDs()
	}

	res, err := m.displays.SwitchLogicalDisplay(lid)
	if err != nil {
		return err
	}
	if !res.Changed() {
		return m.focusActive(ctx)
	}

	logging.Info().
		Uint32("displayId", uint32(res.Physical)).
		Int("from", int(res.From)).
		Int("logicalId", int(res.To)).
		Bool("removed", res.Removed).
		Msg("switched logical display")
	return m.showWorkspace(ctx, hide, lid)
}

// moveFocusedToDisplay sends the focused window to workspace lid, creating
// it on the active monitor when needed. The window is minimised when lid is
// not on screen.
func (m *Manager) moveFocusedToDisplay(ctx context.Context, lid types.LogicalDisplayID) error {
	if lid < 0 || lid > types.MaxLogicalDisplayID {
		return fmt.Errorf("logical display %d out of range", lid)
	}
	id, err := m.focusedWindow(ctx)
	if err != nil {
		return err
	}
	src, _ := m.displays.LogicalOfWindow(id)
	if src == lid {
		return nil
	}
	owner, _ := m.displays.DisplayOfWindow(id)

	w, err := m.displays.RemoveWindow(owner, id)
	if err != nil {
		return err
	}
	var errs []error
	if err := m.displays.AddWindowToLogical(w, lid); err != nil {
		if !m.managed(id) {
			// Put it back where it came from rather than lose it.
			backErr := m.displays.AddWindowToLogical(w, src)
			if !m.managed(id) {
				m.poller.Forget(id)
				delete(m.apps, id)
			}
			return errors.Join(err, backErr)
		}
		// Tiled on lid but not fully positioned.
		errs = append(errs, err)
	}

	if !m.visible(lid) {
		if err := m.hide(ctx, id); err != nil {
			errs = append(errs, err)
		}
	}
	if err := m.displays.FocusDisplay(lid); err != nil {
		errs = append(errs, err)
	}
	if err := m.focusActive(ctx); err != nil {
		errs = append(errs, err)
	}

	logging.Info().
		Uint32("windowId", uint32(id)).
		Int("from", int(src)).
		Int("logicalId", int(lid)).
		Msg("moved window to logical display")
	return errors.Join(errs...)
}

// visible reports whether lid is the workspace its monitor is showing.
func (m *Manager) visible(lid types.LogicalDisplayID) bool {
	owner, ok := m.displays.OwnerOf(lid)
	if !ok {
		return false
	}
	pd, ok := m.displays.Physical(owner)
	return ok && pd.ActiveID() == lid
}
