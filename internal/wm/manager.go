// Package wm is the window manager event loop. It turns server snapshots and
// hotkeys into layout operations on a display.Displays and pushes the
// results back to the native windows.
package wm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yourusername/gridwm/internal/display"
	"github.com/yourusername/gridwm/internal/events"
	"github.com/yourusername/gridwm/internal/layout"
	"github.com/yourusername/gridwm/internal/logging"
	"github.com/yourusername/gridwm/internal/reconcile"
	"github.com/yourusername/gridwm/internal/state"
	"github.com/yourusername/gridwm/internal/sysinfo"
	"github.com/yourusername/gridwm/internal/types"
	"github.com/yourusername/gridwm/internal/window"
)

// DefaultPollInterval is used when Options.PollInterval is zero.
const DefaultPollInterval = 100 * time.Millisecond

// Options configures a Manager.
type Options struct {
	Display      display.Config
	Keymap       events.Keymap
	Ignore       func(app string) bool
	StatusPath   string // empty disables the status file
	PollInterval time.Duration
}

// Manager owns the display registry. It is not safe for concurrent use;
// Run is the only goroutine that should call its methods.
type Manager struct {
	ports    Ports
	displays *display.Displays
	poller   *reconcile.Poller
	keymap   events.Keymap
	apps     map[types.WindowID]string

	statusPath string
	interval   time.Duration
	system     *sysinfo.Info
}

// New creates a manager with no displays. Call Bootstrap before Run.
func New(ports Ports, opts Options) *Manager {
	interval := opts.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Manager{
		ports:      ports,
		displays:   display.New(opts.Display),
		poller:     reconcile.NewPoller(opts.Ignore),
		keymap:     opts.Keymap,
		apps:       make(map[types.WindowID]string),
		statusPath: opts.StatusPath,
		interval:   interval,
	}
}

// Displays exposes the registry for inspection.
func (m *Manager) Displays() *display.Displays { return m.displays }

// StatusPath returns where the status file is currently written. A config
// reload may change it.
func (m *Manager) StatusPath() string { return m.statusPath }

// Bootstrap registers every connected display, tiles the windows already
// open and focuses whatever the OS has focused. The first poll does all of
// that, since every display and window is new to an empty poller.
func (m *Manager) Bootstrap(ctx context.Context) error {
	snap, err := m.ports.Enumerator.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("failed to enumerate displays: %w", err)
	}

	for _, ev := range m.poller.Diff(snap) {
		m.HandleEvent(ctx, ev)
	}

	if _, ok := m.displays.Focused(); !ok {
		// Nothing tileable was focused: start on the main display.
		for _, d := range snap.Displays {
			if !d.IsMain {
				continue
			}
			if pd, ok := m.displays.Physical(d.ID); ok {
				_ = m.displays.FocusDisplay(pd.ActiveID())
			}
		}
	}

	if err := m.registerHotkeys(ctx); err != nil {
		logging.Warn().Err(err).Msg("failed to register hotkeys")
	}

	logging.Info().
		Int("displays", len(m.displays.PhysicalIDs())).
		Int("windows", len(m.apps)).
		Msg("bootstrap complete")
	m.writeStatus()
	return nil
}

// Poll fetches a snapshot and handles the changes since the last one.
func (m *Manager) Poll(ctx context.Context) error {
	snap, err := m.ports.Enumerator.Snapshot(ctx)
	if err != nil {
		return err
	}
	evs := m.poller.Diff(snap)
	for _, ev := range evs {
		m.HandleEvent(ctx, ev)
	}
	if len(evs) > 0 {
		m.writeStatus()
	}
	return nil
}

// HandleEvent applies one event. Failures are logged and the loop carries
// on; the layout tree stays authoritative and the next re-tile resyncs the
// native windows.
func (m *Manager) HandleEvent(ctx context.Context, ev events.Event) {
	var err error
	switch e := ev.(type) {
	case events.WindowAdded:
		logging.Debug().Uint32("windowId", uint32(e.Window)).Str("app", e.App).Msg("received window added")
		err = m.windowAdded(ctx, e)
	case events.WindowRemoved:
		logging.Debug().Uint32("windowId", uint32(e.Window)).Msg("received window removed")
		err = m.windowRemoved(e)
	case events.WindowFocused:
		logging.Debug().Uint32("windowId", uint32(e.Window)).Msg("received window focused")
		err = m.windowFocused(ctx, e)
	case events.DisplayAdded:
		logging.Info().Uint32("displayId", uint32(e.Display)).Bool("main", e.Main).Msg("display added")
		err = m.displayAdded(e)
	case events.DisplayRemoved:
		logging.Info().Uint32("displayId", uint32(e.Display)).Msg("display removed")
		err = m.displayRemoved(ctx, e)
	case events.KeyCommand:
		logging.Info().Str("command", e.Command.String()).Msg("received key command")
		err = m.keyCommand(ctx, e.Command)
	default:
		err = fmt.Errorf("unhandled event %q", ev.EventName())
	}

	if err == nil {
		return
	}
	if errors.Is(err, layout.ErrCannotResizeRoot) || errors.Is(err, display.ErrCannotFocusEmptyDisplay) {
		logging.Debug().Str("event", ev.EventName()).Err(err).Msg("event ignored")
		return
	}
	logging.Error().Str("event", ev.EventName()).Err(err).Msg("failed to handle event")
}

func (m *Manager) windowAdded(ctx context.Context, e events.WindowAdded) error {
	// New windows open where they appeared.
	if pd, ok := m.displays.Physical(e.Display); ok {
		_ = m.displays.FocusDisplay(pd.ActiveID())
	}

	if m.managed(e.Window) {
		return nil
	}
	m.apps[e.Window] = e.App

	w := m.ports.Windows.Window(e.Window, e.MinWidth, e.MinHeight)
	res, err := m.place(ctx, w)
	if !m.managed(e.Window) {
		delete(m.apps, e.Window)
		return fmt.Errorf("add window %d: %w", e.Window, err)
	}

	logging.Info().
		Uint32("windowId", uint32(e.Window)).
		Int("logicalId", int(res.Logical)).
		Str("placement", res.Placement.String()).
		Msg("window added")
	return err
}

// place tiles w on the active workspace. On overflow the new workspace
// replaces the old one on screen, so the old one's windows are minimised.
func (m *Manager) place(ctx context.Context, w window.Window) (display.AddResult, error) {
	res, err := m.displays.AddWindow(w)
	if err != nil && !m.managed(w.ID) {
		return res, err
	}

	if res.Placement == display.PlacedOverflow {
		var hide []types.WindowID
		if prev, ok := m.displays.Logical(res.Previous); ok {
			hide = prev.WindowIDs()
		}
		return res, errors.Join(err, m.showWorkspace(ctx, hide, res.Logical))
	}
	return res, errors.Join(err, m.show(ctx, w.ID))
}

func (m *Manager) windowRemoved(e events.WindowRemoved) error {
	delete(m.apps, e.Window)

	pid, ok := m.displays.DisplayOfWindow(e.Window)
	if !ok {
		logging.Debug().Uint32("windowId", uint32(e.Window)).Msg("removed window was not managed")
		return nil
	}
	lid, _ := m.displays.LogicalOfWindow(e.Window)
	if _, err := m.displays.RemoveWindow(pid, e.Window); err != nil {
		return fmt.Errorf("remove window %d: %w", e.Window, err)
	}

	logging.Info().
		Uint32("windowId", uint32(e.Window)).
		Uint32("displayId", uint32(pid)).
		Int("logicalId", int(lid)).
		Msg("window removed")
	return nil
}

func (m *Manager) windowFocused(ctx context.Context, e events.WindowFocused) error {
	lid, ok := m.displays.LogicalOfWindow(e.Window)
	if !ok {
		return nil
	}
	// The user brought back a window from a workspace that is not on
	// screen: follow it there.
	if !m.visible(lid) {
		if err := m.focusLogicalDisplay(ctx, lid); err != nil {
			return err
		}
	}
	if err := m.displays.SetFocused(e.Window); err != nil {
		return fmt.Errorf("focus window %d: %w", e.Window, err)
	}
	return nil
}

func (m *Manager) displayAdded(e events.DisplayAdded) error {
	prev, hadActive := m.activeLogical()
	if err := m.displays.AddPhysical(e.Display, e.Bounds); err != nil {
		return err
	}
	// A monitor plugged in later does not steal the active display unless
	// it is the main one.
	if hadActive && !e.Main {
		return m.displays.FocusDisplay(prev)
	}
	return nil
}

func (m *Manager) displayRemoved(ctx context.Context, e events.DisplayRemoved) error {
	orphans, err := m.displays.RemovePhysical(e.Display)
	if err != nil {
		return err
	}

	var errs []error
	for _, w := range orphans {
		if _, err := m.place(ctx, w); err != nil {
			errs = append(errs, fmt.Errorf("rehome window %d: %w", w.ID, err))
		}
		if !m.managed(w.ID) {
			// Let the next poll offer it again.
			m.poller.Forget(w.ID)
			delete(m.apps, w.ID)
		}
	}
	return errors.Join(errs...)
}

// managed reports whether id is tiled on any workspace.
func (m *Manager) managed(id types.WindowID) bool {
	_, ok := m.displays.DisplayOfWindow(id)
	return ok
}

func (m *Manager) activeLogical() (types.LogicalDisplayID, bool) {
	lid, err := m.displays.ActiveLogicalID()
	return lid, err == nil
}

// hide minimises id and remembers that the manager did it.
func (m *Manager) hide(ctx context.Context, id types.WindowID) error {
	m.poller.MarkHidden(id)
	if err := m.ports.Control.Minimize(ctx, id); err != nil {
		return fmt.Errorf("minimise window %d: %w", id, err)
	}
	return nil
}

// show restores id. Its hidden mark is cleared by the poller once the
// window reports as visible again.
func (m *Manager) show(ctx context.Context, id types.WindowID) error {
	if !m.poller.IsHidden(id) {
		return nil
	}
	if err := m.ports.Control.Unminimize(ctx, id); err != nil {
		return fmt.Errorf("restore window %d: %w", id, err)
	}
	return nil
}

// showWorkspace minimises the windows in hide, restores and re-tiles the
// windows of lid, and focuses its focused window.
func (m *Manager) showWorkspace(ctx context.Context, hide []types.WindowID, lid types.LogicalDisplayID) error {
	var errs []error
	for _, id := range hide {
		if err := m.hide(ctx, id); err != nil {
			errs = append(errs, err)
		}
	}

	l, ok := m.displays.Logical(lid)
	if !ok {
		return errors.Join(append(errs, fmt.Errorf("logical display %d: %w", lid, display.ErrDisplayNotFound))...)
	}
	for _, id := range l.WindowIDs() {
		if err := m.show(ctx, id); err != nil {
			errs = append(errs, err)
		}
	}
	if err := l.Refresh(); err != nil {
		errs = append(errs, err)
	}
	if err := m.focusActive(ctx); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// focusActive gives OS focus to the focused window of the active workspace
// and moves the pointer onto it. With no window to focus the pointer goes to
// the middle of the active monitor.
func (m *Manager) focusActive(ctx context.Context) error {
	id, ok := m.displays.Focused()
	if ok {
		return m.focusWindow(ctx, id)
	}
	pd, err := m.displays.ActivePhysical()
	if err != nil {
		return nil
	}
	if err := m.ports.Focuser.WarpMouseTo(ctx, pd.Bounds().Center()); err != nil {
		logging.Debug().Uint32("displayId", uint32(pd.ID())).Err(err).Msg("failed to warp mouse")
	}
	return nil
}

func (m *Manager) focusWindow(ctx context.Context, id types.WindowID) error {
	if err := m.ports.Focuser.Focus(ctx, id); err != nil {
		return fmt.Errorf("focus window %d: %w", id, err)
	}
	if err := m.ports.Focuser.WarpMouse(ctx, id); err != nil {
		logging.Debug().Uint32("windowId", uint32(id)).Err(err).Msg("failed to warp mouse")
	}
	return nil
}

func (m *Manager) registerHotkeys(ctx context.Context) error {
	if m.ports.Hotkeys == nil || len(m.keymap) == 0 {
		return nil
	}
	return m.ports.Hotkeys.RegisterHotkeys(ctx, m.keymap.Chords())
}

// Status captures the current layout for the status file.
func (m *Manager) Status() *state.Status {
	s := state.FromDisplays(m.displays, m.apps)
	s.System = m.system
	return s
}

func (m *Manager) writeStatus() {
	if m.statusPath == "" {
		return
	}
	if err := m.Status().SaveTo(m.statusPath); err != nil {
		logging.Warn().Str("path", m.statusPath).Err(err).Msg("failed to write status file")
	}
}
