package wm

import (
	"context"
	"testing"
	"time"

	"github.com/yourusername/gridwm/internal/events"
	"github.com/yourusername/gridwm/internal/models"
	"github.com/yourusername/gridwm/internal/types"
)

func TestFocusShift(t *testing.T) {
	f := newFakeBackend(1, 2)
	f.focused = 1
	m := newManager(t, f)

	key(m, events.Command{Kind: events.CmdFocus, Dir: types.DirRight})

	if f.focused != 2 {
		t.Errorf("OS focus = %d, want 2", f.focused)
	}
	if !f.called("warp 2") {
		t.Errorf("mouse was not warped to window 2: %v", f.calls)
	}

	// At the edge focus stays put.
	key(m, events.Command{Kind: events.CmdFocus, Dir: types.DirRight})
	if f.focused != 2 {
		t.Errorf("OS focus = %d at the right edge, want 2", f.focused)
	}
}

func TestResizeCommand(t *testing.T) {
	f := newFakeBackend(1, 2)
	f.focused = 1
	m := newManager(t, f)

	key(m, events.Command{Kind: events.CmdResizeWindow, Dir: types.DirRight})
	if got, _ := f.rec.Bounds(1); got.Width != 550 {
		t.Errorf("window 1 width = %v, want 550", got.Width)
	}
	if got, _ := f.rec.Bounds(2); got.Width != 450 {
		t.Errorf("window 2 width = %v, want 450", got.Width)
	}
}

func TestSplitCommand(t *testing.T) {
	f := newFakeBackend(1, 2)
	f.focused = 2
	m := newManager(t, f)

	key(m, events.Command{Kind: events.CmdToggleVerticalSplit})
	f.open(3, 1)
	poll(t, m)

	// Window 3 joins window 2 in a vertical stack on the right half.
	wantBounds(t, f, 1, types.Rect{X: 0, Y: 0, Width: 500, Height: 800})
	wantBounds(t, f, 2, types.Rect{X: 500, Y: 0, Width: 500, Height: 400})
	wantBounds(t, f, 3, types.Rect{X: 500, Y: 400, Width: 500, Height: 400})
}

func TestFocusLogicalDisplay(t *testing.T) {
	f := newFakeBackend(1)
	m := newManager(t, f)

	key(m, events.Command{Kind: events.CmdFocusDisplay, Target: 3})
	if lid, _ := m.Displays().ActiveLogicalID(); lid != 3 {
		t.Fatalf("ActiveLogicalID() = %d, want 3", lid)
	}
	if !f.called("minimize 1") {
		t.Errorf("window 1 was not minimised: %v", f.calls)
	}
	if !f.called("warp 500,400") {
		t.Errorf("mouse was not warped to the empty monitor's center: %v", f.calls)
	}

	// The minimised window is not mistaken for a closed one.
	poll(t, m)
	if !m.managed(1) {
		t.Fatal("window 1 dropped after being minimised by a switch")
	}

	key(m, events.Command{Kind: events.CmdFocusDisplay, Target: 0})
	if !f.called("unminimize 1") {
		t.Errorf("window 1 was not restored: %v", f.calls)
	}
	if !f.called("focus 1") {
		t.Errorf("window 1 was not focused: %v", f.calls)
	}
	ids := m.Displays().AllLogicalIDs()
	if len(ids) != 1 || ids[0] != 0 {
		t.Errorf("AllLogicalIDs() = %v, want [0] once the empty workspace is left", ids)
	}

	poll(t, m)
	if m.poller.IsHidden(1) {
		t.Error("window 1 still marked hidden after it came back")
	}
}

func TestFocusLogicalDisplay_AlreadyShowing(t *testing.T) {
	f := newFakeBackend(1)
	m := newManager(t, f)

	key(m, events.Command{Kind: events.CmdFocusDisplay, Target: 0})
	if f.called("minimize 1") {
		t.Error("switching to the visible workspace minimised its window")
	}
	if !f.called("focus 1") {
		t.Errorf("window 1 was not focused: %v", f.calls)
	}
}

func TestMoveWindowToDisplay(t *testing.T) {
	f := newFakeBackend(1, 2)
	f.focused = 2
	m := newManager(t, f)

	key(m, events.Command{Kind: events.CmdMoveWindowToDisplay, Target: 4})

	if lid, ok := m.Displays().LogicalOfWindow(2); !ok || lid != 4 {
		t.Errorf("LogicalOfWindow(2) = (%d, %v), want (4, true)", lid, ok)
	}
	if !f.called("minimize 2") {
		t.Errorf("moved window was not minimised: %v", f.calls)
	}
	wantBounds(t, f, 1, monitor)
	if f.focused != 1 {
		t.Errorf("OS focus = %d, want 1", f.focused)
	}

	poll(t, m)
	if !m.managed(2) {
		t.Error("moved window dropped on the next poll")
	}
}

func TestMoveWindowToDisplay_MoveFails(t *testing.T) {
	f := newFakeBackend(1, 2)
	f.focused = 2
	m := newManager(t, f)
	f.rec.FailMove[2] = true

	key(m, events.Command{Kind: events.CmdMoveWindowToDisplay, Target: 4})

	// The window is tiled on the target even though it could not be placed,
	// so it is hidden with the rest of that workspace.
	if lid, ok := m.Displays().LogicalOfWindow(2); !ok || lid != 4 {
		t.Errorf("LogicalOfWindow(2) = (%d, %v), want (4, true)", lid, ok)
	}
	if !f.called("minimize 2") {
		t.Errorf("moved window was not minimised: %v", f.calls)
	}
	if !m.poller.Known(2) {
		t.Error("poller forgot the moved window")
	}
	if got := m.apps[2]; got != "app2" {
		t.Errorf("apps[2] = %q, want app2", got)
	}
	wantBounds(t, f, 1, monitor)
}

func TestMoveWindowToDisplay_SameWorkspace(t *testing.T) {
	f := newFakeBackend(1)
	f.focused = 1
	m := newManager(t, f)

	key(m, events.Command{Kind: events.CmdMoveWindowToDisplay, Target: 0})
	if f.called("minimize 1") {
		t.Error("moving to the current workspace minimised the window")
	}
	wantBounds(t, f, 1, monitor)
}

func TestCloseWindow(t *testing.T) {
	f := newFakeBackend(1, 2)
	f.focused = 2
	m := newManager(t, f)

	key(m, events.Command{Kind: events.CmdCloseWindow})
	if !f.called("close 2") {
		t.Fatalf("close was not requested: %v", f.calls)
	}

	poll(t, m)
	if m.managed(2) {
		t.Error("closed window still managed")
	}
	wantBounds(t, f, 1, monitor)
}

func TestNewTerminal(t *testing.T) {
	f := newFakeBackend()
	m := newManager(t, f)

	key(m, events.Command{Kind: events.CmdNewTerminal})
	if f.launched != 1 {
		t.Errorf("launched = %d, want 1", f.launched)
	}
}

func TestServerEventHotkey(t *testing.T) {
	f := newFakeBackend(1, 2)
	f.focused = 1
	m := newManager(t, f)

	m.serverEvent(context.Background(), &models.Event{
		EventType: models.EventHotkey,
		Data:      map[string]interface{}{"chord": "Alt+L"},
	})
	if f.focused != 2 {
		t.Errorf("OS focus = %d after alt+l, want 2", f.focused)
	}

	// Unbound chords do nothing but still poll.
	f.open(3, 1)
	f.open(4, 1)
	m.serverEvent(context.Background(), &models.Event{
		EventType: models.EventHotkey,
		Data:      map[string]interface{}{"chord": "ctrl+z"},
	})
	if !m.managed(3) {
		t.Error("window 3 not picked up by the poll after a hotkey")
	}
}

func TestRun(t *testing.T) {
	f := newFakeBackend(1, 2)
	f.focused = 1
	m := newManager(t, f)

	ctx, cancel := context.WithCancel(context.Background())
	serverEvents := make(chan *models.Event)
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx, Sources{Server: serverEvents}) }()

	serverEvents <- &models.Event{
		EventType: models.EventHotkey,
		Data:      map[string]interface{}{"chord": "alt+shift+l"},
	}
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() error = %v, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not stop after cancel")
	}

	if got, _ := f.rec.Bounds(1); got.Width != 550 {
		t.Errorf("window 1 width = %v after alt+shift+l, want 550", got.Width)
	}
}

func TestCommandLauncher(t *testing.T) {
	if err := (CommandLauncher{}).OpenTerminal(context.Background()); err == nil {
		t.Error("OpenTerminal() with no command error = nil, want error")
	}
	if err := (CommandLauncher{Command: "gridwm-no-such-binary --flag"}).OpenTerminal(context.Background()); err == nil {
		t.Error("OpenTerminal() with a missing binary error = nil, want error")
	}
}
