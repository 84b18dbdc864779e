package wm

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/yourusername/gridwm/internal/config"
	"github.com/yourusername/gridwm/internal/events"
	"github.com/yourusername/gridwm/internal/server"
	"github.com/yourusername/gridwm/internal/state"
	"github.com/yourusername/gridwm/internal/types"
)

func TestBootstrap(t *testing.T) {
	f := newFakeBackend(1, 2)
	f.focused = 1
	m := newManager(t, f)

	wantBounds(t, f, 1, types.Rect{X: 0, Y: 0, Width: 500, Height: 800})
	wantBounds(t, f, 2, types.Rect{X: 500, Y: 0, Width: 500, Height: 800})

	if id, ok := m.Displays().Focused(); !ok || id != 1 {
		t.Errorf("Focused() = (%d, %v), want (1, true)", id, ok)
	}
	if len(f.hotkeys) == 0 {
		t.Error("hotkeys were not registered")
	}

	s, err := state.Load(m.statusPath)
	if err != nil {
		t.Fatalf("state.Load() error = %v", err)
	}
	if s.WindowCount() != 2 {
		t.Errorf("status WindowCount() = %d, want 2", s.WindowCount())
	}
	if _, _, ok := s.FindWindow(2); !ok {
		t.Error("status is missing window 2")
	}
}

func TestBootstrap_EnumerateFails(t *testing.T) {
	f := newFakeBackend()
	f.snapErr = errors.New("server down")
	m := New(f.ports(), Options{Display: testDisplayConfig()})
	if err := m.Bootstrap(context.Background()); err == nil {
		t.Error("Bootstrap() error = nil, want error")
	}
}

func TestBootstrap_IgnoredApps(t *testing.T) {
	f := newFakeBackend(1, 2)
	m := New(f.ports(), Options{
		Display: testDisplayConfig(),
		Ignore:  func(app string) bool { return app == "app2" },
	})
	if err := m.Bootstrap(context.Background()); err != nil {
		t.Fatal(err)
	}
	if m.managed(2) {
		t.Error("ignored window 2 is managed")
	}
	wantBounds(t, f, 1, monitor)
}

func TestPollAddsAndRemoves(t *testing.T) {
	f := newFakeBackend(1)
	m := newManager(t, f)
	wantBounds(t, f, 1, monitor)

	f.open(2, 1)
	poll(t, m)
	wantBounds(t, f, 1, types.Rect{X: 0, Y: 0, Width: 500, Height: 800})

	f.closeWindow(1)
	poll(t, m)
	wantBounds(t, f, 2, monitor)
	if m.managed(1) {
		t.Error("closed window 1 is still managed")
	}
}

func TestOverflowMinimisesPrevious(t *testing.T) {
	f := newFakeBackend(1, 2)
	m := newManager(t, f)

	f.open(3, 1)
	poll(t, m)

	lid, err := m.Displays().ActiveLogicalID()
	if err != nil || lid != 1 {
		t.Fatalf("ActiveLogicalID() = (%d, %v), want (1, nil)", lid, err)
	}
	for _, call := range []string{"minimize 1", "minimize 2", "focus 3"} {
		if !f.called(call) {
			t.Errorf("missing call %q in %v", call, f.calls)
		}
	}
	wantBounds(t, f, 3, monitor)

	// The minimised windows stay managed on their workspace.
	poll(t, m)
	for _, id := range []types.WindowID{1, 2} {
		if got, ok := m.Displays().LogicalOfWindow(id); !ok || got != 0 {
			t.Errorf("LogicalOfWindow(%d) = (%d, %v), want (0, true)", id, got, ok)
		}
	}
}

func TestWindowFocusedEvent(t *testing.T) {
	f := newFakeBackend(1, 2)
	m := newManager(t, f)

	f.focused = 1
	poll(t, m)
	if id, _ := m.Displays().Focused(); id != 1 {
		t.Errorf("Focused() = %d, want 1", id)
	}

	// Unmanaged windows do not move layout focus.
	f.focused = 99
	poll(t, m)
	if id, _ := m.Displays().Focused(); id != 1 {
		t.Errorf("Focused() = %d after unmanaged focus, want 1", id)
	}
}

func TestDisplayHotplug(t *testing.T) {
	f := newFakeBackend(1)
	m := newManager(t, f)

	f.displays = append(f.displays, server.DisplayInfo{ID: 2, Frame: rightMonitor})
	poll(t, m)

	if lid, _ := m.Displays().ActiveLogicalID(); lid != 0 {
		t.Errorf("ActiveLogicalID() = %d after plugging a second monitor, want 0", lid)
	}
	if owner, ok := m.Displays().OwnerOf(1); !ok || owner != 2 {
		t.Errorf("OwnerOf(1) = (%d, %v), want (2, true)", owner, ok)
	}

	// Unplugging the main monitor moves its windows to the other one.
	f.displays = []server.DisplayInfo{{ID: 2, Frame: rightMonitor, IsMain: true}}
	f.windows[0].DisplayID = 2
	poll(t, m)

	if pid, ok := m.Displays().DisplayOfWindow(1); !ok || pid != 2 {
		t.Errorf("DisplayOfWindow(1) = (%d, %v), want (2, true)", pid, ok)
	}
	wantBounds(t, f, 1, rightMonitor)
}

func TestApplyConfig(t *testing.T) {
	f := newFakeBackend(1)
	m := newManager(t, f)

	cfg := config.DefaultConfig()
	cfg.Settings.WindowPadding = 10
	cfg.Settings.MenuBarHeight = 0
	cfg.Settings.StatusBarHeight = 0
	cfg.Settings.StatusPath = m.statusPath
	cfg.Keybindings = map[string]string{"ctrl+t": "new-terminal"}
	cfg.IgnoreApps = []string{"app1"}

	if err := m.ApplyConfig(context.Background(), cfg); err != nil {
		t.Fatalf("ApplyConfig() error = %v", err)
	}
	wantBounds(t, f, 1, types.Rect{X: 10, Y: 10, Width: 980, Height: 780})
	if len(f.hotkeys) != 1 || f.hotkeys[0] != "ctrl+t" {
		t.Errorf("hotkeys = %v, want [ctrl+t]", f.hotkeys)
	}

	// app1 is now ignored, so the next poll stops managing it.
	poll(t, m)
	if m.managed(1) {
		t.Error("window 1 still managed after its app was ignored")
	}

	bad := config.DefaultConfig()
	bad.Keybindings = map[string]string{"ctrl+t": "explode"}
	if err := m.ApplyConfig(context.Background(), bad); err == nil {
		t.Error("ApplyConfig() with a bad binding error = nil, want error")
	}
}

func TestApplyConfig_StatusPath(t *testing.T) {
	f := newFakeBackend(1)
	m := newManager(t, f)
	old := m.StatusPath()
	if _, err := os.Stat(old); err != nil {
		t.Fatalf("status file missing after bootstrap: %v", err)
	}

	cfg := config.DefaultConfig()
	cfg.Settings.StatusPath = filepath.Join(t.TempDir(), "moved.json")
	if err := m.ApplyConfig(context.Background(), cfg); err != nil {
		t.Fatalf("ApplyConfig() error = %v", err)
	}

	if got := m.StatusPath(); got != cfg.Settings.StatusPath {
		t.Errorf("StatusPath() = %q, want %q", got, cfg.Settings.StatusPath)
	}
	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Errorf("old status file still present (stat error = %v)", err)
	}
	if _, err := os.Stat(cfg.Settings.StatusPath); err != nil {
		t.Errorf("new status file not written: %v", err)
	}
}

func TestStatusIncludesApps(t *testing.T) {
	f := newFakeBackend(1)
	m := newManager(t, f)

	s := m.Status()
	ws, ok := s.ActiveWorkspace()
	if !ok || len(ws.Windows) != 1 {
		t.Fatalf("ActiveWorkspace() = (%+v, %v), want one window", ws, ok)
	}
	if ws.Windows[0].App != "app1" {
		t.Errorf("App = %q, want %q", ws.Windows[0].App, "app1")
	}
}

func TestWindowFocusedOnHiddenWorkspace(t *testing.T) {
	f := newFakeBackend(1)
	m := newManager(t, f)

	key(m, events.Command{Kind: events.CmdFocusDisplay, Target: 2})
	poll(t, m)

	// The user restores window 1 from the dock.
	delete(f.minimized, 1)
	f.focused = 1
	poll(t, m)

	if lid, _ := m.Displays().ActiveLogicalID(); lid != 0 {
		t.Errorf("ActiveLogicalID() = %d, want 0", lid)
	}
	if id, _ := m.Displays().Focused(); id != 1 {
		t.Errorf("Focused() = %d, want 1", id)
	}
}
