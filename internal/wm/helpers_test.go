package wm

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"testing"

	"github.com/yourusername/gridwm/internal/display"
	"github.com/yourusername/gridwm/internal/events"
	"github.com/yourusername/gridwm/internal/layout"
	"github.com/yourusername/gridwm/internal/server"
	"github.com/yourusername/gridwm/internal/types"
	"github.com/yourusername/gridwm/internal/window"
	"github.com/yourusername/gridwm/internal/window/windowtest"
)

var (
	monitor      = types.Rect{X: 0, Y: 0, Width: 1000, Height: 800}
	rightMonitor = types.Rect{X: 1000, Y: 0, Width: 1000, Height: 800}
)

// fakeBackend plays the server: it serves snapshots of an in-memory window
// list and records every focus, minimise and close request.
type fakeBackend struct {
	mu        sync.Mutex
	rec       *windowtest.Recorder
	displays  []server.DisplayInfo
	windows   []server.WindowInfo
	minimized map[types.WindowID]bool
	focused   types.WindowID
	calls     []string
	launched  int
	hotkeys   []string
	snapErr   error
}

func newFakeBackend(ids ...types.WindowID) *fakeBackend {
	f := &fakeBackend{
		rec:       windowtest.NewRecorder(),
		displays:  []server.DisplayInfo{{ID: 1, Frame: monitor, IsMain: true}},
		minimized: make(map[types.WindowID]bool),
	}
	for _, id := range ids {
		f.open(id, 1)
	}
	return f
}

func (f *fakeBackend) open(id types.WindowID, pid types.PhysicalDisplayID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.windows = append(f.windows, server.WindowInfo{ID: id, AppName: fmt.Sprintf("app%d", id), DisplayID: pid})
	sort.Slice(f.windows, func(i, j int) bool { return f.windows[i].ID < f.windows[j].ID })
}

func (f *fakeBackend) closeWindow(id types.WindowID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, w := range f.windows {
		if w.ID == id {
			f.windows = append(f.windows[:i], f.windows[i+1:]...)
			return
		}
	}
}

func (f *fakeBackend) record(format string, args ...interface{}) {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *fakeBackend) called(call string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if c == call {
			return true
		}
	}
	return false
}

func (f *fakeBackend) Window(id types.WindowID, minWidth, minHeight float64) window.Window {
	return f.rec.Window(id).WithMinSize(minWidth, minHeight)
}

func (f *fakeBackend) Snapshot(ctx context.Context) (*server.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.snapErr != nil {
		return nil, f.snapErr
	}
	snap := &server.Snapshot{
		Displays:        append([]server.DisplayInfo(nil), f.displays...),
		FocusedWindowID: f.focused,
	}
	for _, w := range f.windows {
		w.IsMinimized = f.minimized[w.ID]
		snap.Windows = append(snap.Windows, w)
	}
	return snap, nil
}

func (f *fakeBackend) Focus(ctx context.Context, id types.WindowID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.focused = id
	f.record("focus %d", id)
	return nil
}

func (f *fakeBackend) FocusedWindow(ctx context.Context) (types.WindowID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.focused, nil
}

func (f *fakeBackend) WarpMouse(ctx context.Context, id types.WindowID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("warp %d", id)
	return nil
}

func (f *fakeBackend) WarpMouseTo(ctx context.Context, p types.Point) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("warp %.0f,%.0f", p.X, p.Y)
	return nil
}

func (f *fakeBackend) Minimize(ctx context.Context, id types.WindowID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.minimized[id] = true
	f.record("minimize %d", id)
	return nil
}

func (f *fakeBackend) Unminimize(ctx context.Context, id types.WindowID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.minimized, id)
	f.record("unminimize %d", id)
	return nil
}

func (f *fakeBackend) Close(ctx context.Context, id types.WindowID) error {
	f.mu.Lock()
	f.record("close %d", id)
	f.mu.Unlock()
	f.closeWindow(id)
	return nil
}

func (f *fakeBackend) OpenTerminal(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.launched++
	return nil
}

func (f *fakeBackend) RegisterHotkeys(ctx context.Context, chords []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hotkeys = chords
	return nil
}

func (f *fakeBackend) ports() Ports {
	return Ports{Windows: f, Enumerator: f, Focuser: f, Control: f, Launcher: f, Hotkeys: f}
}

// testDisplayConfig has no padding or chrome. Two windows fit side by side
// on monitor, a third overflows.
func testDisplayConfig() display.Config {
	return display.Config{
		ResizeStep: 50,
		Fit:        layout.FitPolicy{MinWidth: 400, MinHeight: 300},
	}
}

func newManager(t *testing.T, f *fakeBackend) *Manager {
	t.Helper()
	km, err := events.NewKeymap(events.DefaultBindings())
	if err != nil {
		t.Fatal(err)
	}
	m := New(f.ports(), Options{
		Display:    testDisplayConfig(),
		Keymap:     km,
		StatusPath: filepath.Join(t.TempDir(), "status.json"),
	})
	if err := m.Bootstrap(context.Background()); err != nil {
		t.Fatalf("Bootstrap() error = %v", err)
	}
	return m
}

func poll(t *testing.T, m *Manager) {
	t.Helper()
	if err := m.Poll(context.Background()); err != nil {
		t.Fatalf("Poll() error = %v", err)
	}
}

func key(m *Manager, cmd events.Command) {
	m.HandleEvent(context.Background(), events.KeyCommand{Command: cmd})
}

func wantBounds(t *testing.T, f *fakeBackend, id types.WindowID, want types.Rect) {
	t.Helper()
	if got, _ := f.rec.Bounds(id); got != want {
		t.Errorf("window %d bounds = %+v, want %+v", id, got, want)
	}
}
