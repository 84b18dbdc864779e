package display

import (
	"errors"
	"testing"

	"github.com/yourusername/gridwm/internal/layout"
	"github.com/yourusername/gridwm/internal/types"
	"github.com/yourusername/gridwm/internal/window/windowtest"
)

func TestPhysicalAddWindowGoesToActive(t *testing.T) {
	rec := windowtest.NewRecorder()
	pd := NewPhysicalDisplay(1, monitor, 0, testConfig())
	pd.CreateLogicalDisplay(1)

	if err := pd.AddWindow(rec.Window(7)); err != nil {
		t.Fatalf("AddWindow() error = %v", err)
	}
	if lid, ok := pd.LogicalOf(7); !ok || lid != 0 {
		t.Errorf("LogicalOf(7) = (%d, %v), want (0, true)", lid, ok)
	}
	if other, _ := pd.Logical(1); !other.IsEmpty() {
		t.Error("inactive workspace should stay empty")
	}
}

func TestPhysicalRemoveWindow(t *testing.T) {
	rec := windowtest.NewRecorder()
	pd := NewPhysicalDisplay(1, monitor, 0, testConfig())
	pd.CreateLogicalDisplay(3)
	if err := pd.AddWindow(rec.Window(1)); err != nil {
		t.Fatal(err)
	}
	if err := pd.AddWindowToLogical(rec.Window(2), 3); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		id      types.WindowID
		wantLID types.LogicalDisplayID
	}{
		{"active workspace", 1, 0},
		{"inactive workspace", 2, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, lid, err := pd.RemoveWindow(tt.id)
			if err != nil {
				t.Fatalf("RemoveWindow(%d) error = %v", tt.id, err)
			}
			if w.ID != tt.id || lid != tt.wantLID {
				t.Errorf("RemoveWindow(%d) = (%d, %d), want (%d, %d)", tt.id, w.ID, lid, tt.id, tt.wantLID)
			}
			if pd.Contains(tt.id) {
				t.Errorf("Contains(%d) = true after removal", tt.id)
			}
		})
	}

	if _, _, err := pd.RemoveWindow(99); !errors.Is(err, layout.ErrWindowNotFound) {
		t.Errorf("RemoveWindow(99) error = %v, want %v", err, layout.ErrWindowNotFound)
	}
}

func TestPhysicalAddWindowToMissingLogical(t *testing.T) {
	rec := windowtest.NewRecorder()
	pd := NewPhysicalDisplay(1, monitor, 0, testConfig())
	if err := pd.AddWindowToLogical(rec.Window(1), 4); !errors.Is(err, ErrDisplayNotFound) {
		t.Errorf("AddWindowToLogical() error = %v, want %v", err, ErrDisplayNotFound)
	}
}

func TestPhysicalSwitchTo(t *testing.T) {
	rec := windowtest.NewRecorder()

	t.Run("empty source is removed", func(t *testing.T) {
		pd := NewPhysicalDisplay(1, monitor, 0, testConfig())
		pd.CreateLogicalDisplay(1)

		removed, err := pd.SwitchTo(1)
		if err != nil {
			t.Fatalf("SwitchTo(1) error = %v", err)
		}
		if !removed || pd.HasLogicalDisplay(0) {
			t.Errorf("SwitchTo(1) removed = %v, HasLogicalDisplay(0) = %v; want true, false", removed, pd.HasLogicalDisplay(0))
		}
		if pd.ActiveID() != 1 {
			t.Errorf("ActiveID() = %d, want 1", pd.ActiveID())
		}
	})

	t.Run("occupied source is kept", func(t *testing.T) {
		pd := NewPhysicalDisplay(1, monitor, 0, testConfig())
		pd.CreateLogicalDisplay(1)
		if err := pd.AddWindow(rec.Window(1)); err != nil {
			t.Fatal(err)
		}

		removed, err := pd.SwitchTo(1)
		if err != nil || removed {
			t.Fatalf("SwitchTo(1) = (%v, %v), want (false, nil)", removed, err)
		}
		if !pd.HasLogicalDisplay(0) {
			t.Error("workspace 0 should survive the switch")
		}
	})

	t.Run("same workspace is a no-op", func(t *testing.T) {
		pd := NewPhysicalDisplay(1, monitor, 0, testConfig())
		removed, err := pd.SwitchTo(0)
		if err != nil || removed {
			t.Fatalf("SwitchTo(0) = (%v, %v), want (false, nil)", removed, err)
		}
		if !pd.HasLogicalDisplay(0) || pd.ActiveID() != 0 {
			t.Error("switching to the active workspace changed the display")
		}
	})

	t.Run("unknown target", func(t *testing.T) {
		pd := NewPhysicalDisplay(1, monitor, 0, testConfig())
		if _, err := pd.SwitchTo(5); !errors.Is(err, ErrDisplayNotFound) {
			t.Errorf("SwitchTo(5) error = %v, want %v", err, ErrDisplayNotFound)
		}
		if pd.ActiveID() != 0 {
			t.Errorf("ActiveID() = %d, want 0", pd.ActiveID())
		}
	})
}

func TestPhysicalCreateLogicalDisplayKeepsExisting(t *testing.T) {
	rec := windowtest.NewRecorder()
	pd := NewPhysicalDisplay(1, monitor, 0, testConfig())
	if err := pd.AddWindow(rec.Window(1)); err != nil {
		t.Fatal(err)
	}

	l := pd.CreateLogicalDisplay(0)
	if !l.Contains(1) {
		t.Error("CreateLogicalDisplay(0) replaced an existing workspace")
	}
	if got := pd.LogicalIDs(); len(got) != 1 {
		t.Errorf("LogicalIDs() = %v, want [0]", got)
	}
}

func TestPhysicalRecalculate(t *testing.T) {
	rec := windowtest.NewRecorder()
	pd := NewPhysicalDisplay(1, monitor, 0, testConfig())
	pd.CreateLogicalDisplay(1)
	if err := pd.AddWindow(rec.Window(1)); err != nil {
		t.Fatal(err)
	}
	if err := pd.AddWindowToLogical(rec.Window(2), 1); err != nil {
		t.Fatal(err)
	}

	moved := types.Rect{X: 1000, Y: 0, Width: 1200, Height: 900}
	if err := pd.Recalculate(moved); err != nil {
		t.Fatalf("Recalculate() error = %v", err)
	}
	if pd.Bounds() != moved {
		t.Errorf("Bounds() = %+v, want %+v", pd.Bounds(), moved)
	}
	for _, id := range []types.WindowID{1, 2} {
		if got, _ := rec.Bounds(id); got != moved {
			t.Errorf("window %d bounds = %+v, want %+v", id, got, moved)
		}
	}
}
