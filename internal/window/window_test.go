package window_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/yourusername/gridwm/internal/types"
	"github.com/yourusername/gridwm/internal/window"
	"github.com/yourusername/gridwm/internal/window/windowtest"
)

func TestApply(t *testing.T) {
	rec := windowtest.NewRecorder()
	w := rec.Window(7)

	b := types.Rect{X: 10, Y: 20, Width: 300, Height: 200}
	if err := w.Apply(b); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	got, ok := rec.Bounds(7)
	if !ok || got != b {
		t.Errorf("Bounds(7) = %+v, want %+v", got, b)
	}
	wantCalls := []string{"move 7", "resize 7"}
	if calls := rec.Calls(); !reflect.DeepEqual(calls, wantCalls) {
		t.Errorf("Calls() = %v, want %v", calls, wantCalls)
	}
}

func TestApplyWrapsError(t *testing.T) {
	rec := windowtest.NewRecorder()
	rec.FailMove[3] = true

	err := rec.Window(3).Apply(types.Rect{Width: 10, Height: 10})
	if err == nil {
		t.Fatal("Apply() expected error, got nil")
	}

	var werr *window.Error
	if !errors.As(err, &werr) {
		t.Fatalf("Apply() error = %T, want *window.Error", err)
	}
	if werr.ID != 3 || werr.Op != "move" {
		t.Errorf("Error = {ID: %d, Op: %q}, want {ID: 3, Op: \"move\"}", werr.ID, werr.Op)
	}
	if calls := rec.Calls(); len(calls) != 1 {
		t.Errorf("resize should not run after failed move, calls = %v", calls)
	}
}

func TestApplyWithoutPorts(t *testing.T) {
	w := window.New(1, window.Ports{})
	if err := w.Apply(types.Rect{Width: 1, Height: 1}); err != nil {
		t.Errorf("Apply() with no ports error = %v, want nil", err)
	}
	if err := w.Suspend(); err != nil {
		t.Errorf("Suspend() with no ports error = %v, want nil", err)
	}
}

func TestQuietResumesOnError(t *testing.T) {
	rec := windowtest.NewRecorder()
	ws := []window.Window{rec.Window(1), rec.Window(2)}
	boom := errors.New("boom")

	err := window.Quiet(ws, func() error {
		for _, w := range ws {
			if !rec.Suspended(w.ID) {
				t.Errorf("window %d not suspended inside Quiet", w.ID)
			}
		}
		return boom
	})

	if !errors.Is(err, boom) {
		t.Errorf("Quiet() error = %v, want %v", err, boom)
	}
	for _, w := range ws {
		if rec.Suspended(w.ID) {
			t.Errorf("window %d still suspended after Quiet", w.ID)
		}
	}
}

func TestQuietSkipsResumeForFailedSuspend(t *testing.T) {
	rec := windowtest.NewRecorder()
	rec.FailDisable[2] = true
	ws := []window.Window{rec.Window(1), rec.Window(2)}

	ran := false
	err := window.Quiet(ws, func() error {
		ran = true
		return nil
	})

	if !ran {
		t.Error("Quiet() did not run fn")
	}
	var werr *window.Error
	if !errors.As(err, &werr) || werr.ID != 2 {
		t.Errorf("Quiet() error = %v, want window 2 error", err)
	}

	want := []string{"disable 1", "disable 2", "enable 1"}
	if calls := rec.Calls(); !reflect.DeepEqual(calls, want) {
		t.Errorf("Calls() = %v, want %v", calls, want)
	}
}

func TestWindowEquality(t *testing.T) {
	rec := windowtest.NewRecorder()
	a := rec.Window(5).WithMinSize(100, 50)
	b := rec.Window(5).WithMinSize(100, 50)
	if a != b {
		t.Error("windows with same id, ports and min size should be equal")
	}
}
