package layout

import (
	"math"
	"testing"

	"github.com/yourusername/gridwm/internal/types"
	"github.com/yourusername/gridwm/internal/window/windowtest"
)

var screen = types.Rect{X: 0, Y: 0, Width: 1000, Height: 800}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func approxRect(a, b types.Rect) bool {
	return approx(a.X, b.X) && approx(a.Y, b.Y) && approx(a.Width, b.Width) && approx(a.Height, b.Height)
}

// buildTree returns an empty root over screen with the given windows added
// to it, using no padding.
func buildTree(t *testing.T, rec *windowtest.Recorder, ids ...types.WindowID) *Container {
	t.Helper()
	root := NewEmpty(screen)
	for _, id := range ids {
		if err := root.AddWindow(rec.Window(id), 0); err != nil {
			t.Fatalf("AddWindow(%d) error = %v", id, err)
		}
	}
	return root
}

func leafBounds(t *testing.T, root *Container, id types.WindowID) types.Rect {
	t.Helper()
	leaf := root.LeafOf(id)
	if leaf == nil {
		t.Fatalf("LeafOf(%d) = nil", id)
	}
	return leaf.Bounds()
}

// checkTiling asserts that every split with two or more children tiles its
// bounds along its axis.
func checkTiling(t *testing.T, root *Container, padding float64) {
	t.Helper()
	root.Walk(func(node *Container, _ int) bool {
		if node.Kind() != KindSplit || len(node.children) < 2 {
			return true
		}
		axis := node.Axis()
		total := float64(len(node.children)+1) * padding
		for i, child := range node.children {
			total += child.Bounds().Extent(axis)
			if child.Kind() == KindEmpty {
				t.Errorf("split has empty child at %d", i)
			}
			if i == 0 {
				continue
			}
			prev := node.children[i-1].Bounds()
			cur := child.Bounds()
			if axis == types.AxisHorizontal && !approx(prev.X+prev.Width+padding, cur.X) {
				t.Errorf("child %d starts at x=%v, want %v", i, cur.X, prev.X+prev.Width+padding)
			}
			if axis == types.AxisVertical && !approx(prev.Y+prev.Height+padding, cur.Y) {
				t.Errorf("child %d starts at y=%v, want %v", i, cur.Y, prev.Y+prev.Height+padding)
			}
		}
		if want := node.Bounds().Extent(axis); !approx(total, want) {
			t.Errorf("children cover %v along %s, want %v", total, axis, want)
		}
		return true
	})
}

func checkUnique(t *testing.T, root *Container) {
	t.Helper()
	seen := make(map[types.WindowID]bool)
	for _, id := range root.WindowIDs() {
		if seen[id] {
			t.Errorf("window %d appears more than once", id)
		}
		seen[id] = true
	}
}
