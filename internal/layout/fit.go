package layout

import (
	"github.com/yourusername/gridwm/internal/types"
	"github.com/yourusername/gridwm/internal/window"
)

// FitPolicy decides whether another window fits into a split.
//
// Every tile must stay at least MinWidth by MinHeight, or the window's own
// minimum size when that is larger. A split needs room for all of its
// children side by side along its axis.
type FitPolicy struct {
	MinWidth  float64
	MinHeight float64
}

// CanFit reports whether adding w to c would keep every tile above its
// minimum size. An empty container always fits.
func (c *Container) CanFit(w window.Window, padding float64, policy FitPolicy) bool {
	if c.kind != KindSplit {
		return true
	}

	spans := SpreadBounds(c.bounds, c.axis, len(c.children)+1, padding)
	for i, child := range c.children {
		minW, minH := policy.minSize(child, padding)
		if spans[i].Width < minW || spans[i].Height < minH {
			return false
		}
	}
	minW, minH := policy.windowMin(w)
	last := spans[len(spans)-1]
	return last.Width >= minW && last.Height >= minH
}

// AddWindowChecked adds w only if CanFit allows it, and returns
// ErrCannotFitWindow otherwise. The tree is untouched on refusal.
func (c *Container) AddWindowChecked(w window.Window, padding float64, policy FitPolicy) error {
	if !c.CanFit(w, padding, policy) {
		return ErrCannotFitWindow
	}
	return c.AddWindow(w, padding)
}

// MinSize returns the smallest bounds c can be given under policy.
func (p FitPolicy) MinSize(c *Container, padding float64) (width, height float64) {
	return p.minSize(c, padding)
}

func (p FitPolicy) minSize(c *Container, padding float64) (float64, float64) {
	switch c.kind {
	case KindEmpty:
		return 0, 0
	case KindLeaf:
		return p.windowMin(c.window)
	}

	var along, across float64
	for _, child := range c.children {
		w, h := p.minSize(child, padding)
		if c.axis == types.AxisHorizontal {
			along += w
			across = max(across, h)
		} else {
			along += h
			across = max(across, w)
		}
	}
	along += float64(len(c.children)+1) * padding
	across += 2 * padding

	if c.axis == types.AxisHorizontal {
		return along, across
	}
	return across, along
}

func (p FitPolicy) windowMin(w window.Window) (float64, float64) {
	return max(p.MinWidth, w.MinWidth), max(p.MinHeight, w.MinHeight)
}
