package layout

import (
	"errors"

	"github.com/yourusername/gridwm/internal/types"
	"github.com/yourusername/gridwm/internal/window"
)

// Kind is the variant of a Container.
type Kind int

const (
	KindEmpty Kind = iota
	KindLeaf
	KindSplit
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindLeaf:
		return "leaf"
	case KindSplit:
		return "split"
	default:
		return "unknown"
	}
}

// DefaultAxis is the axis used when an empty container becomes a split.
const DefaultAxis = types.AxisHorizontal

// Container is one node of a layout tree.
//
// An empty container holds no window, a leaf holds exactly one, and a split
// arranges its children along its axis so that together they tile its bounds.
// Containers mutate in place: an empty root turns into a split when the first
// window arrives and back into an empty node when the last one leaves.
type Container struct {
	kind     Kind
	bounds   types.Rect
	axis     types.Axis
	window   window.Window
	children []*Container
}

// NewEmpty returns an empty container covering bounds.
func NewEmpty(bounds types.Rect) *Container {
	return &Container{kind: KindEmpty, bounds: bounds}
}

// NewLeaf returns a leaf holding w at bounds. No geometry is applied.
func NewLeaf(bounds types.Rect, w window.Window) *Container {
	return &Container{kind: KindLeaf, bounds: bounds, window: w}
}

// NewSplit returns a split with the given children. Children keep the bounds
// they already have.
func NewSplit(bounds types.Rect, axis types.Axis, children ...*Container) *Container {
	return &Container{kind: KindSplit, bounds: bounds, axis: axis, children: children}
}

// Kind reports which variant c currently is.
func (c *Container) Kind() Kind { return c.kind }

func (c *Container) Bounds() types.Rect { return c.bounds }

// Axis is meaningful only for splits.
func (c *Container) Axis() types.Axis { return c.axis }

func (c *Container) IsEmpty() bool { return c.kind == KindEmpty }

// Children returns a copy of the split's child list.
func (c *Container) Children() []*Container {
	return append([]*Container(nil), c.children...)
}

// Window returns the window held by a leaf.
func (c *Container) Window() (window.Window, bool) {
	if c.kind != KindLeaf {
		return window.Window{}, false
	}
	return c.window, true
}

// AddWindow places w in the container.
//
// An empty container becomes a split holding one leaf inset by padding. A
// split appends a leaf and spreads every child evenly along its axis. Leaves
// refuse with ErrCannotAddWindowToLeaf; callers add to the parent split.
func (c *Container) AddWindow(w window.Window, padding float64) error {
	switch c.kind {
	case KindEmpty:
		leaf := NewLeaf(SpreadBounds(c.bounds, DefaultAxis, 1, padding)[0], w)
		c.kind = KindSplit
		c.axis = DefaultAxis
		c.children = []*Container{leaf}
		return w.Apply(leaf.bounds)
	case KindLeaf:
		return ErrCannotAddWindowToLeaf
	default:
		c.children = append(c.children, NewLeaf(c.bounds, w))
		return c.spread(padding)
	}
}

// RemoveWindow removes the window with id from the tree and returns it.
// The boolean is false when no leaf holds id.
func (c *Container) RemoveWindow(id types.WindowID, padding float64) (window.Window, bool, error) {
	switch c.kind {
	case KindEmpty:
		return window.Window{}, false, nil
	case KindLeaf:
		if c.window.ID != id {
			return window.Window{}, false, nil
		}
		w := c.window
		c.clear()
		return w, true, nil
	}

	for i, child := range c.children {
		if child.kind == KindLeaf && child.window.ID == id {
			w := child.window
			c.children = append(c.children[:i], c.children[i+1:]...)
			c.prune()
			if len(c.children) == 0 {
				c.clear()
				return w, true, nil
			}
			return w, true, c.spread(padding)
		}
	}

	for _, child := range c.children {
		if child.kind != KindSplit {
			continue
		}
		w, ok, err := child.RemoveWindow(id, padding)
		if !ok {
			continue
		}
		before := len(c.children)
		c.prune()
		switch {
		case len(c.children) == 0:
			c.clear()
		case len(c.children) < before:
			// A nested split collapsed, so this level lost a tile.
			err = errors.Join(err, c.spread(padding))
		}
		return w, true, err
	}
	return window.Window{}, false, nil
}

// Split turns a leaf into a single-child split along axis, so that the next
// window added beside it lands along that axis. A split with fewer than two
// children only changes axis.
func (c *Container) Split(axis types.Axis) error {
	switch c.kind {
	case KindEmpty:
		return ErrCannotSplitEmptyContainer
	case KindLeaf:
		leaf := NewLeaf(c.bounds, c.window)
		c.kind = KindSplit
		c.axis = axis
		c.window = window.Window{}
		c.children = []*Container{leaf}
		return nil
	default:
		if len(c.children) >= 2 {
			return ErrCannotSplitAlreadySplitContainer
		}
		c.axis = axis
		return nil
	}
}

// RecalculateLayout re-tiles the tree into bounds and reapplies geometry to
// every window. On a split, window notifications are suspended for the whole
// batch so self-inflicted moves are not reported back as user moves.
func (c *Container) RecalculateLayout(bounds types.Rect, padding float64) error {
	if c.kind != KindSplit {
		return c.setBounds(bounds, padding)
	}
	return window.Quiet(c.Windows(), func() error {
		return c.setBounds(bounds, padding)
	})
}

// setBounds moves the container to b and lays its contents out again.
func (c *Container) setBounds(b types.Rect, padding float64) error {
	c.bounds = b
	switch c.kind {
	case KindLeaf:
		return c.window.Apply(b)
	case KindSplit:
		return c.spread(padding)
	default:
		return nil
	}
}

// spread divides the split's bounds evenly among its children. Every child is
// visited even when an earlier one fails to apply its geometry.
func (c *Container) spread(padding float64) error {
	spans := SpreadBounds(c.bounds, c.axis, len(c.children), padding)
	var errs []error
	for i, child := range c.children {
		if child.kind == KindEmpty {
			panic("layout: empty container inside split")
		}
		if err := child.setBounds(spans[i], padding); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (c *Container) prune() {
	kept := c.children[:0]
	for _, child := range c.children {
		if child.kind != KindEmpty {
			kept = append(kept, child)
		}
	}
	for i := len(kept); i < len(c.children); i++ {
		c.children[i] = nil
	}
	c.children = kept
}

func (c *Container) clear() {
	c.kind = KindEmpty
	c.axis = DefaultAxis
	c.window = window.Window{}
	c.children = nil
}
