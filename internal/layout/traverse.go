package layout

import (
	"github.com/yourusername/gridwm/internal/types"
	"github.com/yourusername/gridwm/internal/window"
)

// Walk visits c and its descendants depth first in child order. Returning
// false from fn skips the node's children.
func (c *Container) Walk(fn func(node *Container, depth int) bool) {
	c.walk(fn, 0)
}

func (c *Container) walk(fn func(*Container, int) bool, depth int) {
	if !fn(c, depth) {
		return
	}
	for _, child := range c.children {
		child.walk(fn, depth+1)
	}
}

// LeafOf returns the leaf holding id, or nil.
func (c *Container) LeafOf(id types.WindowID) *Container {
	if c.kind == KindLeaf {
		if c.window.ID == id {
			return c
		}
		return nil
	}
	for _, child := range c.children {
		if leaf := child.LeafOf(id); leaf != nil {
			return leaf
		}
	}
	return nil
}

// ParentOf returns the split whose direct child is the leaf holding id, or nil.
func (c *Container) ParentOf(id types.WindowID) *Container {
	if c.kind != KindSplit {
		return nil
	}
	for _, child := range c.children {
		if child.kind == KindLeaf && child.window.ID == id {
			return c
		}
	}
	for _, child := range c.children {
		if parent := child.ParentOf(id); parent != nil {
			return parent
		}
	}
	return nil
}

// FindWindow returns the window with id.
func (c *Container) FindWindow(id types.WindowID) (window.Window, bool) {
	if leaf := c.LeafOf(id); leaf != nil {
		return leaf.window, true
	}
	return window.Window{}, false
}

// Contains reports whether any leaf holds id.
func (c *Container) Contains(id types.WindowID) bool {
	return c.LeafOf(id) != nil
}

// Windows returns every window in tree order.
func (c *Container) Windows() []window.Window {
	var ws []window.Window
	c.Walk(func(node *Container, _ int) bool {
		if node.kind == KindLeaf {
			ws = append(ws, node.window)
		}
		return true
	})
	return ws
}

// WindowIDs returns the id of every window in tree order.
func (c *Container) WindowIDs() []types.WindowID {
	var ids []types.WindowID
	for _, w := range c.Windows() {
		ids = append(ids, w.ID)
	}
	return ids
}

// Placements returns each window with its tile bounds, in tree order.
func (c *Container) Placements() []types.WindowPlacement {
	var out []types.WindowPlacement
	c.Walk(func(node *Container, _ int) bool {
		if node.kind == KindLeaf {
			out = append(out, types.WindowPlacement{WindowID: node.window.ID, Bounds: node.bounds})
		}
		return true
	})
	return out
}

// WindowBounds maps each window id to its tile bounds.
func (c *Container) WindowBounds() map[types.WindowID]types.Rect {
	m := make(map[types.WindowID]types.Rect)
	for _, p := range c.Placements() {
		m[p.WindowID] = p.Bounds
	}
	return m
}

// childIndexOf returns the index of the child whose subtree holds id, or -1.
func (c *Container) childIndexOf(id types.WindowID) int {
	for i, child := range c.children {
		if child.Contains(id) {
			return i
		}
	}
	return -1
}
