package layout

import (
	"errors"

	"github.com/yourusername/gridwm/internal/types"
)

// ResizeWindow grows the tile holding id toward dir by amount.
//
// The resize happens at the nearest split whose axis runs along dir. When the
// window sits alone in a subtree along the wrong axis, the whole subtree is
// resized against its siblings instead. ErrCannotResizeRoot means no split
// on the path could take the resize.
func (c *Container) ResizeWindow(id types.WindowID, dir types.Direction, amount, padding float64) error {
	switch c.kind {
	case KindEmpty:
		return ErrWindowNotFound
	case KindLeaf:
		if c.window.ID == id {
			return ErrCannotResizeRoot
		}
		return ErrWindowNotFound
	}

	index := c.childIndexOf(id)
	if index < 0 {
		return ErrWindowNotFound
	}

	if c.axis.CanResize(dir) {
		return c.ResizeAt(index, dir, amount, padding)
	}

	err := c.children[index].ResizeWindow(id, dir, amount, padding)
	if errors.Is(err, ErrCannotResizeRoot) {
		return c.resizeChild(index, dir, amount, padding)
	}
	return err
}

// resizeChild resizes the child subtree at index as a single tile.
func (c *Container) resizeChild(index int, dir types.Direction, amount, padding float64) error {
	if !c.axis.CanResize(dir) {
		return ErrCannotResizeRoot
	}
	return c.ResizeAt(index, dir, amount, padding)
}
