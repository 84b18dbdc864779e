package layout

import (
	"errors"
	"fmt"

	"github.com/yourusername/gridwm/internal/types"
)

const (
	// MinimumExtent is the smallest width or height a resize may leave a tile with.
	MinimumExtent = 100.0

	// DefaultResizeAmount is the default resize step in pixels.
	DefaultResizeAmount = 50.0
)

// SpreadBounds divides parent into n equal tiles along axis.
//
// Padding is applied around the outside and between adjacent tiles, so the
// tile spans plus (n+1)*padding add up to the parent span.
func SpreadBounds(parent types.Rect, axis types.Axis, n int, padding float64) []types.Rect {
	if n <= 0 {
		return nil
	}

	spans := make([]types.Rect, n)
	gaps := float64(n-1) * padding
	switch axis {
	case types.AxisVertical:
		h := (parent.Height - 2*padding - gaps) / float64(n)
		for i := range spans {
			spans[i] = types.Rect{
				X:      parent.X + padding,
				Y:      parent.Y + padding + float64(i)*(h+padding),
				Width:  parent.Width - 2*padding,
				Height: h,
			}
		}
	default:
		w := (parent.Width - 2*padding - gaps) / float64(n)
		for i := range spans {
			spans[i] = types.Rect{
				X:      parent.X + padding + float64(i)*(w+padding),
				Y:      parent.Y + padding,
				Width:  w,
				Height: parent.Height - 2*padding,
			}
		}
	}
	return spans
}

// ResizeAt moves the boundary next to child index in direction dir by amount.
//
// The boundary on the dir side of the child is used when there is one, so the
// child grows toward dir and its neighbour shrinks. At the edge of the split
// the boundary on the other side moves instead, which shrinks the child and
// grows its neighbour. Only those two tiles change and their combined span
// stays the same. A resize that would leave the shrinking tile under
// MinimumExtent is ignored.
func (c *Container) ResizeAt(index int, dir types.Direction, amount, padding float64) error {
	if c.kind != KindSplit {
		return ErrExpectedSplitContainer
	}
	n := len(c.children)
	if n < 2 {
		return ErrCannotResizeRoot
	}
	if index < 0 || index >= n {
		return fmt.Errorf("child %d of %d: %w", index, n, ErrWindowNotFound)
	}
	if !c.axis.CanResize(dir) {
		return fmt.Errorf("resize %s on %s split: %w", dir, c.axis, ErrCannotResizeRoot)
	}

	// before and after straddle the boundary that moves.
	before, after := index-1, index
	if dir.Forward() && index+1 < n || !dir.Forward() && index == 0 {
		before, after = index, index+1
	}

	grower, loser := after, before
	if dir.Forward() {
		grower, loser = before, after
	}

	lost := c.children[loser].bounds.Shrink(dir.Opposite(), amount)
	if lost.Extent(c.axis) < MinimumExtent {
		return nil
	}
	grown := c.children[grower].bounds.Grow(dir, amount)

	return errors.Join(
		c.children[grower].setBounds(grown, padding),
		c.children[loser].setBounds(lost, padding),
	)
}
