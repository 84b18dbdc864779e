package output

import (
	"math"

	"github.com/yourusername/gridwm/internal/types"
)

// charAspect is how much taller a terminal cell is than it is wide.
const charAspect = 2.0

// ScalingContext maps a display's pixel space onto a character canvas.
type ScalingContext struct {
	Origin     types.Point // top-left of the display in pixels
	Scale      float64     // characters per pixel horizontally
	TermWidth  int
	TermHeight int
}

// NewScalingContext fits bounds into at most maxWidth x maxHeight cells,
// keeping the display's proportions.
func NewScalingContext(bounds types.Rect, maxWidth, maxHeight int) *ScalingContext {
	maxWidth = max(maxWidth, 10)
	maxHeight = max(maxHeight, 5)
	if bounds.Width <= 0 || bounds.Height <= 0 {
		bounds = types.Rect{Width: 1920, Height: 1080}
	}

	scale := math.Min(
		float64(maxWidth)/bounds.Width,
		float64(maxHeight)*charAspect/bounds.Height,
	)

	return &ScalingContext{
		Origin:     types.Point{X: bounds.X, Y: bounds.Y},
		Scale:      scale,
		TermWidth:  max(int(math.Round(bounds.Width*scale)), 2),
		TermHeight: max(int(math.Round(bounds.Height*scale/charAspect)), 2),
	}
}

// ToTerminal converts pixel bounds to a cell box. Edges are rounded
// independently so adjacent tiles meet without gaps.
func (sc *ScalingContext) ToTerminal(r types.Rect) (x, y, w, h int) {
	left := int(math.Round((r.X - sc.Origin.X) * sc.Scale))
	top := int(math.Round((r.Y - sc.Origin.Y) * sc.Scale / charAspect))
	right := int(math.Round((r.X + r.Width - sc.Origin.X) * sc.Scale))
	bottom := int(math.Round((r.Y + r.Height - sc.Origin.Y) * sc.Scale / charAspect))

	left = clamp(left, 0, sc.TermWidth-1)
	top = clamp(top, 0, sc.TermHeight-1)
	right = clamp(right, left+1, sc.TermWidth)
	bottom = clamp(bottom, top+1, sc.TermHeight)
	return left, top, right - left, bottom - top
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
