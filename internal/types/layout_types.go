package types

// WindowID identifies a native window for the lifetime of a session.
type WindowID uint32

// LogicalDisplayID identifies a workspace. Valid ids are 0 through MaxLogicalDisplayID.
type LogicalDisplayID int

// MaxLogicalDisplayID is the highest workspace id handed out.
const MaxLogicalDisplayID LogicalDisplayID = 9

// PhysicalDisplayID identifies a monitor, derived from the OS display id.
type PhysicalDisplayID uint32

// Rect represents pixel bounds on screen
type Rect struct {
	X      float64 // Left edge (pixels from screen left)
	Y      float64 // Top edge (pixels from screen top)
	Width  float64 // Width in pixels
	Height float64 // Height in pixels
}

// Point represents a 2D coordinate
type Point struct {
	X float64
	Y float64
}

// Center returns the center point of a Rect
func (r Rect) Center() Point {
	return Point{
		X: r.X + r.Width/2,
		Y: r.Y + r.Height/2,
	}
}

// Contains checks if a point is inside the rect
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width &&
		p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Overlap returns the area of intersection between two Rects
func (r Rect) Overlap(other Rect) float64 {
	left := max(r.X, other.X)
	right := min(r.X+r.Width, other.X+other.Width)
	top := max(r.Y, other.Y)
	bottom := min(r.Y+r.Height, other.Y+other.Height)

	if left >= right || top >= bottom {
		return 0
	}
	return (right - left) * (bottom - top)
}

// WithPad insets every edge by pad.
func (r Rect) WithPad(pad float64) Rect {
	return Rect{
		X:      r.X + pad,
		Y:      r.Y + pad,
		Width:  r.Width - 2*pad,
		Height: r.Height - 2*pad,
	}
}

// Grow extends the edge facing dir outward by amount.
func (r Rect) Grow(dir Direction, amount float64) Rect {
	switch dir {
	case DirLeft:
		r.X -= amount
		r.Width += amount
	case DirRight:
		r.Width += amount
	case DirUp:
		r.Y -= amount
		r.Height += amount
	case DirDown:
		r.Height += amount
	}
	return r
}

// Shrink pulls the edge facing dir inward by amount.
func (r Rect) Shrink(dir Direction, amount float64) Rect {
	return r.Grow(dir, -amount)
}

// Extent returns the size of r along axis.
func (r Rect) Extent(axis Axis) float64 {
	if axis == AxisVertical {
		return r.Height
	}
	return r.Width
}

// Direction represents navigation direction
type Direction int

const (
	DirLeft Direction = iota
	DirRight
	DirUp
	DirDown
)

// String returns the string representation of a Direction
func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	default:
		return "unknown"
	}
}

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction {
	switch d {
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	case DirUp:
		return DirDown
	default:
		return DirUp
	}
}

// Forward reports whether d points toward increasing coordinates.
func (d Direction) Forward() bool {
	return d == DirRight || d == DirDown
}

// Axis returns the axis d moves along.
func (d Direction) Axis() Axis {
	if d == DirUp || d == DirDown {
		return AxisVertical
	}
	return AxisHorizontal
}

// ParseDirection converts a string to Direction
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "left":
		return DirLeft, true
	case "right":
		return DirRight, true
	case "up":
		return DirUp, true
	case "down":
		return DirDown, true
	default:
		return 0, false
	}
}

// Axis is the direction along which a split arranges its children.
type Axis int

const (
	// AxisHorizontal places children side by side.
	AxisHorizontal Axis = iota
	// AxisVertical stacks children top to bottom.
	AxisVertical
)

func (a Axis) String() string {
	switch a {
	case AxisHorizontal:
		return "horizontal"
	case AxisVertical:
		return "vertical"
	default:
		return "unknown"
	}
}

// CanResize reports whether a resize toward dir happens along a.
func (a Axis) CanResize(dir Direction) bool {
	return dir.Axis() == a
}

// ParseAxis converts a string to Axis
func ParseAxis(s string) (Axis, bool) {
	switch s {
	case "horizontal", "h":
		return AxisHorizontal, true
	case "vertical", "v":
		return AxisVertical, true
	default:
		return 0, false
	}
}

// WindowPlacement pairs a window with the bounds the layout assigned it.
type WindowPlacement struct {
	WindowID WindowID
	Bounds   Rect
}
