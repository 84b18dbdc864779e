package layout

import "errors"

// Structural errors. The operation is not allowed on the node's current shape.
var (
	ErrCannotAddWindowToLeaf            = errors.New("cannot add window to leaf container")
	ErrCannotSplitEmptyContainer        = errors.New("cannot split empty container")
	ErrCannotSplitAlreadySplitContainer = errors.New("cannot split container that already holds multiple children")
	ErrCannotResizeRoot                 = errors.New("cannot resize window without siblings")
	ErrExpectedSplitContainer           = errors.New("expected split container")
)

// ErrWindowNotFound is returned when no leaf in the tree holds the window.
var ErrWindowNotFound = errors.New("window not found")

// ErrCannotFitWindow is returned by capacity-checked adds when the new
// window would push some tile below its minimum size.
var ErrCannotFitWindow = errors.New("cannot fit window")
