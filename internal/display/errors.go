package display

import "errors"

var (
	ErrDisplayNotFound         = errors.New("display not found")
	ErrCannotFindParentLeaf    = errors.New("cannot find parent leaf of focused window")
	ErrCannotFocusEmptyDisplay = errors.New("cannot focus on a display without windows")
	ErrCouldNotRemoveWindow    = errors.New("could not remove window")
	ErrNoFreeLogicalDisplay    = errors.New("no free logical display id")
	ErrWindowAlreadyManaged    = errors.New("window already managed")
)
