package display

import (
	"errors"
	"fmt"
	"sort"

	"github.com/yourusername/gridwm/internal/layout"
	"github.com/yourusername/gridwm/internal/types"
	"github.com/yourusername/gridwm/internal/window"
)

// PhysicalDisplay is a monitor and the workspaces it can show. Exactly one
// workspace is active, and there is always at least one.
type PhysicalDisplay struct {
	id      types.PhysicalDisplayID
	bounds  types.Rect
	logical map[types.LogicalDisplayID]*LogicalDisplay
	active  types.LogicalDisplayID
	cfg     Config
}

// NewPhysicalDisplay creates a monitor showing a fresh workspace with id first.
func NewPhysicalDisplay(id types.PhysicalDisplayID, bounds types.Rect, first types.LogicalDisplayID, cfg Config) *PhysicalDisplay {
	return &PhysicalDisplay{
		id:     id,
		bounds: bounds,
		logical: map[types.LogicalDisplayID]*LogicalDisplay{
			first: NewLogicalDisplay(bounds, cfg),
		},
		active: first,
		cfg:    cfg,
	}
}

func (p *PhysicalDisplay) ID() types.PhysicalDisplayID { return p.id }

func (p *PhysicalDisplay) Bounds() types.Rect { return p.bounds }

// ActiveID returns the id of the workspace currently shown.
func (p *PhysicalDisplay) ActiveID() types.LogicalDisplayID { return p.active }

// Active returns the workspace currently shown.
func (p *PhysicalDisplay) Active() *LogicalDisplay {
	return p.logical[p.active]
}

// Logical returns the workspace with lid, if this monitor owns it.
func (p *PhysicalDisplay) Logical(lid types.LogicalDisplayID) (*LogicalDisplay, bool) {
	l, ok := p.logical[lid]
	return l, ok
}

func (p *PhysicalDisplay) HasLogicalDisplay(lid types.LogicalDisplayID) bool {
	_, ok := p.logical[lid]
	return ok
}

// CreateLogicalDisplay adds an empty workspace with lid. An existing
// workspace with that id is kept.
func (p *PhysicalDisplay) CreateLogicalDisplay(lid types.LogicalDisplayID) *LogicalDisplay {
	if l, ok := p.logical[lid]; ok {
		return l
	}
	l := NewLogicalDisplay(p.bounds, p.cfg)
	p.logical[lid] = l
	return l
}

// LogicalIDs returns the ids of every workspace on this monitor, ascending.
func (p *PhysicalDisplay) LogicalIDs() []types.LogicalDisplayID {
	ids := make([]types.LogicalDisplayID, 0, len(p.logical))
	for lid := range p.logical {
		ids = append(ids, lid)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// SwitchTo makes target the active workspace. The workspace being left is
// deleted if it holds no windows; the returned bool reports that deletion.
func (p *PhysicalDisplay) SwitchTo(target types.LogicalDisplayID) (bool, error) {
	if target == p.active {
		return false, nil
	}
	if _, ok := p.logical[target]; !ok {
		return false, fmt.Errorf("logical display %d: %w", target, ErrDisplayNotFound)
	}

	removed := false
	if p.Active().IsEmpty() {
		delete(p.logical, p.active)
		removed = true
	}
	p.active = target
	return removed, nil
}

func (p *PhysicalDisplay) AddWindow(w window.Window) error {
	return p.Active().AddWindow(w)
}

// AddWindowToLogical adds w to the workspace lid, active or not.
func (p *PhysicalDisplay) AddWindowToLogical(w window.Window, lid types.LogicalDisplayID) error {
	l, ok := p.logical[lid]
	if !ok {
		return fmt.Errorf("logical display %d: %w", lid, ErrDisplayNotFound)
	}
	return l.AddWindow(w)
}

// RemoveWindow removes id from whichever workspace holds it and returns the
// window together with that workspace's id.
func (p *PhysicalDisplay) RemoveWindow(id types.WindowID) (window.Window, types.LogicalDisplayID, error) {
	for _, lid := range p.LogicalIDs() {
		w, ok, err := p.logical[lid].RemoveWindow(id)
		if ok {
			return w, lid, err
		}
		if err != nil {
			return w, lid, err
		}
	}
	return window.Window{}, 0, fmt.Errorf("window %d: %w", id, layout.ErrWindowNotFound)
}

// LogicalOf returns the workspace holding id.
func (p *PhysicalDisplay) LogicalOf(id types.WindowID) (types.LogicalDisplayID, bool) {
	for _, lid := range p.LogicalIDs() {
		if p.logical[lid].Contains(id) {
			return lid, true
		}
	}
	return 0, false
}

func (p *PhysicalDisplay) Contains(id types.WindowID) bool {
	_, ok := p.LogicalOf(id)
	return ok
}

func (p *PhysicalDisplay) Split(axis types.Axis) error {
	return p.Active().Split(axis)
}

func (p *PhysicalDisplay) ResizeFocused(dir types.Direction) error {
	return p.Active().ResizeFocused(dir)
}

func (p *PhysicalDisplay) ShiftFocus(dir types.Direction) (types.WindowID, error) {
	return p.Active().ShiftFocus(dir)
}

func (p *PhysicalDisplay) SetFocused(id types.WindowID) error {
	return p.Active().SetFocused(id)
}

// WindowIDs returns the windows of every workspace on this monitor, ascending.
func (p *PhysicalDisplay) WindowIDs() []types.WindowID {
	var ids []types.WindowID
	for _, lid := range p.LogicalIDs() {
		ids = append(ids, p.logical[lid].WindowIDs()...)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Recalculate moves the monitor to bounds and re-tiles every workspace.
func (p *PhysicalDisplay) Recalculate(bounds types.Rect) error {
	p.bounds = bounds
	var errs []error
	for _, lid := range p.LogicalIDs() {
		if err := p.logical[lid].Recalculate(bounds); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Reconfigure applies cfg to every workspace and re-tiles them.
func (p *PhysicalDisplay) Reconfigure(cfg Config) error {
	p.cfg = cfg
	var errs []error
	for _, lid := range p.LogicalIDs() {
		if err := p.logical[lid].Reconfigure(p.bounds, cfg); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
