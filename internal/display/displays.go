package display

import (
	"errors"
	"fmt"
	"sort"

	"github.com/yourusername/gridwm/internal/layout"
	"github.com/yourusername/gridwm/internal/types"
	"github.com/yourusername/gridwm/internal/window"
)

// Placement tells where AddWindow put a window.
type Placement int

const (
	// PlacedActive means the window joined the workspace already on screen.
	PlacedActive Placement = iota
	// PlacedOverflow means the window did not fit and a new workspace was
	// created for it and switched to.
	PlacedOverflow
)

func (p Placement) String() string {
	if p == PlacedOverflow {
		return "overflow"
	}
	return "active"
}

// AddResult describes the outcome of Displays.AddWindow.
type AddResult struct {
	Placement Placement
	Physical  types.PhysicalDisplayID
	Logical   types.LogicalDisplayID
	// Previous is the workspace that was active before the add.
	Previous types.LogicalDisplayID
}

// SwitchResult describes the outcome of Displays.SwitchLogicalDisplay.
type SwitchResult struct {
	Physical types.PhysicalDisplayID
	From     types.LogicalDisplayID
	To       types.LogicalDisplayID
	// Removed reports that From was empty and has been deleted.
	Removed bool
}

// Changed reports whether the switch showed a different workspace.
func (r SwitchResult) Changed() bool { return r.From != r.To }

// Displays is the registry of monitors and the workspaces they own.
//
// Workspace ids are global: owners maps every allocated id to the monitor
// that holds it, so two monitors never share an id.
type Displays struct {
	physical  map[types.PhysicalDisplayID]*PhysicalDisplay
	owners    map[types.LogicalDisplayID]types.PhysicalDisplayID
	active    types.PhysicalDisplayID
	hasActive bool
	cfg       Config
}

// New returns an empty registry using cfg for every display it creates.
func New(cfg Config) *Displays {
	return &Displays{
		physical: make(map[types.PhysicalDisplayID]*PhysicalDisplay),
		owners:   make(map[types.LogicalDisplayID]types.PhysicalDisplayID),
		cfg:      cfg,
	}
}

// Config returns the settings in use.
func (d *Displays) Config() Config { return d.cfg }

// NextLogicalDisplayID returns the lowest unallocated workspace id.
func (d *Displays) NextLogicalDisplayID() (types.LogicalDisplayID, error) {
	for lid := types.LogicalDisplayID(0); lid <= types.MaxLogicalDisplayID; lid++ {
		if _, taken := d.owners[lid]; !taken {
			return lid, nil
		}
	}
	return 0, ErrNoFreeLogicalDisplay
}

// AddPhysical registers a monitor with one new workspace and makes it the
// active monitor. A monitor that is already known is re-tiled for bounds.
func (d *Displays) AddPhysical(pid types.PhysicalDisplayID, bounds types.Rect) error {
	if pd, ok := d.physical[pid]; ok {
		return pd.Recalculate(bounds)
	}

	lid, err := d.NextLogicalDisplayID()
	if err != nil {
		return fmt.Errorf("add display %d: %w", pid, err)
	}
	d.physical[pid] = NewPhysicalDisplay(pid, bounds, lid, d.cfg)
	d.owners[lid] = pid
	d.active = pid
	d.hasActive = true
	return nil
}

// RemovePhysical forgets a monitor and releases its workspace ids. The
// windows it held are returned so they can be placed elsewhere.
func (d *Displays) RemovePhysical(pid types.PhysicalDisplayID) ([]window.Window, error) {
	pd, ok := d.physical[pid]
	if !ok {
		return nil, fmt.Errorf("display %d: %w", pid, ErrDisplayNotFound)
	}

	var orphans []window.Window
	for _, lid := range pd.LogicalIDs() {
		l, _ := pd.Logical(lid)
		orphans = append(orphans, l.Windows()...)
		delete(d.owners, lid)
	}
	delete(d.physical, pid)

	if d.active == pid {
		d.hasActive = false
		if ids := d.PhysicalIDs(); len(ids) > 0 {
			d.active = ids[0]
			d.hasActive = true
		}
	}
	return orphans, nil
}

// PhysicalIDs returns the ids of every monitor, ascending.
func (d *Displays) PhysicalIDs() []types.PhysicalDisplayID {
	ids := make([]types.PhysicalDisplayID, 0, len(d.physical))
	for pid := range d.physical {
		ids = append(ids, pid)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Physical returns the monitor with pid.
func (d *Displays) Physical(pid types.PhysicalDisplayID) (*PhysicalDisplay, bool) {
	pd, ok := d.physical[pid]
	return pd, ok
}

// ActivePhysical returns the monitor that receives new windows and commands.
func (d *Displays) ActivePhysical() (*PhysicalDisplay, error) {
	if !d.hasActive {
		return nil, fmt.Errorf("no active display: %w", ErrDisplayNotFound)
	}
	return d.physical[d.active], nil
}

// ActiveLogicalID returns the workspace shown on the active monitor.
func (d *Displays) ActiveLogicalID() (types.LogicalDisplayID, error) {
	pd, err := d.ActivePhysical()
	if err != nil {
		return 0, err
	}
	return pd.ActiveID(), nil
}

// LogicalIDs returns the workspace ids owned by pid, ascending.
func (d *Displays) LogicalIDs(pid types.PhysicalDisplayID) []types.LogicalDisplayID {
	var ids []types.LogicalDisplayID
	for lid, owner := range d.owners {
		if owner == pid {
			ids = append(ids, lid)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// AllLogicalIDs returns every allocated workspace id, ascending.
func (d *Displays) AllLogicalIDs() []types.LogicalDisplayID {
	ids := make([]types.LogicalDisplayID, 0, len(d.owners))
	for lid := range d.owners {
		ids = append(ids, lid)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// OwnerOf returns the monitor that owns workspace lid.
func (d *Displays) OwnerOf(lid types.LogicalDisplayID) (types.PhysicalDisplayID, bool) {
	pid, ok := d.owners[lid]
	return pid, ok
}

// Logical returns workspace lid wherever it lives.
func (d *Displays) Logical(lid types.LogicalDisplayID) (*LogicalDisplay, bool) {
	pid, ok := d.owners[lid]
	if !ok {
		return nil, false
	}
	return d.physical[pid].Logical(lid)
}

// CreateLogicalDisplay allocates a new workspace on pid.
func (d *Displays) CreateLogicalDisplay(pid types.PhysicalDisplayID) (types.LogicalDisplayID, error) {
	pd, ok := d.physical[pid]
	if !ok {
		return 0, fmt.Errorf("display %d: %w", pid, ErrDisplayNotFound)
	}
	lid, err := d.NextLogicalDisplayID()
	if err != nil {
		return 0, err
	}
	pd.CreateLogicalDisplay(lid)
	d.owners[lid] = pid
	return lid, nil
}

// AddWindow tiles w on the active workspace. When it does not fit there, a
// new workspace is created on the same monitor, w is placed on it and it
// becomes the active workspace.
func (d *Displays) AddWindow(w window.Window) (AddResult, error) {
	pd, err := d.ActivePhysical()
	if err != nil {
		return AddResult{}, err
	}
	if pid, ok := d.DisplayOfWindow(w.ID); ok {
		return AddResult{}, fmt.Errorf("window %d on display %d: %w", w.ID, pid, ErrWindowAlreadyManaged)
	}

	previous := pd.ActiveID()
	result := AddResult{Placement: PlacedActive, Physical: pd.ID(), Logical: previous, Previous: previous}

	err = pd.AddWindow(w)
	if !errors.Is(err, layout.ErrCannotFitWindow) {
		return result, err
	}

	lid, err := d.CreateLogicalDisplay(pd.ID())
	if err != nil {
		return result, fmt.Errorf("overflow window %d: %w", w.ID, err)
	}
	addErr := pd.AddWindowToLogical(w, lid)
	if _, err := pd.SwitchTo(lid); err != nil {
		return result, err
	}

	result.Placement = PlacedOverflow
	result.Logical = lid
	return result, addErr
}

// AddWindowToLogical tiles w on workspace lid. An unallocated lid is created
// on the monitor showing the active workspace.
func (d *Displays) AddWindowToLogical(w window.Window, lid types.LogicalDisplayID) error {
	if lid < 0 || lid > types.MaxLogicalDisplayID {
		return fmt.Errorf("logical display %d: %w", lid, ErrDisplayNotFound)
	}
	if pid, ok := d.DisplayOfWindow(w.ID); ok {
		return fmt.Errorf("window %d on display %d: %w", w.ID, pid, ErrWindowAlreadyManaged)
	}

	pid, ok := d.owners[lid]
	if !ok {
		pd, err := d.ActivePhysical()
		if err != nil {
			return err
		}
		pd.CreateLogicalDisplay(lid)
		d.owners[lid] = pd.ID()
		pid = pd.ID()
	}
	return d.physical[pid].AddWindowToLogical(w, lid)
}

// RemoveWindow removes wid from monitor pid, searching all its workspaces.
func (d *Displays) RemoveWindow(pid types.PhysicalDisplayID, wid types.WindowID) (window.Window, error) {
	pd, ok := d.physical[pid]
	if !ok {
		return window.Window{}, fmt.Errorf("display %d: %w", pid, ErrDisplayNotFound)
	}
	w, _, err := pd.RemoveWindow(wid)
	if errors.Is(err, layout.ErrWindowNotFound) {
		return w, fmt.Errorf("%w: %w", ErrCouldNotRemoveWindow, err)
	}
	return w, err
}

// DisplayOfWindow returns the monitor holding wid on any of its workspaces.
func (d *Displays) DisplayOfWindow(wid types.WindowID) (types.PhysicalDisplayID, bool) {
	for _, pid := range d.PhysicalIDs() {
		if d.physical[pid].Contains(wid) {
			return pid, true
		}
	}
	return 0, false
}

// LogicalOfWindow returns the workspace holding wid.
func (d *Displays) LogicalOfWindow(wid types.WindowID) (types.LogicalDisplayID, bool) {
	pid, ok := d.DisplayOfWindow(wid)
	if !ok {
		return 0, false
	}
	return d.physical[pid].LogicalOf(wid)
}

// FocusDisplay makes the monitor owning lid the active monitor.
func (d *Displays) FocusDisplay(lid types.LogicalDisplayID) error {
	pid, ok := d.owners[lid]
	if !ok {
		return fmt.Errorf("logical display %d: %w", lid, ErrDisplayNotFound)
	}
	d.active = pid
	d.hasActive = true
	return nil
}

// SwitchLogicalDisplay shows workspace lid on the monitor that owns it and
// makes that monitor active. An unallocated lid is created on the active
// monitor first. A workspace left empty by the switch is deleted and its id
// released.
func (d *Displays) SwitchLogicalDisplay(lid types.LogicalDisplayID) (SwitchResult, error) {
	if lid < 0 || lid > types.MaxLogicalDisplayID {
		return SwitchResult{}, fmt.Errorf("logical display %d: %w", lid, ErrDisplayNotFound)
	}

	pid, ok := d.owners[lid]
	if !ok {
		pd, err := d.ActivePhysical()
		if err != nil {
			return SwitchResult{}, err
		}
		pd.CreateLogicalDisplay(lid)
		d.owners[lid] = pd.ID()
		pid = pd.ID()
	}

	pd := d.physical[pid]
	result := SwitchResult{Physical: pid, From: pd.ActiveID(), To: lid}
	removed, err := pd.SwitchTo(lid)
	if err != nil {
		return result, err
	}
	if removed {
		delete(d.owners, result.From)
	}
	result.Removed = removed
	d.active = pid
	d.hasActive = true
	return result, nil
}

// SetFocused focuses wid, which must be on the workspace its monitor is
// showing, and makes that monitor active.
func (d *Displays) SetFocused(wid types.WindowID) error {
	pid, ok := d.DisplayOfWindow(wid)
	if !ok {
		return fmt.Errorf("window %d: %w", wid, layout.ErrWindowNotFound)
	}
	if err := d.physical[pid].SetFocused(wid); err != nil {
		return err
	}
	d.active = pid
	d.hasActive = true
	return nil
}

// Focused returns the focused window of the active workspace.
func (d *Displays) Focused() (types.WindowID, bool) {
	pd, err := d.ActivePhysical()
	if err != nil {
		return 0, false
	}
	return pd.Active().Focused()
}

func (d *Displays) Split(axis types.Axis) error {
	pd, err := d.ActivePhysical()
	if err != nil {
		return err
	}
	return pd.Split(axis)
}

func (d *Displays) ShiftFocus(dir types.Direction) (types.WindowID, error) {
	pd, err := d.ActivePhysical()
	if err != nil {
		return 0, err
	}
	return pd.ShiftFocus(dir)
}

func (d *Displays) ResizeFocused(dir types.Direction) error {
	pd, err := d.ActivePhysical()
	if err != nil {
		return err
	}
	return pd.ResizeFocused(dir)
}

// Reconfigure applies cfg to every monitor and re-tiles all workspaces.
func (d *Displays) Reconfigure(cfg Config) error {
	d.cfg = cfg
	var errs []error
	for _, pid := range d.PhysicalIDs() {
		if err := d.physical[pid].Reconfigure(cfg); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
