// Package state holds the status feed the running manager publishes for the
// CLI and the status bar: which workspaces exist, which are on screen and
// where every managed window sits.
package state

import (
	"time"

	"github.com/yourusername/gridwm/internal/display"
	"github.com/yourusername/gridwm/internal/sysinfo"
	"github.com/yourusername/gridwm/internal/types"
)

const (
	// StatusVersion is the current status file format version
	StatusVersion = 1
)

// Status is the root structure persisted to disk
type Status struct {
	Version       int                     `json:"version"`
	UpdatedAt     time.Time               `json:"updatedAt"`
	ActiveDisplay types.PhysicalDisplayID `json:"activeDisplay"`
	ActiveLogical types.LogicalDisplayID  `json:"activeLogical"`
	Focused       types.WindowID          `json:"focused,omitempty"`
	Displays      []DisplayStatus         `json:"displays"`
	System        *sysinfo.Info           `json:"system,omitempty"`
}

// DisplayStatus describes one monitor and its workspaces.
type DisplayStatus struct {
	ID         types.PhysicalDisplayID `json:"id"`
	Bounds     types.Rect              `json:"bounds"`
	Active     types.LogicalDisplayID  `json:"active"`
	Workspaces []LogicalStatus         `json:"workspaces"` // ascending id
}

// LogicalStatus describes one workspace.
type LogicalStatus struct {
	ID      types.LogicalDisplayID `json:"id"`
	Focused types.WindowID         `json:"focused,omitempty"`
	Windows []WindowStatus         `json:"windows"` // tiling order
}

// WindowStatus is a managed window and the bounds the layout gave it.
type WindowStatus struct {
	ID     types.WindowID `json:"id"`
	App    string         `json:"app,omitempty"`
	Bounds types.Rect     `json:"bounds"`
}

// NewStatus creates an empty status.
func NewStatus() *Status {
	return &Status{
		Version:   StatusVersion,
		UpdatedAt: time.Now(),
		Displays:  make([]DisplayStatus, 0),
	}
}

// FromDisplays captures d. apps maps window ids to application names and
// may be nil.
func FromDisplays(d *display.Displays, apps map[types.WindowID]string) *Status {
	s := NewStatus()

	if pd, err := d.ActivePhysical(); err == nil {
		s.ActiveDisplay = pd.ID()
		s.ActiveLogical = pd.ActiveID()
	}
	if f, ok := d.Focused(); ok {
		s.Focused = f
	}

	for _, pid := range d.PhysicalIDs() {
		pd, _ := d.Physical(pid)
		ds := DisplayStatus{
			ID:         pid,
			Bounds:     pd.Bounds(),
			Active:     pd.ActiveID(),
			Workspaces: make([]LogicalStatus, 0),
		}
		for _, lid := range pd.LogicalIDs() {
			l, _ := pd.Logical(lid)
			ls := LogicalStatus{ID: lid, Windows: make([]WindowStatus, 0)}
			if f, ok := l.Focused(); ok {
				ls.Focused = f
			}
			for _, p := range l.Placements() {
				ls.Windows = append(ls.Windows, WindowStatus{
					ID:     p.WindowID,
					App:    apps[p.WindowID],
					Bounds: p.Bounds,
				})
			}
			ds.Workspaces = append(ds.Workspaces, ls)
		}
		s.Displays = append(s.Displays, ds)
	}
	return s
}
