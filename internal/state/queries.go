package state

import "github.com/yourusername/gridwm/internal/types"

// Display returns the monitor with id.
func (s *Status) Display(id types.PhysicalDisplayID) (DisplayStatus, bool) {
	for _, d := range s.Displays {
		if d.ID == id {
			return d, true
		}
	}
	return DisplayStatus{}, false
}

// ActiveWorkspace returns the workspace on screen on the active monitor.
func (s *Status) ActiveWorkspace() (LogicalStatus, bool) {
	d, ok := s.Display(s.ActiveDisplay)
	if !ok {
		return LogicalStatus{}, false
	}
	return d.Workspace(d.Active)
}

// Workspace returns workspace id of this monitor.
func (d DisplayStatus) Workspace(id types.LogicalDisplayID) (LogicalStatus, bool) {
	for _, l := range d.Workspaces {
		if l.ID == id {
			return l, true
		}
	}
	return LogicalStatus{}, false
}

// Visible returns the workspace this monitor is showing.
func (d DisplayStatus) Visible() (LogicalStatus, bool) {
	return d.Workspace(d.Active)
}

// WindowCount returns the number of managed windows across all workspaces.
func (s *Status) WindowCount() int {
	n := 0
	for _, d := range s.Displays {
		for _, l := range d.Workspaces {
			n += len(l.Windows)
		}
	}
	return n
}

// FindWindow returns where window id is managed.
func (s *Status) FindWindow(id types.WindowID) (types.PhysicalDisplayID, types.LogicalDisplayID, bool) {
	for _, d := range s.Displays {
		for _, l := range d.Workspaces {
			for _, w := range l.Windows {
				if w.ID == id {
					return d.ID, l.ID, true
				}
			}
		}
	}
	return 0, 0, false
}

// Summary returns a compact map suitable for JSON output.
func (s *Status) Summary() map[string]interface{} {
	workspaces := 0
	for _, d := range s.Displays {
		workspaces += len(d.Workspaces)
	}
	return map[string]interface{}{
		"version":       s.Version,
		"updatedAt":     s.UpdatedAt,
		"displays":      len(s.Displays),
		"workspaces":    workspaces,
		"windows":       s.WindowCount(),
		"activeDisplay": s.ActiveDisplay,
		"activeLogical": s.ActiveLogical,
		"focused":       s.Focused,
	}
}
