// Package reconcile turns successive server snapshots into the window and
// display events the manager reacts to.
package reconcile

import (
	"sort"
	"sync"

	"github.com/yourusername/gridwm/internal/events"
	"github.com/yourusername/gridwm/internal/server"
	"github.com/yourusername/gridwm/internal/types"
)

// Poller remembers what the last snapshot contained and reports the
// difference against the next one.
//
// Windows are tracked globally rather than per display, so a window the OS
// drags to another monitor is neither removed nor re-added. Windows the
// manager minimised itself are marked hidden and stay known for as long as
// the server still lists them.
type Poller struct {
	mu       sync.Mutex
	ignore   func(app string) bool
	displays map[types.PhysicalDisplayID]server.DisplayInfo
	windows  map[types.WindowID]types.PhysicalDisplayID
	hidden   map[types.WindowID]bool
	focused  types.WindowID
}

// NewPoller returns a Poller with nothing known. ignore may be nil.
func NewPoller(ignore func(app string) bool) *Poller {
	return &Poller{
		ignore:   ignore,
		displays: make(map[types.PhysicalDisplayID]server.DisplayInfo),
		windows:  make(map[types.WindowID]types.PhysicalDisplayID),
		hidden:   make(map[types.WindowID]bool),
	}
}

// MarkHidden records that the manager minimised id. The mark is cleared
// once a snapshot shows the window tileable again.
func (p *Poller) MarkHidden(id types.WindowID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.hidden[id] = true
}

// SetIgnore replaces the app filter used by later calls to Diff.
func (p *Poller) SetIgnore(ignore func(app string) bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ignore = ignore
}

// IsHidden reports whether id was minimised by the manager.
func (p *Poller) IsHidden(id types.WindowID) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hidden[id]
}

// Known reports whether id is currently tracked.
func (p *Poller) Known(id types.WindowID) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.windows[id]
	return ok
}

// Forget drops id so the next snapshot listing it reports it as added.
func (p *Poller) Forget(id types.WindowID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.windows, id)
	delete(p.hidden, id)
}

// Diff compares snap with the previous snapshot and returns the events
// describing the change. The first call against an empty Poller reports
// every display and window as added, which is how the manager bootstraps.
//
// Events come out in a fixed order: displays added, windows removed,
// windows added, displays removed, then a focus change.
func (p *Poller) Diff(snap *server.Snapshot) []events.Event {
	p.mu.Lock()
	defer p.mu.Unlock()

	var out []events.Event

	seenDisplays := make(map[types.PhysicalDisplayID]bool, len(snap.Displays))
	for _, d := range snap.Displays {
		seenDisplays[d.ID] = true
		if _, ok := p.displays[d.ID]; ok {
			continue
		}
		p.displays[d.ID] = d
		out = append(out, events.DisplayAdded{Display: d.ID, Bounds: d.Bounds(), Main: d.IsMain})
	}

	current := make(map[types.WindowID]server.WindowInfo, len(snap.Windows))
	listed := make(map[types.WindowID]bool, len(snap.Windows))
	for _, w := range snap.Windows {
		listed[w.ID] = true
		if p.tracks(w) {
			current[w.ID] = w
		}
	}

	for _, id := range sortedWindowIDs(p.windows) {
		if _, ok := current[id]; ok {
			continue
		}
		if p.hidden[id] && listed[id] {
			continue
		}
		out = append(out, events.WindowRemoved{Display: p.windows[id], Window: id})
		delete(p.windows, id)
		delete(p.hidden, id)
	}

	for _, w := range snap.Windows {
		if _, ok := current[w.ID]; !ok {
			continue
		}
		if _, known := p.windows[w.ID]; known {
			p.windows[w.ID] = w.DisplayID
			delete(p.hidden, w.ID)
			continue
		}
		p.windows[w.ID] = w.DisplayID
		out = append(out, events.WindowAdded{
			Display:   w.DisplayID,
			Window:    w.ID,
			App:       w.AppName,
			MinWidth:  w.MinWidth,
			MinHeight: w.MinHeight,
		})
	}

	var gone []types.PhysicalDisplayID
	for id := range p.displays {
		if !seenDisplays[id] {
			gone = append(gone, id)
		}
	}
	sort.Slice(gone, func(i, j int) bool { return gone[i] < gone[j] })
	for _, id := range gone {
		delete(p.displays, id)
		out = append(out, events.DisplayRemoved{Display: id})
	}

	if f := snap.FocusedWindowID; f != 0 && f != p.focused {
		if _, known := current[f]; known {
			p.focused = f
			out = append(out, events.WindowFocused{Window: f})
		}
	}

	return out
}

// tracks reports whether w is a window the manager tiles.
func (p *Poller) tracks(w server.WindowInfo) bool {
	if p.ignore != nil && p.ignore(w.AppName) {
		return false
	}
	return w.IsTileable()
}

func sortedWindowIDs(m map[types.WindowID]types.PhysicalDisplayID) []types.WindowID {
	ids := make([]types.WindowID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
