package server

import (
	"context"
	"fmt"
	"hash/fnv"
	"sort"

	"github.com/yourusername/gridwm/internal/types"
)

// DisplayInfo describes a connected monitor.
type DisplayInfo struct {
	ID           types.PhysicalDisplayID
	UUID         string
	Frame        types.Rect // Full screen bounds in global coordinates
	VisibleFrame types.Rect // Excludes menu bar/dock
	IsMain       bool
}

// Bounds returns the frame used for tiling, falling back to the visible
// frame when the server did not send a full frame.
func (d DisplayInfo) Bounds() types.Rect {
	if d.Frame.Width > 0 && d.Frame.Height > 0 {
		return d.Frame
	}
	return d.VisibleFrame
}

// Snapshot is a parsed, read-only view of server state at a point in time.
type Snapshot struct {
	Displays        []DisplayInfo // main display first, then by id
	Windows         []WindowInfo
	FocusedWindowID types.WindowID
}

// WindowInfo contains window data needed for layout operations.
type WindowInfo struct {
	ID          types.WindowID
	AppName     string
	BundleID    string
	Title       string
	Frame       types.Rect
	Level       int
	IsMinimized bool
	IsHidden    bool
	DisplayID   types.PhysicalDisplayID
	MinWidth    float64
	MinHeight   float64
}

// IsTileable returns true if the window should be included in tiling.
func (w WindowInfo) IsTileable() bool {
	return !w.IsMinimized && !w.IsHidden && w.Level == 0
}

// Display returns the display with id.
func (s *Snapshot) Display(id types.PhysicalDisplayID) (DisplayInfo, bool) {
	for _, d := range s.Displays {
		if d.ID == id {
			return d, true
		}
	}
	return DisplayInfo{}, false
}

// WindowsOn returns the windows on display id, in ascending id order.
func (s *Snapshot) WindowsOn(id types.PhysicalDisplayID) []WindowInfo {
	var out []WindowInfo
	for _, w := range s.Windows {
		if w.DisplayID == id {
			out = append(out, w)
		}
	}
	return out
}

// Fetch calls dump ONCE and parses into a Snapshot.
func Fetch(ctx context.Context, c Caller) (*Snapshot, error) {
	raw, err := c.CallMethod(ctx, "dump", map[string]interface{}{})
	if err != nil {
		return nil, fmt.Errorf("dump failed: %w", err)
	}
	return ParseSnapshot(raw)
}

// ParseSnapshot builds a Snapshot from a dump result.
func ParseSnapshot(raw map[string]interface{}) (*Snapshot, error) {
	displays := parseAllDisplays(raw)
	if len(displays) == 0 {
		return nil, fmt.Errorf("no displays in server state")
	}

	snap := &Snapshot{
		Displays:        displays,
		FocusedWindowID: parseFocusedWindowID(raw),
	}
	snap.Windows = parseWindows(raw, displays)
	return snap, nil
}

func parseFocusedWindowID(raw map[string]interface{}) types.WindowID {
	metadata, ok := raw["metadata"].(map[string]interface{})
	if !ok {
		return 0
	}
	return types.WindowID(toFloat64(metadata["focusedWindowID"]))
}

// parseAllDisplays extracts every connected display, main display first.
func parseAllDisplays(raw map[string]interface{}) []DisplayInfo {
	rawDisplays, ok := raw["displays"].([]interface{})
	if !ok {
		return nil
	}

	var displays []DisplayInfo
	for _, d := range rawDisplays {
		display, ok := d.(map[string]interface{})
		if !ok {
			continue
		}

		uuid := toString(display["uuid"])
		id, hasID := display["id"]
		if uuid == "" && !hasID {
			continue
		}

		info := DisplayInfo{
			UUID:   uuid,
			IsMain: toBool(display["isMain"]),
		}
		if hasID {
			info.ID = types.PhysicalDisplayID(toFloat64(id))
		} else {
			info.ID = displayIDFromUUID(uuid)
		}
		if rect, ok := parseFrame(display["frame"]); ok {
			info.Frame = rect
		}
		if rect, ok := parseFrame(display["visibleFrame"]); ok {
			info.VisibleFrame = rect
		}
		displays = append(displays, info)
	}

	sort.SliceStable(displays, func(i, j int) bool {
		if displays[i].IsMain != displays[j].IsMain {
			return displays[i].IsMain
		}
		return displays[i].ID < displays[j].ID
	})
	return displays
}

// displayIDFromUUID gives servers that only report UUIDs a stable numeric id.
func displayIDFromUUID(uuid string) types.PhysicalDisplayID {
	h := fnv.New32a()
	h.Write([]byte(uuid))
	return types.PhysicalDisplayID(h.Sum32())
}

func parseWindows(raw map[string]interface{}, displays []DisplayInfo) []WindowInfo {
	var rawList []interface{}
	switch ws := raw["windows"].(type) {
	case map[string]interface{}:
		for _, w := range ws {
			rawList = append(rawList, w)
		}
	case []interface{}:
		rawList = ws
	}

	var windows []WindowInfo
	for _, w := range rawList {
		if win := parseWindow(w, displays); win != nil {
			windows = append(windows, *win)
		}
	}
	sort.Slice(windows, func(i, j int) bool { return windows[i].ID < windows[j].ID })
	return windows
}

func parseWindow(w interface{}, displays []DisplayInfo) *WindowInfo {
	win, ok := w.(map[string]interface{})
	if !ok {
		return nil
	}

	// Skip windows with no app name (system UI elements)
	appName := toString(win["appName"])
	if appName == "" {
		return nil
	}

	window := WindowInfo{
		ID:          types.WindowID(toFloat64(win["id"])),
		Title:       toString(win["title"]),
		AppName:     appName,
		BundleID:    toString(win["bundleId"]),
		IsMinimized: toBool(win["isMinimized"]),
		IsHidden:    toBool(win["isHidden"]),
		Level:       int(toFloat64(win["level"])),
	}
	if rect, ok := parseFrame(win["frame"]); ok {
		window.Frame = rect
	}
	if size, ok := win["minSize"].(map[string]interface{}); ok {
		window.MinWidth = toFloat64(size["width"])
		window.MinHeight = toFloat64(size["height"])
	}
	window.DisplayID = resolveDisplay(win, window.Frame, displays)

	return &window
}

// resolveDisplay finds the display a window is on: by explicit id, then by
// UUID, then by which display contains the window's center, then by largest
// overlap. Anything else lands on the main display.
func resolveDisplay(win map[string]interface{}, frame types.Rect, displays []DisplayInfo) types.PhysicalDisplayID {
	if id, ok := win["displayId"]; ok {
		return types.PhysicalDisplayID(toFloat64(id))
	}
	if uuid := toString(win["displayUUID"]); uuid != "" {
		for _, d := range displays {
			if d.UUID == uuid {
				return d.ID
			}
		}
	}
	center := frame.Center()
	for _, d := range displays {
		if d.Bounds().Contains(center) {
			return d.ID
		}
	}
	best, bestArea := displays[0].ID, 0.0
	for _, d := range displays {
		if area := d.Bounds().Overlap(frame); area > bestArea {
			best, bestArea = d.ID, area
		}
	}
	return best
}

// parseFrame handles both object format {x,y,width,height} and array format [[x,y],[w,h]]
func parseFrame(frame interface{}) (types.Rect, bool) {
	if frame == nil {
		return types.Rect{}, false
	}

	if obj, ok := frame.(map[string]interface{}); ok {
		return types.Rect{
			X:      toFloat64(obj["x"]),
			Y:      toFloat64(obj["y"]),
			Width:  toFloat64(obj["width"]),
			Height: toFloat64(obj["height"]),
		}, true
	}

	if arr, ok := frame.([]interface{}); ok && len(arr) == 2 {
		origin, okOrigin := arr[0].([]interface{})
		size, okSize := arr[1].([]interface{})

		if okOrigin && okSize && len(origin) >= 2 && len(size) >= 2 {
			return types.Rect{
				X:      toFloat64(origin[0]),
				Y:      toFloat64(origin[1]),
				Width:  toFloat64(size[0]),
				Height: toFloat64(size[1]),
			}, true
		}
	}

	return types.Rect{}, false
}

// Type conversion helpers

func toFloat64(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case int32:
		return float64(n)
	case uint32:
		return float64(n)
	default:
		return 0
	}
}

func toString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func toBool(v interface{}) bool {
	if b, ok := v.(bool); ok {
		return b
	}
	return false
}
