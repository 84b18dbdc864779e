package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/yourusername/gridwm/internal/state"
	"github.com/yourusername/gridwm/internal/types"
	"golang.org/x/sys/unix"
)

// VisualizationOptions controls the appearance of the visualization
type VisualizationOptions struct {
	UseUnicode bool
	ShowIDs    bool
	MaxWidth   int
	MaxHeight  int
}

// DefaultVisualizationOptions sizes the drawing to the terminal.
func DefaultVisualizationOptions() VisualizationOptions {
	width, height := getTerminalSize()
	return VisualizationOptions{
		UseUnicode: supportsUnicode(),
		ShowIDs:    true,
		MaxWidth:   width,
		MaxHeight:  height - 4, // header and footer lines
	}
}

// VisualizeDisplay draws the workspace a display is showing, with the
// focused window outlined in the focus style.
func VisualizeDisplay(ds state.DisplayStatus, focused types.WindowID, opts VisualizationOptions) string {
	ws, _ := ds.Visible()

	var b strings.Builder
	fmt.Fprintf(&b, "Display %d [%.0fx%.0f] workspace %d of {%s}\n",
		ds.ID, ds.Bounds.Width, ds.Bounds.Height, ds.Active, workspaceIDs(ds))

	sc := NewScalingContext(ds.Bounds, opts.MaxWidth, opts.MaxHeight)
	canvas := NewCanvas(sc.TermWidth, sc.TermHeight, opts.UseUnicode)

	if len(ws.Windows) == 0 {
		canvas.DrawBox(0, 0, sc.TermWidth, sc.TermHeight)
		canvas.DrawTextCentered(1, sc.TermHeight/2, sc.TermWidth-2, "(no windows)")
	}
	for _, w := range ws.Windows {
		if w.ID == focused {
			continue
		}
		drawWindow(canvas, sc, w, false, opts.ShowIDs)
	}
	// Focused last so its border wins where tiles touch.
	for _, w := range ws.Windows {
		if w.ID == focused {
			drawWindow(canvas, sc, w, true, opts.ShowIDs)
		}
	}

	b.WriteString(canvas.String())
	fmt.Fprintf(&b, "\nTotal: %d windows\n", len(ws.Windows))
	return b.String()
}

// VisualizeStatus draws every display, one below the other.
func VisualizeStatus(s *state.Status, opts VisualizationOptions) string {
	if len(s.Displays) == 0 {
		return "No displays (is gridwm running?)\n"
	}
	parts := make([]string, 0, len(s.Displays))
	for _, ds := range s.Displays {
		focused := types.WindowID(0)
		if ds.ID == s.ActiveDisplay {
			focused = s.Focused
		}
		parts = append(parts, VisualizeDisplay(ds, focused, opts))
	}
	return strings.Join(parts, "\n")
}

func drawWindow(c *Canvas, sc *ScalingContext, w state.WindowStatus, focused, showID bool) {
	x, y, width, height := sc.ToTerminal(w.Bounds)
	if width < 3 || height < 2 {
		return
	}
	if focused {
		c.DrawFocusBox(x, y, width, height)
	} else {
		c.DrawBox(x, y, width, height)
	}
	if height >= 3 {
		c.DrawText(x+1, y+1, truncate(windowLabel(w, showID), width-2))
	}
}

// windowLabel names a tile, e.g. "[42] Terminal (720x900)".
func windowLabel(w state.WindowStatus, showID bool) string {
	app := w.App
	if app == "" {
		app = "Unknown"
	}
	label := fmt.Sprintf("%s (%.0fx%.0f)", app, w.Bounds.Width, w.Bounds.Height)
	if showID {
		label = fmt.Sprintf("[%d] %s", w.ID, label)
	}
	return label
}

// getTerminalSize returns the current terminal dimensions
func getTerminalSize() (width, height int) {
	ws, err := unix.IoctlGetWinsize(int(os.Stdout.Fd()), unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 || ws.Row == 0 {
		return 80, 24
	}
	return int(ws.Col), int(ws.Row)
}

// supportsUnicode checks if the terminal supports Unicode
func supportsUnicode() bool {
	for _, v := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		if strings.Contains(strings.ToUpper(os.Getenv(v)), "UTF-8") {
			return true
		}
	}
	return false
}

// PrintVisualization writes the drawing to w, in cyan when color is on.
func PrintVisualization(w io.Writer, s *state.Status, opts VisualizationOptions) {
	result := VisualizeStatus(s, opts)
	if color.NoColor {
		fmt.Fprint(w, result)
		return
	}
	color.New(color.FgCyan).Fprint(w, result)
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:max(maxLen, 0)])
	}
	return string(runes[:maxLen-3]) + "..."
}
