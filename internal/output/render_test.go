package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/yourusername/gridwm/internal/state"
	"github.com/yourusername/gridwm/internal/sysinfo"
	"github.com/yourusername/gridwm/internal/types"
)

func sampleStatus() *state.Status {
	s := state.NewStatus()
	s.ActiveDisplay = 1
	s.ActiveLogical = 0
	s.Focused = 1
	s.Displays = []state.DisplayStatus{{
		ID:     1,
		Bounds: types.Rect{Width: 1000, Height: 800},
		Active: 0,
		Workspaces: []state.LogicalStatus{
			{ID: 0, Focused: 1, Windows: []state.WindowStatus{
				{ID: 1, App: "Terminal", Bounds: types.Rect{Width: 500, Height: 800}},
				{ID: 2, App: "Safari", Bounds: types.Rect{X: 500, Width: 500, Height: 800}},
			}},
			{ID: 4, Focused: 3, Windows: []state.WindowStatus{
				{ID: 3, App: "Mail", Bounds: types.Rect{Width: 1000, Height: 800}},
			}},
		},
	}}
	return s
}

func testOptions() VisualizationOptions {
	return VisualizationOptions{ShowIDs: true, MaxWidth: 100, MaxHeight: 40}
}

func TestVisualizeStatus(t *testing.T) {
	got := VisualizeStatus(sampleStatus(), testOptions())

	for _, want := range []string{
		"Display 1 [1000x800] workspace 0 of {0, 4}",
		"[1] Terminal (500x800)",
		"[2] Safari (500x800)",
		"Total: 2 windows",
		"#===",
		"+---",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("VisualizeStatus() missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Mail") {
		t.Errorf("VisualizeStatus() drew a hidden workspace:\n%s", got)
	}
}

func TestVisualizeStatus_Empty(t *testing.T) {
	s := sampleStatus()
	s.Displays[0].Active = 7
	s.Displays[0].Workspaces = append(s.Displays[0].Workspaces, state.LogicalStatus{ID: 7})

	got := VisualizeStatus(s, testOptions())
	if !strings.Contains(got, "(no windows)") {
		t.Errorf("VisualizeStatus() missing placeholder:\n%s", got)
	}

	if got := VisualizeStatus(state.NewStatus(), testOptions()); !strings.Contains(got, "No displays") {
		t.Errorf("VisualizeStatus(empty) = %q", got)
	}
}

func TestWindowLabel(t *testing.T) {
	w := state.WindowStatus{ID: 42, Bounds: types.Rect{Width: 720, Height: 900}}
	if got := windowLabel(w, true); got != "[42] Unknown (720x900)" {
		t.Errorf("windowLabel() = %q", got)
	}
	w.App = "Terminal"
	if got := windowLabel(w, false); got != "Terminal (720x900)" {
		t.Errorf("windowLabel() = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"hello world", 8, "hello..."},
		{"abc", 2, "ab"},
		{"日本語テキスト", 5, "日本..."},
	}

	for _, tt := range tests {
		if got := truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

func TestTables(t *testing.T) {
	s := sampleStatus()

	tests := []struct {
		name  string
		print func(*bytes.Buffer) error
		want  []string
	}{
		{"displays", func(b *bytes.Buffer) error { return PrintDisplaysTable(b, s) },
			[]string{"1000x800", "0, 4"}},
		{"workspaces", func(b *bytes.Buffer) error { return PrintWorkspacesTable(b, s) },
			[]string{"yes"}},
		{"windows", func(b *bytes.Buffer) error { return PrintWindowsTable(b, s) },
			[]string{"Terminal", "Safari", "Mail", "500,0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := tt.print(&buf); err != nil {
				t.Fatalf("print: %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("table missing %q:\n%s", want, buf.String())
				}
			}
		})
	}
}

func plainBarStyles() BarStyles {
	plain := lipgloss.NewStyle()
	return BarStyles{
		Display:   plain,
		Active:    plain,
		Inactive:  plain,
		AddrUp:    plain,
		AddrDown:  plain,
		Separator: " ",
	}
}

func TestRenderBar(t *testing.T) {
	s := sampleStatus()

	if got, want := RenderBar(s, 0, plainBarStyles()), "1 0 4 no IPv6 W: down"; got != want {
		t.Errorf("RenderBar() = %q, want %q", got, want)
	}

	s.System = &sysinfo.Info{IPv4: []string{"192.168.1.20"}, IPv6: []string{"2001:db8::1"}}
	if got, want := RenderBar(s, 1, plainBarStyles()), "1 0 4 2001:db8::1 192.168.1.20"; got != want {
		t.Errorf("RenderBar() = %q, want %q", got, want)
	}

	// Unknown monitors still show the host addresses.
	if got, want := RenderBar(s, 9, plainBarStyles()), "2001:db8::1 192.168.1.20"; got != want {
		t.Errorf("RenderBar() = %q, want %q", got, want)
	}
}

func TestRenderBar_DefaultStyles(t *testing.T) {
	got := RenderBar(sampleStatus(), 0, DefaultBarStyles())
	for _, want := range []string{"1", "4", "W: down", "no IPv6"} {
		if !strings.Contains(got, want) {
			t.Errorf("RenderBar() missing %q: %q", want, got)
		}
	}
}
