package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/yourusername/gridwm/internal/state"
)

// PrintDisplaysTable prints one row per monitor.
func PrintDisplaysTable(w io.Writer, s *state.Status) error {
	table := tablewriter.NewWriter(w)
	table.Header("ID", "Resolution", "Origin", "Showing", "Workspaces", "Windows")

	for _, d := range s.Displays {
		marker := ""
		if d.ID == s.ActiveDisplay {
			marker = " *"
		}
		windows := 0
		for _, l := range d.Workspaces {
			windows += len(l.Windows)
		}
		if err := table.Append(
			fmt.Sprintf("%d%s", d.ID, marker),
			fmt.Sprintf("%.0fx%.0f", d.Bounds.Width, d.Bounds.Height),
			fmt.Sprintf("%.0f,%.0f", d.Bounds.X, d.Bounds.Y),
			fmt.Sprintf("%d", d.Active),
			workspaceIDs(d),
			fmt.Sprintf("%d", windows),
		); err != nil {
			return err
		}
	}

	return table.Render()
}

// PrintWorkspacesTable prints one row per workspace.
func PrintWorkspacesTable(w io.Writer, s *state.Status) error {
	table := tablewriter.NewWriter(w)
	table.Header("Workspace", "Display", "Visible", "Focused", "Windows")

	for _, d := range s.Displays {
		for _, l := range d.Workspaces {
			visible := ""
			if l.ID == d.Active {
				visible = "yes"
			}
			focused := "-"
			if l.Focused != 0 {
				focused = fmt.Sprintf("%d", l.Focused)
			}
			if err := table.Append(
				fmt.Sprintf("%d", l.ID),
				fmt.Sprintf("%d", d.ID),
				visible,
				focused,
				fmt.Sprintf("%d", len(l.Windows)),
			); err != nil {
				return err
			}
		}
	}

	return table.Render()
}

// PrintWindowsTable prints every managed window in tiling order.
func PrintWindowsTable(w io.Writer, s *state.Status) error {
	table := tablewriter.NewWriter(w)
	table.Header("ID", "App", "Workspace", "Display", "Position", "Size")

	for _, d := range s.Displays {
		for _, l := range d.Workspaces {
			for _, win := range l.Windows {
				id := fmt.Sprintf("%d", win.ID)
				if win.ID == s.Focused {
					id += " *"
				}
				if err := table.Append(
					id,
					truncate(win.App, 24),
					fmt.Sprintf("%d", l.ID),
					fmt.Sprintf("%d", d.ID),
					fmt.Sprintf("%.0f,%.0f", win.Bounds.X, win.Bounds.Y),
					fmt.Sprintf("%.0fx%.0f", win.Bounds.Width, win.Bounds.Height),
				); err != nil {
					return err
				}
			}
		}
	}

	return table.Render()
}

func workspaceIDs(d state.DisplayStatus) string {
	if len(d.Workspaces) == 0 {
		return "-"
	}
	ids := make([]string, 0, len(d.Workspaces))
	for _, l := range d.Workspaces {
		ids = append(ids, fmt.Sprintf("%d", l.ID))
	}
	return strings.Join(ids, ", ")
}
