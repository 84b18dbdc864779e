package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yourusername/gridwm/internal/state"
	"github.com/yourusername/gridwm/internal/types"
)

// BarStyles are the lipgloss styles the status bar is drawn with.
type BarStyles struct {
	Display   lipgloss.Style
	Active    lipgloss.Style
	Inactive  lipgloss.Style
	AddrUp    lipgloss.Style
	AddrDown  lipgloss.Style
	Separator string
}

// DefaultBarStyles mirrors a black bar with white labels, green addresses
// when the host is online and red when it is not.
func DefaultBarStyles() BarStyles {
	chip := lipgloss.NewStyle().Padding(0, 1)
	return BarStyles{
		Display:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")),
		Active:    chip.Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("15")),
		Inactive:  chip.Foreground(lipgloss.Color("8")),
		AddrUp:    lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		AddrDown:  lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		Separator: " ",
	}
}

const (
	ipv4Down = "W: down"
	ipv6Down = "no IPv6"
)

// RenderBar renders the one-line bar for a monitor: its id, its workspaces
// with the visible one highlighted, then the host's addresses. A zero pid
// means the active monitor.
func RenderBar(s *state.Status, pid types.PhysicalDisplayID, styles BarStyles) string {
	if pid == 0 {
		pid = s.ActiveDisplay
	}

	var parts []string
	if d, ok := s.Display(pid); ok {
		parts = append(parts, styles.Display.Render(fmt.Sprintf("%d", d.ID)))
		for _, l := range d.Workspaces {
			label := fmt.Sprintf("%d", l.ID)
			if l.ID == d.Active {
				parts = append(parts, styles.Active.Render(label))
			} else {
				parts = append(parts, styles.Inactive.Render(label))
			}
		}
	}

	parts = append(parts,
		addressLabel(s.System.PrimaryIPv6(), ipv6Down, styles),
		addressLabel(s.System.PrimaryIPv4(), ipv4Down, styles),
	)

	return strings.Join(parts, styles.Separator)
}

func addressLabel(addr, down string, styles BarStyles) string {
	if addr == "" {
		return styles.AddrDown.Render(down)
	}
	return styles.AddrUp.Render(addr)
}
