package events

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/yourusername/gridwm/internal/types"
)

// CommandKind identifies what a key command does.
type CommandKind int

const (
	CmdNewTerminal CommandKind = iota
	CmdCloseWindow
	CmdFocus
	CmdFocusDisplay
	CmdMoveWindowToDisplay
	CmdToggleVerticalSplit
	CmdToggleHorizontalSplit
	CmdResizeWindow
)

var commandNames = map[CommandKind]string{
	CmdNewTerminal:           "new-terminal",
	CmdCloseWindow:           "close-window",
	CmdFocus:                 "focus",
	CmdFocusDisplay:          "focus-display",
	CmdMoveWindowToDisplay:   "move-to-display",
	CmdToggleVerticalSplit:   "split-vertical",
	CmdToggleHorizontalSplit: "split-horizontal",
	CmdResizeWindow:          "resize",
}

func (k CommandKind) String() string {
	if name, ok := commandNames[k]; ok {
		return name
	}
	return "unknown"
}

// Command is a parsed key command. Dir is set for focus and resize, Target
// for the display commands.
type Command struct {
	Kind   CommandKind
	Dir    types.Direction
	Target types.LogicalDisplayID
}

// String returns the command in the form ParseCommand accepts.
func (c Command) String() string {
	switch c.Kind {
	case CmdFocus, CmdResizeWindow:
		return c.Kind.String() + " " + c.Dir.String()
	case CmdFocusDisplay, CmdMoveWindowToDisplay:
		return c.Kind.String() + " " + strconv.Itoa(int(c.Target))
	default:
		return c.Kind.String()
	}
}

// ParseCommand parses commands such as "new-terminal", "focus left",
// "resize up", "focus-display 3" or "move-to-display 2".
func ParseCommand(s string) (Command, error) {
	fields := strings.Fields(strings.ToLower(s))
	if len(fields) == 0 {
		return Command{}, fmt.Errorf("empty command")
	}

	var kind CommandKind
	found := false
	for k, name := range commandNames {
		if name == fields[0] {
			kind, found = k, true
			break
		}
	}
	if !found {
		return Command{}, fmt.Errorf("unknown command: %q", fields[0])
	}

	cmd := Command{Kind: kind}
	switch kind {
	case CmdFocus, CmdResizeWindow:
		if len(fields) != 2 {
			return Command{}, fmt.Errorf("%s needs a direction", kind)
		}
		dir, ok := types.ParseDirection(fields[1])
		if !ok {
			return Command{}, fmt.Errorf("%s: invalid direction %q", kind, fields[1])
		}
		cmd.Dir = dir
	case CmdFocusDisplay, CmdMoveWindowToDisplay:
		if len(fields) != 2 {
			return Command{}, fmt.Errorf("%s needs a display number", kind)
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil || n < 0 || n > int(types.MaxLogicalDisplayID) {
			return Command{}, fmt.Errorf("%s: display must be 0-%d, got %q", kind, types.MaxLogicalDisplayID, fields[1])
		}
		cmd.Target = types.LogicalDisplayID(n)
	default:
		if len(fields) != 1 {
			return Command{}, fmt.Errorf("%s takes no arguments", kind)
		}
	}
	return cmd, nil
}

// Keymap maps normalized key chords to commands.
type Keymap map[string]Command

// NewKeymap parses bindings of chord to command text. Two chords that
// normalize to the same key are an error.
func NewKeymap(bindings map[string]string) (Keymap, error) {
	chords := make([]string, 0, len(bindings))
	for chord := range bindings {
		chords = append(chords, chord)
	}
	sort.Strings(chords)

	km := make(Keymap, len(bindings))
	for _, chord := range chords {
		key, err := NormalizeChord(chord)
		if err != nil {
			return nil, err
		}
		if _, dup := km[key]; dup {
			return nil, fmt.Errorf("duplicate key binding: %s", key)
		}
		cmd, err := ParseCommand(bindings[chord])
		if err != nil {
			return nil, fmt.Errorf("binding %s: %w", chord, err)
		}
		km[key] = cmd
	}
	return km, nil
}

// Lookup returns the command bound to chord.
func (km Keymap) Lookup(chord string) (Command, bool) {
	key, err := NormalizeChord(chord)
	if err != nil {
		return Command{}, false
	}
	cmd, ok := km[key]
	return cmd, ok
}

// Chords returns the bound chords in sorted order.
func (km Keymap) Chords() []string {
	chords := make([]string, 0, len(km))
	for chord := range km {
		chords = append(chords, chord)
	}
	sort.Strings(chords)
	return chords
}

var modifierOrder = map[string]int{"ctrl": 0, "alt": 1, "shift": 2, "cmd": 3}

var modifierAliases = map[string]string{
	"control": "ctrl",
	"option":  "alt",
	"opt":     "alt",
	"command": "cmd",
	"super":   "cmd",
}

// NormalizeChord lowercases a chord like "Shift+Alt+H" and orders its
// modifiers, giving "alt+shift+h".
func NormalizeChord(chord string) (string, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(chord)), "+")
	key := strings.TrimSpace(parts[len(parts)-1])
	if key == "" {
		return "", fmt.Errorf("invalid key chord: %q", chord)
	}

	mods := make([]string, 0, len(parts)-1)
	seen := make(map[string]bool)
	for _, p := range parts[:len(parts)-1] {
		m := strings.TrimSpace(p)
		if alias, ok := modifierAliases[m]; ok {
			m = alias
		}
		if _, ok := modifierOrder[m]; !ok {
			return "", fmt.Errorf("invalid modifier %q in chord %q", p, chord)
		}
		if !seen[m] {
			seen[m] = true
			mods = append(mods, m)
		}
	}
	sort.Slice(mods, func(i, j int) bool { return modifierOrder[mods[i]] < modifierOrder[mods[j]] })

	return strings.Join(append(mods, key), "+"), nil
}

// DefaultBindings returns the stock key bindings.
func DefaultBindings() map[string]string {
	b := map[string]string{
		"alt+return":  "new-terminal",
		"alt+shift+q": "close-window",
		"alt+v":       "split-vertical",
		"alt+b":       "split-horizontal",
	}
	keys := map[string]string{"h": "left", "j": "down", "k": "up", "l": "right"}
	for key, dir := range keys {
		b["alt+"+key] = "focus " + dir
		b["alt+shift+"+key] = "resize " + dir
	}
	for n := 0; n <= int(types.MaxLogicalDisplayID); n++ {
		b["alt+"+strconv.Itoa(n)] = "focus-display " + strconv.Itoa(n)
		b["alt+shift+"+strconv.Itoa(n)] = "move-to-display " + strconv.Itoa(n)
	}
	return b
}
