package output

import (
	"strings"
)

// BoxStyle defines the character set for drawing boxes
type BoxStyle struct {
	TopLeft     rune
	TopRight    rune
	BottomLeft  rune
	BottomRight rune
	Horizontal  rune
	Vertical    rune
}

var (
	// ASCIIStyle uses simple ASCII characters for box drawing
	ASCIIStyle = BoxStyle{'+', '+', '+', '+', '-', '|'}

	// ASCIIFocusStyle marks the focused window when Unicode is unavailable
	ASCIIFocusStyle = BoxStyle{'#', '#', '#', '#', '=', '#'}

	// UnicodeStyle uses Unicode box drawing characters
	UnicodeStyle = BoxStyle{'┌', '┐', '└', '┘', '─', '│'}

	// UnicodeFocusStyle uses heavy lines for the focused window
	UnicodeFocusStyle = BoxStyle{'┏', '┓', '┗', '┛', '━', '┃'}
)

// Canvas is a fixed-size grid of runes that tiles are drawn onto.
type Canvas struct {
	Width  int
	Height int
	cells  [][]rune
	style  BoxStyle
	focus  BoxStyle
}

// NewCanvas creates a blank canvas.
func NewCanvas(width, height int, useUnicode bool) *Canvas {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	cells := make([][]rune, height)
	for y := range cells {
		cells[y] = []rune(strings.Repeat(" ", width))
	}

	c := &Canvas{Width: width, Height: height, cells: cells, style: ASCIIStyle, focus: ASCIIFocusStyle}
	if useUnicode {
		c.style, c.focus = UnicodeStyle, UnicodeFocusStyle
	}
	return c
}

// SetCell sets a character; positions outside the canvas are ignored.
func (c *Canvas) SetCell(x, y int, r rune) {
	if x >= 0 && x < c.Width && y >= 0 && y < c.Height {
		c.cells[y][x] = r
	}
}

// Cell returns the character at x, y.
func (c *Canvas) Cell(x, y int) rune {
	if x >= 0 && x < c.Width && y >= 0 && y < c.Height {
		return c.cells[y][x]
	}
	return ' '
}

// DrawBox outlines a box in the normal style.
func (c *Canvas) DrawBox(x, y, width, height int) {
	c.drawBox(x, y, width, height, c.style)
}

// DrawFocusBox outlines a box in the focus style.
func (c *Canvas) DrawFocusBox(x, y, width, height int) {
	c.drawBox(x, y, width, height, c.focus)
}

func (c *Canvas) drawBox(x, y, width, height int, s BoxStyle) {
	if width < 2 || height < 2 {
		return
	}
	right, bottom := x+width-1, y+height-1

	for i := x + 1; i < right; i++ {
		c.SetCell(i, y, s.Horizontal)
		c.SetCell(i, bottom, s.Horizontal)
	}
	for i := y + 1; i < bottom; i++ {
		c.SetCell(x, i, s.Vertical)
		c.SetCell(right, i, s.Vertical)
	}
	c.SetCell(x, y, s.TopLeft)
	c.SetCell(right, y, s.TopRight)
	c.SetCell(x, bottom, s.BottomLeft)
	c.SetCell(right, bottom, s.BottomRight)
}

// DrawText writes text starting at x, y, one rune per cell.
func (c *Canvas) DrawText(x, y int, text string) {
	i := 0
	for _, r := range text {
		c.SetCell(x+i, y, r)
		i++
	}
}

// DrawTextCentered writes text centered within width, cutting it to fit.
func (c *Canvas) DrawTextCentered(x, y, width int, text string) {
	runes := []rune(text)
	if len(runes) >= width {
		c.DrawText(x, y, string(runes[:max(width, 0)]))
		return
	}
	c.DrawText(x+(width-len(runes))/2, y, text)
}

// String renders the canvas with trailing spaces trimmed from each row.
func (c *Canvas) String() string {
	rows := make([]string, len(c.cells))
	for y, row := range c.cells {
		rows[y] = strings.TrimRight(string(row), " ")
	}
	return strings.Join(rows, "\n")
}
