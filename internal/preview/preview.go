// Package preview draws the 1-bit panel in a terminal with half-block
// runes, two panel rows per text line.
package preview

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/FabianRolfMatthiasNoll/monoboy/internal/display"
	"github.com/FabianRolfMatthiasNoll/monoboy/internal/dither"
)

type Options struct {
	// Columns caps the text width; 0 uses the terminal width.
	Columns int
	// Crop limits the preview to the scaled image, dropping the margins.
	Crop  bool
	Title string
}

var (
	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.ANSIColor(8))
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(3))
	textStyle  = lipgloss.NewStyle().Padding(1, 2).Foreground(lipgloss.ANSIColor(7))
)

// TerminalColumns reports stdout's width, or 80 when it is not a terminal.
func TerminalColumns() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

// Render returns the panel as bordered text. Wide panels are reduced by an
// integer factor; a cell is lit when at least half its pixels are.
func Render(fb *display.Buffer, opts Options) string {
	x0, x1 := 0, display.Width
	if opts.Crop {
		x0, x1 = dither.StartX, dither.StartX+dither.VisibleWidth
	}
	cols := opts.Columns
	if cols <= 0 {
		cols = TerminalColumns()
	}
	cols -= 2 // border
	if cols < 1 {
		cols = 1
	}
	step := (x1 - x0 + cols - 1) / cols
	if step < 1 {
		step = 1
	}

	lit := func(cx, cy int) bool {
		on, n := 0, 0
		for y := cy * step; y < (cy+1)*step && y < display.Height; y++ {
			for x := x0 + cx*step; x < x0+(cx+1)*step && x < x1; x++ {
				n++
				if fb.Lit(x, y) {
					on++
				}
			}
		}
		return n > 0 && on*2 >= n
	}

	w := (x1 - x0 + step - 1) / step
	h := (display.Height + step - 1) / step
	var sb strings.Builder
	for cy := 0; cy < h; cy += 2 {
		if cy > 0 {
			sb.WriteByte('\n')
		}
		for cx := 0; cx < w; cx++ {
			top := lit(cx, cy)
			bottom := cy+1 < h && lit(cx, cy+1)
			sb.WriteRune(cell(top, bottom))
		}
	}
	return frame(sb.String(), opts.Title)
}

func cell(top, bottom bool) rune {
	switch {
	case top && bottom:
		return '█'
	case top:
		return '▀'
	case bottom:
		return '▄'
	}
	return ' '
}

// Message renders plain text in the same frame, for screens that have no
// pixels to show.
func Message(text, title string) string {
	return frame(textStyle.Render(text), title)
}

func frame(body, title string) string {
	out := frameStyle.Render(body)
	if title == "" {
		return out
	}
	return lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(title), out)
}
