package dither

import (
	"github.com/FabianRolfMatthiasNoll/monoboy/internal/display"
	"github.com/FabianRolfMatthiasNoll/monoboy/internal/lcd"
)

// Compose redraws the whole visible image from grid into fb and reports the
// rows it touched, which is always the full panel height. The margins left
// and right of the image are not written.
func Compose(grid *lcd.Grid, fb *display.Buffer) display.RowRange {
	for y := 0; y < VisibleHeight; y++ {
		for x := 0; x < VisibleWidth; x++ {
			sx, sy := Scale(x, y)
			fb.Set(x+StartX, y, Lit(grid.At(sx, sy), x, y))
		}
	}
	return display.FullHeight
}

// Composer adapts Compose to the panel's borrow callback for one frame.
func Composer(grid *lcd.Grid) func(fb *display.Buffer) display.RowRange {
	return func(fb *display.Buffer) display.RowRange {
		return Compose(grid, fb)
	}
}
