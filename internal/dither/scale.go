// Package dither maps the 4-shade source frame onto the 1-bit panel: a
// floor-scaled nearest sample per destination pixel, then a fixed ordered
// pattern per shade.
package dither

import (
	"fmt"

	"github.com/FabianRolfMatthiasNoll/monoboy/internal/display"
	"github.com/FabianRolfMatthiasNoll/monoboy/internal/lcd"
)

// The source is scaled by ScaleNum/ScaleDen (5/3, i.e. 1.666...).
const (
	ScaleNum = 5
	ScaleDen = 3

	// VisibleWidth is floor(160 * 5/3).
	VisibleWidth  = lcd.Width * ScaleNum / ScaleDen
	VisibleHeight = lcd.Height * ScaleNum / ScaleDen

	// StartX centres the scaled image horizontally on the panel.
	StartX = (display.Width - VisibleWidth) / 2
)

// Scale maps a destination-local pixel to the source pixel it samples.
// Every call is independent; there is no stepping state to drift.
func Scale(x, y int) (sx, sy int) {
	if x < 0 || x >= VisibleWidth || y < 0 || y >= VisibleHeight {
		panic(fmt.Sprintf("dither: destination (%d,%d) outside %dx%d", x, y, VisibleWidth, VisibleHeight))
	}
	return x * ScaleDen / ScaleNum, y * ScaleDen / ScaleNum
}
