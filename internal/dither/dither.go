package dither

import (
	"fmt"

	"github.com/FabianRolfMatthiasNoll/monoboy/internal/lcd"
)

// Lit decides whether destination pixel (x, y) showing shade s is white.
// The result depends on nothing but its arguments, so static content never
// shimmers between frames.
func Lit(s lcd.Shade, x, y int) bool {
	switch s {
	case lcd.Black:
		return false
	case lcd.DarkGrey:
		// one in three, phase shifted on odd rows
		return (x+y%2)%3 == 0
	case lcd.LightGrey:
		// checkerboard
		return (x+y%2)%2 == 0
	case lcd.White:
		return true
	}
	panic(fmt.Sprintf("dither: unknown shade %d", uint8(s)))
}
