package lcd

import "fmt"

// Source display geometry (DMG LCD).
const (
	Width  = 160
	Height = 144
)

// Shade is one of the four DMG grey levels, darkest first.
type Shade uint8

const (
	Black Shade = iota
	DarkGrey
	LightGrey
	White
)

// FromDMG converts a DMG palette shade number (0 = white .. 3 = black).
func FromDMG(n byte) Shade { return White - Shade(n&0x03) }

// DMG is the inverse of FromDMG.
func (s Shade) DMG() byte { return byte(White - s) }

func (s Shade) String() string {
	switch s {
	case Black:
		return "black"
	case DarkGrey:
		return "dark-grey"
	case LightGrey:
		return "light-grey"
	case White:
		return "white"
	}
	return fmt.Sprintf("shade(%d)", uint8(s))
}

// Grid is one finished frame from the emulation core, row-major.
type Grid [Width * Height]Shade

// At returns the shade at source pixel (x, y).
func (g *Grid) At(x, y int) Shade {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		panic(fmt.Sprintf("lcd: pixel (%d,%d) outside %dx%d", x, y, Width, Height))
	}
	return g[y*Width+x]
}

// Set stores s at source pixel (x, y).
func (g *Grid) Set(x, y int, s Shade) {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		panic(fmt.Sprintf("lcd: pixel (%d,%d) outside %dx%d", x, y, Width, Height))
	}
	g[y*Width+x] = s
}

// Fill sets every pixel to s.
func (g *Grid) Fill(s Shade) {
	for i := range g {
		g[i] = s
	}
}
