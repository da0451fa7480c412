package ppu

import "github.com/FabianRolfMatthiasNoll/monoboy/internal/lcd"

// Background holds the registers that shape the background layer.
type Background struct {
	MapBase      uint16 // 0x9800 or 0x9C00
	TileData8000 bool   // unsigned tile indices from 0x8000
	SCX, SCY     byte
	BGP          byte
}

// Shade applies the palette to a colour index.
func (bg Background) Shade(ci byte) lcd.Shade {
	return lcd.FromDMG(bg.BGP >> ((ci & 3) * 2))
}

// Line renders background scanline ly into out.
func (bg Background) Line(mem VRAMReader, ly int, out []lcd.Shade) {
	y := uint16(byte(ly) + bg.SCY)
	mapRow := bg.MapBase + (y>>3&31)*32
	fineY := byte(y & 7)
	col := uint16(bg.SCX >> 3)

	var q fifo
	f := fetcher{mem: mem, q: &q, tileData8000: bg.TileData8000}
	f.fetch(mapRow+col, fineY)
	for i := byte(0); i < bg.SCX&7; i++ {
		q.Pop()
	}
	for x := 0; x < lcd.Width; x++ {
		if q.Len() == 0 {
			col = (col + 1) & 31
			f.fetch(mapRow+col, fineY)
		}
		ci, _ := q.Pop()
		out[x] = bg.Shade(ci)
	}
}

// Frame renders all 144 lines into g.
func (bg Background) Frame(mem VRAMReader, g *lcd.Grid) {
	for ly := 0; ly < lcd.Height; ly++ {
		bg.Line(mem, ly, g[ly*lcd.Width:(ly+1)*lcd.Width])
	}
}
