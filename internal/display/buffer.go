// Package display models the 1-bit output panel: a 400x240 canvas packed
// eight pixels per byte, most significant bit leftmost, 52 bytes per row.
package display

import (
	"fmt"
	"image"
	"image/color"
)

const (
	Width  = 400
	Height = 240
	// Stride is the bytes per row, including two padding bytes after the
	// 50 visible ones.
	Stride = 52
	Size   = Stride * Height
)

// Buffer is the packed framebuffer. A set bit is a white (lit) pixel.
type Buffer [Size]byte

// Set writes pixel (x, y), leaving the other seven bits of its byte alone.
func (b *Buffer) Set(x, y int, white bool) {
	i, bit := locate(x, y)
	v := b[i] &^ (1 << bit)
	if white {
		v |= 1 << bit
	}
	b[i] = v
}

// Lit reports whether pixel (x, y) is white.
func (b *Buffer) Lit(x, y int) bool {
	i, bit := locate(x, y)
	return b[i]&(1<<bit) != 0
}

// Clear sets every pixel, padding included, to white or black.
func (b *Buffer) Clear(white bool) {
	var v byte
	if white {
		v = 0xFF
	}
	for i := range b {
		b[i] = v
	}
}

// Row returns the packed bytes of row y, padding included.
func (b *Buffer) Row(y int) []byte {
	if y < 0 || y >= Height {
		panic(fmt.Sprintf("display: row %d outside 0..%d", y, Height-1))
	}
	return b[y*Stride : (y+1)*Stride]
}

// Image expands the visible area into an 8-bit grey image.
func (b *Buffer) Image() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, Width, Height))
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			if b.Lit(x, y) {
				img.SetGray(x, y, color.Gray{Y: 0xFF})
			}
		}
	}
	return img
}

// RGBA writes the visible area as RGBA bytes into dst (len Width*Height*4),
// using on/off for lit and unlit pixels.
func (b *Buffer) RGBA(dst []byte, on, off color.RGBA) {
	for y := 0; y < Height; y++ {
		row := b.Row(y)
		o := y * Width * 4
		for x := 0; x < Width; x++ {
			c := off
			if row[x>>3]&(0x80>>(x&7)) != 0 {
				c = on
			}
			dst[o] = c.R
			dst[o+1] = c.G
			dst[o+2] = c.B
			dst[o+3] = c.A
			o += 4
		}
	}
}

func locate(x, y int) (int, uint) {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		panic(fmt.Sprintf("display: pixel (%d,%d) outside %dx%d", x, y, Width, Height))
	}
	return y*Stride + x/8, uint(7 - x%8)
}
