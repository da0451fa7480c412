// Package ppu renders DMG background scanlines from tile data: a tile
// fetcher pushes 2-bit colour indices through a pixel FIFO and BGP maps them
// to shades.
package ppu

// VRAMReader provides read-only access to tile maps and tile data.
type VRAMReader interface {
	Read(addr uint16) byte
}

// fifo is a small ring buffer of 2-bit colour indices.
type fifo struct {
	buf  [16]byte
	head int
	tail int
	size int
}

func (q *fifo) Clear()   { q.head, q.tail, q.size = 0, 0, 0 }
func (q *fifo) Len() int { return q.size }

func (q *fifo) Push(ci byte) bool {
	if q.size == len(q.buf) {
		return false
	}
	q.buf[q.tail] = ci & 0x03
	q.tail = (q.tail + 1) % len(q.buf)
	q.size++
	return true
}

func (q *fifo) Pop() (byte, bool) {
	if q.size == 0 {
		return 0, false
	}
	v := q.buf[q.head]
	q.head = (q.head + 1) % len(q.buf)
	q.size--
	return v, true
}

// fetcher pulls one 8-pixel tile row into the FIFO.
type fetcher struct {
	mem          VRAMReader
	q            *fifo
	tileData8000 bool
}

// fetch pushes the pixels of row fineY of the tile referenced at mapAddr.
func (f *fetcher) fetch(mapAddr uint16, fineY byte) {
	tile := f.mem.Read(mapAddr)
	var row uint16
	if f.tileData8000 {
		row = 0x8000 + uint16(tile)*16
	} else {
		// 0x8800 mode: signed index around 0x9000
		row = uint16(int32(0x9000) + int32(int8(tile))*16)
	}
	row += uint16(fineY&7) * 2
	lo, hi := f.mem.Read(row), f.mem.Read(row+1)
	for bit := 7; bit >= 0; bit-- {
		f.q.Push((hi>>bit&1)<<1 | lo>>bit&1)
	}
}
