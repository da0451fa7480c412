package emu

import (
	"encoding/binary"

	"github.com/FabianRolfMatthiasNoll/monoboy/internal/cart"
	"github.com/FabianRolfMatthiasNoll/monoboy/internal/lcd"
	"github.com/FabianRolfMatthiasNoll/monoboy/internal/ppu"
)

const (
	mapBase = 0x9800

	logoTile  = 1  // tiles 1..24 hold the doubled logo
	stripTile = 26 // tiles 26..29 are solid colour 0..3
	logoRow   = 8  // map rows 8 and 9, columns 4..15
	logoCol   = 4
	stripRow  = 14 // map rows 14 and 15

	bootSCY = 0x64
)

// Palettes cycled by START (forward) and SELECT (back).
var Palettes = []byte{0xE4, 0x1B, 0xFC, 0x90, 0x54}

var ramMagic = [4]byte{'M', 'B', 'O', 'Y'}

// battery RAM layout
const (
	ramPalette = 4
	ramSCX     = 5
	ramSCY     = 6
	ramBoots   = 7
	ramUsed    = 11
)

var _ Core = (*Machine)(nil)

// Machine is a stand-in core. It runs no cartridge code: it decodes the
// header logo into tiles, scrolls it into place the way the DMG boot ROM
// does, and then lets the d-pad pan the background. Palette, pan and a boot
// counter live in battery RAM.
type Machine struct {
	cfg    Config
	header *cart.Header
	vram   vram
	bg     ppu.Background
	frame  lcd.Grid
	ram    []byte

	btn, prev Buttons
	palette   int
	panX      byte
	panY      byte
	boots     uint32
	frames    uint64
}

type vram [0x2000]byte

func (v *vram) Read(addr uint16) byte {
	if addr < 0x8000 || addr >= 0xA000 {
		return 0xFF
	}
	return v[addr-0x8000]
}

func (v *vram) write(addr uint16, b byte) { v[addr-0x8000] = b }

func New(cfg Config) *Machine {
	cfg.Defaults()
	m := &Machine{cfg: cfg}
	m.frame.Fill(lcd.White)
	return m
}

// LoadCartridge parses the header and lays out VRAM for the boot screen.
func (m *Machine) LoadCartridge(rom []byte) error {
	h, err := cart.ParseHeader(rom)
	if err != nil {
		return err
	}
	m.header = h
	m.ram = make([]byte, h.RAMSizeBytes)
	m.palette, m.panX, m.panY, m.boots = 0, 0, 0, 0
	m.vram = vram{}
	m.layoutLogo(h.Logo)
	m.layoutStrip()
	m.Reset()
	return nil
}

// Header is the parsed header of the loaded cartridge, nil before loading.
func (m *Machine) Header() *cart.Header { return m.header }

// Reset restarts the boot scroll, keeping palette and pan.
func (m *Machine) Reset() {
	m.frames = 0
	m.bg = ppu.Background{MapBase: mapBase, TileData8000: true, BGP: Palettes[m.palette]}
	if !m.cfg.SkipBootScroll {
		m.bg.SCY = bootSCY
	}
	m.btn, m.prev = Buttons{}, Buttons{}
}

// layoutLogo expands each 4x2 logo nibble pair to 8x4 tile rows, doubling
// pixels in both directions; two logo bytes make one tile.
func (m *Machine) layoutLogo(logo [48]byte) {
	for i, b := range logo {
		tile := logoTile + i/2
		row := uint16(0x8000+tile*16) + uint16(i%2)*8
		for n, nib := range [2]byte{b >> 4, b & 0x0F} {
			px := double(nib)
			for r := uint16(0); r < 2; r++ {
				addr := row + (uint16(n)*2+r)*2
				m.vram.write(addr, px)
				m.vram.write(addr+1, px)
			}
		}
	}
	for i := 0; i < 24; i++ {
		r, c := logoRow+i/12, logoCol+i%12
		m.vram.write(uint16(mapBase+r*32+c), byte(logoTile+i))
	}
}

func double(nib byte) byte {
	var out byte
	for bit := 3; bit >= 0; bit-- {
		out <<= 2
		if nib>>bit&1 != 0 {
			out |= 0x03
		}
	}
	return out
}

// layoutStrip draws four bands, one per colour index, across two map rows.
func (m *Machine) layoutStrip() {
	for ci := 0; ci < 4; ci++ {
		base := uint16(0x8000 + (stripTile+ci)*16)
		for r := uint16(0); r < 8; r++ {
			if ci&1 != 0 {
				m.vram.write(base+r*2, 0xFF)
			}
			if ci&2 != 0 {
				m.vram.write(base+r*2+1, 0xFF)
			}
		}
	}
	for r := stripRow; r < stripRow+2; r++ {
		for c := 0; c < lcd.Width/8; c++ {
			m.vram.write(uint16(mapBase+r*32+c), byte(stripTile+c/5))
		}
	}
}

func (m *Machine) SetButtons(b Buttons) { m.btn = b }

func (m *Machine) StepFrame() {
	m.frames++
	if m.header == nil {
		return
	}
	pressed := func(now, before bool) bool { return now && !before }
	switch {
	case pressed(m.btn.Start, m.prev.Start):
		m.palette = (m.palette + 1) % len(Palettes)
	case pressed(m.btn.Select, m.prev.Select):
		m.palette = (m.palette + len(Palettes) - 1) % len(Palettes)
	}
	m.prev = m.btn

	if m.bg.SCY > m.panY && m.frames <= bootSCY {
		m.bg.SCY--
	} else {
		step := byte(m.cfg.PanStep)
		if m.btn.Left {
			m.panX -= step
		}
		if m.btn.Right {
			m.panX += step
		}
		if m.btn.Up {
			m.panY -= step
		}
		if m.btn.Down {
			m.panY += step
		}
		if m.btn.B {
			m.panX, m.panY = 0, 0
		}
		m.bg.SCX, m.bg.SCY = m.panX, m.panY
	}
	m.bg.BGP = Palettes[m.palette]
	m.bg.Frame(&m.vram, &m.frame)
}

func (m *Machine) Shades() *lcd.Grid { return &m.frame }

// Frames counts StepFrame calls since the last Reset.
func (m *Machine) Frames() uint64 { return m.frames }

// Boots is how many times this cartridge's saved RAM has been loaded.
func (m *Machine) Boots() uint32 { return m.boots }

func (m *Machine) SaveBattery() ([]byte, bool) {
	if len(m.ram) == 0 {
		return nil, false
	}
	if len(m.ram) >= ramUsed {
		copy(m.ram, ramMagic[:])
		m.ram[ramPalette] = byte(m.palette)
		m.ram[ramSCX] = m.panX
		m.ram[ramSCY] = m.panY
		binary.LittleEndian.PutUint32(m.ram[ramBoots:], m.boots)
	}
	out := make([]byte, len(m.ram))
	copy(out, m.ram)
	return out, true
}

// LoadBattery copies as much of data as fits; a short blob leaves the rest
// of RAM zeroed. RAM written by an earlier session restores its state.
func (m *Machine) LoadBattery(data []byte) bool {
	if len(m.ram) == 0 {
		return false
	}
	for i := range m.ram {
		m.ram[i] = 0
	}
	copy(m.ram, data)
	if len(m.ram) >= ramUsed && [4]byte(m.ram[:4]) == ramMagic {
		m.palette = int(m.ram[ramPalette]) % len(Palettes)
		m.panX, m.panY = m.ram[ramSCX], m.ram[ramSCY]
		m.boots = binary.LittleEndian.Uint32(m.ram[ramBoots:])
	}
	m.boots++
	m.Reset()
	return true
}
