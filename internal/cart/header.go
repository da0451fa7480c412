// Package cart reads the cartridge header: the title that names the save
// file, the battery RAM size, and the boot logo bitmap.
package cart

import (
	"encoding/binary"
	"errors"
	"strings"
	"unicode"
)

const (
	logoStart  = 0x0104
	titleStart = 0x0134
	titleEnd   = 0x0144
	headerEnd  = 0x014F
)

// Untitled names games whose header title is blank.
const Untitled = "UNTITLED"

// ErrShortROM is returned for images too small to hold a header.
var ErrShortROM = errors.New("cart: ROM too small to contain header")

var nintendoLogo = [48]byte{
	0xCE, 0xED, 0x66, 0x66, 0xCC, 0x0D, 0x00, 0x0B, 0x03, 0x73, 0x00, 0x83, 0x00, 0x0C, 0x00, 0x0D,
	0x00, 0x08, 0x11, 0x1F, 0x88, 0x89, 0x00, 0x0E, 0xDC, 0xCC, 0x6E, 0xE6, 0xDD, 0xDD, 0xD9, 0x99,
	0xBB, 0xBB, 0x67, 0x63, 0x6E, 0x0E, 0xEC, 0xCC, 0xDD, 0xDC, 0x99, 0x9F, 0xBB, 0xB9, 0x33, 0x3E,
}

type Header struct {
	Title          string   // trimmed ASCII, 0x0134-0x0143
	Logo           [48]byte // 0x0104-0x0133
	LogoOK         bool     // Logo matches the licensed logo
	CGBFlag        byte     // 0x0143
	CartType       byte     // 0x0147
	ROMSizeCode    byte     // 0x0148
	RAMSizeCode    byte     // 0x0149
	HeaderChecksum byte     // 0x014D
	GlobalChecksum uint16   // 0x014E-0x014F

	ROMSizeBytes int
	RAMSizeBytes int
	Battery      bool
	CartTypeStr  string
}

func ParseHeader(rom []byte) (*Header, error) {
	if len(rom) < headerEnd+1 {
		return nil, ErrShortROM
	}

	h := &Header{
		CGBFlag:        rom[0x0143],
		CartType:       rom[0x0147],
		ROMSizeCode:    rom[0x0148],
		RAMSizeCode:    rom[0x0149],
		HeaderChecksum: rom[0x014D],
		GlobalChecksum: binary.BigEndian.Uint16(rom[0x014E:0x0150]),
	}
	copy(h.Logo[:], rom[logoStart:logoStart+len(h.Logo)])
	h.LogoOK = h.Logo == nintendoLogo

	// CGB carts reuse the last title byte as the CGB flag.
	raw := rom[titleStart:titleEnd]
	if h.CGBFlag&0x80 != 0 {
		raw = raw[:len(raw)-1]
	}
	h.Title = strings.TrimRight(string(raw), "\x00 ")

	h.ROMSizeBytes = decodeROMSize(h.ROMSizeCode)
	h.RAMSizeBytes = decodeRAMSize(h.RAMSizeCode)
	h.Battery = hasBattery(h.CartType)
	h.CartTypeStr = cartTypeString(h.CartType)
	return h, nil
}

// Identity is the logical game name saves are stored under: the title with
// anything that is not a printable, path-safe rune replaced by '_'.
func (h *Header) Identity() string {
	id := strings.Map(func(r rune) rune {
		switch {
		case r > unicode.MaxASCII, !unicode.IsPrint(r), strings.ContainsRune(`/\:*?"<>|`, r):
			return '_'
		}
		return r
	}, strings.TrimSpace(h.Title))
	if id == "" || strings.Trim(id, ".") == "" {
		return Untitled
	}
	return id
}

func HeaderChecksumOK(rom []byte) bool {
	if len(rom) < 0x014E {
		return false
	}
	var sum byte
	for addr := titleStart; addr <= 0x014C; addr++ {
		sum = sum - rom[addr] - 1
	}
	return sum == rom[0x014D]
}

func decodeROMSize(code byte) int {
	switch {
	case code <= 0x08:
		return (32 * 1024) << code
	case code == 0x52:
		return 1152 * 1024
	case code == 0x53:
		return 1280 * 1024
	case code == 0x54:
		return 1536 * 1024
	}
	return 0
}

func decodeRAMSize(code byte) int {
	switch code {
	case 0x02:
		return 8 * 1024
	case 0x03:
		return 32 * 1024
	case 0x04:
		return 128 * 1024
	case 0x05:
		return 64 * 1024
	}
	return 0
}

func hasBattery(code byte) bool {
	switch code {
	case 0x03, 0x06, 0x09, 0x0D, 0x0F, 0x10, 0x13, 0x1B, 0x1E, 0x22, 0xFF:
		return true
	}
	return false
}

func cartTypeString(code byte) string {
	switch code {
	case 0x00:
		return "ROM ONLY"
	case 0x01, 0x02, 0x03:
		return "MBC1 (variants)"
	case 0x05, 0x06:
		return "MBC2 (variants)"
	case 0x0F, 0x10, 0x11, 0x12, 0x13:
		return "MBC3 (variants)"
	case 0x19, 0x1A, 0x1B, 0x1C, 0x1D, 0x1E:
		return "MBC5 (variants)"
	default:
		return "Other/unknown"
	}
}
