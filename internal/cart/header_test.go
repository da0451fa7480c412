package cart

import (
	"testing"
)

func TestParseHeader_Basic(t *testing.T) {
	rom := Synthesize("TEST", 0x03, 0x02) // MBC1+RAM+BATTERY, 8KiB RAM

	h, err := ParseHeader(rom)
	if err != nil {
		t.Fatalf("ParseHeader error: %v", err)
	}
	if h.Title != "TEST" {
		t.Fatalf("Title got %q want %q", h.Title, "TEST")
	}
	if h.CartType != 0x03 || h.CartTypeStr != "MBC1 (variants)" || !h.Battery {
		t.Fatalf("CartType got %#02x / %s battery=%v", h.CartType, h.CartTypeStr, h.Battery)
	}
	if h.ROMSizeBytes != 32*1024 {
		t.Fatalf("ROM size decode got %d bytes", h.ROMSizeBytes)
	}
	if h.RAMSizeBytes != 8*1024 {
		t.Fatalf("RAM size decode got %d", h.RAMSizeBytes)
	}
	if !h.LogoOK {
		t.Fatalf("LogoOK = false for synthesized ROM")
	}
	if !HeaderChecksumOK(rom) {
		t.Fatalf("HeaderChecksumOK = false, want true")
	}

	var gsum uint16
	for i := 0; i < len(rom); i++ {
		if i == 0x014E || i == 0x014F {
			continue
		}
		gsum += uint16(rom[i])
	}
	if h.GlobalChecksum != gsum {
		t.Fatalf("Global checksum got %#04x want %#04x", h.GlobalChecksum, gsum)
	}
}

func TestHeaderChecksum_Bad(t *testing.T) {
	rom := Synthesize("TEST", 0x00, 0x00)
	rom[0x0134] ^= 0xFF // corrupt a header byte
	if HeaderChecksumOK(rom) {
		t.Fatalf("HeaderChecksumOK = true, want false after corruption")
	}
}

func TestParseHeader_ShortROM(t *testing.T) {
	short := make([]byte, 0x140)
	if _, err := ParseHeader(short); err != ErrShortROM {
		t.Fatalf("expected ErrShortROM, got %v", err)
	}
}

func TestParseHeader_CGBTitle(t *testing.T) {
	rom := Synthesize("POKEMON CRYSTAL", 0x10, 0x03)
	rom[0x0143] = 0xC0
	h, err := ParseHeader(rom)
	if err != nil {
		t.Fatal(err)
	}
	if h.Title != "POKEMON CRYSTAL" {
		t.Fatalf("Title got %q", h.Title)
	}
}

func TestIdentity(t *testing.T) {
	cases := map[string]string{
		"TETRIS":      "TETRIS",
		"":            Untitled,
		"   ":         Untitled,
		"..":          Untitled,
		"A/B":         "A_B",
		"ZELDA\x01":   "ZELDA_",
		"SUPER MARIO": "SUPER MARIO",
	}
	for title, want := range cases {
		h := &Header{Title: title}
		if got := h.Identity(); got != want {
			t.Fatalf("Identity(%q) got %q want %q", title, got, want)
		}
	}
}

func TestLogoMismatch(t *testing.T) {
	rom := Synthesize("HOMEBREW", 0x00, 0x00)
	rom[0x0104] = 0
	h, _ := ParseHeader(rom)
	if h.LogoOK {
		t.Fatal("LogoOK = true for altered logo")
	}
}
