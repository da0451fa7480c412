package cart

import "encoding/binary"

// Synthesize builds a 32 KiB cartridge image with the licensed logo, the
// given title and type, and valid checksums. The program area is empty.
func Synthesize(title string, cartType, ramSizeCode byte) []byte {
	rom := make([]byte, 32*1024)
	copy(rom[logoStart:], nintendoLogo[:])

	t := []byte(title)
	if len(t) > titleEnd-titleStart {
		t = t[:titleEnd-titleStart]
	}
	copy(rom[titleStart:titleEnd], t)

	rom[0x0144], rom[0x0145] = '0', '1'
	rom[0x0147] = cartType
	rom[0x0148] = 0x00
	rom[0x0149] = ramSizeCode
	rom[0x014B] = 0x33
	rom[0x014C] = 0x01

	var hsum byte
	for addr := titleStart; addr <= 0x014C; addr++ {
		hsum = hsum - rom[addr] - 1
	}
	rom[0x014D] = hsum

	var gsum uint16
	for i, b := range rom {
		if i == 0x014E || i == 0x014F {
			continue
		}
		gsum += uint16(b)
	}
	binary.BigEndian.PutUint16(rom[0x014E:0x0150], gsum)
	return rom
}
