// Package emu defines what the frontend needs from an emulation core and
// provides Machine, a boot-screen core that draws the cartridge logo.
package emu

import "github.com/FabianRolfMatthiasNoll/monoboy/internal/lcd"

type Buttons struct {
	A, B, Start, Select   bool
	Up, Down, Left, Right bool
}

// Core advances the emulated machine one frame at a time.
type Core interface {
	SetButtons(b Buttons)
	StepFrame()
	// Shades is the frame finished by the last StepFrame. It stays valid
	// until the next StepFrame.
	Shades() *lcd.Grid
	// SaveBattery returns a copy of battery RAM; ok is false without one.
	SaveBattery() (data []byte, ok bool)
	// LoadBattery installs previously saved RAM; false if the cart has none.
	LoadBattery(data []byte) bool
}
