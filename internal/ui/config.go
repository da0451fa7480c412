package ui

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// Config contains window/input related settings.
type Config struct {
	Title                string  // window title
	Scale                int     // integer upscaling factor
	ROMName              string  // shown on the no-ROM screen
	CrankDegreesPerNotch float64 // mouse wheel notch -> crank degrees
	Keys                 KeyNames
}

// KeyNames are ebiten key names, e.g. "Z", "Enter", "ShiftRight".
type KeyNames struct {
	A, B, Start, Select     string
	CrankForward, CrankBack string
}

// Defaults fills the window fields. Keys, ROM name and crank rate come
// from the application config.
func (c *Config) Defaults() {
	if c.Title == "" {
		c.Title = "monoboy"
	}
	if c.Scale <= 0 {
		c.Scale = 2
	}
}

type keymap struct {
	a, b, start, sel    ebiten.Key
	crankFwd, crankBack ebiten.Key
}

func (k KeyNames) resolve() (keymap, error) {
	var m keymap
	for _, f := range []struct {
		name string
		key  *ebiten.Key
	}{
		{k.A, &m.a}, {k.B, &m.b}, {k.Start, &m.start}, {k.Select, &m.sel},
		{k.CrankForward, &m.crankFwd}, {k.CrankBack, &m.crankBack},
	} {
		if err := f.key.UnmarshalText([]byte(f.name)); err != nil {
			return keymap{}, fmt.Errorf("ui: key %q: %w", f.name, err)
		}
	}
	return m, nil
}
