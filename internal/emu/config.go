package emu

// Config contains settings that affect the boot-screen machine.
type Config struct {
	SkipBootScroll bool // start with the logo already in place
	PanStep        int  // pixels panned per frame while a d-pad direction is held
}

// Defaults fills missing fields with reasonable defaults.
func (c *Config) Defaults() {
	if c.PanStep <= 0 {
		c.PanStep = 1
	}
}
