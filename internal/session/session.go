// Package session ties one frame together: crank impulse, core step, and
// composition into the 1-bit panel. It also owns start-up (ROM and save
// loading) and explicit save requests.
package session

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/FabianRolfMatthiasNoll/monoboy/internal/cart"
	"github.com/FabianRolfMatthiasNoll/monoboy/internal/crank"
	"github.com/FabianRolfMatthiasNoll/monoboy/internal/display"
	"github.com/FabianRolfMatthiasNoll/monoboy/internal/dither"
	"github.com/FabianRolfMatthiasNoll/monoboy/internal/emu"
	"github.com/FabianRolfMatthiasNoll/monoboy/internal/savebridge"
)

// FrameRate is the panel refresh, half the DMG's ~60 Hz.
const FrameRate = 30

// NoROMMarker is the empty file dropped into the data directory to show
// users where the ROM goes.
const NoROMMarker = "Game ROM goes here"

// ErrNoROM reports that the data directory holds no ROM.
var ErrNoROM = errors.New("session: no ROM found")

type Logger interface {
	Debug(msg interface{}, keyvals ...interface{})
	Info(msg interface{}, keyvals ...interface{})
	Warn(msg interface{}, keyvals ...interface{})
	Error(msg interface{}, keyvals ...interface{})
}

// CoreFactory builds a core for a ROM image whose header already parsed.
type CoreFactory func(rom []byte) (emu.Core, error)

// MachineFactory builds the boot-screen machine.
func MachineFactory(cfg emu.Config) CoreFactory {
	return func(rom []byte) (emu.Core, error) {
		m := emu.New(cfg)
		if err := m.LoadCartridge(rom); err != nil {
			return nil, err
		}
		return m, nil
	}
}

type Options struct {
	ROMName string // defaults to "rom.gb"
	NewCore CoreFactory
}

// Input is one frame of platform input.
type Input struct {
	// Held digital buttons. Start and Select may come from a keyboard and
	// are OR-ed with the crank presses.
	Buttons emu.Buttons
	// Crank is the rotation since the previous frame in degrees, signed.
	Crank float64
}

type Session struct {
	fs    savebridge.FS
	saves *savebridge.Bridge
	log   Logger

	core     emu.Core
	header   *cart.Header
	identity string

	crank   crank.Detector
	impulse float64
}

// Open loads the ROM and its save. A missing ROM is not an error: the
// session starts in no-content mode, with HasROM false.
func Open(fsys savebridge.FS, logger Logger, opts Options) (*Session, error) {
	if opts.ROMName == "" {
		opts.ROMName = "rom.gb"
	}
	if opts.NewCore == nil {
		opts.NewCore = MachineFactory(emu.Config{})
	}
	s := &Session{fs: fsys, saves: savebridge.New(fsys, logger), log: logger}

	rom, err := s.readROM(opts.ROMName)
	if errors.Is(err, ErrNoROM) {
		logger.Warn("couldn't find ROM in the data folder, please provide one", "name", opts.ROMName)
		s.leaveMarker()
		return s, nil
	}
	if err != nil {
		return nil, err
	}

	h, err := cart.ParseHeader(rom)
	if err != nil {
		return nil, fmt.Errorf("session: %s: %w", opts.ROMName, err)
	}
	core, err := opts.NewCore(rom)
	if err != nil {
		return nil, fmt.Errorf("session: start core: %w", err)
	}
	s.core, s.header, s.identity = core, h, h.Identity()
	logger.Info("ROM loaded", "title", h.Title, "type", h.CartTypeStr, "ram", h.RAMSizeBytes, "identity", s.identity)

	if h.RAMSizeBytes > 0 {
		if !core.LoadBattery(s.saves.Load(s.identity, h.RAMSizeBytes)) {
			logger.Debug("core has no battery RAM", "identity", s.identity)
		}
	}
	return s, nil
}

func (s *Session) readROM(name string) ([]byte, error) {
	st, err := s.fs.Stat(name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoROM
	}
	if err != nil {
		return nil, fmt.Errorf("session: stat %s: %w", name, err)
	}
	f, err := s.fs.Open(name, savebridge.Read)
	if err != nil {
		return nil, fmt.Errorf("session: open %s: %w", name, err)
	}
	defer f.Close()
	rom := make([]byte, st.Size)
	if _, err := io.ReadFull(f, rom); err != nil {
		return nil, fmt.Errorf("session: read %s: %w", name, err)
	}
	return rom, nil
}

func (s *Session) leaveMarker() {
	f, err := s.fs.Open(NoROMMarker, savebridge.Write)
	if err != nil {
		s.log.Warn("could not write ROM marker", "err", err)
		return
	}
	if err := f.Close(); err != nil {
		s.log.Warn("could not write ROM marker", "err", err)
	}
}

// HasROM is false in no-content mode.
func (s *Session) HasROM() bool { return s.core != nil }

// Header of the running cartridge, nil without a ROM.
func (s *Session) Header() *cart.Header { return s.header }

// Identity names the save file, empty without a ROM.
func (s *Session) Identity() string { return s.identity }

// Core is the running core, nil without a ROM.
func (s *Session) Core() emu.Core { return s.core }

// Impulse is the crank impulse computed by the last Update.
func (s *Session) Impulse() float64 { return s.impulse }

// Update runs one frame. Without a ROM it only blanks the panel; the
// platform draws the instructions over it.
func (s *Session) Update(in Input, panel *display.Panel) {
	if s.core == nil {
		panel.Clear(true)
		return
	}

	s.impulse = s.crank.Update(in.Crank)
	start, sel := crank.Buttons(s.impulse)

	b := in.Buttons
	b.Start = b.Start || start
	b.Select = b.Select || sel
	s.core.SetButtons(b)
	s.core.StepFrame()

	panel.Frame(dither.Composer(s.core.Shades()))
}

// Save writes battery RAM through the save bridge. Callers end the
// session on error.
func (s *Session) Save() error {
	if s.core == nil {
		return nil
	}
	data, ok := s.core.SaveBattery()
	if !ok {
		s.log.Debug("nothing to save", "identity", s.identity)
		return nil
	}
	return s.saves.Save(s.identity, data)
}

// NoROMText is the instructions screen shown in no-content mode.
func NoROMText(romName string) string {
	return fmt.Sprintf("No game ROM found.\n\nPlease copy a %q file into\nthe data folder.", romName)
}
