package session

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/FabianRolfMatthiasNoll/monoboy/internal/cart"
	"github.com/FabianRolfMatthiasNoll/monoboy/internal/display"
	"github.com/FabianRolfMatthiasNoll/monoboy/internal/dither"
	"github.com/FabianRolfMatthiasNoll/monoboy/internal/emu"
	"github.com/FabianRolfMatthiasNoll/monoboy/internal/lcd"
	"github.com/FabianRolfMatthiasNoll/monoboy/internal/savebridge"
)

type memFS struct {
	files    map[string][]byte
	failSave error
}

func newMemFS() *memFS { return &memFS{files: map[string][]byte{}} }

func (m *memFS) Stat(name string) (savebridge.FileInfo, error) {
	b, ok := m.files[name]
	if !ok {
		return savebridge.FileInfo{}, fmt.Errorf("%s: %w", name, fs.ErrNotExist)
	}
	return savebridge.FileInfo{Name: name, Size: int64(len(b))}, nil
}

func (m *memFS) Open(name string, mode savebridge.Mode) (savebridge.File, error) {
	if mode == savebridge.Read {
		return &memFile{r: bytes.NewReader(m.files[name])}, nil
	}
	if m.failSave != nil {
		return nil, m.failSave
	}
	m.files[name] = []byte{}
	return &memFile{fs: m, name: name}, nil
}

type memFile struct {
	fs   *memFS
	name string
	r    *bytes.Reader
}

func (f *memFile) Read(p []byte) (int, error) { return f.r.Read(p) }
func (f *memFile) Write(p []byte) (int, error) {
	f.fs.files[f.name] = append(f.fs.files[f.name], p...)
	return len(p), nil
}
func (f *memFile) Close() error { return nil }

// fakeCore records buttons and shows a uniform shade.
type fakeCore struct {
	shade   lcd.Shade
	frame   lcd.Grid
	pressed []emu.Buttons
	ram     []byte
	loaded  []byte
}

func (c *fakeCore) SetButtons(b emu.Buttons) { c.pressed = append(c.pressed, b) }
func (c *fakeCore) StepFrame()               { c.frame.Fill(c.shade) }
func (c *fakeCore) Shades() *lcd.Grid        { return &c.frame }
func (c *fakeCore) SaveBattery() ([]byte, bool) {
	return append([]byte(nil), c.ram...), len(c.ram) > 0
}
func (c *fakeCore) LoadBattery(data []byte) bool {
	c.loaded = append([]byte(nil), data...)
	return len(c.ram) > 0
}

func quiet() *log.Logger { return log.New(io.Discard) }

func openWith(t *testing.T, m *memFS, core *fakeCore) *Session {
	t.Helper()
	s, err := Open(m, quiet(), Options{NewCore: func([]byte) (emu.Core, error) { return core, nil }})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return s
}

func TestNoROMMode(t *testing.T) {
	m := newMemFS()
	s, err := Open(m, quiet(), Options{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if s.HasROM() {
		t.Fatal("HasROM = true without rom.gb")
	}
	if _, ok := m.files[NoROMMarker]; !ok {
		t.Fatal("marker file not written")
	}
	p := display.NewPanel()
	s.Update(Input{Crank: 5}, p)
	p.Present(func(fb *display.Buffer, rows display.RowRange) {
		if rows != display.FullHeight || !fb.Lit(0, 0) || !fb.Lit(399, 239) {
			t.Fatal("no-content mode should blank the panel white")
		}
	})
	if err := s.Save(); err != nil {
		t.Fatalf("Save in no-content mode: %v", err)
	}
}

func TestOpenLoadsSaveForIdentity(t *testing.T) {
	m := newMemFS()
	m.files["rom.gb"] = cart.Synthesize("GAME1", 0x03, 0x02)
	m.files["GAME1.sav"] = []byte{1, 2, 3}
	core := &fakeCore{ram: make([]byte, 8192)}
	s := openWith(t, m, core)
	if s.Identity() != "GAME1" {
		t.Fatalf("identity got %q", s.Identity())
	}
	if !bytes.Equal(core.loaded, []byte{1, 2, 3}) {
		t.Fatalf("core got %v, want stored blob as-is", core.loaded)
	}
}

func TestOpenWithoutSaveGivesZeroes(t *testing.T) {
	m := newMemFS()
	m.files["rom.gb"] = cart.Synthesize("GAME1", 0x03, 0x02)
	core := &fakeCore{ram: make([]byte, 8192)}
	openWith(t, m, core)
	if len(core.loaded) != 8192 || !bytes.Equal(core.loaded, make([]byte, 8192)) {
		t.Fatalf("core got %d bytes, want 8192 zeroes", len(core.loaded))
	}
}

func TestBadROMFails(t *testing.T) {
	m := newMemFS()
	m.files["rom.gb"] = []byte{1, 2, 3}
	if _, err := Open(m, quiet(), Options{}); !errors.Is(err, cart.ErrShortROM) {
		t.Fatalf("got %v, want ErrShortROM", err)
	}
}

func TestCrankDrivesStartSelect(t *testing.T) {
	m := newMemFS()
	m.files["rom.gb"] = cart.Synthesize("GAME1", 0x00, 0x00)
	core := &fakeCore{shade: lcd.White}
	s := openWith(t, m, core)
	p := display.NewPanel()

	held := emu.Buttons{A: true, Left: true}
	for _, c := range []float64{10, 12, 0, -3, 4} {
		s.Update(Input{Buttons: held, Crank: c}, p)
	}
	want := []struct{ start, sel bool }{{true, false}, {false, false}, {false, false}, {false, true}, {true, false}}
	for i, w := range want {
		got := core.pressed[i]
		if got.Start != w.start || got.Select != w.sel {
			t.Fatalf("frame %d start=%v select=%v, want %v %v", i, got.Start, got.Select, w.start, w.sel)
		}
		if !got.A || !got.Left || got.B {
			t.Fatalf("frame %d held buttons lost: %+v", i, got)
		}
	}
	if s.Impulse() != 4 {
		t.Fatalf("last impulse got %v", s.Impulse())
	}
}

func TestUpdateComposesFullFrame(t *testing.T) {
	m := newMemFS()
	m.files["rom.gb"] = cart.Synthesize("GAME1", 0x00, 0x00)
	s := openWith(t, m, &fakeCore{shade: lcd.White})
	p := display.NewPanel()
	for i := 0; i < 3; i++ {
		s.Update(Input{}, p)
		ok := p.Present(func(fb *display.Buffer, rows display.RowRange) {
			if rows != display.FullHeight {
				t.Fatalf("rows got %+v", rows)
			}
			for y := 0; y < display.Height; y++ {
				for x := dither.StartX; x < dither.StartX+dither.VisibleWidth; x++ {
					if !fb.Lit(x, y) {
						t.Fatalf("(%d,%d) not lit for all-white frame", x, y)
					}
				}
			}
		})
		if !ok {
			t.Fatal("frame not marked for presentation")
		}
	}
}

func TestSaveRoundTrip(t *testing.T) {
	m := newMemFS()
	m.files["rom.gb"] = cart.Synthesize("game1", 0x03, 0x02)
	core := &fakeCore{ram: []byte{9, 8, 7}}
	s := openWith(t, m, core)
	if err := s.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !bytes.Equal(m.files["game1.sav"], []byte{9, 8, 7}) {
		t.Fatalf("stored %v", m.files["game1.sav"])
	}

	core2 := &fakeCore{ram: make([]byte, 3)}
	openWith(t, m, core2)
	if !bytes.Equal(core2.loaded, []byte{9, 8, 7}) {
		t.Fatalf("reloaded %v", core2.loaded)
	}
}

func TestSaveFailureIsReturned(t *testing.T) {
	m := newMemFS()
	m.files["rom.gb"] = cart.Synthesize("GAME1", 0x03, 0x02)
	s := openWith(t, m, &fakeCore{ram: []byte{1}})
	boom := errors.New("read-only card")
	m.failSave = boom
	if err := s.Save(); !errors.Is(err, boom) {
		t.Fatalf("got %v, want wrapped %v", err, boom)
	}
}

func TestWithBootMachine(t *testing.T) {
	m := newMemFS()
	m.files["rom.gb"] = cart.Synthesize("TETRIS", 0x03, 0x02)
	s, err := Open(m, quiet(), Options{NewCore: MachineFactory(emu.Config{SkipBootScroll: true})})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	p := display.NewPanel()
	s.Update(Input{Crank: 15}, p)
	if err := s.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if got := len(m.files["TETRIS.sav"]); got != 8192 {
		t.Fatalf("save size got %d want 8192", got)
	}
}
