package ui

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/FabianRolfMatthiasNoll/monoboy/internal/display"
	"github.com/FabianRolfMatthiasNoll/monoboy/internal/session"
)

// Panel colours, close to a reflective memory LCD.
var (
	litColor   = color.RGBA{0xB1, 0xAF, 0xA8, 0xFF}
	unlitColor = color.RGBA{0x31, 0x2F, 0x28, 0xFF}
)

type Logger interface {
	Info(msg interface{}, keyvals ...interface{})
	Warn(msg interface{}, keyvals ...interface{})
}

type App struct {
	cfg   Config
	sess  *session.Session
	panel *display.Panel
	log   Logger
	keys  keymap

	tex      *ebiten.Image
	shade    *ebiten.Image
	pix      []byte
	gamepads []ebiten.GamepadID

	// overlay/menu
	showMenu   bool
	menuIdx    int
	startLatch keyLatch
	toast      string
	toastTTL   int
}

var menuItems = []string{"Resume", "Save game", "Screenshot", "Save and quit"}

func NewApp(cfg Config, sess *session.Session, logger Logger) (*App, error) {
	cfg.Defaults()
	keys, err := cfg.Keys.resolve()
	if err != nil {
		return nil, err
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(display.Width*cfg.Scale, display.Height*cfg.Scale)
	ebiten.SetTPS(session.FrameRate)
	ebiten.SetWindowClosingHandled(true)
	return &App{
		cfg:   cfg,
		sess:  sess,
		panel: display.NewPanel(),
		log:   logger,
		keys:  keys,
		pix:   make([]byte, display.Width*display.Height*4),
	}, nil
}

func (a *App) Run() error { return ebiten.RunGame(a) }

// Update returns the save error, if any, which ends the run loop.
func (a *App) Update() error {
	if ebiten.IsWindowBeingClosed() {
		return a.quit()
	}
	if a.toastTTL > 0 {
		a.toastTTL--
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		a.showMenu = !a.showMenu
		a.menuIdx = 0
		if !a.showMenu {
			a.startLatch.arm()
		}
	}
	if a.showMenu {
		err := a.updateMenu()
		if !a.showMenu {
			// Enter confirms the menu and is also a START key
			a.startLatch.arm()
		}
		return err
	}

	// F5 is a save shortcut outside the menu
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		if err := a.save(); err != nil {
			return err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		a.screenshot()
	}

	a.sess.Update(a.readInput(), a.panel)
	return nil
}

func (a *App) updateMenu() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) && a.menuIdx > 0 {
		a.menuIdx--
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) && a.menuIdx < len(menuItems)-1 {
		a.menuIdx++
	}
	if !inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		return nil
	}
	switch a.menuIdx {
	case 0:
		a.showMenu = false
	case 1:
		if err := a.save(); err != nil {
			return err
		}
		a.showMenu = false
	case 2:
		a.screenshot()
	case 3:
		return a.quit()
	}
	return nil
}

func (a *App) save() error {
	if err := a.sess.Save(); err != nil {
		return err
	}
	a.notify("Saved " + a.sess.Identity())
	return nil
}

func (a *App) quit() error {
	if err := a.sess.Save(); err != nil {
		return err
	}
	return ebiten.Termination
}

func (a *App) notify(msg string) {
	a.toast = msg
	a.toastTTL = 2 * session.FrameRate
}

func (a *App) Draw(screen *ebiten.Image) {
	if a.tex == nil {
		a.tex = ebiten.NewImage(display.Width, display.Height)
	}
	a.panel.Present(func(fb *display.Buffer, _ display.RowRange) {
		fb.RGBA(a.pix, litColor, unlitColor)
		a.tex.WritePixels(a.pix)
	})
	screen.DrawImage(a.tex, nil)

	if !a.sess.HasROM() {
		ebitenutil.DebugPrintAt(screen, session.NoROMText(a.cfg.ROMName), 20, 20)
	}
	if a.showMenu {
		a.drawMenu(screen)
	}
	if a.toastTTL > 0 {
		ebitenutil.DebugPrintAt(screen, a.toast, 10, display.Height-20)
	}
}

func (a *App) drawMenu(screen *ebiten.Image) {
	if a.shade == nil {
		a.shade = ebiten.NewImage(display.Width, display.Height)
		a.shade.Fill(color.RGBA{0, 0, 0, 160})
	}
	screen.DrawImage(a.shade, nil)
	ebitenutil.DebugPrintAt(screen, "Menu:", 10, 10)
	for i, s := range menuItems {
		prefix := "  "
		if i == a.menuIdx {
			prefix = "> "
		}
		ebitenutil.DebugPrintAt(screen, prefix+s, 10, 24+i*14)
	}
	ebitenutil.DebugPrintAt(screen, "Wheel or , . : crank   F5: Save   F12: Screenshot", 10, 24+len(menuItems)*14+8)
}

func (a *App) Layout(outW, outH int) (int, int) { return display.Width, display.Height }

func (a *App) screenshot() {
	img := &image.RGBA{
		Pix:    make([]byte, len(a.pix)),
		Stride: 4 * display.Width,
		Rect:   image.Rect(0, 0, display.Width, display.Height),
	}
	copy(img.Pix, a.pix)
	name := fmt.Sprintf("screenshot_%s.png", time.Now().Format("20060102_150405"))
	f, err := os.Create(name)
	if err != nil {
		a.log.Warn("screenshot failed", "err", err)
		return
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		a.log.Warn("screenshot failed", "err", err)
		return
	}
	a.log.Info("wrote screenshot", "path", name)
	a.notify("Wrote " + name)
}
