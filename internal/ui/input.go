package ui

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/FabianRolfMatthiasNoll/monoboy/internal/emu"
	"github.com/FabianRolfMatthiasNoll/monoboy/internal/session"
)

const stickDeadzone = 0.25

// stickDegrees is the crank rotation per frame at full right-stick deflection.
const stickDegrees = 20

// keyLatch swallows a key that is still down from before it was armed,
// until it is released once.
type keyLatch struct{ armed bool }

func (l *keyLatch) arm() { l.armed = true }

func (l *keyLatch) filter(down bool) bool {
	if l.armed {
		if down {
			return false
		}
		l.armed = false
	}
	return down
}

func (a *App) readInput() session.Input {
	var in session.Input
	b := &in.Buttons

	b.Right = ebiten.IsKeyPressed(ebiten.KeyArrowRight)
	b.Left = ebiten.IsKeyPressed(ebiten.KeyArrowLeft)
	b.Up = ebiten.IsKeyPressed(ebiten.KeyArrowUp)
	b.Down = ebiten.IsKeyPressed(ebiten.KeyArrowDown)
	b.A = ebiten.IsKeyPressed(a.keys.a)
	b.B = ebiten.IsKeyPressed(a.keys.b)
	b.Start = a.startLatch.filter(ebiten.IsKeyPressed(a.keys.start))
	b.Select = ebiten.IsKeyPressed(a.keys.sel)

	_, wheel := ebiten.Wheel()
	in.Crank = wheel * a.cfg.CrankDegreesPerNotch
	if ebiten.IsKeyPressed(a.keys.crankFwd) {
		in.Crank += a.cfg.CrankDegreesPerNotch
	}
	if ebiten.IsKeyPressed(a.keys.crankBack) {
		in.Crank -= a.cfg.CrankDegreesPerNotch
	}

	a.gamepads = ebiten.AppendGamepadIDs(a.gamepads[:0])
	for _, id := range a.gamepads {
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}
		mergeGamepad(b, id)
		v := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickHorizontal)
		if v > stickDeadzone || v < -stickDeadzone {
			in.Crank += v * stickDegrees
		}
	}
	return in
}

func mergeGamepad(b *emu.Buttons, id ebiten.GamepadID) {
	held := func(btn ebiten.StandardGamepadButton) bool {
		return ebiten.IsStandardGamepadButtonPressed(id, btn)
	}
	b.Right = b.Right || held(ebiten.StandardGamepadButtonLeftRight)
	b.Left = b.Left || held(ebiten.StandardGamepadButtonLeftLeft)
	b.Up = b.Up || held(ebiten.StandardGamepadButtonLeftTop)
	b.Down = b.Down || held(ebiten.StandardGamepadButtonLeftBottom)
	b.A = b.A || held(ebiten.StandardGamepadButtonRightRight)
	b.B = b.B || held(ebiten.StandardGamepadButtonRightBottom)
}
