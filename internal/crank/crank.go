// Package crank turns the per-frame crank change into one-shot START/SELECT
// presses.
package crank

// Detector remembers the previous frame's raw crank change. A press fires
// on motion from rest or on a change of direction; continued motion in the
// same direction is suppressed.
//
// Comparisons are exact: there is no dead zone around zero.
type Detector struct {
	last float64
}

// Update takes this frame's raw change (degrees, sign is direction) and
// returns the impulse. Call it exactly once per frame.
func (d *Detector) Update(change float64) float64 {
	impulse := change
	switch {
	case d.last > 0 && change > 0:
		impulse = 0
	case d.last < 0 && change < 0:
		impulse = 0
	case change == 0:
		impulse = 0
	}
	d.last = change
	return impulse
}

// Last is the raw change seen by the previous Update.
func (d *Detector) Last() float64 { return d.last }

// Buttons maps an impulse to the synthesised START and SELECT presses.
func Buttons(impulse float64) (start, sel bool) {
	return impulse > 0, impulse < 0
}
