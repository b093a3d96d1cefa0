// Package input turns polled pointer state into globe pointer events.
package input

import "github.com/litescript/ls-globe/internal/globe"

// DefaultWheelScale converts one wheel notch to a DOM-style deltaY.
const DefaultWheelScale = 100.0

// Sample is one poll of the pointer, in surface (CSS) pixels.
type Sample struct {
	X, Y    float64
	Inside  bool    // pointer is over the globe surface
	Pressed bool    // primary button is down
	WheelY  float64 // notches this poll, positive away from the user
}

// Target receives pointer events. *globe.Globe implements it.
type Target interface {
	PointerDown(ev globe.PointerEvent)
	PointerMove(ev globe.PointerEvent)
	PointerUp(ev globe.PointerEvent)
	PointerLeave()
	Wheel(ev *globe.WheelEvent)
	Click(ev globe.PointerEvent)
}

// Tracker diffs successive samples into edge events.
type Tracker struct {
	WheelScale float64

	primed  bool
	last    Sample
	pressed bool
	// held is a button that stayed down across the surface edge or was
	// pressed outside. It never starts a drag; grabbed records whether
	// the press began on the surface.
	held    bool
	grabbed bool
}

// NewTracker creates a tracker with the default wheel scale.
func NewTracker() *Tracker {
	return &Tracker{WheelScale: DefaultWheelScale}
}

// Apply delivers the events implied by s to t. Leaving the surface fires
// PointerLeave; moving fires PointerMove; a press edge fires PointerDown;
// a release edge fires PointerUp then Click; wheel motion fires Wheel.
// Re-entering with the button still down does not fire PointerDown; its
// release fires PointerUp, and Click only if the press began inside.
func (tr *Tracker) Apply(s Sample, t Target) {
	ev := globe.PointerEvent{X: s.X, Y: s.Y}
	prev := tr.last
	tr.last = s

	if !s.Inside {
		if tr.primed && prev.Inside {
			t.PointerLeave()
		}
		if s.Pressed {
			tr.held = true
		} else {
			tr.held, tr.grabbed = false, false
		}
		tr.pressed = false
		tr.primed = true
		return
	}

	if !tr.primed || !prev.Inside || s.X != prev.X || s.Y != prev.Y {
		t.PointerMove(ev)
	}
	tr.primed = true

	switch {
	case s.Pressed && !tr.pressed && !tr.held:
		tr.pressed, tr.grabbed = true, true
		t.PointerDown(ev)
	case !s.Pressed && tr.pressed:
		tr.pressed, tr.grabbed = false, false
		t.PointerUp(ev)
		t.Click(ev)
	case !s.Pressed && tr.held:
		grabbed := tr.grabbed
		tr.held, tr.grabbed = false, false
		t.PointerUp(ev)
		if grabbed {
			t.Click(ev)
		}
	}

	if s.WheelY != 0 {
		scale := tr.WheelScale
		if scale == 0 {
			scale = DefaultWheelScale
		}
		t.Wheel(&globe.WheelEvent{X: s.X, Y: s.Y, DeltaY: -s.WheelY * scale})
	}
}

// Pressed reports whether the tracker considers the button down, whether
// or not it is dragging.
func (tr *Tracker) Pressed() bool {
	return tr.pressed || tr.held
}
