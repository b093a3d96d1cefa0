package globe

import "math"

// Interaction tuning.
const (
	DragLngPerPixel  = 0.22
	DragLatPerPixel  = 0.18
	WheelZoomPerUnit = 0.002
)

// Mode is the interaction state.
type Mode int

const (
	ModeIdle Mode = iota
	ModeDragging
)

func (m Mode) String() string {
	if m == ModeDragging {
		return "dragging"
	}
	return "idle"
}

// PointerEvent is a pointer position in surface (CSS) pixels.
type PointerEvent struct {
	X float64
	Y float64
}

// WheelEvent is a wheel step. Positive DeltaY scrolls down (zooms out).
type WheelEvent struct {
	X      float64
	Y      float64
	DeltaY float64

	defaultPrevented bool
}

// PreventDefault marks the event as consumed by the globe.
func (e *WheelEvent) PreventDefault() { e.defaultPrevented = true }

// DefaultPrevented reports whether the globe consumed the event.
func (e *WheelEvent) DefaultPrevented() bool { return e.defaultPrevented }

// HitTester resolves a screen position to a location.
type HitTester interface {
	HitTest(x, y float64) *Location
}

// Callbacks receive selection changes. Either may be nil.
type Callbacks struct {
	OnPinClick func(loc *Location)
	// OnPinHover receives nil for "no target"; ev is nil when the hover
	// was not caused by a pointer move (drag suppression, leaving).
	OnPinHover func(loc *Location, ev *PointerEvent)
}

type dragOrigin struct {
	x, y     float64
	lng, lat float64
}

// Controller is the interaction state machine. It owns the camera and
// turns pointer and wheel events into camera changes or callbacks.
type Controller struct {
	camera   Camera
	hits     HitTester
	cb       Callbacks
	onChange func()

	mode Mode
	drag dragOrigin
}

// NewController creates an idle controller. onChange, if set, runs after
// every camera mutation.
func NewController(cam Camera, hits HitTester, cb Callbacks, onChange func()) *Controller {
	return &Controller{
		camera:   cam.Clamped(),
		hits:     hits,
		cb:       cb,
		onChange: onChange,
	}
}

// Camera returns the current camera.
func (c *Controller) Camera() Camera {
	return c.camera
}

// SetCamera replaces the camera, applying the usual clamps.
func (c *Controller) SetCamera(cam Camera) {
	c.camera = cam.Clamped()
	c.changed()
}

// Mode returns the interaction state.
func (c *Controller) Mode() Mode {
	return c.mode
}

// PointerDown starts a drag from the idle state.
func (c *Controller) PointerDown(ev PointerEvent) {
	if c.mode != ModeIdle {
		return
	}
	c.mode = ModeDragging
	c.drag = dragOrigin{
		x:   ev.X,
		y:   ev.Y,
		lng: c.camera.RotationLng,
		lat: c.camera.RotationLat,
	}
}

// PointerMove rotates while dragging, otherwise reports the hovered pin.
func (c *Controller) PointerMove(ev PointerEvent) {
	if c.mode == ModeDragging {
		c.camera.RotationLng = c.drag.lng + (ev.X-c.drag.x)*DragLngPerPixel
		c.camera.RotationLat = clamp(c.drag.lat+(ev.Y-c.drag.y)*DragLatPerPixel, MinTilt, MaxTilt)
		c.changed()
		c.hover(nil, nil)
		return
	}
	c.hover(c.hits.HitTest(ev.X, ev.Y), &ev)
}

// PointerUp ends a drag.
func (c *Controller) PointerUp(PointerEvent) {
	c.mode = ModeIdle
}

// PointerLeave ends any drag and clears the hover target.
func (c *Controller) PointerLeave() {
	c.mode = ModeIdle
	c.hover(nil, nil)
}

// Wheel zooms in any state and consumes the event. A non-finite delta is
// consumed without zooming.
func (c *Controller) Wheel(ev *WheelEvent) {
	if ev == nil {
		return
	}
	ev.PreventDefault()
	if math.IsNaN(ev.DeltaY) || math.IsInf(ev.DeltaY, 0) {
		return
	}
	c.camera.Zoom = clamp(c.camera.Zoom-ev.DeltaY*WheelZoomPerUnit, MinZoom, MaxZoom)
	c.changed()
}

// Click hit-tests in any state. A click that ends a drag still selects
// whatever pin is under the pointer.
func (c *Controller) Click(ev PointerEvent) {
	loc := c.hits.HitTest(ev.X, ev.Y)
	if loc != nil && c.cb.OnPinClick != nil {
		c.cb.OnPinClick(loc)
	}
}

// Nudge rotates as if the pointer had been dragged by (dx, dy) pixels from
// the current camera. Used for keyboard control.
func (c *Controller) Nudge(dx, dy float64) {
	c.camera.RotationLng += dx * DragLngPerPixel
	c.camera.RotationLat = clamp(c.camera.RotationLat+dy*DragLatPerPixel, MinTilt, MaxTilt)
	c.changed()
}

func (c *Controller) hover(loc *Location, ev *PointerEvent) {
	if c.cb.OnPinHover != nil {
		c.cb.OnPinHover(loc, ev)
	}
}

func (c *Controller) changed() {
	if c.onChange != nil {
		c.onChange()
	}
}
