// Package globe is the projection, rendering and interaction engine for a
// draggable, zoomable 2D globe annotated with data-driven pins.
package globe

import (
	"github.com/litescript/ls-globe/internal/logging"
)

// Config configures a Globe.
type Config struct {
	Locations []*Location

	OnPinClick func(loc *Location)
	OnPinHover func(loc *Location, ev *PointerEvent)

	// UnknownLocation places entities without usable coordinates. Nil
	// uses DefaultUnknownLocation.
	UnknownLocation *GeoPoint
	PinHitRadius    float64
	Redraw          RedrawPolicy
	Theme           Theme
	Camera          Camera

	Logger *logging.Logger
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		PinHitRadius:    DefaultPinHitRadius,
		Redraw:          RedrawAlways,
		Theme:           DefaultTheme(),
		Camera:          DefaultCamera(),
	}
}

// Globe ties the render loop, pin layer and interaction controller to one
// drawing surface. All methods must be called from a single goroutine.
type Globe struct {
	log       *logging.Logger
	renderer  *Renderer
	pins      *PinLayer
	control   *Controller
	locations []*Location
	land      LandState
	unknown   GeoPoint
}

// New creates a globe drawing to s.
func New(s Surface, cfg Config) *Globe {
	if cfg.Theme.Sphere.Stops == nil {
		cfg.Theme = DefaultTheme()
	}
	unknown := DefaultUnknownLocation
	if cfg.UnknownLocation != nil {
		unknown = *cfg.UnknownLocation
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Discard()
	}

	g := &Globe{
		log:       cfg.Logger,
		pins:      NewPinLayer(cfg.PinHitRadius, unknown),
		locations: cfg.Locations,
		land:      UnloadedLand(),
		unknown:   unknown,
	}
	g.renderer = NewRenderer(s, cfg.Theme, g.pins, cfg.Redraw)
	g.control = NewController(cfg.Camera, g.pins, Callbacks{
		OnPinClick: cfg.OnPinClick,
		OnPinHover: cfg.OnPinHover,
	}, g.renderer.Invalidate)
	return g
}

// UnknownLocation returns where entities without usable coordinates are
// placed.
func (g *Globe) UnknownLocation() GeoPoint {
	return g.unknown
}

// Camera returns the current camera.
func (g *Globe) Camera() Camera {
	return g.control.Camera()
}

// SetCamera replaces the camera, applying tilt and zoom clamps.
func (g *Globe) SetCamera(cam Camera) {
	g.control.SetCamera(cam)
}

// Mode returns the interaction state.
func (g *Globe) Mode() Mode {
	return g.control.Mode()
}

// SetLocations replaces the location collection. The slice is read, never
// modified.
func (g *Globe) SetLocations(locations []*Location) {
	g.locations = locations
	g.renderer.Invalidate()
	g.log.Debug("locations updated: %d entities", len(locations))
}

// Locations returns the current location collection.
func (g *Globe) Locations() []*Location {
	return g.locations
}

// SetLand replaces the land state.
func (g *Globe) SetLand(land LandState) {
	g.land = land
	g.renderer.Invalidate()
	g.log.Debug("land state %s: %d rings", land.Status, len(land.Rings))
}

// Land returns the current land state.
func (g *Globe) Land() LandState {
	return g.land
}

// Tick runs one iteration of the render loop and reports whether a frame
// was drawn.
func (g *Globe) Tick() bool {
	if g.renderer.Resize() {
		vp := g.renderer.Viewport()
		g.log.Debug("viewport %.0fx%.0f r=%.1f", vp.CenterX*2, vp.CenterY*2, vp.BaseRadius)
	}
	return g.renderer.Tick(g.control.Camera(), g.land, g.locations)
}

// Resize re-reads the surface size. Tick does this too; frontends call it
// after resizing the surface so the viewport is current before the next
// event.
func (g *Globe) Resize() bool {
	return g.renderer.Resize()
}

// Viewport returns the current viewport geometry.
func (g *Globe) Viewport() Viewport {
	return g.renderer.Viewport()
}

// Frame returns the last published pin frame, or nil before the first
// frame.
func (g *Globe) Frame() *PinFrame {
	return g.pins.Frame()
}

// HitTest finds the pin under (x, y) in the last published frame.
func (g *Globe) HitTest(x, y float64) *Location {
	return g.pins.HitTest(x, y)
}

// RedrawPolicy returns the render loop's redraw policy.
func (g *Globe) RedrawPolicy() RedrawPolicy {
	return g.renderer.Policy()
}

// SetRedrawPolicy changes the render loop's redraw policy.
func (g *Globe) SetRedrawPolicy(p RedrawPolicy) {
	g.renderer.SetPolicy(p)
}

// Dirty reports whether the next tick will repaint under RedrawOnChange.
func (g *Globe) Dirty() bool {
	return g.renderer.Dirty()
}

// Frames returns how many frames have been drawn.
func (g *Globe) Frames() uint64 {
	return g.renderer.Frames()
}

func (g *Globe) PointerDown(ev PointerEvent) { g.control.PointerDown(ev) }
func (g *Globe) PointerMove(ev PointerEvent) { g.control.PointerMove(ev) }
func (g *Globe) PointerUp(ev PointerEvent)   { g.control.PointerUp(ev) }
func (g *Globe) PointerLeave()               { g.control.PointerLeave() }
func (g *Globe) Wheel(ev *WheelEvent)        { g.control.Wheel(ev) }
func (g *Globe) Click(ev PointerEvent)       { g.control.Click(ev) }

// Nudge rotates by the equivalent of a (dx, dy) pixel drag.
func (g *Globe) Nudge(dx, dy float64) { g.control.Nudge(dx, dy) }
