package globe

// RedrawPolicy controls when the render loop repaints.
type RedrawPolicy int

const (
	// RedrawAlways repaints on every tick.
	RedrawAlways RedrawPolicy = iota
	// RedrawOnChange repaints only after the camera, data, land or surface
	// size changed since the last frame.
	RedrawOnChange
)

func (p RedrawPolicy) String() string {
	switch p {
	case RedrawAlways:
		return "always"
	case RedrawOnChange:
		return "on-change"
	default:
		return "unknown"
	}
}

// ParseRedrawPolicy accepts "always", "change" or "on-change".
func ParseRedrawPolicy(s string) (RedrawPolicy, bool) {
	switch s {
	case "always", "":
		return RedrawAlways, true
	case "change", "on-change", "dirty":
		return RedrawOnChange, true
	default:
		return RedrawAlways, false
	}
}

// surfaceSize is what the resize check compares between ticks.
type surfaceSize struct {
	width, height, ratio float64
}

// Renderer is the render loop: one frame per Tick.
type Renderer struct {
	surface Surface
	theme   Theme
	policy  RedrawPolicy
	pins    *PinLayer

	size     surfaceSize
	viewport Viewport
	dirty    bool
	frames   uint64
}

// NewRenderer creates a render loop drawing to s.
func NewRenderer(s Surface, th Theme, pins *PinLayer, policy RedrawPolicy) *Renderer {
	r := &Renderer{
		surface: s,
		theme:   th,
		policy:  policy,
		pins:    pins,
		dirty:   true,
	}
	r.Resize()
	return r
}

// Resize recomputes the viewport when the surface's size or pixel ratio
// changed. It is idempotent and reports whether anything changed.
func (r *Renderer) Resize() bool {
	w, h := r.surface.Size()
	size := surfaceSize{width: w, height: h, ratio: r.surface.PixelRatio()}
	if size == r.size {
		return false
	}
	r.size = size
	r.viewport = NewViewport(w, h)
	r.dirty = true
	return true
}

// Viewport returns the current viewport geometry.
func (r *Renderer) Viewport() Viewport {
	return r.viewport
}

// Invalidate marks the next tick as needing a repaint.
func (r *Renderer) Invalidate() {
	r.dirty = true
}

// Dirty reports whether a repaint is pending.
func (r *Renderer) Dirty() bool {
	return r.dirty
}

// Policy returns the redraw policy.
func (r *Renderer) Policy() RedrawPolicy {
	return r.policy
}

// SetPolicy changes the redraw policy.
func (r *Renderer) SetPolicy(p RedrawPolicy) {
	r.policy = p
	r.dirty = true
}

// Frames returns how many frames have been drawn.
func (r *Renderer) Frames() uint64 {
	return r.frames
}

// Tick runs the resize check and draws a frame if the policy calls for
// one. It reports whether a frame was drawn.
func (r *Renderer) Tick(cam Camera, land LandState, locations []*Location) bool {
	r.Resize()
	if r.policy == RedrawOnChange && !r.dirty {
		return false
	}
	r.draw(cam, land, locations)
	r.dirty = false
	r.frames++
	return true
}

func (r *Renderer) draw(cam Camera, land LandState, locations []*Location) {
	s := r.surface
	vp := r.viewport
	th := r.theme
	radius := vp.EffectiveRadius(cam.Zoom)

	s.Clear()

	s.Push()
	s.ClipCircle(vp.CenterX, vp.CenterY, radius)
	s.FillDiscGradient(vp.CenterX, vp.CenterY, radius, th.Sphere)
	drawLand(s, cam, vp, th, land)
	drawGraticule(s, cam, vp, th)
	s.Pop()

	r.pins.Draw(s, cam, vp, th, locations)

	s.BeginPath()
	s.Circle(vp.CenterX, vp.CenterY, radius)
	s.Stroke(th.Outline.Color, th.Outline.Width)
}
