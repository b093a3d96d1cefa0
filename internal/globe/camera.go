package globe

import "math"

// Camera limits.
const (
	MinTilt = -85.0
	MaxTilt = 85.0
	MinZoom = 0.35
	MaxZoom = 24.0

	// baseRadiusFactor sizes the unzoomed sphere relative to the shorter
	// surface edge.
	baseRadiusFactor = 0.38

	// MaxPixelRatio caps the device pixel ratio used for backing stores.
	MaxPixelRatio = 2.0
)

// Camera is the view orientation of the globe.
type Camera struct {
	RotationLng float64 // degrees, unbounded
	RotationLat float64 // tilt in degrees, [MinTilt, MaxTilt]
	Zoom        float64 // [MinZoom, MaxZoom]
}

// DefaultCamera returns the initial camera: no rotation, no tilt, zoom 1.
func DefaultCamera() Camera {
	return Camera{Zoom: 1}
}

// Clamped returns c with tilt and zoom limited to their ranges.
// A zero or non-finite zoom becomes 1.
func (c Camera) Clamped() Camera {
	if c.Zoom == 0 || !isFinite(c.Zoom) {
		c.Zoom = 1
	}
	if !isFinite(c.RotationLng) {
		c.RotationLng = 0
	}
	if !isFinite(c.RotationLat) {
		c.RotationLat = 0
	}
	c.RotationLat = clamp(c.RotationLat, MinTilt, MaxTilt)
	c.Zoom = clamp(c.Zoom, MinZoom, MaxZoom)
	return c
}

// Heading returns the longitude rotation wrapped to -180..+180.
func (c Camera) Heading() float64 {
	return normalizeAngle(c.RotationLng)
}

// Viewport is the screen placement of the sphere, in surface (CSS) pixels.
type Viewport struct {
	CenterX    float64
	CenterY    float64
	BaseRadius float64
}

// NewViewport computes the viewport for a surface of the given size.
func NewViewport(width, height float64) Viewport {
	return Viewport{
		CenterX:    width / 2,
		CenterY:    height / 2,
		BaseRadius: math.Min(width, height) * baseRadiusFactor,
	}
}

// EffectiveRadius is the on-screen sphere radius at the given zoom.
func (v Viewport) EffectiveRadius(zoom float64) float64 {
	return v.BaseRadius * zoom
}

// ClampPixelRatio limits a device pixel ratio to (0, MaxPixelRatio].
// Unknown or invalid ratios become 1.
func ClampPixelRatio(r float64) float64 {
	if r <= 0 || !isFinite(r) {
		return 1
	}
	return math.Min(r, MaxPixelRatio)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// normalizeAngle wraps angle to -180..+180 range
func normalizeAngle(a float64) float64 {
	a = math.Mod(a, 360)
	if a > 180 {
		a -= 360
	} else if a < -180 {
		a += 360
	}
	return a
}
