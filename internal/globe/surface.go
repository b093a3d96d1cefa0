package globe

import "image/color"

// Surface is a canvas-like drawing target measured in CSS pixels.
//
// Paths follow 2D canvas semantics: BeginPath discards the current path,
// MoveTo starts a new sub-path, LineTo without a current point behaves as
// MoveTo, and Fill/Stroke leave the path in place so a shape can be filled
// and then outlined.
type Surface interface {
	// Size reports the drawable size in CSS pixels.
	Size() (width, height float64)
	// PixelRatio reports device pixels per CSS pixel.
	PixelRatio() float64

	Clear()
	Push()
	Pop()
	// ClipCircle intersects the clip region with a disc until the next Pop.
	ClipCircle(cx, cy, r float64)
	// FillDiscGradient fills a disc with a radial gradient centered on it.
	FillDiscGradient(cx, cy, r float64, g RadialGradient)

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	ClosePath()
	// Circle appends a closed circular sub-path.
	Circle(cx, cy, r float64)
	// Rect appends a closed rectangular sub-path.
	Rect(x, y, w, h float64)
	Fill(c color.Color)
	Stroke(c color.Color, width float64)

	SetFontSize(size float64)
	// MeasureText returns the advance width of s in the current font.
	MeasureText(s string) float64
	// FillText draws s with its alphabetic baseline at y.
	FillText(s string, x, y float64, c color.Color)
}

// ColorStop is one stop of a gradient, Offset in [0, 1].
type ColorStop struct {
	Offset float64
	Color  color.Color
}

// RadialGradient runs from the disc center outwards to Extent times the
// disc radius.
type RadialGradient struct {
	Extent float64
	Stops  []ColorStop
}
