package globe

import (
	"math"

	"github.com/dhconnelly/rtreego"
)

// Pin geometry.
const (
	// DefaultPinHitRadius is the base hit radius in CSS pixels.
	DefaultPinHitRadius = 12.0

	// markerFraction is the drawn dot radius relative to the hit radius;
	// the hit target is deliberately larger than the dot.
	markerFraction = 0.6
	maxPinScale    = 1.5

	labelGap      = 4.0
	labelPadX     = 3.0
	labelPadY     = 2.0
	labelBaseline = 4.0

	minLabelFont  = 9.0
	maxLabelFont  = 16.0
	baseLabelFont = 10.0
	labelZoomGain = 0.6
)

// R-tree shape for the per-frame pin index.
const (
	pinIndexDims        = 2
	pinIndexMinChildren = 4
	pinIndexMaxChildren = 16
	pointTolerance      = 0.01
)

// PinScale is the marker scale for a magnitude: increasing, sub-linear and
// capped so dense pins never dominate the canvas.
func PinScale(count int) float64 {
	return math.Min(maxPinScale, 0.5+math.Log10(1+float64(count))*0.25)
}

// LabelFontSize is the label font size at a zoom level.
func LabelFontSize(zoom float64) float64 {
	return clamp(baseLabelFont+(zoom-1)*labelZoomGain, minLabelFont, maxLabelFont)
}

// ProjectedPin is one location placed on screen for a single frame.
type ProjectedPin struct {
	X         float64
	Y         float64
	Visible   bool
	HitRadius float64
	Order     int // position in the source collection
	Location  *Location
}

// PinFrame is the immutable result of one pin pass. Event handlers only
// read it; the pin layer replaces it wholesale at the end of each frame.
type PinFrame struct {
	pins  []ProjectedPin
	index *rtreego.Rtree
}

// pinBox is a visible pin's hit box in the frame index.
type pinBox struct {
	slot int // index into PinFrame.pins
	rect *rtreego.Rect
}

func (b *pinBox) Bounds() *rtreego.Rect {
	return b.rect
}

func newPinFrame(pins []ProjectedPin) *PinFrame {
	f := &PinFrame{pins: pins}
	tree := rtreego.NewTree(pinIndexDims, pinIndexMinChildren, pinIndexMaxChildren)
	for i, p := range pins {
		if !p.Visible {
			continue
		}
		rect, err := rtreego.NewRect(
			rtreego.Point{p.X - p.HitRadius, p.Y - p.HitRadius},
			[]float64{2 * p.HitRadius, 2 * p.HitRadius},
		)
		if err != nil {
			// Degenerate radius; HitTest falls back to a linear scan.
			return f
		}
		tree.Insert(&pinBox{slot: i, rect: rect})
	}
	f.index = tree
	return f
}

// Len returns the number of recorded pins, visible or not.
func (f *PinFrame) Len() int {
	if f == nil {
		return 0
	}
	return len(f.pins)
}

// At returns the i-th recorded pin.
func (f *PinFrame) At(i int) ProjectedPin {
	return f.pins[i]
}

// Pins returns a copy of the recorded pins in source order.
func (f *PinFrame) Pins() []ProjectedPin {
	if f == nil {
		return nil
	}
	out := make([]ProjectedPin, len(f.pins))
	copy(out, f.pins)
	return out
}

// HitTest returns the first visible pin, in source order, whose hit
// circle contains (x, y). Sources are sorted by descending count, so
// overlapping pins resolve to the larger one.
func (f *PinFrame) HitTest(x, y float64) *Location {
	if f == nil {
		return nil
	}
	if f.index == nil {
		for i := range f.pins {
			if f.pins[i].Visible && f.pins[i].contains(x, y) {
				return f.pins[i].Location
			}
		}
		return nil
	}

	best := -1
	for _, item := range f.index.SearchIntersect(rtreego.Point{x, y}.ToRect(pointTolerance)) {
		box, ok := item.(*pinBox)
		if !ok {
			continue
		}
		if best >= 0 && box.slot >= best {
			continue
		}
		if f.pins[box.slot].contains(x, y) {
			best = box.slot
		}
	}
	if best < 0 {
		return nil
	}
	return f.pins[best].Location
}

func (p ProjectedPin) contains(x, y float64) bool {
	dx := x - p.X
	dy := y - p.Y
	return dx*dx+dy*dy <= p.HitRadius*p.HitRadius
}

// PinLayer draws location markers and labels and owns the last frame's
// projected positions.
type PinLayer struct {
	hitRadius float64
	unknown   GeoPoint
	frame     *PinFrame
}

// NewPinLayer creates a pin layer. A non-positive hit radius uses
// DefaultPinHitRadius.
func NewPinLayer(hitRadius float64, unknown GeoPoint) *PinLayer {
	if hitRadius <= 0 || !isFinite(hitRadius) {
		hitRadius = DefaultPinHitRadius
	}
	return &PinLayer{hitRadius: hitRadius, unknown: unknown}
}

// Frame returns the most recently published frame, or nil before the
// first draw.
func (l *PinLayer) Frame() *PinFrame {
	return l.frame
}

// HitTest queries the most recently published frame.
func (l *PinLayer) HitTest(x, y float64) *Location {
	return l.frame.HitTest(x, y)
}

// Project places the locations for one frame without drawing them.
func (l *PinLayer) Project(cam Camera, vp Viewport, locations []*Location) []ProjectedPin {
	pins := make([]ProjectedPin, 0, len(locations))
	for i, loc := range locations {
		if !loc.rendered() {
			continue
		}
		lat, lng := loc.Coordinates(l.unknown)
		p := Project(lat, lng, cam, vp)
		pins = append(pins, ProjectedPin{
			X:         p.X,
			Y:         p.Y,
			Visible:   p.Visible,
			HitRadius: l.hitRadius * PinScale(loc.Count),
			Order:     i,
			Location:  loc,
		})
	}
	return pins
}

// Draw renders visible pins and their labels, then publishes the frame.
func (l *PinLayer) Draw(s Surface, cam Camera, vp Viewport, th Theme, locations []*Location) *PinFrame {
	pins := l.Project(cam, vp, locations)
	for _, pin := range pins {
		if !pin.Visible {
			continue
		}
		s.BeginPath()
		s.Circle(pin.X, pin.Y, pin.HitRadius*markerFraction)
		s.Fill(th.PinFill)
		s.Stroke(th.PinStroke.Color, th.PinStroke.Width)

		if pin.Location.HasLabel() {
			drawLabel(s, th, pin, LabelFontSize(cam.Zoom))
		}
	}
	l.frame = newPinFrame(pins)
	return l.frame
}

// drawLabel centers the label under the marker in a padded box sized from
// the measured text.
func drawLabel(s Surface, th Theme, pin ProjectedPin, fontSize float64) {
	label := pin.Location.Label
	s.SetFontSize(fontSize)
	w := s.MeasureText(label)
	tx := pin.X - w/2
	ty := pin.Y + pin.HitRadius + labelGap

	s.BeginPath()
	s.Rect(tx-labelPadX, ty-fontSize-labelPadY, w+2*labelPadX, fontSize+2*labelPadY)
	s.Fill(th.LabelBackground)
	s.Stroke(th.LabelBorder.Color, th.LabelBorder.Width)
	s.FillText(label, tx, ty-labelBaseline, th.LabelText)
}
