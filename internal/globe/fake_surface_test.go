package globe

import (
	"image/color"
	"strings"
)

// drawOp is one recorded surface call.
type drawOp struct {
	name  string
	args  []float64
	text  string
	color color.Color
}

// recordingSurface is a Surface that records every call. Text is measured
// as charWidth pixels per rune.
type recordingSurface struct {
	width, height float64
	ratio         float64
	charWidth     float64
	fontSize      float64
	ops           []drawOp
}

func newRecordingSurface(w, h float64) *recordingSurface {
	return &recordingSurface{width: w, height: h, ratio: 1, charWidth: 6, fontSize: 10}
}

func (s *recordingSurface) rec(name string, args ...float64) {
	s.ops = append(s.ops, drawOp{name: name, args: args})
}

func (s *recordingSurface) Size() (float64, float64) { return s.width, s.height }
func (s *recordingSurface) PixelRatio() float64       { return s.ratio }
func (s *recordingSurface) Clear()                    { s.rec("clear") }
func (s *recordingSurface) Push()                     { s.rec("push") }
func (s *recordingSurface) Pop()                      { s.rec("pop") }
func (s *recordingSurface) ClipCircle(cx, cy, r float64) {
	s.rec("clip", cx, cy, r)
}
func (s *recordingSurface) FillDiscGradient(cx, cy, r float64, g RadialGradient) {
	s.rec("gradient", cx, cy, r)
}
func (s *recordingSurface) BeginPath()          { s.rec("begin") }
func (s *recordingSurface) MoveTo(x, y float64) { s.rec("move", x, y) }
func (s *recordingSurface) LineTo(x, y float64) { s.rec("line", x, y) }
func (s *recordingSurface) ClosePath()          { s.rec("close") }
func (s *recordingSurface) Circle(cx, cy, r float64) {
	s.rec("circle", cx, cy, r)
}
func (s *recordingSurface) Rect(x, y, w, h float64) { s.rec("rect", x, y, w, h) }
func (s *recordingSurface) Fill(c color.Color) {
	s.ops = append(s.ops, drawOp{name: "fill", color: c})
}
func (s *recordingSurface) Stroke(c color.Color, width float64) {
	s.ops = append(s.ops, drawOp{name: "stroke", args: []float64{width}, color: c})
}
func (s *recordingSurface) SetFontSize(size float64) {
	s.fontSize = size
	s.rec("font", size)
}
func (s *recordingSurface) MeasureText(text string) float64 {
	return float64(len([]rune(text))) * s.charWidth
}
func (s *recordingSurface) FillText(text string, x, y float64, c color.Color) {
	s.ops = append(s.ops, drawOp{name: "text", args: []float64{x, y}, text: text, color: c})
}

func (s *recordingSurface) reset() { s.ops = nil }

// names returns the recorded op names.
func (s *recordingSurface) names() []string {
	out := make([]string, len(s.ops))
	for i, op := range s.ops {
		out[i] = op.name
	}
	return out
}

// count returns how many ops have the given name.
func (s *recordingSurface) count(name string) int {
	n := 0
	for _, op := range s.ops {
		if op.name == name {
			n++
		}
	}
	return n
}

// find returns the first op with the given name, or false.
func (s *recordingSurface) find(name string) (drawOp, bool) {
	for _, op := range s.ops {
		if op.name == name {
			return op, true
		}
	}
	return drawOp{}, false
}

// texts returns every drawn text string.
func (s *recordingSurface) texts() []string {
	var out []string
	for _, op := range s.ops {
		if op.name == "text" {
			out = append(out, op.text)
		}
	}
	return out
}

func (s *recordingSurface) String() string {
	return strings.Join(s.names(), " ")
}

func ptr(v float64) *float64 { return &v }
