// Package raster implements the globe drawing surface on an in-memory RGBA
// image using fogleman/gg.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/litescript/ls-globe/internal/globe"
)

// defaultFontSize matches the smallest label size.
const defaultFontSize = 10.0

// Canvas is a globe.Surface backed by an RGBA image. Coordinates passed in
// are CSS pixels; the backing image is ratio times larger in each
// dimension. Line widths are CSS pixels too.
type Canvas struct {
	dc    *gg.Context
	img   *image.RGBA
	w, h  float64
	ratio float64

	ttf       *truetype.Font
	faces     map[float64]font.Face
	fontSize  float64
	fontStack []float64
}

var _ globe.Surface = (*Canvas)(nil)

// New creates a canvas of width x height CSS pixels. The pixel ratio is
// clamped to (0, globe.MaxPixelRatio].
func New(width, height int, ratio float64) *Canvas {
	c := &Canvas{faces: make(map[float64]font.Face)}
	if f, err := truetype.Parse(goregular.TTF); err == nil {
		c.ttf = f
	}
	c.Resize(width, height, ratio)
	return c
}

// Resize changes the canvas size. The backing image is reallocated only
// when the device size changes; the font face is rebuilt either way.
func (c *Canvas) Resize(width, height int, ratio float64) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	ratio = globe.ClampPixelRatio(ratio)

	dw := int(math.Ceil(float64(width) * ratio))
	dh := int(math.Ceil(float64(height) * ratio))
	if c.img == nil || c.img.Bounds().Dx() != dw || c.img.Bounds().Dy() != dh {
		c.img = image.NewRGBA(image.Rect(0, 0, dw, dh))
		c.dc = gg.NewContextForRGBA(c.img)
	}
	if ratio != c.ratio {
		c.faces = make(map[float64]font.Face)
	}
	c.w = float64(width)
	c.h = float64(height)
	c.ratio = ratio
	c.fontStack = nil
	c.SetFontSize(defaultFontSize)
}

// Image returns the backing image. It is reused across frames.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// EncodePNG writes the current frame as PNG.
func (c *Canvas) EncodePNG(w io.Writer) error {
	if err := c.dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// DeviceSize returns the backing image size in device pixels.
func (c *Canvas) DeviceSize() (int, int) {
	b := c.img.Bounds()
	return b.Dx(), b.Dy()
}

func (c *Canvas) Size() (float64, float64) { return c.w, c.h }
func (c *Canvas) PixelRatio() float64       { return c.ratio }

// d converts a CSS length to device pixels.
func (c *Canvas) d(v float64) float64 { return v * c.ratio }

func (c *Canvas) Clear() {
	c.dc.SetColor(color.Transparent)
	c.dc.Clear()
	c.dc.ClearPath()
}

func (c *Canvas) Push() {
	c.dc.Push()
	c.fontStack = append(c.fontStack, c.fontSize)
}

func (c *Canvas) Pop() {
	c.dc.Pop()
	if n := len(c.fontStack); n > 0 {
		size := c.fontStack[n-1]
		c.fontStack = c.fontStack[:n-1]
		c.SetFontSize(size)
	}
}

func (c *Canvas) ClipCircle(cx, cy, r float64) {
	c.dc.ClearPath()
	c.dc.DrawCircle(c.d(cx), c.d(cy), c.d(r))
	c.dc.Clip()
}

func (c *Canvas) FillDiscGradient(cx, cy, r float64, g globe.RadialGradient) {
	x, y := c.d(cx), c.d(cy)
	extent := g.Extent
	if extent <= 0 {
		extent = 1
	}
	grad := gg.NewRadialGradient(x, y, 0, x, y, c.d(r)*extent)
	for _, stop := range g.Stops {
		grad.AddColorStop(stop.Offset, stop.Color)
	}
	c.dc.ClearPath()
	c.dc.DrawCircle(x, y, c.d(r))
	c.dc.SetFillStyle(grad)
	c.dc.Fill()
}

func (c *Canvas) BeginPath()          { c.dc.ClearPath() }
func (c *Canvas) MoveTo(x, y float64) { c.dc.MoveTo(c.d(x), c.d(y)) }
func (c *Canvas) LineTo(x, y float64) { c.dc.LineTo(c.d(x), c.d(y)) }
func (c *Canvas) ClosePath()          { c.dc.ClosePath() }

func (c *Canvas) Circle(cx, cy, r float64) {
	c.dc.DrawCircle(c.d(cx), c.d(cy), c.d(r))
}

func (c *Canvas) Rect(x, y, w, h float64) {
	c.dc.DrawRectangle(c.d(x), c.d(y), c.d(w), c.d(h))
}

func (c *Canvas) Fill(col color.Color) {
	c.dc.SetColor(col)
	c.dc.FillPreserve()
}

func (c *Canvas) Stroke(col color.Color, width float64) {
	c.dc.SetColor(col)
	c.dc.SetLineWidth(c.d(width))
	c.dc.StrokePreserve()
}

func (c *Canvas) SetFontSize(size float64) {
	if size <= 0 {
		size = defaultFontSize
	}
	c.fontSize = size
	c.dc.SetFontFace(c.face(size))
}

// FontSize returns the current font size in CSS pixels.
func (c *Canvas) FontSize() float64 {
	return c.fontSize
}

func (c *Canvas) MeasureText(s string) float64 {
	w, _ := c.dc.MeasureString(s)
	return w / c.ratio
}

func (c *Canvas) FillText(s string, x, y float64, col color.Color) {
	c.dc.SetColor(col)
	c.dc.DrawString(s, c.d(x), c.d(y))
}

// face returns the cached face for a CSS font size. Without the embedded
// TrueType font every size maps to the fixed 7x13 bitmap face.
func (c *Canvas) face(size float64) font.Face {
	if f, ok := c.faces[size]; ok {
		return f
	}
	var f font.Face = basicfont.Face7x13
	if c.ttf != nil {
		f = truetype.NewFace(c.ttf, &truetype.Options{
			Size:    c.d(size),
			DPI:     72,
			Hinting: font.HintingFull,
		})
	}
	c.faces[size] = f
	return f
}
