package ui

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-globe/internal/globe"
	"github.com/litescript/ls-globe/internal/raster"
)

// Each terminal cell covers cellWidth x cellHeight surface pixels and is
// drawn as two half-block sub-pixels stacked vertically.
const (
	cellWidth  = 4
	cellHeight = 8
	halfHeight = cellHeight / 2

	// alphaThreshold is the mean alpha (0-255) above which a half cell is
	// painted.
	alphaThreshold = 96

	// textMidline places a label row from its baseline, as a fraction of
	// the font size.
	textMidline = 0.35
)

// cell is one rendered terminal cell. Empty fg or bg means the terminal
// default.
type cell struct {
	ch rune
	fg string
	bg string
}

// overlay is text placed on the cell grid instead of rasterized.
type overlay struct {
	row, col int
	text     string
	fg       string
}

// termSurface rasterizes the globe at a resolution of cellWidth x
// cellHeight pixels per terminal cell. Text is kept as cell overlays
// since glyphs a few pixels tall would be unreadable once downsampled.
type termSurface struct {
	*raster.Canvas
	cols, rows int
	overlays   []overlay
}

var _ globe.Surface = (*termSurface)(nil)

func newTermSurface(cols, rows int) *termSurface {
	cols, rows = max(cols, 1), max(rows, 1)
	return &termSurface{
		Canvas: raster.New(cols*cellWidth, rows*cellHeight, 1),
		cols:   cols,
		rows:   rows,
	}
}

// Resize changes the grid size and reports whether it changed.
func (s *termSurface) Resize(cols, rows int) bool {
	cols, rows = max(cols, 1), max(rows, 1)
	if cols == s.cols && rows == s.rows {
		return false
	}
	s.cols, s.rows = cols, rows
	s.Canvas.Resize(cols*cellWidth, rows*cellHeight, 1)
	return true
}

// Clear also drops the previous frame's text.
func (s *termSurface) Clear() {
	s.Canvas.Clear()
	s.overlays = s.overlays[:0]
}

// MeasureText measures in whole cells.
func (s *termSurface) MeasureText(str string) float64 {
	return float64(lipgloss.Width(str) * cellWidth)
}

func (s *termSurface) FillText(str string, x, y float64, c color.Color) {
	mid := y - s.FontSize()*textMidline
	s.overlays = append(s.overlays, overlay{
		row:  int(math.Floor(mid / cellHeight)),
		col:  int(math.Floor(x / cellWidth)),
		text: str,
		fg:   hexColor(c),
	})
}

// Cells converts the current frame to a cell grid.
func (s *termSurface) Cells() [][]cell {
	cells := cellsFromImage(s.Image(), s.cols, s.rows)
	applyOverlays(cells, s.overlays)
	return cells
}

// Render returns the current frame as styled terminal text.
func (s *termSurface) Render() string {
	return renderCells(s.Cells())
}

// cellToSurface maps a terminal cell to the surface pixel at its center.
func cellToSurface(col, row int) (x, y float64) {
	return float64(col*cellWidth) + cellWidth/2, float64(row*cellHeight) + halfHeight
}

// cellsFromImage downsamples img into cols x rows half-block cells.
func cellsFromImage(img *image.RGBA, cols, rows int) [][]cell {
	cells := make([][]cell, rows)
	for row := range cells {
		cells[row] = make([]cell, cols)
		for col := range cells[row] {
			x0, y0 := col*cellWidth, row*cellHeight
			top, topOK := averageBlock(img, x0, y0)
			bottom, bottomOK := averageBlock(img, x0, y0+halfHeight)

			c := cell{ch: ' '}
			switch {
			case topOK && bottomOK:
				c = cell{ch: '▀', fg: top, bg: bottom}
			case topOK:
				c = cell{ch: '▀', fg: top}
			case bottomOK:
				c = cell{ch: '▄', fg: bottom}
			}
			cells[row][col] = c
		}
	}
	return cells
}

// averageBlock averages a cellWidth x halfHeight block of premultiplied
// pixels and reports whether it is opaque enough to paint.
func averageBlock(img *image.RGBA, x0, y0 int) (string, bool) {
	var r, g, b, a, n int
	bounds := img.Bounds()
	for y := y0; y < y0+halfHeight; y++ {
		for x := x0; x < x0+cellWidth; x++ {
			if !(image.Point{X: x, Y: y}).In(bounds) {
				continue
			}
			i := img.PixOffset(x, y)
			r += int(img.Pix[i])
			g += int(img.Pix[i+1])
			b += int(img.Pix[i+2])
			a += int(img.Pix[i+3])
			n++
		}
	}
	if n == 0 || a/n < alphaThreshold {
		return "", false
	}
	// Un-premultiply.
	return fmt.Sprintf("#%02X%02X%02X",
		min(255, r*255/a), min(255, g*255/a), min(255, b*255/a)), true
}

func applyOverlays(cells [][]cell, overlays []overlay) {
	for _, o := range overlays {
		if o.row < 0 || o.row >= len(cells) {
			continue
		}
		line := cells[o.row]
		for i, r := range []rune(o.text) {
			col := o.col + i
			if col < 0 || col >= len(line) {
				continue
			}
			under := line[col]
			bg := under.bg
			if bg == "" && under.ch != ' ' {
				bg = under.fg
			}
			line[col] = cell{ch: r, fg: o.fg, bg: bg}
		}
	}
}

// renderCells styles runs of equally colored cells together.
func renderCells(cells [][]cell) string {
	var b strings.Builder
	for y, line := range cells {
		for x := 0; x < len(line); {
			run := x
			for run < len(line) && line[run].fg == line[x].fg && line[run].bg == line[x].bg {
				run++
			}
			var text strings.Builder
			for _, c := range line[x:run] {
				text.WriteRune(c.ch)
			}
			if line[x].fg == "" && line[x].bg == "" {
				b.WriteString(text.String())
			} else {
				style := lipgloss.NewStyle()
				if line[x].fg != "" {
					style = style.Foreground(lipgloss.Color(line[x].fg))
				}
				if line[x].bg != "" {
					style = style.Background(lipgloss.Color(line[x].bg))
				}
				b.WriteString(style.Render(text.String()))
			}
			x = run
		}
		if y < len(cells)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func hexColor(c color.Color) string {
	if c == nil {
		return ""
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("#%02X%02X%02X", n.R, n.G, n.B)
}
