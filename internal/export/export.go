// Package export serializes rendered globe frames as JSON and text tables.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/litescript/ls-globe/internal/globe"
	"github.com/litescript/ls-globe/internal/locations"
)

// FrameExport is the JSON-serializable representation of one frame.
type FrameExport struct {
	RenderedAt time.Time      `json:"rendered_at"`
	Camera     CameraExport   `json:"camera"`
	Viewport   ViewportExport `json:"viewport"`
	Land       LandExport     `json:"land"`
	Pins       []PinExport    `json:"pins"`
}

// CameraExport is the camera at render time.
type CameraExport struct {
	RotationLng float64 `json:"rotation_lng"`
	RotationLat float64 `json:"rotation_lat"`
	Zoom        float64 `json:"zoom"`
}

// ViewportExport is the sphere placement in CSS pixels.
type ViewportExport struct {
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	PixelRatio float64 `json:"pixel_ratio"`
	CenterX    float64 `json:"center_x"`
	CenterY    float64 `json:"center_y"`
	Radius     float64 `json:"radius"`
}

// LandExport summarizes the land state.
type LandExport struct {
	Status string `json:"status"`
	Rings  int    `json:"rings"`
}

// PinExport is a projected pin with its source fields.
type PinExport struct {
	Order     int     `json:"order"`
	Label     string  `json:"label"`
	Count     int     `json:"count"`
	Employees int     `json:"employees"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	Unknown   bool    `json:"unknown_location,omitempty"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Visible   bool    `json:"visible"`
	HitRadius float64 `json:"hit_radius"`
}

// Surface is the part of a drawing surface the export reads.
type Surface interface {
	Size() (width, height float64)
	PixelRatio() float64
}

// ExportFrame converts the globe's last published frame.
func ExportFrame(g *globe.Globe, s Surface, unknown globe.GeoPoint, renderedAt time.Time) *FrameExport {
	cam := g.Camera()
	vp := g.Viewport()
	w, h := s.Size()
	land := g.Land()

	export := &FrameExport{
		RenderedAt: renderedAt,
		Camera: CameraExport{
			RotationLng: cam.RotationLng,
			RotationLat: cam.RotationLat,
			Zoom:        cam.Zoom,
		},
		Viewport: ViewportExport{
			Width:      w,
			Height:     h,
			PixelRatio: s.PixelRatio(),
			CenterX:    vp.CenterX,
			CenterY:    vp.CenterY,
			Radius:     vp.EffectiveRadius(cam.Zoom),
		},
		Land: LandExport{
			Status: land.Status.String(),
			Rings:  len(land.Rings),
		},
		Pins: []PinExport{},
	}

	for _, pin := range g.Frame().Pins() {
		loc := pin.Location
		lat, lng := loc.Coordinates(unknown)
		export.Pins = append(export.Pins, PinExport{
			Order:     pin.Order,
			Label:     loc.Label,
			Count:     loc.Count,
			Employees: locations.EmployeeCount(loc),
			Lat:       lat,
			Lng:       lng,
			Unknown:   loc.Lat == nil || loc.Lng == nil || lat != *loc.Lat || lng != *loc.Lng,
			X:         pin.X,
			Y:         pin.Y,
			Visible:   pin.Visible,
			HitRadius: pin.HitRadius,
		})
	}

	return export
}

// WriteJSON writes the frame as JSON to the given writer.
func (f *FrameExport) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(f)
}

// VisiblePins counts the pins on the near side.
func (f *FrameExport) VisiblePins() int {
	n := 0
	for _, p := range f.Pins {
		if p.Visible {
			n++
		}
	}
	return n
}

// WriteSummaryTable writes a text table of the frame's pins.
func WriteSummaryTable(w io.Writer, f *FrameExport) {
	fmt.Fprintf(w, "Globe @ %s  lng %.1f°  tilt %.1f°  zoom %.2fx  land %s\n",
		f.RenderedAt.Format(time.RFC3339), f.Camera.RotationLng, f.Camera.RotationLat, f.Camera.Zoom, f.Land.Status)
	fmt.Fprintln(w, strings.Repeat("─", 78))

	if len(f.Pins) == 0 {
		fmt.Fprintln(w, "No locations")
		return
	}

	// Header
	fmt.Fprintf(w, "%-4s %-24s %7s %5s %9s %9s %7s %7s %-4s\n",
		"#", "Location", "Count", "Emp", "Lat", "Lng", "X", "Y", "Vis")
	fmt.Fprintln(w, strings.Repeat("─", 78))

	// Rows
	for _, p := range f.Pins {
		vis := "no"
		if p.Visible {
			vis = "yes"
		}
		label := p.Label
		if p.Unknown {
			label += "*"
		}
		fmt.Fprintf(w, "%-4d %-24s %7d %5d %9.4f %9.4f %7.1f %7.1f %-4s\n",
			p.Order,
			truncateStr(label, 24),
			p.Count,
			p.Employees,
			p.Lat,
			p.Lng,
			p.X,
			p.Y,
			vis,
		)
	}

	fmt.Fprintf(w, "\nTotal: %d pins, %d visible\n", len(f.Pins), f.VisiblePins())
}

func truncateStr(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-2]) + ".."
}
