package globe

// Graticule layout in degrees.
const (
	graticuleSpacing = 15.0
	graticuleStep    = 4.0
	graticuleMaxLat  = 75.0
)

// graticuleLine is a parallel (fixed latitude) or a meridian (fixed
// longitude).
type graticuleLine struct {
	parallel bool
	value    float64
	major    bool
}

// graticuleLines lists minor lines first, then the major ones, in draw
// order.
func graticuleLines() []graticuleLine {
	var lines []graticuleLine
	for lat := -graticuleMaxLat; lat <= graticuleMaxLat; lat += graticuleSpacing {
		lines = append(lines, graticuleLine{parallel: true, value: lat})
	}
	for lng := -180.0; lng < 180; lng += graticuleSpacing {
		lines = append(lines, graticuleLine{value: lng})
	}
	for lat := -90.0; lat <= 90; lat += 90 {
		lines = append(lines, graticuleLine{parallel: true, value: lat, major: true})
	}
	for lng := -180.0; lng <= 180; lng += 180 {
		lines = append(lines, graticuleLine{value: lng, major: true})
	}
	return lines
}

// drawGraticule strokes every graticule line. Consecutive visible samples
// are joined; a hidden sample breaks the path, which clips arcs at the
// silhouette without explicit clipping geometry.
func drawGraticule(s Surface, cam Camera, vp Viewport, th Theme) {
	for _, line := range graticuleLines() {
		s.BeginPath()
		if line.parallel {
			for lng := -180.0; lng <= 180; lng += graticuleStep {
				traceSample(s, Project(line.value, lng, cam, vp))
			}
		} else {
			for lat := -90.0; lat <= 90; lat += graticuleStep {
				traceSample(s, Project(lat, line.value, cam, vp))
			}
		}
		st := th.Graticule
		if line.major {
			st = th.GraticuleMajor
		}
		s.Stroke(st.Color, st.Width)
	}
}

func traceSample(s Surface, p Point) {
	if p.Visible {
		s.LineTo(p.X, p.Y)
	} else {
		s.MoveTo(p.X, p.Y)
	}
}
