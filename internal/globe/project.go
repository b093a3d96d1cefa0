package globe

import "math"

// visibilityMargin lets geometry slightly behind the silhouette still
// render so arcs meet the rim without seams.
const visibilityMargin = -0.08

// Point is a projected screen position.
type Point struct {
	X       float64
	Y       float64
	Visible bool
}

// Project maps a geographic coordinate to screen space using an
// orthographic sphere projection: longitude rotation first, then a tilt
// about the horizontal screen axis.
func Project(lat, lng float64, cam Camera, vp Viewport) Point {
	phi := degToRad(90 - lat)
	theta := degToRad(lng + cam.RotationLng)
	r := vp.EffectiveRadius(cam.Zoom)

	x := math.Sin(phi) * math.Sin(theta)
	y := math.Cos(phi)
	z := math.Sin(phi) * math.Cos(theta)

	tilt := degToRad(cam.RotationLat)
	y2 := y*math.Cos(tilt) - z*math.Sin(tilt)
	z2 := y*math.Sin(tilt) + z*math.Cos(tilt)

	return Point{
		X:       vp.CenterX + r*x,
		Y:       vp.CenterY - r*y2,
		Visible: z2 > visibilityMargin,
	}
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}
