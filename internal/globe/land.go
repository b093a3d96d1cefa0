package globe

import "math"

// Ring is one closed polygon boundary as [longitude, latitude] vertices.
type Ring [][2]float64

// minRingVertices is the smallest ring that encloses an area.
const minRingVertices = 3

// LandStatus tags where the land geometry stands.
type LandStatus int

const (
	LandUnloaded    LandStatus = iota // nothing requested yet
	LandLoading                       // acquisition in flight
	LandLoaded                        // rings from the configured source
	LandFailed                        // source failed; rings are the embedded fallback
	LandUnavailable                   // confirmed that no land data is coming
)

func (s LandStatus) String() string {
	switch s {
	case LandUnloaded:
		return "unloaded"
	case LandLoading:
		return "loading"
	case LandLoaded:
		return "loaded"
	case LandFailed:
		return "fallback"
	case LandUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// LandState is the tagged land geometry handed to the rasterizer.
type LandState struct {
	Status LandStatus
	Rings  []Ring
}

// UnloadedLand is the initial state: draw a blank globe.
func UnloadedLand() LandState { return LandState{Status: LandUnloaded} }

// LoadingLand marks acquisition in flight: draw a blank globe.
func LoadingLand() LandState { return LandState{Status: LandLoading} }

// LoadedLand carries rings from the land source.
func LoadedLand(rings []Ring) LandState { return LandState{Status: LandLoaded, Rings: rings} }

// FailedLand carries the fallback rings used after the source failed.
func FailedLand(fallback []Ring) LandState { return LandState{Status: LandFailed, Rings: fallback} }

// UnavailableLand confirms no land data will arrive.
func UnavailableLand() LandState { return LandState{Status: LandUnavailable} }

type landMode int

const (
	landNone landMode = iota
	landRings
	landBlobs
)

// mode decides what the rasterizer draws. Any terminal state without
// rings falls back to the continent blobs; transient states draw nothing.
func (l LandState) mode() landMode {
	switch l.Status {
	case LandUnloaded, LandLoading:
		return landNone
	case LandLoaded, LandFailed:
		if len(l.Rings) > 0 {
			return landRings
		}
		return landBlobs
	default:
		return landBlobs
	}
}

// continentBlob is an ellipse around an approximate continent centroid.
type continentBlob struct {
	lat, lng       float64
	radLat, radLng float64
}

var continentBlobs = []continentBlob{
	{50, -100, 28, 22},
	{-15, -58, 20, 16},
	{52, 12, 14, 10},
	{2, 22, 20, 18},
	{45, 100, 25, 22},
	{-22, 132, 14, 12},
	{65, -20, 8, 6},
}

const blobSegments = 36

func drawLand(s Surface, cam Camera, vp Viewport, th Theme, land LandState) {
	switch land.mode() {
	case landRings:
		for _, ring := range land.Rings {
			drawRing(s, cam, vp, th, ring)
		}
	case landBlobs:
		for _, b := range continentBlobs {
			drawBlob(s, cam, vp, th, b)
		}
	}
}

// drawRing fills one ring. Hidden vertices end the current sub-path so the
// fill never spans the far side of the sphere.
func drawRing(s Surface, cam Camera, vp Viewport, th Theme, ring Ring) {
	if len(ring) < minRingVertices {
		return
	}
	s.BeginPath()
	started := false
	for _, v := range ring {
		p := Project(v[1], v[0], cam, vp)
		switch {
		case !p.Visible:
			started = false
		case !started:
			s.MoveTo(p.X, p.Y)
			started = true
		default:
			s.LineTo(p.X, p.Y)
		}
	}
	s.ClosePath()
	s.Fill(th.LandFill)
	s.Stroke(th.LandStroke.Color, th.LandStroke.Width)
}

func drawBlob(s Surface, cam Camera, vp Viewport, th Theme, b continentBlob) {
	if !Project(b.lat, b.lng, cam, vp).Visible {
		return
	}
	s.BeginPath()
	for t := 0; t <= blobSegments; t++ {
		a := float64(t) / blobSegments * 2 * math.Pi
		p := Project(b.lat+b.radLat*math.Sin(a), b.lng+b.radLng*math.Cos(a), cam, vp)
		if t == 0 {
			s.MoveTo(p.X, p.Y)
		} else {
			s.LineTo(p.X, p.Y)
		}
	}
	s.ClosePath()
	s.Fill(th.BlobFill)
	s.Stroke(th.BlobStroke.Color, th.BlobStroke.Width)
}
