package globe

import (
	"bytes"
	"strings"
	"testing"

	"github.com/litescript/ls-globe/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGlobe(cfg Config) (*Globe, *recordingSurface) {
	s := newRecordingSurface(800, 600)
	return New(s, cfg), s
}

func TestGlobe_ClickAndHoverEndToEnd(t *testing.T) {
	origin := &Location{Label: "Origin", Lat: ptr(0), Lng: ptr(0), Count: 40}
	var clicked *Location
	var hovered []*Location

	cfg := DefaultConfig()
	cfg.Locations = []*Location{origin}
	cfg.OnPinClick = func(loc *Location) { clicked = loc }
	cfg.OnPinHover = func(loc *Location, _ *PointerEvent) { hovered = append(hovered, loc) }
	g, _ := newTestGlobe(cfg)

	// No frame yet: nothing to hit.
	g.Click(PointerEvent{X: 400, Y: 300})
	assert.Nil(t, clicked)

	require.True(t, g.Tick())
	g.PointerMove(PointerEvent{X: 402, Y: 301})
	g.Click(PointerEvent{X: 402, Y: 301})
	assert.Same(t, origin, clicked)
	require.Len(t, hovered, 1)
	assert.Same(t, origin, hovered[0])

	// Rotating away hides the pin after the next frame.
	g.SetCamera(Camera{RotationLng: 180, Zoom: 1})
	g.Tick()
	assert.Nil(t, g.HitTest(400, 300))
}

func TestGlobe_Defaults(t *testing.T) {
	g, _ := newTestGlobe(Config{})
	assert.Equal(t, DefaultUnknownLocation, g.UnknownLocation())
	assert.Equal(t, DefaultCamera(), g.Camera())
	assert.Equal(t, LandUnloaded, g.Land().Status)
	assert.Equal(t, RedrawAlways, g.RedrawPolicy())
	assert.Nil(t, g.Frame())

	// A zero Config still resolves the unknown default.
	g.SetLocations([]*Location{{Label: "nowhere", Count: 1}})
	g.SetCamera(Camera{RotationLng: 157.8583, Zoom: 1})
	g.Tick()
	require.Equal(t, 1, g.Frame().Len())
	assert.InDelta(t, 400, g.Frame().At(0).X, 1e-6)
}

func TestGlobe_ExplicitZeroUnknownLocation(t *testing.T) {
	g, _ := newTestGlobe(Config{UnknownLocation: &GeoPoint{}})
	assert.Equal(t, GeoPoint{}, g.UnknownLocation())

	g.SetLocations([]*Location{{Label: "nowhere", Count: 1}})
	g.SetCamera(Camera{Zoom: 1})
	g.Tick()
	require.Equal(t, 1, g.Frame().Len())
	assert.InDelta(t, 400, g.Frame().At(0).X, 1e-6)
	assert.InDelta(t, 300, g.Frame().At(0).Y, 1e-6)
}

func TestGlobe_WheelAndDragClamps(t *testing.T) {
	g, _ := newTestGlobe(DefaultConfig())

	ev := &WheelEvent{DeltaY: -100000}
	g.Wheel(ev)
	assert.True(t, ev.DefaultPrevented())
	assert.Equal(t, MaxZoom, g.Camera().Zoom)

	g.Wheel(&WheelEvent{DeltaY: 100000})
	assert.Equal(t, MinZoom, g.Camera().Zoom)

	g.PointerDown(PointerEvent{X: 0, Y: 0})
	assert.Equal(t, ModeDragging, g.Mode())
	g.PointerMove(PointerEvent{X: 0, Y: 100000})
	assert.Equal(t, MaxTilt, g.Camera().RotationLat)
	g.PointerUp(PointerEvent{})
	assert.Equal(t, ModeIdle, g.Mode())

	g.SetCamera(Camera{RotationLat: -500, Zoom: 500})
	assert.Equal(t, Camera{RotationLat: MinTilt, Zoom: MaxZoom}, g.Camera())
}

func TestGlobe_DirtyTracking(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Redraw = RedrawOnChange
	g, s := newTestGlobe(cfg)

	assert.True(t, g.Tick())
	assert.False(t, g.Tick())

	mutations := []struct {
		name string
		fn   func()
	}{
		{"camera", func() { g.SetCamera(Camera{RotationLng: 10, Zoom: 1}) }},
		{"wheel", func() { g.Wheel(&WheelEvent{DeltaY: 10}) }},
		{"drag", func() {
			g.PointerDown(PointerEvent{})
			g.PointerMove(PointerEvent{X: 5})
			g.PointerUp(PointerEvent{})
		}},
		{"nudge", func() { g.Nudge(1, 0) }},
		{"locations", func() { g.SetLocations(nil) }},
		{"land", func() { g.SetLand(UnavailableLand()) }},
		{"resize", func() { s.width = 1024 }},
		{"policy", func() { g.SetRedrawPolicy(RedrawOnChange) }},
	}

	for _, m := range mutations {
		m.fn()
		assert.True(t, g.Tick(), m.name)
		assert.False(t, g.Tick(), m.name)
	}

	// Hover and clicks are not camera changes.
	g.PointerMove(PointerEvent{X: 1, Y: 1})
	g.Click(PointerEvent{X: 1, Y: 1})
	assert.False(t, g.Dirty())
}

func TestGlobe_LogsLandChanges(t *testing.T) {
	var buf bytes.Buffer
	log := logging.New(logging.LevelDebug)
	log.SetOutput(&buf)

	cfg := DefaultConfig()
	cfg.Logger = log.Named("globe")
	g, _ := newTestGlobe(cfg)
	g.SetLand(FailedLand([]Ring{{{0, 0}, {1, 0}, {1, 1}}}))

	assert.True(t, strings.Contains(buf.String(), "globe: land state fallback: 1 rings"), buf.String())
	assert.Equal(t, LandFailed, g.Land().Status)
}
