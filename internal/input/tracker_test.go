package input

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/litescript/ls-globe/internal/globe"
	"github.com/litescript/ls-globe/internal/raster"
)

type recordingTarget struct {
	events []string
	wheels []*globe.WheelEvent
}

func (r *recordingTarget) add(name string, ev globe.PointerEvent) {
	r.events = append(r.events, fmt.Sprintf("%s(%g,%g)", name, ev.X, ev.Y))
}

func (r *recordingTarget) PointerDown(ev globe.PointerEvent) { r.add("down", ev) }
func (r *recordingTarget) PointerMove(ev globe.PointerEvent) { r.add("move", ev) }
func (r *recordingTarget) PointerUp(ev globe.PointerEvent)   { r.add("up", ev) }
func (r *recordingTarget) Click(ev globe.PointerEvent)       { r.add("click", ev) }
func (r *recordingTarget) PointerLeave()                     { r.events = append(r.events, "leave") }
func (r *recordingTarget) Wheel(ev *globe.WheelEvent) {
	r.wheels = append(r.wheels, ev)
	r.events = append(r.events, fmt.Sprintf("wheel(%g)", ev.DeltaY))
}

func TestTracker_Sequences(t *testing.T) {
	tests := []struct {
		name    string
		samples []Sample
		want    []string
	}{
		{
			name:    "first sample inside moves",
			samples: []Sample{{X: 1, Y: 2, Inside: true}},
			want:    []string{"move(1,2)"},
		},
		{
			name:    "stationary pointer is quiet",
			samples: []Sample{{X: 1, Y: 2, Inside: true}, {X: 1, Y: 2, Inside: true}},
			want:    []string{"move(1,2)"},
		},
		{
			name: "press drag release",
			samples: []Sample{
				{X: 10, Y: 10, Inside: true},
				{X: 10, Y: 10, Inside: true, Pressed: true},
				{X: 20, Y: 15, Inside: true, Pressed: true},
				{X: 20, Y: 15, Inside: true},
			},
			want: []string{"move(10,10)", "down(10,10)", "move(20,15)", "up(20,15)", "click(20,15)"},
		},
		{
			name: "leave ends drag",
			samples: []Sample{
				{X: 10, Y: 10, Inside: true, Pressed: true},
				{X: -5, Y: 10, Inside: false, Pressed: true},
				{X: -5, Y: 10, Inside: false},
				{X: 5, Y: 10, Inside: true},
			},
			want: []string{"move(10,10)", "down(10,10)", "leave", "move(5,10)"},
		},
		{
			name: "re-entering with button held does not drag",
			samples: []Sample{
				{X: 10, Y: 10, Inside: true, Pressed: true},
				{X: -5, Y: 10, Inside: false, Pressed: true},
				{X: 5, Y: 10, Inside: true, Pressed: true},
				{X: 8, Y: 10, Inside: true, Pressed: true},
				{X: 8, Y: 10, Inside: true},
				{X: 8, Y: 10, Inside: true, Pressed: true},
			},
			want: []string{
				"move(10,10)", "down(10,10)", "leave",
				"move(5,10)", "move(8,10)", "up(8,10)", "click(8,10)",
				"down(8,10)",
			},
		},
		{
			name: "press outside then enter",
			samples: []Sample{
				{X: -5, Y: 10, Inside: false, Pressed: true},
				{X: 5, Y: 10, Inside: true, Pressed: true},
				{X: 5, Y: 10, Inside: true},
			},
			want: []string{"move(5,10)", "up(5,10)"},
		},
		{
			name:    "starting outside is quiet",
			samples: []Sample{{Inside: false}, {Inside: false}},
			want:    nil,
		},
		{
			name: "wheel",
			samples: []Sample{
				{X: 3, Y: 3, Inside: true, WheelY: 1},
				{X: 3, Y: 3, Inside: true, WheelY: -0.5},
			},
			want: []string{"move(3,3)", "wheel(-100)", "wheel(50)"},
		},
		{
			name:    "wheel outside ignored",
			samples: []Sample{{Inside: false, WheelY: 1}},
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTracker()
			rec := &recordingTarget{}
			for _, s := range tt.samples {
				tr.Apply(s, rec)
			}
			assert.Equal(t, tt.want, rec.events)
		})
	}
}

func TestTracker_DrivesGlobe(t *testing.T) {
	g := globe.New(raster.New(400, 300, 1), globe.DefaultConfig())
	tr := NewTracker()

	tr.Apply(Sample{X: 100, Y: 100, Inside: true, Pressed: true}, g)
	assert.Equal(t, globe.ModeDragging, g.Mode())
	tr.Apply(Sample{X: 200, Y: 100, Inside: true, Pressed: true}, g)
	assert.InDelta(t, 22, g.Camera().RotationLng, 1e-9)
	tr.Apply(Sample{X: 200, Y: 100, Inside: true}, g)
	assert.Equal(t, globe.ModeIdle, g.Mode())

	tr.Apply(Sample{X: 200, Y: 100, Inside: true, WheelY: 1}, g)
	assert.InDelta(t, 1.2, g.Camera().Zoom, 1e-9)
}

func TestTracker_HeldReentryLeavesCameraAlone(t *testing.T) {
	g := globe.New(raster.New(400, 300, 1), globe.DefaultConfig())
	tr := NewTracker()

	tr.Apply(Sample{X: 100, Y: 100, Inside: true, Pressed: true}, g)
	tr.Apply(Sample{X: -1, Y: 100, Pressed: true}, g)
	assert.True(t, tr.Pressed())
	tr.Apply(Sample{X: 50, Y: 100, Inside: true, Pressed: true}, g)
	tr.Apply(Sample{X: 150, Y: 100, Inside: true, Pressed: true}, g)

	assert.Equal(t, globe.ModeIdle, g.Mode())
	assert.Zero(t, g.Camera().RotationLng)

	tr.Apply(Sample{X: 150, Y: 100, Inside: true}, g)
	assert.False(t, tr.Pressed())
}
