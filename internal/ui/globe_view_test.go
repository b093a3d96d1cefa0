package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litescript/ls-globe/internal/globe"
	"github.com/litescript/ls-globe/internal/state"
)

func f64(v float64) *float64 { return &v }

// The test view is 100x40 cells below a two-row header, so the globe
// center (200, 160) sits in cell (49, 19), screen row 21.
const (
	centerCol = 49
	centerRow = 21
)

func testLocations() []*globe.Location {
	return []*globe.Location{
		{Label: "Origin", Lat: f64(0), Lng: f64(0), Count: 10},
	}
}

func newTestView(t *testing.T) GlobeViewModel {
	t.Helper()
	cfg := globe.DefaultConfig()
	cfg.Locations = testLocations()
	m := NewGlobeViewModel(cfg).SetSize(100, 40).SetOrigin(0, headerHeight)
	return m.Tick()
}

func mouse(x, y int, action tea.MouseAction, button tea.MouseButton) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: action, Button: button}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestGlobeView_Hover(t *testing.T) {
	m := newTestView(t)

	m, _ = m.Update(mouse(centerCol, centerRow, tea.MouseActionMotion, tea.MouseButtonNone))
	require.NotNil(t, m.Hovered())
	assert.Equal(t, "Origin", m.Hovered().Label)

	m, _ = m.Update(mouse(5, centerRow, tea.MouseActionMotion, tea.MouseButtonNone))
	assert.Nil(t, m.Hovered())
}

func TestGlobeView_LeaveClearsHover(t *testing.T) {
	m := newTestView(t)

	m, _ = m.Update(mouse(centerCol, centerRow, tea.MouseActionMotion, tea.MouseButtonNone))
	require.NotNil(t, m.Hovered())

	// Row 0 is the header, outside the view.
	m, _ = m.Update(mouse(centerCol, 0, tea.MouseActionMotion, tea.MouseButtonNone))
	assert.Nil(t, m.Hovered())
}

func TestGlobeView_Click(t *testing.T) {
	var clicked []string
	cfg := globe.DefaultConfig()
	cfg.Locations = testLocations()
	cfg.OnPinClick = func(loc *globe.Location) { clicked = append(clicked, loc.Label) }
	m := NewGlobeViewModel(cfg).SetSize(100, 40).SetOrigin(0, headerHeight).Tick()

	m, _ = m.Update(mouse(centerCol, centerRow, tea.MouseActionPress, tea.MouseButtonLeft))
	assert.Equal(t, globe.ModeDragging, m.Globe().Mode())
	m, _ = m.Update(mouse(centerCol, centerRow, tea.MouseActionRelease, tea.MouseButtonLeft))

	assert.Equal(t, globe.ModeIdle, m.Globe().Mode())
	require.NotNil(t, m.Selected())
	assert.Equal(t, "Origin", m.Selected().Label)
	assert.Equal(t, []string{"Origin"}, clicked)
}

func TestGlobeView_Drag(t *testing.T) {
	m := newTestView(t)

	m, _ = m.Update(mouse(centerCol, centerRow, tea.MouseActionPress, tea.MouseButtonLeft))
	m, _ = m.Update(mouse(centerCol+10, centerRow, tea.MouseActionMotion, tea.MouseButtonLeft))
	assert.InDelta(t, 10*cellWidth*globe.DragLngPerPixel, m.Camera().RotationLng, 1e-9)
	assert.Nil(t, m.Hovered(), "no hover while dragging")

	m, _ = m.Update(mouse(centerCol+10, centerRow, tea.MouseActionRelease, tea.MouseButtonLeft))
	assert.Equal(t, globe.ModeIdle, m.Globe().Mode())
}

func TestGlobeView_DragDoesNotResumeAfterLeaving(t *testing.T) {
	m := newTestView(t)

	m, _ = m.Update(mouse(centerCol, centerRow, tea.MouseActionPress, tea.MouseButtonLeft))
	m, _ = m.Update(mouse(centerCol, 0, tea.MouseActionMotion, tea.MouseButtonLeft))
	assert.Equal(t, globe.ModeIdle, m.Globe().Mode())

	m, _ = m.Update(mouse(centerCol+10, centerRow, tea.MouseActionMotion, tea.MouseButtonLeft))
	assert.Equal(t, globe.ModeIdle, m.Globe().Mode())
	assert.Zero(t, m.Camera().RotationLng)

	m, _ = m.Update(mouse(centerCol+10, centerRow, tea.MouseActionRelease, tea.MouseButtonLeft))
	m, _ = m.Update(mouse(centerCol, centerRow, tea.MouseActionPress, tea.MouseButtonLeft))
	assert.Equal(t, globe.ModeDragging, m.Globe().Mode(), "a fresh press drags again")
}

func TestGlobeView_Wheel(t *testing.T) {
	m := newTestView(t)

	m, _ = m.Update(mouse(centerCol, centerRow, tea.MouseActionPress, tea.MouseButtonWheelUp))
	assert.InDelta(t, 1.2, m.Camera().Zoom, 1e-9)
	m, _ = m.Update(mouse(centerCol, centerRow, tea.MouseActionPress, tea.MouseButtonWheelDown))
	m, _ = m.Update(mouse(centerCol, centerRow, tea.MouseActionPress, tea.MouseButtonWheelDown))
	assert.InDelta(t, 0.8, m.Camera().Zoom, 1e-9)

	// Outside the view the wheel does nothing.
	m, _ = m.Update(mouse(centerCol, 0, tea.MouseActionPress, tea.MouseButtonWheelUp))
	assert.InDelta(t, 0.8, m.Camera().Zoom, 1e-9)
}

func TestGlobeView_Keys(t *testing.T) {
	m := newTestView(t)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.InDelta(t, nudgeStep*globe.DragLngPerPixel, m.Camera().RotationLng, 1e-9)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.InDelta(t, -nudgeStep*globe.DragLatPerPixel, m.Camera().RotationLat, 1e-9)

	m, _ = m.Update(runes("+"))
	assert.InDelta(t, 1.2, m.Camera().Zoom, 1e-9)
	m, _ = m.Update(runes("-"))
	m, _ = m.Update(runes("-"))
	assert.InDelta(t, 0.8, m.Camera().Zoom, 1e-9)

	m, _ = m.Update(runes("0"))
	assert.Equal(t, globe.DefaultCamera(), m.Camera())

	m, _ = m.Update(runes("r"))
	assert.Equal(t, globe.RedrawOnChange, m.Globe().RedrawPolicy())
	m, _ = m.Update(runes("r"))
	assert.Equal(t, globe.RedrawAlways, m.Globe().RedrawPolicy())
}

func TestGlobeView_UpdateData(t *testing.T) {
	m := newTestView(t)
	origin := m.Globe().Locations()[0]

	m, _ = m.Update(mouse(centerCol, centerRow, tea.MouseActionPress, tea.MouseButtonLeft))
	m, _ = m.Update(mouse(centerCol, centerRow, tea.MouseActionRelease, tea.MouseButtonLeft))
	require.Equal(t, origin, m.Selected())

	kept := []*globe.Location{origin, {Label: "Tokyo", Lat: f64(35.7), Lng: f64(139.7), Count: 4}}
	m = m.UpdateData(state.Snapshot{Revision: 1, Locations: kept, Land: globe.UnavailableLand()})
	assert.Len(t, m.Globe().Locations(), 2)
	assert.Equal(t, globe.LandUnavailable, m.Globe().Land().Status)
	assert.Equal(t, origin, m.Selected())

	// Same revision is ignored.
	m = m.UpdateData(state.Snapshot{Revision: 1})
	assert.Len(t, m.Globe().Locations(), 2)

	m = m.UpdateData(state.Snapshot{Revision: 2, Locations: kept[1:]})
	assert.Nil(t, m.Selected())
}

func TestGlobeView_View(t *testing.T) {
	cfg := globe.DefaultConfig()
	m := NewGlobeViewModel(cfg).SetSize(30, 10)
	assert.Equal(t, 9, strings.Count(m.View(), "\n"), "blank before the first frame")

	m = m.Tick()
	view := m.View()
	assert.Equal(t, 9, strings.Count(view, "\n"))
	assert.Contains(t, view, "▀")
}

func TestModel_LayoutAndQuit(t *testing.T) {
	mgr := state.NewManager(state.DefaultConfig())
	m := New(mgr, globe.DefaultConfig(), 0)
	assert.Equal(t, "Initializing...", m.View())

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	m = updated.(Model)
	assert.Equal(t, 30-headerHeight-m.footerHeight(), m.globeView.height)
	assert.Equal(t, 80, m.globeView.width)

	updated, _ = m.Update(FrameTickMsg{})
	m = updated.(Model)
	view := m.View()
	assert.Contains(t, view, "ls-globe")
	assert.Contains(t, view, "Loading locations")
	assert.Equal(t, 30, strings.Count(view, "\n")+1)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_DataAndErrors(t *testing.T) {
	mgr := state.NewManager(state.DefaultConfig())
	mgr.UpdateLocations(testLocations(), 0, nil)
	mgr.SetLand(globe.LoadedLand(nil))
	m := New(mgr, globe.DefaultConfig(), 0)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	m = updated.(Model)
	updated, _ = m.Update(DataUpdateMsg{Snapshot: mgr.Snapshot()})
	m = updated.(Model)
	assert.Len(t, m.globeView.Globe().Locations(), 1)
	assert.Contains(t, m.View(), "1 locations · 10 people")
	assert.Contains(t, m.View(), "land_loaded (0 rings)")

	updated, _ = m.Update(ErrorMsg{Error: errors.New("boom")})
	m = updated.(Model)
	assert.Contains(t, m.View(), "boom")
}

func TestModel_SpinnerStopsAfterLoad(t *testing.T) {
	mgr := state.NewManager(state.DefaultConfig())
	m := New(mgr, globe.DefaultConfig(), 0)

	_, cmd := m.Update(m.spinner.Tick())
	assert.NotNil(t, cmd, "spinner ticks while loading")

	mgr.UpdateLocations(testLocations(), 0, nil)
	_, cmd = m.Update(m.spinner.Tick())
	assert.Nil(t, cmd)
}

func TestModel_HelpToggleResizesGlobe(t *testing.T) {
	m := New(nil, globe.DefaultConfig(), 0)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = updated.(Model)
	short := m.globeView.height

	updated, _ = m.Update(runes("?"))
	m = updated.(Model)
	assert.True(t, m.help.ShowAll)
	assert.Less(t, m.globeView.height, short)
}

func TestZoomFraction(t *testing.T) {
	tests := []struct {
		zoom, want float64
	}{
		{globe.MinZoom, 0},
		{globe.MaxZoom, 1},
		{0.01, 0},
		{100, 1},
	}
	for _, tt := range tests {
		if got := zoomFraction(tt.zoom); got < tt.want-1e-9 || got > tt.want+1e-9 {
			t.Errorf("zoomFraction(%v) = %v, want %v", tt.zoom, got, tt.want)
		}
	}
}
