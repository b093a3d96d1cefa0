package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-globe/internal/globe"
	"github.com/litescript/ls-globe/internal/input"
	"github.com/litescript/ls-globe/internal/locations"
	"github.com/litescript/ls-globe/internal/state"
)

const (
	// nudgeStep is the drag distance, in surface pixels, of one arrow key.
	nudgeStep = 40.0
	// keyZoomDelta is the wheel deltaY of one zoom key.
	keyZoomDelta = 100.0
)

// selection is written by globe callbacks during Update and read by View.
type selection struct {
	hovered  *globe.Location
	selected *globe.Location
}

// GlobeViewModel renders the globe into the terminal and routes mouse and
// key input to it.
type GlobeViewModel struct {
	width   int
	height  int
	originX int
	originY int

	keys     keyMap
	surface  *termSurface
	globe    *globe.Globe
	tracker  *input.Tracker
	sel      *selection
	home     globe.Camera
	unknown  globe.GeoPoint
	revision uint64
	canvas   string
}

// NewGlobeViewModel creates the globe view. Pin callbacks in cfg still run
// after the view records the hover or selection.
func NewGlobeViewModel(cfg globe.Config) GlobeViewModel {
	sel := &selection{}
	onClick, onHover := cfg.OnPinClick, cfg.OnPinHover
	cfg.OnPinClick = func(loc *globe.Location) {
		sel.selected = loc
		if onClick != nil {
			onClick(loc)
		}
	}
	cfg.OnPinHover = func(loc *globe.Location, ev *globe.PointerEvent) {
		sel.hovered = loc
		if onHover != nil {
			onHover(loc, ev)
		}
	}

	surface := newTermSurface(1, 1)
	g := globe.New(surface, cfg)
	return GlobeViewModel{
		keys:    defaultKeyMap(),
		surface: surface,
		globe:   g,
		tracker: input.NewTracker(),
		sel:     sel,
		home:    g.Camera(),
		unknown: g.UnknownLocation(),
	}
}

// SetSize sets the view size in cells.
func (m GlobeViewModel) SetSize(width, height int) GlobeViewModel {
	m.width = max(width, 1)
	m.height = max(height, 1)
	if m.surface.Resize(m.width, m.height) {
		m.globe.Resize()
	}
	return m
}

// SetOrigin sets the screen cell of the view's top-left corner, used to
// map mouse coordinates.
func (m GlobeViewModel) SetOrigin(x, y int) GlobeViewModel {
	m.originX, m.originY = x, y
	return m
}

// UpdateData applies a state snapshot when its revision is new.
func (m GlobeViewModel) UpdateData(snapshot state.Snapshot) GlobeViewModel {
	if snapshot.Revision == m.revision {
		return m
	}
	m.revision = snapshot.Revision
	m.globe.SetLocations(snapshot.Locations)
	m.globe.SetLand(snapshot.Land)

	// Drop a selection that no longer exists.
	if m.sel.selected != nil && !containsLocation(snapshot.Locations, m.sel.selected) {
		m.sel.selected = nil
	}
	m.sel.hovered = nil
	return m
}

func containsLocation(locs []*globe.Location, target *globe.Location) bool {
	for _, l := range locs {
		if l == target {
			return true
		}
	}
	return false
}

// Tick runs one render-loop iteration and caches the frame if one was
// drawn.
func (m GlobeViewModel) Tick() GlobeViewModel {
	if m.globe.Tick() {
		m.canvas = m.surface.Render()
	}
	return m
}

// Update handles key and mouse messages.
func (m GlobeViewModel) Update(msg tea.Msg) (GlobeViewModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Left):
			m.globe.Nudge(-nudgeStep, 0)
		case key.Matches(msg, m.keys.Right):
			m.globe.Nudge(nudgeStep, 0)
		case key.Matches(msg, m.keys.Up):
			m.globe.Nudge(0, -nudgeStep)
		case key.Matches(msg, m.keys.Down):
			m.globe.Nudge(0, nudgeStep)
		case key.Matches(msg, m.keys.ZoomIn):
			m.globe.Wheel(&globe.WheelEvent{DeltaY: -keyZoomDelta})
		case key.Matches(msg, m.keys.ZoomOut):
			m.globe.Wheel(&globe.WheelEvent{DeltaY: keyZoomDelta})
		case key.Matches(msg, m.keys.Reset):
			m.globe.SetCamera(m.home)
		case key.Matches(msg, m.keys.Redraw):
			if m.globe.RedrawPolicy() == globe.RedrawAlways {
				m.globe.SetRedrawPolicy(globe.RedrawOnChange)
			} else {
				m.globe.SetRedrawPolicy(globe.RedrawAlways)
			}
		}

	case tea.MouseMsg:
		m.handleMouse(msg)
	}

	return m, nil
}

// handleMouse converts a terminal mouse event into a pointer sample.
func (m GlobeViewModel) handleMouse(msg tea.MouseMsg) {
	col, row := msg.X-m.originX, msg.Y-m.originY
	x, y := cellToSurface(col, row)
	s := input.Sample{
		X:       x,
		Y:       y,
		Inside:  col >= 0 && col < m.width && row >= 0 && row < m.height,
		Pressed: m.tracker.Pressed(),
	}

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		s.WheelY = 1
	case msg.Button == tea.MouseButtonWheelDown:
		s.WheelY = -1
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		s.Pressed = true
	case msg.Action == tea.MouseActionRelease:
		s.Pressed = false
	}

	m.tracker.Apply(s, m.globe)
}

// View returns the last drawn frame, padded to the view size.
func (m GlobeViewModel) View() string {
	if m.canvas == "" {
		return strings.Repeat("\n", max(m.height-1, 0))
	}
	return m.canvas
}

// Camera returns the globe's camera.
func (m GlobeViewModel) Camera() globe.Camera {
	return m.globe.Camera()
}

// Globe exposes the underlying globe.
func (m GlobeViewModel) Globe() *globe.Globe {
	return m.globe
}

// Hovered returns the pin under the pointer, if any.
func (m GlobeViewModel) Hovered() *globe.Location {
	return m.sel.hovered
}

// Selected returns the last clicked pin, if any.
func (m GlobeViewModel) Selected() *globe.Location {
	return m.sel.selected
}

// renderSelection describes the hovered and selected pins.
func (m GlobeViewModel) renderSelection() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	hoverStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#d0c8ff"))
	selectStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true)

	var parts []string
	if loc := m.sel.hovered; loc != nil {
		parts = append(parts, dimStyle.Render("hover ")+hoverStyle.Render(pinTitle(loc)))
	}
	if loc := m.sel.selected; loc != nil {
		lat, lng := loc.Coordinates(m.unknown)
		detail := fmt.Sprintf("%s · %d people", pinTitle(loc), loc.Count)
		if n := locations.EmployeeCount(loc); n > 0 {
			detail += fmt.Sprintf(" · %d listed", n)
		}
		detail += fmt.Sprintf(" · %.2f, %.2f", lat, lng)
		parts = append(parts, dimStyle.Render("selected ")+selectStyle.Render(detail))
	}
	if len(parts) == 0 {
		return dimStyle.Render("hover or click a pin")
	}
	return strings.Join(parts, dimStyle.Render("  |  "))
}

func pinTitle(loc *globe.Location) string {
	if loc.HasLabel() {
		return loc.Label
	}
	return "(unlabeled)"
}
