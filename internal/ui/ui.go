// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-globe/internal/globe"
	"github.com/litescript/ls-globe/internal/locations"
	"github.com/litescript/ls-globe/internal/state"
	"github.com/litescript/ls-globe/internal/version"
)

// Layout, in terminal rows.
const (
	headerHeight = 2
	// statusHeight covers the load status and selection lines.
	statusHeight = 2

	zoomBarWidth     = 12
	defaultFrameTime = time.Second / 30
	footerEvents     = 2
)

// Msg types for Bubble Tea
type (
	// FrameTickMsg drives the globe render loop.
	FrameTickMsg time.Time

	// DataUpdateMsg signals new location or land data is available.
	DataUpdateMsg struct {
		Snapshot state.Snapshot
	}

	// ErrorMsg signals a load error.
	ErrorMsg struct {
		Error error
	}
)

// Model is the root Bubble Tea model.
type Model struct {
	// Dependencies
	state *state.Manager

	// UI state
	width         int
	height        int
	ready         bool
	frameInterval time.Duration
	statusMsg     string
	snapshot      state.Snapshot

	// Sub-models
	globeView GlobeViewModel
	keys      keyMap
	help      help.Model
	spinner   spinner.Model
	zoomBar   progress.Model
}

// New creates a new root UI model. frameInterval <= 0 uses 30 fps.
func New(stateMgr *state.Manager, cfg globe.Config, frameInterval time.Duration) Model {
	if frameInterval <= 0 {
		frameInterval = defaultFrameTime
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#7B2CBF"))

	return Model{
		state:         stateMgr,
		frameInterval: frameInterval,
		globeView:     NewGlobeViewModel(cfg),
		keys:          defaultKeyMap(),
		help:          help.New(),
		spinner:       s,
		zoomBar: progress.New(
			progress.WithDefaultGradient(),
			progress.WithWidth(zoomBarWidth),
			progress.WithoutPercentage(),
		),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{frameTickCmd(m.frameInterval), m.spinner.Tick}
	if m.state != nil {
		cmds = append(cmds, SendDataUpdate(m.state.Snapshot()))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			m = m.layout()
		default:
			var cmd tea.Cmd
			m.globeView, cmd = m.globeView.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.globeView, cmd = m.globeView.Update(msg)
		cmds = append(cmds, cmd)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.help.Width = msg.Width
		m = m.layout()

	case FrameTickMsg:
		m.globeView = m.globeView.Tick()
		cmds = append(cmds, frameTickCmd(m.frameInterval))

	case DataUpdateMsg:
		m.snapshot = msg.Snapshot
		m.globeView = m.globeView.UpdateData(msg.Snapshot)
		m.statusMsg = ""

	case ErrorMsg:
		m.statusMsg = fmt.Sprintf("Error: %v", msg.Error)

	case spinner.TickMsg:
		// The spinner stops once locations have loaded.
		if m.loading() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

// layout sizes the globe view to the space between header and footer.
func (m Model) layout() Model {
	contentHeight := m.height - headerHeight - m.footerHeight()
	if contentHeight < 1 {
		contentHeight = 1
	}
	m.globeView = m.globeView.SetSize(m.width, contentHeight).SetOrigin(0, headerHeight)
	return m
}

// loading reports whether no location load has succeeded yet.
func (m Model) loading() bool {
	return m.state == nil || !m.state.HasData()
}

// recentEvents returns the newest state changes, oldest first.
func (m Model) recentEvents() []state.Event {
	if m.state == nil {
		return nil
	}
	return m.state.RecentEvents(footerEvents)
}

func (m Model) footerHeight() int {
	return statusHeight + lipgloss.Height(m.help.View(m.keys))
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	return m.renderHeader() + "\n" + m.globeView.View() + "\n" + m.renderFooter()
}

func (m Model) renderHeader() string {
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))

	title := accentStyle.Render("◍ ls-globe") + dimStyle.Render(" v"+version.Version)

	locs := m.snapshot.Locations
	stats := fmt.Sprintf("%d locations · %d people · land %s",
		locations.Rendered(locs), locations.Total(locs), m.snapshot.Land.Status)

	cam := m.globeView.Camera()
	view := fmt.Sprintf("%+.0f° %+.0f° ", cam.Heading(), cam.RotationLat) +
		m.zoomBar.ViewAs(zoomFraction(cam.Zoom)) +
		fmt.Sprintf(" %.1fx · %s", cam.Zoom, m.globeView.Globe().RedrawPolicy())

	line := "  " + title + "  " + dimStyle.Render(stats) + "  " + dimStyle.Render("|") + "  " + dimStyle.Render(view)
	rule := dimStyle.Render("  " + strings.Repeat("─", max(m.width-4, 0)))
	return line + "\n" + rule
}

func (m Model) renderFooter() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27"))

	var status string
	switch {
	case m.statusMsg != "":
		status = errorStyle.Render(m.statusMsg)
	case m.snapshot.LastError != nil:
		status = errorStyle.Render("ERROR: " + m.snapshot.LastError.Error())
	case !m.snapshot.LastLoad.IsZero():
		status = dimStyle.Render(fmt.Sprintf("loaded %s", m.snapshot.LastLoad.Format("15:04:05")))
		if m.snapshot.LoadDuration > 0 {
			status += dimStyle.Render(" (" + m.snapshot.LoadDuration.Round(time.Millisecond).String() + ")")
		}
		for _, e := range m.recentEvents() {
			status += dimStyle.Render("  |  ") + renderEvent(e)
		}
	default:
		status = m.spinner.View() + " " + dimStyle.Render("Loading locations...")
	}

	return "  " + status + "\n  " + m.globeView.renderSelection() + "\n" + m.help.View(m.keys)
}

// renderEvent formats one state change.
func renderEvent(e state.Event) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("#7B2CBF"))
	switch e.Type {
	case state.EventCountChanged:
		return style.Render(fmt.Sprintf("%s %d→%d", e.Location, e.OldCount, e.NewCount))
	case state.EventLocationAdded:
		return style.Render("+ " + e.Location)
	case state.EventLocationRemoved:
		return style.Render("- " + e.Location)
	case state.EventLandLoaded, state.EventLandFallback:
		return style.Render(fmt.Sprintf("%s (%d rings)", strings.ToLower(string(e.Type)), e.NewCount))
	default:
		return style.Render(strings.ToLower(string(e.Type)))
	}
}

// zoomFraction places zoom on a log scale between the camera limits.
func zoomFraction(zoom float64) float64 {
	lo, hi := math.Log(globe.MinZoom), math.Log(globe.MaxZoom)
	f := (math.Log(zoom) - lo) / (hi - lo)
	return math.Max(0, math.Min(1, f))
}

// GlobeView returns the globe sub-model.
func (m Model) GlobeView() GlobeViewModel {
	return m.globeView
}

func frameTickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return FrameTickMsg(t)
	})
}

// SendDataUpdate creates a command that sends a data update message.
func SendDataUpdate(snapshot state.Snapshot) tea.Cmd {
	return func() tea.Msg {
		return DataUpdateMsg{Snapshot: snapshot}
	}
}
