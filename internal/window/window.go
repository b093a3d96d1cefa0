// Package window shows the globe in a desktop window using Ebitengine.
package window

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/litescript/ls-globe/internal/globe"
	"github.com/litescript/ls-globe/internal/input"
	"github.com/litescript/ls-globe/internal/logging"
	"github.com/litescript/ls-globe/internal/raster"
	"github.com/litescript/ls-globe/internal/state"
)

// Keyboard steps per tick.
const (
	keyNudge     = 4.0
	keyZoomDelta = 100.0
)

// Options configures the window.
type Options struct {
	Title  string
	Width  int // CSS pixels
	Height int
	TPS    int
}

// DefaultOptions returns a 960x720 window at 60 ticks per second.
func DefaultOptions() Options {
	return Options{
		Title:  "ls-globe",
		Width:  960,
		Height: 720,
		TPS:    60,
	}
}

// Game adapts a globe to ebiten.Game. The canvas is sized in CSS pixels
// and backed at the monitor's device scale factor.
type Game struct {
	title   string
	state   *state.Manager
	log     *logging.Logger
	canvas  *raster.Canvas
	globe   *globe.Globe
	tracker *input.Tracker
	home    globe.Camera

	texture  *ebiten.Image
	revision uint64
	hovered  *globe.Location
	shown    *globe.Location
}

// NewGame creates a game that follows mgr. mgr may be nil when cfg already
// carries the locations.
func NewGame(mgr *state.Manager, cfg globe.Config, opts Options, log *logging.Logger) *Game {
	if log == nil {
		log = logging.Discard()
	}
	g := &Game{
		title:   opts.Title,
		state:   mgr,
		log:     log,
		canvas:  raster.New(opts.Width, opts.Height, 1),
		tracker: input.NewTracker(),
	}

	onHover, onClick := cfg.OnPinHover, cfg.OnPinClick
	cfg.OnPinHover = func(loc *globe.Location, ev *globe.PointerEvent) {
		g.hovered = loc
		if onHover != nil {
			onHover(loc, ev)
		}
	}
	cfg.OnPinClick = func(loc *globe.Location) {
		g.log.Info("selected %s (%d)", loc.Label, loc.Count)
		if onClick != nil {
			onClick(loc)
		}
	}
	cfg.Logger = log
	g.globe = globe.New(g.canvas, cfg)
	g.home = g.globe.Camera()
	return g
}

// Globe returns the globe being shown.
func (g *Game) Globe() *globe.Globe {
	return g.globe
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	g.sync()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	g.handleKeys()

	x, y := ebiten.CursorPosition()
	_, wheel := ebiten.Wheel()
	g.tracker.Apply(g.sample(x, y, ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft), wheel), g.globe)

	if g.hovered != g.shown {
		g.shown = g.hovered
		ebiten.SetWindowTitle(g.windowTitle())
	}
	return nil
}

func (g *Game) handleKeys() {
	switch {
	case ebiten.IsKeyPressed(ebiten.KeyArrowLeft):
		g.globe.Nudge(-keyNudge, 0)
	case ebiten.IsKeyPressed(ebiten.KeyArrowRight):
		g.globe.Nudge(keyNudge, 0)
	}
	switch {
	case ebiten.IsKeyPressed(ebiten.KeyArrowUp):
		g.globe.Nudge(0, -keyNudge)
	case ebiten.IsKeyPressed(ebiten.KeyArrowDown):
		g.globe.Nudge(0, keyNudge)
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual), inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd):
		g.globe.Wheel(&globe.WheelEvent{DeltaY: -keyZoomDelta})
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus), inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract):
		g.globe.Wheel(&globe.WheelEvent{DeltaY: keyZoomDelta})
	case inpututil.IsKeyJustPressed(ebiten.KeyDigit0):
		g.globe.SetCamera(g.home)
	}
}

// Draw implements ebiten.Game. The texture is only re-uploaded when the
// globe drew a new frame.
func (g *Game) Draw(screen *ebiten.Image) {
	drew := g.globe.Tick()

	dw, dh := g.canvas.DeviceSize()
	if g.texture == nil || g.texture.Bounds().Dx() != dw || g.texture.Bounds().Dy() != dh {
		if g.texture != nil {
			g.texture.Deallocate()
		}
		g.texture = ebiten.NewImage(dw, dh)
		drew = true
	}
	if drew {
		g.texture.WritePixels(g.canvas.Image().Pix)
	}
	screen.DrawImage(g.texture, nil)
}

// Layout implements ebiten.Game. The screen is laid out in device pixels.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.resize(outsideWidth, outsideHeight, ebiten.Monitor().DeviceScaleFactor())
	return g.canvas.DeviceSize()
}

// resize applies a window size in CSS pixels.
func (g *Game) resize(width, height int, ratio float64) {
	cw, ch := g.canvas.Size()
	ratio = globe.ClampPixelRatio(ratio)
	if int(cw) == width && int(ch) == height && g.canvas.PixelRatio() == ratio {
		return
	}
	g.canvas.Resize(width, height, ratio)
	if g.globe.Resize() {
		g.log.Debug("window %dx%d @%.2gx", width, height, ratio)
	}
}

// sync pulls a new state snapshot into the globe.
func (g *Game) sync() {
	if g.state == nil {
		return
	}
	if g.state.Revision() == g.revision {
		return
	}
	snap := g.state.Snapshot()
	g.revision = snap.Revision
	g.globe.SetLocations(snap.Locations)
	g.globe.SetLand(snap.Land)
	g.hovered = nil
}

// sample converts a cursor position in device pixels to a pointer sample.
func (g *Game) sample(x, y int, pressed bool, wheel float64) input.Sample {
	ratio := g.canvas.PixelRatio()
	cx, cy := float64(x)/ratio, float64(y)/ratio
	w, h := g.canvas.Size()
	return input.Sample{
		X:       cx,
		Y:       cy,
		Inside:  cx >= 0 && cy >= 0 && cx < w && cy < h,
		Pressed: pressed,
		WheelY:  wheel,
	}
}

func (g *Game) windowTitle() string {
	if g.shown == nil {
		return g.title
	}
	return fmt.Sprintf("%s · %s (%d)", g.title, g.shown.Label, g.shown.Count)
}

// Run opens the window and blocks until it is closed.
func Run(g *Game, opts Options) error {
	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowSize(opts.Width, opts.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if opts.TPS > 0 {
		ebiten.SetTPS(opts.TPS)
	}
	g.log.Info("opening %dx%d window", opts.Width, opts.Height)
	return ebiten.RunGame(g)
}
