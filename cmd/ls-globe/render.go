package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-globe/internal/export"
	"github.com/litescript/ls-globe/internal/globe"
	"github.com/litescript/ls-globe/internal/raster"
)

// renderOptions are the render command's flags.
type renderOptions struct {
	out         string
	jsonPath    string
	summary     bool
	rotationLng float64
	rotationLat float64
	zoom        float64
	width       int
	height      int
	pixelRatio  float64
}

func newRenderCmd(o *rootOptions) *cobra.Command {
	r := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render one frame to PNG, JSON or a text table",
		Long: `Render a single frame without a display. With no output flags a pin
summary table is printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, o, r)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&r.out, "out", "o", "", "Write a PNG image to this file")
	f.StringVar(&r.jsonPath, "json", "", "Write the frame as JSON to this file (- for stdout)")
	f.BoolVar(&r.summary, "summary", false, "Print a pin summary table")
	f.Float64Var(&r.rotationLng, "rotation-lng", 0, "Camera longitude rotation in degrees")
	f.Float64Var(&r.rotationLat, "rotation-lat", 0, "Camera tilt in degrees")
	f.Float64Var(&r.zoom, "zoom", 1, "Camera zoom")
	f.IntVar(&r.width, "width", 800, "Image width in CSS pixels")
	f.IntVar(&r.height, "height", 600, "Image height in CSS pixels")
	f.Float64Var(&r.pixelRatio, "pixel-ratio", 1, "Device pixels per CSS pixel (max 2)")
	return cmd
}

func runRender(cmd *cobra.Command, o *rootOptions, r *renderOptions) error {
	cfg, err := o.config(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closeLog()

	mgr := newStateManager(cfg)
	if err := loadLocations(cfg, mgr, logger); err != nil {
		return err
	}
	loadLand(cmd.Context(), cfg, mgr, logger)
	snap := mgr.Snapshot()

	canvas := raster.New(r.width, r.height, r.pixelRatio)
	gcfg := globeConfig(cfg, logger.Named("globe"))
	gcfg.Locations = snap.Locations
	gcfg.Camera = globe.Camera{RotationLng: r.rotationLng, RotationLat: r.rotationLat, Zoom: r.zoom}
	g := globe.New(canvas, gcfg)
	g.SetLand(snap.Land)
	g.Tick()

	stdout := cmd.OutOrStdout()
	if r.out != "" {
		if err := writeFile(r.out, canvas.EncodePNG); err != nil {
			return fmt.Errorf("write image: %w", err)
		}
		logger.Info("Wrote %s (%dx%d @%gx)", r.out, r.width, r.height, canvas.PixelRatio())
	}

	frame := export.ExportFrame(g, canvas, cfg.UnknownLocation(), time.Now().UTC())
	if r.jsonPath != "" {
		if r.jsonPath == "-" {
			if err := frame.WriteJSON(stdout); err != nil {
				return fmt.Errorf("write JSON to stdout: %w", err)
			}
		} else if err := writeFile(r.jsonPath, frame.WriteJSON); err != nil {
			return fmt.Errorf("write JSON to file: %w", err)
		}
	}

	if r.summary || (r.out == "" && r.jsonPath == "") {
		export.WriteSummaryTable(stdout, frame)
	}
	return nil
}

// writeFile creates path and fills it with write.
func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
