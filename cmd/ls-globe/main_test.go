package main

import (
	"bytes"
	"encoding/json"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litescript/ls-globe/internal/config"
	"github.com/litescript/ls-globe/internal/globe"
	"github.com/litescript/ls-globe/internal/logging"
	"github.com/litescript/ls-globe/internal/version"
)

const testLocations = `{"locations": [
  {"label": "Greenwich", "lat": 51.48, "lng": 0, "count": 12, "employees": [{}, {}, {}]},
  {"label": "Nowhere", "lat": null, "lng": 10, "count": 2},
  {"label": "Skipped", "lat": 1, "lng": 1, "count": 0}
]}`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// execute runs the CLI with an env file that does not exist, so the
// working directory's .env never leaks into tests.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append(args, "--env-file", filepath.Join(t.TempDir(), "none.env")))
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "ls-globe v"+version.Version+"\n", out)
}

func TestRenderSummary(t *testing.T) {
	locs := writeTemp(t, "locations.json", testLocations)

	out, err := execute(t, "render", "--locations", locs, "--land", "", "--log-level", "error")
	require.NoError(t, err)

	assert.Contains(t, out, "Greenwich")
	assert.Contains(t, out, "Nowhere*")
	assert.NotContains(t, out, "Skipped")
	assert.Contains(t, out, "land unavailable")
	assert.Contains(t, out, "Total: 2 pins")
}

func TestRenderFiles(t *testing.T) {
	locs := writeTemp(t, "locations.json", testLocations)
	dir := t.TempDir()
	pngPath := filepath.Join(dir, "globe.png")
	jsonPath := filepath.Join(dir, "frame.json")

	out, err := execute(t, "render",
		"--locations", locs,
		"--log-level", "error",
		"--out", pngPath,
		"--json", jsonPath,
		"--width", "200", "--height", "100", "--pixel-ratio", "2",
		"--rotation-lng", "30", "--zoom", "1.5",
	)
	require.NoError(t, err)
	assert.Empty(t, out, "no summary unless asked")

	f, err := os.Open(pngPath)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 400, img.Bounds().Dx())
	assert.Equal(t, 200, img.Bounds().Dy())

	data, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	var frame struct {
		Camera struct {
			RotationLng float64 `json:"rotation_lng"`
			Zoom        float64 `json:"zoom"`
		} `json:"camera"`
		Land struct {
			Status string `json:"status"`
		} `json:"land"`
		Pins []struct {
			Label     string `json:"label"`
			Employees int    `json:"employees"`
		} `json:"pins"`
	}
	require.NoError(t, json.Unmarshal(data, &frame))
	assert.Equal(t, 30.0, frame.Camera.RotationLng)
	assert.Equal(t, 1.5, frame.Camera.Zoom)
	assert.Equal(t, "loaded", frame.Land.Status)
	require.Len(t, frame.Pins, 2)
	assert.Equal(t, 3, frame.Pins[0].Employees)
}

func TestRenderMissingLocations(t *testing.T) {
	_, err := execute(t, "render", "--locations", filepath.Join(t.TempDir(), "absent.json"), "--log-level", "error")
	assert.Error(t, err)
}

func TestConfigFlagPrecedence(t *testing.T) {
	t.Setenv(config.EnvFPS, "12")
	t.Setenv(config.EnvLocations, "from-env.json")

	o := &rootOptions{}
	var got config.Config
	cmd := &cobra.Command{
		Use: "resolve",
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			got, err = o.config(cmd)
			return err
		},
	}
	cmd.Flags().StringVar(&o.locations, "locations", "", "")
	cmd.Flags().IntVar(&o.fps, "fps", 30, "")
	cmd.Flags().StringVar(&o.redraw, "redraw", "always", "")
	cmd.Flags().StringVar(&o.land, "land", "", "")
	cmd.Flags().StringVar(&o.logLevel, "log-level", "", "")
	cmd.Flags().StringVar(&o.logFile, "log-file", "", "")
	o.envFile = filepath.Join(t.TempDir(), "none.env")
	cmd.SetArgs([]string{"--locations", "from-flag.json", "--redraw", "change"})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, "from-flag.json", got.LocationsPath, "flag beats env")
	assert.Equal(t, 12, got.FPS, "unset flag keeps env")
	assert.Equal(t, globe.RedrawOnChange, got.RedrawPolicy())
	assert.Equal(t, config.DefaultConfig().LandSource, got.LandSource, "unset flag keeps default")
}

func TestNewLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	cfg := config.DefaultConfig()
	cfg.LogFile = path

	logger, closeLog, err := newLogger(cfg, nil)
	require.NoError(t, err)
	logger.Info("hello %d", 42)
	logger.Debug("hidden")
	closeLog()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello 42")
	assert.NotContains(t, string(data), "hidden")
}

func TestGlobeConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.PinHitRadius = 20
	cfg.Redraw = "change"

	g := globeConfig(cfg, logging.Discard())
	assert.Equal(t, 20.0, g.PinHitRadius)
	assert.Equal(t, globe.RedrawOnChange, g.Redraw)
	require.NotNil(t, g.UnknownLocation)
	assert.Equal(t, globe.DefaultUnknownLocation, *g.UnknownLocation)
	assert.Equal(t, globe.DefaultCamera(), g.Camera)
}
