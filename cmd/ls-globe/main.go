// Command ls-globe shows location data on an interactive, draggable globe
// in the terminal, in a desktop window, or as a rendered image.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-globe/internal/config"
	"github.com/litescript/ls-globe/internal/globe"
	"github.com/litescript/ls-globe/internal/logging"
	"github.com/litescript/ls-globe/internal/version"
)

// rootOptions holds the persistent flags. Flags override the environment
// only when set on the command line.
type rootOptions struct {
	locations string
	land      string
	logLevel  string
	logFile   string
	envFile   string
	fps       int
	redraw    string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	o := &rootOptions{}
	defaults := config.DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "ls-globe",
		Short: "Interactive globe for location data",
		Long: `ls-globe draws a draggable, zoomable globe with a pin for every location
in a JSON collection. Hover a pin to see its label, click it for details.`,
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&o.locations, "locations", "l", "", "Location collection JSON file (- for stdin)")
	pf.StringVar(&o.land, "land", defaults.LandSource, "Land source: GeoJSON file, http(s) URL, \"embedded\", or empty for none")
	pf.StringVar(&o.logLevel, "log-level", defaults.LogLevel, "Log level (debug, info, warn, error)")
	pf.StringVar(&o.logFile, "log-file", "", "Write logs to this file")
	pf.StringVar(&o.envFile, "env-file", config.DefaultEnvFile, "Read settings from this .env file if it exists")
	pf.IntVar(&o.fps, "fps", defaults.FPS, "Frame rate of the render loop")
	pf.StringVar(&o.redraw, "redraw", defaults.Redraw, "Redraw policy: always or change")

	view := newViewCmd(o)
	rootCmd.RunE = view.RunE
	rootCmd.AddCommand(
		view,
		newWindowCmd(o),
		newRenderCmd(o),
		newVersionCmd(),
	)
	return rootCmd
}

// config resolves defaults, .env, environment, then changed flags.
func (o *rootOptions) config(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(o.envFile)
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("locations") {
		cfg.LocationsPath = o.locations
	}
	if flags.Changed("land") {
		cfg.LandSource = o.land
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if flags.Changed("log-file") {
		cfg.LogFile = o.logFile
	}
	if flags.Changed("fps") {
		cfg.FPS = o.fps
	}
	if flags.Changed("redraw") {
		cfg.Redraw = o.redraw
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// newLogger builds the application logger. Without a log file, output
// goes to fallback.
func newLogger(cfg config.Config, fallback io.Writer) (*logging.Logger, func(), error) {
	logger := logging.New(logging.ParseLevel(cfg.LogLevel))
	if cfg.LogFile == "" {
		logger.SetOutput(fallback)
		return logger, func() {}, nil
	}

	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger.SetOutput(f)
	return logger, func() { _ = f.Close() }, nil
}

// globeConfig maps application settings onto the globe.
func globeConfig(cfg config.Config, log *logging.Logger) globe.Config {
	g := globe.DefaultConfig()
	unknown := cfg.UnknownLocation()
	g.UnknownLocation = &unknown
	g.PinHitRadius = cfg.PinHitRadius
	g.Redraw = cfg.RedrawPolicy()
	g.Logger = log
	return g
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ls-globe v%s\n", version.Version)
		},
	}
}
