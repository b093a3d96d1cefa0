// Package config loads application settings from defaults, a .env file and
// LSGLOBE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/litescript/ls-globe/internal/globe"
	"github.com/litescript/ls-globe/internal/land"
)

// Environment variable names.
const (
	EnvLocations    = "LSGLOBE_LOCATIONS"
	EnvLand         = "LSGLOBE_LAND"
	EnvLogLevel     = "LSGLOBE_LOG_LEVEL"
	EnvLogFile      = "LSGLOBE_LOG_FILE"
	EnvFPS          = "LSGLOBE_FPS"
	EnvRedraw       = "LSGLOBE_REDRAW"
	EnvPinHitRadius = "LSGLOBE_PIN_HIT_RADIUS"
	EnvUnknownLat   = "LSGLOBE_UNKNOWN_LAT"
	EnvUnknownLng   = "LSGLOBE_UNKNOWN_LNG"
	EnvUnknownLabel = "LSGLOBE_UNKNOWN_LABEL"
	EnvLandTimeout  = "LSGLOBE_LAND_TIMEOUT"
	EnvReload       = "LSGLOBE_RELOAD"
	EnvSort         = "LSGLOBE_SORT"
)

// DefaultEnvFile is read when no --env-file is given. It may be absent.
const DefaultEnvFile = ".env"

// FPS limits.
const (
	MinFPS = 1
	MaxFPS = 120
)

// Config holds all application settings.
type Config struct {
	LocationsPath  string
	LandSource     string
	LogLevel       string
	LogFile        string
	FPS            int
	Redraw         string
	PinHitRadius   float64
	UnknownLat     float64
	UnknownLng     float64
	UnknownLabel   string
	LandTimeout    time.Duration
	ReloadInterval time.Duration
	SortByCount    bool
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		LandSource:   land.EmbeddedSource,
		LogLevel:     "info",
		FPS:          30,
		Redraw:       "always",
		PinHitRadius: globe.DefaultPinHitRadius,
		UnknownLat:   globe.DefaultUnknownLocation.Lat,
		UnknownLng:   globe.DefaultUnknownLocation.Lng,
		UnknownLabel: globe.DefaultUnknownLocation.Label,
		LandTimeout:  land.DefaultTimeout,
	}
}

// Load builds a config from defaults, envFile and the process environment.
// Process variables win over the file. A missing envFile is not an error.
func Load(envFile string) (Config, error) {
	fileVals := map[string]string{}
	if envFile != "" {
		vals, err := godotenv.Read(envFile)
		switch {
		case err == nil:
			fileVals = vals
		case errors.Is(err, fs.ErrNotExist):
		default:
			return Config{}, fmt.Errorf("read env file %s: %w", envFile, err)
		}
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := fileVals[key]
		return v, ok
	}

	cfg := DefaultConfig()
	if err := cfg.ApplyEnv(lookup); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from lookup, then validates.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok {
			*dst = strings.TrimSpace(v)
		}
	}
	var errs []error
	float := func(key string, dst *float64) {
		if v, ok := lookup(key); ok {
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = f
		}
	}
	duration := func(key string, dst *time.Duration) {
		if v, ok := lookup(key); ok {
			d, err := time.ParseDuration(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = d
		}
	}

	str(EnvLocations, &c.LocationsPath)
	str(EnvLand, &c.LandSource)
	str(EnvLogLevel, &c.LogLevel)
	str(EnvLogFile, &c.LogFile)
	str(EnvRedraw, &c.Redraw)
	str(EnvUnknownLabel, &c.UnknownLabel)
	float(EnvPinHitRadius, &c.PinHitRadius)
	float(EnvUnknownLat, &c.UnknownLat)
	float(EnvUnknownLng, &c.UnknownLng)
	duration(EnvLandTimeout, &c.LandTimeout)
	duration(EnvReload, &c.ReloadInterval)

	if v, ok := lookup(EnvFPS); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvFPS, err))
		} else {
			c.FPS = n
		}
	}
	if v, ok := lookup(EnvSort); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvSort, err))
		} else {
			c.SortByCount = b
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid environment: %w", errors.Join(errs...))
	}
	return c.Validate()
}

// Validate clamps ranged settings and rejects unusable ones.
func (c *Config) Validate() error {
	if c.FPS < MinFPS {
		c.FPS = MinFPS
	}
	if c.FPS > MaxFPS {
		c.FPS = MaxFPS
	}
	if !finite(c.PinHitRadius) {
		return fmt.Errorf("pin hit radius %v is not a finite number", c.PinHitRadius)
	}
	if c.PinHitRadius <= 0 {
		c.PinHitRadius = globe.DefaultPinHitRadius
	}
	if c.LandTimeout <= 0 {
		c.LandTimeout = land.DefaultTimeout
	}
	if c.ReloadInterval < 0 {
		c.ReloadInterval = 0
	}
	if _, ok := globe.ParseRedrawPolicy(c.Redraw); !ok {
		return fmt.Errorf("unknown redraw policy %q (want always or change)", c.Redraw)
	}
	if !finite(c.UnknownLat) || c.UnknownLat < -90 || c.UnknownLat > 90 {
		return fmt.Errorf("unknown-location latitude %v out of range", c.UnknownLat)
	}
	if !finite(c.UnknownLng) || c.UnknownLng < -180 || c.UnknownLng > 180 {
		return fmt.Errorf("unknown-location longitude %v out of range", c.UnknownLng)
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// UnknownLocation returns the fallback position for entities without
// usable coordinates.
func (c Config) UnknownLocation() globe.GeoPoint {
	return globe.GeoPoint{Lat: c.UnknownLat, Lng: c.UnknownLng, Label: c.UnknownLabel}
}

// RedrawPolicy returns the parsed redraw policy.
func (c Config) RedrawPolicy() globe.RedrawPolicy {
	p, _ := globe.ParseRedrawPolicy(c.Redraw)
	return p
}

// FrameInterval is the time between frame ticks.
func (c Config) FrameInterval() time.Duration {
	fps := c.FPS
	if fps < MinFPS {
		fps = MinFPS
	}
	return time.Second / time.Duration(fps)
}
