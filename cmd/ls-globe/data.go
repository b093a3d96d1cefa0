package main

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-globe/internal/config"
	"github.com/litescript/ls-globe/internal/globe"
	"github.com/litescript/ls-globe/internal/land"
	"github.com/litescript/ls-globe/internal/locations"
	"github.com/litescript/ls-globe/internal/logging"
	"github.com/litescript/ls-globe/internal/state"
	"github.com/litescript/ls-globe/internal/ui"
)

func newStateManager(cfg config.Config) *state.Manager {
	stateCfg := state.DefaultConfig()
	stateCfg.ReloadInterval = cfg.ReloadInterval
	return state.NewManager(stateCfg)
}

// loadLocations reads the configured collection into mgr. No configured
// path yields an empty collection.
func loadLocations(cfg config.Config, mgr *state.Manager, logger *logging.Logger) error {
	if cfg.LocationsPath == "" {
		logger.Warn("no locations configured, showing an empty globe")
		mgr.UpdateLocations(nil, 0, nil)
		return nil
	}

	start := time.Now()
	locs, err := locations.Load(cfg.LocationsPath)
	elapsed := time.Since(start)
	if err != nil {
		logger.Error("Location load failed: %v", err)
		mgr.UpdateLocations(nil, elapsed, err)
		return err
	}
	if cfg.SortByCount {
		locations.SortByCount(locs)
	}

	logger.Debug("Loaded %d locations (%d people) in %v", len(locs), locations.Total(locs), elapsed)
	mgr.UpdateLocations(locs, elapsed, nil)
	return nil
}

// loadLand resolves the configured land source into mgr.
func loadLand(ctx context.Context, cfg config.Config, mgr *state.Manager, logger *logging.Logger) {
	loader := land.NewLoader(
		land.WithTimeout(cfg.LandTimeout),
		land.WithLogger(logger.Named("land")),
	)
	mgr.SetLand(globe.LoadingLand())
	mgr.SetLand(loader.Resolve(ctx, cfg.LandSource))
}

// runDataLoop loads locations and land, then reloads locations at the
// configured interval until ctx is done. send may be nil.
func runDataLoop(ctx context.Context, cfg config.Config, mgr *state.Manager, send func(tea.Msg), logger *logging.Logger) {
	notify := func(err error) {
		if send == nil {
			return
		}
		if err != nil {
			send(ui.ErrorMsg{Error: err})
			return
		}
		send(ui.DataUpdateMsg{Snapshot: mgr.Snapshot()})
	}

	notify(loadLocations(cfg, mgr, logger))
	loadLand(ctx, cfg, mgr, logger)
	notify(nil)

	interval := mgr.ReloadInterval()
	if interval <= 0 || cfg.LocationsPath == "" || cfg.LocationsPath == locations.StdinPath {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Debug("Reload loop shutting down")
			return
		case <-ticker.C:
			notify(loadLocations(cfg, mgr, logger))
		}
	}
}
