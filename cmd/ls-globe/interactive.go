package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/litescript/ls-globe/internal/locations"
	"github.com/litescript/ls-globe/internal/ui"
	"github.com/litescript/ls-globe/internal/window"
)

func newViewCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Show the globe in the terminal (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return errors.New("view needs a terminal; use 'ls-globe render' for files")
			}

			cfg, err := o.config(cmd)
			if err != nil {
				return err
			}
			// The TUI owns the terminal, so logs go to the file or nowhere.
			logger, closeLog, err := newLogger(cfg, io.Discard)
			if err != nil {
				return err
			}
			defer closeLog()

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			mgr := newStateManager(cfg)
			model := ui.New(mgr, globeConfig(cfg, logger.Named("globe")), cfg.FrameInterval())

			opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithContext(ctx)}
			if cfg.LocationsPath == locations.StdinPath {
				opts = append(opts, tea.WithInputTTY())
			}
			p := tea.NewProgram(model, opts...)

			go runDataLoop(ctx, cfg, mgr, p.Send, logger)

			if _, err := p.Run(); err != nil && ctx.Err() == nil {
				return fmt.Errorf("run TUI: %w", err)
			}
			return nil
		},
	}
}

func newWindowCmd(o *rootOptions) *cobra.Command {
	opts := window.DefaultOptions()

	cmd := &cobra.Command{
		Use:   "window",
		Short: "Show the globe in a desktop window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.config(cmd)
			if err != nil {
				return err
			}
			logger, closeLog, err := newLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeLog()

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			mgr := newStateManager(cfg)
			game := window.NewGame(mgr, globeConfig(cfg, logger.Named("globe")), opts, logger.Named("window"))

			go runDataLoop(ctx, cfg, mgr, nil, logger)

			if err := window.Run(game, opts); err != nil {
				return fmt.Errorf("run window: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.Width, "width", opts.Width, "Window width in pixels")
	cmd.Flags().IntVar(&opts.Height, "height", opts.Height, "Window height in pixels")
	return cmd
}
