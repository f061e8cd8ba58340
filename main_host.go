//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"fordview/app"
	"fordview/hal"
	"fordview/internal/buildinfo"
	"fordview/internal/config"
)

func main() {
	var cfg hal.HeadlessConfig
	var configPath string
	var showVersion bool
	flag.BoolVar(&cfg.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&cfg.Hz, "hz", 0, "Tick rate (default from config).")
	flag.Uint64Var(&cfg.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.StringVar(&configPath, "config", "", "Config file (default $FORDVIEW_CONFIG or the user config dir).")
	flag.BoolVar(&showVersion, "version", false, "Print the version and exit.")
	flag.Parse()

	if showVersion {
		fmt.Println("fordview", buildinfo.String())
		return
	}

	c, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if cfg.Hz <= 0 {
		cfg.Hz = c.Window.Hz
	}
	newApp := func(h hal.HAL) func() error {
		return app.NewWithConfig(h, c)
	}

	if cfg.Enabled {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		cfg.Width, cfg.Height = c.Window.Width, c.Window.Height
		if err := hal.RunHeadless(ctx, newApp, cfg); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, app.ErrQuit) {
				return
			}
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if err := hal.RunWindow(newApp, hal.WindowConfig{
		Width:  c.Window.Width,
		Height: c.Window.Height,
		TPS:    cfg.Hz,
	}); err != nil {
		if errors.Is(err, app.ErrQuit) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
