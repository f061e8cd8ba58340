//go:build !tinygo

package hal

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled bool
	Hz      int
	Ticks   uint64
	// Width and Height size the framebuffer; 0 picks the default.
	Width  int
	Height int
	// Script injects key events before the step of the given tick.
	Script []ScriptedKey
	// Log receives the HAL logger's lines; nil means stdout.
	Log io.Writer
}

// ScriptedKey is a key event delivered at a fixed tick (counting from 0).
type ScriptedKey struct {
	Tick  uint64
	Event KeyEvent
}

// RunHeadless runs the app without opening a window.
func RunHeadless(ctx context.Context, newApp func(HAL) func() error, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}
	if cfg.Log == nil {
		cfg.Log = os.Stdout
	}

	h := newHost(cfg.Width, cfg.Height, cfg.Log)
	step := newApp(h)

	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			for _, s := range cfg.Script {
				if s.Tick == tick {
					h.kbd.emit(s.Event)
				}
			}
			h.t.advance()
			if step != nil {
				if err := step(); err != nil {
					return err
				}
			}
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return nil
			}
		}
	}
}
