// Package app is the frame driver: once per host tick it applies input to
// the view, walks the visible Ford circles and draws them.
package app

import (
	"errors"
	"fmt"
	"log/slog"

	"fordview/hal"
	"fordview/internal/config"
	"fordview/internal/ford"
	"fordview/internal/input"
	"fordview/internal/render/fbdraw"
	"fordview/internal/view"
)

// ErrQuit is returned by the step function when the user asks to quit.
var ErrQuit = errors.New("quit")

type viewer struct {
	h    hal.HAL
	cfg  config.Config
	log  *slog.Logger
	keys *input.Bindings

	home   view.State
	state  view.State
	tiling bool
	hud    bool
	engine *ford.Engine

	// ms is the host clock in milliseconds; frameMs the length of the last
	// frame.
	ms      uint64
	lastMs  uint64
	frameMs uint64
	frames  uint64
}

// New starts the viewer with default settings.
func New(h hal.HAL) func() error {
	return NewWithConfig(h, config.Default())
}

// NewWithConfig returns the step function the host calls once per tick.
func NewWithConfig(h hal.HAL, cfg config.Config) func() error {
	return newViewer(h, cfg).step
}

func newViewer(h hal.HAL, cfg config.Config) *viewer {
	log := newLogger(h.Logger(), cfg)
	v := &viewer{
		h:      h,
		cfg:    cfg,
		log:    log,
		keys:   input.Default(log),
		home:   cfg.ViewState(),
		state:  cfg.ViewState(),
		tiling: cfg.Render.Tiling,
		hud:    cfg.Render.HUD,
	}
	v.engine = v.newEngine()
	log.Info("viewer started",
		"center", v.state.Center,
		"width", v.state.Width,
		"tiling", v.tiling,
		"workers", cfg.Render.Workers,
	)
	return v
}

func (v *viewer) newEngine() *ford.Engine {
	opts := v.cfg.EngineOptions(v.log)
	opts = append(opts, ford.WithTiling(v.tiling))
	return ford.New(opts...)
}

func (v *viewer) step() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = v.panicked(r)
		}
	}()

	v.drainInput()
	v.keys.Update()
	if v.keys.IsPressed(input.Quit) {
		v.log.Info("quit requested", "frames", v.frames)
		return ErrQuit
	}
	v.update()
	if err := v.render(); err != nil {
		return err
	}
	v.frames++
	return nil
}

func (v *viewer) drainInput() {
	if in := v.h.Input(); in != nil {
		if kbd := in.Keyboard(); kbd != nil {
		keys:
			for {
				select {
				case ev := <-kbd.Events():
					v.keys.Handle(ev)
				default:
					break keys
				}
			}
		}
	}
	if t := v.h.Time(); t != nil {
	ticks:
		for {
			select {
			case seq := <-t.Ticks():
				v.ms = seq
			default:
				break ticks
			}
		}
	}
	v.frameMs = v.ms - v.lastMs
	v.lastMs = v.ms
}

// update applies held and pressed actions to the view.
func (v *viewer) update() {
	zoom := v.cfg.View.ZoomSpeed
	pan := v.cfg.View.PanSpeed
	if v.keys.IsDown(input.ZoomIn) {
		v.state.Zoom(1 / zoom)
	}
	if v.keys.IsDown(input.ZoomOut) {
		v.state.Zoom(zoom)
	}
	if v.keys.IsDown(input.PanLeft) {
		v.state.Pan(-pan)
	}
	if v.keys.IsDown(input.PanRight) {
		v.state.Pan(pan)
	}
	if v.keys.IsPressed(input.Reset) {
		v.state = v.home
		v.log.Debug("view reset")
	}
	if v.keys.IsPressed(input.ToggleTiling) {
		v.tiling = !v.tiling
		v.engine = v.newEngine()
		v.log.Info("tiling toggled", "tiling", v.tiling)
	}
	if v.keys.IsPressed(input.ToggleHUD) {
		v.hud = !v.hud
	}
}

func (v *viewer) render() error {
	disp := v.h.Display()
	if disp == nil {
		return nil
	}
	fb := disp.Framebuffer()
	if fb == nil {
		return nil
	}
	c := fbdraw.New(fb)
	c.Clear(fbdraw.White)

	vp := v.state.Viewport(fb.Width(), fb.Height())
	res, err := v.engine.Frame(vp)
	if err != nil {
		return fmt.Errorf("frame at center %g width %g: %w", vp.Center, vp.Width, err)
	}
	drawn := c.DrawCircles(res.Circles, fbdraw.Black)
	if v.hud {
		v.drawHUD(c, vp, res.Stats, drawn)
	}
	return c.Display()
}

func (v *viewer) drawHUD(c *fbdraw.Canvas, vp view.Viewport, st ford.Stats, drawn int) {
	mode := "classic"
	if v.tiling {
		mode = "tiling"
	}
	lines := []string{
		fmt.Sprintf("center %.17g", vp.Center),
		fmt.Sprintf("width  %.6g", vp.Width),
		fmt.Sprintf("circles %d/%d  visited %d  skipped %d", drawn, st.Emitted, st.Visited, st.Skipped),
		fmt.Sprintf("%s  %dms", mode, v.frameMs),
	}
	y := 2
	for _, l := range lines {
		w := fbdraw.TextWidth(l)
		_ = c.FillRectangle(0, int16(y), int16(w+4), int16(fbdraw.LineHeight()), fbdraw.White)
		c.Text(2, y, l, fbdraw.Black)
		y += fbdraw.LineHeight()
	}
}
