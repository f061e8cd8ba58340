package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"fordview/internal/config"
	"fordview/internal/ford"
	"fordview/internal/view"
)

// frameFlags selects the canvas and view for a single frame. Unset flags fall
// back to the config.
type frameFlags struct {
	width, height int
	center        float64
	viewWidth     float64
	classic       bool
}

func (f *frameFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.width, "width", 0, "canvas width in pixels (default window.width)")
	cmd.Flags().IntVar(&f.height, "height", 0, "canvas height in pixels (default window.height)")
	cmd.Flags().Float64Var(&f.center, "center", 0, "view center (default view.center)")
	cmd.Flags().Float64Var(&f.viewWidth, "view-width", 0, "visible width in model units (default view.width)")
	cmd.Flags().BoolVar(&f.classic, "classic", false, "draw only [0,1] without tiling")
}

func (f *frameFlags) viewport(cmd *cobra.Command, c config.Config) (view.Viewport, error) {
	w, h := c.Window.Width, c.Window.Height
	if cmd.Flags().Changed("width") {
		w = f.width
	}
	if cmd.Flags().Changed("height") {
		h = f.height
	}
	if w <= 0 || h <= 0 {
		return view.Viewport{}, fmt.Errorf("canvas size must be positive, got %dx%d", w, h)
	}

	s := c.ViewState()
	if cmd.Flags().Changed("center") {
		s.Center = f.center
	}
	if cmd.Flags().Changed("view-width") {
		if !(f.viewWidth > 0) {
			return view.Viewport{}, fmt.Errorf("--view-width must be positive, got %v", f.viewWidth)
		}
		s = view.New(s.Center, f.viewWidth)
	}
	return s.Viewport(w, h), nil
}

func (f *frameFlags) engine(opts ...ford.Option) *ford.Engine {
	if f.classic {
		opts = append(opts, ford.WithTiling(false))
	}
	return ford.New(opts...)
}
