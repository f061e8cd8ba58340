package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"fordview/internal/render/ggdraw"
)

func newRenderCmd(opts *options) *cobra.Command {
	var ff frameFlags
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render one frame to a PNG file",
		Long: `Render one frame to a PNG file.

The view defaults to the configured center and width. Use "-" as the output
path to write the PNG to stdout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, _ := cmd.Flags().GetString("out")
			c, log, err := opts.load()
			if err != nil {
				return err
			}
			vp, err := ff.viewport(cmd, c)
			if err != nil {
				return err
			}
			res, err := ff.engine(c.EngineOptions(log)...).Frame(vp)
			if err != nil {
				return fmt.Errorf("compute frame: %w", err)
			}

			frame, err := ggdraw.New(vp.CanvasWidth, vp.CanvasHeight)
			if err != nil {
				return err
			}
			defer frame.Close()
			drawn, err := frame.Draw(res.Circles)
			if err != nil {
				return err
			}

			if out == "-" {
				err = frame.WritePNG(cmd.OutOrStdout())
			} else {
				err = frame.SavePNG(out)
			}
			if err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			log.Info("rendered",
				"out", out,
				"center", vp.Center,
				"width", vp.Width,
				"circles", len(res.Circles),
				"drawn", drawn,
			)
			return nil
		},
	}
	ff.register(cmd)
	cmd.Flags().StringP("out", "o", "ford.png", "output PNG path, or - for stdout")
	return cmd
}
