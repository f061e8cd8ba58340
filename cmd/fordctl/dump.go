package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"fordview/internal/ford"
)

// circleRecord is the JSON form of one draw instruction.
type circleRecord struct {
	Num      int64   `json:"num"`
	Den      int64   `json:"den"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Radius   float64 `json:"radius"`
	FontSize float64 `json:"font_size,omitempty"`
}

type dumpOutput struct {
	Circles []circleRecord `json:"circles"`
	Stats   ford.Stats     `json:"stats"`
}

func newDumpCmd(opts *options) *cobra.Command {
	var ff frameFlags
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "List the draw instructions for one frame",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			limit, _ := cmd.Flags().GetInt("limit")
			showStats, _ := cmd.Flags().GetBool("stats")

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

			circles := res.Circles
			if limit > 0 && len(circles) > limit {
				circles = circles[:limit]
			}
			if jsonOut {
				return writeJSON(cmd.OutOrStdout(), circles, res.Stats)
			}
			writeTable(cmd.OutOrStdout(), circles, shouldUseColor())
			if showStats {
				writeStats(cmd.OutOrStdout(), res.Stats)
			}
			return nil
		},
	}
	ff.register(cmd)
	cmd.Flags().Bool("json", false, "output JSON")
	cmd.Flags().IntP("limit", "n", 0, "show at most n circles (0 for all)")
	cmd.Flags().Bool("stats", false, "print walk statistics after the table")
	return cmd
}

func writeJSON(w io.Writer, circles []ford.Circle, stats ford.Stats) error {
	out := dumpOutput{Circles: make([]circleRecord, 0, len(circles)), Stats: stats}
	for _, c := range circles {
		rec := circleRecord{Num: c.Frac.Num, Den: c.Frac.Den, X: c.X, Y: c.Y, Radius: c.Radius}
		if c.Label != nil {
			rec.FontSize = c.Label.FontSize
		}
		out.Circles = append(out.Circles, rec)
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// writeTable prints one row per circle. Labelled circles are bold, circles
// whose centre is off the canvas are dim.
func writeTable(w io.Writer, circles []ford.Circle, color bool) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FRACTION\tX\tY\tRADIUS\tLABEL")
	for _, c := range circles {
		label := "-"
		if c.Label != nil {
			label = fmt.Sprintf("%gpx", c.Label.FontSize)
		}
		frac := c.Frac.String()
		switch {
		case c.Label != nil:
			frac = paint(color, ansiBold, frac)
		case c.X < 0:
			frac = paint(color, ansiDim, frac)
		}
		fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t%.4g\t%s\n", frac, c.X, c.Y, c.Radius, label)
	}
	tw.Flush()
}

func writeStats(w io.Writer, s ford.Stats) {
	fmt.Fprintf(w, "\nvisited %d, emitted %d, pruned %d range / %d resolution / %d overflow, skipped %d, max stack %d\n",
		s.Visited, s.Emitted, s.RangePruned, s.ResolutionPruned, s.OverflowPruned, s.Skipped, s.MaxStack)
}
