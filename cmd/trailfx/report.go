package main

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/trailfx/internal/playback"
)

const plotWidth = 80

func printReport(out io.Writer, res *playback.Result, elapsed time.Duration) error {
	fmt.Fprintf(out, "frames:   %d (%v simulated in %v)\n", res.Frames, res.Duration, elapsed.Round(time.Microsecond))
	fmt.Fprintf(out, "moves:    %d, spawned %d, clicks %d\n\n", res.Stats.Moves, res.Stats.Spawned, res.Stats.Clicks)

	names := make([]string, 0, len(res.Metrics))
	for name := range res.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tVALUE")
	for _, name := range names {
		fmt.Fprintf(w, "%s\t%.4f\n", name, res.Metrics[name])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(res.Particles) > 1 {
		graph := asciigraph.PlotMany(
			[][]float64{downsample(res.Particles, plotWidth), downsample(res.Ripples, plotWidth)},
			asciigraph.Height(10),
			asciigraph.Width(plotWidth),
			asciigraph.SeriesColors(asciigraph.Yellow, asciigraph.Cyan),
			asciigraph.SeriesLegends("particles", "ripples"),
			asciigraph.Caption("live effects per frame"),
		)
		fmt.Fprintln(out)
		fmt.Fprintln(out, graph)
	}
	return nil
}

// downsample keeps the peak of each bucket so short bursts stay visible.
func downsample(data []float64, n int) []float64 {
	if len(data) <= n || n < 1 {
		return data
	}
	out := make([]float64, n)
	for i := range out {
		lo := i * len(data) / n
		hi := (i + 1) * len(data) / n
		peak := data[lo]
		for _, v := range data[lo:hi] {
			if v > peak {
				peak = v
			}
		}
		out[i] = peak
	}
	return out
}

func printSpread(out io.Writer, spreads []playback.Spread, elapsed time.Duration) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tMEAN\tMIN\tMAX")
	for _, s := range spreads {
		fmt.Fprintf(w, "%s\t%.4f\t%.4f\t%.4f\n", s.Name, s.Mean, s.Min, s.Max)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "\ncompleted in %v\n", elapsed.Round(time.Millisecond))
	return nil
}
