// Package traceplot renders computed traces as line charts for quick
// inspection, mirroring the flux/voltage plots the animation layer draws.
package traceplot

import (
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/fluxtrace/generator"
)

func tracePoints(tr generator.Trace) plotter.XYs {
	xys := make(plotter.XYs, len(tr))
	for i, s := range tr {
		xys[i].X = s.T
		xys[i].Y = s.V
	}
	return xys
}

// WritePNG renders one trace to a PNG line chart.
func WritePNG(path, title, yLabel string, tr generator.Trace) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Time (s)"
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(tracePoints(tr))
	if err != nil {
		return err
	}
	p.Add(line)

	return p.Save(16*vg.Centimeter, 8*vg.Centimeter, path)
}

// WriteComparisonPNG renders several traces on one chart with a legend,
// ordered by name so colours are stable across runs.
func WriteComparisonPNG(path, title, yLabel string, traces map[string]generator.Trace) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Time (s)"
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())

	names := make([]string, 0, len(traces))
	for name := range traces {
		names = append(names, name)
	}
	sort.Strings(names)

	for i, name := range names {
		line, err := plotter.NewLine(tracePoints(traces[name]))
		if err != nil {
			return err
		}
		line.Color = plotutil.Color(i)
		p.Add(line)
		p.Legend.Add(name, line)
	}

	return p.Save(16*vg.Centimeter, 8*vg.Centimeter, path)
}
