// Package chart renders dashboard charts with gonum/plot. Bars carry one
// color each, so every bar is its own single-value BarChart positioned on the
// shared nominal axis.
package chart

import (
	"bytes"
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Bar is one labeled bar.
type Bar struct {
	Label string
	Value float64
}

// LineSeries is one named line of a line chart, with its extreme points
// marked (red for max, blue for min).
type LineSeries struct {
	Name   string
	Values []float64
	MaxIdx int
	MinIdx int
}

var barWidth = vg.Points(20)

// Bars builds a vertical bar chart. colors must match bars in length; use
// RankPalette or ValuePalette.
func Bars(title, xLabel, yLabel string, bars []Bar, colors []color.Color) (*plot.Plot, error) {
	p, labels, err := newBarPlot(title, bars, colors, false)
	if err != nil {
		return nil, err
	}
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.NominalX(labels...)
	return p, nil
}

// BarsHorizontal builds a horizontal bar chart with the first (largest) bar
// on top.
func BarsHorizontal(title, xLabel, yLabel string, bars []Bar, colors []color.Color) (*plot.Plot, error) {
	// reverse so index 0 renders at the top of the Y axis
	rev := make([]Bar, len(bars))
	revColors := make([]color.Color, len(colors))
	for i := range bars {
		rev[i] = bars[len(bars)-1-i]
		revColors[i] = colors[len(colors)-1-i]
	}
	p, labels, err := newBarPlot(title, rev, revColors, true)
	if err != nil {
		return nil, err
	}
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.NominalY(labels...)
	return p, nil
}

func newBarPlot(title string, bars []Bar, colors []color.Color, horizontal bool) (*plot.Plot, []string, error) {
	if len(bars) == 0 {
		return nil, nil, fmt.Errorf("bar chart %q: no bars", title)
	}
	if len(colors) != len(bars) {
		return nil, nil, fmt.Errorf("bar chart %q: %d colors for %d bars", title, len(colors), len(bars))
	}
	p, err := plot.New()
	if err != nil {
		return nil, nil, fmt.Errorf("new plot: %w", err)
	}
	p.Title.Text = title

	labels := make([]string, len(bars))
	for i, b := range bars {
		labels[i] = b.Label
		bc, err := plotter.NewBarChart(plotter.Values{b.Value}, barWidth)
		if err != nil {
			return nil, nil, fmt.Errorf("bar %q: %w", b.Label, err)
		}
		bc.Color = colors[i]
		bc.LineStyle.Width = 0
		bc.Horizontal = horizontal
		bc.XMin = float64(i)
		p.Add(bc)
	}
	return p, labels, nil
}

// Lines builds a line chart of one or more series over shared x labels, with
// max/min markers per series.
func Lines(title, xLabel, yLabel string, labels []string, series []LineSeries) (*plot.Plot, error) {
	if len(series) == 0 {
		return nil, fmt.Errorf("line chart %q: no series", title)
	}
	p, err := plot.New()
	if err != nil {
		return nil, fmt.Errorf("new plot: %w", err)
	}
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Legend.Top = true

	lineColors := []color.Color{
		color.RGBA{R: 0x1F, G: 0x77, B: 0xB4, A: 0xFF},
		color.RGBA{R: 0xFF, G: 0x7F, B: 0x0E, A: 0xFF},
	}
	for si, s := range series {
		if len(s.Values) != len(labels) {
			return nil, fmt.Errorf("line chart %q: series %q has %d values for %d labels",
				title, s.Name, len(s.Values), len(labels))
		}
		pts := make(plotter.XYs, len(s.Values))
		for i, v := range s.Values {
			pts[i].X = float64(i)
			pts[i].Y = v
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("line %q: %w", s.Name, err)
		}
		line.LineStyle.Width = vg.Points(2)
		line.Color = lineColors[si%len(lineColors)]
		p.Add(line)
		p.Legend.Add(s.Name, line)

		if err := addMarker(p, pts, s.MaxIdx, color.RGBA{R: 0xFF, A: 0xFF}); err != nil {
			return nil, err
		}
		if err := addMarker(p, pts, s.MinIdx, color.RGBA{B: 0xFF, A: 0xFF}); err != nil {
			return nil, err
		}
	}
	p.NominalX(labels...)
	return p, nil
}

func addMarker(p *plot.Plot, pts plotter.XYs, idx int, c color.Color) error {
	if idx < 0 || idx >= len(pts) {
		return nil
	}
	sc, err := plotter.NewScatter(plotter.XYs{pts[idx]})
	if err != nil {
		return fmt.Errorf("marker: %w", err)
	}
	sc.GlyphStyle.Color = c
	sc.GlyphStyle.Radius = vg.Points(5)
	sc.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(sc)
	return nil
}

// WriteSVG renders the plot as SVG.
func WriteSVG(p *plot.Plot, w, h vg.Length, out io.Writer) error {
	return write(p, w, h, "svg", out)
}

// WritePNG renders the plot as PNG.
func WritePNG(p *plot.Plot, w, h vg.Length, out io.Writer) error {
	return write(p, w, h, "png", out)
}

func write(p *plot.Plot, w, h vg.Length, format string, out io.Writer) error {
	wt, err := p.WriterTo(w, h, format)
	if err != nil {
		return fmt.Errorf("render %s: %w", format, err)
	}
	if _, err := wt.WriteTo(out); err != nil {
		return fmt.Errorf("write %s: %w", format, err)
	}
	return nil
}

// SVG renders the plot into a string for inline HTML embedding.
func SVG(p *plot.Plot, w, h vg.Length) (string, error) {
	var buf bytes.Buffer
	if err := WriteSVG(p, w, h, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
