// Package charts renders the dashboard's PNG figures with gonum/plot.
// Every function is a pure computation from in-memory values to image
// bytes; callers decide how faults map onto the page (one failed figure
// must not take down the surrounding sections).
package charts

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// ErrNoData means a figure was requested over zero points.
var ErrNoData = errors.New("charts: no data points")

const (
	chartWidth  = 6 * vg.Inch
	chartHeight = 3.5 * vg.Inch
)

var barWidth = vg.Points(22)

// groupPalette carries the study's per-school colors, in group order, with
// extra hues for directories that grow beyond four schools.
var groupPalette = []color.RGBA{
	{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
	{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff},
	{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff},
	{R: 0xd6, G: 0x27, B: 0x28, A: 0xff},
	{R: 0x94, G: 0x67, B: 0xbd, A: 0xff},
	{R: 0x8c, G: 0x56, B: 0x4b, A: 0xff},
}

// GroupColor returns the palette color for the i-th group.
func GroupColor(i int) color.RGBA {
	return groupPalette[i%len(groupPalette)]
}

// GroupColorHex returns the same color as a CSS hex literal for templates.
func GroupColorHex(i int) string {
	c := GroupColor(i)
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Bars draws one bar per label.
func Bars(title, yLabel string, labels []string, values []float64) ([]byte, error) {
	if len(values) == 0 {
		return nil, ErrNoData
	}
	p := newPlot(title, "", yLabel)

	bars, err := plotter.NewBarChart(plotter.Values(values), barWidth)
	if err != nil {
		return nil, err
	}
	bars.LineStyle.Width = 0
	bars.Color = GroupColor(0)
	p.Add(bars)
	p.NominalX(labels...)

	return renderPNG(p)
}

// PairedBars draws two bars per label, e.g. measured vs target EC.
func PairedBars(title, yLabel string, labels []string, aName string, a []float64, bName string, b []float64) ([]byte, error) {
	if len(a) == 0 || len(b) == 0 {
		return nil, ErrNoData
	}
	p := newPlot(title, "", yLabel)

	aBars, err := plotter.NewBarChart(plotter.Values(a), barWidth)
	if err != nil {
		return nil, err
	}
	aBars.LineStyle.Width = 0
	aBars.Color = GroupColor(0)
	aBars.Offset = -barWidth / 2

	bBars, err := plotter.NewBarChart(plotter.Values(b), barWidth)
	if err != nil {
		return nil, err
	}
	bBars.LineStyle.Width = 0
	bBars.Color = GroupColor(2)
	bBars.Offset = barWidth / 2

	p.Add(aBars, bBars)
	p.Legend.Add(aName, aBars)
	p.Legend.Add(bName, bBars)
	p.Legend.Top = true
	p.NominalX(labels...)

	return renderPNG(p)
}

// Box draws one box-and-whisker per label from that label's raw values.
func Box(title, yLabel string, labels []string, groups [][]float64) ([]byte, error) {
	if len(groups) == 0 {
		return nil, ErrNoData
	}
	p := newPlot(title, "", yLabel)

	for i, vals := range groups {
		if len(vals) == 0 {
			continue
		}
		box, err := plotter.NewBoxPlot(barWidth, float64(i), plotter.Values(vals))
		if err != nil {
			return nil, err
		}
		box.FillColor = GroupColor(i)
		p.Add(box)
	}
	p.NominalX(labels...)

	return renderPNG(p)
}

// Series is one named point set on a scatter figure.
type Series struct {
	Name string
	XS   []float64
	YS   []float64
}

// Scatter draws every series in its group color.
func Scatter(title, xLabel, yLabel string, series []Series) ([]byte, error) {
	p := newPlot(title, xLabel, yLabel)

	points := 0
	for i, s := range series {
		xys := make(plotter.XYs, len(s.XS))
		for j := range s.XS {
			xys[j] = plotter.XY{X: s.XS[j], Y: s.YS[j]}
		}
		points += len(xys)
		sc, err := plotter.NewScatter(xys)
		if err != nil {
			return nil, err
		}
		sc.GlyphStyle.Color = GroupColor(i)
		sc.GlyphStyle.Radius = vg.Points(2.5)
		sc.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(sc)
		p.Legend.Add(s.Name, sc)
	}
	if points == 0 {
		return nil, ErrNoData
	}
	p.Legend.Top = true

	return renderPNG(p)
}

// TimeLine is one named time series.
type TimeLine struct {
	Name   string
	Times  []time.Time
	Values []float64
}

// TimeSeries draws the lines over a time axis, with an optional dashed
// horizontal reference (the group's target EC).
func TimeSeries(title, yLabel string, lines []TimeLine, ref *float64, refName string) ([]byte, error) {
	p := newPlot(title, "", yLabel)
	p.X.Tick.Marker = plot.TimeTicks{Format: "01-02 15:04"}

	var minX, maxX float64
	points := 0
	for i, tl := range lines {
		xys := make(plotter.XYs, 0, len(tl.Times))
		for j, ts := range tl.Times {
			if ts.IsZero() {
				continue
			}
			x := float64(ts.Unix())
			if points == 0 || x < minX {
				minX = x
			}
			if points == 0 || x > maxX {
				maxX = x
			}
			xys = append(xys, plotter.XY{X: x, Y: tl.Values[j]})
			points++
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return nil, err
		}
		line.LineStyle.Color = GroupColor(i)
		p.Add(line)
		p.Legend.Add(tl.Name, line)
	}
	if points == 0 {
		return nil, ErrNoData
	}

	if ref != nil {
		refLine, err := plotter.NewLine(plotter.XYs{
			{X: minX, Y: *ref},
			{X: maxX, Y: *ref},
		})
		if err != nil {
			return nil, err
		}
		refLine.LineStyle.Color = color.RGBA{R: 0x55, G: 0x55, B: 0x55, A: 0xff}
		refLine.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
		p.Add(refLine)
		p.Legend.Add(refName, refLine)
	}
	p.Legend.Top = true

	return renderPNG(p)
}

func newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	return p
}

func renderPNG(p *plot.Plot) ([]byte, error) {
	wt, err := p.WriterTo(chartWidth, chartHeight, "png")
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
