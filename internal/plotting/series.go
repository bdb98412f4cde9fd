package plotting

import (
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/legend-exp/detinfo/internal/report"
)

var (
	dimGrey = color.RGBA{R: 105, G: 105, B: 105, A: 255}
	dashes  = []vg.Length{vg.Points(6), vg.Points(4)}
)

// seriesColors resolves each order's colour, falling back to a generated
// palette for orders without a fixed colour.
func seriesColors(set *report.SeriesSet) map[int]color.Color {
	out := make(map[int]color.Color)
	var missing []int
	for _, s := range set.Series {
		if _, done := out[s.Order]; done {
			continue
		}
		if s.Color != "" {
			out[s.Order] = parseHex(s.Color)
			continue
		}
		out[s.Order] = nil
		missing = append(missing, s.Order)
	}
	for i, c := range palette(len(missing)) {
		out[missing[i]] = c
	}
	return out
}

func glyphFor(param string, c color.Color) draw.GlyphStyle {
	g := draw.GlyphStyle{Color: c, Radius: vg.Points(5)}
	switch {
	case triangleParams[param] && solidMarker(param):
		g.Shape = draw.PyramidGlyph{}
	case triangleParams[param]:
		g.Shape = draw.TriangleGlyph{}
	case solidMarker(param):
		g.Shape = draw.CircleGlyph{}
	default:
		g.Shape = draw.RingGlyph{}
	}
	return g
}

// seriesFigure draws one marker series per (order, parameter), joined by a
// line unless the parameter is drawn with triangles.
func seriesFigure(set *report.SeriesSet) (*plot.Plot, error) {
	p := plot.New()
	p.Y.Label.Text = yTitle(set.Params[0])
	p.Add(plotter.NewGrid())

	colors := seriesColors(set)
	maxX := -1.0
	for _, s := range set.Series {
		c := colors[s.Order]
		xys := make(plotter.XYs, len(s.Points))
		for i, pt := range s.Points {
			xys[i] = plotter.XY{X: pt.X, Y: pt.Y}
		}
		if s.MaxX() > maxX {
			maxX = s.MaxX()
		}

		sc, err := plotter.NewScatter(xys)
		if err != nil {
			return nil, err
		}
		sc.GlyphStyle = glyphFor(s.Param, c)

		if !triangleParams[s.Param] {
			line, err := plotter.NewLine(xys)
			if err != nil {
				return nil, err
			}
			line.Color = c
			line.Width = vg.Points(1.5)
			p.Add(line)
		}
		p.Add(sc)
		if s.Label != "" {
			p.Legend.Add(s.Label, sc)
		}

		if set.Averages {
			mean, err := plotter.NewLine(plotter.XYs{{X: s.MinX(), Y: s.Mean}, {X: s.MaxX(), Y: s.Mean}})
			if err != nil {
				return nil, err
			}
			mean.Color = c
			mean.Width = vg.Points(2)
			mean.Dashes = dashes
			p.Add(mean)
		}
	}

	// One legend entry per parameter, drawn in black.
	for _, param := range set.Params {
		label, ok := paramLegend[param]
		if !ok {
			continue
		}
		p.Legend.Add(label, legendGlyph{glyphFor(param, color.Black)})
	}

	if set.Averages {
		if err := addOverlays(p, set, maxX); err != nil {
			return nil, err
		}
	}

	ticks := make([]plot.Tick, len(set.Ticks))
	for i, tk := range set.Ticks {
		ticks[i] = plot.Tick{Value: tk.X, Label: tk.Label}
	}
	p.X.Tick.Marker = plot.ConstantTicks(ticks)
	p.X.Tick.Label.Rotation = math.Pi / 2
	p.X.Tick.Label.XAlign = text.XRight
	p.X.Tick.Label.YAlign = text.YCenter
	p.X.Min = -1
	if maxX >= 0 {
		p.X.Max = maxX + 1
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10
	p.Title.Text = watermark
	return p, nil
}

// addOverlays draws the global average of every parameter and a caption box
// in the upper left.
func addOverlays(p *plot.Plot, set *report.SeriesSet, maxX float64) error {
	top := math.Inf(-1)
	for _, s := range set.Series {
		for _, pt := range s.Points {
			top = math.Max(top, pt.Y)
		}
	}
	for i, o := range set.Overlays {
		avg, err := plotter.NewLine(plotter.XYs{{X: -1, Y: o.Mean}, {X: maxX + 1, Y: o.Mean}})
		if err != nil {
			return err
		}
		avg.Color = dimGrey
		avg.Width = vg.Points(2)
		avg.Dashes = dashes
		p.Add(avg)

		if math.IsInf(top, -1) {
			continue
		}
		labels, err := plotter.NewLabels(plotter.XYLabels{
			XYs:    plotter.XYs{{X: 0, Y: top}},
			Labels: []string{o.Text()},
		})
		if err != nil {
			return err
		}
		for j := range labels.TextStyle {
			labels.TextStyle[j].Color = dimGrey
			labels.TextStyle[j].YAlign = text.YTop
		}
		labels.Offset = vg.Point{Y: -vg.Length(i) * 2 * labels.TextStyle[0].Font.Size}
		p.Add(labels)
	}
	return nil
}

// legendGlyph is a legend thumbnail that only draws a marker.
type legendGlyph struct {
	style draw.GlyphStyle
}

func (g legendGlyph) Thumbnail(c *draw.Canvas) {
	c.DrawGlyph(g.style, c.Center())
}
