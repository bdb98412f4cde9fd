package plotting

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/legend-exp/detinfo/internal/monitoring"
	"github.com/legend-exp/detinfo/internal/report"
)

// wedge is one slice of a pie chart.
type wedge struct {
	value float64
	color color.Color
	label string
}

// pieChart draws wedges counter-clockwise starting at 12 o'clock, each pushed
// slightly out from the centre, with percentages inside and captions outside.
type pieChart struct {
	wedges  []wedge
	explode float64
}

// Plot implements plot.Plotter.
func (pc *pieChart) Plot(c draw.Canvas, plt *plot.Plot) {
	total := 0.0
	for _, w := range pc.wedges {
		total += w.value
	}
	if total <= 0 {
		return
	}

	center := vg.Point{X: (c.Min.X + c.Max.X) / 2, Y: (c.Min.Y + c.Max.Y) / 2}
	size := c.Max.X - c.Min.X
	if h := c.Max.Y - c.Min.Y; h < size {
		size = h
	}
	radius := size / 2 * 0.6

	pctStyle := plt.Legend.TextStyle
	pctStyle.Color = color.White
	pctStyle.XAlign = text.XCenter
	pctStyle.YAlign = text.YCenter

	start := math.Pi / 2
	for _, w := range pc.wedges {
		sweep := 2 * math.Pi * w.value / total
		mid := start + sweep/2
		dir := vg.Point{X: vg.Length(math.Cos(mid)), Y: vg.Length(math.Sin(mid))}
		origin := center.Add(dir.Scale(radius * vg.Length(pc.explode)))

		var path vg.Path
		path.Move(origin)
		path.Arc(origin, radius, start, sweep)
		path.Close()
		c.SetColor(w.color)
		c.Fill(path)

		c.FillText(pctStyle, origin.Add(dir.Scale(radius*0.6)), fmt.Sprintf("%.0f%%", 100*w.value/total))

		capStyle := plt.Legend.TextStyle
		capStyle.YAlign = text.YCenter
		capStyle.XAlign = text.XLeft
		if math.Cos(mid) < 0 {
			capStyle.XAlign = text.XRight
		}
		c.FillText(capStyle, origin.Add(dir.Scale(radius*1.1)), w.label)

		start += sweep
	}
}

// pieFigure builds the production status chart. Categories without a
// positive mass cannot be drawn and are left out.
func pieFigure(s *report.Status) (*plot.Plot, error) {
	pc := &pieChart{explode: 0.02}
	for _, cat := range s.Categories {
		if cat.MassKg <= 0 {
			monitoring.Warnf("%s has %dkg; left out of the pie", cat.Label, cat.MassKg)
			continue
		}
		pc.wedges = append(pc.wedges, wedge{
			value: float64(cat.MassKg),
			color: parseHex(cat.Color),
			label: cat.Text(),
		})
	}
	if len(pc.wedges) == 0 {
		return nil, fmt.Errorf("no category with positive mass to draw")
	}

	p := plot.New()
	p.HideAxes()
	p.Add(pc)
	return p, nil
}
