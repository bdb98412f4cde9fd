package report

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/legend-exp/detinfo/internal/detector"
	"github.com/legend-exp/detinfo/internal/dettable"
	"github.com/legend-exp/detinfo/internal/monitoring"
	"github.com/legend-exp/detinfo/internal/units"
)

// Point is one detector's value at its x position.
type Point struct {
	X    float64
	Y    float64
	Name string
}

// Series is the values of one parameter for one production order.
type Series struct {
	Order int
	Param string
	// Label is the legend entry; empty means the series has none.
	Label  string
	Color  string
	Points []Point
	// Mean is the order average, set when averages are requested.
	Mean float64
}

// MinX is the x position of the first point.
func (s Series) MinX() float64 { return s.Points[0].X }

// MaxX is the x position of the last point.
func (s Series) MaxX() float64 { return s.Points[len(s.Points)-1].X }

// Tick labels one detector on the x axis.
type Tick struct {
	X     float64
	Label string
}

// Overlay is the global average line of one parameter.
type Overlay struct {
	Param string
	Mean  float64
	Unit  string
	// Total is set for mass only.
	Total    float64
	HasTotal bool
}

// Text is the caption shown in the plot's average box.
func (o Overlay) Text() string {
	s := fmt.Sprintf("-- average: %.2f %s", o.Mean, o.Unit)
	if o.HasTotal {
		s += fmt.Sprintf("\ntotal: %.2f %s", o.Total, o.Unit)
	}
	return strings.TrimSpace(s)
}

// SeriesSet is everything needed to draw parameters against detectors.
type SeriesSet struct {
	Params   []string
	Types    []detector.Type
	Series   []Series
	Ticks    []Tick
	Overlays []Overlay
	Averages bool
}

// BuildSeries groups table rows by production order and emits one series per
// (order, parameter). Each order group is shifted right by its group index
// so that consecutive orders are separated by a gap. Zero and non-numeric
// values mean "no data" and are dropped per parameter.
func BuildSeries(t *dettable.Table, params []string, types []detector.Type, withAverages bool) (*SeriesSet, error) {
	if len(params) == 0 {
		return nil, fmt.Errorf("no parameters to plot")
	}
	for _, p := range params {
		if !t.Has(p) {
			return nil, fmt.Errorf("table has no %q column", p)
		}
	}

	set := &SeriesSet{Params: params, Types: types, Averages: withAverages}
	labelOrders := len(types) == 1 && types[0] == detector.ICPC

	orderIdx := -1
	for start := 0; start < t.Len(); {
		order := t.Rows[start].Order
		end := start
		for end < t.Len() && t.Rows[end].Order == order {
			end++
		}
		orderIdx++
		monitoring.Logf("--- order # %d", order)

		for i := start; i < end; i++ {
			set.Ticks = append(set.Ticks, Tick{X: float64(i + orderIdx), Label: t.Rows[i].Name})
		}

		for pi, p := range params {
			s := Series{Order: order, Param: p, Color: detector.OrderColors[order]}
			for i := start; i < end; i++ {
				v, ok := t.Float(i, p)
				if !ok || v == 0 {
					continue
				}
				s.Points = append(s.Points, Point{X: float64(i + orderIdx), Y: v, Name: t.Rows[i].Name})
			}
			if len(s.Points) == 0 {
				monitoring.Logf("No data for %s for order %d", p, order)
				continue
			}
			if labelOrders && pi == 0 {
				s.Label = OrderLabel(order)
			}
			if withAverages {
				s.Mean = stat.Mean(ys(s.Points), nil)
			}
			set.Series = append(set.Series, s)
		}
		start = end
	}

	if withAverages {
		for _, p := range params {
			set.Overlays = append(set.Overlays, overlay(t, p))
		}
	}
	return set, nil
}

func overlay(t *dettable.Table, p string) Overlay {
	var vals []float64
	for i := range t.Rows {
		if v, ok := t.Float(i, p); ok && v != 0 {
			vals = append(vals, v)
		}
	}
	unit, ok := units.ParamUnits[p]
	if !ok {
		monitoring.Warnf("no unit known for %s; average shown without unit", p)
	}
	o := Overlay{Param: p, Unit: unit}
	if len(vals) > 0 {
		o.Mean = stat.Mean(vals, nil)
	}
	if p == dettable.MassParam {
		o.Total = floats.Sum(vals)
		o.HasTotal = true
	}
	return o
}

func ys(pts []Point) []float64 {
	out := make([]float64, len(pts))
	for i, p := range pts {
		out[i] = p.Y
	}
	return out
}

// OrderLabel names an ICPC production order in legends. Order 0 is GERDA.
func OrderLabel(order int) string {
	if order == 0 {
		return "GERDA"
	}
	return fmt.Sprintf("Order #%02d", order)
}

// FigureName is the deterministic file stem of a parameter plot, e.g.
// det_typeV_depV-depV_man_avg.
func FigureName(types []detector.Type, params []string, avg bool) string {
	letters := make([]string, len(types))
	for i, t := range types {
		letters[i] = t.String()
	}
	name := fmt.Sprintf("det_type%s_%s", strings.Join(letters, "-"), strings.Join(params, "-"))
	if avg {
		name += "_avg"
	}
	return name
}

// PieFigureName is the file stem of the production status chart.
const PieFigureName = "L200_detector_pie"
