package plotting

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/legend-exp/detinfo/internal/report"
)

// WritePieHTML renders the production status as an interactive pie chart.
func WritePieHTML(w io.Writer, s *report.Status) error {
	data := make([]opts.PieData, 0, len(s.Categories))
	for _, c := range s.Categories {
		if c.MassKg <= 0 {
			continue
		}
		data = append(data, opts.PieData{
			Name:      c.Label,
			Value:     c.MassKg,
			ItemStyle: &opts.ItemStyle{Color: c.Color},
		})
	}

	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "L200 detector production", Width: "900px", Height: "700px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "L200 detector production",
			Subtitle: fmt.Sprintf("detectors=%d mass=%.1fkg target=%dkg", s.TotalDetectors, s.TotalMassKg, s.TargetMassKg),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
	)
	pie.AddSeries("mass [kg]", data, charts.WithLabelOpts(opts.Label{Show: opts.Bool(true)}))

	return pie.Render(w)
}

// WriteSeriesHTML renders parameter series as an interactive scatter chart,
// one series per (order, parameter).
func WriteSeriesHTML(w io.Writer, set *report.SeriesSet) error {
	colors := seriesColors(set)

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: report.FigureName(set.Types, set.Params, set.Averages), Width: "1400px", Height: "700px"}),
		charts.WithTitleOpts(opts.Title{Title: watermark, Subtitle: fmt.Sprintf("series=%d detectors=%d", len(set.Series), len(set.Ticks))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "detector", NameLocation: "middle", NameGap: 25, Min: -1}),
		charts.WithYAxisOpts(opts.YAxis{Name: yTitle(set.Params[0]), NameLocation: "middle", NameGap: 50}),
	)

	for _, s := range set.Series {
		symbol := "circle"
		if triangleParams[s.Param] {
			symbol = "triangle"
		}
		data := make([]opts.ScatterData, 0, len(s.Points))
		for _, pt := range s.Points {
			data = append(data, opts.ScatterData{Name: pt.Name, Value: []interface{}{pt.X, pt.Y}, Symbol: symbol})
		}
		name := s.Label
		if name == "" {
			name = fmt.Sprintf("%s (order %d)", s.Param, s.Order)
		}
		scatter.AddSeries(name, data,
			charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 10}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: toHex(colors[s.Order])}),
		)
	}

	return scatter.Render(w)
}
