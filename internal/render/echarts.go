// Package render turns chart descriptions into standalone HTML using
// go-echarts, for exports and the CLI render command.
package render

import (
	"errors"
	"io"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/example/launchdash/internal/chart"
)

// DefaultAssetsHost is where go-echarts loads its scripts from by default.
const DefaultAssetsHost = "https://go-echarts.github.io/go-echarts-assets/assets/"

// Options tune the generated page.
type Options struct {
	// AssetsHost overrides where echarts.min.js is fetched from.
	AssetsHost string
	Width      string
	Height     string
}

func (o Options) initialization(title string) opts.Initialization {
	init := opts.Initialization{
		PageTitle: title,
		Width:     o.Width,
		Height:    o.Height,
	}
	if init.Width == "" {
		init.Width = "900px"
	}
	if init.Height == "" {
		init.Height = "500px"
	}
	if host := strings.TrimSpace(o.AssetsHost); host != "" {
		if !strings.HasSuffix(host, "/") {
			host += "/"
		}
		init.AssetsHost = host
	}
	return init
}

// ScriptURL is the echarts bundle location for o.
func (o Options) ScriptURL() string {
	host := o.initialization("").AssetsHost
	if host == "" {
		host = DefaultAssetsHost
	}
	return host + "echarts.min.js"
}

// PieChart converts a pie description.
func PieChart(p chart.Pie, o Options) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithInitializationOpts(o.initialization(p.Title)),
		charts.WithTitleOpts(opts.Title{Title: p.Title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
	)
	items := make([]opts.PieData, 0, len(p.Slices))
	for _, s := range p.Slices {
		items = append(items, opts.PieData{Name: s.Label, Value: s.Value})
	}
	pie.AddSeries("launches", items).SetSeriesOptions(
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true)}),
	)
	return pie
}

// ScatterChart converts a scatter description. Each series becomes one
// colour group; the hover name carries the launch site.
func ScatterChart(s chart.Scatter, o Options) *charts.Scatter {
	sc := charts.NewScatter()
	sc.SetGlobalOptions(
		charts.WithInitializationOpts(o.initialization(s.Title)),
		charts.WithTitleOpts(opts.Title{Title: s.Title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
		charts.WithXAxisOpts(opts.XAxis{Name: s.XAxis.Label, Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: s.YAxis.Label, Type: "value", Min: -0.5, Max: 1.5}),
	)
	for _, series := range s.Series {
		points := make([]opts.ScatterData, 0, len(series.Points))
		for _, p := range series.Points {
			points = append(points, opts.ScatterData{
				Name:       p.LaunchSite,
				Value:      []interface{}{p.X, p.Y},
				SymbolSize: 12,
			})
		}
		sc.AddSeries(series.Name, points)
	}
	return sc
}

// WritePage renders both figures on one HTML page.
func WritePage(w io.Writer, title string, p chart.Pie, s chart.Scatter, o Options) error {
	if w == nil {
		return errors.New("render: nil writer")
	}
	page := components.NewPage()
	page.PageTitle = title
	if host := o.initialization(title).AssetsHost; host != "" {
		page.AssetsHost = host
	}
	page.AddCharts(PieChart(p, o), ScatterChart(s, o))
	return page.Render(w)
}
