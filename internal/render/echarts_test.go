package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/example/launchdash/internal/chart"
	"github.com/example/launchdash/internal/dataset"
	"github.com/example/launchdash/internal/selection"
)

func figures(view selection.View, site selection.SiteFilter) (chart.Pie, chart.Scatter) {
	return chart.BuildPie(view, site), chart.BuildScatter(view, site)
}

func TestWritePageIncludesBothCharts(t *testing.T) {
	view := selection.View{
		{LaunchSite: "KSC LC-39A", PayloadMassKg: 2490, BoosterVersionCategory: "FT", OutcomeClass: 1},
		{LaunchSite: "VAFB SLC-4E", PayloadMassKg: 475, BoosterVersionCategory: "B4", OutcomeClass: 0},
	}
	pie, sc := figures(view, selection.AllSites)

	var buf bytes.Buffer
	if err := WritePage(&buf, "SpaceX Launch Records Dashboard", pie, sc, Options{}); err != nil {
		t.Fatalf("WritePage returned error: %v", err)
	}
	html := buf.String()
	for _, want := range []string{
		"SpaceX Launch Records Dashboard",
		chart.TitleSuccessBySite,
		chart.TitleCorrelationAllSites,
		"KSC LC-39A",
		"echarts",
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected page to contain %q", want)
		}
	}
}

func TestWritePageHandlesEmptyFigures(t *testing.T) {
	pie, sc := figures(selection.View{}, "CCAFS LC-40")
	var buf bytes.Buffer
	if err := WritePage(&buf, "empty selection", pie, sc, Options{AssetsHost: "http://127.0.0.1:9000/assets"}); err != nil {
		t.Fatalf("WritePage returned error: %v", err)
	}
	if !strings.Contains(buf.String(), "Total Launches from site CCAFS LC-40") {
		t.Fatalf("expected empty pie title in output")
	}
}

func TestWritePageRejectsNilWriter(t *testing.T) {
	if err := WritePage(nil, "x", chart.Pie{}, chart.Scatter{}, Options{}); err == nil {
		t.Fatalf("expected error for nil writer")
	}
}

func TestScatterChartKeepsEveryPoint(t *testing.T) {
	ds := dataset.FromRecords([]dataset.LaunchRecord{
		{LaunchSite: "VAFB SLC-4E", PayloadMassKg: 9600, BoosterVersionCategory: "FT", OutcomeClass: 1},
		{LaunchSite: "VAFB SLC-4E", PayloadMassKg: 9600, BoosterVersionCategory: "FT", OutcomeClass: 1},
	})
	sc := chart.BuildScatter(selection.View(ds.Records()), selection.AllSites)
	out := ScatterChart(sc, Options{})
	if len(out.MultiSeries) != 1 {
		t.Fatalf("expected one series, got %d", len(out.MultiSeries))
	}
	data, ok := out.MultiSeries[0].Data.([]opts.ScatterData)
	if !ok || len(data) != 2 {
		t.Fatalf("expected two scatter points, got %#v", out.MultiSeries[0].Data)
	}
}

func TestScriptURL(t *testing.T) {
	cases := []struct {
		host string
		want string
	}{
		{"", DefaultAssetsHost + "echarts.min.js"},
		{"http://127.0.0.1:9000/assets", "http://127.0.0.1:9000/assets/echarts.min.js"},
		{"/static/", "/static/echarts.min.js"},
	}
	for _, tc := range cases {
		if got := (Options{AssetsHost: tc.host}).ScriptURL(); got != tc.want {
			t.Fatalf("ScriptURL(%q)=%q want %q", tc.host, got, tc.want)
		}
	}
}
