package chart

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/example/launchdash/internal/dataset"
	"github.com/example/launchdash/internal/selection"
)

func launches() *dataset.Dataset {
	return dataset.FromRecords([]dataset.LaunchRecord{
		{LaunchSite: "CCAFS LC-40", PayloadMassKg: 0, BoosterVersionCategory: "v1.0", OutcomeClass: 0},
		{LaunchSite: "CCAFS LC-40", PayloadMassKg: 500, BoosterVersionCategory: "v1.0", OutcomeClass: 0},
		{LaunchSite: "CCAFS LC-40", PayloadMassKg: 2034, BoosterVersionCategory: "FT", OutcomeClass: 1},
		{LaunchSite: "VAFB SLC-4E", PayloadMassKg: 9600, BoosterVersionCategory: "FT", OutcomeClass: 1},
		{LaunchSite: "VAFB SLC-4E", PayloadMassKg: 9600, BoosterVersionCategory: "FT", OutcomeClass: 1},
		{LaunchSite: "KSC LC-39A", PayloadMassKg: 2490, BoosterVersionCategory: "FT", OutcomeClass: 1},
		{LaunchSite: "KSC LC-39A", PayloadMassKg: 3500, BoosterVersionCategory: "B5", OutcomeClass: 0},
	})
}

func TestBuildPieAllSitesCountsSuccessesBySite(t *testing.T) {
	ds := launches()
	pie := BuildPie(selection.SuccessesAcrossAllSites(ds), selection.AllSites)
	want := Pie{
		Kind:  KindPie,
		Title: "Total Success Launches by Site",
		Slices: []Slice{
			{Key: "CCAFS LC-40", Label: "CCAFS LC-40", Value: 1},
			{Key: "VAFB SLC-4E", Label: "VAFB SLC-4E", Value: 2},
			{Key: "KSC LC-39A", Label: "KSC LC-39A", Value: 1},
		},
	}
	if diff := cmp.Diff(want, pie); diff != "" {
		t.Fatalf("pie mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildPieSingleSiteCountsOutcomes(t *testing.T) {
	ds := launches()
	pie := BuildPie(selection.SiteRecords(ds, "CCAFS LC-40"), "CCAFS LC-40")
	want := Pie{
		Kind:  KindPie,
		Title: "Total Launches from site CCAFS LC-40",
		Slices: []Slice{
			{Key: "0", Label: "Failure", Value: 2},
			{Key: "1", Label: "Success", Value: 1},
		},
	}
	if diff := cmp.Diff(want, pie); diff != "" {
		t.Fatalf("pie mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildPieOnlyPresentOutcomes(t *testing.T) {
	ds := launches()
	pie := BuildPie(selection.SiteRecords(ds, "VAFB SLC-4E"), "VAFB SLC-4E")
	if len(pie.Slices) != 1 || pie.Slices[0].Key != "1" {
		t.Fatalf("expected only a success slice, got %+v", pie.Slices)
	}
}

func TestBuildPieSlicesSumToView(t *testing.T) {
	ds := launches()
	views := map[selection.SiteFilter]selection.View{
		selection.AllSites: selection.SuccessesAcrossAllSites(ds),
		"CCAFS LC-40":      selection.SiteRecords(ds, "CCAFS LC-40"),
		"KSC LC-39A":       selection.SiteRecords(ds, "KSC LC-39A"),
		"Nowhere":          selection.SiteRecords(ds, "Nowhere"),
	}
	for site, view := range views {
		if got := BuildPie(view, site).Total(); got != len(view) {
			t.Fatalf("site %s: slices sum to %d, view has %d", site, got, len(view))
		}
	}
	// The builders count whatever view they get, including an unfiltered one.
	all := selection.View(ds.Records())
	if got := BuildPie(all, selection.AllSites).Total(); got != len(all) {
		t.Fatalf("slices sum to %d, view has %d", got, len(all))
	}
}

func TestBuildScatterGroupsByBoosterWithoutMerging(t *testing.T) {
	ds := launches()
	view := selection.SelectLaunches(ds, selection.AllSites, selection.PayloadRange{Low: 0, High: 10000})
	sc := BuildScatter(view, selection.AllSites)
	if sc.Title != "Correlation between Payload and Success for All Sites" {
		t.Fatalf("unexpected title %q", sc.Title)
	}
	if sc.YAxis.Label != "class" || sc.XAxis.Field != "payload_mass_kg" {
		t.Fatalf("unexpected axes: %+v %+v", sc.XAxis, sc.YAxis)
	}
	if diff := cmp.Diff([]string{"launch_site"}, sc.HoverFields); diff != "" {
		t.Fatalf("hover fields mismatch (-want +got):\n%s", diff)
	}
	names := make([]string, 0, len(sc.Series))
	for _, s := range sc.Series {
		names = append(names, s.Name)
	}
	if diff := cmp.Diff([]string{"v1.0", "FT", "B5"}, names); diff != "" {
		t.Fatalf("series order mismatch (-want +got):\n%s", diff)
	}
	if sc.PointCount() != len(view) {
		t.Fatalf("expected %d points, got %d", len(view), sc.PointCount())
	}
	ft := sc.Series[1]
	dupes := 0
	for _, p := range ft.Points {
		if p.X == 9600 && p.Y == 1 {
			dupes++
			if p.LaunchSite != "VAFB SLC-4E" {
				t.Fatalf("hover site missing on %+v", p)
			}
		}
	}
	if dupes != 2 {
		t.Fatalf("duplicate coordinates must stay separate points, got %d", dupes)
	}
}

func TestBuildScatterSingleSiteTitle(t *testing.T) {
	ds := launches()
	view := selection.SelectLaunches(ds, "KSC LC-39A", selection.PayloadRange{Low: 0, High: 10000})
	sc := BuildScatter(view, "KSC LC-39A")
	if sc.Title != "Correlation between Payload and Success for Site KSC LC-39A" {
		t.Fatalf("unexpected title %q", sc.Title)
	}
	if sc.YAxis.Label != "Mission Outcome" {
		t.Fatalf("unexpected y label %q", sc.YAxis.Label)
	}
	for _, s := range sc.Series {
		for _, p := range s.Points {
			if p.LaunchSite != "KSC LC-39A" {
				t.Fatalf("point from another site: %+v", p)
			}
		}
	}
}

func TestBuildersAcceptEmptyViews(t *testing.T) {
	empty := selection.SelectLaunches(launches(), selection.AllSites, selection.PayloadRange{Low: 20000, High: 21000})
	pie := BuildPie(empty, selection.AllSites)
	sc := BuildScatter(empty, selection.AllSites)
	sitePie := BuildPie(empty, "CCAFS LC-40")
	if pie.Slices == nil || sc.Series == nil || sitePie.Slices == nil {
		t.Fatalf("empty figures must carry empty, non-nil collections")
	}
	if pie.Total() != 0 || sc.PointCount() != 0 || sitePie.Total() != 0 {
		t.Fatalf("expected empty figures")
	}
	raw, err := json.Marshal(struct {
		Pie     Pie     `json:"pie"`
		Scatter Scatter `json:"scatter"`
	}{pie, sc})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := decoded["pie"]["slices"].([]any); !ok {
		t.Fatalf("slices should encode as an empty array, got %s", raw)
	}
	if _, ok := decoded["scatter"]["series"].([]any); !ok {
		t.Fatalf("series should encode as an empty array, got %s", raw)
	}
}
