package selection

import (
	"context"
	"math"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/example/launchdash/internal/dataset"
)

func loadLaunches(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.Load(context.Background(), filepath.Join("..", "..", "data", "spacex_launch_dash.csv"))
	if err != nil {
		t.Fatalf("load dataset: %v", err)
	}
	return ds
}

func counts(records []dataset.LaunchRecord) map[dataset.LaunchRecord]int {
	out := make(map[dataset.LaunchRecord]int)
	for _, r := range records {
		out[r]++
	}
	return out
}

var ranges = []PayloadRange{
	{Low: 0, High: 10000},
	{Low: 0, High: 0},
	{Low: 500, High: 500},
	{Low: 2000, High: 5000},
	{Low: 4999.5, High: 9600},
	{Low: 20000, High: 21000},
	{Low: 6000, High: 1000},
	{Low: math.NaN(), High: 1000},
}

func sitesUnderTest(ds *dataset.Dataset) []SiteFilter {
	out := []SiteFilter{AllSites, "Nowhere"}
	for _, s := range ds.Sites() {
		out = append(out, SiteFilter(s))
	}
	return out
}

func TestSelectLaunchesSoundAndComplete(t *testing.T) {
	ds := loadLaunches(t)
	for _, site := range sitesUnderTest(ds) {
		for _, pr := range ranges {
			view := SelectLaunches(ds, site, pr)
			if view == nil {
				t.Fatalf("view must never be nil (site=%s range=%+v)", site, pr)
			}
			selected := counts(view)
			all := counts(ds.Records())
			for rec, n := range selected {
				if all[rec] < n {
					t.Fatalf("view invented or duplicated %+v", rec)
				}
				if !pr.Contains(rec.PayloadMassKg) {
					t.Fatalf("record %+v outside range %+v", rec, pr)
				}
				if !site.IsAll() && rec.LaunchSite != string(site) {
					t.Fatalf("record %+v outside site %s", rec, site)
				}
			}
			for rec, n := range all {
				matches := pr.Valid() && pr.Contains(rec.PayloadMassKg) && (site.IsAll() || rec.LaunchSite == string(site))
				if matches && selected[rec] != n {
					t.Fatalf("matching record %+v missing from view (site=%s range=%+v)", rec, site, pr)
				}
			}
		}
	}
}

func TestSelectLaunchesIdentityAtExtremes(t *testing.T) {
	ds := loadLaunches(t)
	b := ds.Bounds()
	view := SelectLaunches(ds, AllSites, PayloadRange{Low: float64(b.Min), High: float64(b.Max)})
	if diff := cmp.Diff(ds.Records(), []dataset.LaunchRecord(view)); diff != "" {
		t.Fatalf("expected full dataset (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(ds.Records(), []dataset.LaunchRecord(Select(ds, DefaultState(b)))); diff != "" {
		t.Fatalf("default state should select everything (-want +got):\n%s", diff)
	}
}

func TestSelectLaunchesIdempotent(t *testing.T) {
	ds := loadLaunches(t)
	for _, pr := range ranges[:5] {
		first := SelectLaunches(ds, "KSC LC-39A", pr)
		second := SelectLaunches(ds, "KSC LC-39A", pr)
		if diff := cmp.Diff(first, second); diff != "" {
			t.Fatalf("repeated selection differs (-first +second):\n%s", diff)
		}
	}
}

func TestSelectLaunchesMonotonic(t *testing.T) {
	ds := loadLaunches(t)
	for _, site := range sitesUnderTest(ds) {
		prev := -1
		for high := 0.0; high <= 10000; high += 250 {
			n := len(SelectLaunches(ds, site, PayloadRange{Low: 0, High: high}))
			if n < prev {
				t.Fatalf("widening high to %v shrank %s from %d to %d", high, site, prev, n)
			}
			prev = n
		}
		prev = -1
		for low := 10000.0; low >= 0; low -= 250 {
			n := len(SelectLaunches(ds, site, PayloadRange{Low: low, High: 10000}))
			if n < prev {
				t.Fatalf("lowering low to %v shrank %s from %d to %d", low, site, prev, n)
			}
			prev = n
		}
	}
}

func TestScenarioSingleSite(t *testing.T) {
	ds := loadLaunches(t)
	view := SelectLaunches(ds, "CCAFS LC-40", PayloadRange{Low: 0, High: 10000})
	var want []dataset.LaunchRecord
	for _, r := range ds.Records() {
		if r.LaunchSite == "CCAFS LC-40" {
			want = append(want, r)
		}
	}
	if diff := cmp.Diff(want, []dataset.LaunchRecord(view)); diff != "" {
		t.Fatalf("CCAFS LC-40 selection mismatch (-want +got):\n%s", diff)
	}
	if len(view) != 26 {
		t.Fatalf("expected 26 CCAFS LC-40 launches, got %d", len(view))
	}
}

func TestScenarioDegenerateRange(t *testing.T) {
	ds := loadLaunches(t)
	view := SelectLaunches(ds, AllSites, PayloadRange{Low: 500, High: 500})
	if len(view) != 2 {
		t.Fatalf("expected 2 launches at exactly 500kg, got %d", len(view))
	}
	sites := map[string]bool{}
	for _, r := range view {
		if r.PayloadMassKg != 500 {
			t.Fatalf("unexpected payload %v", r.PayloadMassKg)
		}
		sites[r.LaunchSite] = true
	}
	if len(sites) != 2 {
		t.Fatalf("degenerate range must match across sites, got %v", sites)
	}
}

func TestScenarioRangeExcludesEverything(t *testing.T) {
	ds := loadLaunches(t)
	view := SelectLaunches(ds, AllSites, PayloadRange{Low: 20000, High: 21000})
	if view == nil || len(view) != 0 {
		t.Fatalf("expected empty non-nil view, got %#v", view)
	}
}

func TestInvalidSelectionYieldsEmptyView(t *testing.T) {
	ds := loadLaunches(t)
	for _, pr := range []PayloadRange{{Low: 5000, High: 1000}, {Low: math.NaN(), High: 1}, {Low: 0, High: math.NaN()}} {
		if pr.Valid() {
			t.Fatalf("%+v should be invalid", pr)
		}
		if got := SelectLaunches(ds, AllSites, pr); len(got) != 0 {
			t.Fatalf("invalid range %+v returned %d records", pr, len(got))
		}
	}
}

func TestSuccessesAcrossAllSitesIgnoresPayload(t *testing.T) {
	ds := loadLaunches(t)
	view := SuccessesAcrossAllSites(ds)
	if len(view) != 23 {
		t.Fatalf("expected 23 successes, got %d", len(view))
	}
	for _, r := range view {
		if r.OutcomeClass != 1 {
			t.Fatalf("non-success record in view: %+v", r)
		}
	}
}

func TestSiteRecords(t *testing.T) {
	ds := loadLaunches(t)
	if got := len(SiteRecords(ds, "VAFB SLC-4E")); got != 10 {
		t.Fatalf("expected 10 VAFB launches, got %d", got)
	}
	if got := len(SiteRecords(ds, AllSites)); got != ds.Len() {
		t.Fatalf("AllSites should return every record, got %d", got)
	}
	if got := SiteRecords(ds, "Nowhere"); got == nil || len(got) != 0 {
		t.Fatalf("unknown site should give empty non-nil view, got %#v", got)
	}
}

func TestOptions(t *testing.T) {
	ds := loadLaunches(t)
	want := []SiteOption{
		{Label: "All Sites", Value: AllSites},
		{Label: "CCAFS LC-40", Value: "CCAFS LC-40"},
		{Label: "VAFB SLC-4E", Value: "VAFB SLC-4E"},
		{Label: "KSC LC-39A", Value: "KSC LC-39A"},
		{Label: "CCAFS SLC-40", Value: "CCAFS SLC-40"},
	}
	if diff := cmp.Diff(want, Options(ds)); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestSelectLaunchesOnNilDataset(t *testing.T) {
	if got := SelectLaunches(nil, AllSites, PayloadRange{Low: 0, High: 1}); got == nil || len(got) != 0 {
		t.Fatalf("expected empty view for nil dataset, got %#v", got)
	}
}
