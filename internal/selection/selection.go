// Package selection turns the dashboard's control values into filtered views
// of the launch table. Every function is pure: the dataset is only read and
// each call returns a freshly allocated view.
package selection

import (
	"math"

	"github.com/example/launchdash/internal/dataset"
)

// SiteFilter is the site dropdown value: AllSites or one launch site.
type SiteFilter string

// AllSites selects every launch site.
const AllSites SiteFilter = "ALL"

// IsAll reports whether the filter selects every site. An empty filter is
// treated as AllSites so a missing query parameter behaves like the default.
func (s SiteFilter) IsAll() bool {
	return s == AllSites || s == ""
}

// PayloadRange is an inclusive payload mass interval in kilograms.
type PayloadRange struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// Valid reports whether the range can match anything at all.
func (r PayloadRange) Valid() bool {
	if math.IsNaN(r.Low) || math.IsNaN(r.High) {
		return false
	}
	return r.Low <= r.High
}

// Contains reports whether Low <= mass <= High.
func (r PayloadRange) Contains(mass float64) bool {
	return r.Low <= mass && mass <= r.High
}

// State is the full set of control values driving the dashboard.
type State struct {
	Site    SiteFilter   `json:"site"`
	Payload PayloadRange `json:"payload"`
}

// DefaultState selects every site over the full observed payload range.
func DefaultState(bounds dataset.PayloadBounds) State {
	return State{
		Site:    AllSites,
		Payload: PayloadRange{Low: float64(bounds.Min), High: float64(bounds.Max)},
	}
}

// View is a derived, ephemeral subset of the dataset.
type View []dataset.LaunchRecord

// SelectLaunches keeps the records inside payload and, unless site is
// AllSites, launched from site. An invalid range yields an empty view.
func SelectLaunches(ds *dataset.Dataset, site SiteFilter, payload PayloadRange) View {
	view := View{}
	if !payload.Valid() {
		return view
	}
	ds.Each(func(rec dataset.LaunchRecord) {
		if !payload.Contains(rec.PayloadMassKg) {
			return
		}
		if !site.IsAll() && rec.LaunchSite != string(site) {
			return
		}
		view = append(view, rec)
	})
	return view
}

// Select applies a full State.
func Select(ds *dataset.Dataset, state State) View {
	return SelectLaunches(ds, state.Site, state.Payload)
}

// SuccessesAcrossAllSites returns every successful launch regardless of
// payload. It feeds the all-sites pie chart, which ignores the payload range.
func SuccessesAcrossAllSites(ds *dataset.Dataset) View {
	view := View{}
	ds.Each(func(rec dataset.LaunchRecord) {
		if rec.Succeeded() {
			view = append(view, rec)
		}
	})
	return view
}

// SiteRecords returns every launch from one site regardless of payload or
// outcome. For AllSites it returns the whole table.
func SiteRecords(ds *dataset.Dataset, site SiteFilter) View {
	view := View{}
	ds.Each(func(rec dataset.LaunchRecord) {
		if site.IsAll() || rec.LaunchSite == string(site) {
			view = append(view, rec)
		}
	})
	return view
}

// SiteOption is one entry of the site dropdown.
type SiteOption struct {
	Label string     `json:"label"`
	Value SiteFilter `json:"value"`
}

// Options lists the dropdown entries: All Sites first, then each observed
// site in first-appearance order.
func Options(ds *dataset.Dataset) []SiteOption {
	sites := ds.Sites()
	out := make([]SiteOption, 0, len(sites)+1)
	out = append(out, SiteOption{Label: "All Sites", Value: AllSites})
	for _, site := range sites {
		out = append(out, SiteOption{Label: site, Value: SiteFilter(site)})
	}
	return out
}
