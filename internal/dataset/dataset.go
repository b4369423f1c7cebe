// Package dataset loads the launch records table that every dashboard view is
// derived from. A Dataset is built once at startup and never mutated, so it can
// be shared by the selection engine, the chart builders and every websocket
// session without locking.
package dataset

import "math"

// LaunchRecord is one row of the launch table.
type LaunchRecord struct {
	LaunchSite             string  `json:"launch_site" yaml:"launchSite"`
	PayloadMassKg          float64 `json:"payload_mass_kg" yaml:"payloadMassKg"`
	BoosterVersionCategory string  `json:"booster_version_category" yaml:"boosterVersionCategory"`
	OutcomeClass           int     `json:"class" yaml:"class"`
}

// Succeeded reports whether the launch outcome class is 1.
func (r LaunchRecord) Succeeded() bool {
	return r.OutcomeClass == 1
}

// PayloadBounds holds the observed payload extremes truncated toward zero.
type PayloadBounds struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Dataset is an ordered, read-only sequence of launch records.
type Dataset struct {
	records []LaunchRecord
	sites   []string
	bounds  PayloadBounds
}

// FromRecords builds a Dataset from records. The slice is copied.
func FromRecords(records []LaunchRecord) *Dataset {
	ds := &Dataset{records: append([]LaunchRecord(nil), records...)}
	ds.index()
	return ds
}

func (d *Dataset) index() {
	seen := make(map[string]struct{})
	minPayload, maxPayload := math.Inf(1), math.Inf(-1)
	for _, rec := range d.records {
		if _, ok := seen[rec.LaunchSite]; !ok {
			seen[rec.LaunchSite] = struct{}{}
			d.sites = append(d.sites, rec.LaunchSite)
		}
		minPayload = math.Min(minPayload, rec.PayloadMassKg)
		maxPayload = math.Max(maxPayload, rec.PayloadMassKg)
	}
	if len(d.records) == 0 {
		return
	}
	d.bounds = PayloadBounds{Min: int(math.Trunc(minPayload)), Max: int(math.Trunc(maxPayload))}
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.records)
}

// Records returns a copy of every record in load order.
func (d *Dataset) Records() []LaunchRecord {
	if d == nil {
		return nil
	}
	return append([]LaunchRecord(nil), d.records...)
}

// Each calls fn for every record in load order without copying the table.
func (d *Dataset) Each(fn func(LaunchRecord)) {
	if d == nil {
		return
	}
	for _, rec := range d.records {
		fn(rec)
	}
}

// Sites lists distinct launch sites in first-appearance order.
func (d *Dataset) Sites() []string {
	if d == nil {
		return nil
	}
	return append([]string(nil), d.sites...)
}

// HasSite reports whether any record was launched from site.
func (d *Dataset) HasSite(site string) bool {
	if d == nil {
		return false
	}
	for _, s := range d.sites {
		if s == site {
			return true
		}
	}
	return false
}

// Bounds returns the payload extremes; an empty dataset reports {0, 0}.
func (d *Dataset) Bounds() PayloadBounds {
	if d == nil {
		return PayloadBounds{}
	}
	return d.bounds
}
