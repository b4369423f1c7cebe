// Package summary aggregates launch outcomes per site for the CLI.
package summary

import (
	"math"

	"github.com/example/launchdash/internal/dataset"
)

// TotalLabel names the aggregate row.
const TotalLabel = "TOTAL"

// SiteSummary aggregates one launch site.
type SiteSummary struct {
	Site         string  `json:"site" yaml:"site"`
	Launches     int     `json:"launches" yaml:"launches"`
	Successes    int     `json:"successes" yaml:"successes"`
	Failures     int     `json:"failures" yaml:"failures"`
	SuccessRate  float64 `json:"successRate" yaml:"successRate"`
	MinPayloadKg float64 `json:"minPayloadKg" yaml:"minPayloadKg"`
	MaxPayloadKg float64 `json:"maxPayloadKg" yaml:"maxPayloadKg"`
}

// Report is the full site breakdown plus the aggregate row.
type Report struct {
	Sites []SiteSummary `json:"sites" yaml:"sites"`
	Total SiteSummary   `json:"total" yaml:"total"`
}

// Compute summarises ds per site in first-appearance order.
func Compute(ds *dataset.Dataset) []SiteSummary {
	sites := ds.Sites()
	rows := make([]SiteSummary, 0, len(sites))
	index := make(map[string]int, len(sites))
	for i, site := range sites {
		index[site] = i
		rows = append(rows, SiteSummary{Site: site})
	}
	ds.Each(func(rec dataset.LaunchRecord) {
		row := &rows[index[rec.LaunchSite]]
		add(row, rec.PayloadMassKg, rec.Succeeded())
	})
	for i := range rows {
		rows[i].SuccessRate = rate(rows[i])
	}
	return rows
}

// Total folds rows into a single aggregate labelled TotalLabel.
func Total(rows []SiteSummary) SiteSummary {
	total := SiteSummary{Site: TotalLabel}
	for _, row := range rows {
		if row.Launches == 0 {
			continue
		}
		if total.Launches == 0 {
			total.MinPayloadKg, total.MaxPayloadKg = row.MinPayloadKg, row.MaxPayloadKg
		}
		total.Launches += row.Launches
		total.Successes += row.Successes
		total.Failures += row.Failures
		total.MinPayloadKg = math.Min(total.MinPayloadKg, row.MinPayloadKg)
		total.MaxPayloadKg = math.Max(total.MaxPayloadKg, row.MaxPayloadKg)
	}
	total.SuccessRate = rate(total)
	return total
}

// NewReport bundles rows with their total.
func NewReport(rows []SiteSummary) Report {
	if rows == nil {
		rows = []SiteSummary{}
	}
	return Report{Sites: rows, Total: Total(rows)}
}

func add(row *SiteSummary, payload float64, succeeded bool) {
	if row.Launches == 0 {
		row.MinPayloadKg, row.MaxPayloadKg = payload, payload
	}
	row.Launches++
	if succeeded {
		row.Successes++
	} else {
		row.Failures++
	}
	row.MinPayloadKg = math.Min(row.MinPayloadKg, payload)
	row.MaxPayloadKg = math.Max(row.MaxPayloadKg, payload)
}

func rate(row SiteSummary) float64 {
	if row.Launches == 0 {
		return 0
	}
	return float64(row.Successes) / float64(row.Launches)
}
