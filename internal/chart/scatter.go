package chart

import (
	"fmt"

	"github.com/example/launchdash/internal/dataset"
	"github.com/example/launchdash/internal/selection"
)

// Scatter titles.
const (
	TitleCorrelationAllSites = "Correlation between Payload and Success for All Sites"
	titleCorrelationSite     = "Correlation between Payload and Success for Site %s"
)

// BuildScatter plots payload mass against outcome class, one point per record
// and one series per booster version category. Points are never merged.
func BuildScatter(view selection.View, site selection.SiteFilter) Scatter {
	title := TitleCorrelationAllSites
	yLabel := "class"
	if !site.IsAll() {
		title = fmt.Sprintf(titleCorrelationSite, site)
		yLabel = "Mission Outcome"
	}
	out := Scatter{
		Kind:        KindScatter,
		Title:       title,
		XAxis:       Axis{Field: dataset.ColumnPayloadMassKg, Label: "Payload Mass (kg)"},
		YAxis:       Axis{Field: dataset.ColumnClass, Label: yLabel},
		ColorField:  dataset.ColumnBoosterVersionCategory,
		HoverFields: []string{dataset.ColumnLaunchSite},
		Series:      []Series{},
	}
	pos := make(map[string]int)
	for _, rec := range view {
		i, ok := pos[rec.BoosterVersionCategory]
		if !ok {
			i = len(out.Series)
			pos[rec.BoosterVersionCategory] = i
			out.Series = append(out.Series, Series{Name: rec.BoosterVersionCategory, Points: []Point{}})
		}
		out.Series[i].Points = append(out.Series[i].Points, Point{
			X:                      rec.PayloadMassKg,
			Y:                      rec.OutcomeClass,
			LaunchSite:             rec.LaunchSite,
			BoosterVersionCategory: rec.BoosterVersionCategory,
		})
	}
	return out
}
