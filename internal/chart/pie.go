package chart

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/example/launchdash/internal/selection"
)

// Pie titles.
const (
	TitleSuccessBySite = "Total Success Launches by Site"
	titleSiteLaunches  = "Total Launches from site %s"
)

// BuildPie counts view by launch site (AllSites) or by outcome class (one
// site). For AllSites the caller passes selection.SuccessesAcrossAllSites; for
// one site it passes that site's records. Slice values sum to len(view).
func BuildPie(view selection.View, site selection.SiteFilter) Pie {
	if site.IsAll() {
		return Pie{Kind: KindPie, Title: TitleSuccessBySite, Slices: countBySite(view)}
	}
	return Pie{Kind: KindPie, Title: fmt.Sprintf(titleSiteLaunches, site), Slices: countByOutcome(view)}
}

func countBySite(view selection.View) []Slice {
	slices := []Slice{}
	pos := make(map[string]int)
	for _, rec := range view {
		i, ok := pos[rec.LaunchSite]
		if !ok {
			i = len(slices)
			pos[rec.LaunchSite] = i
			slices = append(slices, Slice{Key: rec.LaunchSite, Label: rec.LaunchSite})
		}
		slices[i].Value++
	}
	return slices
}

func countByOutcome(view selection.View) []Slice {
	counts := make(map[int]int)
	for _, rec := range view {
		counts[rec.OutcomeClass]++
	}
	classes := make([]int, 0, len(counts))
	for class := range counts {
		classes = append(classes, class)
	}
	sort.Ints(classes)
	slices := make([]Slice, 0, len(classes))
	for _, class := range classes {
		slices = append(slices, Slice{
			Key:   strconv.Itoa(class),
			Label: outcomeLabel(class),
			Value: counts[class],
		})
	}
	return slices
}
