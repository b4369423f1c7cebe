package selection

import (
	"fmt"
	"math"

	"github.com/example/launchdash/internal/dataset"
)

// DefaultStep is the payload slider granularity in kilograms.
const DefaultStep = 1000

// RangeControl describes the payload range slider.
type RangeControl struct {
	Min   int            `json:"min"`
	Max   int            `json:"max"`
	Step  int            `json:"step"`
	Value [2]int         `json:"value"`
	Marks map[int]string `json:"marks"`
}

// NewRangeControl derives the slider from the observed payload bounds. The
// slider extent is the bounds rounded outward to step; overrideMin and
// overrideMax replace it when non-nil.
func NewRangeControl(bounds dataset.PayloadBounds, step int, overrideMin, overrideMax *int) RangeControl {
	if step <= 0 {
		step = DefaultStep
	}
	lo := floorTo(bounds.Min, step)
	hi := ceilTo(bounds.Max, step)
	if overrideMin != nil {
		lo = *overrideMin
	}
	if overrideMax != nil {
		hi = *overrideMax
	}
	if hi < lo {
		hi = lo
	}
	marks := make(map[int]string)
	for v := bounds.Min; v <= hi; v += 2 * step {
		if v < lo {
			continue
		}
		marks[v] = fmt.Sprintf("%d Kg", v)
	}
	return RangeControl{
		Min:   lo,
		Max:   hi,
		Step:  step,
		Value: [2]int{bounds.Min, bounds.Max},
		Marks: marks,
	}
}

// Clamp restricts r to the slider extent, as the browser control would.
func (c RangeControl) Clamp(r PayloadRange) PayloadRange {
	lo, hi := float64(c.Min), float64(c.Max)
	// Keep the observed maximum reachable when the slider extent is narrower.
	if v := float64(c.Value[1]); v > hi {
		hi = v
	}
	if v := float64(c.Value[0]); v < lo {
		lo = v
	}
	return PayloadRange{Low: clamp(r.Low, lo, hi), High: clamp(r.High, lo, hi)}
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return v
	}
	return math.Max(lo, math.Min(hi, v))
}

func floorTo(v, step int) int {
	return int(math.Floor(float64(v)/float64(step))) * step
}

func ceilTo(v, step int) int {
	return int(math.Ceil(float64(v)/float64(step))) * step
}
