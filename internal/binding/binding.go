// Package binding is the dashboard's reactive layer. Each output slot
// subscribes to the inputs it reads; publishing a new selection state
// recomputes only the slots whose inputs changed, one event at a time.
package binding

import (
	"math"
	"sync"

	"github.com/example/launchdash/internal/chart"
	"github.com/example/launchdash/internal/dataset"
	"github.com/example/launchdash/internal/selection"
)

// Input is a bitmask of the controls a subscriber reads.
type Input uint8

const (
	InputSite Input = 1 << iota
	InputPayload
)

// Slot names the output a subscriber refreshes.
type Slot string

const (
	SlotPie     Slot = "success-pie-chart"
	SlotScatter Slot = "success-payload-scatter-chart"
)

// Subscriber recomputes one slot from the current state.
type Subscriber struct {
	Slot   Slot
	Inputs Input
	Build  func(selection.State) any
}

// Update carries a freshly built figure for a slot.
type Update struct {
	Slot   Slot `json:"slot"`
	Figure any  `json:"figure"`
}

// Binder dispatches selection changes to its subscribers.
type Binder struct {
	mu     sync.Mutex
	subs   []Subscriber
	last   selection.State
	primed bool
}

// New returns a Binder with the given subscribers, in dispatch order.
func New(subs ...Subscriber) *Binder {
	return &Binder{subs: append([]Subscriber(nil), subs...)}
}

// Publish records state and returns updates for every subscriber whose
// inputs changed since the previous publish. The first publish refreshes all
// subscribers. Calls are serialised.
func (b *Binder) Publish(state selection.State) []Update {
	b.mu.Lock()
	defer b.mu.Unlock()
	changed := InputSite | InputPayload
	if b.primed {
		changed = diff(b.last, state)
	}
	b.last = state
	b.primed = true

	updates := make([]Update, 0, len(b.subs))
	for _, sub := range b.subs {
		if sub.Inputs&changed == 0 {
			continue
		}
		updates = append(updates, Update{Slot: sub.Slot, Figure: sub.Build(state)})
	}
	return updates
}

// Last returns the most recently published state.
func (b *Binder) Last() (selection.State, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.last, b.primed
}

func diff(prev, next selection.State) Input {
	var changed Input
	if prev.Site != next.Site {
		changed |= InputSite
	}
	if !samePayload(prev.Payload, next.Payload) {
		changed |= InputPayload
	}
	return changed
}

func samePayload(a, b selection.PayloadRange) bool {
	// NaN never equals itself; treat two NaN bounds as unchanged.
	eq := func(x, y float64) bool { return x == y || (math.IsNaN(x) && math.IsNaN(y)) }
	return eq(a.Low, b.Low) && eq(a.High, b.High)
}

// PieFigure builds the pie for state. The all-sites pie counts successes and
// ignores the payload range; a site pie counts that site's outcomes.
func PieFigure(ds *dataset.Dataset, state selection.State) chart.Pie {
	if state.Site.IsAll() {
		return chart.BuildPie(selection.SuccessesAcrossAllSites(ds), selection.AllSites)
	}
	return chart.BuildPie(selection.SiteRecords(ds, state.Site), state.Site)
}

// ScatterFigure builds the scatter for state.
func ScatterFigure(ds *dataset.Dataset, state selection.State) chart.Scatter {
	return chart.BuildScatter(selection.Select(ds, state), state.Site)
}

// Figures computes both dashboard figures for one state.
func Figures(ds *dataset.Dataset, state selection.State) (chart.Pie, chart.Scatter) {
	return PieFigure(ds, state), ScatterFigure(ds, state)
}

// NewDashboardBinder wires the pie (site only) and scatter (site and
// payload) slots to ds.
func NewDashboardBinder(ds *dataset.Dataset) *Binder {
	return New(
		Subscriber{
			Slot:   SlotPie,
			Inputs: InputSite,
			Build:  func(s selection.State) any { return PieFigure(ds, s) },
		},
		Subscriber{
			Slot:   SlotScatter,
			Inputs: InputSite | InputPayload,
			Build:  func(s selection.State) any { return ScatterFigure(ds, s) },
		},
	)
}
