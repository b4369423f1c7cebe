package dashboard

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/example/launchdash/internal/binding"
)

type metrics struct {
	registry   *prometheus.Registry
	selections prometheus.Counter
	builds     *prometheus.CounterVec
	filtered   prometheus.Histogram
	clients    prometheus.Gauge
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		selections: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "launchdash_selections_total",
			Help: "Selections evaluated across HTTP and websocket clients.",
		}),
		builds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "launchdash_figure_builds_total",
			Help: "Figures rebuilt, by output slot.",
		}, []string{"slot"}),
		filtered: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "launchdash_filtered_records",
			Help:    "Records left after applying a selection.",
			Buckets: prometheus.LinearBuckets(0, 10, 10),
		}),
		clients: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "launchdash_ws_clients",
			Help: "Connected websocket clients.",
		}),
	}
	m.registry.MustRegister(m.selections, m.builds, m.filtered, m.clients)
	return m
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *metrics) observeSelection(records int) {
	m.selections.Inc()
	m.filtered.Observe(float64(records))
}

func (m *metrics) figureBuilt(slot binding.Slot) {
	m.builds.WithLabelValues(string(slot)).Inc()
}
