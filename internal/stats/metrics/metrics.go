package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	SourceLatency    *prometheus.HistogramVec
	AggregateLatency prometheus.Histogram
}

func New() *Metrics {
	return &Metrics{
		SourceLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "cdp_stats_source_duration_seconds",
			Help:    "Duration of each dashboard count query by source",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"source"}), // demandes, entreprises, missions, recepisses

		AggregateLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "cdp_stats_aggregate_duration_seconds",
			Help:    "Duration of a full dashboard aggregation",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
	}
}

func (m *Metrics) ObserveSource(source string, d time.Duration) {
	if m != nil {
		m.SourceLatency.WithLabelValues(source).Observe(d.Seconds())
	}
}

func (m *Metrics) ObserveAggregate(d time.Duration) {
	if m != nil {
		m.AggregateLatency.Observe(d.Seconds())
	}
}
