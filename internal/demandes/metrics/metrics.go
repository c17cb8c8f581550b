package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the demandes module.
type Metrics struct {
	Submitted      *prometheus.CounterVec
	SubmitFailures prometheus.Counter
	Transitions    *prometheus.CounterVec
}

// New creates a new Metrics instance with all demandes metrics registered.
func New() *Metrics {
	return &Metrics{
		Submitted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "cdp_demandes_submitted_total",
			Help: "Total demandes submitted by form type",
		}, []string{"type"}),
		SubmitFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cdp_demandes_submit_failures_total",
			Help: "Submissions that could not be recorded",
		}),
		Transitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "cdp_demandes_status_transitions_total",
			Help: "Status transitions by target status",
		}, []string{"status"}),
	}
}

func (m *Metrics) IncrementSubmitted(formType string) {
	if m != nil {
		m.Submitted.WithLabelValues(formType).Inc()
	}
}

func (m *Metrics) IncrementSubmitFailure() {
	if m != nil {
		m.SubmitFailures.Inc()
	}
}

func (m *Metrics) IncrementTransition(status string) {
	if m != nil {
		m.Transitions.WithLabelValues(status).Inc()
	}
}
