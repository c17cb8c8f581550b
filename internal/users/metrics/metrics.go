package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for accounts and logins.
type Metrics struct {
	Logins       *prometheus.CounterVec
	UsersCreated prometheus.Counter
}

func New() *Metrics {
	return &Metrics{
		Logins: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "cdp_users_logins_total",
			Help: "Login attempts by outcome",
		}, []string{"outcome"}), // outcome: "success", "failure"
		UsersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cdp_users_created_total",
			Help: "Accounts created, seeded administrator included",
		}),
	}
}

func (m *Metrics) IncrementLogin(success bool) {
	if m == nil {
		return
	}
	outcome := "failure"
	if success {
		outcome = "success"
	}
	m.Logins.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncrementUsersCreated() {
	if m != nil {
		m.UsersCreated.Inc()
	}
}
