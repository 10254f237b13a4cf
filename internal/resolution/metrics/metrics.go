package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the resolution workflow.
type Metrics struct {
	// Committed resolutions by outcome
	Resolutions *prometheus.CounterVec

	// Civil-registry decommissions
	Decommissions prometheus.Counter

	// Rejected operations on already-archived records
	InvalidTransitions prometheus.Counter
}

// New creates a Metrics instance with all resolution metrics registered.
func New() *Metrics {
	return &Metrics{
		Resolutions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "voteguard_resolutions_total",
			Help: "Total committed resolutions by outcome",
		}, []string{"outcome"}),

		Decommissions: promauto.NewCounter(prometheus.CounterOpts{
			Name: "voteguard_decommissions_total",
			Help: "Total records decommissioned through the civil-registry path",
		}),

		InvalidTransitions: promauto.NewCounter(prometheus.CounterOpts{
			Name: "voteguard_invalid_transitions_total",
			Help: "Total workflow operations rejected because the record was already archived",
		}),
	}
}

// IncrementResolution records a committed resolution.
func (m *Metrics) IncrementResolution(outcome string) {
	if m != nil {
		m.Resolutions.WithLabelValues(outcome).Inc()
	}
}

// IncrementDecommission records a committed decommission.
func (m *Metrics) IncrementDecommission() {
	if m != nil {
		m.Decommissions.Inc()
	}
}

// IncrementInvalidTransition records a rejected operation on an archived record.
func (m *Metrics) IncrementInvalidTransition() {
	if m != nil {
		m.InvalidTransitions.Inc()
	}
}
