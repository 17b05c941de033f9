// Package metrics provides Prometheus metrics for the referral engine.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all application metrics
type Metrics struct {
	ReferralsCreated      prometheus.Counter
	ReferralsFailed       prometheus.Counter
	PaymentsCompleted     prometheus.Counter
	WorkoutEventsRecorded prometheus.Counter
	WorkoutEventsRejected prometheus.Counter
	CredentialsRemaining  prometheus.Gauge
	AdherenceListDuration prometheus.Histogram
}

// New creates all metrics and registers them with reg. Passing nil registers
// with the default registry, which is what the server binary wants; tests
// pass their own registry so constructors can run repeatedly.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		ReferralsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "referrals_created_total",
			Help: "Total patient referrals created",
		}),
		ReferralsFailed: factory.NewCounter(prometheus.CounterOpts{
			Name: "referrals_failed_total",
			Help: "Total referral attempts that failed",
		}),
		PaymentsCompleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "payments_completed_total",
			Help: "Total payment activations applied",
		}),
		WorkoutEventsRecorded: factory.NewCounter(prometheus.CounterOpts{
			Name: "workout_events_recorded_total",
			Help: "Total workout completion events appended to the log",
		}),
		WorkoutEventsRejected: factory.NewCounter(prometheus.CounterOpts{
			Name: "workout_events_rejected_total",
			Help: "Total workout events rejected by validation",
		}),
		CredentialsRemaining: factory.NewGauge(prometheus.GaugeOpts{
			Name: "credential_pool_remaining",
			Help: "Unallocated credentials left in the pool",
		}),
		AdherenceListDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "adherence_list_duration_seconds",
			Help:    "Time spent computing the clinician adherence listing",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1},
		}),
	}
}

// Handler returns the Prometheus HTTP handler for the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
