package testbed

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Trials        prometheus.Counter
	Pulls         *prometheus.CounterVec
	Skipped       *prometheus.CounterVec
	AverageReward *prometheus.HistogramVec
}

// NewMetrics registers the testbed collectors on reg. A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Trials: factory.NewCounter(prometheus.CounterOpts{
			Name: "narmbandit_trials_total",
			Help: "Completed simulation trials",
		}),
		Pulls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "narmbandit_pulls_total",
				Help: "Arm pulls made by each policy",
			},
			[]string{"policy"},
		),
		Skipped: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "narmbandit_policy_skipped_total",
				Help: "Policy runs not performed because the pull budget was too small",
			},
			[]string{"policy"},
		),
		AverageReward: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "narmbandit_average_reward",
				Help:    "Realized average reward per policy run",
				Buckets: prometheus.LinearBuckets(0.1, 0.1, 10),
			},
			[]string{"policy"},
		),
	}
}
