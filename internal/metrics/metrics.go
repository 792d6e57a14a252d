// Package metrics mirrors the teacher's pkg/metrics/metrics.go counter-vec
// registration pattern, minus the controller-runtime metrics.Registry this
// repo has no use for (there is no operator manager here to own it).
package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "oncall_scheduler"

var (
	// SolveAttemptsCounter counts relaxation-loop attempts, labeled by the
	// solver status each attempt ended with.
	SolveAttemptsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "solver",
			Name:      "attempts_total",
			Help:      "Number of CP-SAT solve attempts, labeled by resulting status.",
		},
		[]string{"status"},
	)

	// RulesRelaxedCounter counts how many times each rule id has been
	// disabled by the relaxation loop across all solves.
	RulesRelaxedCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "solver",
			Name:      "rules_relaxed_total",
			Help:      "Number of times a rule id was disabled by the relaxation loop.",
		},
		[]string{"rule_id"},
	)

	// SolveWallTimeSeconds observes the cumulative wall time (spec §5: sum
	// of attempt times) of a single Assign/Validate call.
	SolveWallTimeSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "solver",
			Name:      "wall_time_seconds",
			Help:      "Cumulative wall time of one Assign or Validate call.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)

// MustRegister registers the collectors with the default Prometheus
// registerer. Safe to call once at process startup.
func MustRegister() {
	prometheus.DefaultRegisterer.MustRegister(SolveAttemptsCounter, RulesRelaxedCounter, SolveWallTimeSeconds)
}
