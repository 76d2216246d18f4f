// Package metrics exposes Prometheus counters for rolls and roll mutations.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "inspired"

// Mutation modes
const (
	ModeConsume    = "consume"
	ModeReactivate = "reactivate"
)

// Outcome labels
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

var (
	// rollsTotal counts rolls made from a formula.
	// Labels: outcome (success, error)
	rollsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "roll",
		Name:      "rolls_total",
		Help:      "Total formula rolls by outcome",
	}, []string{"outcome"})

	// mutationsTotal counts roll mutations.
	// Labels: mode (consume, reactivate), outcome (success, error)
	mutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "mutation",
		Name:      "total",
		Help:      "Total roll mutations by mode and outcome",
	}, []string{"mode", "outcome"})

	// mutationDice counts die outcomes seen by mutations.
	// Labels: source (reused, fresh, leftover)
	mutationDice = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "mutation",
		Name:      "dice_total",
		Help:      "Die outcomes handled by mutations, by source",
	}, []string{"source"})

	// mutationDuration measures how long a mutation takes end to end.
	mutationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "mutation",
		Name:      "duration_seconds",
		Help:      "Roll mutation latency in seconds",
		Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	})
)

// RecordRoll records a formula roll.
func RecordRoll(outcome string) {
	rollsTotal.WithLabelValues(outcome).Inc()
}

// RecordMutation records a roll mutation and its duration.
func RecordMutation(mode, outcome string, elapsed time.Duration) {
	mutationsTotal.WithLabelValues(mode, outcome).Inc()
	mutationDuration.Observe(elapsed.Seconds())
}

// RecordMutationDice records how many outcomes a mutation reused from the old roll,
// drew fresh, and carried over as leftovers.
func RecordMutationDice(reused, fresh, leftover int) {
	mutationDice.WithLabelValues("reused").Add(float64(reused))
	mutationDice.WithLabelValues("fresh").Add(float64(fresh))
	mutationDice.WithLabelValues("leftover").Add(float64(leftover))
}
