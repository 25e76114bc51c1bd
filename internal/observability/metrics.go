package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// ApprovalResolutionsTotal counts resolver calls by the effective
	// approval level (version, technology, default).
	ApprovalResolutionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_approval_resolutions_total",
			Help: "Number of approval resolutions by effective level.",
		},
		[]string{"level"},
	)

	// ViolationEvaluationsTotal counts violation evaluator runs.
	ViolationEvaluationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_violation_evaluations_total",
			Help: "Total number of policy violation evaluations.",
		},
	)

	// ViolationsFound tracks the violation count of the last evaluation per
	// severity bucket.
	ViolationsFound = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "catalog_violations_found",
			Help: "Violations found in the most recent evaluation by severity.",
		},
		[]string{"severity"},
	)

	// ViolationEvaluationDuration observes evaluator latency.
	ViolationEvaluationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "catalog_violation_evaluation_duration_seconds",
			Help:    "Time taken to evaluate policy violations.",
			Buckets: prometheus.DefBuckets,
		},
	)
)

func init() {
	prometheus.MustRegister(
		ApprovalResolutionsTotal,
		ViolationEvaluationsTotal,
		ViolationsFound,
		ViolationEvaluationDuration,
	)
}
