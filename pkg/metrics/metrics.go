package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "brandsite", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "brandsite", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
	StoreOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "brandsite", Name: "store_operations_total", Help: "Document store operations by operation, collection and result."},
		[]string{"operation", "collection", "result"},
	)
	StoreDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "brandsite",
			Name:      "store_operation_duration_seconds",
			Help:      "Duration of document store operations.",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"operation", "collection"},
	)
	Submissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "brandsite", Name: "submissions_total", Help: "Create requests by schema and outcome (ok, invalid, error)."},
		[]string{"schema", "outcome"},
	)
	ListDegraded = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "brandsite", Name: "project_list_degraded_total", Help: "Project listings answered with an empty result because the store failed."},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
	reg.MustRegister(StoreOperations)
	reg.MustRegister(StoreDuration)
	reg.MustRegister(Submissions)
	reg.MustRegister(ListDegraded)
}
