package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Page/API request volume
	RequestsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "requests_total",
		Help: "Total number of HTTP requests served.",
	})

	// Concurrency (in flight)
	ActiveRequests = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "active_requests",
		Help: "Current number of in-flight HTTP requests.",
	})

	// Journal submissions that passed input validation
	SubmissionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "submissions_total",
		Help: "Total number of journal entries submitted for analysis.",
	})

	// Inference backend call volume, by endpoint and outcome
	BackendRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "backend_requests_total",
		Help: "Total calls to the inference backend.",
	}, []string{"endpoint", "status"})

	// Inference backend latency
	BackendRequestDurationSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "backend_request_duration_seconds",
		Help:    "Duration of calls to the inference backend.",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
	}, []string{"endpoint"})
)

func MustRegister(reg prometheus.Registerer) {
	reg.MustRegister(
		RequestsTotal,
		ActiveRequests,
		SubmissionsTotal,
		BackendRequestsTotal,
		BackendRequestDurationSeconds,
	)
}
