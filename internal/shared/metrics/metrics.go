package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"service", "route", "method", "status"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"service", "route", "method"},
	)

	ModelCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "model_calls_total",
			Help: "Total number of model inference calls by task and outcome",
		},
		[]string{"provider", "task", "outcome"},
	)
	ModelCallDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "model_call_duration_seconds",
			Help:    "Model inference call duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"provider", "task"},
	)

	AssessmentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedback_assessments_total",
			Help: "Interview feedback rows assessed, by recommendation",
		},
		[]string{"recommendation"},
	)
	FeedbackRowsSkippedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedback_rows_skipped_total",
			Help: "Interview feedback rows skipped, by reason",
		},
		[]string{"reason"},
	)
	StoreWritesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedback_store_writes_total",
			Help: "Bulk writes to the feedback store, by backend and outcome",
		},
		[]string{"backend", "outcome"},
	)

	ResumesRankedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "resumes_ranked_total",
			Help: "Resumes scored against a job description",
		},
	)
	MatchPercentHistogram = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "resume_match_percent",
			Help:    "Distribution of resume match percentages",
			Buckets: []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		},
	)

	registerOnce sync.Once
)

// Init registers all collectors with the default registry. Safe to call more than once.
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			HTTPRequestsTotal,
			HTTPRequestDuration,
			ModelCallsTotal,
			ModelCallDuration,
			AssessmentsTotal,
			FeedbackRowsSkippedTotal,
			StoreWritesTotal,
			ResumesRankedTotal,
			MatchPercentHistogram,
		)
	})
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}

// ObserveHTTP records one completed request.
func ObserveHTTP(service, route, method string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	HTTPRequestsTotal.WithLabelValues(service, route, method, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(service, route, method).Observe(elapsed.Seconds())
}

// ObserveModelCall records one model invocation started at start.
func ObserveModelCall(provider, task string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	ModelCallsTotal.WithLabelValues(provider, task, outcome).Inc()
	ModelCallDuration.WithLabelValues(provider, task).Observe(time.Since(start).Seconds())
}

// ObserveStoreWrite records one bulk write to the feedback store.
func ObserveStoreWrite(backend string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	StoreWritesTotal.WithLabelValues(backend, outcome).Inc()
}
