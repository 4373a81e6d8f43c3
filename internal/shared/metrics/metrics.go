package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds every collector exposed on /metrics.
var Registry = prometheus.NewRegistry()

var (
	assessmentsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "risk_assessments_total",
		Help: "Total risk assessments produced, by level.",
	}, []string{"level"})

	assessmentScore = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "risk_assessment_score",
		Help:    "Distribution of clamped risk scores.",
		Buckets: []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
	})

	validationErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "risk_validation_errors_total",
		Help: "Total assessments rejected for malformed input.",
	})

	predictionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "risk_predictions_total",
		Help: "Total cluster predictions, by risk label.",
	}, []string{"risk"})

	llmRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "risk_llm_requests_total",
		Help: "Total recommendation requests sent to the LLM, by model and outcome.",
	}, []string{"model", "outcome"})

	httpRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency by route and status.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		assessmentsTotal,
		assessmentScore,
		validationErrorsTotal,
		predictionsTotal,
		llmRequestsTotal,
		httpRequestDuration,
	)
}

// ObserveAssessment records one produced assessment.
func ObserveAssessment(level string, score int) {
	assessmentsTotal.WithLabelValues(level).Inc()
	assessmentScore.Observe(float64(score))
}

// IncValidationError counts an assessment rejected for bad input.
func IncValidationError() {
	validationErrorsTotal.Inc()
}

// IncPrediction counts a cluster prediction.
func IncPrediction(risk string) {
	predictionsTotal.WithLabelValues(risk).Inc()
}

// IncLLMRequest counts one LLM call; outcome is "ok" or "error".
func IncLLMRequest(model, outcome string) {
	llmRequestsTotal.WithLabelValues(model, outcome).Inc()
}

// ObserveHTTPRequest records request latency in seconds.
func ObserveHTTPRequest(method, route, status string, seconds float64) {
	if route == "" {
		route = "unmatched"
	}
	httpRequestDuration.WithLabelValues(method, route, status).Observe(seconds)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(Registry, promhttp.HandlerOpts{}))
}
