package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce          sync.Once
	requestsTotal         *prometheus.CounterVec
	latencySeconds        *prometheus.HistogramVec
	errorsTotal           *prometheus.CounterVec
	submissionsSavedTotal *prometheus.CounterVec
	overridesAppliedTotal *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors used for API observability.
func RegisterMetrics() {
	registerOnce.Do(func() {
		requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tahadi_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		latencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tahadi_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		errorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tahadi_errors_total",
			Help: "Total number of error responses returned by API endpoints.",
		}, []string{"method", "route", "status"})

		submissionsSavedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tahadi_submissions_saved_total",
			Help: "Daily submissions saved, labelled by outcome.",
		}, []string{"outcome"})

		overridesAppliedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tahadi_overrides_applied_total",
			Help: "Supervisor overrides applied, including clears.",
		}, []string{"kind"})

		prometheus.MustRegister(requestsTotal, latencySeconds, errorsTotal, submissionsSavedTotal, overridesAppliedTotal)
	})
}

// Requests exposes the counter for API requests.
func Requests() *prometheus.CounterVec {
	RegisterMetrics()
	return requestsTotal
}

// Latency exposes the latency histogram for API requests.
func Latency() *prometheus.HistogramVec {
	RegisterMetrics()
	return latencySeconds
}

// Errors exposes the counter for API error responses.
func Errors() *prometheus.CounterVec {
	RegisterMetrics()
	return errorsTotal
}

// SubmissionsSaved exposes the counter for saved submissions.
func SubmissionsSaved() *prometheus.CounterVec {
	RegisterMetrics()
	return submissionsSavedTotal
}

// OverridesApplied exposes the counter for applied overrides.
func OverridesApplied() *prometheus.CounterVec {
	RegisterMetrics()
	return overridesAppliedTotal
}
