// Package metrics exposes Prometheus collectors for risk assessments.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the service collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	assessmentsTotal   *prometheus.CounterVec
	assessmentErrors   *prometheus.CounterVec
	finalScore         prometheus.Histogram
	classifierDuration prometheus.Histogram
	datasetLoads       *prometheus.CounterVec
	httpRequestsTotal  *prometheus.CounterVec
	httpDuration       *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		assessmentsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "risk_assessments_total",
			Help: "Completed risk assessments by category.",
		}, []string{"category"}),
		assessmentErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "risk_assessment_errors_total",
			Help: "Failed risk assessments by error kind.",
		}, []string{"kind"}),
		finalScore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "risk_final_score",
			Help:    "Distribution of composite risk scores.",
			Buckets: prometheus.LinearBuckets(10, 10, 10),
		}),
		classifierDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "risk_classifier_duration_seconds",
			Help:    "Histogram of classifier inference durations.",
			Buckets: prometheus.DefBuckets,
		}),
		datasetLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "risk_dataset_loads_total",
			Help: "Indicator dataset load attempts by result.",
		}, []string{"result"}),
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total count of HTTP requests processed by route and status.",
		}, []string{"route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of HTTP request durations by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
	}

	reg.MustRegister(
		m.assessmentsTotal,
		m.assessmentErrors,
		m.finalScore,
		m.classifierDuration,
		m.datasetLoads,
		m.httpRequestsTotal,
		m.httpDuration,
	)

	return m
}

// ObserveAssessment records a completed assessment
func (m *Metrics) ObserveAssessment(category string, finalScore float64) {
	if m == nil {
		return
	}
	m.assessmentsTotal.WithLabelValues(category).Inc()
	m.finalScore.Observe(finalScore)
}

// IncAssessmentError records a failed assessment
func (m *Metrics) IncAssessmentError(kind string) {
	if m == nil {
		return
	}
	m.assessmentErrors.WithLabelValues(kind).Inc()
}

// ObserveClassifier records one classifier call duration
func (m *Metrics) ObserveClassifier(d time.Duration) {
	if m == nil {
		return
	}
	m.classifierDuration.Observe(d.Seconds())
}

// IncDatasetLoad records a dataset load attempt
func (m *Metrics) IncDatasetLoad(ok bool) {
	if m == nil {
		return
	}
	result := "success"
	if !ok {
		result = "failure"
	}
	m.datasetLoads.WithLabelValues(result).Inc()
}

// ObserveHTTP records one handled HTTP request
func (m *Metrics) ObserveHTTP(route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(route).Observe(d.Seconds())
}
