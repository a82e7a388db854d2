package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors of the HTTP surface
type Metrics struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	plansTotal      *prometheus.CounterVec
	daysSelected    prometheus.Histogram
	periodLength    prometheus.Histogram
}

// NewMetrics registers the collectors on a fresh registry
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	plansTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "plans_total",
		Help: "Planning calls by country and outcome",
	}, []string{"country", "outcome"})

	daysSelected := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "plan_days_selected",
		Help:    "Discretionary days selected per plan",
		Buckets: prometheus.LinearBuckets(0, 5, 8),
	})

	periodLength := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "plan_period_length_days",
		Help:    "Length of the consecutive days-off periods produced",
		Buckets: []float64{2, 3, 4, 5, 7, 9, 11, 16, 23},
	})

	registry.MustRegister(
		requestDuration,
		requestTotal,
		plansTotal,
		daysSelected,
		periodLength,
		collectors.NewGoCollector(),
	)

	return &Metrics{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		plansTotal:      plansTotal,
		daysSelected:    daysSelected,
		periodLength:    periodLength,
	}
}

// Handler exposes the Prometheus HTTP handler
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records one served request
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := strconv.Itoa(status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// ObservePlan records the outcome of a planning call
func (m *Metrics) ObservePlan(country string, err error, daysSelected int, periodLengths []int) {
	if m == nil {
		return
	}
	if err != nil {
		m.plansTotal.WithLabelValues(country, "error").Inc()
		return
	}
	m.plansTotal.WithLabelValues(country, "ok").Inc()
	m.daysSelected.Observe(float64(daysSelected))
	for _, n := range periodLengths {
		m.periodLength.Observe(float64(n))
	}
}
