package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the API.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	bookingTotal    *prometheus.CounterVec
	ensureTotal     *prometheus.CounterVec
	slotMutations   *prometheus.CounterVec
	mailFailures    prometheus.Counter
}

// NewMetricsService registers the core Prometheus collectors.
func NewMetricsService() *MetricsService {
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

	bookingTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "booking_requests_total",
		Help: "Booking inquiries received, labelled by event type",
	}, []string{"event_type"})

	ensureTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "artist_ensure_total",
		Help: "Artist ensure calls, labelled by outcome",
	}, []string{"outcome"})

	slotMutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "availability_mutations_total",
		Help: "Availability slot mutations, labelled by operation",
	}, []string{"op"})

	mailFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "mail_send_failures_total",
		Help: "Outbound mail deliveries that failed",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, bookingTotal, ensureTotal, slotMutations, mailFailures, goroutines)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		bookingTotal:    bookingTotal,
		ensureTotal:     ensureTotal,
		slotMutations:   slotMutations,
		mailFailures:    mailFailures,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records per-request latency and counts.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labels := []string{method, path, fmt.Sprintf("%d", status)}
	m.requestDuration.WithLabelValues(labels...).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(labels...).Inc()
}

// CountBooking tracks an accepted booking inquiry.
func (m *MetricsService) CountBooking(eventType string) {
	if m == nil {
		return
	}
	m.bookingTotal.WithLabelValues(eventType).Inc()
}

// CountEnsure tracks an ensure call outcome ("created", "linked", "noop", "error").
func (m *MetricsService) CountEnsure(outcome string) {
	if m == nil {
		return
	}
	m.ensureTotal.WithLabelValues(outcome).Inc()
}

// CountSlotMutation tracks availability adds and removes.
func (m *MetricsService) CountSlotMutation(op string) {
	if m == nil {
		return
	}
	m.slotMutations.WithLabelValues(op).Inc()
}

// CountMailFailure tracks failed outbound mail.
func (m *MetricsService) CountMailFailure() {
	if m == nil {
		return
	}
	m.mailFailures.Inc()
}
