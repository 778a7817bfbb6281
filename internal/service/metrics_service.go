package service

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	slotDenials     *prometheus.CounterVec
	entitlementHits *prometheus.CounterVec
}

// NewMetricsService registers core Prometheus collectors.
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

	slotDenials := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "appointment_slot_denials_total",
		Help: "Appointment validations denied, by reason",
	}, []string{"reason"})

	entitlementHits := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "entitlement_denials_total",
		Help: "Requests blocked by the plan entitlement gate, by check",
	}, []string{"check"})

	registry.MustRegister(requestDuration, requestTotal, slotDenials, entitlementHits)
	registry.MustRegister(prometheus.NewGoCollector())

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		slotDenials:     slotDenials,
		entitlementHits: entitlementHits,
	}
}

// Handler serves the /metrics scrape endpoint.
func (s *MetricsService) Handler() http.Handler {
	return s.handler
}

// ObserveHTTPRequest records one request.
func (s *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	labels := []string{method, path, strconv.Itoa(status)}
	s.requestDuration.WithLabelValues(labels...).Observe(duration.Seconds())
	s.requestTotal.WithLabelValues(labels...).Inc()
}

// RecordSlotDenial counts a rejected appointment validation.
func (s *MetricsService) RecordSlotDenial(reason string) {
	s.slotDenials.WithLabelValues(reason).Inc()
}

// RecordEntitlementDenial counts a request blocked by the gate.
func (s *MetricsService) RecordEntitlementDenial(check string) {
	s.entitlementHits.WithLabelValues(check).Inc()
}
