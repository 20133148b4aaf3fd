// Package metrics owns the Prometheus registry of the service.
package metrics

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Service wraps the collectors. A nil *Service is valid and records nothing.
type Service struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	aiCalls         *prometheus.CounterVec
	aiDuration      *prometheus.HistogramVec
	bookings        *prometheus.CounterVec
	sessions        prometheus.Gauge
}

func NewService() *Service {
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

	aiCalls := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ai_gateway_calls_total",
		Help: "AI gateway calls by operation and outcome",
	}, []string{"operation", "outcome"})

	aiDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ai_gateway_duration_seconds",
		Help:    "Latency of AI gateway calls",
		Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32},
	}, []string{"operation"})

	bookings := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bookings_total",
		Help: "Booking store mutations by action",
	}, []string{"action"})

	sessions := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "sessions_active",
		Help: "Sessions held by the session store",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, aiCalls, aiDuration, bookings, sessions, goroutines)

	return &Service{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		aiCalls:         aiCalls,
		aiDuration:      aiDuration,
		bookings:        bookings,
		sessions:        sessions,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *Service) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Registry is exposed for tests.
func (m *Service) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Service) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// ObserveAICall records one gateway operation. outcome is "ok" or "fallback".
func (m *Service) ObserveAICall(operation, outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.aiCalls.WithLabelValues(operation, outcome).Inc()
	m.aiDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

func (m *Service) RecordBooking(action string) {
	if m == nil {
		return
	}
	m.bookings.WithLabelValues(action).Inc()
}

func (m *Service) SetActiveSessions(n int) {
	if m == nil {
		return
	}
	m.sessions.Set(float64(n))
}
