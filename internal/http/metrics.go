package http

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the transport's Prometheus collectors.
type Metrics struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

// NewMetrics registers the transport collectors on reg. Collectors that are
// already registered (for example by another client sharing reg) are reused.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "paymentrails_client_requests_total",
		Help: "Total API requests by method and response status",
	}, []string{"method", "status"})

	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "paymentrails_client_request_duration_seconds",
		Help:    "API request latency",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"method"})

	registeredRequests, err := register(reg, requests)
	if err != nil {
		return nil, err
	}

	registeredLatency, err := register(reg, latency)
	if err != nil {
		return nil, err
	}

	return &Metrics{requests: registeredRequests, latency: registeredLatency}, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, collector C) (C, error) {
	err := reg.Register(collector)
	if err == nil {
		return collector, nil
	}

	already := prometheus.AlreadyRegisteredError{}
	if errors.As(err, &already) {
		existing, ok := already.ExistingCollector.(C)
		if ok {
			return existing, nil
		}
	}

	var zero C

	return zero, fmt.Errorf("registering metrics: %w", err)
}

func (m *Metrics) observe(method, status string, duration time.Duration) {
	if m == nil {
		return
	}

	m.requests.WithLabelValues(method, status).Inc()
	m.latency.WithLabelValues(method).Observe(duration.Seconds())
}
