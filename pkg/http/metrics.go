package http

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds client-side request metrics.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inFlight prometheus.Gauge
}

// NewMetrics creates request metrics and registers them on reg.
// A nil reg uses prometheus.DefaultRegisterer. Calling it again with the same
// registry returns Metrics backed by the collectors registered first.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "apihandler",
				Name:      "requests_total",
				Help:      "Outbound API requests by method and outcome.",
			},
			[]string{"method", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "apihandler",
				Name:      "request_duration_seconds",
				Help:      "Latency of outbound API requests.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "apihandler",
			Name:      "in_flight_requests",
			Help:      "Outbound API requests awaiting a response.",
		}),
	}

	var err error
	if m.requests, err = register(reg, m.requests); err != nil {
		return nil, err
	}
	if m.duration, err = register(reg, m.duration); err != nil {
		return nil, err
	}
	if m.inFlight, err = register(reg, m.inFlight); err != nil {
		return nil, err
	}
	return m, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// start marks a request in flight and returns the func that records its end.
// Safe on a nil receiver.
func (m *Metrics) start(method string) func(error) {
	if m == nil {
		return func(error) {}
	}
	begin := time.Now()
	m.inFlight.Inc()
	return func(err error) {
		m.inFlight.Dec()
		outcome := "success"
		if err != nil {
			outcome = "error"
		}
		m.requests.WithLabelValues(method, outcome).Inc()
		m.duration.WithLabelValues(method).Observe(time.Since(begin).Seconds())
	}
}
