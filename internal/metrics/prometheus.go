package metrics

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/davidbz/launchpad/internal/domain"
)

// PrometheusRecorder reports relay metrics using Prometheus primitives.
type PrometheusRecorder struct {
	requests  *prometheus.CounterVec
	durations *prometheus.HistogramVec
}

// NewRegistry creates the registry backing /metrics.
func NewRegistry() *prometheus.Registry {
	return prometheus.NewRegistry()
}

// NewPrometheusRecorder registers the relay collectors on registry.
func NewPrometheusRecorder(registry *prometheus.Registry) (*PrometheusRecorder, error) {
	if registry == nil {
		return nil, errors.New("prometheus registry is nil")
	}

	r := &PrometheusRecorder{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "relay_requests_total",
			Help: "Total number of relay requests by outcome",
		}, []string{"outcome"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "relay_upstream_duration_seconds",
			Help:    "Upstream generateContent latency in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"model"}),
	}

	for _, collector := range []prometheus.Collector{r.requests, r.durations} {
		if err := registry.Register(collector); err != nil {
			return nil, fmt.Errorf("register collector: %w", err)
		}
	}
	return r, nil
}

func (r *PrometheusRecorder) ObserveOutcome(outcome domain.Outcome) {
	r.requests.WithLabelValues(string(outcome)).Inc()
}

func (r *PrometheusRecorder) ObserveUpstream(model string, duration time.Duration) {
	r.durations.WithLabelValues(model).Observe(duration.Seconds())
}

// Handler exposes registry in the Prometheus text format.
func Handler(registry *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})
}
