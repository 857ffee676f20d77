package telemetry

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors fed by the benchmark driver.
type Metrics struct {
	registry *prometheus.Registry

	SortDuration *prometheus.HistogramVec
	SamplesTotal *prometheus.CounterVec
}

// NewMetrics creates the collectors on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.SortDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "sortbench",
			Name:      "sort_duration_seconds",
			Help:      "Duration of a single sort call",
			// 1µs up to roughly 4.5 minutes
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 15),
		},
		[]string{"distribution", "algorithm", "size"},
	)

	m.SamplesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sortbench",
			Name:      "samples_total",
			Help:      "Total number of timed sort calls",
		},
		[]string{"distribution", "algorithm"},
	)

	m.registry.MustRegister(m.SortDuration, m.SamplesTotal)
	return m
}

// ObserveSort records one timed sort call.
func (m *Metrics) ObserveSort(distribution, algorithm string, size int, elapsed time.Duration) {
	m.SortDuration.WithLabelValues(distribution, algorithm, strconv.Itoa(size)).Observe(elapsed.Seconds())
	m.SamplesTotal.WithLabelValues(distribution, algorithm).Inc()
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler exposes the collectors in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// WriteTextfile writes the current values for a node_exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

// StartMetricsServer serves /metrics on addr until ctx is cancelled.
func StartMetricsServer(ctx context.Context, addr string, m *Metrics) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		LogInfo("Starting metrics server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
