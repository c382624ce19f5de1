// Package metrics exposes processing counters in the Prometheus format.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

const shutdownTimeout = 5 * time.Second

type Metrics struct {
	files    *prometheus.CounterVec
	tokens   prometheus.Counter
	duration prometheus.Histogram
	queue    prometheus.Gauge
	reg      *prometheus.Registry
}

func New() *Metrics {
	m := &Metrics{
		files: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "annotok_files_total",
			Help: "Processed files by status.",
		}, []string{"status"}),
		tokens: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "annotok_tokens_total",
			Help: "Written token annotations.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "annotok_processing_seconds",
			Help:    "Time to analyze and write one file.",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
		}),
		queue: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "annotok_queue_length",
			Help: "Files waiting for a worker.",
		}),
		reg: prometheus.NewRegistry(),
	}

	m.reg.MustRegister(m.files, m.tokens, m.duration, m.queue)
	return m
}

// Observe records the outcome of one job.
func (m *Metrics) Observe(d time.Duration, numTokens int, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.files.WithLabelValues(status).Inc()
	m.tokens.Add(float64(numTokens))
	m.duration.Observe(d.Seconds())
}

// SetQueueLength records the number of queued jobs.
func (m *Metrics) SetQueueLength(n int) {
	m.queue.Set(float64(n))
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is done.
func (m *Metrics) Serve(ctx context.Context, addr string, log zerolog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("metrics server shutdown")
		}
	}()

	log.Info().Str("addr", addr).Msg("serving metrics")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
