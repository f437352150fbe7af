package metrics

import (
	"net/http"
	"strconv"

	"github.com/kurochkinivan/article_cleanup/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "article_cleanup"

type Metrics struct {
	registry    *prometheus.Registry
	uploads     *prometheus.CounterVec
	cleanups    prometheus.Counter
	failures    *prometheus.CounterVec
	keptRows    prometheus.Counter
	removedRows prometheus.Counter
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "uploads_total",
			Help:      "Uploaded tables by parse result.",
		}, []string{"ok"}),
		cleanups: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cleanups_total",
			Help:      "Tables filtered by their status column.",
		}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cleanup_failures_total",
			Help:      "Failed cleanups by reason.",
		}, []string{"reason"}),
		keptRows: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kept_rows_total",
			Help:      "Rows kept by cleanups.",
		}),
		removedRows: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "removed_rows_total",
			Help:      "Rows removed by cleanups.",
		}),
	}

	m.registry.MustRegister(m.uploads, m.cleanups, m.failures, m.keptRows, m.removedRows)

	return m
}

func (m *Metrics) UploadProcessed(ok bool) {
	m.uploads.WithLabelValues(strconv.FormatBool(ok)).Inc()
}

func (m *Metrics) CleanupProcessed(stats domain.Stats) {
	m.cleanups.Inc()
	m.keptRows.Add(float64(stats.Kept))
	m.removedRows.Add(float64(stats.Removed))
}

func (m *Metrics) CleanupFailed(reason string) {
	m.failures.WithLabelValues(reason).Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
