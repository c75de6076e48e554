package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/api-sage/bank-ledger-service/internal/logger"
)

type Collector struct {
	registry             *prometheus.Registry
	transactionsTotal    *prometheus.CounterVec
	commitDuration       prometheus.Histogram
	notificationFailures prometheus.Counter
}

func NewCollector() *Collector {
	registry := prometheus.NewRegistry()

	return &Collector{
		registry: registry,
		transactionsTotal: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_transactions_total",
			Help: "Ledger transaction requests by type and outcome",
		}, []string{"type", "outcome"}),
		commitDuration: promauto.With(registry).NewHistogram(prometheus.HistogramOpts{
			Name:    "ledger_commit_duration_seconds",
			Help:    "Time taken to validate and commit a ledger transaction",
			Buckets: prometheus.DefBuckets,
		}),
		notificationFailures: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "ledger_notification_failures_total",
			Help: "Post-commit notifications that could not be delivered",
		}),
	}
}

func (c *Collector) RecordTransaction(txType string, outcome string, duration time.Duration) {
	c.transactionsTotal.WithLabelValues(txType, outcome).Inc()
	c.commitDuration.Observe(duration.Seconds())
}

func (c *Collector) RecordNotificationFailure() {
	c.notificationFailures.Inc()
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

func (c *Collector) NewServer(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())

	logger.Info("metrics server configured", logger.Fields{"addr": addr})
	return &http.Server{Addr: addr, Handler: mux}
}
