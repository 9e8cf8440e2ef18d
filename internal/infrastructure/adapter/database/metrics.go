package database

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	queryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "smm",
			Subsystem: "db",
			Name:      "query_duration_seconds",
			Help:      "Duration of SQL statements in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"type", "result"},
	)

	poolConnections = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "smm",
			Subsystem: "db",
			Name:      "pool_connections",
			Help:      "Connections in the database pool by state",
		},
		[]string{"state"},
	)

	poolWaitCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "smm",
			Subsystem: "db",
			Name:      "pool_wait_count",
			Help:      "Total number of connections waited for",
		},
	)

	keepAliveFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "smm",
			Subsystem: "db",
			Name:      "keepalive_failures_total",
			Help:      "Failed keep-alive probes",
		},
	)
)

func observeQuery(queryType string, elapsed time.Duration, err error) {
	if queryType == "" {
		queryType = "OTHER"
	}
	result := "ok"
	if err != nil && !isRecordNotFound(err) {
		result = "error"
	}
	queryDuration.WithLabelValues(queryType, result).Observe(elapsed.Seconds())
}
