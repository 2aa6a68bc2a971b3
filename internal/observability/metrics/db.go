package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DBPoolAcquiredConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "db_pool_acquired_connections",
		Help: "Connections currently checked out of the pool",
	})

	DBPoolIdleConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "db_pool_idle_connections",
		Help: "Idle connections held by the pool",
	})

	DBPoolMaxConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "db_pool_max_connections",
		Help: "Configured pool connection ceiling",
	})

	DBPoolTotalConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "db_pool_total_connections",
		Help: "Total connections the pool currently holds",
	})

	DBQueryDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Query latency by operation and table",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "db_query_errors_total",
			Help: "Query failures by operation, table, and error type",
		},
		[]string{"operation", "table", "error_type"},
	)
)
