package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	runsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "employee_stats_runs_total",
		Help: "Stats runs by outcome (ok, empty_input, malformed_row, lookup_failed, in_flight, error).",
	}, []string{"outcome"})

	parsedRows = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "employee_stats_parsed_rows",
		Help:    "Rows parsed per run.",
		Buckets: prometheus.ExponentialBuckets(1, 4, 8), // 1 to ~16k
	})

	resolvedRows = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "employee_stats_resolved_rows",
		Help:    "Employee records matched per run.",
		Buckets: prometheus.ExponentialBuckets(1, 4, 8),
	})

	lookupDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "employee_stats_lookup_duration_seconds",
		Help:    "Latency of the bulk employee lookup.",
		Buckets: prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms to ~10s
	})
)
