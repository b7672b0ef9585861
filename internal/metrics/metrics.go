// Package metrics defines the service's Prometheus instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests counts handled HTTP requests by method, route and status.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "splitledger_http_requests_total",
		Help: "Total HTTP requests handled",
	}, []string{"method", "route", "status"})

	// HTTPDuration observes request latency by route.
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "splitledger_http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	// SplitsComputed counts split computations by split type.
	SplitsComputed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "splitledger_splits_computed_total",
		Help: "Total expense splits computed",
	}, []string{"split_type"})

	// SettlementsRecorded counts recorded settlement payments.
	SettlementsRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "splitledger_settlements_recorded_total",
		Help: "Total settlements recorded",
	})

	// BalanceComputations counts ledger folds by scope (user or group).
	BalanceComputations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "splitledger_balance_computations_total",
		Help: "Total balance ledger computations",
	}, []string{"scope"})
)
