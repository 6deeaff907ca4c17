package obs

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ActionsDispatched counts actions folded into a store, by action type.
	ActionsDispatched = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_actions_dispatched_total",
		Help: "Actions dispatched into the catalog store by action type",
	}, []string{"action"})

	// DispatchRejected counts dispatches refused because another dispatch was running.
	DispatchRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_dispatch_rejected_total",
		Help: "Re-entrant dispatches rejected by the catalog store",
	})

	// EffectRequests counts service calls made for request actions, by action and result.
	EffectRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_effect_requests_total",
		Help: "Product service calls made for request actions by action and result",
	}, []string{"action", "result"})

	// EffectBacklog is the number of request actions waiting for a worker.
	EffectBacklog = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "catalog_effect_backlog",
		Help: "Request actions waiting for an effects worker",
	})

	// EffectDuration tracks service call latency for request actions.
	EffectDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "catalog_effect_duration_seconds",
		Help:    "Product service call duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~2s
	}, []string{"action"})

	// HTTPRequestDuration tracks simulator request latency by route and status.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "simulator_http_request_duration_seconds",
		Help:    "Product service simulator request duration in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)
