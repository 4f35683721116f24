// Package metrics defines and registers all custom Prometheus metrics for the
// ContractFlow review API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry at init time via
// promauto; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "contractflow"

// ── Workflow metrics ──────────────────────────────────────────────────────────

// DocumentsCreatedTotal counts newly created documents.
var DocumentsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "documents_created_total",
		Help:      "Total number of documents created.",
	},
)

// StatusTransitionsTotal counts applied workflow transitions.
// Labels:
//   - from: status before the transition (e.g. "in_progress")
//   - to:   status after the transition (e.g. "approved")
var StatusTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "status_transitions_total",
		Help:      "Total number of document status transitions applied.",
	},
	[]string{"from", "to"},
)

// SweepPromotedTotal counts documents promoted new → pending by the sweeper.
var SweepPromotedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sweep_promoted_total",
		Help:      "Total number of stale documents promoted from new to pending.",
	},
)

// ── Chat metrics ──────────────────────────────────────────────────────────────

// ChatRequestsTotal counts chat requests.
// Labels:
//   - mode:   "batch" or "stream"
//   - result: "ok", "cache_hit" or "error"
var ChatRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "chat_requests_total",
		Help:      "Total number of RAG chat requests, by mode and result.",
	},
	[]string{"mode", "result"},
)

// ChatRequestDuration measures end-to-end chat latency including retrieval
// and completion.
// Label:
//   - mode: "batch" or "stream"
var ChatRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "chat_request_duration_seconds",
		Help:      "Duration of chat requests from retrieval to final token.",
		Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60},
	},
	[]string{"mode"},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// NotificationsTotal counts workflow notification deliveries.
// Labels:
//   - kind:   notification kind ("changes_ready", "approved", "returned")
//   - result: "sent", "skipped" or "error"
var NotificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Total number of workflow notifications, by kind and result.",
	},
	[]string{"kind", "result"},
)
