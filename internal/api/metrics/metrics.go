// Package metrics defines the custom Prometheus metrics of the agency
// dashboard API. It is the single source of truth for metric names, labels
// and help strings. Metrics register with the default registry on import.
package metrics

import (
	"context"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/rusafhasan/agencymanagement/internal/core/authz"
)

const namespace = "agency"

// ── Authorization metrics ─────────────────────────────────────────────────────

// AuthzDecisionsTotal counts Guard decisions.
// Labels:
//   - action: "<resource>.<verb>" (e.g. "task.update")
//   - decision: "allow" or "deny"
//   - reason: "none", "forbidden", "account-disabled", ...
var AuthzDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authz_decisions_total",
		Help:      "Total number of authorization decisions, by action, decision and reason.",
	},
	[]string{"action", "decision", "reason"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionVerificationsTotal counts bearer-token checks at the auth middleware.
// Label:
//   - result: "ok", "missing", "invalid" or "expired"
var SessionVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_verifications_total",
		Help:      "Total number of session token verifications, by result.",
	},
	[]string{"result"},
)

// ── Audit metrics ─────────────────────────────────────────────────────────────

// AuditQueueDepth tracks the number of audit events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// AuditEventsTotal counts audit events by outcome.
// Label:
//   - result: "recorded", "dropped" (queue full) or "failed" (store error)
var AuditEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_total",
		Help:      "Total number of audit events, by outcome.",
	},
	[]string{"result"},
)

// AuditWriteDuration measures how long persisting one audit event takes.
var AuditWriteDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "audit_write_duration_seconds",
		Help:      "Duration of audit event persistence from dequeue to store.",
		Buckets:   prometheus.DefBuckets,
	},
)

// AuthzObserver counts every Guard decision.
var AuthzObserver = authz.ObserverFunc(func(_ context.Context, ev authz.Event) {
	AuthzDecisionsTotal.WithLabelValues(
		ev.Result.Action.String(),
		ev.Result.Decision.String(),
		ev.Result.Reason.String(),
	).Inc()
})

// WorkerLabel formats a worker index for the worker_id label.
func WorkerLabel(id int) string { return strconv.Itoa(id) }
