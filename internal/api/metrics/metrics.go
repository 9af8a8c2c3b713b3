// Package metrics defines and registers all custom Prometheus metrics for the
// booking gateway. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics register with the default Prometheus registry at import time via
// promauto; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "gateway"

// ── Session metrics ───────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - outcome: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"outcome"},
)

// RegistrationsTotal counts registration attempts.
// Label:
//   - outcome: "success" or "failure"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by outcome.",
	},
	[]string{"outcome"},
)

// SessionResumesTotal counts session resolution attempts at startup.
// Label:
//   - result: "authenticated" (credential resolved) or "anonymous"
var SessionResumesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_resumes_total",
		Help:      "Total number of session resume attempts, by resulting state.",
	},
	[]string{"result"},
)

// ── Access gate metrics ───────────────────────────────────────────────────────

// GateDecisionsTotal counts access-gate verdicts on guarded routes.
// Label:
//   - decision: "allow", "redirect_login" (unauthenticated), or
//     "redirect_app" (authenticated, wrong role)
var GateDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gate_decisions_total",
		Help:      "Total number of access gate decisions, by verdict.",
	},
	[]string{"decision"},
)

// ── Workspace metrics ─────────────────────────────────────────────────────────

// WorkspaceLoadsTotal counts membership-list loads.
// Label:
//   - outcome: "success" (an empty list is a valid success) or "failure"
var WorkspaceLoadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "workspace_loads_total",
		Help:      "Total number of workspace list loads, by outcome.",
	},
	[]string{"outcome"},
)

// WorkspaceSwitchesTotal counts explicit active-workspace changes.
var WorkspaceSwitchesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "workspace_switches_total",
		Help:      "Total number of explicit active-workspace switches.",
	},
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

// AuditEventsDroppedTotal counts audit events dropped because a worker buffer was full.
var AuditEventsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_dropped_total",
		Help:      "Total number of audit events dropped due to a full worker buffer.",
	},
)

// ── Upstream metrics ──────────────────────────────────────────────────────────

// UpstreamForwardDuration measures tenant-scoped requests forwarded to the
// upstream API, end-to-end from gate verdict to upstream response.
// Label:
//   - route: the guarded route pattern (e.g. "/app/:workspace_id/services")
var UpstreamForwardDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_forward_duration_seconds",
		Help:      "Duration of tenant-scoped requests forwarded upstream.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"route"},
)
