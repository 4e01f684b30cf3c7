// Package metrics defines and registers all custom Prometheus metrics for the
// event planner. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation through promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "planner"

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionChangesTotal counts session cache transitions.
// Label:
//   - change: "login" or "logout"
var SessionChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_changes_total",
		Help:      "Total number of session cache transitions, by kind.",
	},
	[]string{"change"},
)

// AuthAttemptsTotal counts sign-up and login attempts.
// Labels:
//   - flow:   "signup" or "login"
//   - result: "ok", "validation", "auth", "not_found" or "error"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of sign-up and login attempts, by flow and result.",
	},
	[]string{"flow", "result"},
)

// ── Live list metrics ─────────────────────────────────────────────────────────

// LiveSubscriptions tracks the number of open live list connections.
// Label:
//   - collection: "events" or "guests"
var LiveSubscriptions = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "live_subscriptions",
		Help:      "Current number of open live list subscriptions.",
	},
	[]string{"collection"},
)

// LiveSnapshotsTotal counts snapshots pushed to live list consumers.
var LiveSnapshotsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "live_snapshots_total",
		Help:      "Total number of full snapshots pushed to live list consumers.",
	},
	[]string{"collection"},
)

// LiveErrorsTotal counts live subscription failures.
var LiveErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "live_errors_total",
		Help:      "Total number of live subscription failures.",
	},
	[]string{"collection"},
)

// ── Store metrics ─────────────────────────────────────────────────────────────

// DocumentWritesTotal counts writes to the document store.
// Labels:
//   - collection: "users", "events" or "guests"
//   - op:         "set", "add", "update" or "delete"
//   - result:     "ok" or "error"
var DocumentWritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "document_writes_total",
		Help:      "Total number of document store writes.",
	},
	[]string{"collection", "op", "result"},
)

// ShopCacheTotal counts shop cache lookups.
// Label:
//   - result: "hit" or "miss"
var ShopCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "shop_cache_total",
		Help:      "Total number of shop content cache lookups, by result.",
	},
	[]string{"result"},
)

// ── Invitation metrics ────────────────────────────────────────────────────────

// InvitationsQueueDepth tracks pending invitations per dispatcher worker.
var InvitationsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "invitations_queue_depth",
		Help:      "Current number of invitations pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// InvitationsSentTotal counts invitation deliveries.
// Label:
//   - result: "ok" or "error"
var InvitationsSentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "invitations_sent_total",
		Help:      "Total number of invitation deliveries, by result.",
	},
	[]string{"result"},
)

// InvitationSendDuration measures a single delivery.
var InvitationSendDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "invitation_send_duration_seconds",
		Help:      "Duration of a single invitation delivery.",
		Buckets:   prometheus.DefBuckets,
	},
)

// Result maps an error onto the "ok"/"error" label value.
func Result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
