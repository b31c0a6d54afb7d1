// Package metrics defines all custom Prometheus metrics for the finance
// tracker API. It is the single source of truth for metric names, labels,
// and help strings. Metrics register themselves with the default registry at
// package init; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "fintrack"

// ── Identity metrics ──────────────────────────────────────────────────────────

// UsersRegisteredTotal counts account registrations.
var UsersRegisteredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of accounts registered.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "ok", "invalid_credentials", "unverified", "deactivated"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// TokensConsumedTotal counts verification/reset token consumption attempts.
// Labels:
//   - kind: "verify-email" or "reset-password"
//   - result: "ok", "not_found", "expired"
var TokensConsumedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_consumed_total",
		Help:      "Total number of single-use token consumption attempts, by kind and result.",
	},
	[]string{"kind", "result"},
)

// ── Mail metrics ──────────────────────────────────────────────────────────────

// EmailsSentTotal counts delivery attempts that reached the transport.
// Label:
//   - result: "ok" or "error"
var EmailsSentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "emails_sent_total",
		Help:      "Total number of email delivery attempts, by result.",
	},
	[]string{"result"},
)

// EmailsDroppedTotal counts messages dropped because the dispatch buffer was
// full.
var EmailsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "emails_dropped_total",
		Help:      "Total number of emails dropped before dispatch due to a full queue.",
	},
)

// ── Ledger metrics ────────────────────────────────────────────────────────────

// TransactionsCreatedTotal counts newly recorded transactions.
// Label:
//   - type: "income", "expense", or "saving"
var TransactionsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "transactions_created_total",
		Help:      "Total number of transactions recorded, by type.",
	},
	[]string{"type"},
)

// StatsCacheTotal counts statistics cache lookups.
// Label:
//   - result: "hit" or "miss"
var StatsCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stats_cache_total",
		Help:      "Total number of statistics cache lookups, by result.",
	},
	[]string{"result"},
)
