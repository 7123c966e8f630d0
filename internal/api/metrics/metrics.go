// Package metrics defines and registers all custom Prometheus metrics for
// the site API. It is the single source of truth for metric names, labels,
// and help strings; metrics register with the default registry at init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "site_api"

// OrdersCreatedTotal counts successfully created orders.
var OrdersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_created_total",
		Help:      "Total number of orders created.",
	},
)

// ContactMessagesTotal counts accepted contact-form submissions.
var ContactMessagesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "contact_messages_total",
		Help:      "Total number of contact messages accepted.",
	},
)

// EmailsSentTotal counts notification delivery attempts.
// Label:
//   - result: "delivered", "skipped" (no provider configured), or "failed"
var EmailsSentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "emails_sent_total",
		Help:      "Total number of notification emails attempted, by result.",
	},
	[]string{"result"},
)

// FallbackServedTotal counts public catalog responses served from the static
// fallback dataset instead of the primary store.
// Label:
//   - resource: "services" or "projects"
var FallbackServedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "fallback_served_total",
		Help:      "Total number of catalog responses served from static fallback data.",
	},
	[]string{"resource"},
)

// AuditWriteFailuresTotal counts admin-action records that failed to persist.
// Audit writes are best-effort, so this counter is the only trace of a loss.
var AuditWriteFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_write_failures_total",
		Help:      "Total number of admin audit records that could not be written.",
	},
)

// NotificationsDroppedTotal counts notifications discarded because a
// dispatcher shard buffer was full. Delivery is best-effort, so a drop is
// counted and logged, never surfaced to the caller.
var NotificationsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_dropped_total",
		Help:      "Total number of notifications dropped due to a full dispatch queue.",
	},
)

// RateLimitRejectionsTotal counts requests rejected by the rate limiter.
// Label:
//   - route: the throttled route group (e.g. "login", "register", "orders")
var RateLimitRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limit_rejections_total",
		Help:      "Total number of requests rejected by the rate limiter, by route.",
	},
	[]string{"route"},
)
