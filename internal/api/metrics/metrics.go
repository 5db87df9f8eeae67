// Package metrics defines and registers all custom Prometheus metrics
// for the order-system API. It is the single source of truth for metric
// names, labels, and help strings. Metrics register themselves with the
// default registry at init time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "shop"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthOperationsTotal counts auth facade operations by outcome.
// Labels:
//   - operation: "register", "login", "refresh", "logout"
//   - result: "success" or "failure"
var AuthOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_operations_total",
		Help:      "Total number of auth operations, by operation and result.",
	},
	[]string{"operation", "result"},
)

// AuditQueueDepth tracks the current number of audit events waiting in
// each dispatcher worker channel.
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

// ── Order metrics ─────────────────────────────────────────────────────────────

// OrdersCreatedTotal counts placed orders.
// Label:
//   - source: "direct" (POST /orders) or "checkout" (cart conversion)
var OrdersCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_created_total",
		Help:      "Total number of orders created, by placement source.",
	},
	[]string{"source"},
)

// OrderStatusUpdatesTotal counts order lifecycle transitions.
// Label:
//   - status: the new order status applied (e.g. "PAID")
var OrderStatusUpdatesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_status_updates_total",
		Help:      "Total number of successful order status transitions, by new status.",
	},
	[]string{"status"},
)
