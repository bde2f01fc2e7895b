// Package metrics defines and registers all custom Prometheus metrics for
// the call-center API. It is the single source of truth for metric names,
// labels, and help strings.
//
// All metrics register with the default Prometheus registry at import time
// via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "callcenter"

// ── Session metrics ───────────────────────────────────────────────────────────

// SignInsTotal counts sign-in attempts.
// Labels:
//   - result: "success" or "failure"
var SignInsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sign_ins_total",
		Help:      "Total number of sign-in attempts, by result.",
	},
	[]string{"result"},
)

// SessionsExpiredTotal counts sessions closed by the idle timeout.
var SessionsExpiredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_expired_total",
		Help:      "Total number of sessions closed by idle-timeout expiry.",
	},
)

// ActiveSessions tracks the number of currently signed-in sessions.
var ActiveSessions = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "active_sessions",
		Help:      "Number of currently signed-in sessions.",
	},
)

// ── Call metrics ──────────────────────────────────────────────────────────────

// CallResultsTotal counts call results recorded through the guided flow.
// Labels:
//   - result: "buzon", "no-contesta" or "contesta"
var CallResultsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "call_results_total",
		Help:      "Total number of call results recorded, by result type.",
	},
	[]string{"result"},
)

// CallEventsProcessedTotal counts ingested call events that completed
// processing successfully.
// Labels:
//   - result: the call result applied
//   - source: the integration that reported the event
var CallEventsProcessedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "call_events_processed_total",
		Help:      "Total number of call events successfully processed.",
	},
	[]string{"result", "source"},
)

// CallEventsErrorsTotal counts ingested call events that failed processing.
// Label:
//   - reason: short description of the failure (e.g. "vehicle_not_found")
var CallEventsErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "call_events_errors_total",
		Help:      "Total number of call events that failed processing.",
	},
	[]string{"reason"},
)

// EventsQueueDepth tracks the current number of call events waiting in each
// dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var EventsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "events_queue_depth",
		Help:      "Current number of call events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ── Back-office metrics ───────────────────────────────────────────────────────

// CampaignsCreatedTotal counts newly created campaigns.
var CampaignsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "campaigns_created_total",
		Help:      "Total number of campaigns created.",
	},
)

// TasksCreatedTotal counts tasks created from data-update forms.
// Label:
//   - category: the task category the form feeds
var TasksCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_created_total",
		Help:      "Total number of tasks created, by category.",
	},
	[]string{"category"},
)

// TasksClosedTotal counts tasks closed by back-office staff.
var TasksClosedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_closed_total",
		Help:      "Total number of tasks closed.",
	},
)
