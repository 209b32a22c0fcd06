// Package metrics holds the bug tracker's Prometheus collectors. They are
// registered with the default registry on import and exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "bugtracker"

// ── Bug metrics ───────────────────────────────────────────────────────────────

// BugsReportedTotal counts bugs accepted by Report.
// Label:
//   - priority: low, medium, high or critical
var BugsReportedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bugs_reported_total",
		Help:      "Total number of bugs reported, by priority.",
	},
	[]string{"priority"},
)

// BugAssignmentsTotal counts successful Assign calls.
var BugAssignmentsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bug_assignments_total",
		Help:      "Total number of bug (re)assignments.",
	},
)

// BugStatusChangesTotal counts status updates.
// Label:
//   - status: the status that was set
var BugStatusChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bug_status_changes_total",
		Help:      "Total number of bug status updates, by new status.",
	},
	[]string{"status"},
)

// ── Account metrics ───────────────────────────────────────────────────────────

// AccountsRegisteredTotal counts accounts created through the API.
// Label:
//   - role: the role of the new account
var AccountsRegisteredTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "accounts_registered_total",
		Help:      "Total number of accounts registered, by role.",
	},
	[]string{"role"},
)

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// NotificationsQueueDepth tracks pending notifications per dispatcher worker.
// Label:
//   - worker_id: numeric worker index
var NotificationsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notifications_queue_depth",
		Help:      "Current number of notifications pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// NotificationsTotal counts notification outcomes.
// Label:
//   - result: "sent", "failed" or "dropped"
var NotificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Total number of notifications handled, by result.",
	},
	[]string{"result"},
)

// NotificationDuration measures delivery time of a single notification.
var NotificationDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "notification_delivery_duration_seconds",
		Help:      "Duration of a single notification delivery.",
		Buckets:   prometheus.DefBuckets,
	},
)
