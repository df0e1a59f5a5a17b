// Package metrics defines and registers all custom Prometheus metrics for the
// feedback-flow API. It is the single source of truth for metric names,
// labels, and help strings. Metrics register with the default registry at
// import time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "feedback"

// RequestsCreatedTotal counts feedback requests issued by HR users.
var RequestsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "requests_created_total",
		Help:      "Total number of feedback requests created.",
	},
)

// FeedbackSubmittedTotal counts successful submissions.
// Label:
//   - rating: the submitted rating, "1".."5"
var FeedbackSubmittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "submitted_total",
		Help:      "Total number of feedback submissions, by rating.",
	},
	[]string{"rating"},
)

// SubmissionConflictsTotal counts submissions rejected because the request
// was already answered. A steady trickle is normal (double-clicks, retries).
var SubmissionConflictsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "submission_conflicts_total",
		Help:      "Total number of submissions rejected on an already-submitted request.",
	},
)

// RequestsExpiredTotal counts pending requests transitioned to expired by the
// retention sweeper.
var RequestsExpiredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "requests_expired_total",
		Help:      "Total number of pending requests expired by the retention sweep.",
	},
)

// NotificationsTotal counts notification delivery attempts.
// Labels:
//   - kind: "request-link", "hr-notified", or "thank-you"
//   - result: "ok", "error", or "skipped" (duplicate-send guard hit)
var NotificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Total number of notification sends, by template kind and result.",
	},
	[]string{"kind", "result"},
)
