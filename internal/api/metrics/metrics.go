// Package metrics defines and registers all custom Prometheus metrics for
// the blog platform API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "blog"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts successful account registrations.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of successful registrations.",
	},
)

// ── Post metrics ──────────────────────────────────────────────────────────────

// PostsCreatedTotal counts newly created posts.
// Label:
//   - status: "draft" or "published"
var PostsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "posts_created_total",
		Help:      "Total number of posts created, by status.",
	},
	[]string{"status"},
)

// ── View pipeline metrics ─────────────────────────────────────────────────────

// ViewsProcessedTotal counts page views that were recorded.
var ViewsProcessedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "views_processed_total",
		Help:      "Total number of page views recorded.",
	},
)

// ViewsDedupTotal counts deduplication decisions.
// Label:
//   - result: "hit" (duplicate, skipped) or "miss" (new view, counted)
var ViewsDedupTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "views_dedup_total",
		Help:      "Total number of view deduplication checks, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// ViewsErrorsTotal counts views that failed processing.
// Label:
//   - reason: short description of the failure (e.g. "increment_failed", "queue_full")
var ViewsErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "views_errors_total",
		Help:      "Total number of page views that failed processing.",
	},
	[]string{"reason"},
)

// ViewsQueueDepth tracks the number of views waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var ViewsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "views_queue_depth",
		Help:      "Current number of views pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ── Media metrics ─────────────────────────────────────────────────────────────

// MediaUploadsTotal counts confirmed uploads.
// Label:
//   - content_type: MIME type of the uploaded object
var MediaUploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "media_uploads_total",
		Help:      "Total number of confirmed media uploads, by content type.",
	},
	[]string{"content_type"},
)
