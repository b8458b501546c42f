package prometheus

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var registry = prometheus.NewRegistry()

var registerer = prometheus.WrapRegistererWith(nil, registry)

var (
	ModerationVerdictTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "postguard_moderation_verdicts_total",
			Help: "Total moderation verdicts by final action",
		},
		[]string{"action", "content_type"},
	)

	SpamDetectionTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "postguard_spam_detections_total",
			Help: "Total spam determinations by rule",
		},
		[]string{"rule"},
	)

	RateLimitRejectionTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "postguard_rate_limit_rejections_total",
			Help: "Total requests rejected by the rate limiter",
		},
		[]string{"route"},
	)

	LexiconLookupErrorTotal = promauto.With(registerer).NewCounter(
		prometheus.CounterOpts{
			Name: "postguard_lexicon_lookup_errors_total",
			Help: "Total failed active-lexicon fetches (fail-open or fail-closed per policy)",
		},
	)

	AuditLogFailureTotal = promauto.With(registerer).NewCounter(
		prometheus.CounterOpts{
			Name: "postguard_audit_log_failures_total",
			Help: "Total moderation log writes that failed and were dropped",
		},
	)
)

// Handler serves the private registry; mounted on the metrics port only.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
