package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// NotificationsDispatched counts notifications persisted, by type.
	NotificationsDispatched = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "plaza_notifications_dispatched_total",
		Help: "Total number of notifications dispatched by type",
	}, []string{"type"})

	// NotificationFailures counts dropped notification deliveries.
	// Delivery is fire-and-forget, so this counter is the only place
	// failures surface besides the log.
	NotificationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "plaza_notification_failures_total",
		Help: "Total number of notification deliveries dropped after an error",
	}, []string{"type"})

	// ModerationRejections counts texts rejected by the moderation gate.
	ModerationRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "plaza_moderation_rejections_total",
		Help: "Total number of texts rejected by the keyword filter",
	}, []string{"field"})

	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "plaza_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})
)
