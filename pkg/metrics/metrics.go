package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	MQConsumeLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mq_consume_latency_ms",
			Help:    "MQ message consumption latency in milliseconds",
			Buckets: prometheus.ExponentialBuckets(10, 2, 10), // 10ms to ~10s
		},
		[]string{"routing_key", "queue"},
	)

	NotificationCreatedCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notification_created_count",
			Help: "Total number of notifications written",
		},
		[]string{"status"}, // status: approved, rejected
	)

	OTPRequestCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "otp_request_count",
			Help: "Total number of OTP send attempts",
		},
		[]string{"result"}, // result: sent, rate_limited, failed
	)

	RequestDecisionCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipe_request_decision_count",
			Help: "Total number of recipe request decisions",
		},
		[]string{"status"},
	)
)

// RecordHTTPRequestDuration records one served HTTP request.
func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// RecordMQConsumeLatency records how long a consumed message took to handle.
func RecordMQConsumeLatency(routingKey, queue string, duration time.Duration) {
	MQConsumeLatency.WithLabelValues(routingKey, queue).Observe(float64(duration.Milliseconds()))
}

func IncrementNotificationCreated(status string) {
	NotificationCreatedCount.WithLabelValues(status).Inc()
}

func IncrementOTPRequest(result string) {
	OTPRequestCount.WithLabelValues(result).Inc()
}

func IncrementRequestDecision(status string) {
	RequestDecisionCount.WithLabelValues(status).Inc()
}
