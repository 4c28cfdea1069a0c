package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors of the message board.
type Metrics struct {
	MessagesCreated   prometheus.Counter
	MessagesDeleted   prometheus.Counter
	MessagesPruned    prometheus.Counter
	RetentionFailures prometheus.Counter
	StoreReadFailures *prometheus.CounterVec
	RequestDuration   *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		MessagesCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "soapstone_messages_created_total",
			Help: "Total number of messages written to the store",
		}),
		MessagesDeleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "soapstone_messages_deleted_total",
			Help: "Total number of messages deleted by their owner",
		}),
		MessagesPruned: factory.NewCounter(prometheus.CounterOpts{
			Name: "soapstone_messages_pruned_total",
			Help: "Total number of messages removed by the retention window",
		}),
		RetentionFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "soapstone_retention_failures_total",
			Help: "Retention passes that failed after a successful create",
		}),
		StoreReadFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "soapstone_store_read_failures_total",
			Help: "Store reads answered with an empty result because the store failed",
		}, []string{"operation"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "soapstone_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}
