package metrics

import "github.com/prometheus/client_golang/prometheus"

var HttpRequestsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests received",
	},
	[]string{"endpoint", "status", "method"},
)

var HttpRequestDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"endpoint", "method"},
)

var HttpErrorsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_errors_total",
		Help: "Total number of failed HTTP requests (4xx/5xx)",
	},
	[]string{"endpoint", "status", "method"},
)

var NotificationEventsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "notification_lifecycle_events_total",
		Help: "Committed notification lifecycle changes",
	},
	[]string{"event"},
)

var AuthorizationDenialsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "authorization_denials_total",
		Help: "Requests rejected by the access policy",
	},
	[]string{"operation", "role"},
)

var MasterCacheLookupsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "master_cache_lookups_total",
		Help: "Master data cache lookups by result",
	},
	[]string{"key", "result"},
)

var EventPublishTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "event_publish_total",
		Help: "Notification events handed to the broker",
	},
	[]string{"topic", "result"},
)

// MustRegister registers every collector with reg.
func MustRegister(reg prometheus.Registerer) {
	reg.MustRegister(
		HttpRequestsTotal,
		HttpRequestDuration,
		HttpErrorsTotal,
		NotificationEventsTotal,
		AuthorizationDenialsTotal,
		MasterCacheLookupsTotal,
		EventPublishTotal,
	)
}
