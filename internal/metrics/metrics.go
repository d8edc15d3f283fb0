package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	SearchesTotal  *prometheus.CounterVec
	ProviderErrors prometheus.Counter
	RequestSeconds *prometheus.HistogramVec
	ActiveSessions prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		SearchesTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "picker_searches_total",
			Help: "Total number of searches, labeled by how they were resolved.",
		}, []string{"source"}),
		ProviderErrors: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "picker_provider_api_errors_total",
			Help: "Total number of errors received from geocoding provider APIs.",
		}),
		RequestSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "picker_provider_request_duration_seconds",
			Help:    "Duration of requests to geocoding provider APIs.",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider", "operation"}),
		ActiveSessions: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "picker_active_sessions",
			Help: "Current number of open picker sessions.",
		}),
	}
}
