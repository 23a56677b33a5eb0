package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	RequestsTotal  *prometheus.CounterVec
	ProviderErrors prometheus.Counter
	Fallbacks      prometheus.Counter
	DroppedRecords prometheus.Counter
	StageSeconds   *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		RequestsTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "recommend_requests_total",
			Help: "Total number of processed recommendation requests.",
		}, []string{"status"}),
		ProviderErrors: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "recommend_provider_api_errors_total",
			Help: "Total number of errors received from the online places provider API.",
		}),
		Fallbacks: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "recommend_offline_fallbacks_total",
			Help: "Total number of requests served from the offline catalog after an online failure.",
		}),
		DroppedRecords: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "recommend_malformed_records_dropped_total",
			Help: "Total number of raw place records dropped during normalization.",
		}),
		StageSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "recommend_stage_duration_seconds",
			Help:    "Duration of the pipeline stages of a recommendation request.",
			Buckets: prometheus.DefBuckets,
		}, []string{"stage"}),
	}
}
