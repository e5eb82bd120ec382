package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application. Every method is
// safe on a nil *Metrics so packages can run without a registry in tests.
type Metrics struct {
	CacheHits       *prometheus.CounterVec
	CacheMisses     *prometheus.CounterVec
	CacheRejections *prometheus.CounterVec
	CacheEntries    *prometheus.GaugeVec
	RutValidations  *prometheus.CounterVec
	RequestLatency  *prometheus.HistogramVec
}

// New creates the metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		CacheHits: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sertec_cache_hits_total",
			Help: "Total number of memoization cache hits",
		}, []string{"cache"}),
		CacheMisses: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sertec_cache_misses_total",
			Help: "Total number of memoization cache misses",
		}, []string{"cache"}),
		CacheRejections: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sertec_cache_admission_rejections_total",
			Help: "Total number of results computed but not admitted to the cache",
		}, []string{"cache"}),
		CacheEntries: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "sertec_cache_entries",
			Help: "Current number of entries held by each memoization cache",
		}, []string{"cache"}),
		RutValidations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sertec_rut_validations_total",
			Help: "Total number of RUT validations by outcome",
		}, []string{"valid"}),
		RequestLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sertec_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

func (m *Metrics) RecordCacheHit(cache string) {
	if m == nil {
		return
	}
	m.CacheHits.WithLabelValues(cache).Inc()
}

func (m *Metrics) RecordCacheMiss(cache string) {
	if m == nil {
		return
	}
	m.CacheMisses.WithLabelValues(cache).Inc()
}

func (m *Metrics) RecordCacheRejected(cache string) {
	if m == nil {
		return
	}
	m.CacheRejections.WithLabelValues(cache).Inc()
}

func (m *Metrics) SetCacheEntries(cache string, n int) {
	if m == nil {
		return
	}
	m.CacheEntries.WithLabelValues(cache).Set(float64(n))
}

func (m *Metrics) RecordRutValidation(valid bool) {
	if m == nil {
		return
	}
	m.RutValidations.WithLabelValues(strconv.FormatBool(valid)).Inc()
}

// ObserveRequest records one served request. route is the chi route pattern,
// not the raw path, to keep label cardinality bounded.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.RequestLatency.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}
