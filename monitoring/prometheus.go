package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	ResolveDuration    *prometheus.HistogramVec
	ResolveRequests    *prometheus.CounterVec
	SearchErrors       *prometheus.CounterVec
	SearchResults      *prometheus.CounterVec
	CandidatesReturned *prometheus.HistogramVec
	CacheHits          *prometheus.CounterVec
	CacheMisses        *prometheus.CounterVec
	FileLinkErrors     prometheus.Counter
}

func NewMetrics() *Metrics {
	return &Metrics{
		ResolveDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "resolve_duration_seconds",
			Help:    "Duration of stream resolution",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 20, 30},
		}, []string{"type"}),
		ResolveRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "resolve_requests_total",
			Help: "Number of stream resolution requests",
		}, []string{"type"}),
		SearchErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "search_errors_total",
			Help: "Number of failed webshare searches",
		}, []string{"query_kind"}),
		SearchResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "search_results_total",
			Help: "Number of raw search results received",
		}, []string{"query_kind"}),
		CandidatesReturned: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "candidates_returned",
			Help:    "Number of ranked candidates returned per request",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100},
		}, []string{"type"}),
		CacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Number of cache hits",
		}, []string{"cache"}),
		CacheMisses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Number of cache misses",
		}, []string{"cache"}),
		FileLinkErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "file_link_errors_total",
			Help: "Number of failed file link resolutions",
		}),
	}
}

func (m *Metrics) Register() {
	prometheus.MustRegister(m.ResolveDuration)
	prometheus.MustRegister(m.ResolveRequests)
	prometheus.MustRegister(m.SearchErrors)
	prometheus.MustRegister(m.SearchResults)
	prometheus.MustRegister(m.CandidatesReturned)
	prometheus.MustRegister(m.CacheHits)
	prometheus.MustRegister(m.CacheMisses)
	prometheus.MustRegister(m.FileLinkErrors)
}
