// Package metrics provides the Prometheus metrics registry for the predictor.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "boatrace"

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	PageFetchesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "page_fetches_total",
		Help:      "Total number of race page fetches by outcome",
	}, []string{"outcome"})
	PageCacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "page_cache_hits_total",
		Help:      "Total number of race pages served from the page cache",
	})
	ExtractionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "extractions_total",
		Help:      "Total number of roster extractions by matching strategy",
	}, []string{"strategy"})
	RostersTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rosters_total",
		Help:      "Total number of rosters served by data source",
	}, []string{"data_source"})
	SyntheticLanesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "synthetic_lanes_total",
		Help:      "Total number of roster lanes filled with synthetic data",
	})
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of API requests by route and status code",
	}, []string{"route", "code"})
)

// Histogram metrics
var (
	PageFetchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "page_fetch_duration_seconds",
		Help:      "Duration of race page fetches in seconds",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 20, 30},
	})
	PredictionDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "prediction_duration_seconds",
		Help:      "Duration of the full fetch, extract and score pipeline in seconds",
		Buckets:   prometheus.DefBuckets,
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(PageFetchesTotal)
		registry.MustRegister(PageCacheHitsTotal)
		registry.MustRegister(ExtractionsTotal)
		registry.MustRegister(RostersTotal)
		registry.MustRegister(SyntheticLanesTotal)
		registry.MustRegister(HTTPRequestsTotal)

		registry.MustRegister(PageFetchDuration)
		registry.MustRegister(PredictionDuration)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	return InitRegistry()
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordPageFetch records a fetch outcome ("ok" or a fetch error code) and its latency.
func RecordPageFetch(outcome string, durationSeconds float64) {
	PageFetchesTotal.WithLabelValues(outcome).Inc()
	PageFetchDuration.Observe(durationSeconds)
}

// RecordPageCacheHit records a page served from cache.
func RecordPageCacheHit() {
	PageCacheHitsTotal.Inc()
}

// RecordExtraction records which extraction strategy matched.
func RecordExtraction(strategy string) {
	if strategy == "" {
		strategy = "none"
	}
	ExtractionsTotal.WithLabelValues(strategy).Inc()
}

// RecordRoster records a served roster and how many of its lanes were synthetic.
func RecordRoster(dataSource string, syntheticLanes int) {
	RostersTotal.WithLabelValues(dataSource).Inc()
	SyntheticLanesTotal.Add(float64(syntheticLanes))
}

// RecordPrediction records the end-to-end pipeline duration.
func RecordPrediction(durationSeconds float64) {
	PredictionDuration.Observe(durationSeconds)
}

// RecordHTTPRequest records an API request.
func RecordHTTPRequest(route, code string) {
	HTTPRequestsTotal.WithLabelValues(route, code).Inc()
}
