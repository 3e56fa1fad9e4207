// FlickPicks - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flickpicks

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/tomtom215/flickpicks/internal/recommend"
)

var (
	// Recommendation Metrics
	RecommendRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flickpicks_recommend_requests_total",
			Help: "Total number of recommendation requests by outcome",
		},
		[]string{"outcome"}, // success, invalid_seed, invalid_input, empty_corpus, error
	)

	RecommendRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "flickpicks_recommend_request_duration_seconds",
			Help:    "Duration of recommendation requests in seconds",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"cache"}, // hit, miss
	)

	// Snapshot Metrics
	SnapshotBuildsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flickpicks_snapshot_builds_total",
			Help: "Total number of similarity snapshot builds by result",
		},
		[]string{"result"}, // success, error
	)

	SnapshotBuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "flickpicks_snapshot_build_duration_seconds",
			Help:    "Duration of successful similarity snapshot builds in seconds",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 14), // 10ms .. ~80s
		},
	)

	CorpusSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "flickpicks_corpus_movies",
			Help: "Number of movies in the loaded corpus",
		},
	)

	VocabularySize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "flickpicks_vocabulary_terms",
			Help: "Number of distinct terms per signal in the loaded snapshot",
		},
		[]string{"signal"},
	)

	SnapshotBuiltTimestamp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "flickpicks_snapshot_built_timestamp_seconds",
			Help: "Unix time of the last successful snapshot build",
		},
	)

	// Corpus Source Metrics
	CorpusLoadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "flickpicks_corpus_load_duration_seconds",
			Help:    "Duration of corpus loads in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source"},
	)

	CorpusLoadErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flickpicks_corpus_load_errors_total",
			Help: "Total number of failed corpus loads",
		},
		[]string{"source"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "flickpicks_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	// Refresh Metrics
	RefreshRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flickpicks_refresh_runs_total",
			Help: "Total number of scheduled corpus refreshes by result",
		},
		[]string{"result"}, // changed, unchanged, error
	)

	// Ops HTTP Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flickpicks_http_requests_total",
			Help: "Total number of ops HTTP requests",
		},
		[]string{"method", "route", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "flickpicks_http_request_duration_seconds",
			Help:    "Ops HTTP request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"method", "route"},
	)

	HTTPActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "flickpicks_http_active_requests",
			Help: "Current number of in-flight ops HTTP requests",
		},
	)
)

// RecordRecommendRequest records a recommendation request metric.
func RecordRecommendRequest(outcome string, duration time.Duration, cacheHit bool) {
	RecommendRequestsTotal.WithLabelValues(outcome).Inc()
	cache := "miss"
	if cacheHit {
		cache = "hit"
	}
	RecommendRequestDuration.WithLabelValues(cache).Observe(duration.Seconds())
}

// RecordSnapshotBuild records the outcome of a snapshot build.
// Gauges are only updated on success so they keep describing the live snapshot.
//
//nolint:gocritic // hugeParam: stats passed by value to match Observer
func RecordSnapshotBuild(stats recommend.SnapshotStats, err error) {
	if err != nil {
		SnapshotBuildsTotal.WithLabelValues("error").Inc()
		return
	}

	SnapshotBuildsTotal.WithLabelValues("success").Inc()
	SnapshotBuildDuration.Observe(stats.Duration.Seconds())
	CorpusSize.Set(float64(stats.CorpusSize))
	for signal, size := range stats.VocabularySizes {
		VocabularySize.WithLabelValues(string(signal)).Set(float64(size))
	}
	if !stats.BuiltAt.IsZero() {
		SnapshotBuiltTimestamp.Set(float64(stats.BuiltAt.Unix()))
	}
}

// RecordCorpusLoad records a corpus load from the named source.
func RecordCorpusLoad(source string, duration time.Duration, err error) {
	CorpusLoadDuration.WithLabelValues(source).Observe(duration.Seconds())
	if err != nil {
		CorpusLoadErrors.WithLabelValues(source).Inc()
	}
}

// RecordCircuitBreakerState records a breaker state as 0, 1 or 2.
func RecordCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}

// RecordRefresh records a scheduled refresh.
func RecordRefresh(changed bool, err error) {
	var result string
	switch {
	case err != nil:
		result = "error"
	case changed:
		result = "changed"
	default:
		result = "unchanged"
	}
	RefreshRunsTotal.WithLabelValues(result).Inc()
}

// Observer adapts the package-level metrics to recommend.Observer.
type Observer struct{}

// ObserveRequest implements recommend.Observer.
func (Observer) ObserveRequest(outcome string, duration time.Duration, cacheHit bool) {
	RecordRecommendRequest(outcome, duration, cacheHit)
}

// ObserveSnapshot implements recommend.Observer.
//
//nolint:gocritic // hugeParam: signature fixed by recommend.Observer
func (Observer) ObserveSnapshot(stats recommend.SnapshotStats, err error) {
	RecordSnapshotBuild(stats, err)
}

var _ recommend.Observer = Observer{}

// RecordHTTPRequest records a completed ops HTTP request.
func RecordHTTPRequest(method, route, statusCode string, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, statusCode).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the in-flight gauge.
func TrackActiveRequest(start bool) {
	if start {
		HTTPActiveRequests.Inc()
	} else {
		HTTPActiveRequests.Dec()
	}
}
