// FlickPicks - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flickpicks

package recommend

import (
	"context"
	"time"
)

// MovieRecord is one row of the corpus.
type MovieRecord struct {
	// ID is the unique movie identifier.
	ID int `json:"id"`

	// SoupPlot is the plot summary text.
	SoupPlot string `json:"soup_plot"`

	// SoupGeneral is the concatenated genre, cast and director text.
	SoupGeneral string `json:"soup_general"`
}

// Text returns the text of the record for the given signal.
func (r *MovieRecord) Text(s Signal) string {
	switch s {
	case SignalPlot:
		return r.SoupPlot
	case SignalGeneral:
		return r.SoupGeneral
	default:
		return ""
	}
}

// ScoredMovie is a recommended movie with its aggregate similarity.
type ScoredMovie struct {
	// ID is the movie identifier.
	ID int `json:"id"`

	// Score is the mean blended similarity to the seeds (0-1).
	Score float64 `json:"score"`
}

// Request represents a recommendation request.
type Request struct {
	// SeedIDs are the movies the recommendations should resemble.
	// At least one is required; duplicates are ignored.
	SeedIDs []int `json:"seed_ids"`

	// IgnoreIDs are excluded from the result.
	// A nil slice defaults to SeedIDs; an empty non-nil slice excludes nothing.
	IgnoreIDs []int `json:"ignore_ids,omitempty"`

	// Blend overrides the configured signal weights.
	// Defaults to Config.Blend if empty.
	Blend Blend `json:"blend,omitempty"`

	// N is the number of recommendations to return.
	// Defaults to Config.Limits.DefaultN if zero.
	N int `json:"n,omitempty"`

	// RequestID is a unique identifier for tracing.
	RequestID string `json:"request_id,omitempty"`
}

// Response represents a recommendation response.
type Response struct {
	// Items is the ordered list of recommended movies.
	Items []ScoredMovie `json:"items"`

	// Metadata contains timing and diagnostic information.
	Metadata ResponseMetadata `json:"metadata"`
}

// IDs returns the recommended movie ids in rank order.
func (r *Response) IDs() []int {
	ids := make([]int, len(r.Items))
	for i, item := range r.Items {
		ids[i] = item.ID
	}
	return ids
}

// ResponseMetadata contains timing and diagnostic information.
type ResponseMetadata struct {
	// RequestID is the unique request identifier.
	RequestID string `json:"request_id"`

	// CorpusVersion identifies the corpus the ranking was computed on.
	CorpusVersion string `json:"corpus_version"`

	// CorpusSize is the number of movies in the corpus.
	CorpusSize int `json:"corpus_size"`

	// Blend is the effective signal weighting.
	Blend Blend `json:"blend"`

	// LatencyMS is the total recommendation latency in milliseconds.
	LatencyMS int64 `json:"latency_ms"`

	// CacheHit indicates whether the result was served from cache.
	CacheHit bool `json:"cache_hit"`

	// Timestamp is when the response was generated.
	Timestamp time.Time `json:"timestamp"`
}

// CorpusSource loads the movie corpus.
// Implementations live in the corpus package.
type CorpusSource interface {
	// Load returns all records in corpus order.
	Load(ctx context.Context) ([]MovieRecord, error)
}

// ResultCache stores ranked results keyed by corpus version and request.
// cache.LRU[[]ScoredMovie] satisfies it.
type ResultCache interface {
	Get(key string) ([]ScoredMovie, bool)
	Add(key string, value []ScoredMovie)
	Clear()
}

// Observer receives engine events for metrics collection.
type Observer interface {
	// ObserveRequest is called once per Recommend call.
	ObserveRequest(outcome string, duration time.Duration, cacheHit bool)

	// ObserveSnapshot is called after every snapshot build attempt.
	ObserveSnapshot(stats SnapshotStats, err error)
}

// Request outcomes reported to the Observer.
const (
	OutcomeSuccess      = "success"
	OutcomeInvalidSeed  = "invalid_seed"
	OutcomeInvalidInput = "invalid_input"
	OutcomeEmptyCorpus  = "empty_corpus"
	OutcomeError        = "error"
)

// Status describes the engine state.
type Status struct {
	// Ready reports whether a snapshot is loaded.
	Ready bool `json:"ready"`

	// CorpusVersion is the version of the loaded snapshot.
	CorpusVersion string `json:"corpus_version,omitempty"`

	// CorpusSize is the number of movies in the loaded snapshot.
	CorpusSize int `json:"corpus_size"`

	// BuiltAt is when the loaded snapshot was built.
	BuiltAt time.Time `json:"built_at,omitempty"`

	// BuildDurationMS is how long the last successful build took.
	BuildDurationMS int64 `json:"build_duration_ms"`

	// Refreshes is the number of successful refresh calls.
	Refreshes int64 `json:"refreshes"`

	// LastRefreshAt is when Refresh last completed successfully.
	LastRefreshAt time.Time `json:"last_refresh_at,omitempty"`

	// LastError contains the last refresh error, if any.
	LastError string `json:"last_error,omitempty"`

	// RequestCount is the total number of recommendation requests.
	RequestCount int64 `json:"request_count"`

	// CacheHits is the number of cache hits.
	CacheHits int64 `json:"cache_hits"`

	// CacheMisses is the number of cache misses.
	CacheMisses int64 `json:"cache_misses"`

	// ErrorCount is the total number of failed requests.
	ErrorCount int64 `json:"error_count"`
}
