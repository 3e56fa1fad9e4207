// FlickPicks - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flickpicks

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/flickpicks/internal/recommend/features"
	"github.com/tomtom215/flickpicks/internal/recommend/similarity"
)

// Note: This package has no dependencies on other internal packages apart from
// its own subpackages. CorpusSource, ResultCache and Observer let the corpus,
// cache and metrics packages plug in without circular imports.

// ErrNotReady is returned when no snapshot is loaded and no source is set.
var ErrNotReady = errors.New("recommend: no corpus loaded")

// Engine serves recommendations from a shared snapshot.
// It is safe for concurrent use.
type Engine struct {
	// Configuration
	config   *Config
	logger   zerolog.Logger
	analyzer *features.Analyzer

	// Current snapshot, swapped whole under snapMu
	snapMu        sync.RWMutex
	snapshot      *Snapshot
	lastRefreshAt time.Time
	lastError     string

	// buildMu serializes snapshot builds
	buildMu sync.Mutex

	// Collaborators
	source   CorpusSource
	cache    ResultCache
	observer Observer

	// Counters
	requestCount atomic.Int64
	cacheHits    atomic.Int64
	cacheMisses  atomic.Int64
	errorCount   atomic.Int64
	refreshes    atomic.Int64
}

// NewEngine creates a new recommendation engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	analyzer, err := features.NewAnalyzer(features.AnalyzerConfig{
		MinTokenLength: cfg.Vectorizer.MinTokenLength,
		KeepStopWords:  cfg.Vectorizer.KeepStopWords,
	})
	if err != nil {
		return nil, fmt.Errorf("create analyzer: %w", err)
	}

	return &Engine{
		config:   cfg.Clone(),
		logger:   logger.With().Str("component", "recommend").Logger(),
		analyzer: analyzer,
	}, nil
}

// SetSource sets the corpus source used by Refresh.
func (e *Engine) SetSource(src CorpusSource) {
	e.source = src
}

// SetCache enables result caching. A nil cache disables it.
func (e *Engine) SetCache(c ResultCache) {
	e.cache = c
}

// SetObserver registers a metrics observer.
func (e *Engine) SetObserver(o Observer) {
	e.observer = o
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// Snapshot returns the current snapshot, nil if none is loaded.
func (e *Engine) Snapshot() *Snapshot {
	e.snapMu.RLock()
	defer e.snapMu.RUnlock()
	return e.snapshot
}

// Load builds a snapshot from records and installs it, bypassing the source.
func (e *Engine) Load(ctx context.Context, records []MovieRecord) error {
	corpus, err := NewCorpus(records)
	if err != nil {
		return fmt.Errorf("load corpus: %w", err)
	}

	e.buildMu.Lock()
	defer e.buildMu.Unlock()

	snap, err := e.build(ctx, corpus)
	if err != nil {
		e.recordRefreshError(err)
		return err
	}
	e.install(snap)
	return nil
}

// Refresh reloads the corpus from the source and rebuilds the snapshot when
// the corpus version differs from the loaded one. It reports whether a new
// snapshot was installed. On error the previous snapshot stays in place.
func (e *Engine) Refresh(ctx context.Context) (bool, error) {
	if e.source == nil {
		return false, ErrNotReady
	}

	e.buildMu.Lock()
	defer e.buildMu.Unlock()

	corpus, err := e.loadCorpus(ctx)
	if err != nil {
		e.recordRefreshError(err)
		return false, err
	}

	if current := e.Snapshot(); current != nil && current.Version() == corpus.Version() {
		e.markRefreshed()
		e.logger.Debug().
			Str("corpus_version", corpus.Version()).
			Msg("corpus unchanged, keeping snapshot")
		return false, nil
	}

	snap, err := e.build(ctx, corpus)
	if err != nil {
		e.recordRefreshError(err)
		return false, err
	}
	e.install(snap)
	return true, nil
}

// Invalidate drops the current snapshot and cached results. The next
// Recommend or Refresh rebuilds from the source.
func (e *Engine) Invalidate() {
	e.snapMu.Lock()
	e.snapshot = nil
	e.snapMu.Unlock()

	if e.cache != nil {
		e.cache.Clear()
	}
	e.logger.Info().Msg("snapshot invalidated")
}

// Recommend ranks movies similar to the request seeds.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	e.requestCount.Add(1)

	req = e.prepareRequest(req)
	logger := e.createRequestLogger(req)
	logger.Debug().Msg("processing recommendation request")

	resp, cacheHit, err := e.recommend(ctx, req, start)

	if e.observer != nil {
		e.observer.ObserveRequest(outcomeOf(err), time.Since(start), cacheHit)
	}
	if err != nil {
		e.errorCount.Add(1)
		logger.Debug().Err(err).Msg("recommendation failed")
		return nil, err
	}

	logger.Debug().
		Int("returned", len(resp.Items)).
		Bool("cache_hit", cacheHit).
		Int64("latency_ms", resp.Metadata.LatencyMS).
		Msg("recommendation complete")

	return resp, nil
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) recommend(ctx context.Context, req Request, start time.Time) (*Response, bool, error) {
	if err := e.validateRequest(req); err != nil {
		return nil, false, err
	}

	snap, err := e.snapshotFor(ctx)
	if err != nil {
		return nil, false, err
	}

	useCache := e.cache != nil && e.config.Cache.Enabled && e.config.Snapshot.Reuse
	key := ""
	if useCache {
		key = cacheKey(snap.Version(), req)
		if items, ok := e.cache.Get(key); ok {
			e.cacheHits.Add(1)
			return e.buildResponse(req, snap, copyItems(items), start, true), true, nil
		}
		e.cacheMisses.Add(1)
	}

	items, err := Rank(snap, RankParams{
		SeedIDs:   req.SeedIDs,
		IgnoreIDs: req.IgnoreIDs,
		Blend:     req.Blend,
		N:         req.N,
	})
	if err != nil {
		return nil, false, fmt.Errorf("rank: %w", err)
	}

	if useCache {
		e.cache.Add(key, copyItems(items))
	}

	return e.buildResponse(req, snap, items, start, false), false, nil
}

// prepareRequest applies defaults and generates a request ID if needed.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) prepareRequest(req Request) Request {
	if req.RequestID == "" {
		req.RequestID = uuid.New().String()
	}
	if req.N == 0 {
		req.N = e.config.Limits.DefaultN
	}
	if len(req.Blend) == 0 {
		req.Blend = e.config.Blend.Clone()
	}
	return req
}

// validateRequest rejects bad parameters before any corpus load or snapshot
// build. Seed and ignore ids need the corpus and are resolved by Rank.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) validateRequest(req Request) error {
	if err := req.Blend.Validate(); err != nil {
		return err
	}
	if req.N <= 0 {
		return &ConfigurationError{Field: "n_movies", Value: req.N, Message: "must be positive"}
	}
	if e.config.Limits.MaxN > 0 && req.N > e.config.Limits.MaxN {
		return &ConfigurationError{Field: "n_movies", Value: req.N, Message: "must be <= " + strconv.Itoa(e.config.Limits.MaxN)}
	}
	if e.config.Limits.MaxSeeds > 0 && len(req.SeedIDs) > e.config.Limits.MaxSeeds {
		distinct := make(map[int]struct{}, len(req.SeedIDs))
		for _, id := range req.SeedIDs {
			distinct[id] = struct{}{}
		}
		if len(distinct) > e.config.Limits.MaxSeeds {
			return &ConfigurationError{Field: "seed_ids", Value: len(distinct), Message: "must have at most " + strconv.Itoa(e.config.Limits.MaxSeeds) + " distinct ids"}
		}
	}
	return nil
}

// createRequestLogger creates a logger with request context.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) createRequestLogger(req Request) zerolog.Logger {
	return e.logger.With().
		Str("request_id", req.RequestID).
		Int("seeds", len(req.SeedIDs)).
		Int("n", req.N).
		Str("blend", req.Blend.String()).
		Logger()
}

// snapshotFor returns the snapshot a request should be ranked on.
func (e *Engine) snapshotFor(ctx context.Context) (*Snapshot, error) {
	if !e.config.Snapshot.Reuse && e.source != nil {
		corpus, err := e.loadCorpus(ctx)
		if err != nil {
			return nil, err
		}
		return e.build(ctx, corpus)
	}

	if snap := e.Snapshot(); snap != nil {
		return snap, nil
	}
	if e.source == nil {
		return nil, ErrNotReady
	}

	if _, err := e.Refresh(ctx); err != nil {
		return nil, err
	}
	if snap := e.Snapshot(); snap != nil {
		return snap, nil
	}
	return nil, ErrNotReady
}

// loadCorpus reads and validates the corpus from the source.
func (e *Engine) loadCorpus(ctx context.Context) (*Corpus, error) {
	records, err := e.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load corpus: %w", err)
	}
	corpus, err := NewCorpus(records)
	if err != nil {
		return nil, fmt.Errorf("load corpus: %w", err)
	}
	return corpus, nil
}

// build constructs a snapshot for corpus within the configured timeout.
func (e *Engine) build(ctx context.Context, corpus *Corpus) (*Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, e.config.Snapshot.BuildTimeout)
	defer cancel()

	snap, err := BuildSnapshot(ctx, corpus, e.analyzer, similarity.Options{
		Workers:   e.config.Similarity.Workers,
		BlockSize: e.config.Similarity.BlockSize,
	})

	if e.observer != nil {
		stats := SnapshotStats{CorpusVersion: corpus.Version(), CorpusSize: corpus.Len()}
		if snap != nil {
			stats = snap.Stats()
		}
		e.observer.ObserveSnapshot(stats, err)
	}

	if err != nil {
		return nil, fmt.Errorf("build snapshot: %w", err)
	}

	e.logger.Info().
		Str("corpus_version", snap.Version()).
		Int("corpus_size", corpus.Len()).
		Dur("duration", snap.Stats().Duration).
		Msg("snapshot built")

	return snap, nil
}

// install swaps in snap and drops results cached for the previous corpus.
func (e *Engine) install(snap *Snapshot) {
	e.snapMu.Lock()
	e.snapshot = snap
	e.lastRefreshAt = time.Now()
	e.lastError = ""
	e.snapMu.Unlock()

	e.refreshes.Add(1)
	if e.cache != nil {
		e.cache.Clear()
	}
}

func (e *Engine) markRefreshed() {
	e.snapMu.Lock()
	e.lastRefreshAt = time.Now()
	e.lastError = ""
	e.snapMu.Unlock()
	e.refreshes.Add(1)
}

func (e *Engine) recordRefreshError(err error) {
	e.snapMu.Lock()
	e.lastError = err.Error()
	e.snapMu.Unlock()
	e.logger.Error().Err(err).Msg("snapshot refresh failed")
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) buildResponse(req Request, snap *Snapshot, items []ScoredMovie, start time.Time, cacheHit bool) *Response {
	return &Response{
		Items: items,
		Metadata: ResponseMetadata{
			RequestID:     req.RequestID,
			CorpusVersion: snap.Version(),
			CorpusSize:    snap.Corpus().Len(),
			Blend:         req.Blend,
			LatencyMS:     time.Since(start).Milliseconds(),
			CacheHit:      cacheHit,
			Timestamp:     time.Now(),
		},
	}
}

// Status returns the current engine state.
func (e *Engine) Status() Status {
	e.snapMu.RLock()
	snap := e.snapshot
	st := Status{
		LastRefreshAt: e.lastRefreshAt,
		LastError:     e.lastError,
	}
	e.snapMu.RUnlock()

	if snap != nil {
		stats := snap.Stats()
		st.Ready = true
		st.CorpusVersion = stats.CorpusVersion
		st.CorpusSize = stats.CorpusSize
		st.BuiltAt = stats.BuiltAt
		st.BuildDurationMS = stats.Duration.Milliseconds()
	}

	st.Refreshes = e.refreshes.Load()
	st.RequestCount = e.requestCount.Load()
	st.CacheHits = e.cacheHits.Load()
	st.CacheMisses = e.cacheMisses.Load()
	st.ErrorCount = e.errorCount.Load()
	return st
}

// cacheKey identifies a request on a given corpus version. Seeds and ignore
// ids are treated as sets.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func cacheKey(version string, req Request) string {
	var sb strings.Builder
	sb.WriteString(version)
	sb.WriteString("|s=")
	writeIDSet(&sb, req.SeedIDs)
	if req.IgnoreIDs == nil {
		sb.WriteString("|i=seeds")
	} else {
		sb.WriteString("|i=")
		writeIDSet(&sb, req.IgnoreIDs)
	}
	sb.WriteString("|b=")
	sb.WriteString(req.Blend.String())
	sb.WriteString("|n=")
	sb.WriteString(strconv.Itoa(req.N))

	return version + ":" + strconv.FormatUint(xxhash.Sum64String(sb.String()), 16)
}

func writeIDSet(sb *strings.Builder, ids []int) {
	sorted := make([]int, len(ids))
	copy(sorted, ids)
	sort.Ints(sorted)
	for i, id := range sorted {
		if i > 0 && id == sorted[i-1] {
			continue
		}
		sb.WriteString(strconv.Itoa(id))
		sb.WriteByte(',')
	}
}

func copyItems(items []ScoredMovie) []ScoredMovie {
	out := make([]ScoredMovie, len(items))
	copy(out, items)
	return out
}
