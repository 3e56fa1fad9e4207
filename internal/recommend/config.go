// FlickPicks - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flickpicks

package recommend

import (
	"time"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Blend is the default signal weighting for requests that carry none.
	Blend Blend `json:"blend"`

	// Vectorizer contains text analysis parameters.
	Vectorizer VectorizerConfig `json:"vectorizer"`

	// Similarity contains parallelism parameters for matrix builds.
	Similarity SimilarityConfig `json:"similarity"`

	// Snapshot controls how built matrices are reused.
	Snapshot SnapshotConfig `json:"snapshot"`

	// Limits contains operational limits.
	Limits LimitsConfig `json:"limits"`

	// Cache contains result caching parameters.
	Cache CacheConfig `json:"cache"`
}

// VectorizerConfig contains text analysis parameters.
type VectorizerConfig struct {
	// MinTokenLength drops shorter tokens.
	// Default: 2.
	MinTokenLength int `json:"min_token_length"`

	// KeepStopWords disables English stop word removal.
	// Default: false.
	KeepStopWords bool `json:"keep_stop_words"`
}

// SimilarityConfig contains parallelism parameters for matrix builds.
type SimilarityConfig struct {
	// Workers is the number of concurrent row blocks per matrix.
	// Zero uses GOMAXPROCS.
	Workers int `json:"workers"`

	// BlockSize is the number of rows per block.
	// Default: 64.
	BlockSize int `json:"block_size"`
}

// SnapshotConfig controls how built matrices are reused.
type SnapshotConfig struct {
	// Reuse keeps the snapshot between requests and rebuilds only on
	// Refresh with a changed corpus or after Invalidate. When false every
	// request reloads the corpus and rebuilds the matrices.
	// Default: true.
	Reuse bool `json:"reuse"`

	// BuildTimeout bounds a single snapshot build.
	// Default: 10m.
	BuildTimeout time.Duration `json:"build_timeout"`
}

// LimitsConfig contains operational limits.
type LimitsConfig struct {
	// DefaultN is the number of recommendations returned when a request
	// does not set N.
	// Default: 10.
	DefaultN int `json:"default_n"`

	// MaxN caps N. Zero means no cap; Rank already truncates to the
	// available candidates.
	// Default: 0.
	MaxN int `json:"max_n"`

	// MaxSeeds caps the number of distinct seeds per request. Zero means no cap.
	// Default: 0.
	MaxSeeds int `json:"max_seeds"`
}

// CacheConfig contains result caching parameters.
type CacheConfig struct {
	// Enabled controls whether ranked results are cached.
	// Default: true.
	Enabled bool `json:"enabled"`

	// TTL is the cache entry time-to-live.
	// Default: 5m.
	TTL time.Duration `json:"ttl"`

	// MaxEntries is the maximum number of cached results.
	// Default: 10000.
	MaxEntries int `json:"max_entries"`
}

// DefaultConfig returns a Config with sensible production defaults.
func DefaultConfig() *Config {
	return &Config{
		Blend: PlotBlend(DefaultPlotWeight),
		Vectorizer: VectorizerConfig{
			MinTokenLength: 2,
		},
		Similarity: SimilarityConfig{
			BlockSize: 64,
		},
		Snapshot: SnapshotConfig{
			Reuse:        true,
			BuildTimeout: 10 * time.Minute,
		},
		Limits: LimitsConfig{
			DefaultN: 10,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTL:        5 * time.Minute,
			MaxEntries: 10000,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if err := c.Blend.Validate(); err != nil {
		return err
	}

	if c.Vectorizer.MinTokenLength < 1 {
		return &ConfigurationError{Field: "vectorizer.min_token_length", Value: c.Vectorizer.MinTokenLength, Message: "must be positive"}
	}
	if c.Similarity.Workers < 0 {
		return &ConfigurationError{Field: "similarity.workers", Value: c.Similarity.Workers, Message: "must be non-negative"}
	}
	if c.Similarity.BlockSize < 1 {
		return &ConfigurationError{Field: "similarity.block_size", Value: c.Similarity.BlockSize, Message: "must be positive"}
	}
	if c.Snapshot.BuildTimeout <= 0 {
		return &ConfigurationError{Field: "snapshot.build_timeout", Value: c.Snapshot.BuildTimeout, Message: "must be positive"}
	}

	if c.Limits.DefaultN < 1 {
		return &ConfigurationError{Field: "limits.default_n", Value: c.Limits.DefaultN, Message: "must be positive"}
	}
	if c.Limits.MaxN < 0 {
		return &ConfigurationError{Field: "limits.max_n", Value: c.Limits.MaxN, Message: "must be non-negative"}
	}
	if c.Limits.MaxN > 0 && c.Limits.MaxN < c.Limits.DefaultN {
		return &ConfigurationError{Field: "limits.max_n", Value: c.Limits.MaxN, Message: "must be 0 or >= limits.default_n"}
	}
	if c.Limits.MaxSeeds < 0 {
		return &ConfigurationError{Field: "limits.max_seeds", Value: c.Limits.MaxSeeds, Message: "must be non-negative"}
	}

	if c.Cache.Enabled {
		if c.Cache.TTL <= 0 {
			return &ConfigurationError{Field: "cache.ttl", Value: c.Cache.TTL, Message: "must be positive"}
		}
		if c.Cache.MaxEntries < 1 {
			return &ConfigurationError{Field: "cache.max_entries", Value: c.Cache.MaxEntries, Message: "must be positive"}
		}
	}

	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	return &Config{
		Blend:      c.Blend.Clone(),
		Vectorizer: c.Vectorizer,
		Similarity: c.Similarity,
		Snapshot:   c.Snapshot,
		Limits:     c.Limits,
		Cache:      c.Cache,
	}
}
