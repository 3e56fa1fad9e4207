// FlickPicks - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flickpicks

package corpus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/flickpicks/internal/metrics"
	"github.com/tomtom215/flickpicks/internal/recommend"
)

// BreakerConfig configures the circuit breaker around a corpus source.
type BreakerConfig struct {
	Enabled bool

	// Name labels the breaker in metrics. Defaults to "corpus-<source>".
	Name string

	// MaxRequests is the number of trial loads allowed while half-open.
	MaxRequests uint32

	// Interval resets the closed-state counts. Zero never resets.
	Interval time.Duration

	// Timeout is how long the breaker stays open before going half-open.
	Timeout time.Duration

	// FailureThreshold is the number of consecutive failed loads that opens the breaker.
	FailureThreshold uint32
}

// DefaultBreakerConfig returns the breaker defaults.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Enabled:          false,
		MaxRequests:      1,
		Interval:         0,
		Timeout:          time.Minute,
		FailureThreshold: 3,
	}
}

// ErrSourceUnavailable is returned while the breaker rejects loads.
var ErrSourceUnavailable = errors.New("corpus source unavailable")

// BreakerSource guards a Source with a circuit breaker so a failing file
// or mount is not hammered by every refresh tick.
type BreakerSource struct {
	src  Source
	cb   *gobreaker.CircuitBreaker[[]recommend.MovieRecord]
	name string
}

// NewBreakerSource wraps src.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewBreakerSource(src Source, cfg BreakerConfig, logger zerolog.Logger) *BreakerSource {
	name := cfg.Name
	if name == "" {
		name = "corpus-" + src.Name()
	}
	threshold := cfg.FailureThreshold
	if threshold == 0 {
		threshold = DefaultBreakerConfig().FailureThreshold
	}

	logger = logger.With().Str("component", "corpus_breaker").Str("breaker", name).Logger()
	metrics.RecordCircuitBreakerState(name, stateValue(gobreaker.StateClosed))

	cb := gobreaker.NewCircuitBreaker[[]recommend.MovieRecord](gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		// A cancelled load says nothing about the source's health.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("corpus circuit breaker state change")
			metrics.RecordCircuitBreakerState(name, stateValue(to))
		},
	})

	return &BreakerSource{src: src, cb: cb, name: name}
}

// Name implements Source.
func (b *BreakerSource) Name() string {
	return b.src.Name()
}

// Load implements recommend.CorpusSource.
func (b *BreakerSource) Load(ctx context.Context) ([]recommend.MovieRecord, error) {
	records, err := b.cb.Execute(func() ([]recommend.MovieRecord, error) {
		return b.src.Load(ctx)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %s: %w", ErrSourceUnavailable, b.name, err)
	}
	return records, err
}

// State returns the breaker state name.
func (b *BreakerSource) State() string {
	return b.cb.State().String()
}

// Close implements Source.
func (b *BreakerSource) Close() error {
	return b.src.Close()
}

func stateValue(state gobreaker.State) int {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
