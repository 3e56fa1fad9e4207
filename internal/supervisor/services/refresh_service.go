// FlickPicks - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flickpicks

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/flickpicks/internal/metrics"
)

// Refresher reloads the corpus and swaps the snapshot when it changed.
// *recommend.Engine satisfies it.
type Refresher interface {
	Refresh(ctx context.Context) (bool, error)
}

// RefreshServiceConfig holds refresh scheduling.
type RefreshServiceConfig struct {
	// OnStartup refreshes once as soon as the service starts.
	OnStartup bool

	// Interval between refreshes. Zero disables the periodic refresh; the
	// service then idles until stopped.
	Interval time.Duration

	// Timeout bounds a single refresh.
	// Default: 10m
	Timeout time.Duration
}

// RefreshService keeps the engine snapshot in step with the corpus file.
// A failed refresh is logged and counted; the previous snapshot keeps serving.
type RefreshService struct {
	engine Refresher
	config RefreshServiceConfig
	logger zerolog.Logger
	name   string
}

// NewRefreshService creates a refresh service for engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRefreshService(engine Refresher, cfg RefreshServiceConfig, logger zerolog.Logger) *RefreshService {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Minute
	}
	return &RefreshService{
		engine: engine,
		config: cfg,
		logger: logger.With().Str("service", "refresh").Logger(),
		name:   "corpus-refresh",
	}
}

// Serve implements suture.Service.
func (s *RefreshService) Serve(ctx context.Context) error {
	s.logger.Info().
		Bool("on_startup", s.config.OnStartup).
		Dur("interval", s.config.Interval).
		Msg("refresh service starting")

	if s.config.OnStartup {
		s.refresh(ctx)
	}

	if s.config.Interval <= 0 {
		<-ctx.Done()
		return ctx.Err()
	}

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("refresh service shutting down")
			return ctx.Err()

		case <-ticker.C:
			s.refresh(ctx)
		}
	}
}

func (s *RefreshService) refresh(ctx context.Context) {
	refreshCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	start := time.Now()
	changed, err := s.engine.Refresh(refreshCtx)
	metrics.RecordRefresh(changed, err)

	if err != nil {
		if ctx.Err() != nil {
			return
		}
		s.logger.Warn().Err(err).Dur("duration", time.Since(start)).Msg("corpus refresh failed")
		return
	}

	s.logger.Info().
		Bool("changed", changed).
		Dur("duration", time.Since(start)).
		Msg("corpus refresh complete")
}

// String implements fmt.Stringer for suture's event log.
func (s *RefreshService) String() string {
	return s.name
}
