// FlickPicks - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flickpicks

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"time"

	"github.com/tomtom215/flickpicks/internal/api"
	"github.com/tomtom215/flickpicks/internal/logging"
	"github.com/tomtom215/flickpicks/internal/supervisor"
	"github.com/tomtom215/flickpicks/internal/supervisor/services"
)

// runServe keeps a snapshot loaded, refreshing it on schedule, and serves
// the ops endpoints until ctx is cancelled.
func runServe(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return &usageError{err: err}
	}
	if fs.NArg() > 0 {
		return &usageError{err: fmt.Errorf("serve takes no arguments")}
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := logging.Logger()
	logger.Info().Str("version", version).Msg("Starting FlickPicks with supervisor tree")

	engine, src, err := newEngine(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := src.Close(); cerr != nil {
			logger.Warn().Err(cerr).Msg("Failed to close corpus source")
		}
	}()

	treeCfg := supervisor.DefaultTreeConfig()
	treeCfg.ShutdownTimeout = cfg.Server.ShutdownTimeout
	tree := supervisor.NewSupervisorTree(logging.NewSlogLogger(logger), treeCfg)

	tree.AddEngineService(services.NewRefreshService(engine, services.RefreshServiceConfig{
		OnStartup: cfg.Refresh.OnStartup,
		Interval:  cfg.Refresh.Interval,
		Timeout:   cfg.Refresh.Timeout,
	}, logger))

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           api.NewRouter(api.NewHandler(engine, version)),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout, logger))

	logger.Info().Msg("Starting supervisor tree...")
	var serveErr error
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error().Err(err).Msg("Supervisor tree error")
		serveErr = err
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logger.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logger.Info().Msg("Application stopped gracefully")
	return serveErr
}
