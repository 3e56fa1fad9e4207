// FlickPicks - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flickpicks

// Package main is the flickpicks command.
//
// Usage:
//
//	flickpicks recommend -seeds 1,2 [-ignore 3] [-n 10] [-weight-plot 0.7] [-json]
//	flickpicks serve
//
// Both subcommands read configuration from flickpicks.yaml (or CONFIG_PATH)
// and the environment; see package config for the keys. A .env file in the
// working directory is loaded first without overriding variables already set.
//
// # Example
//
//	export CORPUS_PATH=/data/movies.parquet
//	flickpicks recommend -seeds 603,604 -n 5
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/tomtom215/flickpicks/internal/cache"
	"github.com/tomtom215/flickpicks/internal/config"
	"github.com/tomtom215/flickpicks/internal/corpus"
	"github.com/tomtom215/flickpicks/internal/logging"
	"github.com/tomtom215/flickpicks/internal/metrics"
	"github.com/tomtom215/flickpicks/internal/recommend"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// Exit codes.
const (
	exitOK          = 0
	exitError       = 1
	exitUsage       = 2
	exitInvalidSeed = 3
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return exitUsage
	}

	var err error
	switch args[0] {
	case "recommend":
		err = runRecommend(ctx, args[1:], stdout)
	case "serve":
		err = runServe(ctx, args[1:])
	case "version":
		_, _ = fmt.Fprintln(stdout, version)
		return exitOK
	case "-h", "-help", "--help", "help":
		usage(stdout)
		return exitOK
	default:
		_, _ = fmt.Fprintf(stderr, "unknown command %q\n", args[0])
		usage(stderr)
		return exitUsage
	}

	return exitCode(err, stderr)
}

func exitCode(err error, stderr io.Writer) int {
	if err == nil {
		return exitOK
	}
	_, _ = fmt.Fprintf(stderr, "flickpicks: %v\n", err)

	var usageErr *usageError
	switch {
	case errors.As(err, &usageErr):
		return exitUsage
	case errors.Is(err, recommend.ErrInvalidSeed):
		return exitInvalidSeed
	default:
		return exitError
	}
}

func usage(w io.Writer) {
	_, _ = fmt.Fprint(w, `usage: flickpicks <command> [flags]

commands:
  recommend   rank movies similar to a set of seed ids
  serve       keep a snapshot loaded and serve the ops endpoints
  version     print the version
`)
}

// usageError marks bad command-line input.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

// loadConfig reads the configuration and configures the global logger.
func loadConfig() (*config.Config, error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logging.Init(cfg.LoggingSetup())
	return cfg, nil
}

// newEngine wires an engine to the configured corpus source.
// The caller must close the returned source.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func newEngine(cfg *config.Config, logger zerolog.Logger) (*recommend.Engine, corpus.Source, error) {
	engineCfg := cfg.RecommendEngineConfig()
	engine, err := recommend.NewEngine(engineCfg, logger)
	if err != nil {
		return nil, nil, err
	}

	src, err := corpus.Open(cfg.CorpusSourceConfig(), logger)
	if err != nil {
		return nil, nil, fmt.Errorf("open corpus: %w", err)
	}

	engine.SetSource(src)
	engine.SetObserver(metrics.Observer{})
	if engineCfg.Cache.Enabled {
		engine.SetCache(cache.NewLRU[[]recommend.ScoredMovie](engineCfg.Cache.MaxEntries, engineCfg.Cache.TTL))
	}

	logger.Info().
		Str("source", src.Name()).
		Str("path", cfg.Corpus.Path).
		Str("blend", engineCfg.Blend.String()).
		Msg("Engine configured")

	return engine, src, nil
}
