// FlickPicks - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flickpicks

// Package logging provides the process-wide zerolog logger for FlickPicks.
//
// Call Init once from main. Components derive child loggers with
// WithComponent and pass them down by value:
//
//	logging.Init(logging.Config{Level: "debug", Format: "console"})
//	engineLogger := logging.WithComponent("recommend")
//
// Request-scoped fields travel in the context:
//
//	ctx = logging.ContextWithNewRequestID(ctx)
//	logging.Ctx(ctx).Info().Msg("recommendation served")
//
// Libraries that expect a *slog.Logger (the suture event hook) get one from
// NewSlogLogger, which writes through the same zerolog output.
//
// Always terminate event chains with Msg or Send; an unterminated chain
// is never written.
package logging
