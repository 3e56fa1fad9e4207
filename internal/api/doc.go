// FlickPicks - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flickpicks

// Package api serves the ops HTTP endpoints of `flickpicks serve`:
//
//	GET /healthz         process liveness
//	GET /readyz          200 once a snapshot is loaded, 503 before
//	GET /api/v1/status   engine status
//	GET /metrics         Prometheus exposition
//
// Recommendations themselves are not served over HTTP.
package api
