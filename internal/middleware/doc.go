// FlickPicks - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flickpicks

// Package middleware holds the HTTP middleware used by the ops router.
// Every middleware has the func(http.Handler) http.Handler shape that
// chi's Use accepts.
package middleware
