// FlickPicks - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flickpicks

// Package services adapts FlickPicks components to suture.Service.
//
// Each service blocks in Serve until its context is cancelled and returns
// ctx.Err() on a clean stop, which suture treats as a normal shutdown.
// Returning any other error asks the supervisor for a restart.
package services
