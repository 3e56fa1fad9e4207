// FlickPicks - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flickpicks

/*
Package supervisor runs the long-lived parts of `flickpicks serve` under a
suture v4 supervisor tree.

	flickpicks (root)
	├── engine-layer
	│   └── corpus-refresh   periodic Engine.Refresh
	└── api-layer
	    └── ops-http-server  /healthz, /readyz, /api/v1/status, /metrics

A service that returns an error is restarted with suture's failure
backoff. Layers are separate supervisors so a crashing ops server does not
restart the refresh loop and the other way round. Supervisor events are
logged through sutureslog into the zerolog output.
*/
package supervisor
