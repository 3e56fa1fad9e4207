// FlickPicks - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flickpicks

/*
Package metrics provides Prometheus metrics for the recommendation service.

# Overview

The package provides metrics for:
  - Recommendation requests by outcome and latency
  - Similarity snapshot builds (duration, corpus size, vocabulary size)
  - Corpus loads and circuit breaker state
  - Scheduled refresh results

# Metrics Endpoint

Metrics are exposed at the /metrics endpoint of the ops server in Prometheus
text format:

	curl http://localhost:9090/metrics

# Usage

The recommend package reports through its Observer interface so it stays free
of Prometheus imports:

	engine.SetObserver(metrics.Observer{})

Other components call the Record helpers directly:

	metrics.RecordCorpusLoad("duckdb", time.Since(start), err)
*/
package metrics
