// FlickPicks - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flickpicks

/*
Package config loads FlickPicks configuration.

Sources are layered with koanf, later layers overriding earlier ones:

 1. Built-in defaults (defaultConfig)
 2. An optional YAML file: $CONFIG_PATH, else the first of DefaultConfigPaths
 3. Environment variables

# Environment Variables

Every key may be given with or without the FLICKPICKS_ prefix.

Corpus:
  - CORPUS_PATH: corpus file (parquet, csv, tsv, json or sqlite)
  - CORPUS_FORMAT: auto, parquet, csv, tsv, json, sqlite (default: auto)
  - CORPUS_TABLE: table read from a sqlite corpus (default: movies)
  - CORPUS_ID_COLUMN, CORPUS_PLOT_COLUMN, CORPUS_GENERAL_COLUMN
  - DUCKDB_THREADS, DUCKDB_MAX_MEMORY
  - CORPUS_BREAKER_ENABLED, CORPUS_BREAKER_FAILURES, CORPUS_BREAKER_TIMEOUT

Recommendation:
  - RECOMMEND_WEIGHT_PLOT: plot weight in [0,1] (default: 0.7)
  - RECOMMEND_DEFAULT_N
  - RECOMMEND_MAX_N, RECOMMEND_MAX_SEEDS: optional caps (default: 0, no cap)
  - RECOMMEND_MIN_TOKEN_LENGTH, RECOMMEND_KEEP_STOP_WORDS
  - RECOMMEND_WORKERS, RECOMMEND_BLOCK_SIZE
  - RECOMMEND_REUSE_SNAPSHOT, RECOMMEND_BUILD_TIMEOUT
  - RECOMMEND_CACHE_ENABLED, RECOMMEND_CACHE_TTL, RECOMMEND_CACHE_MAX_ENTRIES

Refresh:
  - REFRESH_INTERVAL: corpus reload period, 0 disables (default: 0)
  - REFRESH_ON_STARTUP (default: true)

Ops server:
  - HTTP_HOST, HTTP_PORT, HTTP_READ_TIMEOUT, HTTP_WRITE_TIMEOUT, HTTP_SHUTDOWN_TIMEOUT

Logging:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER
*/
package config
