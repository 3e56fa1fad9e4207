// FlickPicks - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flickpicks

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths are searched in order when CONFIG_PATH is unset.
var DefaultConfigPaths = []string{
	"flickpicks.yaml",
	"flickpicks.yml",
	"/etc/flickpicks/config.yaml",
	"/etc/flickpicks/config.yml",
}

// ConfigPathEnvVar overrides the config file search.
const ConfigPathEnvVar = "CONFIG_PATH"

// EnvPrefix is the optional prefix accepted on every environment key.
const EnvPrefix = "FLICKPICKS_"

// Load reads defaults, the config file and the environment, then validates.
//
// Precedence: env > file > defaults.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path, err := findConfigFile(); err != nil {
		return nil, err
	} else if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the config file to load, or "" if none exists.
// An explicit CONFIG_PATH that does not exist is an error.
func findConfigFile() (string, error) {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err != nil {
			return "", fmt.Errorf("%s: %w", ConfigPathEnvVar, err)
		}
		return envPath, nil
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", nil
}

var envMappings = map[string]string{
	// Corpus
	"corpus_path":             "corpus.path",
	"corpus_format":           "corpus.format",
	"corpus_id_column":        "corpus.id_column",
	"corpus_plot_column":      "corpus.plot_column",
	"corpus_general_column":   "corpus.general_column",
	"corpus_table":            "corpus.table",
	"duckdb_threads":          "corpus.threads",
	"duckdb_max_memory":       "corpus.max_memory",
	"corpus_breaker_enabled":  "corpus.breaker.enabled",
	"corpus_breaker_requests": "corpus.breaker.max_requests",
	"corpus_breaker_interval": "corpus.breaker.interval",
	"corpus_breaker_timeout":  "corpus.breaker.timeout",
	"corpus_breaker_failures": "corpus.breaker.failure_threshold",

	// Recommendation
	"recommend_weight_plot":       "recommend.weight_plot",
	"recommend_default_n":         "recommend.default_n",
	"recommend_max_n":             "recommend.max_n",
	"recommend_max_seeds":         "recommend.max_seeds",
	"recommend_min_token_length":  "recommend.min_token_length",
	"recommend_keep_stop_words":   "recommend.keep_stop_words",
	"recommend_workers":           "recommend.workers",
	"recommend_block_size":        "recommend.block_size",
	"recommend_reuse_snapshot":    "recommend.reuse_snapshot",
	"recommend_build_timeout":     "recommend.build_timeout",
	"recommend_cache_enabled":     "recommend.cache_enabled",
	"recommend_cache_ttl":         "recommend.cache_ttl",
	"recommend_cache_max_entries": "recommend.cache_max_entries",

	// Refresh
	"refresh_interval":   "refresh.interval",
	"refresh_on_startup": "refresh.on_startup",
	"refresh_timeout":    "refresh.timeout",

	// Ops server
	"http_host":             "server.host",
	"http_port":             "server.port",
	"http_read_timeout":     "server.read_timeout",
	"http_write_timeout":    "server.write_timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc maps an environment variable name to a koanf path.
// Unknown names map to "" and are skipped.
//
//	CORPUS_PATH            -> corpus.path
//	FLICKPICKS_LOG_LEVEL   -> logging.level
func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	return envMappings[key]
}
