// FlickPicks - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flickpicks

package config

import (
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/flickpicks/internal/recommend"
)

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Recommend.WeightPlot != 0.7 {
		t.Errorf("Recommend.WeightPlot = %v, want 0.7", cfg.Recommend.WeightPlot)
	}
	if cfg.Recommend.DefaultN != 10 {
		t.Errorf("Recommend.DefaultN = %d, want 10", cfg.Recommend.DefaultN)
	}
	if !cfg.Recommend.ReuseSnapshot {
		t.Error("Recommend.ReuseSnapshot should default to true")
	}
	if cfg.Corpus.Format != "auto" {
		t.Errorf("Corpus.Format = %q, want auto", cfg.Corpus.Format)
	}
	if cfg.Corpus.IDColumn != "id" || cfg.Corpus.PlotColumn != "soup_plot" || cfg.Corpus.GeneralColumn != "soup_general" {
		t.Errorf("unexpected default columns: %+v", cfg.Corpus)
	}
	if cfg.Corpus.Breaker.Enabled {
		t.Error("Corpus.Breaker.Enabled should default to false")
	}
	if cfg.Refresh.Interval != 0 || !cfg.Refresh.OnStartup {
		t.Errorf("unexpected refresh defaults: %+v", cfg.Refresh)
	}
	if cfg.Server.Port != 9477 {
		t.Errorf("Server.Port = %d, want 9477", cfg.Server.Port)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("unexpected logging defaults: %+v", cfg.Logging)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"weight above one", func(c *Config) { c.Recommend.WeightPlot = 1.2 }, "recommend.weight_plot"},
		{"weight negative", func(c *Config) { c.Recommend.WeightPlot = -0.1 }, "recommend.weight_plot"},
		{"zero default n", func(c *Config) { c.Recommend.DefaultN = 0 }, "recommend.default_n"},
		{"max n below default", func(c *Config) { c.Recommend.MaxN = 5 }, "limits.max_n"},
		{"negative max seeds", func(c *Config) { c.Recommend.MaxSeeds = -1 }, "recommend.max_seeds"},
		{"zero block size", func(c *Config) { c.Recommend.BlockSize = 0 }, "recommend.block_size"},
		{"zero build timeout", func(c *Config) { c.Recommend.BuildTimeout = 0 }, "recommend.build_timeout"},
		{"cache enabled without ttl", func(c *Config) { c.Recommend.CacheTTL = 0 }, "cache.ttl"},
		{"empty corpus path", func(c *Config) { c.Corpus.Path = "" }, "corpus.path"},
		{"bad corpus format", func(c *Config) { c.Corpus.Format = "xml" }, "corpus.format"},
		{"empty corpus table", func(c *Config) { c.Corpus.Table = "" }, "corpus.table"},
		{"uninferable extension", func(c *Config) { c.Corpus.Path = "/data/movies.dat" }, "corpus.format"},
		{"empty id column", func(c *Config) { c.Corpus.IDColumn = "" }, "corpus.id_column"},
		{"breaker zero threshold", func(c *Config) { c.Corpus.Breaker.FailureThreshold = 0 }, "corpus.breaker.failure_threshold"},
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"refresh too frequent", func(c *Config) { c.Refresh.Interval = time.Millisecond }, "refresh.interval"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestValidate_CacheDisabledAllowsZeroTTL(t *testing.T) {
	cfg := defaultConfig()
	cfg.Recommend.CacheEnabled = false
	cfg.Recommend.CacheTTL = 0
	cfg.Recommend.CacheMaxEntries = 0

	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestRecommendEngineConfig(t *testing.T) {
	cfg := defaultConfig()
	cfg.Recommend.WeightPlot = 1.0
	cfg.Recommend.DefaultN = 5
	cfg.Recommend.Workers = 3
	cfg.Recommend.ReuseSnapshot = false

	rc := cfg.RecommendEngineConfig()

	if got := rc.Blend.Weight(recommend.SignalPlot); got != 1.0 {
		t.Errorf("plot weight = %v, want 1.0", got)
	}
	if got := rc.Blend.Weight(recommend.SignalGeneral); got != 0 {
		t.Errorf("general weight = %v, want 0", got)
	}
	if rc.Limits.DefaultN != 5 {
		t.Errorf("Limits.DefaultN = %d, want 5", rc.Limits.DefaultN)
	}
	if rc.Similarity.Workers != 3 {
		t.Errorf("Similarity.Workers = %d, want 3", rc.Similarity.Workers)
	}
	if rc.Snapshot.Reuse {
		t.Error("Snapshot.Reuse should be false")
	}
	if err := rc.Validate(); err != nil {
		t.Errorf("engine config should validate, got %v", err)
	}
}

func TestCorpusSourceConfig(t *testing.T) {
	cfg := defaultConfig()
	cfg.Corpus.Path = "/tmp/movies.csv"
	cfg.Corpus.IDColumn = "movie_id"
	cfg.Corpus.Threads = 2
	cfg.Corpus.Breaker.Enabled = true

	cc := cfg.CorpusSourceConfig()

	if cc.Path != "/tmp/movies.csv" || cc.Threads != 2 {
		t.Errorf("unexpected corpus config: %+v", cc)
	}
	if cc.Columns.ID != "movie_id" || cc.Columns.Plot != "soup_plot" {
		t.Errorf("unexpected columns: %+v", cc.Columns)
	}
	if !cc.Breaker.Enabled || cc.Breaker.FailureThreshold != 3 {
		t.Errorf("unexpected breaker: %+v", cc.Breaker)
	}
}

func TestServerAddr(t *testing.T) {
	s := ServerConfig{Host: "127.0.0.1", Port: 9477}
	if got := s.Addr(); got != "127.0.0.1:9477" {
		t.Errorf("Addr() = %q", got)
	}
}

func TestLoggingSetup(t *testing.T) {
	cfg := defaultConfig()
	cfg.Logging.Level = "debug"
	cfg.Logging.Format = "console"

	lc := cfg.LoggingSetup()
	if lc.Level != "debug" || lc.Format != "console" || !lc.Timestamp || lc.Output == nil {
		t.Errorf("unexpected logging config: %+v", lc)
	}
}
