// FlickPicks - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flickpicks

package config

import (
	"net"
	"strconv"
	"time"

	"github.com/tomtom215/flickpicks/internal/corpus"
	"github.com/tomtom215/flickpicks/internal/logging"
	"github.com/tomtom215/flickpicks/internal/recommend"
)

// Config is the complete application configuration.
type Config struct {
	Recommend RecommendConfig `koanf:"recommend"`
	Corpus    CorpusConfig    `koanf:"corpus"`
	Refresh   RefreshConfig   `koanf:"refresh"`
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// RecommendConfig holds ranking and snapshot settings.
type RecommendConfig struct {
	WeightPlot      float64       `koanf:"weight_plot" validate:"gte=0,lte=1"`
	DefaultN        int           `koanf:"default_n" validate:"min=1"`
	MaxN            int           `koanf:"max_n" validate:"min=0"`
	MaxSeeds        int           `koanf:"max_seeds" validate:"min=0"`
	MinTokenLength  int           `koanf:"min_token_length" validate:"min=1"`
	KeepStopWords   bool          `koanf:"keep_stop_words"`
	Workers         int           `koanf:"workers" validate:"min=0"`
	BlockSize       int           `koanf:"block_size" validate:"min=1"`
	ReuseSnapshot   bool          `koanf:"reuse_snapshot"`
	BuildTimeout    time.Duration `koanf:"build_timeout" validate:"gt=0"`
	CacheEnabled    bool          `koanf:"cache_enabled"`
	CacheTTL        time.Duration `koanf:"cache_ttl" validate:"gte=0"`
	CacheMaxEntries int           `koanf:"cache_max_entries" validate:"min=0"`
}

// CorpusConfig selects the corpus file.
type CorpusConfig struct {
	Path          string        `koanf:"path" validate:"required"`
	Format        string        `koanf:"format" validate:"oneof=auto parquet csv tsv json sqlite"`
	IDColumn      string        `koanf:"id_column" validate:"required"`
	PlotColumn    string        `koanf:"plot_column" validate:"required"`
	GeneralColumn string        `koanf:"general_column" validate:"required"`
	Table         string        `koanf:"table" validate:"required"`
	Threads       int           `koanf:"threads" validate:"min=0"`
	MaxMemory     string        `koanf:"max_memory"`
	Breaker       BreakerConfig `koanf:"breaker"`
}

// BreakerConfig guards corpus loads with a circuit breaker.
type BreakerConfig struct {
	Enabled          bool          `koanf:"enabled"`
	MaxRequests      uint32        `koanf:"max_requests" validate:"min=1"`
	Interval         time.Duration `koanf:"interval" validate:"gte=0"`
	Timeout          time.Duration `koanf:"timeout" validate:"gt=0"`
	FailureThreshold uint32        `koanf:"failure_threshold" validate:"min=1"`
}

// RefreshConfig controls periodic corpus reloads in serve mode.
type RefreshConfig struct {
	// Interval between reloads. Zero disables periodic refresh.
	Interval  time.Duration `koanf:"interval" validate:"gte=0"`
	OnStartup bool          `koanf:"on_startup"`
	Timeout   time.Duration `koanf:"timeout" validate:"gt=0"`
}

// ServerConfig is the ops HTTP server.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `koanf:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `koanf:"write_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
}

// Addr returns host:port.
func (s *ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// LoggingConfig mirrors logging.Config.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn warning error fatal panic disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

func defaultConfig() *Config {
	rc := recommend.DefaultConfig()
	bc := corpus.DefaultBreakerConfig()
	cols := corpus.DefaultColumns()

	return &Config{
		Recommend: RecommendConfig{
			WeightPlot:      recommend.DefaultPlotWeight,
			DefaultN:        rc.Limits.DefaultN,
			MaxN:            rc.Limits.MaxN,
			MaxSeeds:        rc.Limits.MaxSeeds,
			MinTokenLength:  rc.Vectorizer.MinTokenLength,
			KeepStopWords:   rc.Vectorizer.KeepStopWords,
			Workers:         rc.Similarity.Workers,
			BlockSize:       rc.Similarity.BlockSize,
			ReuseSnapshot:   rc.Snapshot.Reuse,
			BuildTimeout:    rc.Snapshot.BuildTimeout,
			CacheEnabled:    rc.Cache.Enabled,
			CacheTTL:        rc.Cache.TTL,
			CacheMaxEntries: rc.Cache.MaxEntries,
		},
		Corpus: CorpusConfig{
			Path:          "/data/movies.parquet",
			Format:        corpus.FormatAuto,
			IDColumn:      cols.ID,
			PlotColumn:    cols.Plot,
			GeneralColumn: cols.General,
			Table:         corpus.DefaultTable,
			Threads:       0,
			MaxMemory:     "",
			Breaker: BreakerConfig{
				Enabled:          bc.Enabled,
				MaxRequests:      bc.MaxRequests,
				Interval:         bc.Interval,
				Timeout:          bc.Timeout,
				FailureThreshold: bc.FailureThreshold,
			},
		},
		Refresh: RefreshConfig{
			Interval:  0,
			OnStartup: true,
			Timeout:   rc.Snapshot.BuildTimeout,
		},
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            9477,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 15 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// RecommendEngineConfig builds the engine configuration.
func (c *Config) RecommendEngineConfig() *recommend.Config {
	r := &c.Recommend
	rc := recommend.DefaultConfig()
	rc.Blend = recommend.PlotBlend(r.WeightPlot)
	rc.Vectorizer = recommend.VectorizerConfig{
		MinTokenLength: r.MinTokenLength,
		KeepStopWords:  r.KeepStopWords,
	}
	rc.Similarity = recommend.SimilarityConfig{
		Workers:   r.Workers,
		BlockSize: r.BlockSize,
	}
	rc.Snapshot = recommend.SnapshotConfig{
		Reuse:        r.ReuseSnapshot,
		BuildTimeout: r.BuildTimeout,
	}
	rc.Limits = recommend.LimitsConfig{
		DefaultN: r.DefaultN,
		MaxN:     r.MaxN,
		MaxSeeds: r.MaxSeeds,
	}
	rc.Cache = recommend.CacheConfig{
		Enabled:    r.CacheEnabled,
		TTL:        r.CacheTTL,
		MaxEntries: r.CacheMaxEntries,
	}
	return rc
}

// CorpusSourceConfig builds the corpus source configuration.
func (c *Config) CorpusSourceConfig() corpus.Config {
	cc := &c.Corpus
	return corpus.Config{
		Path:   cc.Path,
		Format: cc.Format,
		Columns: corpus.Columns{
			ID:      cc.IDColumn,
			Plot:    cc.PlotColumn,
			General: cc.GeneralColumn,
		},
		Table:     cc.Table,
		Threads:   cc.Threads,
		MaxMemory: cc.MaxMemory,
		Breaker: corpus.BreakerConfig{
			Enabled:          cc.Breaker.Enabled,
			MaxRequests:      cc.Breaker.MaxRequests,
			Interval:         cc.Breaker.Interval,
			Timeout:          cc.Breaker.Timeout,
			FailureThreshold: cc.Breaker.FailureThreshold,
		},
	}
}

// LoggingSetup builds the logging configuration.
func (c *Config) LoggingSetup() logging.Config {
	lc := logging.DefaultConfig()
	lc.Level = c.Logging.Level
	lc.Format = c.Logging.Format
	lc.Caller = c.Logging.Caller
	return lc
}
