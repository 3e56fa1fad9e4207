// FlickPicks - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flickpicks

package corpus

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tomtom215/flickpicks/internal/recommend"
)

// Supported file formats.
const (
	FormatAuto    = "auto"
	FormatParquet = "parquet"
	FormatCSV     = "csv"
	FormatTSV     = "tsv"
	FormatJSON    = "json"
	FormatSQLite  = "sqlite"
)

// Source is a named, closable corpus source.
type Source interface {
	recommend.CorpusSource

	// Name identifies the source in logs and metrics.
	Name() string

	// Close releases resources held by the source.
	Close() error
}

// Columns names the corpus columns in tabular files.
type Columns struct {
	ID      string
	Plot    string
	General string
}

// DefaultColumns returns the column names written by the corpus build scripts.
func DefaultColumns() Columns {
	return Columns{ID: "id", Plot: "soup_plot", General: "soup_general"}
}

// Config selects and configures a source.
type Config struct {
	// Path is the corpus file.
	Path string

	// Format is one of auto, parquet, csv, tsv, json or sqlite.
	// Default: auto (derived from the file extension)
	Format string

	// Columns overrides the tabular column names.
	Columns Columns

	// Table is the SQLite table holding the corpus.
	// Default: movies
	Table string

	// Threads is the DuckDB worker thread count. Zero lets DuckDB decide.
	Threads int

	// MaxMemory is the DuckDB memory limit, e.g. "1GB". Empty lets DuckDB decide.
	MaxMemory string

	// Breaker wraps the source in a circuit breaker when enabled.
	Breaker BreakerConfig
}

// Open builds the source described by cfg.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func Open(cfg Config, logger zerolog.Logger) (Source, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("corpus path is required")
	}

	format, err := ResolveFormat(cfg.Path, cfg.Format)
	if err != nil {
		return nil, err
	}

	if cfg.Columns == (Columns{}) {
		cfg.Columns = DefaultColumns()
	}

	var src Source
	switch format {
	case FormatJSON:
		src = NewJSONSource(cfg.Path)
	case FormatSQLite:
		src, err = NewSQLiteSource(SQLiteConfig{
			Path:    cfg.Path,
			Table:   cfg.Table,
			Columns: cfg.Columns,
		})
		if err != nil {
			return nil, err
		}
	default:
		src, err = NewDuckDBSource(DuckDBConfig{
			Path:      cfg.Path,
			Format:    format,
			Columns:   cfg.Columns,
			Threads:   cfg.Threads,
			MaxMemory: cfg.MaxMemory,
		})
		if err != nil {
			return nil, err
		}
	}

	logger.Info().
		Str("source", src.Name()).
		Str("path", cfg.Path).
		Str("format", format).
		Bool("circuit_breaker", cfg.Breaker.Enabled).
		Msg("corpus source opened")

	if cfg.Breaker.Enabled {
		return NewBreakerSource(src, cfg.Breaker, logger), nil
	}
	return src, nil
}

// ResolveFormat returns the concrete format for path. An empty or auto
// format is derived from the extension.
func ResolveFormat(path, format string) (string, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format != "" && format != FormatAuto {
		switch format {
		case FormatParquet, FormatCSV, FormatTSV, FormatJSON, FormatSQLite:
			return format, nil
		default:
			return "", fmt.Errorf("unsupported corpus format %q", format)
		}
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".parquet", ".pq":
		return FormatParquet, nil
	case ".csv":
		return FormatCSV, nil
	case ".tsv", ".tab":
		return FormatTSV, nil
	case ".json", ".jsonl", ".ndjson":
		return FormatJSON, nil
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite, nil
	default:
		return "", fmt.Errorf("cannot infer corpus format from extension %q", ext)
	}
}
