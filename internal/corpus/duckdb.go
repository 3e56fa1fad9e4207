// FlickPicks - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flickpicks

package corpus

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/duckdb/duckdb-go/v2" // registers the "duckdb" driver

	"github.com/tomtom215/flickpicks/internal/metrics"
	"github.com/tomtom215/flickpicks/internal/recommend"
)

// DuckDBConfig configures a DuckDBSource.
type DuckDBConfig struct {
	Path      string
	Format    string // parquet, csv or tsv
	Columns   Columns
	Threads   int
	MaxMemory string
}

// DuckDBSource reads a tabular corpus file with DuckDB.
type DuckDBSource struct {
	conn  *sql.DB
	cfg   DuckDBConfig
	query string
}

// NewDuckDBSource opens an in-memory DuckDB connection for cfg.Path.
// The file itself is read on every Load.
func NewDuckDBSource(cfg DuckDBConfig) (*DuckDBSource, error) {
	if cfg.Columns == (Columns{}) {
		cfg.Columns = DefaultColumns()
	}

	query, err := buildQuery(cfg)
	if err != nil {
		return nil, err
	}

	// preserve_insertion_order keeps file order, which is the corpus row order.
	params := []string{"preserve_insertion_order=true"}
	if cfg.Threads > 0 {
		params = append(params, "threads="+strconv.Itoa(cfg.Threads))
	}
	if cfg.MaxMemory != "" {
		params = append(params, "max_memory="+cfg.MaxMemory)
	}

	conn, err := sql.Open("duckdb", ":memory:?"+strings.Join(params, "&"))
	if err != nil {
		return nil, fmt.Errorf("failed to open duckdb: %w", err)
	}
	// A single connection keeps the in-memory database and its settings shared.
	conn.SetMaxOpenConns(1)

	return &DuckDBSource{conn: conn, cfg: cfg, query: query}, nil
}

// Name implements Source.
func (s *DuckDBSource) Name() string {
	return "duckdb_" + s.cfg.Format
}

// Load implements recommend.CorpusSource.
func (s *DuckDBSource) Load(ctx context.Context) (records []recommend.MovieRecord, err error) {
	start := time.Now()
	defer func() { metrics.RecordCorpusLoad(s.Name(), time.Since(start), err) }()

	rows, err := s.conn.QueryContext(ctx, s.query)
	if err != nil {
		return nil, fmt.Errorf("query corpus %s: %w", s.cfg.Path, err)
	}
	defer func() { _ = rows.Close() }()

	row := 0
	for rows.Next() {
		var (
			id            sql.NullInt64
			plot, general string
		)
		if err := rows.Scan(&id, &plot, &general); err != nil {
			return nil, fmt.Errorf("scan corpus row %d: %w", row, err)
		}
		if !id.Valid {
			return nil, fmt.Errorf("corpus row %d: %s is NULL", row, s.cfg.Columns.ID)
		}
		records = append(records, recommend.MovieRecord{
			ID:          int(id.Int64),
			SoupPlot:    plot,
			SoupGeneral: general,
		})
		row++
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read corpus %s: %w", s.cfg.Path, err)
	}

	return records, nil
}

// Close implements Source.
func (s *DuckDBSource) Close() error {
	return s.conn.Close()
}

// buildQuery renders the SELECT for cfg. Paths and identifiers are quoted,
// never interpolated raw.
func buildQuery(cfg DuckDBConfig) (string, error) {
	path := quoteLiteral(cfg.Path)

	var from string
	switch cfg.Format {
	case FormatParquet:
		from = "read_parquet(" + path + ")"
	case FormatCSV:
		from = "read_csv_auto(" + path + ", header = true)"
	case FormatTSV:
		from = "read_csv_auto(" + path + ", header = true, delim = '\t', nullstr = '\\N')"
	default:
		return "", fmt.Errorf("duckdb source does not read format %q", cfg.Format)
	}

	return fmt.Sprintf(
		"SELECT CAST(%s AS BIGINT), COALESCE(CAST(%s AS VARCHAR), ''), COALESCE(CAST(%s AS VARCHAR), '') FROM %s",
		quoteIdent(cfg.Columns.ID),
		quoteIdent(cfg.Columns.Plot),
		quoteIdent(cfg.Columns.General),
		from,
	), nil
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
