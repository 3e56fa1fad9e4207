// FlickPicks - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flickpicks

package corpus

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver (pure Go, no CGO)

	"github.com/tomtom215/flickpicks/internal/metrics"
	"github.com/tomtom215/flickpicks/internal/recommend"
)

// DefaultTable is the SQLite table read when none is configured.
const DefaultTable = "movies"

// SQLiteConfig configures a SQLiteSource.
type SQLiteConfig struct {
	Path    string
	Table   string
	Columns Columns
}

// SQLiteSource reads the corpus from a table of a SQLite database, such as
// the one a web front end keeps its movie catalogue in. Rows are returned in
// rowid order.
type SQLiteSource struct {
	db    *sql.DB
	cfg   SQLiteConfig
	query string
}

// NewSQLiteSource opens cfg.Path read-only. The database must exist.
func NewSQLiteSource(cfg SQLiteConfig) (*SQLiteSource, error) {
	if cfg.Table == "" {
		cfg.Table = DefaultTable
	}
	if cfg.Columns == (Columns{}) {
		cfg.Columns = DefaultColumns()
	}

	// sql.Open would create a missing database file.
	if _, err := os.Stat(cfg.Path); err != nil {
		return nil, fmt.Errorf("sqlite corpus: %w", err)
	}

	db, err := sql.Open("sqlite", cfg.Path+"?_pragma=query_only(1)")
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	query := fmt.Sprintf(
		"SELECT %s, COALESCE(CAST(%s AS TEXT), ''), COALESCE(CAST(%s AS TEXT), '') FROM %s",
		quoteIdent(cfg.Columns.ID),
		quoteIdent(cfg.Columns.Plot),
		quoteIdent(cfg.Columns.General),
		quoteIdent(cfg.Table),
	)

	return &SQLiteSource{db: db, cfg: cfg, query: query}, nil
}

// Name implements Source.
func (s *SQLiteSource) Name() string {
	return FormatSQLite
}

// Load implements recommend.CorpusSource.
func (s *SQLiteSource) Load(ctx context.Context) (records []recommend.MovieRecord, err error) {
	start := time.Now()
	defer func() { metrics.RecordCorpusLoad(s.Name(), time.Since(start), err) }()

	rows, err := s.db.QueryContext(ctx, s.query)
	if err != nil {
		return nil, fmt.Errorf("query corpus table %s: %w", s.cfg.Table, err)
	}
	defer func() { _ = rows.Close() }()

	for row := 0; rows.Next(); row++ {
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
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read corpus table %s: %w", s.cfg.Table, err)
	}

	return records, nil
}

// Close implements Source.
func (s *SQLiteSource) Close() error {
	return s.db.Close()
}
