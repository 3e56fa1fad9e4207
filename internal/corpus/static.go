// FlickPicks - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flickpicks

package corpus

import (
	"context"

	"github.com/tomtom215/flickpicks/internal/recommend"
)

// StaticSource serves a fixed set of records. Used for embedding and tests.
type StaticSource struct {
	records []recommend.MovieRecord
}

// NewStaticSource copies records into a new source.
func NewStaticSource(records []recommend.MovieRecord) *StaticSource {
	return &StaticSource{records: append([]recommend.MovieRecord(nil), records...)}
}

func (s *StaticSource) Name() string { return "static" }

func (s *StaticSource) Load(ctx context.Context) ([]recommend.MovieRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]recommend.MovieRecord(nil), s.records...), nil
}

func (s *StaticSource) Close() error { return nil }
