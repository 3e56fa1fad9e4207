// FlickPicks - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flickpicks

package corpus

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/flickpicks/internal/metrics"
	"github.com/tomtom215/flickpicks/internal/recommend"
)

// JSONSource reads a corpus from a JSON array of records or a stream of
// newline-delimited records.
type JSONSource struct {
	path string
}

// NewJSONSource creates a source for path.
func NewJSONSource(path string) *JSONSource {
	return &JSONSource{path: path}
}

// Name implements Source.
func (s *JSONSource) Name() string {
	return "json"
}

// Load implements recommend.CorpusSource.
func (s *JSONSource) Load(ctx context.Context) (records []recommend.MovieRecord, err error) {
	start := time.Now()
	defer func() { metrics.RecordCorpusLoad(s.Name(), time.Since(start), err) }()

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open corpus: %w", err)
	}
	defer func() { _ = f.Close() }()

	return decodeRecords(ctx, f)
}

// Close implements Source.
func (s *JSONSource) Close() error {
	return nil
}

// decodeRecords accepts either a top-level array or concatenated objects.
func decodeRecords(ctx context.Context, r io.Reader) ([]recommend.MovieRecord, error) {
	br := bufio.NewReader(r)

	first, err := peekNonSpace(br)
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read corpus: %w", err)
	}

	dec := json.NewDecoder(br)

	if first == '[' {
		var records []recommend.MovieRecord
		if err := dec.DecodeContext(ctx, &records); err != nil {
			return nil, fmt.Errorf("decode corpus array: %w", err)
		}
		return records, nil
	}

	var records []recommend.MovieRecord
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var rec recommend.MovieRecord
		err := dec.Decode(&rec)
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return nil, fmt.Errorf("decode corpus record %d: %w", len(records), err)
		}
		records = append(records, rec)
	}
}

func peekNonSpace(br *bufio.Reader) (byte, error) {
	for {
		b, err := br.ReadByte()
		if err != nil {
			return 0, err
		}
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		}
		if err := br.UnreadByte(); err != nil {
			return 0, err
		}
		return b, nil
	}
}
