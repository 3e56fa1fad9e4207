// FlickPicks - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flickpicks

package recommend

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/flickpicks/internal/recommend/features"
	"github.com/tomtom215/flickpicks/internal/recommend/similarity"
)

// Snapshot bundles a corpus with one similarity matrix per signal.
// It is immutable and safe to share between goroutines.
type Snapshot struct {
	corpus   *Corpus
	matrices map[Signal]*similarity.Matrix
	stats    SnapshotStats
}

// SnapshotStats describes a snapshot build.
type SnapshotStats struct {
	// CorpusVersion is the fingerprint of the corpus.
	CorpusVersion string `json:"corpus_version"`

	// CorpusSize is the number of movies.
	CorpusSize int `json:"corpus_size"`

	// VocabularySizes is the number of distinct terms per signal.
	VocabularySizes map[Signal]int `json:"vocabulary_sizes"`

	// BuiltAt is when the build finished.
	BuiltAt time.Time `json:"built_at"`

	// Duration is how long the build took.
	Duration time.Duration `json:"duration"`
}

// Corpus returns the corpus the snapshot was built from.
func (s *Snapshot) Corpus() *Corpus {
	return s.corpus
}

// Matrix returns the similarity matrix of signal, nil if it was not built.
func (s *Snapshot) Matrix(signal Signal) *similarity.Matrix {
	return s.matrices[signal]
}

// Stats returns build statistics.
func (s *Snapshot) Stats() SnapshotStats {
	return s.stats
}

// Version returns the corpus version.
func (s *Snapshot) Version() string {
	return s.corpus.Version()
}

// BuildSnapshot vectorizes every signal of corpus and computes its cosine
// similarity matrix. Signals are built concurrently.
func BuildSnapshot(ctx context.Context, corpus *Corpus, analyzer *features.Analyzer, opts similarity.Options) (*Snapshot, error) {
	if corpus.Len() == 0 {
		return nil, &EmptyCorpusError{}
	}

	start := time.Now()

	var mu sync.Mutex
	matrices := make(map[Signal]*similarity.Matrix, len(Signals))
	vocabSizes := make(map[Signal]int, len(Signals))

	g, gctx := errgroup.WithContext(ctx)
	for _, signal := range Signals {
		g.Go(func() error {
			vectors, err := features.NewCountVectorizer(analyzer).FitTransform(gctx, corpus.Documents(signal))
			if err != nil {
				return fmt.Errorf("vectorize %s: %w", signal, err)
			}

			m, err := similarity.Cosine(gctx, vectors, opts)
			if err != nil {
				return fmt.Errorf("similarity %s: %w", signal, err)
			}

			mu.Lock()
			matrices[signal] = m
			vocabSizes[signal] = vectors.Cols()
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Snapshot{
		corpus:   corpus,
		matrices: matrices,
		stats: SnapshotStats{
			CorpusVersion:   corpus.Version(),
			CorpusSize:      corpus.Len(),
			VocabularySizes: vocabSizes,
			BuiltAt:         time.Now(),
			Duration:        time.Since(start),
		},
	}, nil
}
