// FlickPicks - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flickpicks

// Package recommend implements content-based movie recommendations.
//
// # Architecture
//
// Every movie carries two text soups: a plot soup and a general soup made of
// genres, cast and directors. Each soup is turned into term-count vectors
// (package features) and compared pairwise with cosine similarity (package
// similarity), giving one matrix per signal. A request then:
//
//  1. blends the signal matrices with per-signal weights (plot 0.7 and
//     general 0.3 by default),
//  2. averages the blended rows of the seed movies column-wise,
//  3. sorts movies by descending score, ties by ascending corpus row,
//  4. removes ignored movies (the seeds, unless told otherwise),
//  5. keeps the first N (10 by default).
//
// # Snapshots
//
// A Snapshot bundles a Corpus with its similarity matrices. Building one is
// the expensive part; ranking against it is cheap. The Engine keeps the
// current snapshot and swaps it whole when Refresh sees a new corpus
// version, so concurrent requests always see a consistent set of matrices.
// Invalidate drops it explicitly. With Config.Snapshot.Reuse disabled the
// engine rebuilds for every request instead.
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), logger)
//	if err != nil {
//	    return err
//	}
//	engine.SetSource(source)
//
//	resp, err := engine.Recommend(ctx, recommend.Request{
//	    SeedIDs: []int{603, 1891},
//	    N:       20,
//	})
//
// Rank is the pure core and can be used directly with a Snapshot built by
// BuildSnapshot.
//
// # Errors
//
// Request problems are reported with typed errors that match sentinels via
// errors.Is: InvalidSeedError (ErrInvalidSeed), InvalidIgnoreError
// (ErrInvalidIgnore), ConfigurationError (ErrConfiguration) and
// EmptyCorpusError (ErrEmptyCorpus). Nothing is swallowed; an empty result is
// only returned when every movie is ignored.
//
// # Thread Safety
//
// The engine is safe for concurrent use. Snapshot builds are serialized;
// requests read the current snapshot under a shared lock.
package recommend
