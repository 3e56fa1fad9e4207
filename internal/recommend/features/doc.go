// FlickPicks - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flickpicks

// Package features turns movie text soups into term-count vectors.
//
// Each text field is vectorized independently. Documents are analyzed with a
// bleve analysis chain (unicode word segmentation, lowercasing, English stop
// word removal), tokens shorter than a minimum rune length are dropped, and the
// surviving terms form a vocabulary sorted lexicographically. The sorted
// vocabulary makes column assignment a pure function of the document set, so
// the same corpus always produces the same matrix.
//
// # Usage
//
//	analyzer, err := features.NewAnalyzer(features.AnalyzerConfig{})
//	if err != nil {
//	    return err
//	}
//	vectors, err := features.NewCountVectorizer(analyzer).FitTransform(ctx, docs)
//
// Documents that contain only stop words (or nothing at all) become all-zero
// rows. That is not an error.
package features
