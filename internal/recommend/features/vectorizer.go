// FlickPicks - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flickpicks

package features

import (
	"context"
	"sort"
)

// cancelCheckInterval is how many documents are analyzed between context checks.
const cancelCheckInterval = 256

// CountVectorizer builds term-count vectors over a vocabulary learned from the
// documents it is given.
type CountVectorizer struct {
	analyzer *Analyzer
}

// NewCountVectorizer creates a vectorizer that tokenizes with analyzer.
func NewCountVectorizer(analyzer *Analyzer) *CountVectorizer {
	return &CountVectorizer{analyzer: analyzer}
}

// FitTransform learns the vocabulary of docs and returns one count row per
// document, in input order.
func (v *CountVectorizer) FitTransform(ctx context.Context, docs []string) (*SparseMatrix, error) {
	tokenized := make([][]string, len(docs))
	set := make(map[string]struct{})

	for i, doc := range docs {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		terms := v.analyzer.Tokens(doc)
		tokenized[i] = terms
		for _, term := range terms {
			set[term] = struct{}{}
		}
	}

	vocab := newVocabulary(set)

	m := &SparseMatrix{
		rows:   len(docs),
		indptr: make([]int, len(docs)+1),
		vocab:  vocab,
	}

	for i, terms := range tokenized {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		m.appendRow(terms)
		m.indptr[i+1] = len(m.counts)
	}

	return m, nil
}

// appendRow counts terms and appends them as a row with ascending columns.
func (m *SparseMatrix) appendRow(terms []string) {
	if len(terms) == 0 {
		return
	}

	counts := make(map[int]int, len(terms))
	for _, term := range terms {
		col, _ := m.vocab.Column(term)
		counts[col]++
	}

	cols := make([]int, 0, len(counts))
	for col := range counts {
		cols = append(cols, col)
	}
	sort.Ints(cols)

	for _, col := range cols {
		m.cols = append(m.cols, col)
		m.counts = append(m.counts, counts[col])
	}
}
