// FlickPicks - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flickpicks

package features

import "sort"

// Vocabulary maps terms to matrix columns.
// Columns follow the lexicographic order of the terms.
type Vocabulary struct {
	terms   []string
	columns map[string]int
}

// newVocabulary builds a vocabulary from an unordered term set.
func newVocabulary(set map[string]struct{}) *Vocabulary {
	terms := make([]string, 0, len(set))
	for term := range set {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	columns := make(map[string]int, len(terms))
	for i, term := range terms {
		columns[term] = i
	}

	return &Vocabulary{terms: terms, columns: columns}
}

// Len returns the number of terms.
func (v *Vocabulary) Len() int {
	return len(v.terms)
}

// Column returns the column of term and whether it is known.
func (v *Vocabulary) Column(term string) (int, bool) {
	col, ok := v.columns[term]
	return col, ok
}

// Term returns the term stored at column col.
func (v *Vocabulary) Term(col int) string {
	return v.terms[col]
}

// Terms returns a copy of the ordered term list.
func (v *Vocabulary) Terms() []string {
	out := make([]string, len(v.terms))
	copy(out, v.terms)
	return out
}
