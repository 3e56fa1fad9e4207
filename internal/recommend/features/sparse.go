// FlickPicks - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flickpicks

package features

// SparseMatrix is a compressed sparse row matrix of term counts.
// Row i holds the counts of document i; column indices within a row are
// strictly ascending. A SparseMatrix is immutable once built.
type SparseMatrix struct {
	rows   int
	indptr []int // len rows+1
	cols   []int
	counts []int
	vocab  *Vocabulary
}

// Rows returns the number of documents.
func (m *SparseMatrix) Rows() int {
	return m.rows
}

// Cols returns the vocabulary size.
func (m *SparseMatrix) Cols() int {
	return m.vocab.Len()
}

// NNZ returns the number of stored non-zero counts.
func (m *SparseMatrix) NNZ() int {
	return len(m.counts)
}

// Row returns the column indices and counts of row i.
// The returned slices alias the matrix and must not be modified.
func (m *SparseMatrix) Row(i int) (cols, counts []int) {
	start, end := m.indptr[i], m.indptr[i+1]
	return m.cols[start:end], m.counts[start:end]
}

// Count returns the count stored at (row, col), zero when absent.
func (m *SparseMatrix) Count(row, col int) int {
	cols, counts := m.Row(row)
	lo, hi := 0, len(cols)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		switch {
		case cols[mid] == col:
			return counts[mid]
		case cols[mid] < col:
			lo = mid + 1
		default:
			hi = mid
		}
	}
	return 0
}

// Vocabulary returns the vocabulary the columns refer to.
func (m *SparseMatrix) Vocabulary() *Vocabulary {
	return m.vocab
}
