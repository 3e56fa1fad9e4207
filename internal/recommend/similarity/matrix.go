// FlickPicks - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flickpicks

// Package similarity computes pairwise cosine similarity between count vectors.
//
// Matrices are dense, square and symmetric, stored row-major in a single
// slice. Every entry is in [0, 1]. Rows that are entirely zero (documents
// with no surviving terms) are similar to nothing, themselves included.
package similarity

// Matrix is a dense symmetric similarity matrix.
// It is immutable once returned by Cosine and safe for concurrent reads.
type Matrix struct {
	n    int
	data []float64
}

// newMatrix allocates an n x n zero matrix.
func newMatrix(n int) *Matrix {
	return &Matrix{n: n, data: make([]float64, n*n)}
}

// Size returns the dimension of the matrix.
func (m *Matrix) Size() int {
	return m.n
}

// At returns the similarity between rows i and j.
func (m *Matrix) At(i, j int) float64 {
	return m.data[i*m.n+j]
}

// Row returns row i. The slice aliases the matrix and must not be modified.
func (m *Matrix) Row(i int) []float64 {
	return m.data[i*m.n : (i+1)*m.n]
}

// set stores v at (i, j) and (j, i).
func (m *Matrix) set(i, j int, v float64) {
	m.data[i*m.n+j] = v
	m.data[j*m.n+i] = v
}
