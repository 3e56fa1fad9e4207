// FlickPicks - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flickpicks

package similarity

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/flickpicks/internal/recommend/features"
)

// DefaultBlockSize is the number of rows handed to a worker at a time.
const DefaultBlockSize = 64

// Options controls parallelism of Cosine.
type Options struct {
	// Workers is the maximum number of concurrent row blocks.
	// Default: runtime.GOMAXPROCS(0)
	Workers int

	// BlockSize is the number of rows per block.
	// Default: DefaultBlockSize
	BlockSize int
}

// posting is one non-zero entry of a column.
type posting struct {
	row   int
	count int64
}

// Cosine returns the pairwise cosine similarity of the rows of vectors.
//
// Dot products are accumulated as exact integers, so each entry depends only
// on the two rows involved and the result is identical for any worker count.
func Cosine(ctx context.Context, vectors *features.SparseMatrix, opts Options) (*Matrix, error) {
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	if opts.BlockSize <= 0 {
		opts.BlockSize = DefaultBlockSize
	}

	n := vectors.Rows()
	m := newMatrix(n)
	if n == 0 {
		return m, nil
	}

	norms := rowNorms(vectors)
	postings := columnPostings(vectors)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)

	for start := 0; start < n; start += opts.BlockSize {
		end := min(start+opts.BlockSize, n)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fillBlock(m, vectors, postings, norms, start, end)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("cosine similarity: %w", err)
	}
	return m, nil
}

// fillBlock computes the upper triangle of rows [start, end) and mirrors it.
// Entries (i, j) and (j, i) with i in the block are written only by this block.
func fillBlock(m *Matrix, vectors *features.SparseMatrix, postings [][]posting, norms []float64, start, end int) {
	dots := make([]int64, m.n)
	touched := make([]int, 0, 64)

	for i := start; i < end; i++ {
		if norms[i] == 0 {
			continue
		}
		m.data[i*m.n+i] = 1

		cols, counts := vectors.Row(i)
		for k, col := range cols {
			ci := int64(counts[k])
			for _, p := range postings[col] {
				if p.row <= i {
					continue
				}
				if dots[p.row] == 0 {
					touched = append(touched, p.row)
				}
				dots[p.row] += ci * p.count
			}
		}

		for _, j := range touched {
			v := float64(dots[j]) / (norms[i] * norms[j])
			m.set(i, j, clamp01(v))
			dots[j] = 0
		}
		touched = touched[:0]
	}
}

// rowNorms returns the Euclidean norm of every row.
func rowNorms(vectors *features.SparseMatrix) []float64 {
	norms := make([]float64, vectors.Rows())
	for i := range norms {
		_, counts := vectors.Row(i)
		var sum int64
		for _, c := range counts {
			sum += int64(c) * int64(c)
		}
		norms[i] = math.Sqrt(float64(sum))
	}
	return norms
}

// columnPostings inverts the matrix: for each column, the rows containing it
// in ascending row order.
func columnPostings(vectors *features.SparseMatrix) [][]posting {
	postings := make([][]posting, vectors.Cols())
	for i := 0; i < vectors.Rows(); i++ {
		cols, counts := vectors.Row(i)
		for k, col := range cols {
			postings[col] = append(postings[col], posting{row: i, count: int64(counts[k])})
		}
	}
	return postings
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
