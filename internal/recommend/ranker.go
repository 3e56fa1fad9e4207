// FlickPicks - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flickpicks

package recommend

import (
	"sort"
)

// RankParams are the inputs of Rank.
type RankParams struct {
	// SeedIDs must be non-empty and resolve to corpus rows.
	SeedIDs []int

	// IgnoreIDs are excluded from the result. nil means SeedIDs.
	IgnoreIDs []int

	// Blend weights the similarity signals.
	Blend Blend

	// N is the maximum number of results. Must be positive.
	N int
}

// Rank scores every movie of snap against the seeds and returns the top N.
//
// The score of a movie is the mean over distinct seeds of the blended
// similarity between the seed and the movie. Movies are ordered by descending
// score, ties broken by ascending corpus row. Ignored movies are removed
// before the cut, so the result holds min(N, corpus size - ignored) movies.
//
// Rank has no side effects.
//
//nolint:gocritic // hugeParam: params passed by value for immutability
func Rank(snap *Snapshot, params RankParams) ([]ScoredMovie, error) {
	corpus := snap.Corpus()
	if corpus.Len() == 0 {
		return nil, &EmptyCorpusError{}
	}

	if err := params.Blend.Validate(); err != nil {
		return nil, err
	}
	if params.N <= 0 {
		return nil, &ConfigurationError{Field: "n_movies", Value: params.N, Message: "must be positive"}
	}

	seedRows, err := resolveSeeds(corpus, params.SeedIDs)
	if err != nil {
		return nil, err
	}

	ignoreIDs := params.IgnoreIDs
	if ignoreIDs == nil {
		ignoreIDs = params.SeedIDs
	}
	ignored, err := resolveIgnored(corpus, ignoreIDs)
	if err != nil {
		return nil, err
	}

	scores := aggregate(snap, params.Blend, seedRows)

	candidates := make([]int, 0, corpus.Len()-len(ignored))
	for row := 0; row < corpus.Len(); row++ {
		if _, skip := ignored[row]; !skip {
			candidates = append(candidates, row)
		}
	}

	sort.Slice(candidates, func(a, b int) bool {
		ra, rb := candidates[a], candidates[b]
		if scores[ra] != scores[rb] {
			return scores[ra] > scores[rb]
		}
		return ra < rb
	})

	if len(candidates) > params.N {
		candidates = candidates[:params.N]
	}

	out := make([]ScoredMovie, len(candidates))
	for i, row := range candidates {
		out[i] = ScoredMovie{ID: corpus.ID(row), Score: scores[row]}
	}
	return out, nil
}

// aggregate returns, for every row, the mean over seedRows of the blended
// similarity. Seeds are accumulated in ascending row order and signals in
// blend order, which fixes the floating point evaluation order.
func aggregate(snap *Snapshot, blend Blend, seedRows []int) []float64 {
	n := snap.Corpus().Len()
	sums := make([]float64, n)
	blended := make([]float64, n)

	for _, seed := range seedRows {
		for j := range blended {
			blended[j] = 0
		}
		for _, sw := range blend {
			if sw.Weight == 0 {
				continue
			}
			row := snap.Matrix(sw.Signal).Row(seed)
			for j, v := range row {
				blended[j] += sw.Weight * v
			}
		}
		for j, v := range blended {
			sums[j] += v
		}
	}

	count := float64(len(seedRows))
	for j := range sums {
		sums[j] /= count
	}
	return sums
}

// resolveSeeds maps seed ids to distinct rows in ascending order.
func resolveSeeds(corpus *Corpus, ids []int) ([]int, error) {
	if len(ids) == 0 {
		return nil, &InvalidSeedError{}
	}

	rows, missing := resolve(corpus, ids)
	if len(missing) > 0 {
		return nil, &InvalidSeedError{IDs: missing}
	}

	out := make([]int, 0, len(rows))
	for row := range rows {
		out = append(out, row)
	}
	sort.Ints(out)
	return out, nil
}

// resolveIgnored maps ignore ids to a row set.
func resolveIgnored(corpus *Corpus, ids []int) (map[int]struct{}, error) {
	rows, missing := resolve(corpus, ids)
	if len(missing) > 0 {
		return nil, &InvalidIgnoreError{IDs: missing}
	}
	return rows, nil
}

// resolve returns the row set of ids and the distinct ids that are not in
// the corpus, in first-seen order.
func resolve(corpus *Corpus, ids []int) (map[int]struct{}, []int) {
	rows := make(map[int]struct{}, len(ids))
	var missing []int
	seenMissing := make(map[int]struct{})

	for _, id := range ids {
		row, ok := corpus.Row(id)
		if !ok {
			if _, dup := seenMissing[id]; !dup {
				seenMissing[id] = struct{}{}
				missing = append(missing, id)
			}
			continue
		}
		rows[row] = struct{}{}
	}
	return rows, missing
}
