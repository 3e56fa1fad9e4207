// FlickPicks - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flickpicks

package recommend

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Sentinel errors matched by the typed errors below via errors.Is.
var (
	ErrInvalidSeed   = errors.New("invalid seed")
	ErrInvalidIgnore = errors.New("invalid ignore id")
	ErrConfiguration = errors.New("invalid configuration")
	ErrEmptyCorpus   = errors.New("empty corpus")
)

// InvalidSeedError is returned when the seed set is empty or contains ids
// that are not in the corpus.
type InvalidSeedError struct {
	// IDs are the unresolved seed ids. Empty when no seeds were given.
	IDs []int
}

func (e *InvalidSeedError) Error() string {
	if len(e.IDs) == 0 {
		return "invalid seed: no seed ids given"
	}
	return "invalid seed: ids not in corpus: " + joinIDs(e.IDs)
}

// Is reports whether target is ErrInvalidSeed.
func (e *InvalidSeedError) Is(target error) bool {
	return target == ErrInvalidSeed
}

// InvalidIgnoreError is returned when ignore ids are not in the corpus.
type InvalidIgnoreError struct {
	IDs []int
}

func (e *InvalidIgnoreError) Error() string {
	return "invalid ignore id: ids not in corpus: " + joinIDs(e.IDs)
}

// Is reports whether target is ErrInvalidIgnore.
func (e *InvalidIgnoreError) Is(target error) bool {
	return target == ErrInvalidIgnore
}

// ConfigurationError reports a parameter outside its valid range.
type ConfigurationError struct {
	Field   string
	Value   any
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s %s, got %v", e.Field, e.Message, e.Value)
}

// Is reports whether target is ErrConfiguration.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// EmptyCorpusError is returned when a ranking or build is attempted on a
// corpus with no rows.
type EmptyCorpusError struct{}

func (e *EmptyCorpusError) Error() string {
	return "empty corpus: no movies to rank"
}

// Is reports whether target is ErrEmptyCorpus.
func (e *EmptyCorpusError) Is(target error) bool {
	return target == ErrEmptyCorpus
}

func joinIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ", ")
}

// outcomeOf maps an error to a request outcome label.
func outcomeOf(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, ErrInvalidSeed):
		return OutcomeInvalidSeed
	case errors.Is(err, ErrInvalidIgnore), errors.Is(err, ErrConfiguration):
		return OutcomeInvalidInput
	case errors.Is(err, ErrEmptyCorpus):
		return OutcomeEmptyCorpus
	default:
		return OutcomeError
	}
}
