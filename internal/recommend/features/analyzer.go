// FlickPicks - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flickpicks

package features

import (
	"fmt"
	"unicode/utf8"

	"github.com/blevesearch/bleve/v2/analysis"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/custom"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/analysis/token/lowercase"
	"github.com/blevesearch/bleve/v2/analysis/tokenizer/unicode"
	"github.com/blevesearch/bleve/v2/registry"
	"golang.org/x/text/unicode/norm"
)

// DefaultMinTokenLength is the shortest token (in runes) kept by the analyzer.
// Single characters such as "a" or "x" carry no signal in a soup.
const DefaultMinTokenLength = 2

// soupAnalyzerName is the registry name of the analysis chain.
const soupAnalyzerName = "flickpicks_soup"

// AnalyzerConfig controls tokenization of soup text.
type AnalyzerConfig struct {
	// MinTokenLength drops tokens with fewer runes.
	// Default: DefaultMinTokenLength
	MinTokenLength int

	// KeepStopWords disables English stop word removal.
	// Default: false
	KeepStopWords bool
}

// Analyzer splits soup text into normalized terms.
// It is safe for concurrent use.
type Analyzer struct {
	chain          analysis.Analyzer
	minTokenLength int
}

// NewAnalyzer builds the analysis chain described by cfg.
func NewAnalyzer(cfg AnalyzerConfig) (*Analyzer, error) {
	if cfg.MinTokenLength <= 0 {
		cfg.MinTokenLength = DefaultMinTokenLength
	}

	filters := []string{lowercase.Name}
	if !cfg.KeepStopWords {
		filters = append(filters, en.StopName)
	}

	// Each analyzer gets a private registry cache so definitions never collide
	// with other users of the global bleve registry.
	cache := registry.NewCache()
	chain, err := cache.DefineAnalyzer(soupAnalyzerName, map[string]interface{}{
		"type":          custom.Name,
		"tokenizer":     unicode.Name,
		"token_filters": filters,
	})
	if err != nil {
		return nil, fmt.Errorf("define soup analyzer: %w", err)
	}

	return &Analyzer{
		chain:          chain,
		minTokenLength: cfg.MinTokenLength,
	}, nil
}

// Tokens returns the terms of text in document order, duplicates included.
// Text is NFKC-normalized first so composed and decomposed accents, ligatures
// and full-width forms map to the same term.
func (a *Analyzer) Tokens(text string) []string {
	if text == "" {
		return nil
	}

	stream := a.chain.Analyze(norm.NFKC.Bytes([]byte(text)))
	terms := make([]string, 0, len(stream))
	for _, tok := range stream {
		if utf8.RuneCount(tok.Term) < a.minTokenLength {
			continue
		}
		terms = append(terms, string(tok.Term))
	}
	return terms
}

// MinTokenLength returns the effective minimum token length.
func (a *Analyzer) MinTokenLength() int {
	return a.minTokenLength
}
