// FlickPicks - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flickpicks

package config

import (
	"fmt"
	"time"

	"github.com/tomtom215/flickpicks/internal/corpus"
	"github.com/tomtom215/flickpicks/internal/validation"
)

// MinRefreshInterval is the shortest allowed periodic refresh.
const MinRefreshInterval = time.Second

// Validate checks field rules, then rules that span sections.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return err
	}

	validators := []func() error{
		c.validateCorpus,
		c.validateRecommend,
		c.validateRefresh,
	}
	for _, validate := range validators {
		if err := validate(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateCorpus() error {
	if _, err := corpus.ResolveFormat(c.Corpus.Path, c.Corpus.Format); err != nil {
		return fmt.Errorf("corpus.format: %w", err)
	}
	return nil
}

// validateRecommend defers to the engine's own rules so that both layers agree.
func (c *Config) validateRecommend() error {
	if err := c.RecommendEngineConfig().Validate(); err != nil {
		return fmt.Errorf("recommend: %w", err)
	}
	return nil
}

func (c *Config) validateRefresh() error {
	if c.Refresh.Interval > 0 && c.Refresh.Interval < MinRefreshInterval {
		return fmt.Errorf("refresh.interval must be 0 or at least %s, got %s",
			MinRefreshInterval, c.Refresh.Interval)
	}
	return nil
}
