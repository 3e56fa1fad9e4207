// FlickPicks - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flickpicks

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/flickpicks/internal/logging"
	"github.com/tomtom215/flickpicks/internal/recommend"
	"github.com/tomtom215/flickpicks/internal/validation"
)

// recommendFlags are the parsed flags of `flickpicks recommend`.
type recommendFlags struct {
	Seeds      []int   `json:"seeds"`
	Ignore     []int   `json:"ignore"`
	N          int     `json:"n" validate:"gte=0"`
	WeightPlot float64 `json:"weight_plot" validate:"gte=0,lte=1"`
	JSON       bool    `json:"json"`

	ignoreSet bool
	weightSet bool
}

func parseRecommendFlags(args []string, output io.Writer) (*recommendFlags, error) {
	fs := flag.NewFlagSet("recommend", flag.ContinueOnError)
	fs.SetOutput(output)

	var seeds, ignore string
	f := &recommendFlags{}
	fs.StringVar(&seeds, "seeds", "", "comma-separated seed movie ids (required)")
	fs.StringVar(&ignore, "ignore", "", "comma-separated ids to exclude (default: the seeds)")
	fs.IntVar(&f.N, "n", 0, "number of recommendations (default: recommend.default_n)")
	fs.Float64Var(&f.WeightPlot, "weight-plot", recommend.DefaultPlotWeight, "weight of the plot signal, 0-1")
	fs.BoolVar(&f.JSON, "json", false, "print the full response as JSON")

	if err := fs.Parse(args); err != nil {
		return nil, &usageError{err: err}
	}
	if fs.NArg() > 0 {
		return nil, &usageError{err: fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))}
	}

	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "ignore":
			f.ignoreSet = true
		case "weight-plot":
			f.weightSet = true
		}
	})

	var err error
	if f.Seeds, err = parseIDs(seeds); err != nil {
		return nil, &usageError{err: fmt.Errorf("-seeds: %w", err)}
	}
	if f.Ignore, err = parseIDs(ignore); err != nil {
		return nil, &usageError{err: fmt.Errorf("-ignore: %w", err)}
	}
	if f.ignoreSet && f.Ignore == nil {
		// -ignore "" excludes nothing, not even the seeds.
		f.Ignore = []int{}
	}

	if err := validation.ValidateStruct(f); err != nil {
		return nil, &usageError{err: err}
	}
	return f, nil
}

// request converts the flags to an engine request.
func (f *recommendFlags) request() recommend.Request {
	req := recommend.Request{
		SeedIDs: f.Seeds,
		N:       f.N,
	}
	if f.ignoreSet {
		req.IgnoreIDs = f.Ignore
	}
	if f.weightSet {
		req.Blend = recommend.PlotBlend(f.WeightPlot)
	}
	return req
}

// parseIDs parses "1, 2,3". An empty string yields nil.
func parseIDs(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	ids := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q", p)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func runRecommend(ctx context.Context, args []string, stdout io.Writer) error {
	flags, err := parseRecommendFlags(args, stdout)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := logging.WithComponent("cli")

	engine, src, err := newEngine(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := src.Close(); cerr != nil {
			logger.Warn().Err(cerr).Msg("Failed to close corpus source")
		}
	}()

	resp, err := engine.Recommend(ctx, flags.request())
	if err != nil {
		return err
	}

	return writeResponse(stdout, resp, flags.JSON)
}

// writeResponse prints one "id<TAB>score" line per item, or the whole
// response as indented JSON.
func writeResponse(w io.Writer, resp *recommend.Response, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}

	for _, item := range resp.Items {
		if _, err := fmt.Fprintf(w, "%d\t%.6f\n", item.ID, item.Score); err != nil {
			return err
		}
	}
	return nil
}
