// FlickPicks - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flickpicks

package recommend

import (
	"math"
	"strconv"
	"strings"
)

// Signal names a text field that is vectorized into its own similarity matrix.
type Signal string

const (
	// SignalPlot is built from MovieRecord.SoupPlot.
	SignalPlot Signal = "plot"
	// SignalGeneral is built from MovieRecord.SoupGeneral.
	SignalGeneral Signal = "general"
)

// Signals lists every supported signal in build order.
var Signals = []Signal{SignalPlot, SignalGeneral}

// Valid reports whether s is a supported signal.
func (s Signal) Valid() bool {
	return s == SignalPlot || s == SignalGeneral
}

// weightSumTolerance bounds floating error when checking that weights sum to 1.
const weightSumTolerance = 1e-9

// SignalWeight is one term of a blend.
type SignalWeight struct {
	Signal Signal  `json:"signal" koanf:"signal"`
	Weight float64 `json:"weight" koanf:"weight"`
}

// Blend is a convex combination of similarity signals.
type Blend []SignalWeight

// DefaultPlotWeight is the plot share of the default blend.
const DefaultPlotWeight = 0.7

// PlotBlend returns the two-signal blend weighting plot by weightPlot and
// general by 1 - weightPlot.
func PlotBlend(weightPlot float64) Blend {
	return Blend{
		{Signal: SignalPlot, Weight: weightPlot},
		{Signal: SignalGeneral, Weight: 1 - weightPlot},
	}
}

// Validate checks that every weight is in [0, 1], signals are known and
// distinct, and the weights sum to 1.
func (b Blend) Validate() error {
	if len(b) == 0 {
		return &ConfigurationError{Field: "blend", Value: 0, Message: "must name at least one signal"}
	}

	seen := make(map[Signal]struct{}, len(b))
	var sum float64
	for _, sw := range b {
		if !sw.Signal.Valid() {
			return &ConfigurationError{Field: "blend.signal", Value: sw.Signal, Message: "is not a known signal"}
		}
		if _, dup := seen[sw.Signal]; dup {
			return &ConfigurationError{Field: "blend.signal", Value: sw.Signal, Message: "appears more than once"}
		}
		seen[sw.Signal] = struct{}{}

		if math.IsNaN(sw.Weight) || sw.Weight < 0 || sw.Weight > 1 {
			return &ConfigurationError{Field: "weight_" + string(sw.Signal), Value: sw.Weight, Message: "must be in [0, 1]"}
		}
		sum += sw.Weight
	}

	if math.Abs(sum-1) > weightSumTolerance {
		return &ConfigurationError{Field: "blend", Value: sum, Message: "weights must sum to 1"}
	}
	return nil
}

// Weight returns the weight of s, zero if s is not part of the blend.
func (b Blend) Weight(s Signal) float64 {
	for _, sw := range b {
		if sw.Signal == s {
			return sw.Weight
		}
	}
	return 0
}

// Clone returns a copy of b.
func (b Blend) Clone() Blend {
	if b == nil {
		return nil
	}
	out := make(Blend, len(b))
	copy(out, b)
	return out
}

// String renders the blend as "plot=0.7,general=0.3".
func (b Blend) String() string {
	var sb strings.Builder
	for i, sw := range b {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(string(sw.Signal))
		sb.WriteByte('=')
		sb.WriteString(strconv.FormatFloat(sw.Weight, 'g', -1, 64))
	}
	return sb.String()
}
