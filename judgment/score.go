/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package judgment

import (
	"fmt"
	"strconv"
)

// Score is one judge's quantified result. Exactly one Score may be attached
// to a Judgment; a nil Score means the judge reported status only.
//
// The closed set of implementations is BooleanScore, NumericalScore, and
// CategoricalScore.
type Score interface {
	fmt.Stringer

	// Value returns the underlying result for serialization.
	Value() any
}

// BooleanScore is a yes/no result.
type BooleanScore bool

// Value implements Score.
func (s BooleanScore) Value() any { return bool(s) }

// String implements fmt.Stringer.
func (s BooleanScore) String() string { return strconv.FormatBool(bool(s)) }

// NumericalScore is a numeric result, optionally bounded.
type NumericalScore struct {
	Val float64 `json:"value"`

	// Min and Max bound the score when Bounded is true (e.g., 0..1 for
	// normalized LLM grades). Unbounded scores leave Bounded false.
	Min     float64 `json:"min,omitempty"`
	Max     float64 `json:"max,omitempty"`
	Bounded bool    `json:"bounded,omitempty"`
}

// NewNumericalScore returns an unbounded numeric score.
func NewNumericalScore(v float64) NumericalScore {
	return NumericalScore{Val: v}
}

// NewBoundedScore returns a numeric score with inclusive range bounds.
func NewBoundedScore(v, min, max float64) NumericalScore {
	return NumericalScore{Val: v, Min: min, Max: max, Bounded: true}
}

// InRange reports whether the score is within its bounds. Unbounded scores
// are always in range.
func (s NumericalScore) InRange() bool {
	return !s.Bounded || (s.Val >= s.Min && s.Val <= s.Max)
}

// Value implements Score.
func (s NumericalScore) Value() any { return s.Val }

// String implements fmt.Stringer.
func (s NumericalScore) String() string {
	if s.Bounded {
		return fmt.Sprintf("%.2f [%g, %g]", s.Val, s.Min, s.Max)
	}
	return fmt.Sprintf("%.2f", s.Val)
}

// CategoricalScore is a labeled result drawn from a judge-specific set
// (e.g., "excellent", "acceptable", "poor").
type CategoricalScore string

// Value implements Score.
func (s CategoricalScore) Value() any { return string(s) }

// String implements fmt.Stringer.
func (s CategoricalScore) String() string { return string(s) }
