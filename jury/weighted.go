/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package jury

import (
	"fmt"
	"maps"

	"chainguard.dev/agentjury/judgment"
)

// DefaultWeightedThreshold is the pass threshold used when none is configured.
const DefaultWeightedThreshold = 0.5

// WeightedStrategy compares the weighted share of PASS votes against a
// threshold. Each judge carries a configured weight (judges without an entry
// weigh 1.0); ABSTAIN and ERROR judgments contribute no weight. The aggregate
// is PASS only when passWeight/decisiveWeight exceeds the threshold strictly
// — a result exactly at the threshold is FAIL, matching the conservative
// tie-breaking of MajorityStrategy. With no decisive weight the aggregate is
// ABSTAIN.
//
// Weight lookup uses the judge attribution stamped on each judgment by the
// jury (judgment.MetaJudge), so standalone use requires attributed judgments.
type WeightedStrategy struct {
	weights   map[string]float64
	threshold float64
}

// NewWeightedStrategy builds a weighted strategy from per-judge-name weights
// and a pass threshold in (0, 1). A zero threshold selects
// DefaultWeightedThreshold. Weights must be positive.
func NewWeightedStrategy(weights map[string]float64, threshold float64) (*WeightedStrategy, error) {
	if threshold == 0 {
		threshold = DefaultWeightedThreshold
	}
	if threshold <= 0 || threshold >= 1 {
		return nil, fmt.Errorf("threshold must be in (0, 1), got %g", threshold)
	}
	for name, w := range weights {
		if w <= 0 {
			return nil, fmt.Errorf("weight for judge %q must be positive, got %g", name, w)
		}
	}
	return &WeightedStrategy{
		weights:   maps.Clone(weights),
		threshold: threshold,
	}, nil
}

// Aggregate implements VotingStrategy.
func (s *WeightedStrategy) Aggregate(judgments []*judgment.Judgment) (*judgment.Judgment, error) {
	if len(judgments) == 0 {
		return nil, ErrNoJudgments
	}

	var passWeight, totalWeight float64
	for _, j := range judgments {
		if !j.Status.Decisive() {
			continue
		}
		w := 1.0
		if cw, ok := s.weights[j.JudgeName()]; ok {
			w = cw
		}
		totalWeight += w
		if j.Status == judgment.StatusPass {
			passWeight += w
		}
	}

	if totalWeight == 0 {
		return judgment.Abstain("weighted vote: no decisive judgments"), nil
	}

	ratio := passWeight / totalWeight
	reasoning := fmt.Sprintf("weighted vote: PASS weight %.2f of %.2f (ratio %.2f, threshold %.2f)",
		passWeight, totalWeight, ratio, s.threshold)

	agg := judgment.Fail(reasoning)
	if ratio > s.threshold {
		agg = judgment.Pass(reasoning)
	}
	agg.Score = judgment.NewBoundedScore(ratio, 0, 1)
	return agg, nil
}
