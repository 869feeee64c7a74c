/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package jury_test

import (
	"errors"
	"strings"
	"testing"

	"chainguard.dev/agentjury/judgment"
	"chainguard.dev/agentjury/jury"
)

func statuses(ss ...judgment.Status) []*judgment.Judgment {
	judgments := make([]*judgment.Judgment, 0, len(ss))
	for _, s := range ss {
		judgments = append(judgments, &judgment.Judgment{Status: s})
	}
	return judgments
}

func TestMajorityStrategy(t *testing.T) {
	tests := []struct {
		name string
		in   []*judgment.Judgment
		want judgment.Status
	}{{
		name: "pass majority",
		in:   statuses(judgment.StatusPass, judgment.StatusPass, judgment.StatusFail),
		want: judgment.StatusPass,
	}, {
		name: "fail majority",
		in:   statuses(judgment.StatusPass, judgment.StatusFail, judgment.StatusFail),
		want: judgment.StatusFail,
	}, {
		name: "tie is conservative",
		in:   statuses(judgment.StatusPass, judgment.StatusFail),
		want: judgment.StatusFail,
	}, {
		name: "abstentions excluded from count",
		in:   statuses(judgment.StatusPass, judgment.StatusAbstain, judgment.StatusAbstain),
		want: judgment.StatusPass,
	}, {
		name: "errors excluded from count",
		in:   statuses(judgment.StatusFail, judgment.StatusError, judgment.StatusError),
		want: judgment.StatusFail,
	}, {
		name: "all abstain",
		in:   statuses(judgment.StatusAbstain, judgment.StatusAbstain),
		want: judgment.StatusAbstain,
	}, {
		name: "abstain and error only",
		in:   statuses(judgment.StatusAbstain, judgment.StatusError),
		want: judgment.StatusAbstain,
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg, err := jury.MajorityStrategy{}.Aggregate(tt.in)
			if err != nil {
				t.Fatalf("Aggregate: got error = %v, wanted = nil", err)
			}
			if agg.Status != tt.want {
				t.Errorf("status: got = %s, wanted = %s", agg.Status, tt.want)
			}
			if !strings.Contains(agg.Reasoning, "majority vote") {
				t.Errorf("reasoning: got = %q, wanted a vote breakdown", agg.Reasoning)
			}
			if len(agg.Checks) != 0 {
				t.Errorf("checks: got = %d, wanted = 0", len(agg.Checks))
			}
		})
	}
}

func TestConsensusStrategy(t *testing.T) {
	tests := []struct {
		name string
		in   []*judgment.Judgment
		want judgment.Status
	}{{
		name: "unanimous pass",
		in:   statuses(judgment.StatusPass, judgment.StatusPass),
		want: judgment.StatusPass,
	}, {
		name: "any fail breaks consensus",
		in:   statuses(judgment.StatusPass, judgment.StatusFail),
		want: judgment.StatusFail,
	}, {
		name: "abstentions do not break consensus",
		in:   statuses(judgment.StatusPass, judgment.StatusAbstain),
		want: judgment.StatusPass,
	}, {
		name: "only abstentions",
		in:   statuses(judgment.StatusAbstain),
		want: judgment.StatusAbstain,
	}, {
		name: "fail among errors",
		in:   statuses(judgment.StatusError, judgment.StatusFail),
		want: judgment.StatusFail,
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg, err := jury.ConsensusStrategy{}.Aggregate(tt.in)
			if err != nil {
				t.Fatalf("Aggregate: got error = %v, wanted = nil", err)
			}
			if agg.Status != tt.want {
				t.Errorf("status: got = %s, wanted = %s", agg.Status, tt.want)
			}
		})
	}
}

func TestStrategiesRejectEmptyInput(t *testing.T) {
	weighted, err := jury.NewWeightedStrategy(nil, 0.5)
	if err != nil {
		t.Fatalf("NewWeightedStrategy: got error = %v, wanted = nil", err)
	}

	for _, s := range []jury.VotingStrategy{
		jury.MajorityStrategy{},
		jury.ConsensusStrategy{},
		weighted,
	} {
		if _, err := s.Aggregate(nil); !errors.Is(err, jury.ErrNoJudgments) {
			t.Errorf("%T.Aggregate(nil): got error = %v, wanted = ErrNoJudgments", s, err)
		}
	}
}

func TestNewWeightedStrategyValidation(t *testing.T) {
	tests := []struct {
		name      string
		weights   map[string]float64
		threshold float64
		wantErr   bool
	}{
		{name: "defaults", threshold: 0, wantErr: false},
		{name: "valid threshold", threshold: 0.75, wantErr: false},
		{name: "threshold too high", threshold: 1.0, wantErr: true},
		{name: "threshold negative", threshold: -0.5, wantErr: true},
		{name: "zero weight", weights: map[string]float64{"semantic": 0}, threshold: 0.5, wantErr: true},
		{name: "negative weight", weights: map[string]float64{"semantic": -2}, threshold: 0.5, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := jury.NewWeightedStrategy(tt.weights, tt.threshold)
			if gotErr := err != nil; gotErr != tt.wantErr {
				t.Errorf("NewWeightedStrategy: got error = %v, wanted error = %v", err, tt.wantErr)
			}
		})
	}
}

func TestWeightedStrategy(t *testing.T) {
	attributed := func(name string, status judgment.Status) *judgment.Judgment {
		return &judgment.Judgment{
			Status:   status,
			Metadata: map[string]any{judgment.MetaJudge: name},
		}
	}

	tests := []struct {
		name      string
		weights   map[string]float64
		threshold float64
		in        []*judgment.Judgment
		want      judgment.Status
		wantScore float64
	}{{
		name:      "heavy judge outweighs two light ones",
		weights:   map[string]float64{"semantic": 3},
		threshold: 0.5,
		in: []*judgment.Judgment{
			attributed("semantic", judgment.StatusPass),
			attributed("lint", judgment.StatusFail),
			attributed("style", judgment.StatusFail),
		},
		want:      judgment.StatusPass,
		wantScore: 0.6,
	}, {
		name:      "default weight is one",
		threshold: 0.5,
		in: []*judgment.Judgment{
			attributed("a", judgment.StatusPass),
			attributed("b", judgment.StatusFail),
			attributed("c", judgment.StatusFail),
		},
		want:      judgment.StatusFail,
		wantScore: 1.0 / 3.0,
	}, {
		name:      "ratio exactly at threshold fails",
		threshold: 0.5,
		in: []*judgment.Judgment{
			attributed("a", judgment.StatusPass),
			attributed("b", judgment.StatusFail),
		},
		want:      judgment.StatusFail,
		wantScore: 0.5,
	}, {
		name:      "abstain carries no weight",
		threshold: 0.5,
		in: []*judgment.Judgment{
			attributed("a", judgment.StatusPass),
			attributed("b", judgment.StatusAbstain),
		},
		want:      judgment.StatusPass,
		wantScore: 1.0,
	}, {
		name:      "all abstain",
		threshold: 0.5,
		in: []*judgment.Judgment{
			attributed("a", judgment.StatusAbstain),
			attributed("b", judgment.StatusError),
		},
		want: judgment.StatusAbstain,
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := jury.NewWeightedStrategy(tt.weights, tt.threshold)
			if err != nil {
				t.Fatalf("NewWeightedStrategy: got error = %v, wanted = nil", err)
			}

			agg, err := s.Aggregate(tt.in)
			if err != nil {
				t.Fatalf("Aggregate: got error = %v, wanted = nil", err)
			}
			if agg.Status != tt.want {
				t.Errorf("status: got = %s, wanted = %s", agg.Status, tt.want)
			}
			if tt.want != judgment.StatusAbstain {
				score, ok := agg.Score.(judgment.NumericalScore)
				if !ok {
					t.Fatalf("score type: got = %T, wanted = NumericalScore", agg.Score)
				}
				if diff := score.Val - tt.wantScore; diff > 1e-9 || diff < -1e-9 {
					t.Errorf("score: got = %v, wanted = %v", score.Val, tt.wantScore)
				}
			}
		})
	}
}
