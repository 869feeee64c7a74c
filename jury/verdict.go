/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package jury

import (
	"chainguard.dev/agentjury/judgment"
)

// Verdict is the output of a jury: one aggregated judgment plus the full
// audit trail of individual judgments. For cascades, SubVerdicts records the
// per-tier verdicts that were actually produced, in tier-execution order.
type Verdict struct {
	// Aggregated is the jury's combined opinion.
	Aggregated *judgment.Judgment `json:"aggregated"`

	// Individual holds every judge's judgment in judge declaration order,
	// regardless of execution order.
	Individual []*judgment.Judgment `json:"individual,omitempty"`

	// ByName maps judge name to that judge's judgment. It always contains
	// exactly the same judgments as Individual.
	ByName map[string]*judgment.Judgment `json:"by_name,omitempty"`

	// SubVerdicts is empty for a flat jury. For a cascade it holds one
	// entry per executed tier — never a tier skipped by escalation logic
	// and never a tier whose jury failed to produce a verdict.
	SubVerdicts []*Verdict `json:"sub_verdicts,omitempty"`
}

// AnyFailed reports whether any individual judgment has status FAIL.
// ABSTAIN and ERROR are not failures.
func (v *Verdict) AnyFailed() bool {
	for _, j := range v.Individual {
		if j.Status == judgment.StatusFail {
			return true
		}
	}
	return false
}

// AllPassed reports whether every individual judgment has status PASS.
// A single ABSTAIN or ERROR disqualifies unanimity.
func (v *Verdict) AllPassed() bool {
	for _, j := range v.Individual {
		if j.Status != judgment.StatusPass {
			return false
		}
	}
	return len(v.Individual) > 0
}

// Status returns the status of the aggregated judgment, or ERROR when the
// verdict has no aggregate.
func (v *Verdict) Status() judgment.Status {
	if v.Aggregated == nil {
		return judgment.StatusError
	}
	return v.Aggregated.Status
}
