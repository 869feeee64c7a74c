/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package jury

import (
	"fmt"

	"chainguard.dev/agentjury/judgment"
)

// MajorityStrategy passes when PASS votes outnumber FAIL votes among decisive
// judgments. ABSTAIN and ERROR judgments are excluded from the count but
// remain visible in the verdict's individual list. An exact tie is FAIL —
// ties must not silently pass. If no judgment is decisive the aggregate is
// ABSTAIN.
type MajorityStrategy struct{}

// Aggregate implements VotingStrategy.
func (MajorityStrategy) Aggregate(judgments []*judgment.Judgment) (*judgment.Judgment, error) {
	if len(judgments) == 0 {
		return nil, ErrNoJudgments
	}

	tally := tallyStatuses(judgments)
	reasoning := fmt.Sprintf("majority vote: %s", tally)

	switch {
	case tally.pass == 0 && tally.fail == 0:
		return judgment.Abstain(reasoning), nil
	case tally.pass > tally.fail:
		return judgment.Pass(reasoning), nil
	default:
		// FAIL majority, or a tie (conservative default).
		return judgment.Fail(reasoning), nil
	}
}

// statusTally counts judgments per status for vote summaries.
type statusTally struct {
	pass, fail, abstain, errored int
}

func tallyStatuses(judgments []*judgment.Judgment) statusTally {
	var t statusTally
	for _, j := range judgments {
		switch j.Status {
		case judgment.StatusPass:
			t.pass++
		case judgment.StatusFail:
			t.fail++
		case judgment.StatusAbstain:
			t.abstain++
		case judgment.StatusError:
			t.errored++
		}
	}
	return t
}

// String renders the tally for audit reasoning.
func (t statusTally) String() string {
	return fmt.Sprintf("%d PASS, %d FAIL, %d ABSTAIN, %d ERROR", t.pass, t.fail, t.abstain, t.errored)
}
