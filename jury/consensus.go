/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package jury

import (
	"fmt"

	"chainguard.dev/agentjury/judgment"
)

// ConsensusStrategy requires unanimity among decisive judgments: the
// aggregate is PASS only if every decisive judgment is PASS and at least one
// decisive judgment exists. Any decisive FAIL yields FAIL. If no judgment is
// decisive the aggregate is ABSTAIN.
type ConsensusStrategy struct{}

// Aggregate implements VotingStrategy.
func (ConsensusStrategy) Aggregate(judgments []*judgment.Judgment) (*judgment.Judgment, error) {
	if len(judgments) == 0 {
		return nil, ErrNoJudgments
	}

	tally := tallyStatuses(judgments)
	reasoning := fmt.Sprintf("consensus vote: %s", tally)

	switch {
	case tally.fail > 0:
		return judgment.Fail(reasoning), nil
	case tally.pass > 0:
		return judgment.Pass(reasoning), nil
	default:
		return judgment.Abstain(reasoning), nil
	}
}
