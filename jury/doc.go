/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package jury combines the opinions of independent judges into a single
// actionable verdict.
//
// # Overview
//
// A Judge evaluates one agent execution (a judgment.Context) and returns one
// judgment.Judgment. A Jury runs one or more judges and folds their judgments
// into a Verdict: the aggregated opinion plus the full audit trail of
// individual opinions.
//
// Two jury implementations are provided:
//
//   - SimpleJury runs its judges against the same context, sequentially or
//     concurrently, and aggregates their judgments through a VotingStrategy.
//   - CascadedJury runs a sequence of tiers, each tier itself a Jury, with
//     early-stop/escalate control flow governed by per-tier policies. Cheap
//     deterministic tiers run first; expensive semantic tiers only run when
//     an earlier tier could not settle the case.
//
// Both implement the same Jury interface, so a cascade tier's jury may itself
// be a cascade.
//
// # Voting strategies
//
// MajorityStrategy, ConsensusStrategy, and WeightedStrategy are built in;
// anything implementing VotingStrategy can be plugged into a SimpleJury.
// All built-in strategies exclude ABSTAIN and ERROR judgments from the count
// — an abstention is a judge declining to opine, never a failure signal.
//
// # Error handling
//
// A judge that returns an error or panics is converted to an ERROR judgment
// attributed to that judge, so one misbehaving judge never aborts the vote.
// A cascade tier whose jury fails is skipped (with a warning) and the cascade
// proceeds; only a failure in the final tier produces a top-level ERROR
// verdict, since every other tier has a successor to escalate to.
//
// # Example
//
//	deterministic, _ := jury.NewSimpleJury(jury.ConsensusStrategy{}, []jury.Judge{build, tests},
//		jury.WithName("deterministic"), jury.WithParallel(true))
//	semantic, _ := jury.NewSimpleJury(jury.MajorityStrategy{}, []jury.Judge{llm},
//		jury.WithName("semantic"))
//
//	cascade, err := jury.NewCascadedJury(
//		jury.TierConfig{Name: "deterministic", Jury: deterministic, Policy: jury.RejectOnAnyFail},
//		jury.TierConfig{Name: "semantic", Jury: semantic, Policy: jury.FinalTier},
//	)
//	if err != nil {
//		return err
//	}
//	verdict, err := cascade.Vote(ctx, jc)
package jury
