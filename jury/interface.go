/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package jury

import (
	"context"
	"errors"

	"chainguard.dev/agentjury/judgment"
)

// Judge is a single evaluator producing one opinion about an agent execution.
//
// Evaluate must represent expected business outcomes as judgment statuses
// (a failing check is a FAIL judgment, not an error). A non-nil error is
// treated as infrastructure failure and converted by the jury into an ERROR
// judgment attributed to this judge.
//
// Implementations must be safe to invoke concurrently against a shared
// read-only context.
type Judge interface {
	// Name identifies this judge within a jury. Names must be unique per jury.
	Name() string

	// Evaluate renders this judge's opinion about the given execution.
	Evaluate(ctx context.Context, jc *judgment.Context) (*judgment.Judgment, error)
}

// VotingStrategy combines several judges' judgments into one.
//
// Aggregate receives the judgments in judge declaration order and returns an
// error only for an empty input; all judgment-level conditions (including
// every judge abstaining or erroring) must resolve to a Judgment.
type VotingStrategy interface {
	Aggregate(judgments []*judgment.Judgment) (*judgment.Judgment, error)
}

// Jury runs one or more judges and produces a single Verdict. It is the sole
// entry point external callers use, and is recursively composable: a cascade
// tier's jury may itself be a cascade.
type Jury interface {
	// Judges returns the judges this jury consults, in declaration order.
	// For cascades this is the tier-ordered flattened judge list; it is
	// useful for introspection only and plays no role in voting.
	Judges() []Judge

	// Vote evaluates the given execution and returns the verdict. Errors
	// from individual judges are absorbed into ERROR judgments; a non-nil
	// error from Vote itself means the jury could not produce a verdict
	// at all.
	Vote(ctx context.Context, jc *judgment.Context) (*Verdict, error)
}

// ErrNoJudgments is returned by the built-in voting strategies when asked to
// aggregate an empty judgment list.
var ErrNoJudgments = errors.New("no judgments to aggregate")

type judgeFunc struct {
	name string
	eval func(context.Context, *judgment.Context) (*judgment.Judgment, error)
}

// NewJudge adapts a function into a named Judge.
func NewJudge(name string, eval func(context.Context, *judgment.Context) (*judgment.Judgment, error)) Judge {
	return &judgeFunc{name: name, eval: eval}
}

// Name implements Judge.
func (j *judgeFunc) Name() string { return j.name }

// Evaluate implements Judge.
func (j *judgeFunc) Evaluate(ctx context.Context, jc *judgment.Context) (*judgment.Judgment, error) {
	return j.eval(ctx, jc)
}
