/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package jury_test

import (
	"context"
	"errors"
	"time"

	"chainguard.dev/agentjury/judgment"
	"chainguard.dev/agentjury/jury"
)

func testContext() *judgment.Context {
	return &judgment.Context{
		Goal:   "migrate the build to the new plugin",
		Status: judgment.ExecutionSucceeded,
	}
}

func alwaysPass(name string) jury.Judge {
	return jury.NewJudge(name, func(context.Context, *judgment.Context) (*judgment.Judgment, error) {
		return judgment.Pass(name + " passed"), nil
	})
}

func alwaysFail(name string) jury.Judge {
	return jury.NewJudge(name, func(context.Context, *judgment.Context) (*judgment.Judgment, error) {
		return judgment.Fail(name + " failed"), nil
	})
}

func alwaysAbstain(name string) jury.Judge {
	return jury.NewJudge(name, func(context.Context, *judgment.Context) (*judgment.Judgment, error) {
		return judgment.Abstain(name + " has no opinion"), nil
	})
}

func alwaysError(name string) jury.Judge {
	return jury.NewJudge(name, func(context.Context, *judgment.Context) (*judgment.Judgment, error) {
		return nil, errors.New(name + " infrastructure failure")
	})
}

func alwaysPanic(name string) jury.Judge {
	return jury.NewJudge(name, func(context.Context, *judgment.Context) (*judgment.Judgment, error) {
		panic(name + " exploded")
	})
}

// slowPass passes after sleeping, to exercise completion-order vs
// declaration-order behavior in parallel juries.
func slowPass(name string, d time.Duration) jury.Judge {
	return jury.NewJudge(name, func(context.Context, *judgment.Context) (*judgment.Judgment, error) {
		time.Sleep(d)
		return judgment.Pass(name + " passed"), nil
	})
}

func mustSimpleJury(strategy jury.VotingStrategy, judges []jury.Judge, opts ...jury.SimpleJuryOption) *jury.SimpleJury {
	j, err := jury.NewSimpleJury(strategy, judges, opts...)
	if err != nil {
		panic(err)
	}
	return j
}

// throwingJury fails every vote, standing in for tier infrastructure failure.
type throwingJury struct{}

func (throwingJury) Judges() []jury.Judge { return nil }

func (throwingJury) Vote(context.Context, *judgment.Context) (*jury.Verdict, error) {
	return nil, errors.New("tier exploded")
}

// panickingJury panics during vote.
type panickingJury struct{}

func (panickingJury) Judges() []jury.Judge { return nil }

func (panickingJury) Vote(context.Context, *judgment.Context) (*jury.Verdict, error) {
	panic("tier panicked")
}
