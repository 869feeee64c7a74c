/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package jury

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chainguard-dev/clog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"chainguard.dev/agentjury/judgment"
)

const tracerName = "chainguard.ai.agentjury"

// SimpleJury runs a fixed set of judges against the same context and folds
// their judgments through a VotingStrategy.
type SimpleJury struct {
	name           string
	judges         []Judge
	strategy       VotingStrategy
	parallel       bool
	maxConcurrency int
}

// SimpleJuryOption is a functional option for configuring a SimpleJury.
type SimpleJuryOption func(*SimpleJury) error

// WithName sets the jury name used in logs, traces, and metrics.
func WithName(name string) SimpleJuryOption {
	return func(s *SimpleJury) error {
		if name == "" {
			return errors.New("jury name cannot be empty")
		}
		s.name = name
		return nil
	}
}

// WithParallel selects concurrent judge execution. The default is sequential,
// in declaration order.
func WithParallel(parallel bool) SimpleJuryOption {
	return func(s *SimpleJury) error {
		s.parallel = parallel
		return nil
	}
}

// WithMaxConcurrency bounds the worker pool used for parallel execution.
// Zero means unbounded.
func WithMaxConcurrency(n int) SimpleJuryOption {
	return func(s *SimpleJury) error {
		if n < 0 {
			return fmt.Errorf("max concurrency cannot be negative, got %d", n)
		}
		s.maxConcurrency = n
		return nil
	}
}

// NewSimpleJury builds a flat jury from a voting strategy and an ordered
// judge list. Judge names must be non-empty and unique within the jury.
func NewSimpleJury(strategy VotingStrategy, judges []Judge, opts ...SimpleJuryOption) (*SimpleJury, error) {
	if strategy == nil {
		return nil, errors.New("voting strategy is required")
	}
	if len(judges) == 0 {
		return nil, errors.New("at least one judge is required")
	}

	seen := make(map[string]struct{}, len(judges))
	for i, j := range judges {
		if j == nil {
			return nil, fmt.Errorf("judge %d is nil", i)
		}
		name := j.Name()
		if name == "" {
			return nil, fmt.Errorf("judge %d has an empty name", i)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("duplicate judge name %q", name)
		}
		seen[name] = struct{}{}
	}

	s := &SimpleJury{
		name:     "simple",
		judges:   append([]Judge(nil), judges...),
		strategy: strategy,
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Name returns the jury name.
func (s *SimpleJury) Name() string { return s.name }

// Judges implements Jury.
func (s *SimpleJury) Judges() []Judge {
	return append([]Judge(nil), s.judges...)
}

// Vote implements Jury. Every configured judge evaluates the same context;
// the resulting judgments always appear in judge declaration order,
// regardless of execution mode.
func (s *SimpleJury) Vote(ctx context.Context, jc *judgment.Context) (*Verdict, error) {
	tr := otel.Tracer(tracerName)
	ctx, span := tr.Start(ctx, "jury.vote", oteltrace.WithAttributes(
		attribute.String("jury.name", s.name),
		attribute.Int("jury.judges", len(s.judges)),
		attribute.Bool("jury.parallel", s.parallel),
	))
	defer span.End()

	start := time.Now()

	// Results are indexed by declaration position so concurrent completion
	// order never leaks into the verdict.
	results := make([]*judgment.Judgment, len(s.judges))

	if s.parallel {
		g := new(errgroup.Group)
		if s.maxConcurrency > 0 {
			g.SetLimit(s.maxConcurrency)
		}
		for i, j := range s.judges {
			g.Go(func() error {
				results[i] = s.evaluate(ctx, j, jc)
				return nil
			})
		}
		// Judge failures are absorbed into ERROR judgments, never errors.
		_ = g.Wait()
	} else {
		for i, j := range s.judges {
			results[i] = s.evaluate(ctx, j, jc)
		}
	}

	byName := make(map[string]*judgment.Judgment, len(results))
	for i, j := range s.judges {
		byName[j.Name()] = results[i]
	}

	aggregated, err := s.strategy.Aggregate(results)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("jury %q: aggregating judgments: %w", s.name, err)
	}

	span.SetAttributes(attribute.String("jury.status", string(aggregated.Status)))
	observeVote(s.name, aggregated.Status, time.Since(start))

	return &Verdict{
		Aggregated: aggregated,
		Individual: results,
		ByName:     byName,
	}, nil
}

// evaluate runs one judge, converting an error return or a panic into an
// ERROR judgment so a misbehaving judge never aborts the vote. The returned
// judgment is stamped with the judge's name before publication.
func (s *SimpleJury) evaluate(ctx context.Context, j Judge, jc *judgment.Context) (result *judgment.Judgment) {
	log := clog.FromContext(ctx).With("jury", s.name).With("judge", j.Name())

	defer func() {
		if r := recover(); r != nil {
			log.With("panic", r).Error("Judge panicked during evaluation")
			judgeErrorCounter.WithLabelValues(s.name, j.Name()).Inc()
			result = stamp(judgment.Errorf("judge %q panicked: %v", j.Name(), r), j.Name())
		}
	}()

	jmt, err := j.Evaluate(ctx, jc)
	switch {
	case err != nil:
		log.With("error", err).Warn("Judge evaluation failed, recording ERROR judgment")
		judgeErrorCounter.WithLabelValues(s.name, j.Name()).Inc()
		jmt = judgment.FromError(fmt.Sprintf("judge %q failed: %v", j.Name(), err), err)
	case jmt == nil:
		log.Warn("Judge returned no judgment, recording ERROR judgment")
		judgeErrorCounter.WithLabelValues(s.name, j.Name()).Inc()
		jmt = judgment.Errorf("judge %q returned no judgment", j.Name())
	}

	return stamp(jmt, j.Name())
}

// stamp records judge attribution on a judgment before it is published into
// a verdict.
func stamp(j *judgment.Judgment, name string) *judgment.Judgment {
	if j.Metadata == nil {
		j.Metadata = make(map[string]any, 1)
	}
	j.Metadata[judgment.MetaJudge] = name
	return j
}
