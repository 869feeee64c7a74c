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

	"chainguard.dev/agentjury/judgment"
)

// TierPolicy determines how a tier's verdict maps to cascade control flow.
//
// Escalation is decided on the raw per-judge statuses inside the tier's
// verdict, never on the tier's aggregated opinion: a tier's voting strategy
// only affects what gets reported as that tier's aggregate, not whether the
// cascade escalates.
type TierPolicy string

const (
	// RejectOnAnyFail stops the cascade with this tier's verdict if any
	// judge in the tier failed; otherwise escalates. Use for deterministic
	// fail-fast gates.
	RejectOnAnyFail TierPolicy = "reject_on_any_fail"

	// AcceptOnAllPass stops the cascade with this tier's verdict if every
	// judge in the tier passed; otherwise escalates. An abstaining judge
	// disqualifies unanimity. Use for structural analysis tiers.
	AcceptOnAllPass TierPolicy = "accept_on_all_pass"

	// FinalTier always stops with this tier's verdict. It must be, and may
	// only be, the last tier of a cascade. Use for expensive semantic
	// evaluation.
	FinalTier TierPolicy = "final_tier"
)

func (p TierPolicy) valid() bool {
	switch p {
	case RejectOnAnyFail, AcceptOnAllPass, FinalTier:
		return true
	}
	return false
}

// TierConfig describes one tier of a CascadedJury. All fields are required.
type TierConfig struct {
	// Name identifies the tier in logs and error verdicts.
	Name string
	// Jury evaluates this tier. It may itself be a CascadedJury.
	Jury Jury
	// Policy maps this tier's verdict to stop or escalate.
	Policy TierPolicy
}

func (t TierConfig) validate(position int, last bool) error {
	if t.Name == "" {
		return fmt.Errorf("tier %d: name is required", position)
	}
	if t.Jury == nil {
		return fmt.Errorf("tier %q: jury is required", t.Name)
	}
	if !t.Policy.valid() {
		return fmt.Errorf("tier %q: unknown policy %q", t.Name, t.Policy)
	}
	if last && t.Policy != FinalTier {
		return fmt.Errorf("last tier %q must use policy %q, got %q", t.Name, FinalTier, t.Policy)
	}
	if !last && t.Policy == FinalTier {
		return fmt.Errorf("tier %q uses policy %q but is not the last tier", t.Name, FinalTier)
	}
	return nil
}

// CascadedJury evaluates through sequential tiers with early-stop and
// escalation semantics. Cheap tiers run first; a tier whose policy cannot
// settle the case hands the same context to the next tier. Tiers never run
// concurrently with each other, since a later tier's necessity depends on an
// earlier tier's outcome.
type CascadedJury struct {
	tiers []TierConfig
}

// NewCascadedJury builds a cascade from an ordered tier list. It fails if no
// tier is given, if any tier is incomplete, or if FinalTier is missing from
// the last position or present anywhere else. Validation happens once here,
// never during Vote.
func NewCascadedJury(tiers ...TierConfig) (*CascadedJury, error) {
	if len(tiers) == 0 {
		return nil, errors.New("cascade requires at least one tier")
	}
	for i, tier := range tiers {
		if err := tier.validate(i, i == len(tiers)-1); err != nil {
			return nil, err
		}
	}
	return &CascadedJury{tiers: append([]TierConfig(nil), tiers...)}, nil
}

// Judges implements Jury, returning the concatenation of every tier's judges
// in tier order.
func (c *CascadedJury) Judges() []Judge {
	var judges []Judge
	for _, tier := range c.tiers {
		judges = append(judges, tier.Jury.Judges()...)
	}
	return judges
}

// Vote implements Jury. Tiers execute strictly in order; each executed
// tier's verdict is appended to the trace, and the tier's policy decides
// stop or escalate based on the individual judgments inside that verdict.
//
// A tier whose jury fails (error or panic) contributes nothing to the trace:
// the failure is logged and the cascade proceeds, because every non-final
// tier has a successor to escalate to. Only a failure in the final tier
// terminates the cascade with an ERROR verdict naming the tier.
func (c *CascadedJury) Vote(ctx context.Context, jc *judgment.Context) (*Verdict, error) {
	log := clog.FromContext(ctx)
	tr := otel.Tracer(tracerName)
	ctx, span := tr.Start(ctx, "jury.cascade", oteltrace.WithAttributes(
		attribute.Int("cascade.tiers", len(c.tiers)),
	))
	defer span.End()

	start := time.Now()
	var executed []*Verdict

	for i, tier := range c.tiers {
		last := i == len(c.tiers)-1

		tierVerdict, err := c.voteTier(ctx, tier, jc)
		if err != nil {
			if !last {
				log.With("tier", tier.Name).With("error", err).
					Warn("Tier failed to produce a verdict, escalating to next tier")
				escalationCounter.WithLabelValues(tier.Name).Inc()
				continue
			}
			span.SetStatus(codes.Error, err.Error())
			agg := judgment.FromError(fmt.Sprintf("final tier %q failed: %v", tier.Name, err), err)
			observeVote("cascade", agg.Status, time.Since(start))
			return &Verdict{Aggregated: agg, SubVerdicts: executed}, nil
		}

		executed = append(executed, tierVerdict)

		stop := false
		switch tier.Policy {
		case RejectOnAnyFail:
			stop = tierVerdict.AnyFailed()
		case AcceptOnAllPass:
			stop = tierVerdict.AllPassed()
		case FinalTier:
			stop = true
		}

		if stop {
			span.SetAttributes(
				attribute.String("cascade.stopped_at", tier.Name),
				attribute.String("cascade.status", string(tierVerdict.Status())),
			)
			observeVote("cascade", tierVerdict.Status(), time.Since(start))
			return cascadeVerdict(tierVerdict, executed), nil
		}

		log.With("tier", tier.Name).With("policy", string(tier.Policy)).
			Info("Tier did not settle the case, escalating")
		escalationCounter.WithLabelValues(tier.Name).Inc()
	}

	// Unreachable when the last tier uses FinalTier, but kept as a
	// defensive fallback.
	if len(executed) == 0 {
		return nil, errors.New("cascade produced no tier verdicts")
	}
	lastVerdict := executed[len(executed)-1]
	observeVote("cascade", lastVerdict.Status(), time.Since(start))
	return cascadeVerdict(lastVerdict, executed), nil
}

// voteTier runs one tier's jury, converting a panic into an error so a
// misbehaving tier is handled by the caller's escalation logic.
func (c *CascadedJury) voteTier(ctx context.Context, tier TierConfig, jc *judgment.Context) (v *Verdict, err error) {
	tr := otel.Tracer(tracerName)
	ctx, span := tr.Start(ctx, "jury.tier", oteltrace.WithAttributes(
		attribute.String("tier.name", tier.Name),
		attribute.String("tier.policy", string(tier.Policy)),
	))
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("tier %q panicked: %v", tier.Name, r)
		}
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	v, err = tier.Jury.Vote(ctx, jc)
	if err != nil {
		return nil, fmt.Errorf("tier %q: %w", tier.Name, err)
	}
	if v == nil {
		return nil, fmt.Errorf("tier %q returned no verdict", tier.Name)
	}
	return v, nil
}

// cascadeVerdict rebuilds the stopping tier's verdict with the accumulated
// tier trace attached.
func cascadeVerdict(stopping *Verdict, executed []*Verdict) *Verdict {
	return &Verdict{
		Aggregated:  stopping.Aggregated,
		Individual:  stopping.Individual,
		ByName:      stopping.ByName,
		SubVerdicts: executed,
	}
}
