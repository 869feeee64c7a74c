/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package config

import (
	"fmt"

	"chainguard.dev/agentjury/jury"
)

// Registry resolves judge names referenced in configuration to judge
// implementations registered in code.
type Registry map[string]jury.Judge

// Register adds a judge under its own name. It returns an error when
// the name is already taken.
func (r Registry) Register(j jury.Judge) error {
	if j == nil {
		return fmt.Errorf("cannot register a nil judge")
	}
	name := j.Name()
	if _, ok := r[name]; ok {
		return fmt.Errorf("judge %q is already registered", name)
	}
	r[name] = j
	return nil
}

// Build assembles the configured jury, resolving judge names against
// the registry. A single tier without a policy yields a flat jury;
// anything else yields a cascade.
func (c *Config) Build(registry Registry) (jury.Jury, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if len(c.Tiers) == 1 && c.Tiers[0].Policy == "" {
		return c.buildTier(c.Tiers[0], c.Name, registry)
	}

	tiers := make([]jury.TierConfig, 0, len(c.Tiers))
	for _, tier := range c.Tiers {
		member, err := c.buildTier(tier, tier.Name, registry)
		if err != nil {
			return nil, err
		}
		tiers = append(tiers, jury.TierConfig{
			Name:   tier.Name,
			Jury:   member,
			Policy: jury.TierPolicy(tier.Policy),
		})
	}
	return jury.NewCascadedJury(tiers...)
}

func (c *Config) buildTier(tier Tier, name string, registry Registry) (*jury.SimpleJury, error) {
	judges := make([]jury.Judge, 0, len(tier.Judges))
	for _, judgeName := range tier.Judges {
		j, ok := registry[judgeName]
		if !ok {
			return nil, fmt.Errorf("tier %q references unregistered judge %q", tier.Name, judgeName)
		}
		judges = append(judges, j)
	}

	strategy, err := buildStrategy(tier)
	if err != nil {
		return nil, err
	}

	opts := []jury.SimpleJuryOption{
		jury.WithName(name),
		jury.WithParallel(tier.Parallel),
	}
	if tier.MaxConcurrency > 0 {
		opts = append(opts, jury.WithMaxConcurrency(tier.MaxConcurrency))
	}
	return jury.NewSimpleJury(strategy, judges, opts...)
}

func buildStrategy(tier Tier) (jury.VotingStrategy, error) {
	switch tier.Strategy {
	case "", StrategyMajority:
		return &jury.MajorityStrategy{}, nil
	case StrategyConsensus:
		return &jury.ConsensusStrategy{}, nil
	case StrategyWeighted:
		return jury.NewWeightedStrategy(tier.Weights, tier.Threshold)
	default:
		return nil, fmt.Errorf("unknown strategy %q", tier.Strategy)
	}
}
