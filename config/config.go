/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Strategy names accepted in tier configuration.
const (
	StrategyMajority  = "majority"
	StrategyConsensus = "consensus"
	StrategyWeighted  = "weighted"
)

// Tier describes one jury in a cascade.
type Tier struct {
	// Name identifies the tier in verdicts and logs.
	Name string `yaml:"name"`

	// Judges lists registered judge names empaneled in this tier.
	Judges []string `yaml:"judges"`

	// Strategy selects the voting strategy: majority (default),
	// consensus, or weighted.
	Strategy string `yaml:"strategy,omitempty"`

	// Policy is the escalation policy (reject_on_any_fail,
	// accept_on_all_pass, final_tier). Optional for a single-tier
	// configuration, required in a cascade.
	Policy string `yaml:"policy,omitempty"`

	// Parallel enables concurrent judge evaluation.
	Parallel bool `yaml:"parallel,omitempty"`

	// MaxConcurrency bounds concurrent evaluations when Parallel is
	// set. Zero means unbounded.
	MaxConcurrency int `yaml:"max_concurrency,omitempty"`

	// Threshold is the weighted-strategy pass threshold. Zero selects
	// the default.
	Threshold float64 `yaml:"threshold,omitempty"`

	// Weights maps judge names to vote weights for the weighted
	// strategy. Unlisted judges weigh 1.0.
	Weights map[string]float64 `yaml:"weights,omitempty"`
}

// Config is a declarative jury definition.
type Config struct {
	// Name identifies the assembled jury.
	Name string `yaml:"name"`

	// Tiers are evaluated in order. A single tier without a policy
	// builds a flat jury rather than a cascade.
	Tiers []Tier `yaml:"tiers"`
}

// Load parses and validates a YAML jury definition.
func Load(raw []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse jury config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFile reads and parses a YAML jury definition from disk.
func LoadFile(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read jury config: %w", err)
	}
	return Load(raw)
}

// Validate checks structural constraints that do not require a judge
// registry. Build performs the registry-dependent checks.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("jury config requires a name")
	}
	if len(c.Tiers) == 0 {
		return fmt.Errorf("jury config %q has no tiers", c.Name)
	}

	seen := make(map[string]bool, len(c.Tiers))
	for i, tier := range c.Tiers {
		if strings.TrimSpace(tier.Name) == "" {
			return fmt.Errorf("tier %d has no name", i)
		}
		if seen[tier.Name] {
			return fmt.Errorf("duplicate tier name %q", tier.Name)
		}
		seen[tier.Name] = true

		if len(tier.Judges) == 0 {
			return fmt.Errorf("tier %q has no judges", tier.Name)
		}
		switch tier.Strategy {
		case "", StrategyMajority, StrategyConsensus, StrategyWeighted:
		default:
			return fmt.Errorf("tier %q has unknown strategy %q", tier.Name, tier.Strategy)
		}
		if tier.Strategy != StrategyWeighted && (tier.Threshold != 0 || len(tier.Weights) > 0) {
			return fmt.Errorf("tier %q sets weighted options but uses strategy %q", tier.Name, tier.Strategy)
		}
		// Cascades require an explicit policy on every tier; the jury
		// package validates policy values and ordering.
		if len(c.Tiers) > 1 && tier.Policy == "" {
			return fmt.Errorf("tier %q needs a policy in a multi-tier config", tier.Name)
		}
	}
	return nil
}
