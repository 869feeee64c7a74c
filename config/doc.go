/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package config declaratively assembles juries from YAML.
//
// # Overview
//
// A Config names judges (registered in code) and arranges them into one
// or more tiers. A single tier with no escalation policy builds a flat
// jury; multiple tiers build a cascade. Environment defaults for models
// and retry behavior load via Settings.
//
// # Example
//
//	name: release-gate
//	tiers:
//	  - name: sanity
//	    strategy: consensus
//	    policy: reject_on_any_fail
//	    parallel: true
//	    judges: [build, lint]
//	  - name: semantic
//	    strategy: weighted
//	    policy: final_tier
//	    threshold: 0.6
//	    weights:
//	      correctness: 2.0
//	    judges: [correctness, style]
//
//	cfg, err := config.LoadFile("jury.yaml")
//	...
//	j, err := cfg.Build(registry)
package config
