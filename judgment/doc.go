/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package judgment defines the value types exchanged between judges and juries.
//
// A Context describes one agent execution to be evaluated: what the agent was
// asked to do, where it worked, what it printed, and how the run ended. A
// Judgment is one judge's immutable opinion about that execution: a Status,
// an optional Score, human-readable reasoning, and zero or more named Checks
// for diagnostic granularity.
//
// # Status semantics
//
// PASS and FAIL are legitimate business outcomes. ABSTAIN means the judge
// declined to render an opinion because its preconditions were not met (for
// example, missing metadata); it is never a failure signal and aggregation
// logic must not treat it as one. ERROR means the judge's own execution
// failed unexpectedly — distinct from a negative verdict about the artifact.
//
// # Immutability
//
// A Context is constructed once per evaluation request and shared by pointer
// across every judge evaluating the same case. Judges must treat it as
// read-only. Judgments are pure values with no identity beyond their
// contents; they are created fresh on every evaluation and never mutated
// after construction.
package judgment
