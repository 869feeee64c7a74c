/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package commandjudge judges an agent's workspace by running a shell
// command in it and comparing the exit code against an expectation.
//
// This is the workhorse of deterministic cascade tiers: build commands, test
// suites, linters, and custom verification scripts all reduce to "run this
// and expect exit 0". The judgment records stdout, stderr, and the exit code
// in metadata for diagnosis, and abstains when the context has no workspace
// to run in.
//
//	build, err := commandjudge.New("build", "go build ./...",
//		commandjudge.WithTimeout(5*time.Minute))
//
// A command that exceeds its timeout resolves to a FAIL judgment rather than
// hanging or erroring, so a cascade can still proceed past it.
package commandjudge
