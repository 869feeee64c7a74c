/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package report renders verdicts as markdown for PR comments, CI logs,
// and other human-facing surfaces.
//
// The top-level table summarizes every individual judgment; cascades
// additionally get one table per executed tier so reviewers can see
// where the case settled.
package report
