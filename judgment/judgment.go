/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package judgment

import (
	"fmt"
	"strings"
)

// Status is the outcome category of a single judgment.
type Status string

const (
	// StatusPass means the judge found the artifact acceptable.
	StatusPass Status = "PASS"
	// StatusFail means the judge found the artifact unacceptable.
	// A FAIL is a legitimate business outcome, never an error.
	StatusFail Status = "FAIL"
	// StatusAbstain means the judge declined to render an opinion because
	// its preconditions were not met. Not equivalent to FAIL.
	StatusAbstain Status = "ABSTAIN"
	// StatusError means the judge's own execution failed unexpectedly.
	StatusError Status = "ERROR"
)

// Decisive reports whether the status expresses an actual opinion about the
// artifact. ABSTAIN and ERROR carry no opinion and are excluded from
// quorum-style aggregation.
func (s Status) Decisive() bool {
	return s == StatusPass || s == StatusFail
}

// Check is one named sub-assertion inside a Judgment, e.g. one per file or
// per build step.
type Check struct {
	// Name identifies the assertion (e.g., "exit-code", "pkg/foo/foo.go").
	Name string `json:"name"`
	// Detail explains the outcome in human-readable terms.
	Detail string `json:"detail,omitempty"`
	// Passed records whether the assertion held.
	Passed bool `json:"passed"`
}

// Judgment is the immutable output of one judge: an overall status, an
// optional score, free-text reasoning, named sub-checks, and opaque metadata.
type Judgment struct {
	// Status is the outcome category.
	Status Status `json:"status"`

	// Score quantifies the outcome. Nil when the judge reports status only.
	Score Score `json:"score,omitempty"`

	// Reasoning explains the judgment in human-readable terms.
	Reasoning string `json:"reasoning,omitempty"`

	// Checks are named sub-assertions, in the order the judge produced them.
	Checks []Check `json:"checks,omitempty"`

	// Metadata is an open key-value bag (e.g., stdout, exit codes, token
	// counts). Juries stamp the producing judge's name under MetaJudge.
	Metadata map[string]any `json:"metadata,omitempty"`
}

// MetaJudge is the metadata key under which juries record which judge
// produced a judgment.
const MetaJudge = "judge"

// MetaCause is the metadata key under which error judgments record the
// underlying failure.
const MetaCause = "cause"

// Pass returns a PASS judgment with the given reasoning.
func Pass(reasoning string) *Judgment {
	return &Judgment{Status: StatusPass, Reasoning: reasoning}
}

// Fail returns a FAIL judgment with the given reasoning.
func Fail(reasoning string) *Judgment {
	return &Judgment{Status: StatusFail, Reasoning: reasoning}
}

// Abstain returns an ABSTAIN judgment carrying only the reason the judge
// declined to opine.
func Abstain(reasoning string) *Judgment {
	return &Judgment{Status: StatusAbstain, Reasoning: reasoning}
}

// Errorf returns an ERROR judgment with a formatted description of the
// failure.
func Errorf(format string, args ...any) *Judgment {
	return &Judgment{Status: StatusError, Reasoning: fmt.Sprintf(format, args...)}
}

// FromError returns an ERROR judgment describing an unexpected failure,
// recording the cause under MetaCause.
func FromError(reasoning string, cause error) *Judgment {
	j := &Judgment{Status: StatusError, Reasoning: reasoning}
	if cause != nil {
		j.Metadata = map[string]any{MetaCause: cause.Error()}
	}
	return j
}

// JudgeName returns the name of the judge that produced this judgment, as
// stamped by the jury, or "" when unattributed.
func (j *Judgment) JudgeName() string {
	if j.Metadata == nil {
		return ""
	}
	name, _ := j.Metadata[MetaJudge].(string)
	return name
}

// String returns a one-line summary followed by any checks, e.g.
//
//	PASS (0.92 [0, 1]) - matches the reference behavior
//	  [x] exit-code: command exited 0
func (j *Judgment) String() string {
	var sb strings.Builder
	sb.WriteString(string(j.Status))
	if j.Score != nil {
		fmt.Fprintf(&sb, " (%s)", j.Score)
	}
	if j.Reasoning != "" {
		fmt.Fprintf(&sb, " - %s", j.Reasoning)
	}
	for _, c := range j.Checks {
		mark := " "
		if c.Passed {
			mark = "x"
		}
		fmt.Fprintf(&sb, "\n  [%s] %s", mark, c.Name)
		if c.Detail != "" {
			fmt.Fprintf(&sb, ": %s", c.Detail)
		}
	}
	return sb.String()
}
