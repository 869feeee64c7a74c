/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package judgment

import "time"

// ExecutionStatus describes how the agent run that produced the artifact ended.
type ExecutionStatus string

const (
	// ExecutionSucceeded means the agent process completed normally.
	ExecutionSucceeded ExecutionStatus = "succeeded"
	// ExecutionFailed means the agent process exited with an error.
	ExecutionFailed ExecutionStatus = "failed"
	// ExecutionTimedOut means the agent process was terminated for exceeding its deadline.
	ExecutionTimedOut ExecutionStatus = "timed_out"
	// ExecutionUnknown means the caller could not determine how the run ended.
	ExecutionUnknown ExecutionStatus = "unknown"
)

// Context carries everything a judge may inspect about one agent execution.
//
// It is constructed once by the caller, shared by pointer across all judges
// evaluating the same case, and discarded after voting completes. Judges must
// not mutate it, including the Metadata map.
type Context struct {
	// Goal is the task description the agent was given.
	Goal string `json:"goal"`

	// Workspace is the directory the agent worked in.
	Workspace string `json:"workspace,omitempty"`

	// AgentOutput is the raw text the agent produced.
	AgentOutput string `json:"agent_output,omitempty"`

	// Status records how the agent run ended.
	Status ExecutionStatus `json:"status"`

	// StartedAt is when the agent run began.
	StartedAt time.Time `json:"started_at,omitzero"`

	// Duration is how long the agent run took.
	Duration time.Duration `json:"duration,omitempty"`

	// Metadata is an open key-value bag for judge-specific inputs
	// (e.g., a reference answer, coverage baselines). Read-only.
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Meta returns the metadata value for key, reporting whether it was present.
// It is safe to call on a Context with a nil Metadata map.
func (c *Context) Meta(key string) (any, bool) {
	if c == nil || c.Metadata == nil {
		return nil, false
	}
	v, ok := c.Metadata[key]
	return v, ok
}

// MetaString returns the metadata value for key as a string, or "" if the key
// is absent or holds a non-string value.
func (c *Context) MetaString(key string) string {
	v, ok := c.Meta(key)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}
