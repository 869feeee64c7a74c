/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package llmjudge

import (
	"context"
	"fmt"
	"strings"

	"chainguard.dev/agentjury/judgment"
	"chainguard.dev/agentjury/retry"
	"github.com/chainguard-dev/clog"
)

// DefaultThreshold is the minimum score considered a pass when no
// threshold option is provided.
const DefaultThreshold = 0.5

// Judge evaluates agent output by asking an LLM backend to score it
// against a criterion.
type Judge struct {
	name      string
	criterion string
	backend   Backend
	threshold float64
	retryCfg  retry.Config
}

// Option configures a Judge.
type Option func(*Judge) error

// WithThreshold sets the minimum score for a PASS judgment. Scores at
// or above the threshold pass. Must be in (0.0, 1.0].
func WithThreshold(threshold float64) Option {
	return func(j *Judge) error {
		if threshold <= 0 || threshold > 1 {
			return fmt.Errorf("threshold must be in (0.0, 1.0], got %v", threshold)
		}
		j.threshold = threshold
		return nil
	}
}

// WithRetryConfig overrides the backoff configuration used for backend
// calls.
func WithRetryConfig(cfg retry.Config) Option {
	return func(j *Judge) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		j.retryCfg = cfg
		return nil
	}
}

// New creates an LLM judge that scores agent output against the given
// criterion.
func New(name, criterion string, backend Backend, opts ...Option) (*Judge, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("judge name must not be empty")
	}
	if strings.TrimSpace(criterion) == "" {
		return nil, fmt.Errorf("criterion must not be empty")
	}
	if backend == nil {
		return nil, fmt.Errorf("backend must not be nil")
	}

	j := &Judge{
		name:      name,
		criterion: criterion,
		backend:   backend,
		threshold: DefaultThreshold,
		retryCfg:  retry.DefaultConfig(),
	}
	for _, opt := range opts {
		if err := opt(j); err != nil {
			return nil, err
		}
	}
	return j, nil
}

// Name implements jury.Judge.
func (j *Judge) Name() string { return j.name }

// Evaluate sends the evaluation context to the backend and converts the
// model's scored response into a judgment. Transport failures after
// retries are returned as errors; a judgment is produced only when the
// model responded with a parseable score.
func (j *Judge) Evaluate(ctx context.Context, ec *judgment.Context) (*judgment.Judgment, error) {
	log := clog.FromContext(ctx).With("judge", j.name, "backend", j.backend.Name())

	if strings.TrimSpace(ec.AgentOutput) == "" {
		log.Info("No agent output to evaluate, abstaining")
		return j.annotate(judgment.Abstain("no agent output to evaluate")), nil
	}

	prompt, err := buildPrompt(j.criterion, ec)
	if err != nil {
		return nil, err
	}

	responseText, err := retry.Do(ctx, j.retryCfg, fmt.Sprintf("%s completion", j.backend.Name()),
		j.backend.Retryable, func(ctx context.Context) (string, error) {
			return j.backend.Complete(ctx, prompt)
		})
	if err != nil {
		return nil, err
	}

	resp, err := parseResponse(responseText)
	if err != nil {
		log.With("error", err).Warn("Model produced an unparseable judgment")
		return j.annotate(judgment.FromError("model produced an unparseable judgment", err)), nil
	}

	result := &judgment.Judgment{
		Status:    judgment.StatusFail,
		Score:     judgment.NewBoundedScore(resp.Score, 0, 1),
		Reasoning: resp.Reasoning,
	}
	if resp.Score >= j.threshold {
		result.Status = judgment.StatusPass
	}
	for _, s := range resp.Suggestions {
		result.Checks = append(result.Checks, judgment.Check{
			Name:   "suggestion",
			Detail: s,
			Passed: false,
		})
	}

	log.With("score", resp.Score, "status", result.Status).Info("Judgment complete")
	return j.annotate(result), nil
}

// annotate records the backend and criterion on the judgment metadata.
func (j *Judge) annotate(result *judgment.Judgment) *judgment.Judgment {
	if result.Metadata == nil {
		result.Metadata = map[string]any{}
	}
	result.Metadata["backend"] = j.backend.Name()
	result.Metadata["criterion"] = j.criterion
	return result
}
