/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package llmjudge_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"chainguard.dev/agentjury/judges/llmjudge"
	"chainguard.dev/agentjury/judgment"
	"chainguard.dev/agentjury/retry"
)

// fakeBackend replays scripted completions and records the prompts it
// receives.
type fakeBackend struct {
	replies []reply
	prompts []string
}

type reply struct {
	text string
	err  error
}

func (f *fakeBackend) Name() string { return "fake" }

func (f *fakeBackend) Complete(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if len(f.replies) == 0 {
		return "", errors.New("no scripted reply")
	}
	r := f.replies[0]
	f.replies = f.replies[1:]
	return r.text, r.err
}

func (f *fakeBackend) Retryable(err error) bool {
	var transient *transientError
	return errors.As(err, &transient)
}

type transientError struct{}

func (*transientError) Error() string { return "rate limited" }

func scripted(replies ...reply) *fakeBackend {
	return &fakeBackend{replies: replies}
}

func fastRetry() retry.Config {
	return retry.Config{
		MaxAttempts: 3,
		BaseBackoff: time.Millisecond,
		MaxBackoff:  5 * time.Millisecond,
	}
}

func testContext() *judgment.Context {
	return &judgment.Context{
		Goal:        "Write a haiku about Go",
		AgentOutput: "Goroutines take flight\nchannels murmur in the dark\nselect finds the way",
		Status:      judgment.ExecutionSucceeded,
	}
}

func TestNewValidation(t *testing.T) {
	backend := scripted()
	tests := []struct {
		name      string
		judgeName string
		criterion string
		backend   llmjudge.Backend
		opts      []llmjudge.Option
		wantErr   bool
	}{{
		name:      "valid",
		judgeName: "haiku",
		criterion: "The output is a well-formed haiku.",
		backend:   backend,
	}, {
		name:      "empty name",
		judgeName: "",
		criterion: "The output is a well-formed haiku.",
		backend:   backend,
		wantErr:   true,
	}, {
		name:      "empty criterion",
		judgeName: "haiku",
		criterion: "   ",
		backend:   backend,
		wantErr:   true,
	}, {
		name:      "nil backend",
		judgeName: "haiku",
		criterion: "The output is a well-formed haiku.",
		backend:   nil,
		wantErr:   true,
	}, {
		name:      "threshold too high",
		judgeName: "haiku",
		criterion: "The output is a well-formed haiku.",
		backend:   backend,
		opts:      []llmjudge.Option{llmjudge.WithThreshold(1.5)},
		wantErr:   true,
	}, {
		name:      "threshold zero",
		judgeName: "haiku",
		criterion: "The output is a well-formed haiku.",
		backend:   backend,
		opts:      []llmjudge.Option{llmjudge.WithThreshold(0)},
		wantErr:   true,
	}, {
		name:      "invalid retry config",
		judgeName: "haiku",
		criterion: "The output is a well-formed haiku.",
		backend:   backend,
		opts:      []llmjudge.Option{llmjudge.WithRetryConfig(retry.Config{})},
		wantErr:   true,
	}}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := llmjudge.New(test.judgeName, test.criterion, test.backend, test.opts...)
			if gotErr := err != nil; gotErr != test.wantErr {
				t.Errorf("New() error = %v, wanted error = %t", err, test.wantErr)
			}
		})
	}
}

func TestEvaluateScoresAgainstThreshold(t *testing.T) {
	tests := []struct {
		name       string
		response   string
		threshold  float64
		wantStatus judgment.Status
		wantScore  float64
	}{{
		name:       "score above threshold passes",
		response:   "```json\n" + `{"score": 0.9, "reasoning": "Well-formed haiku.", "suggestions": []}` + "\n```",
		threshold:  0.7,
		wantStatus: judgment.StatusPass,
		wantScore:  0.9,
	}, {
		name:       "score at threshold passes",
		response:   `{"score": 0.7, "reasoning": "Meets the bar exactly."}`,
		threshold:  0.7,
		wantStatus: judgment.StatusPass,
		wantScore:  0.7,
	}, {
		name:       "score below threshold fails",
		response:   `{"score": 0.4, "reasoning": "Syllable count is off.", "suggestions": ["fix the second line"]}`,
		threshold:  0.7,
		wantStatus: judgment.StatusFail,
		wantScore:  0.4,
	}, {
		name:       "default threshold applies",
		response:   `{"score": 0.45, "reasoning": "Barely misses."}`,
		threshold:  0,
		wantStatus: judgment.StatusFail,
		wantScore:  0.45,
	}}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			opts := []llmjudge.Option{llmjudge.WithRetryConfig(fastRetry())}
			if test.threshold > 0 {
				opts = append(opts, llmjudge.WithThreshold(test.threshold))
			}
			j, err := llmjudge.New("haiku", "The output is a well-formed haiku.", scripted(reply{text: test.response}), opts...)
			if err != nil {
				t.Fatalf("New() = %v", err)
			}

			result, err := j.Evaluate(t.Context(), testContext())
			if err != nil {
				t.Fatalf("Evaluate() = %v", err)
			}
			if result.Status != test.wantStatus {
				t.Errorf("Status = %v, wanted %v", result.Status, test.wantStatus)
			}
			score, ok := result.Score.(judgment.NumericalScore)
			if !ok {
				t.Fatalf("Score type = %T, wanted NumericalScore", result.Score)
			}
			if score.Val != test.wantScore {
				t.Errorf("Score = %v, wanted %v", score.Val, test.wantScore)
			}
			if result.Metadata["backend"] != "fake" {
				t.Errorf("Metadata[backend] = %v, wanted fake", result.Metadata["backend"])
			}
		})
	}
}

func TestEvaluateSuggestionsBecomeChecks(t *testing.T) {
	j, err := llmjudge.New("haiku", "The output is a well-formed haiku.",
		scripted(reply{text: `{"score": 0.5, "reasoning": "Partial.", "suggestions": ["count syllables", "add a season word"]}`}),
		llmjudge.WithRetryConfig(fastRetry()))
	if err != nil {
		t.Fatalf("New() = %v", err)
	}

	result, err := j.Evaluate(t.Context(), testContext())
	if err != nil {
		t.Fatalf("Evaluate() = %v", err)
	}
	if len(result.Checks) != 2 {
		t.Fatalf("len(Checks) = %d, wanted 2", len(result.Checks))
	}
	if result.Checks[0].Detail != "count syllables" {
		t.Errorf("Checks[0].Detail = %q, wanted %q", result.Checks[0].Detail, "count syllables")
	}
	if result.Checks[1].Passed {
		t.Error("suggestion checks should not be marked passed")
	}
}

func TestEvaluateAbstainsWithoutOutput(t *testing.T) {
	backend := scripted()
	j, err := llmjudge.New("haiku", "The output is a well-formed haiku.", backend)
	if err != nil {
		t.Fatalf("New() = %v", err)
	}

	result, err := j.Evaluate(t.Context(), &judgment.Context{Goal: "Write a haiku"})
	if err != nil {
		t.Fatalf("Evaluate() = %v", err)
	}
	if result.Status != judgment.StatusAbstain {
		t.Errorf("Status = %v, wanted %v", result.Status, judgment.StatusAbstain)
	}
	if len(backend.prompts) != 0 {
		t.Errorf("backend received %d prompts, wanted 0", len(backend.prompts))
	}
}

func TestEvaluatePromptContents(t *testing.T) {
	backend := scripted(reply{text: `{"score": 1.0, "reasoning": "Perfect."}`})
	j, err := llmjudge.New("haiku", "The output is a well-formed haiku.", backend,
		llmjudge.WithRetryConfig(fastRetry()))
	if err != nil {
		t.Fatalf("New() = %v", err)
	}

	ec := testContext()
	ec.Metadata = map[string]any{
		llmjudge.MetaReferenceAnswer: "An old silent pond\na frog jumps into the pond\nsplash! silence again",
	}
	if _, err := j.Evaluate(t.Context(), ec); err != nil {
		t.Fatalf("Evaluate() = %v", err)
	}

	if len(backend.prompts) != 1 {
		t.Fatalf("backend received %d prompts, wanted 1", len(backend.prompts))
	}
	prompt := backend.prompts[0]
	for _, want := range []string{
		"<goal>\nWrite a haiku about Go\n</goal>",
		"<agent_output>",
		"<criterion>\nThe output is a well-formed haiku.\n</criterion>",
		"<reference_answer>",
		"An old silent pond",
		"SCORING RUBRIC",
		`"score"`,
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestEvaluateRetriesTransientErrors(t *testing.T) {
	backend := scripted(
		reply{err: &transientError{}},
		reply{err: &transientError{}},
		reply{text: `{"score": 0.8, "reasoning": "Recovered."}`},
	)
	j, err := llmjudge.New("haiku", "The output is a well-formed haiku.", backend,
		llmjudge.WithRetryConfig(fastRetry()))
	if err != nil {
		t.Fatalf("New() = %v", err)
	}

	result, err := j.Evaluate(t.Context(), testContext())
	if err != nil {
		t.Fatalf("Evaluate() = %v", err)
	}
	if result.Status != judgment.StatusPass {
		t.Errorf("Status = %v, wanted %v", result.Status, judgment.StatusPass)
	}
	if len(backend.prompts) != 3 {
		t.Errorf("backend received %d calls, wanted 3", len(backend.prompts))
	}
}

func TestEvaluateReturnsErrorWhenBackendFails(t *testing.T) {
	permanent := errors.New("invalid credentials")
	backend := scripted(reply{err: permanent})
	j, err := llmjudge.New("haiku", "The output is a well-formed haiku.", backend,
		llmjudge.WithRetryConfig(fastRetry()))
	if err != nil {
		t.Fatalf("New() = %v", err)
	}

	if _, err := j.Evaluate(t.Context(), testContext()); !errors.Is(err, permanent) {
		t.Errorf("Evaluate() error = %v, wanted %v", err, permanent)
	}
	if len(backend.prompts) != 1 {
		t.Errorf("backend received %d calls, wanted 1 (no retry on permanent errors)", len(backend.prompts))
	}
}

func TestEvaluateUnparseableResponse(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{{
		name:     "not JSON",
		response: "I think it's pretty good!",
	}, {
		name:     "score out of range",
		response: `{"score": 7, "reasoning": "Scored on a ten-point scale."}`,
	}, {
		name:     "missing reasoning",
		response: `{"score": 0.9}`,
	}}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			j, err := llmjudge.New("haiku", "The output is a well-formed haiku.",
				scripted(reply{text: test.response}), llmjudge.WithRetryConfig(fastRetry()))
			if err != nil {
				t.Fatalf("New() = %v", err)
			}

			result, err := j.Evaluate(t.Context(), testContext())
			if err != nil {
				t.Fatalf("Evaluate() = %v", err)
			}
			if result.Status != judgment.StatusError {
				t.Errorf("Status = %v, wanted %v", result.Status, judgment.StatusError)
			}
			if result.Metadata[judgment.MetaCause] == nil {
				t.Error("error judgment missing cause metadata")
			}
		})
	}
}
