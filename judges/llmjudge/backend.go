/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package llmjudge

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// Backend is a minimal completion interface over an LLM provider.
type Backend interface {
	// Name identifies the backend provider (e.g. "claude", "gemini").
	Name() string

	// Complete sends the prompt and returns the model's text response.
	Complete(ctx context.Context, prompt string) (string, error)

	// Retryable reports whether the given error is transient and the
	// call should be retried with backoff.
	Retryable(err error) bool
}

// Response is the structured judgment the model is asked to produce.
type Response struct {
	// Score is the evaluation score from 0.0 (awful) to 1.0 (ideal).
	Score float64 `json:"score" jsonschema:"description=The evaluation score from 0.0 to 1.0,required"`

	// Reasoning explains the score.
	Reasoning string `json:"reasoning" jsonschema:"description=Explanation of the score,required"`

	// Suggestions provides improvement recommendations. Empty for
	// perfect scores.
	Suggestions []string `json:"suggestions" jsonschema:"description=Improvement suggestions"`
}

// responseSchemaJSON renders the JSON schema for Response, embedded in
// prompts so the model knows the exact shape to produce.
func responseSchemaJSON() (string, error) {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
		DoNotReference:             true,
	}
	schema := reflector.Reflect(&Response{})
	raw, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal response schema: %w", err)
	}
	return string(raw), nil
}
