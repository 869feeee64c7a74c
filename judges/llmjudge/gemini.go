/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package llmjudge

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.5-flash"

// geminiResponseSchema constrains Gemini's structured JSON output to
// the Response shape.
var geminiResponseSchema = &genai.Schema{
	Type: "object",
	Properties: map[string]*genai.Schema{
		"score": {
			Type:        "number",
			Description: "The evaluation score from 0.0 to 1.0",
		},
		"reasoning": {
			Type:        "string",
			Description: "Explanation of the score",
		},
		"suggestions": {
			Type: "array",
			Items: &genai.Schema{
				Type:        "string",
				Description: "Improvement suggestions",
			},
		},
	},
	Required: []string{"score", "reasoning"},
}

// GeminiBackend completes prompts using Gemini via the Google genai SDK.
type GeminiBackend struct {
	client *genai.Client
	model  string
}

// GeminiOption configures a GeminiBackend.
type GeminiOption func(*GeminiBackend)

// WithGeminiModel overrides the model used for judgments.
func WithGeminiModel(model string) GeminiOption {
	return func(b *GeminiBackend) {
		b.model = model
	}
}

// NewGeminiBackend wraps a genai client as a judgment backend. The
// client carries authentication (API key or Vertex AI).
func NewGeminiBackend(client *genai.Client, opts ...GeminiOption) *GeminiBackend {
	b := &GeminiBackend{
		client: client,
		model:  defaultGeminiModel,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Name implements Backend.
func (b *GeminiBackend) Name() string { return "gemini" }

// Complete implements Backend.
func (b *GeminiBackend) Complete(ctx context.Context, prompt string) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature:      ptr(float32(judgmentTemperature)),
		MaxOutputTokens:  judgmentMaxTokens,
		ResponseMIMEType: "application/json",
		ResponseSchema:   geminiResponseSchema,
	}

	response, err := b.client.Models.GenerateContent(ctx, b.model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("failed to send message to model %q: %w", b.model, err)
	}

	if len(response.Candidates) == 0 || response.Candidates[0].Content == nil {
		return "", fmt.Errorf("model %q returned no candidates", b.model)
	}

	var sb strings.Builder
	for _, part := range response.Candidates[0].Content.Parts {
		if part.Thought {
			continue
		}
		sb.WriteString(part.Text)
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("model %q returned no text content", b.model)
	}
	return sb.String(), nil
}

// Retryable implements Backend. It classifies rate limit, quota
// exhaustion, and transient server errors.
func (b *GeminiBackend) Retryable(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "Resource exhausted") ||
		strings.Contains(errStr, "429") ||
		strings.Contains(errStr, "RESOURCE_EXHAUSTED") ||
		strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "Overloaded") ||
		strings.Contains(errStr, "503") ||
		strings.Contains(errStr, "quota exceeded") ||
		strings.Contains(errStr, "Internal error") ||
		strings.Contains(errStr, "server error")
}

func ptr[T any](v T) *T {
	return &v
}
