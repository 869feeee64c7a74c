/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package llmjudge

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
)

const (
	defaultClaudeModel = "claude-sonnet-4-5@20250929"

	// Lower temperature for consistent judgments.
	judgmentTemperature = 0.1

	judgmentMaxTokens = 8192
)

// ClaudeBackend completes prompts using Claude via the Anthropic SDK.
type ClaudeBackend struct {
	client anthropic.Client
	model  string
}

// ClaudeOption configures a ClaudeBackend.
type ClaudeOption func(*ClaudeBackend)

// WithClaudeModel overrides the model used for judgments.
func WithClaudeModel(model string) ClaudeOption {
	return func(b *ClaudeBackend) {
		b.model = model
	}
}

// NewClaudeBackend wraps an Anthropic client as a judgment backend. The
// client carries authentication (API key or Vertex AI).
func NewClaudeBackend(client anthropic.Client, opts ...ClaudeOption) *ClaudeBackend {
	b := &ClaudeBackend{
		client: client,
		model:  defaultClaudeModel,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Name implements Backend.
func (b *ClaudeBackend) Name() string { return "claude" }

// Complete implements Backend.
func (b *ClaudeBackend) Complete(ctx context.Context, prompt string) (string, error) {
	message, err := b.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(b.model),
		MaxTokens:   judgmentMaxTokens,
		Temperature: anthropic.Float(judgmentTemperature),
		Messages: []anthropic.MessageParam{{
			Role: anthropic.MessageParamRoleUser,
			Content: []anthropic.ContentBlockParamUnion{
				anthropic.NewTextBlock(prompt),
			},
		}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to send message to model %q: %w", b.model, err)
	}

	var sb strings.Builder
	for _, content := range message.Content {
		if content.Type == "text" {
			sb.WriteString(content.Text)
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("model %q returned no text content", b.model)
	}
	return sb.String(), nil
}

// Retryable implements Backend. It classifies Anthropic API errors that
// indicate a transient condition.
func (b *ClaudeBackend) Retryable(err error) bool {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case 429, // Rate limit exceeded
			503, // Service unavailable
			504, // Gateway timeout
			529: // Overloaded
			return true
		}
	}
	return false
}
