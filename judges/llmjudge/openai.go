/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package llmjudge

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go"
)

const defaultOpenAIModel = openai.ChatModelGPT4o

// OpenAIBackend completes prompts using the OpenAI chat completions API.
type OpenAIBackend struct {
	client openai.Client
	model  openai.ChatModel
}

// OpenAIOption configures an OpenAIBackend.
type OpenAIOption func(*OpenAIBackend)

// WithOpenAIModel overrides the model used for judgments.
func WithOpenAIModel(model openai.ChatModel) OpenAIOption {
	return func(b *OpenAIBackend) {
		b.model = model
	}
}

// NewOpenAIBackend wraps an OpenAI client as a judgment backend.
func NewOpenAIBackend(client openai.Client, opts ...OpenAIOption) *OpenAIBackend {
	b := &OpenAIBackend{
		client: client,
		model:  defaultOpenAIModel,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Name implements Backend.
func (b *OpenAIBackend) Name() string { return "openai" }

// Complete implements Backend.
func (b *OpenAIBackend) Complete(ctx context.Context, prompt string) (string, error) {
	completion, err := b.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:               b.model,
		Temperature:         openai.Float(judgmentTemperature),
		MaxCompletionTokens: openai.Int(judgmentMaxTokens),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to send message to model %q: %w", b.model, err)
	}

	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("model %q returned no choices", b.model)
	}
	content := completion.Choices[0].Message.Content
	if content == "" {
		return "", fmt.Errorf("model %q returned no text content", b.model)
	}
	return content, nil
}

// Retryable implements Backend. It classifies OpenAI API errors that
// indicate a transient condition.
func (b *OpenAIBackend) Retryable(err error) bool {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case 429, // Rate limit exceeded
			500, // Internal server error
			502, // Bad gateway
			503, // Service unavailable
			504: // Gateway timeout
			return true
		}
	}
	return false
}
