/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package config

import (
	"context"
	"fmt"
	"time"

	"chainguard.dev/agentjury/retry"
	"github.com/sethvargo/go-envconfig"
)

// Settings carries environment-driven defaults for judge construction.
type Settings struct {
	// JuryConfigPath points at the YAML jury definition.
	JuryConfigPath string `env:"JURY_CONFIG,default=jury.yaml"`

	// GCPProjectID and GCPRegion configure Vertex AI backends.
	GCPProjectID string `env:"GCP_PROJECT_ID"`
	GCPRegion    string `env:"GCP_REGION,default=us-central1"`

	// Model overrides per backend.
	ClaudeModel string `env:"CLAUDE_MODEL,default=claude-sonnet-4-5@20250929"`
	GeminiModel string `env:"GEMINI_MODEL,default=gemini-2.5-flash"`
	OpenAIModel string `env:"OPENAI_MODEL,default=gpt-4o"`

	// Retry backoff for LLM judge calls.
	RetryMaxAttempts int           `env:"RETRY_MAX_ATTEMPTS,default=5"`
	RetryBaseBackoff time.Duration `env:"RETRY_BASE_BACKOFF,default=1s"`
	RetryMaxBackoff  time.Duration `env:"RETRY_MAX_BACKOFF,default=1m"`
	RetryMaxJitter   time.Duration `env:"RETRY_MAX_JITTER,default=500ms"`

	// CommandTimeout bounds command judge execution.
	CommandTimeout time.Duration `env:"COMMAND_TIMEOUT,default=2m"`
}

// ProcessEnv loads Settings from the environment.
func ProcessEnv(ctx context.Context) (*Settings, error) {
	var s Settings
	if err := envconfig.Process(ctx, &s); err != nil {
		return nil, fmt.Errorf("processing config: %w", err)
	}
	if err := s.RetryConfig().Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// RetryConfig converts the retry settings into a retry.Config.
func (s *Settings) RetryConfig() retry.Config {
	return retry.Config{
		MaxAttempts: s.RetryMaxAttempts,
		BaseBackoff: s.RetryBaseBackoff,
		MaxBackoff:  s.RetryMaxBackoff,
		MaxJitter:   s.RetryMaxJitter,
	}
}
