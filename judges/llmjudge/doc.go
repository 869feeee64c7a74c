/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package llmjudge evaluates agent output with a large language model.
//
// # Overview
//
// A Judge sends the evaluation context and a natural-language criterion
// to an LLM backend and parses the model's structured response into a
// judgment. The model returns a score between 0.0 and 1.0 along with
// reasoning and improvement suggestions; the judge maps the score onto
// a pass/fail status using a configurable threshold.
//
// # Backends
//
// Three backends are provided: Claude (Anthropic SDK), Gemini (Google
// genai SDK), and OpenAI. Each backend classifies its own transient
// errors so that calls are retried with exponential backoff. Custom
// backends implement the Backend interface.
//
// # Example
//
//	client := anthropic.NewClient(vertex.WithGoogleAuth(ctx, region, project))
//	backend := llmjudge.NewClaudeBackend(client)
//	j, err := llmjudge.New("correctness", "The output answers the stated goal accurately.", backend)
//	if err != nil {
//		return err
//	}
//	result, err := j.Evaluate(ctx, ec)
package llmjudge
