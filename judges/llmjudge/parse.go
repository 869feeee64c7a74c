/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package llmjudge

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// extractJSON extracts JSON content from a model response that may wrap
// it in markdown code blocks. It looks for content between ```json and
// ``` markers, or returns the input trimmed if no markers are found.
func extractJSON(responseText string) string {
	// Search for the first ```json fence on its own line and collect
	// content until the closing ```.
	lines := strings.Split(responseText, "\n")
	var jsonBuffer bytes.Buffer
	inJSONBlock := false
	foundJSON := false

	for _, line := range lines {
		if !inJSONBlock && line == "```json" {
			inJSONBlock = true
			foundJSON = true
			continue
		}

		if inJSONBlock && line == "```" {
			break
		}

		if inJSONBlock {
			if jsonBuffer.Len() > 0 {
				jsonBuffer.WriteString("\n")
			}
			jsonBuffer.WriteString(line)
		}
	}

	if foundJSON {
		return strings.TrimSpace(jsonBuffer.String())
	}

	// Fallback: some models wrap the whole response in a fence without
	// putting the markers on their own lines.
	responseText = strings.TrimSpace(responseText)
	if strings.HasPrefix(responseText, "```json") && strings.HasSuffix(responseText, "```") {
		responseText = strings.TrimPrefix(responseText, "```json")
		responseText = strings.TrimSuffix(responseText, "```")
		return strings.TrimSpace(responseText)
	}

	// These do nothing if the markers aren't there, so always do it.
	responseText = strings.TrimPrefix(responseText, "```")
	responseText = strings.TrimSuffix(responseText, "```")
	return strings.TrimSpace(responseText)
}

// parseResponse extracts and validates the model's structured judgment.
func parseResponse(responseText string) (*Response, error) {
	raw := extractJSON(responseText)
	if raw == "" {
		return nil, fmt.Errorf("model response contained no JSON")
	}

	var resp Response
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return nil, fmt.Errorf("failed to parse model response: %w", err)
	}

	if resp.Score < 0 || resp.Score > 1 {
		return nil, fmt.Errorf("model returned score %v outside [0.0, 1.0]", resp.Score)
	}
	if strings.TrimSpace(resp.Reasoning) == "" {
		return nil, fmt.Errorf("model returned no reasoning")
	}
	return &resp, nil
}
