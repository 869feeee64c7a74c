/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package llmjudge

import (
	"fmt"
	"strings"

	"chainguard.dev/agentjury/judgment"
)

// MetaReferenceAnswer is the context metadata key under which callers
// may supply a golden answer. When present the model is asked to grade
// the agent output against it rather than judge it standalone.
const MetaReferenceAnswer = "reference_answer"

const promptHeader = `<task>
You are evaluating the output an AI agent produced for a task.
Score the output against the specific criterion provided.
</task>`

const promptRubric = `<instructions>
1. Read the goal and the agent output carefully
2. Evaluate specifically for the given criterion
3. Provide a score from 0.0 to 1.0 using this scoring rubric:

SCORING RUBRIC:
- Score 1.0 (Perfect): Output fully satisfies the criterion. Minor wording or stylistic variations that do not affect meaning or quality should score 1.0, not be penalized. Suggestions MUST be an empty array.
- Score 0.75-0.99 (High Quality): Output meets the criterion well with minor variations that prevent perfection. Provide the specific minor improvements that justify why the score is less than 1.0.
- Score 0.50-0.74 (Adequate): Output partially meets the criterion with notable gaps. Explain what prevents a higher score and suggest improvements addressing the gaps.
- Score 0.25-0.49 (Poor): Output has significant problems but contains some correct elements. Identify the major issues and provide multiple specific improvements.
- Score 0.0-0.24 (Failing): Output fails to meet the criterion or contains major errors. Explain the fundamental failures and what needs complete correction.

4. Explain your reasoning and provide suggestions following the guidelines above
</instructions>`

// buildPrompt assembles the judgment prompt from the evaluation context
// and criterion. The response schema is embedded so the model produces
// a parseable Response.
func buildPrompt(criterion string, ec *judgment.Context) (string, error) {
	schemaJSON, err := responseSchemaJSON()
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(promptHeader)
	sb.WriteString("\n\n")

	writeSection(&sb, "goal", ec.Goal)
	writeSection(&sb, "agent_output", ec.AgentOutput)

	if ec.Status != "" && ec.Status != judgment.ExecutionUnknown {
		writeSection(&sb, "execution_status", string(ec.Status))
	}
	if reference := ec.MetaString(MetaReferenceAnswer); reference != "" {
		writeSection(&sb, "reference_answer", reference)
	}
	writeSection(&sb, "criterion", criterion)

	sb.WriteString(promptRubric)
	sb.WriteString("\n\n")

	fmt.Fprintf(&sb, `<output_format>
Return your judgment as a single JSON object matching this schema:

%s

Note on suggestions:
- Focus on specific, missing elements rather than general advice
- Avoid redundant suggestions
</output_format>`, schemaJSON)

	return sb.String(), nil
}

func writeSection(sb *strings.Builder, tag, body string) {
	fmt.Fprintf(sb, "<%s>\n%s\n</%s>\n\n", tag, body, tag)
}
