/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package report

import (
	"fmt"
	"strings"

	"chainguard.dev/agentjury/judgment"
	"chainguard.dev/agentjury/jury"
)

// Markdown renders a verdict as a markdown report. The aggregated
// outcome leads, followed by a table of every individual judgment. For
// cascades, each executed tier gets its own section in execution order.
func Markdown(v *jury.Verdict) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "## Verdict: %s\n\n", v.Status())
	if v.Aggregated != nil && v.Aggregated.Reasoning != "" {
		fmt.Fprintf(&sb, "%s\n\n", v.Aggregated.Reasoning)
	}

	if len(v.SubVerdicts) > 0 {
		for i, sub := range v.SubVerdicts {
			fmt.Fprintf(&sb, "### Tier %d: %s\n\n", i+1, sub.Status())
			if sub.Aggregated != nil && sub.Aggregated.Reasoning != "" {
				fmt.Fprintf(&sb, "%s\n\n", sub.Aggregated.Reasoning)
			}
			writeJudgmentTable(&sb, sub.Individual)
		}
	} else {
		writeJudgmentTable(&sb, v.Individual)
	}

	return sb.String()
}

// writeJudgmentTable renders one judgment table with a trailing blank
// line.
func writeJudgmentTable(sb *strings.Builder, judgments []*judgment.Judgment) {
	if len(judgments) == 0 {
		return
	}

	table := newMarkdownTable([]string{"Judge", "Status", "Score", "Reasoning"}, sb)
	for _, j := range judgments {
		name := j.JudgeName()
		if name == "" {
			name = "-"
		}
		score := "-"
		if j.Score != nil {
			score = j.Score.String()
		}
		_ = table.Append([]string{name, string(j.Status), score, summarize(j)})
	}
	_ = table.Render()
	sb.WriteString("\n")
}

// summarize condenses a judgment's reasoning and failed checks into one
// table cell.
func summarize(j *judgment.Judgment) string {
	parts := make([]string, 0, 1+len(j.Checks))
	if j.Reasoning != "" {
		parts = append(parts, j.Reasoning)
	}
	for _, check := range j.Checks {
		if check.Passed || check.Detail == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", check.Name, check.Detail))
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, "; ")
}
