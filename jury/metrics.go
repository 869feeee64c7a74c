/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package jury

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"chainguard.dev/agentjury/judgment"
)

var (
	// Global metrics with consistent dimensions
	voteCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jury_votes_total",
			Help: "Total number of jury votes, by aggregated status",
		},
		[]string{"jury", "status"},
	)

	judgeErrorCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jury_judge_errors_total",
			Help: "Total number of judge evaluations converted to ERROR judgments",
		},
		[]string{"jury", "judge"},
	)

	escalationCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jury_cascade_escalations_total",
			Help: "Total number of cascade tier escalations, by tier that escalated",
		},
		[]string{"tier"},
	)

	voteDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "jury_vote_duration_seconds",
			Help:    "Wall-clock duration of jury votes",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"jury"},
	)
)

// observeVote records the outcome and duration of one completed vote.
func observeVote(jury string, status judgment.Status, d time.Duration) {
	voteCounter.With(prometheus.Labels{"jury": jury, "status": string(status)}).Inc()
	voteDuration.With(prometheus.Labels{"jury": jury}).Observe(d.Seconds())
}
