/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package commandjudge

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/chainguard-dev/clog"

	"chainguard.dev/agentjury/judgment"
)

// DefaultTimeout bounds command execution when no timeout is configured.
const DefaultTimeout = 2 * time.Minute

// outputLimit caps how much stdout/stderr is kept in judgment metadata.
const outputLimit = 8 * 1024

// Judge runs a shell command in the context workspace and judges the exit
// code.
type Judge struct {
	name         string
	command      string
	expectedExit int
	timeout      time.Duration
}

// Option is a functional option for configuring the judge.
type Option func(*Judge) error

// WithExpectedExitCode sets the exit code treated as success. The default
// is 0; a judge asserting that a command fails can expect a non-zero code.
func WithExpectedExitCode(code int) Option {
	return func(j *Judge) error {
		if code < 0 || code > 255 {
			return fmt.Errorf("exit code must be in 0..255, got %d", code)
		}
		j.expectedExit = code
		return nil
	}
}

// WithTimeout bounds command execution.
func WithTimeout(d time.Duration) Option {
	return func(j *Judge) error {
		if d <= 0 {
			return fmt.Errorf("timeout must be positive, got %v", d)
		}
		j.timeout = d
		return nil
	}
}

// New creates a command judge with the given name and shell command.
func New(name, command string, opts ...Option) (*Judge, error) {
	if name == "" {
		return nil, errors.New("judge name is required")
	}
	if command == "" {
		return nil, errors.New("command is required")
	}
	j := &Judge{
		name:    name,
		command: command,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		if err := opt(j); err != nil {
			return nil, err
		}
	}
	return j, nil
}

// Name implements jury.Judge.
func (j *Judge) Name() string { return j.name }

// Evaluate implements jury.Judge. The command runs via `sh -c` with the
// context workspace as working directory. An unexpected exit code is a FAIL,
// not an error; only a failure to start the command at all is surfaced as an
// infrastructure error.
func (j *Judge) Evaluate(ctx context.Context, jc *judgment.Context) (*judgment.Judgment, error) {
	if jc.Workspace == "" {
		return judgment.Abstain("no workspace to run the command in"), nil
	}

	log := clog.FromContext(ctx).With("judge", j.name).With("command", j.command)

	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, "sh", "-c", j.command)
	cmd.Dir = jc.Workspace
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	meta := map[string]any{
		"command":  j.command,
		"stdout":   truncate(stdout.String()),
		"stderr":   truncate(stderr.String()),
		"duration": elapsed.String(),
	}

	if ctx.Err() == context.DeadlineExceeded {
		log.With("timeout", j.timeout).Warn("Command timed out")
		return &judgment.Judgment{
			Status:    judgment.StatusFail,
			Score:     judgment.BooleanScore(false),
			Reasoning: fmt.Sprintf("command %q timed out after %v", j.command, j.timeout),
			Checks: []judgment.Check{
				{Name: "timeout", Detail: fmt.Sprintf("exceeded %v", j.timeout), Passed: false},
			},
			Metadata: meta,
		}, nil
	}

	exitCode := 0
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			// Could not start at all: infrastructure failure, not a
			// judgment about the artifact.
			return nil, fmt.Errorf("running command %q: %w", j.command, err)
		}
		exitCode = exitErr.ExitCode()
	}
	meta["exit_code"] = exitCode

	passed := exitCode == j.expectedExit
	detail := fmt.Sprintf("exited %d, expected %d", exitCode, j.expectedExit)
	log.With("exit_code", exitCode).With("duration", elapsed).Info("Command completed")

	jmt := &judgment.Judgment{
		Score: judgment.BooleanScore(passed),
		Checks: []judgment.Check{
			{Name: "exit-code", Detail: detail, Passed: passed},
		},
		Metadata: meta,
	}
	if passed {
		jmt.Status = judgment.StatusPass
		jmt.Reasoning = fmt.Sprintf("command %q exited %d as expected", j.command, exitCode)
	} else {
		jmt.Status = judgment.StatusFail
		jmt.Reasoning = fmt.Sprintf("command %q %s", j.command, detail)
	}
	return jmt, nil
}

func truncate(s string) string {
	if len(s) <= outputLimit {
		return s
	}
	return s[:outputLimit-3] + "..."
}
