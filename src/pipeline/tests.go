package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
)

func init() {
	Register("test", func() Step { return &testStep{} })
}

// testStep runs the test suite. A non-zero exit from the runner is a
// test failure, not an infrastructure fault; the distinction drives
// the terminal state (failure vs error).
type testStep struct{}

func (s *testStep) Name() string { return "test" }

func (s *testStep) Run(ctx context.Context, env *Env) error {
	cfg := env.Config.Test

	command := cfg.Command
	if command == "" {
		command = "pytest"
	}

	err := execCommand(ctx, env, command, cfg.Args...)
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && ctx.Err() == nil {
		return &TestFailureError{
			ExitCode: exitErr.ExitCode(),
			Err:      fmt.Errorf("test suite failed: %w", err),
		}
	}
	return fmt.Errorf("running %s: %w", command, err)
}
