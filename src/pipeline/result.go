package pipeline

import (
	"time"

	"github.com/sofmeright/curtaincall/src/status"
)

// StepResult captures the outcome of a single pipeline step.
type StepResult struct {
	Name     string
	Status   string // "success", "failure", "error", "cancelled", "skipped"
	Duration time.Duration
	Err      error
}

// RunResult captures the outcome of a full pipeline walk.
type RunResult struct {
	Steps    []StepResult
	Duration time.Duration
	SHA      string // resolved commit the run built
}

// TerminalState derives the closed-set state the reporter transmits:
// a test-suite failure is Failure, cancellation is Cancelled, any other
// step fault is Error, and a clean walk is Success.
func (r *RunResult) TerminalState() status.State {
	state := status.Success
	for _, s := range r.Steps {
		switch s.Status {
		case "cancelled":
			return status.Cancelled
		case "failure":
			state = status.Failure
		case "error":
			if state == status.Success {
				state = status.Error
			}
		}
	}
	return state
}

// Failed returns the first non-successful, non-skipped step, if any.
func (r *RunResult) Failed() *StepResult {
	for i := range r.Steps {
		switch r.Steps[i].Status {
		case "failure", "error", "cancelled":
			return &r.Steps[i]
		}
	}
	return nil
}

// TestFailureError marks a test-suite failure (tests ran and some
// failed) as opposed to an infrastructure fault.
type TestFailureError struct {
	ExitCode int
	Err      error
}

func (e *TestFailureError) Error() string { return e.Err.Error() }
func (e *TestFailureError) Unwrap() error { return e.Err }
