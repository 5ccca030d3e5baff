package pipeline

import (
	"context"
	"errors"
	"time"
)

// stepOrder is the fixed linear sequence. No branching, no parallelism.
var stepOrder = []string{"checkout", "setup", "install", "test"}

// Runner walks the step sequence against one Env.
type Runner struct {
	Env   *Env
	steps []Step
}

// NewRunner builds a runner from the pipeline config, honoring per-step
// skip flags.
func NewRunner(env *Env) (*Runner, error) {
	skipped := map[string]bool{
		"checkout": env.Config.Checkout.Skip,
		"setup":    env.Config.Setup.Skip,
		"install":  env.Config.Install.Skip,
		"test":     env.Config.Test.Skip,
	}

	var steps []Step
	for _, name := range stepOrder {
		if skipped[name] {
			continue
		}
		s, err := Get(name)
		if err != nil {
			return nil, err
		}
		steps = append(steps, s)
	}

	return &Runner{Env: env, steps: steps}, nil
}

// Execute walks the steps in order. The first failing step stops the
// walk; remaining steps are recorded skipped. Execute never returns an
// error: every outcome, including total failure, is a RunResult the
// caller must still report.
func (r *Runner) Execute(ctx context.Context) *RunResult {
	start := time.Now()
	result := &RunResult{}

	halted := false
	for _, step := range r.steps {
		if halted {
			result.Steps = append(result.Steps, StepResult{Name: step.Name(), Status: "skipped"})
			continue
		}

		stepStart := time.Now()
		err := step.Run(ctx, r.Env)
		sr := StepResult{
			Name:     step.Name(),
			Duration: time.Since(stepStart),
			Err:      err,
		}

		switch {
		case err == nil:
			sr.Status = "success"
		case ctx.Err() != nil:
			sr.Status = "cancelled"
			halted = true
		case isTestFailure(err):
			sr.Status = "failure"
			halted = true
		default:
			sr.Status = "error"
			halted = true
		}

		result.Steps = append(result.Steps, sr)
	}

	result.Duration = time.Since(start)
	result.SHA = r.Env.SHA
	return result
}

func isTestFailure(err error) bool {
	var tf *TestFailureError
	return errors.As(err, &tf)
}
