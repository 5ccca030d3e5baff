package pipeline

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sofmeright/curtaincall/src/config"
	"github.com/sofmeright/curtaincall/src/status"
)

// fakeStep returns a canned error, optionally cancelling the context
// first to simulate an interrupted run.
type fakeStep struct {
	name   string
	err    error
	cancel context.CancelFunc
	calls  int
}

func (f *fakeStep) Name() string { return f.name }

func (f *fakeStep) Run(ctx context.Context, env *Env) error {
	f.calls++
	if f.cancel != nil {
		f.cancel()
	}
	return f.err
}

func testEnv(t *testing.T) *Env {
	t.Helper()
	return &Env{
		Workdir: t.TempDir(),
		Config:  config.DefaultPipelineConfig(),
		Stdout:  io.Discard,
		Stderr:  io.Discard,
	}
}

func TestExecuteCleanWalk(t *testing.T) {
	a := &fakeStep{name: "checkout"}
	b := &fakeStep{name: "test"}
	r := &Runner{Env: testEnv(t), steps: []Step{a, b}}

	result := r.Execute(context.Background())
	if got := result.TerminalState(); got != status.Success {
		t.Fatalf("state = %q, want success", got)
	}
	if a.calls != 1 || b.calls != 1 {
		t.Errorf("calls = %d/%d, want 1/1", a.calls, b.calls)
	}
}

func TestExecuteHaltsAfterFault(t *testing.T) {
	a := &fakeStep{name: "checkout", err: errors.New("clone failed")}
	b := &fakeStep{name: "test"}
	r := &Runner{Env: testEnv(t), steps: []Step{a, b}}

	result := r.Execute(context.Background())

	if b.calls != 0 {
		t.Error("later step ran after a fault")
	}
	if result.Steps[0].Status != "error" {
		t.Errorf("steps[0] = %q, want error", result.Steps[0].Status)
	}
	if result.Steps[1].Status != "skipped" {
		t.Errorf("steps[1] = %q, want skipped", result.Steps[1].Status)
	}
	if got := result.TerminalState(); got != status.Error {
		t.Errorf("state = %q, want error", got)
	}
}

func TestExecuteTestFailureIsFailure(t *testing.T) {
	failing := &fakeStep{
		name: "test",
		err:  &TestFailureError{ExitCode: 1, Err: errors.New("exit status 1")},
	}
	r := &Runner{Env: testEnv(t), steps: []Step{failing}}

	result := r.Execute(context.Background())
	if got := result.TerminalState(); got != status.Failure {
		t.Errorf("state = %q, want failure", got)
	}
}

func TestExecuteCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	a := &fakeStep{name: "install", err: errors.New("signal: terminated"), cancel: cancel}
	b := &fakeStep{name: "test"}
	r := &Runner{Env: testEnv(t), steps: []Step{a, b}}

	result := r.Execute(ctx)

	if result.Steps[0].Status != "cancelled" {
		t.Errorf("steps[0] = %q, want cancelled", result.Steps[0].Status)
	}
	if got := result.TerminalState(); got != status.Cancelled {
		t.Errorf("state = %q, want cancelled", got)
	}
	if b.calls != 0 {
		t.Error("step ran after cancellation")
	}
}

func TestNewRunnerHonorsSkips(t *testing.T) {
	env := testEnv(t)
	env.Config.Checkout.Skip = true
	env.Config.Install.Skip = true

	r, err := NewRunner(env)
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}

	var names []string
	for _, s := range r.steps {
		names = append(names, s.Name())
	}
	want := []string{"setup", "test"}
	if len(names) != len(want) {
		t.Fatalf("steps = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("steps = %v, want %v", names, want)
		}
	}
}
