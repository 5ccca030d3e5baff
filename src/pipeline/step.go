// Package pipeline executes the linear build sequence (checkout,
// setup, install, test) and derives the terminal state the status
// reporter transmits. Steps run strictly one after another; the first
// failure stops the walk.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"sort"
	"strings"
	"sync"

	"github.com/sofmeright/curtaincall/src/ci"
	"github.com/sofmeright/curtaincall/src/config"
	"github.com/sofmeright/curtaincall/src/pyproject"
)

// Step is one pipeline stage.
type Step interface {
	// Name returns the step's kind label ("checkout", "setup", ...).
	Name() string

	// Run executes the step. A test-suite failure is reported via
	// *TestFailureError; any other error is an infrastructure fault.
	Run(ctx context.Context, env *Env) error
}

// Env is the shared execution environment passed through the steps.
type Env struct {
	Workdir string
	Config  config.PipelineConfig
	Run     ci.RunContext

	// Stdout and Stderr receive subprocess output; the runner wires
	// them through the secret masker.
	Stdout io.Writer
	Stderr io.Writer

	Verbose bool

	// SHA is the resolved commit, filled by the checkout step (or from
	// the run context when checkout is skipped).
	SHA string

	// Project is the parsed pyproject manifest, filled by the install
	// step when the workdir carries one.
	Project *pyproject.Project
}

var (
	registryMu sync.RWMutex
	registry   = map[string]func() Step{}
)

// Register adds a step constructor to the global registry.
// Called from init() in each step file.
func Register(name string, constructor func() Step) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("pipeline: duplicate step registration: %s", name))
	}
	registry[name] = constructor
}

// Get returns a new instance of the named step.
func Get(name string) (Step, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("pipeline: unknown step: %s", name)
	}
	return ctor(), nil
}

// All returns sorted names of all registered steps.
func All() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// execCommand runs a subprocess in the workdir with output streamed to
// the env writers.
func execCommand(ctx context.Context, env *Env, name string, args ...string) error {
	if env.Verbose {
		fmt.Fprintf(env.Stderr, "exec: %s %s\n", name, strings.Join(args, " "))
	}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = env.Workdir
	cmd.Stdout = env.Stdout
	cmd.Stderr = env.Stderr
	return cmd.Run()
}
