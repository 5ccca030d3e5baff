package pipeline

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/sofmeright/curtaincall/src/pyproject"
)

func init() {
	Register("setup", func() Step { return &setupStep{} })
}

// setupStep verifies the language runtime: the interpreter must be on
// PATH and, when a constraint is configured, its version must satisfy
// it. Installing the runtime itself stays with the hosting platform.
type setupStep struct{}

func (s *setupStep) Name() string { return "setup" }

// versionRe extracts the first dotted version from interpreter output
// like "Python 3.11.4".
var versionRe = regexp.MustCompile(`(\d+)\.(\d+)(?:\.(\d+))?`)

func (s *setupStep) Run(ctx context.Context, env *Env) error {
	cfg := env.Config.Setup

	// Discover the package manifest now that the checkout exists; the
	// install step and the requires-python fallback both read it.
	if env.Project == nil {
		if p, err := pyproject.Load(env.Workdir); err == nil {
			env.Project = p
		}
	}

	interpreter := cfg.Interpreter
	if interpreter == "" {
		interpreter = "python3"
	}

	path, err := exec.LookPath(interpreter)
	if err != nil {
		return fmt.Errorf("interpreter %q not found: %w", interpreter, err)
	}

	raw, err := InterpreterVersion(ctx, path)
	if err != nil {
		return err
	}

	if env.Verbose {
		fmt.Fprintf(env.Stderr, "setup: %s %s\n", path, raw)
	}

	constraint := cfg.Requires
	if constraint == "" && env.Project != nil {
		constraint = env.Project.RequiresPython
	}
	if constraint == "" {
		return nil
	}

	return CheckVersion(raw, constraint)
}

// InterpreterVersion probes "<interpreter> --version" and returns the
// dotted version string.
func InterpreterVersion(ctx context.Context, interpreter string) (string, error) {
	cmd := exec.CommandContext(ctx, interpreter, "--version")
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("probing %s --version: %w", interpreter, err)
	}

	m := versionRe.FindStringSubmatch(string(out))
	if m == nil {
		return "", fmt.Errorf("no version in %q", strings.TrimSpace(string(out)))
	}
	if m[3] == "" {
		return m[1] + "." + m[2] + ".0", nil
	}
	return m[0], nil
}

// CheckVersion validates a dotted version against a semver constraint
// like ">= 3.8".
func CheckVersion(raw, constraint string) error {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("invalid version constraint %q: %w", constraint, err)
	}
	v, err := semver.NewVersion(raw)
	if err != nil {
		return fmt.Errorf("invalid interpreter version %q: %w", raw, err)
	}
	if !c.Check(v) {
		return fmt.Errorf("interpreter version %s does not satisfy %q", raw, constraint)
	}
	return nil
}
