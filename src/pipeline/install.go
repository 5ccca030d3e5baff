package pipeline

import (
	"context"
	"fmt"

	"github.com/sofmeright/curtaincall/src/config"
	"github.com/sofmeright/curtaincall/src/pyproject"
)

func init() {
	Register("install", func() Step { return &installStep{} })
}

// installStep installs the package under test plus its test extras via
// pip, optionally against a custom index and auxiliary wheel indexes.
type installStep struct{}

func (s *installStep) Name() string { return "install" }

func (s *installStep) Run(ctx context.Context, env *Env) error {
	cfg := env.Config.Install

	if env.Project == nil {
		if p, err := pyproject.Load(env.Workdir); err == nil {
			env.Project = p
		}
	}

	pkg := cfg.Package
	if pkg == "" {
		pkg = "."
	}

	extras := cfg.Extras
	if extras == nil && env.Project != nil && env.Project.HasExtra("test") {
		// The manifest declares a test extra; install it by default so
		// the test step has its tooling.
		extras = []string{"test"}
	}

	interpreter := env.Config.Setup.Interpreter
	if interpreter == "" {
		interpreter = "python3"
	}

	if err := execCommand(ctx, env, interpreter, installArgs(cfg, pkg, extras)...); err != nil {
		return fmt.Errorf("pip install failed: %w", err)
	}
	return nil
}

// installArgs builds the pip invocation for the package under test.
func installArgs(cfg config.InstallConfig, pkg string, extras []string) []string {
	args := []string{"-m", "pip", "install"}
	if cfg.Upgrade {
		args = append(args, "--upgrade")
	}
	if cfg.IndexURL != "" {
		args = append(args, "--index-url", cfg.IndexURL)
	}
	for _, idx := range cfg.ExtraIndexURLs {
		args = append(args, "--extra-index-url", idx)
	}
	for _, fl := range cfg.FindLinks {
		args = append(args, "--find-links", fl)
	}
	return append(args, pyproject.Requirement(pkg, extras))
}
