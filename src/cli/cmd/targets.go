package cmd

import (
	"fmt"
	"os"

	"github.com/sofmeright/curtaincall/src/ci"
	"github.com/sofmeright/curtaincall/src/config"
	"github.com/sofmeright/curtaincall/src/gitinfo"
	"github.com/sofmeright/curtaincall/src/status"
)

// buildTargets resolves the configured report targets into reporters.
// With no targets configured, a single target is derived from the CI
// environment, falling back to the git remote of the workdir.
func buildTargets(cfg *config.Config, rc ci.RunContext, workdir string) ([]status.Target, error) {
	retry := status.Retryer{
		Attempts: cfg.Report.Retry.Attempts,
		Backoff:  cfg.Report.Retry.Backoff,
	}

	if len(cfg.Report.Targets) == 0 {
		t, err := defaultTarget(rc, workdir, retry)
		if err != nil {
			return nil, err
		}
		return []status.Target{t}, nil
	}

	targets := make([]status.Target, 0, len(cfg.Report.Targets))
	for _, tc := range cfg.Report.Targets {
		t, err := targetFromConfig(tc, rc, workdir, retry)
		if err != nil {
			return nil, err
		}
		targets = append(targets, t)
	}
	return targets, nil
}

// defaultTarget derives a single reporter from the run context or the
// local git remote.
func defaultTarget(rc ci.RunContext, workdir string, retry status.Retryer) (status.Target, error) {
	switch rc.Platform {
	case ci.GitHubActions:
		r := status.NewGitHub(rc.ServerURL, rc.Repository, rc.Token)
		return status.Target{ID: "github", Reporter: r, Retry: retry}, nil
	case ci.GitLabCI:
		r := status.NewGitLab(rc.ServerURL, rc.Repository, rc.Token)
		return status.Target{ID: "gitlab", Reporter: r, Retry: retry}, nil
	}

	// Local run; detect from the git remote.
	info, err := gitinfo.Detect(workdir)
	if err != nil {
		return status.Target{}, fmt.Errorf("no report targets configured and no CI environment: %w", err)
	}
	provider := status.DetectProvider(info.Remote)
	repository := gitinfo.RepositoryPath(info.Remote)
	if provider == status.Unknown || repository == "" {
		return status.Target{}, fmt.Errorf("could not detect forge from remote URL: %s", info.Remote)
	}

	r, ok := status.NewReporter(provider, status.BaseURL(info.Remote), repository, rc.Token)
	if !ok {
		return status.Target{}, fmt.Errorf("unknown forge provider: %s", provider)
	}
	return status.Target{ID: string(provider), Reporter: r, Retry: retry}, nil
}

// targetFromConfig builds a reporter from an explicit target config.
func targetFromConfig(tc config.TargetConfig, rc ci.RunContext, workdir string, retry status.Retryer) (status.Target, error) {
	provider := status.Provider(tc.Provider)
	if tc.Provider == "" {
		provider = status.DetectProvider(tc.URL)
		if provider == status.Unknown {
			return status.Target{}, fmt.Errorf("target %s: cannot detect provider from url %q", tc.ID, tc.URL)
		}
	}

	repository := tc.Repository
	if repository == "" {
		repository = rc.Repository
	}
	if repository == "" {
		if info, err := gitinfo.Detect(workdir); err == nil {
			repository = gitinfo.RepositoryPath(info.Remote)
		}
	}
	if repository == "" {
		return status.Target{}, fmt.Errorf("target %s: no repository resolved", tc.ID)
	}

	token := rc.Token
	if tc.Credentials != "" {
		token = os.Getenv(tc.Credentials + "_TOKEN")
		if token == "" {
			return status.Target{}, fmt.Errorf("target %s: %s_TOKEN env var not set", tc.ID, tc.Credentials)
		}
	}

	r, ok := status.NewReporter(provider, tc.URL, repository, token)
	if !ok {
		return status.Target{}, fmt.Errorf("target %s: unknown provider %q", tc.ID, tc.Provider)
	}

	id := tc.ID
	if id == "" {
		id = string(provider)
	}
	return status.Target{ID: id, Reporter: r, Retry: retry}, nil
}

// statusContext resolves the status context label: config wins, then
// the platform-derived default.
func statusContext(cfg *config.Config, rc ci.RunContext) string {
	if cfg.Report.Context != "" {
		return cfg.Report.Context
	}
	return rc.DefaultContext()
}
