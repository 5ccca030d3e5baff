// Package ci resolves the run context from the hosting CI platform's
// environment. All implicit env-var configuration is pulled into one
// explicit struct here; nothing downstream reads the environment.
package ci

import (
	"fmt"
	"os"
	"strings"
)

// Platform identifies the hosting CI system.
type Platform string

const (
	GitHubActions Platform = "github-actions"
	GitLabCI      Platform = "gitlab-ci"
	None          Platform = "none"
)

// RunContext is the explicit configuration the reporter needs:
// repository, sha, run id, job status, token. Resolved once at startup.
type RunContext struct {
	Platform   Platform
	Repository string // "owner/repo" (or GitLab project path)
	SHA        string // full commit SHA
	RunID      string // pipeline/workflow run identifier
	RunURL     string // web URL of this run, posted as target_url
	ServerURL  string // forge server base URL (self-hosted instances)
	Status     string // terminal job status, if the platform provides one
	Token      string // forge API token
}

// Resolve reads the run context from the environment.
// Missing variables leave fields empty; callers decide what is required.
func Resolve() RunContext {
	switch {
	case os.Getenv("GITHUB_ACTIONS") == "true":
		return resolveGitHub()
	case os.Getenv("GITLAB_CI") == "true":
		return resolveGitLab()
	default:
		return RunContext{Platform: None, Token: firstEnv("CURTAINCALL_TOKEN")}
	}
}

func resolveGitHub() RunContext {
	rc := RunContext{
		Platform:   GitHubActions,
		Repository: os.Getenv("GITHUB_REPOSITORY"),
		SHA:        os.Getenv("GITHUB_SHA"),
		RunID:      os.Getenv("GITHUB_RUN_ID"),
		Token:      firstEnv("GITHUB_TOKEN", "GH_TOKEN"),
	}

	server := os.Getenv("GITHUB_SERVER_URL")
	if server == "" {
		server = "https://github.com"
	}
	rc.ServerURL = server
	if rc.Repository != "" && rc.RunID != "" {
		rc.RunURL = fmt.Sprintf("%s/%s/actions/runs/%s",
			strings.TrimRight(server, "/"), rc.Repository, rc.RunID)
	}
	return rc
}

func resolveGitLab() RunContext {
	rc := RunContext{
		Platform:   GitLabCI,
		Repository: os.Getenv("CI_PROJECT_PATH"),
		SHA:        os.Getenv("CI_COMMIT_SHA"),
		RunID:      os.Getenv("CI_PIPELINE_ID"),
		RunURL:     os.Getenv("CI_PIPELINE_URL"),
		ServerURL:  os.Getenv("CI_SERVER_URL"),
		Status:     os.Getenv("CI_JOB_STATUS"),
		Token:      firstEnv("GITLAB_TOKEN", "CI_JOB_TOKEN"),
	}
	if rc.RunURL == "" {
		rc.RunURL = os.Getenv("CI_JOB_URL")
	}
	return rc
}

// DefaultContext returns the platform-derived status context label,
// constant across runs on a given platform.
func (rc RunContext) DefaultContext() string {
	if rc.Platform == GitHubActions {
		return "github-actions/build"
	}
	return "curtaincall/build"
}

func firstEnv(names ...string) string {
	for _, n := range names {
		if v := os.Getenv(n); v != "" {
			return v
		}
	}
	return ""
}
