package status

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// GitLabReporter posts commit statuses to GitLab (gitlab.com or
// self-hosted).
type GitLabReporter struct {
	BaseURL   string // "https://gitlab.com" or self-hosted URL
	Token     string
	ProjectID string // numeric ID or "group/project" path
	Client    *http.Client
}

// NewGitLab creates a GitLab status reporter. repository is the project
// path ("group/project") or numeric project ID.
func NewGitLab(baseURL, repository, token string) *GitLabReporter {
	if baseURL == "" {
		baseURL = "https://gitlab.com"
	}
	return &GitLabReporter{
		BaseURL:   strings.TrimRight(baseURL, "/"),
		Token:     token,
		ProjectID: repository,
		Client:    http.DefaultClient,
	}
}

func (g *GitLabReporter) Provider() Provider { return GitLab }

// gitlabState translates to GitLab's commit-status vocabulary. Unlike
// GitHub, GitLab hard-rejects unknown states with a 400, so posting the
// label verbatim is not an option here.
func gitlabState(s State) string {
	switch s {
	case Failure, Error:
		return "failed"
	case Cancelled:
		return "canceled"
	default:
		return string(s)
	}
}

// Report posts to POST {base}/api/v4/projects/{id}/statuses/{sha}.
// GitLab calls the context "name"; the other three fields carry over.
func (g *GitLabReporter) Report(ctx context.Context, result BuildResult) error {
	apiURL := fmt.Sprintf("%s/api/v4/projects/%s/statuses/%s",
		g.BaseURL, url.PathEscape(g.ProjectID), result.SHA)

	p := result.Payload()
	body := map[string]string{
		"state":       gitlabState(result.Status),
		"target_url":  p.TargetURL,
		"description": p.Description,
		"name":        p.Context,
	}
	return postJSON(ctx, g.Client, apiURL, privateTokenAuth(g.Token), body)
}

func privateTokenAuth(token string) authHeader {
	return func(req *http.Request) {
		req.Header.Set("PRIVATE-TOKEN", token)
	}
}
