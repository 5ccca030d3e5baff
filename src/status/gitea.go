package status

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// GiteaReporter posts commit statuses to Gitea and Forgejo instances.
type GiteaReporter struct {
	BaseURL string
	Token   string
	Owner   string
	Repo    string
	Client  *http.Client
}

// NewGitea creates a Gitea status reporter. repository is "owner/repo".
func NewGitea(baseURL, repository, token string) *GiteaReporter {
	var owner, repo string
	if idx := strings.Index(repository, "/"); idx >= 0 {
		owner = repository[:idx]
		repo = repository[idx+1:]
	}
	return &GiteaReporter{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   token,
		Owner:   owner,
		Repo:    repo,
		Client:  http.DefaultClient,
	}
}

func (g *GiteaReporter) Provider() Provider { return Gitea }

// giteaState translates to Gitea's vocabulary: it has no cancelled
// state, so cancellation reports as error.
func giteaState(s State) string {
	if s == Cancelled {
		return string(Error)
	}
	return string(s)
}

// Report posts to POST {base}/api/v1/repos/{owner}/{repo}/statuses/{sha}.
func (g *GiteaReporter) Report(ctx context.Context, result BuildResult) error {
	apiURL := fmt.Sprintf("%s/api/v1/repos/%s/%s/statuses/%s",
		g.BaseURL, g.Owner, g.Repo, result.SHA)

	p := result.Payload()
	body := map[string]string{
		"state":       giteaState(result.Status),
		"target_url":  p.TargetURL,
		"description": p.Description,
		"context":     p.Context,
	}
	return postJSON(ctx, g.Client, apiURL, tokenAuth(g.Token), body)
}

func tokenAuth(token string) authHeader {
	return func(req *http.Request) {
		req.Header.Set("Authorization", "token "+token)
	}
}
