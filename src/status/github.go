package status

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// GitHubReporter posts commit statuses to GitHub and GitHub Enterprise.
type GitHubReporter struct {
	BaseURL string // "https://api.github.com" or "https://ghes.example.com/api/v3"
	Token   string
	Owner   string
	Repo    string
	Client  *http.Client
}

// NewGitHub creates a GitHub status reporter. repository is "owner/repo".
func NewGitHub(baseURL, repository, token string) *GitHubReporter {
	var owner, repo string
	if idx := strings.Index(repository, "/"); idx >= 0 {
		owner = repository[:idx]
		repo = repository[idx+1:]
	}

	apiBase := "https://api.github.com"
	if baseURL != "" && !strings.Contains(baseURL, "github.com") {
		// GitHub Enterprise Server
		apiBase = strings.TrimRight(baseURL, "/") + "/api/v3"
	}

	return &GitHubReporter{
		BaseURL: apiBase,
		Token:   token,
		Owner:   owner,
		Repo:    repo,
		Client:  http.DefaultClient,
	}
}

func (g *GitHubReporter) Provider() Provider { return GitHub }

// Report posts the four-field payload to
// POST {base}/repos/{owner}/{repo}/statuses/{sha}.
// GitHub accepts the state label verbatim; no vocabulary translation.
func (g *GitHubReporter) Report(ctx context.Context, result BuildResult) error {
	url := fmt.Sprintf("%s/repos/%s/%s/statuses/%s", g.BaseURL, g.Owner, g.Repo, result.SHA)
	return postJSON(ctx, g.Client, url, bearerAuth(g.Token), result.Payload())
}

// APIError is a non-2xx forge response. Carries the status code so the
// retry layer can tell server faults (retryable) from client faults.
type APIError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.StatusCode, e.Body)
}

// authHeader applies provider-specific authentication to a request.
type authHeader func(*http.Request)

func bearerAuth(token string) authHeader {
	return func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Accept", "application/vnd.github+json")
	}
}

// postJSON sends a JSON POST and surfaces non-2xx responses as APIError.
func postJSON(ctx context.Context, client *http.Client, url string, auth authHeader, body interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	auth(req)
	req.Header.Set("Content-Type", "application/json")

	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(resp.Body)
		return &APIError{
			Method:     http.MethodPost,
			URL:        url,
			StatusCode: resp.StatusCode,
			Body:       string(respBody),
		}
	}

	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
