// Package status posts commit statuses to git forges (GitHub, GitLab,
// Gitea). A status is a small structured record (state, target URL,
// description, context) attached to a commit SHA and displayed by the
// hosting UI next to that commit.
package status

import (
	"context"
	"strings"
)

// Provider identifies a git forge platform.
type Provider string

const (
	GitHub  Provider = "github"
	GitLab  Provider = "gitlab"
	Gitea   Provider = "gitea"
	Unknown Provider = "unknown"
)

// State is a terminal job state.
type State string

const (
	Success   State = "success"
	Failure   State = "failure"
	Cancelled State = "cancelled"
	Error     State = "error"
)

// Normalize lowercases a raw terminal state label. Labels outside the
// closed state set collapse to Error. Applied exactly once, at the
// reporting boundary.
func Normalize(raw string) State {
	switch State(strings.ToLower(raw)) {
	case Success:
		return Success
	case Failure:
		return Failure
	case Cancelled:
		return Cancelled
	case Error:
		return Error
	default:
		return Error
	}
}

// CommitStatus is the GitHub-shaped wire payload. Exactly these four
// keys, always.
type CommitStatus struct {
	State       string `json:"state"`
	TargetURL   string `json:"target_url"`
	Description string `json:"description"`
	Context     string `json:"context"`
}

// BuildResult is the transient record a run produces: created at the
// pipeline boundary, transmitted once per target, discarded.
type BuildResult struct {
	SHA         string // commit the status attaches to
	Status      State
	RunURL      string // web URL of the run, posted as target_url
	Description string // empty: the state label is used
	Context     string // status context label, constant across runs
}

// Payload renders the four-field wire body for this result.
func (r BuildResult) Payload() CommitStatus {
	desc := r.Description
	if desc == "" {
		desc = string(r.Status)
	}
	return CommitStatus{
		State:       string(r.Status),
		TargetURL:   r.RunURL,
		Description: desc,
		Context:     r.Context,
	}
}

// Reporter posts a commit status to one forge. Posting the same
// BuildResult twice produces two independent identical status entries;
// the remote does not deduplicate and neither do we.
type Reporter interface {
	// Provider returns which platform this reporter posts to.
	Provider() Provider

	// Report posts the result's status against result.SHA.
	Report(ctx context.Context, result BuildResult) error
}
