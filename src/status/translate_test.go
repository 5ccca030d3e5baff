package status

import (
	"context"
	"net/http"
	"testing"
)

func TestGitLabStateVocabulary(t *testing.T) {
	cases := []struct {
		in   State
		want string
	}{
		{Success, "success"},
		{Failure, "failed"},
		{Error, "failed"},
		{Cancelled, "canceled"},
	}

	for _, c := range cases {
		if got := gitlabState(c.in); got != c.want {
			t.Errorf("gitlabState(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestGiteaStateVocabulary(t *testing.T) {
	if got := giteaState(Cancelled); got != "error" {
		t.Errorf("giteaState(cancelled) = %q, want error", got)
	}
	if got := giteaState(Success); got != "success" {
		t.Errorf("giteaState(success) = %q, want success", got)
	}
}

func TestGitLabReportUsesNameAndPrivateToken(t *testing.T) {
	var recorded []recordedRequest
	srv := recordingServer(t, http.StatusCreated, &recorded)
	defer srv.Close()

	g := NewGitLab(srv.URL, "group/project", "glpat-xyz")

	result := BuildResult{SHA: "abc", Status: Error, Context: "curtaincall/build"}
	if err := g.Report(context.Background(), result); err != nil {
		t.Fatalf("Report: %v", err)
	}

	if len(recorded) != 1 {
		t.Fatalf("got %d requests, want 1", len(recorded))
	}
	req := recorded[0]

	wantPath := "/api/v4/projects/group%2Fproject/statuses/abc"
	if got := req.Path; got != "/api/v4/projects/group/project/statuses/abc" && got != wantPath {
		t.Errorf("path = %s", got)
	}
	if req.Auth != "glpat-xyz" {
		t.Errorf("auth = %q, want PRIVATE-TOKEN value", req.Auth)
	}
	if req.Body["state"] != "failed" {
		t.Errorf("state = %v, want failed", req.Body["state"])
	}
	if req.Body["name"] != "curtaincall/build" {
		t.Errorf("name = %v", req.Body["name"])
	}
	if _, ok := req.Body["context"]; ok {
		t.Error("gitlab body must not carry a context key")
	}
}

func TestGiteaReportPath(t *testing.T) {
	var recorded []recordedRequest
	srv := recordingServer(t, http.StatusCreated, &recorded)
	defer srv.Close()

	g := NewGitea(srv.URL, "octo/widgets", "tok")
	if err := g.Report(context.Background(), BuildResult{SHA: "abc", Status: Cancelled}); err != nil {
		t.Fatalf("Report: %v", err)
	}

	req := recorded[0]
	if req.Path != "/api/v1/repos/octo/widgets/statuses/abc" {
		t.Errorf("path = %s", req.Path)
	}
	if req.Auth != "token tok" {
		t.Errorf("auth = %q", req.Auth)
	}
	if req.Body["state"] != "error" {
		t.Errorf("state = %v, want error for cancelled", req.Body["state"])
	}
}
