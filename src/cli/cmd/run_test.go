package cmd

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/sofmeright/curtaincall/src/ci"
	"github.com/sofmeright/curtaincall/src/config"
	"github.com/sofmeright/curtaincall/src/pipeline"
	"github.com/sofmeright/curtaincall/src/status"
)

func loadDefaults(t *testing.T) {
	t.Helper()
	var err error
	cfg, err = config.Load(filepath.Join(t.TempDir(), "absent.yml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
}

func TestReportAlwaysOnCompletedRun(t *testing.T) {
	want := &pipeline.RunResult{Steps: []pipeline.StepResult{{Name: "test", Status: "failure"}}}

	var got *pipeline.RunResult
	calls := 0
	result := reportAlways(
		func() *pipeline.RunResult { return want },
		func(res *pipeline.RunResult) { calls++; got = res },
	)

	if calls != 1 {
		t.Fatalf("report called %d times, want 1", calls)
	}
	if got != want || result != want {
		t.Error("report did not receive the run's result")
	}
	if got.TerminalState() != status.Failure {
		t.Errorf("state = %q, want failure", got.TerminalState())
	}
}

func TestReportAlwaysOnPanic(t *testing.T) {
	calls := 0
	var got *pipeline.RunResult

	func() {
		defer func() {
			if recover() == nil {
				t.Error("panic should propagate")
			}
		}()
		reportAlways(
			func() *pipeline.RunResult { panic("walk blew up") },
			func(res *pipeline.RunResult) { calls++; got = res },
		)
	}()

	if calls != 1 {
		t.Fatalf("report called %d times, want 1", calls)
	}
	if got != nil {
		t.Error("aborted run should report a nil result")
	}
}

func TestUnsuccessfulRunsStillPost(t *testing.T) {
	cases := []struct {
		name      string
		steps     []pipeline.StepResult
		wantState string
	}{
		{
			name:      "test failure",
			steps:     []pipeline.StepResult{{Name: "test", Status: "failure"}},
			wantState: "failure",
		},
		{
			name:      "cancelled walk",
			steps:     []pipeline.StepResult{{Name: "install", Status: "cancelled"}, {Name: "test", Status: "skipped"}},
			wantState: "cancelled",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var bodies []map[string]any
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				data, _ := io.ReadAll(r.Body)
				var body map[string]any
				json.Unmarshal(data, &body)
				bodies = append(bodies, body)
				w.WriteHeader(http.StatusCreated)
			}))
			defer srv.Close()

			targets := []status.Target{{
				ID:       "github",
				Reporter: status.NewGitHub(srv.URL, "octo/widgets", "tok"),
				Retry:    status.Retryer{Attempts: 1},
			}}

			reportAlways(
				func() *pipeline.RunResult {
					return &pipeline.RunResult{SHA: "abc", Steps: c.steps}
				},
				func(res *pipeline.RunResult) {
					b := status.BuildResult{SHA: res.SHA, Status: res.TerminalState(), Context: "ci/build"}
					status.Fanout(context.Background(), targets, b)
				},
			)

			if len(bodies) != 1 {
				t.Fatalf("got %d posts, want 1", len(bodies))
			}
			if bodies[0]["state"] != c.wantState {
				t.Errorf("posted state = %v, want %s", bodies[0]["state"], c.wantState)
			}
		})
	}
}

func TestBuildResultNilRun(t *testing.T) {
	loadDefaults(t)

	rc := ci.RunContext{Platform: ci.None, SHA: "abc123", RunURL: "https://ci.example.com/runs/9"}
	res := buildResult(nil, rc, t.TempDir())

	if res.Status != status.Error {
		t.Errorf("status = %q, want error for a run that never completed", res.Status)
	}
	if res.SHA != "abc123" {
		t.Errorf("SHA = %q, want the run context's", res.SHA)
	}
	if res.RunURL != "https://ci.example.com/runs/9" {
		t.Errorf("RunURL = %q", res.RunURL)
	}
	if res.Context != "curtaincall/build" {
		t.Errorf("context = %q", res.Context)
	}
}

func TestBuildResultPrefersRunSHA(t *testing.T) {
	loadDefaults(t)

	rc := ci.RunContext{Platform: ci.None, SHA: "env-sha"}
	result := &pipeline.RunResult{
		SHA:   "checkout-sha",
		Steps: []pipeline.StepResult{{Name: "test", Status: "success"}},
	}

	res := buildResult(result, rc, t.TempDir())
	if res.SHA != "checkout-sha" {
		t.Errorf("SHA = %q, want the checkout's", res.SHA)
	}
	if res.Status != status.Success {
		t.Errorf("status = %q", res.Status)
	}
}
