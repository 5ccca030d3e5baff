package pipeline

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/sofmeright/curtaincall/src/config"
)

func initWorkRepo(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()

	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte("hello\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := wt.Add("README.md"); err != nil {
		t.Fatal(err)
	}
	hash, err := wt.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{Name: "tester", Email: "tester@example.com", When: time.Now()},
	})
	if err != nil {
		t.Fatalf("commit: %v", err)
	}

	return dir, hash.String()
}

func checkoutEnv(t *testing.T, workdir string, cfg config.CheckoutConfig) *Env {
	t.Helper()
	pc := config.DefaultPipelineConfig()
	pc.Checkout = cfg
	return &Env{
		Workdir: workdir,
		Config:  pc,
		Stdout:  io.Discard,
		Stderr:  io.Discard,
	}
}

func TestCheckoutRecordsHead(t *testing.T) {
	dir, sha := initWorkRepo(t)
	env := checkoutEnv(t, dir, config.CheckoutConfig{})

	step := &checkoutStep{}
	if err := step.Run(context.Background(), env); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if env.SHA != sha {
		t.Errorf("SHA = %s, want %s", env.SHA, sha)
	}
}

func TestCheckoutResolvesPinnedRevision(t *testing.T) {
	dir, sha := initWorkRepo(t)
	env := checkoutEnv(t, dir, config.CheckoutConfig{SHA: sha[:8]})

	step := &checkoutStep{}
	if err := step.Run(context.Background(), env); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if env.SHA != sha {
		t.Errorf("SHA = %s, want full hash %s", env.SHA, sha)
	}
}

func TestCheckoutPlainDirWithoutPin(t *testing.T) {
	env := checkoutEnv(t, t.TempDir(), config.CheckoutConfig{})

	step := &checkoutStep{}
	if err := step.Run(context.Background(), env); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if env.SHA != "" {
		t.Errorf("SHA = %q, want empty for plain directory", env.SHA)
	}
}

func TestCheckoutPlainDirWithPin(t *testing.T) {
	env := checkoutEnv(t, t.TempDir(), config.CheckoutConfig{SHA: "deadbeef"})

	step := &checkoutStep{}
	if err := step.Run(context.Background(), env); err == nil {
		t.Error("want error when a sha is pinned outside a repository")
	}
}
