package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/sofmeright/curtaincall/src/gitinfo"
)

func init() {
	Register("checkout", func() Step { return &checkoutStep{} })
}

// checkoutStep fetches source at a commit. With a clone URL it clones
// into the workdir; otherwise the workdir is treated as an existing
// checkout and the pinned SHA (if any) is checked out in place.
type checkoutStep struct{}

func (s *checkoutStep) Name() string { return "checkout" }

func (s *checkoutStep) Run(ctx context.Context, env *Env) error {
	cfg := env.Config.Checkout

	sha := cfg.SHA
	if sha == "" {
		sha = env.Run.SHA
	}

	var repo *git.Repository
	var err error

	if cfg.URL != "" {
		repo, err = git.PlainCloneContext(ctx, env.Workdir, false, &git.CloneOptions{
			URL:      cfg.URL,
			Depth:    cfg.Depth,
			Progress: env.Stderr,
		})
		if errors.Is(err, git.ErrRepositoryAlreadyExists) {
			repo, err = git.PlainOpen(env.Workdir)
		}
		if err != nil {
			return fmt.Errorf("cloning %s: %w", cfg.URL, err)
		}
	} else {
		repo, err = git.PlainOpenWithOptions(env.Workdir, &git.PlainOpenOptions{DetectDotGit: true})
		if err != nil {
			if sha == "" {
				// Plain directory, nothing pinned. Use the workdir as-is.
				return nil
			}
			return fmt.Errorf("workdir is not a git repository but a sha is pinned: %w", err)
		}
	}

	if sha != "" {
		// The pin may be a short hash, tag, or branch name; resolve it
		// so the posted status attaches to a full commit SHA.
		full, rerr := gitinfo.ResolveSHA(env.Workdir, sha)
		if rerr != nil {
			return rerr
		}
		wt, wterr := repo.Worktree()
		if wterr != nil {
			return fmt.Errorf("opening worktree: %w", wterr)
		}
		if cerr := wt.Checkout(&git.CheckoutOptions{Hash: plumbing.NewHash(full)}); cerr != nil {
			return fmt.Errorf("checking out %s: %w", sha, cerr)
		}
		env.SHA = full
		return nil
	}

	// Nothing pinned; record what HEAD points at so the status can
	// still attach to a concrete commit.
	head, herr := repo.Head()
	if herr != nil {
		return fmt.Errorf("reading HEAD: %w", herr)
	}
	env.SHA = head.Hash().String()
	return nil
}
