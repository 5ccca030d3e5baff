// Package gitinfo reads repository metadata (SHA, branch, remote) for
// local runs where no CI environment supplies it.
package gitinfo

import (
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Info holds git repository metadata.
type Info struct {
	SHA    string // full HEAD commit hash
	Branch string // current branch name, "" when detached
	Remote string // origin URL
}

// Detect opens the repository at rootDir and reads HEAD and the origin
// remote. Returns an error if rootDir is not inside a git repository.
func Detect(rootDir string) (*Info, error) {
	repo, err := git.PlainOpenWithOptions(rootDir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("opening repo at %s: %w", rootDir, err)
	}

	info := &Info{}

	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("reading HEAD: %w", err)
	}
	info.SHA = head.Hash().String()
	if head.Name().IsBranch() {
		info.Branch = head.Name().Short()
	}

	if remote, err := repo.Remote("origin"); err == nil {
		urls := remote.Config().URLs
		if len(urls) > 0 {
			info.Remote = urls[0]
		}
	}

	return info, nil
}

// ResolveSHA resolves a revision (branch, tag, short hash) to a full
// commit hash in the repository at rootDir.
func ResolveSHA(rootDir, rev string) (string, error) {
	repo, err := git.PlainOpenWithOptions(rootDir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", fmt.Errorf("opening repo at %s: %w", rootDir, err)
	}
	hash, err := repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return "", fmt.Errorf("resolving %q: %w", rev, err)
	}
	return hash.String(), nil
}

// ShortSHA truncates a commit hash for display.
func ShortSHA(sha string) string {
	if len(sha) > 8 {
		return sha[:8]
	}
	return sha
}

// RepositoryPath extracts the "owner/repo" project path from a git
// remote URL. Handles SSH (git@host:org/repo.git) and HTTPS
// (https://host/org/repo.git) formats.
func RepositoryPath(remoteURL string) string {
	url := remoteURL

	// SSH format: git@host:org/repo.git
	if idx := strings.Index(url, ":"); idx >= 0 && !strings.HasPrefix(url, "http") {
		path := url[idx+1:]
		return strings.TrimSuffix(strings.TrimPrefix(path, "/"), ".git")
	}

	// HTTPS format: https://host/org/repo.git
	for _, prefix := range []string{"https://", "http://"} {
		if strings.HasPrefix(url, prefix) {
			withoutScheme := strings.TrimPrefix(url, prefix)
			if slashIdx := strings.Index(withoutScheme, "/"); slashIdx >= 0 {
				path := withoutScheme[slashIdx+1:]
				return strings.TrimSuffix(path, ".git")
			}
		}
	}

	return ""
}
