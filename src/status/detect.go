package status

import "strings"

// DetectProvider determines the forge platform from a git remote URL.
func DetectProvider(remoteURL string) Provider {
	lower := strings.ToLower(remoteURL)

	switch {
	case strings.Contains(lower, "github.com"):
		return GitHub
	case strings.Contains(lower, "gitlab"):
		return GitLab
	case strings.Contains(lower, "gitea") || strings.Contains(lower, "forgejo") || strings.Contains(lower, "codeberg"):
		return Gitea
	default:
		return Unknown
	}
}

// BaseURL extracts the forge base URL from a git remote URL.
// Handles SSH (git@host:path) and HTTPS (https://host/path) formats.
func BaseURL(remoteURL string) string {
	url := remoteURL

	// SSH format: git@host:org/repo.git
	if strings.HasPrefix(url, "git@") || strings.Contains(url, "@") && strings.Contains(url, ":") {
		parts := strings.SplitN(url, "@", 2)
		if len(parts) == 2 {
			hostPath := parts[1]
			colonIdx := strings.Index(hostPath, ":")
			if colonIdx >= 0 {
				host := hostPath[:colonIdx]
				return "https://" + host
			}
		}
	}

	// HTTPS format: https://host/org/repo.git
	if strings.HasPrefix(url, "https://") || strings.HasPrefix(url, "http://") {
		withoutScheme := url
		scheme := "https://"
		if strings.HasPrefix(url, "http://") {
			scheme = "http://"
			withoutScheme = strings.TrimPrefix(url, "http://")
		} else {
			withoutScheme = strings.TrimPrefix(url, "https://")
		}
		slashIdx := strings.Index(withoutScheme, "/")
		if slashIdx >= 0 {
			return scheme + withoutScheme[:slashIdx]
		}
		return scheme + withoutScheme
	}

	return url
}

// NewReporter creates a reporter for the given provider.
func NewReporter(provider Provider, baseURL, repository, token string) (Reporter, bool) {
	switch provider {
	case GitHub:
		return NewGitHub(baseURL, repository, token), true
	case GitLab:
		return NewGitLab(baseURL, repository, token), true
	case Gitea:
		return NewGitea(baseURL, repository, token), true
	default:
		return nil, false
	}
}
