package config

import "time"

// ReportConfig configures the commit-status reporter that runs at the
// pipeline boundary on every exit path.
type ReportConfig struct {
	// Context is the status context label, constant across runs.
	// Default: derived from the CI platform ("github-actions/build"
	// under GitHub Actions, "curtaincall/build" elsewhere).
	Context string `yaml:"context,omitempty"`

	// Description overrides the posted description. Default: the
	// terminal state itself.
	Description string `yaml:"description,omitempty"`

	// Targets are the forges to post to. Empty means a single target
	// auto-detected from the git remote and CI environment.
	Targets []TargetConfig `yaml:"targets,omitempty"`

	// Retry bounds re-attempts on transport failure.
	Retry RetryConfig `yaml:"retry,omitempty"`
}

// TargetConfig identifies one forge to receive the commit status.
type TargetConfig struct {
	// ID names the target in logs. Default: provider name.
	ID string `yaml:"id,omitempty"`

	// Provider is "github", "gitlab", or "gitea". Default: detected
	// from URL.
	Provider string `yaml:"provider,omitempty"`

	// URL is the forge base URL. Default: the canonical host for the
	// provider.
	URL string `yaml:"url,omitempty"`

	// Repository is the "owner/repo" (or GitLab project path) the
	// status attaches to. Default: resolved from the CI environment.
	Repository string `yaml:"repository,omitempty"`

	// Credentials is an env var prefix; the token is read from
	// {Credentials}_TOKEN. Default: the platform token variable
	// (GITHUB_TOKEN / GITLAB_TOKEN / GITEA_TOKEN).
	Credentials string `yaml:"credentials,omitempty"`
}

// RetryConfig bounds status-post retries. Attempts includes the first
// try; zero disables retrying entirely (single fire-and-forget post).
type RetryConfig struct {
	Attempts int           `yaml:"attempts,omitempty"`
	Backoff  time.Duration `yaml:"backoff,omitempty"`
}

// DefaultReportConfig returns reporter defaults: 3 attempts with a 2s
// doubling backoff.
func DefaultReportConfig() ReportConfig {
	return ReportConfig{
		Retry: RetryConfig{
			Attempts: 3,
			Backoff:  2 * time.Second,
		},
	}
}

// BadgeConfig configures the optional status badge artifact.
type BadgeConfig struct {
	// Path is where the SVG is written. Empty disables the badge.
	Path string `yaml:"path,omitempty"`

	// Label is the badge's left cell. Default: the status context.
	Label string `yaml:"label,omitempty"`

	// Font is a TTF/OTF path used for text measurement. Empty uses a
	// width heuristic.
	Font string `yaml:"font,omitempty"`

	// FontSize is the point size. Default: 11.
	FontSize float64 `yaml:"font_size,omitempty"`
}

// DefaultBadgeConfig returns badge defaults.
func DefaultBadgeConfig() BadgeConfig {
	return BadgeConfig{FontSize: 11}
}
