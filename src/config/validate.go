package config

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

var validProviders = map[string]bool{
	"":       true, // auto-detect
	"github": true,
	"gitlab": true,
	"gitea":  true,
}

// Validate checks structural invariants of a loaded Config.
// Returns warnings (soft issues) and a hard error if the config is invalid.
func Validate(cfg *Config) (warnings []string, err error) {
	var errs []string

	// ── Pipeline ──────────────────────────────────────────────────────────

	if c := cfg.Pipeline.Checkout; !c.Skip {
		if c.Depth < 0 {
			errs = append(errs, fmt.Sprintf("pipeline.checkout: depth must be >= 0, got %d", c.Depth))
		}
		if c.URL == "" && c.SHA == "" {
			warnings = append(warnings, "pipeline.checkout: no url or sha; workdir is used as-is")
		}
	}

	if s := cfg.Pipeline.Setup; !s.Skip && s.Requires != "" {
		if _, cerr := semver.NewConstraint(s.Requires); cerr != nil {
			errs = append(errs, fmt.Sprintf("pipeline.setup.requires: invalid constraint %q: %v", s.Requires, cerr))
		}
	}

	if i := cfg.Pipeline.Install; !i.Skip {
		for _, e := range i.Extras {
			if strings.ContainsAny(e, "[], ") {
				errs = append(errs, fmt.Sprintf("pipeline.install.extras: invalid extra name %q", e))
			}
		}
	}

	// ── Report ────────────────────────────────────────────────────────────

	targetIDs := make(map[string]bool)
	for i, t := range cfg.Report.Targets {
		tpath := fmt.Sprintf("report.targets[%d]", i)

		if t.ID != "" {
			if targetIDs[t.ID] {
				errs = append(errs, fmt.Sprintf("%s: duplicate target id %q", tpath, t.ID))
			}
			targetIDs[t.ID] = true
		}

		if !validProviders[t.Provider] {
			errs = append(errs, fmt.Sprintf("%s: unknown provider %q (supported: github, gitlab, gitea)", tpath, t.Provider))
		}
		if t.Provider == "" && t.URL == "" {
			warnings = append(warnings, fmt.Sprintf("%s: neither provider nor url set; will auto-detect from git remote", tpath))
		}
	}

	if r := cfg.Report.Retry; r.Attempts < 0 {
		errs = append(errs, fmt.Sprintf("report.retry.attempts: must be >= 0, got %d", r.Attempts))
	} else if r.Attempts > 0 && r.Backoff < 0 {
		errs = append(errs, "report.retry.backoff: must be >= 0")
	}

	// ── Badge ─────────────────────────────────────────────────────────────

	if cfg.Badge.FontSize < 0 {
		errs = append(errs, "badge.font_size: must be >= 0")
	}

	if len(errs) > 0 {
		return warnings, fmt.Errorf("invalid config:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return warnings, nil
}
