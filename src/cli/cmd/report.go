package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sofmeright/curtaincall/src/ci"
	"github.com/sofmeright/curtaincall/src/gitinfo"
	"github.com/sofmeright/curtaincall/src/output"
	"github.com/sofmeright/curtaincall/src/status"
	"github.com/spf13/cobra"
)

var (
	repState       string
	repSHA         string
	repRunURL      string
	repDescription string
	repContext     string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Post a commit status for a terminal job state",
	Long: `Post a commit status without running the pipeline. Meant for the
tail of an externally-run job:

  curtaincall report --state "$JOB_STATUS"

The state label is lowercased exactly once before transmission; SHA,
run URL and token default to the CI environment.`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVar(&repState, "state", "", "terminal job state (default: from CI environment)")
	reportCmd.Flags().StringVar(&repSHA, "sha", "", "commit SHA (default: from CI environment, then git HEAD)")
	reportCmd.Flags().StringVar(&repRunURL, "run-url", "", "target URL (default: from CI environment)")
	reportCmd.Flags().StringVar(&repDescription, "description", "", "status description (default: the state)")
	reportCmd.Flags().StringVar(&repContext, "context", "", "status context label (default: platform-derived)")

	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	workdir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}

	rc := ci.Resolve()
	color := output.UseColor()
	w := os.Stdout

	raw := repState
	if raw == "" {
		raw = rc.Status
	}
	if raw == "" {
		return fmt.Errorf("no --state given and the CI environment provides none")
	}

	sha := repSHA
	if sha == "" {
		sha = rc.SHA
	}
	if sha == "" {
		info, derr := gitinfo.Detect(workdir)
		if derr != nil {
			return fmt.Errorf("no commit SHA: %w", derr)
		}
		sha = info.SHA
	}

	runURL := repRunURL
	if runURL == "" {
		runURL = rc.RunURL
	}

	contextLabel := repContext
	if contextLabel == "" {
		contextLabel = statusContext(cfg, rc)
	}

	desc := repDescription
	if desc == "" {
		desc = cfg.Report.Description
	}

	res := status.BuildResult{
		SHA:         sha,
		Status:      status.Normalize(raw),
		RunURL:      runURL,
		Description: desc,
		Context:     contextLabel,
	}

	targets, err := buildTargets(cfg, rc, workdir)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), reportTimeout)
	defer cancel()

	start := time.Now()
	results := status.Fanout(ctx, targets, res)
	elapsed := time.Since(start)

	output.SectionStart(w, "cc_report", "Report")
	sec := output.NewSection(w, "Report", elapsed, color)
	sec.Row("%s  →  %s   %s", gitinfo.ShortSHA(res.SHA), res.Context, res.Status)

	failed := 0
	for _, tr := range results {
		if tr.Err == nil {
			sec.Row("%s %s", output.StatusIcon("success", color), tr.ID)
		} else {
			failed++
			sec.Row("%s %s: %v", output.StatusIcon("failure", color), tr.ID, tr.Err)
		}
	}
	sec.Close()
	output.SectionEnd(w, "cc_report")

	if failed > 0 {
		return fmt.Errorf("%d of %d status posts failed", failed, len(results))
	}
	return nil
}
