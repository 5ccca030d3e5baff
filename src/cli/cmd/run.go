package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sofmeright/curtaincall/src/badge"
	"github.com/sofmeright/curtaincall/src/ci"
	"github.com/sofmeright/curtaincall/src/gitinfo"
	"github.com/sofmeright/curtaincall/src/masker"
	"github.com/sofmeright/curtaincall/src/output"
	"github.com/sofmeright/curtaincall/src/pipeline"
	"github.com/sofmeright/curtaincall/src/status"
	"github.com/spf13/cobra"
)

var (
	runWorkdir    string
	runSkipReport bool
	runBadgePath  string
)

// reportTimeout bounds the final status post so a hung forge cannot
// hold the job open.
const reportTimeout = 2 * time.Minute

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the pipeline and report the commit status",
	Long: `Run the linear pipeline (checkout, setup, install, test) and post
the terminal state as a commit status.

The status post is deferred to the pipeline's outer boundary: it runs
on every exit path (success, failure, or early abort) so a failed
build is never left unreported.`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&runWorkdir, "workdir", "", "pipeline working directory (default: config, then cwd)")
	runCmd.Flags().BoolVar(&runSkipReport, "skip-report", false, "do not post a commit status")
	runCmd.Flags().StringVar(&runBadgePath, "badge", "", "write a status badge SVG to this path")

	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	workdir := runWorkdir
	if workdir == "" {
		workdir = cfg.Pipeline.Workdir
	}
	if workdir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		workdir = wd
	}

	rc := ci.Resolve()
	color := output.UseColor()
	w := os.Stdout

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Secret masking of subprocess output. A masker failure downgrades
	// to unmasked output with a warning rather than blocking the build.
	env := &pipeline.Env{
		Workdir: workdir,
		Config:  cfg.Pipeline,
		Run:     rc,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Verbose: verbose,
	}
	if cfg.Masking.Active() {
		m, err := masker.New(rc.Token)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: secret masking unavailable: %v\n", err)
		} else {
			maskedOut := m.Writer(os.Stdout)
			maskedErr := m.Writer(os.Stderr)
			defer maskedOut.Flush()
			defer maskedErr.Flush()
			env.Stdout = maskedOut
			env.Stderr = maskedErr
		}
	}

	runner, err := pipeline.NewRunner(env)
	if err != nil {
		return err
	}

	output.ContextBlock(w, contextKV(rc))

	report := func(result *pipeline.RunResult) {
		if runSkipReport {
			return
		}
		reportResult(result, rc, workdir, color)
	}

	result := reportAlways(func() *pipeline.RunResult {
		output.SectionStart(w, "cc_pipeline", "Pipeline")
		res := runner.Execute(ctx)

		sec := output.NewSection(w, "Pipeline", res.Duration, color)
		for _, s := range res.Steps {
			detail := s.Duration.Round(time.Millisecond).String()
			if s.Status == "skipped" {
				detail = ""
			}
			if s.Err != nil {
				detail = s.Err.Error()
			}
			output.SummaryRow(w, s.Name, s.Status, detail, color)
		}
		sec.Separator()
		output.SummaryTotal(w, res.Duration, string(res.TerminalState()), color)
		sec.Close()
		output.SectionEnd(w, "cc_pipeline")
		return res
	}, report)

	state := result.TerminalState()
	writeBadge(state, rc)

	if state != status.Success {
		return fmt.Errorf("pipeline finished: %s", state)
	}
	return nil
}

// reportAlways hands run's result to report on every exit path,
// including a panic partway through run. A nil result means the walk
// never completed; buildResult reports that as error.
func reportAlways(run func() *pipeline.RunResult, report func(*pipeline.RunResult)) (result *pipeline.RunResult) {
	defer func() { report(result) }()
	return run()
}

// reportResult posts the terminal state to every target. It must not
// inherit the pipeline's (possibly cancelled) context: cancellation is
// itself a state to report.
func reportResult(result *pipeline.RunResult, rc ci.RunContext, workdir string, color bool) {
	res := buildResult(result, rc, workdir)
	if res.SHA == "" {
		fmt.Fprintln(os.Stderr, "warning: no commit SHA resolved; status not posted")
		return
	}

	targets, err := buildTargets(cfg, rc, workdir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: status not posted: %v\n", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), reportTimeout)
	defer cancel()

	start := time.Now()
	results := status.Fanout(ctx, targets, res)
	elapsed := time.Since(start)

	w := os.Stdout
	output.SectionStart(w, "cc_report", "Report")
	sec := output.NewSection(w, "Report", elapsed, color)
	sec.Row("%s  →  %s   %s", gitinfo.ShortSHA(res.SHA), res.Context, res.Status)
	for _, tr := range results {
		if tr.Err == nil {
			sec.Row("%s %s", output.StatusIcon("success", color), tr.ID)
		} else {
			sec.Row("%s %s: %v", output.StatusIcon("failure", color), tr.ID, tr.Err)
			fmt.Fprintf(os.Stderr, "warning: status post to %s: %v\n", tr.ID, tr.Err)
		}
	}
	sec.Close()
	output.SectionEnd(w, "cc_report")
}

// buildResult assembles the transient BuildResult entity for this run.
// A nil pipeline result (early abort) reports as error.
func buildResult(result *pipeline.RunResult, rc ci.RunContext, workdir string) status.BuildResult {
	state := status.Error
	sha := rc.SHA
	if result != nil {
		state = result.TerminalState()
		if result.SHA != "" {
			sha = result.SHA
		}
	}
	if sha == "" {
		if info, err := gitinfo.Detect(workdir); err == nil {
			sha = info.SHA
		}
	}

	return status.BuildResult{
		SHA:         sha,
		Status:      state,
		RunURL:      rc.RunURL,
		Description: cfg.Report.Description,
		Context:     statusContext(cfg, rc),
	}
}

// writeBadge renders the status badge artifact when configured.
func writeBadge(state status.State, rc ci.RunContext) {
	path := runBadgePath
	if path == "" {
		path = cfg.Badge.Path
	}
	if path == "" {
		return
	}

	engine, err := badge.NewEngine(cfg.Badge.Font, cfg.Badge.FontSize)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: badge: %v\n", err)
		return
	}

	label := cfg.Badge.Label
	if label == "" {
		label = statusContext(cfg, rc)
	}

	b := badge.Badge{Label: label, Value: string(state), Color: badge.StateColor(state)}
	if err := engine.WriteFile(path, b); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
}

func contextKV(rc ci.RunContext) []output.KV {
	var kv []output.KV
	if rc.Repository != "" {
		kv = append(kv, output.KV{Key: "repo", Value: rc.Repository})
	}
	if rc.SHA != "" {
		kv = append(kv, output.KV{Key: "sha", Value: gitinfo.ShortSHA(rc.SHA)})
	}
	if rc.RunID != "" {
		kv = append(kv, output.KV{Key: "run", Value: rc.RunID})
	}
	if rc.Platform != ci.None {
		kv = append(kv, output.KV{Key: "platform", Value: string(rc.Platform)})
	}
	return kv
}
