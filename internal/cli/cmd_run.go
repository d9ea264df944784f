package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/marcohefti/singlish-lab/internal/config"
	"github.com/marcohefti/singlish-lab/internal/engines"
	"github.com/marcohefti/singlish-lab/internal/fixture"
	"github.com/marcohefti/singlish-lab/internal/history"
	"github.com/marcohefti/singlish-lab/internal/ids"
	"github.com/marcohefti/singlish-lab/internal/page"
	"github.com/marcohefti/singlish-lab/internal/report"
	"github.com/marcohefti/singlish-lab/internal/runner"
	"github.com/marcohefti/singlish-lab/internal/schema"
	"github.com/marcohefti/singlish-lab/internal/store"
)

const (
	pollInterval = 100 * time.Millisecond
	historyLock  = 10 * time.Second
)

type runFlags struct {
	sel          selectFlags
	headed       bool
	headless     bool
	browser      string
	reporters    []string
	workers      int
	retries      int
	failFast     bool
	allowTracked bool
	outRoot      string
	baseURL      string
	screenshot   string
	trace        string
	progress     string
	jsonOut      bool
	noHistory    bool
	chromePath   string
	noSandbox    bool
	chromeFlags  string
}

func (r Runner) newRunCmd(exit *int) *cobra.Command {
	var f runFlags
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run fixtures against the target page",
		Long: `Run drives the target page once per fixture: navigate, clear, type, wait for output,
read it back and assert. Exits 0 when every selected fixture passed, 1 otherwise.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			code, err := r.runSuite(cmd, f)
			if err != nil {
				return err
			}
			*exit = code
			return nil
		},
	}
	fs := cmd.Flags()
	f.sel.register(fs)
	fs.BoolVar(&f.headed, "headed", false, "show the browser window")
	fs.BoolVar(&f.headless, "headless", false, "run the browser headless (default)")
	fs.StringVar(&f.browser, "browser", "", "browser engine: "+engines.CLIUsageValues())
	fs.StringSliceVar(&f.reporters, "reporter", []string{"list", "html"}, "reporters: list,json,html")
	fs.IntVar(&f.workers, "workers", 0, "parallel workers, each with an isolated browser context")
	fs.IntVar(&f.retries, "retries", 0, "retries per fixture")
	fs.BoolVar(&f.failFast, "fail-fast", false, "skip remaining fixtures after the first failure")
	fs.BoolVar(&f.allowTracked, "allow-tracked", false, "tracked known-defect failures do not fail the run")
	fs.StringVar(&f.outRoot, "out-root", "", "artifact root (default .sgl)")
	fs.StringVar(&f.baseURL, "base-url", "", "page under test")
	fs.StringVar(&f.screenshot, "screenshot", "", "screenshot mode: off|on|only-on-failure")
	fs.StringVar(&f.trace, "trace", "", "trace mode: off|on|on-first-retry|retain-on-failure")
	fs.StringVar(&f.progress, "progress-jsonl", "", "append progress events to a file, or - for stderr")
	fs.BoolVar(&f.jsonOut, "json", false, "print run.json instead of the list report")
	fs.BoolVar(&f.noHistory, "no-history", false, "do not record results in history.db")
	fs.StringVar(&f.chromePath, "chrome-path", os.Getenv("SGL_CHROME_PATH"), "chromium binary (env SGL_CHROME_PATH)")
	fs.BoolVar(&f.noSandbox, "no-sandbox", envBool("SGL_NO_SANDBOX"), "disable the chromium sandbox (env SGL_NO_SANDBOX)")
	fs.StringVar(&f.chromeFlags, "chrome-flags", os.Getenv("SGL_CHROME_FLAGS"), "extra chromium flags, comma separated")
	return cmd
}

func envBool(name string) bool {
	b, _ := strconv.ParseBool(strings.TrimSpace(os.Getenv(name)))
	return b
}

func (f runFlags) overrides(cmd *cobra.Command) (config.Overrides, error) {
	o := config.Overrides{
		OutRoot:    f.outRoot,
		BaseURL:    f.baseURL,
		Browser:    f.browser,
		Screenshot: f.screenshot,
		Trace:      f.trace,
	}
	fs := cmd.Flags()
	if fs.Changed("headed") && fs.Changed("headless") {
		return config.Overrides{}, usageError("--headed and --headless are mutually exclusive")
	}
	if fs.Changed("headed") {
		v := !f.headed
		o.Headless = &v
	}
	if fs.Changed("headless") {
		v := f.headless
		o.Headless = &v
	}
	if fs.Changed("workers") {
		v := f.workers
		o.Workers = &v
	}
	if fs.Changed("retries") {
		v := f.retries
		o.Retries = &v
	}
	return o, nil
}

func parseReporters(in []string) (map[string]bool, error) {
	out := map[string]bool{}
	for _, r := range in {
		r = strings.ToLower(strings.TrimSpace(r))
		switch r {
		case "list", "json", "html":
			out[r] = true
		case "":
		default:
			return nil, usageError(fmt.Sprintf("unknown reporter %q (expected list|json|html)", r))
		}
	}
	return out, nil
}

func (r Runner) runSuite(cmd *cobra.Command, f runFlags) (int, error) {
	ctx := cmd.Context()
	o, err := f.overrides(cmd)
	if err != nil {
		return 0, err
	}
	reporters, err := parseReporters(f.reporters)
	if err != nil {
		return 0, err
	}
	m, err := config.LoadMerged(o)
	if err != nil {
		return 0, &CliError{Code: codeConfig, Message: err.Error()}
	}
	s := m.Settings
	if !engines.IsSupported(s.Browser) {
		return 0, usageError((&engines.UnsupportedError{Name: s.Browser}).Error())
	}

	_, groups, source, err := f.sel.selectGroups()
	if err != nil {
		return 0, err
	}

	now := r.Now()
	runID, err := ids.NewRunID(now)
	if err != nil {
		return 0, &CliError{Code: codeIO, Message: err.Error()}
	}
	runDir := filepath.Join(s.OutRoot, "runs", runID)
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return 0, &CliError{Code: codeIO, Message: err.Error()}
	}

	progress, err := newProgressEmitter(f.progress, r.Stderr)
	if err != nil {
		return 0, &CliError{Code: codeIO, Message: err.Error()}
	}
	total := fixture.CountFixtures(groups)
	_ = progress.Emit(progressEvent{
		TS:      now.UTC().Format(time.RFC3339Nano),
		Kind:    "run_started",
		RunID:   runID,
		OutDir:  runDir,
		Details: map[string]any{"fixtures": total, "workers": s.Workers, "baseUrl": s.BaseURL},
	})

	runDoc := schema.RunJSONV1{
		SchemaVersion:         schema.ArtifactSchemaV1,
		ArtifactLayoutVersion: schema.ArtifactLayoutVersionV1,
		RunID:                 runID,
		CreatedAt:             now.UTC().Format(time.RFC3339),
		BaseURL:               s.BaseURL,
		Browser:               s.Browser,
		Headless:              s.Headless,
		Workers:               s.Workers,
		Retries:               s.Retries,
		FixtureSource:         source,
	}
	if err := report.WriteRunJSON(runDir, runDoc); err != nil {
		return 0, &CliError{Code: codeIO, Message: err.Error()}
	}

	eng, err := r.OpenEngine(s.Browser, engineOptions(s, f))
	if err != nil {
		return 0, &CliError{Code: codeBrowser, Message: err.Error()}
	}
	defer func() { _ = eng.Close() }()

	if reporters["list"] && !f.jsonOut {
		workers := "worker"
		if s.Workers > 1 {
			workers = "workers"
		}
		fmt.Fprintf(r.Stdout, "Running %d tests using %d %s against %s\n", total, s.Workers, workers, s.BaseURL)
	}

	rep := runner.New(eng, runner.Options{
		RunID:        runID,
		RunDir:       runDir,
		Workers:      s.Workers,
		Retries:      s.Retries,
		FailFast:     f.failFast,
		AllowTracked: f.allowTracked,
		Timeouts:     s.Timeouts,
		PollInterval: pollInterval,
		Screenshot:   s.Screenshot,
		Trace:        s.Trace,
		Now:          r.Now,
		OnEvent: func(ev runner.Event) {
			pe := runnerEvent(runID, ev)
			pe.TS = r.Now().UTC().Format(time.RFC3339Nano)
			_ = progress.Emit(pe)
		},
	}).Run(ctx, groups)

	code := rep.ExitCode(f.allowTracked)
	doc := report.BuildTestResults(runDir, rep)
	if err := report.WriteTestResults(runDir, doc); err != nil {
		return 0, &CliError{Code: codeIO, Message: err.Error()}
	}
	runDoc = report.FinishRunJSON(runDoc, rep, code)
	if err := report.WriteRunJSON(runDir, runDoc); err != nil {
		return 0, &CliError{Code: codeIO, Message: err.Error()}
	}

	if !f.noHistory {
		if err := recordHistory(context.WithoutCancel(ctx), s.OutRoot, runDoc, rep); err != nil {
			r.warn(codeHistory, err.Error())
		}
	}

	var htmlPath string
	if reporters["html"] {
		if htmlPath, err = report.WriteHTML(runDir, doc); err != nil {
			r.warn(codeIO, "html report: "+err.Error())
		}
	}

	switch {
	case f.jsonOut:
		if err := writeJSON(r.Stdout, runDoc); err != nil {
			return 0, err
		}
	case reporters["json"]:
		if err := writeJSON(r.Stdout, doc); err != nil {
			return 0, err
		}
	}
	if reporters["list"] && !f.jsonOut {
		if err := report.WriteList(r.Stdout, doc, report.ListOptions{}); err != nil {
			return 0, &CliError{Code: codeIO, Message: err.Error()}
		}
		if htmlPath != "" {
			fmt.Fprintf(r.Stdout, "\n  html report: %s\n", htmlPath)
		}
	}

	_ = progress.Emit(progressEvent{
		TS:      r.Now().UTC().Format(time.RFC3339Nano),
		Kind:    "run_finished",
		RunID:   runID,
		OutDir:  runDir,
		Details: map[string]any{"exitCode": code, "passed": rep.Summary.Passed, "failed": rep.Summary.Failed, "timedOut": rep.Summary.TimedOut},
	})
	return code, nil
}

func engineOptions(s config.Settings, f runFlags) engines.Options {
	return engines.Options{
		Browser: page.BrowserOptions{
			Headless:      s.Headless,
			ExecPath:      f.chromePath,
			NoSandbox:     f.noSandbox,
			WindowWidth:   int(s.Viewport.Width),
			WindowHeight:  int(s.Viewport.Height),
			ExtraFlagsCSV: f.chromeFlags,
		},
		Session: page.SessionOptions{
			BaseURL:          s.BaseURL,
			InputPlaceholder: s.InputPlaceholder,
			OutputSelector:   s.OutputSelector,
			InputControl:     s.InputControl,
			ViewportWidth:    s.Viewport.Width,
			ViewportHeight:   s.Viewport.Height,
			PageLoadSettle:   s.Timeouts.PageLoad,
			Navigation:       s.Timeouts.Navigation,
		},
	}
}

// recordHistory appends the run to <outRoot>/history.db. Concurrent sgl processes sharing an
// out root serialize on a directory lock.
func recordHistory(ctx context.Context, outRoot string, runDoc schema.RunJSONV1, rep runner.Report) error {
	return store.WithDirLock(filepath.Join(outRoot, ".history.lock"), historyLock, func() error {
		db, err := history.Open(filepath.Join(outRoot, history.FileName))
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()
		exitCode := 0
		if runDoc.ExitCode != nil {
			exitCode = *runDoc.ExitCode
		}
		return db.Record(ctx, history.Run{
			ID:        runDoc.RunID,
			StartedAt: rep.StartedAt,
			BaseURL:   runDoc.BaseURL,
			ExitCode:  exitCode,
		}, history.Entries(rep))
	})
}
