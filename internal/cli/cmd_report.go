package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/marcohefti/singlish-lab/internal/config"
	"github.com/marcohefti/singlish-lab/internal/ids"
	"github.com/marcohefti/singlish-lab/internal/report"
)

func (r Runner) newReportCmd() *cobra.Command {
	var (
		outRoot   string
		reporters []string
		verbose   bool
	)
	cmd := &cobra.Command{
		Use:   "report [runId|runDir]",
		Short: "Re-render the reports of a finished run (default: latest)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			want, err := parseReporters(reporters)
			if err != nil {
				return err
			}
			m, err := config.LoadMerged(config.Overrides{OutRoot: outRoot})
			if err != nil {
				return &CliError{Code: codeConfig, Message: err.Error()}
			}
			arg := ""
			if len(args) == 1 {
				arg = args[0]
			}
			runDir, err := resolveRunDir(m.OutRoot, arg)
			if err != nil {
				return err
			}
			doc, err := report.LoadTestResults(runDir)
			if err != nil {
				return asCliError(err, codeIO)
			}

			if want["html"] {
				p, err := report.WriteHTML(runDir, doc)
				if err != nil {
					return &CliError{Code: codeIO, Message: err.Error()}
				}
				if !want["json"] {
					defer fmt.Fprintf(r.Stdout, "\n  html report: %s\n", p)
				}
			}
			if want["json"] {
				return writeJSON(r.Stdout, doc)
			}
			if want["list"] {
				if err := report.WriteList(r.Stdout, doc, report.ListOptions{Verbose: verbose}); err != nil {
					return &CliError{Code: codeIO, Message: err.Error()}
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&outRoot, "out-root", "", "artifact root (default .sgl)")
	cmd.Flags().StringSliceVar(&reporters, "reporter", []string{"list"}, "reporters: list,json,html")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show input/expected/observed for every test")
	return cmd
}

// resolveRunDir accepts a run id, a run directory, or nothing (the newest run under outRoot).
func resolveRunDir(outRoot, arg string) (string, error) {
	if arg != "" {
		if ids.IsValidRunID(arg) {
			return filepath.Join(outRoot, "runs", arg), nil
		}
		if info, err := os.Stat(arg); err == nil && info.IsDir() {
			return arg, nil
		}
		return "", usageError(fmt.Sprintf("%q is neither a run id nor a run directory", arg))
	}
	entries, err := os.ReadDir(filepath.Join(outRoot, "runs"))
	if err != nil && !os.IsNotExist(err) {
		return "", &CliError{Code: codeIO, Message: err.Error()}
	}
	var runs []string
	for _, e := range entries {
		if e.IsDir() && ids.IsValidRunID(e.Name()) {
			runs = append(runs, e.Name())
		}
	}
	if len(runs) == 0 {
		return "", &CliError{Code: codeMissingArtifact, Message: "no runs under " + filepath.Join(outRoot, "runs")}
	}
	sort.Strings(runs)
	return filepath.Join(outRoot, "runs", runs[len(runs)-1]), nil
}
