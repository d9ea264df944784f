package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/marcohefti/singlish-lab/internal/config"
	"github.com/marcohefti/singlish-lab/internal/history"
)

type historyResult struct {
	Fixtures []history.FixtureStats `json:"fixtures,omitempty"`
	Runs     []history.RunRow       `json:"runs,omitempty"`
}

func (r Runner) newHistoryCmd() *cobra.Command {
	var (
		outRoot     string
		fixtureIDs  []string
		changedOnly bool
		runs        int
		jsonOut     bool
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show per-fixture results across recorded runs",
		Long: `History reads <outRoot>/history.db. Per fixture it prints pass/fail counts, the last
outcome, and flags fixtures whose observed output changed between the last two runs that
executed them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := config.LoadMerged(config.Overrides{OutRoot: outRoot})
			if err != nil {
				return &CliError{Code: codeConfig, Message: err.Error()}
			}
			db, err := history.Open(filepath.Join(m.OutRoot, history.FileName))
			if err != nil {
				return &CliError{Code: codeHistory, Message: err.Error()}
			}
			defer func() { _ = db.Close() }()

			var res historyResult
			if runs > 0 {
				if res.Runs, err = db.Runs(cmd.Context(), runs); err != nil {
					return &CliError{Code: codeHistory, Message: err.Error()}
				}
			} else {
				stats, err := db.Stats(cmd.Context(), fixtureIDs)
				if err != nil {
					return &CliError{Code: codeHistory, Message: err.Error()}
				}
				for _, s := range stats {
					if changedOnly && !s.Changed {
						continue
					}
					res.Fixtures = append(res.Fixtures, s)
				}
			}

			if jsonOut {
				return writeJSON(r.Stdout, res)
			}
			if runs > 0 {
				return writeRunRows(r.Stdout, res.Runs)
			}
			return writeStatsRows(r.Stdout, res.Fixtures)
		},
	}
	cmd.Flags().StringVar(&outRoot, "out-root", "", "artifact root (default .sgl)")
	cmd.Flags().StringSliceVar(&fixtureIDs, "id", nil, "fixture ids to show")
	cmd.Flags().BoolVar(&changedOnly, "changed", false, "only fixtures whose observed output changed")
	cmd.Flags().IntVar(&runs, "runs", 0, "list the N most recent runs instead of fixtures")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print JSON output")
	return cmd
}

func writeStatsRows(w io.Writer, stats []history.FixtureStats) error {
	if len(stats) == 0 {
		_, err := fmt.Fprintln(w, "no recorded results")
		return err
	}
	idWidth := runewidth.StringWidth("FIXTURE")
	for _, s := range stats {
		if n := runewidth.StringWidth(s.FixtureID); n > idWidth {
			idWidth = n
		}
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %4s  %6s  %6s  %7s  %-8s  %s\n", runewidth.FillRight("FIXTURE", idWidth), "RUNS", "PASSED", "FAILED", "TRACKED", "LAST", "OBSERVED")
	for _, s := range stats {
		obs := runewidth.Truncate(oneLine(s.LastObserved), 40, "…")
		if s.Changed {
			obs += "  (changed from " + runewidth.Truncate(oneLine(s.PrevObserved), 40, "…") + ")"
		}
		fmt.Fprintf(&b, "%s  %4d  %6d  %6d  %7d  %-8s  %s\n",
			runewidth.FillRight(s.FixtureID, idWidth), s.Runs, s.Passed, s.Failed, s.Tracked, s.LastOutcome, obs)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeRunRows(w io.Writer, rows []history.RunRow) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "no recorded runs")
		return err
	}
	var b strings.Builder
	for _, rr := range rows {
		fmt.Fprintf(&b, "%s  exit=%d  fixtures=%d  %s  %s\n", rr.RunID, rr.ExitCode, rr.Fixtures, rr.StartedAt, rr.BaseURL)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
