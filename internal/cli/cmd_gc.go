package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/marcohefti/singlish-lab/internal/config"
	"github.com/marcohefti/singlish-lab/internal/gc"
)

func (r Runner) newGCCmd(exit *int) *cobra.Command {
	var (
		outRoot    string
		maxAgeDays int
		keepRuns   int
		maxTotalMB int64
		dryRun     bool
		jsonOut    bool
	)
	cmd := &cobra.Command{
		Use:   "gc",
		Short: "Delete old run directories (history.db is kept)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if maxAgeDays < 0 || keepRuns < 0 || maxTotalMB < 0 {
				return usageError("gc limits must be >= 0")
			}
			if maxAgeDays == 0 && keepRuns == 0 && maxTotalMB == 0 {
				return usageError("gc needs at least one of --max-age-days, --keep-runs, --max-total-mb")
			}
			m, err := config.LoadMerged(config.Overrides{OutRoot: outRoot})
			if err != nil {
				return &CliError{Code: codeConfig, Message: err.Error()}
			}
			res, err := gc.Run(gc.Opts{
				OutRoot:       m.OutRoot,
				Now:           r.Now(),
				MaxAgeDays:    maxAgeDays,
				KeepRuns:      keepRuns,
				MaxTotalBytes: maxTotalMB * 1024 * 1024,
				DryRun:        dryRun,
			})
			if err != nil {
				return &CliError{Code: codeIO, Message: err.Error()}
			}
			if !res.OK {
				*exit = exitFail
			}
			if jsonOut {
				return writeJSON(r.Stdout, res)
			}
			verb := "deleted"
			if dryRun {
				verb = "would delete"
			}
			for _, d := range res.Deleted {
				fmt.Fprintf(r.Stdout, "%s %s (%s, %d bytes)\n", verb, d.RunID, d.CreatedAt.UTC().Format(time.RFC3339), d.Bytes)
			}
			for _, e := range res.Errors {
				r.warn(codeIO, e)
			}
			fmt.Fprintf(r.Stdout, "%d runs %s, %d kept, %d -> %d bytes\n", len(res.Deleted), verb, len(res.Kept), res.TotalBefore, res.TotalAfter)
			return nil
		},
	}
	cmd.Flags().StringVar(&outRoot, "out-root", "", "artifact root (default .sgl)")
	cmd.Flags().IntVar(&maxAgeDays, "max-age-days", 0, "delete runs older than N days")
	cmd.Flags().IntVar(&keepRuns, "keep-runs", 0, "keep only the N newest finished runs")
	cmd.Flags().Int64Var(&maxTotalMB, "max-total-mb", 0, "delete oldest runs until runs/ fits in N MiB")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report what would be deleted")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print JSON output")
	return cmd
}
