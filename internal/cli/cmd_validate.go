package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marcohefti/singlish-lab/internal/config"
	"github.com/marcohefti/singlish-lab/internal/validate"
)

func (r Runner) newValidateCmd(exit *int) *cobra.Command {
	var (
		outRoot string
		strict  bool
		jsonOut bool
	)
	cmd := &cobra.Command{
		Use:   "validate [runId|runDir]",
		Short: "Check a run directory's artifacts for consistency (default: latest)",
		Long: `Validate cross-checks run.json, test-results.json, each attempt's result.json and
every listed artifact. Trace lines must be v1 events of their attempt. With --strict,
missing optional artifacts and unfinished runs are errors too.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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
			res, err := validate.Run(runDir, strict)
			if err != nil {
				var ve *validate.CliError
				if errors.As(err, &ve) {
					return &CliError{Code: ve.Code, Message: ve.Message + " (" + ve.Path + ")"}
				}
				return &CliError{Code: codeIO, Message: err.Error()}
			}
			if !res.OK {
				*exit = exitFail
			}
			if jsonOut {
				return writeJSON(r.Stdout, res)
			}
			for _, f := range res.Errors {
				fmt.Fprintf(r.Stdout, "error   %s: %s (%s)\n", f.Code, f.Message, f.Path)
			}
			for _, f := range res.Warnings {
				fmt.Fprintf(r.Stdout, "warning %s: %s (%s)\n", f.Code, f.Message, f.Path)
			}
			status := "ok"
			if !res.OK {
				status = "invalid"
			}
			fmt.Fprintf(r.Stdout, "%s: %s (%d tests, %d attempts)\n", status, res.Path, res.Tests, res.Attempts)
			return nil
		},
	}
	cmd.Flags().StringVar(&outRoot, "out-root", "", "artifact root (default .sgl)")
	cmd.Flags().BoolVar(&strict, "strict", false, "treat warnings as errors")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print JSON output")
	return cmd
}
