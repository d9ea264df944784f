package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/marcohefti/singlish-lab/internal/engines"
)

type CliError struct {
	Code    string
	Message string
}

func (e *CliError) Error() string { return e.Message }

type Runner struct {
	Version string
	Now     func() time.Time
	Stdout  io.Writer
	Stderr  io.Writer
	// OpenEngine launches the browser for `sgl run`. Nil means engines.Open.
	OpenEngine func(name string, opts engines.Options) (engines.Engine, error)
}

// Run executes one command line and returns the process exit code.
func (r Runner) Run(args []string) int {
	if r.Stdout == nil {
		r.Stdout = os.Stdout
	}
	if r.Stderr == nil {
		r.Stderr = os.Stderr
	}
	if r.Now == nil {
		r.Now = time.Now
	}
	if r.OpenEngine == nil {
		r.OpenEngine = engines.Open
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	exit := exitOK
	root := r.newRootCmd(&exit)
	root.SetArgs(args)
	root.SetOut(r.Stdout)
	root.SetErr(r.Stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		return r.fail(err)
	}
	return exit
}

func (r Runner) newRootCmd(exit *int) *cobra.Command {
	root := &cobra.Command{
		Use:           "sgl",
		Short:         "sgl - end-to-end checks for a Singlish to Sinhala transliteration page",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err.Error())
	})

	root.AddCommand(r.newRunCmd(exit))
	root.AddCommand(r.newListCmd())
	root.AddCommand(r.newLintCmd(exit))
	root.AddCommand(r.newReportCmd())
	root.AddCommand(r.newHistoryCmd())
	root.AddCommand(r.newDoctorCmd(exit))
	root.AddCommand(r.newConfigCmd())
	root.AddCommand(r.newValidateCmd(exit))
	root.AddCommand(r.newGCCmd(exit))
	root.AddCommand(r.newContractCmd())
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", r.Version)
			return nil
		},
	})
	return root
}

// fail prints err as "<CODE>: <message>" and maps it to an exit code. Errors that are not
// CliErrors come from cobra itself (unknown command, bad args) and count as usage errors.
func (r Runner) fail(err error) int {
	var ce *CliError
	if !errors.As(err, &ce) {
		ce = usageError(err.Error())
	}
	fmt.Fprintf(r.Stderr, "%s: %s\n", ce.Code, ce.Message)
	if ce.Code == codeUsage {
		return exitUsage
	}
	return exitFail
}

func (r Runner) warn(code, msg string) {
	fmt.Fprintf(r.Stderr, "%s: %s\n", code, msg)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return &CliError{Code: codeIO, Message: "failed to encode json"}
	}
	return nil
}
