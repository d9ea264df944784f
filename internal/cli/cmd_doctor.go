package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marcohefti/singlish-lab/internal/config"
	"github.com/marcohefti/singlish-lab/internal/doctor"
)

func (r Runner) newDoctorCmd(exit *int) *cobra.Command {
	var (
		outRoot    string
		baseURL    string
		browser    string
		chromePath string
		offline    bool
		jsonOut    bool
	)
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check that a run could start here",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := doctor.Run(cmd.Context(), doctor.Options{
				Overrides:  config.Overrides{OutRoot: outRoot, BaseURL: baseURL, Browser: browser},
				ChromePath: chromePath,
				Offline:    offline,
			})
			if err != nil {
				return &CliError{Code: codeConfig, Message: err.Error()}
			}
			if !res.OK {
				*exit = exitFail
			}
			if jsonOut {
				return writeJSON(r.Stdout, res)
			}
			for _, c := range res.Checks {
				status := "ok  "
				if !c.OK {
					status = "FAIL"
				}
				if c.Message != "" {
					fmt.Fprintf(r.Stdout, "%s  %-15s %s\n", status, c.ID, c.Message)
				} else {
					fmt.Fprintf(r.Stdout, "%s  %s\n", status, c.ID)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&outRoot, "out-root", "", "artifact root (default .sgl)")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "page under test")
	cmd.Flags().StringVar(&browser, "browser", "", "browser engine")
	cmd.Flags().StringVar(&chromePath, "chrome-path", os.Getenv("SGL_CHROME_PATH"), "chromium binary (env SGL_CHROME_PATH)")
	cmd.Flags().BoolVar(&offline, "offline", false, "skip the base URL probe")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print JSON output")
	return cmd
}
