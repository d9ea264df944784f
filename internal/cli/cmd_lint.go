package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marcohefti/singlish-lab/internal/fixture"
)

type lintResult struct {
	OK       bool              `json:"ok"`
	Source   string            `json:"source"`
	Fixtures int               `json:"fixtures"`
	Findings []fixture.Finding `json:"findings"`
}

func (r Runner) newLintCmd(exit *int) *cobra.Command {
	var (
		sel     selectFlags
		jsonOut bool
		strict  bool
	)
	cmd := &cobra.Command{
		Use:   "lint",
		Short: "Validate fixtures and flag contradictory expectations",
		Long: `Lint loads the fixtures (so structural errors exit with SGL_E_FIXTURE) and reports
warnings such as strict emptiness on inputs a transliterator may echo verbatim.
With --strict any warning exits 1.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, source, err := sel.load()
			if err != nil {
				return err
			}
			res := lintResult{OK: true, Source: source, Fixtures: st.Len(), Findings: st.Lint()}
			if res.Findings == nil {
				res.Findings = []fixture.Finding{}
			}
			if strict && len(res.Findings) > 0 {
				res.OK = false
				*exit = exitFail
			}
			if jsonOut {
				return writeJSON(r.Stdout, res)
			}
			for _, f := range res.Findings {
				fmt.Fprintf(r.Stdout, "%s %s: %s\n", f.Code, f.FixtureID, f.Message)
			}
			fmt.Fprintf(r.Stdout, "%d fixtures, %d warnings (%s)\n", res.Fixtures, len(res.Findings), source)
			return nil
		},
	}
	cmd.Flags().StringVar(&sel.fixtures, "fixtures", "", "fixture file (.yaml/.yml/.json); default is the built-in catalog")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print JSON output")
	cmd.Flags().BoolVar(&strict, "strict", false, "exit 1 when any warning is reported")
	return cmd
}
