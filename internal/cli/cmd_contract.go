package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marcohefti/singlish-lab/internal/contract"
)

func (r Runner) newContractCmd() *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "contract",
		Short: "Print the artifact layout, commands and error codes sgl guarantees",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := contract.Build(r.Version)
			if jsonOut {
				return writeJSON(r.Stdout, c)
			}
			fmt.Fprintf(r.Stdout, "%s %s (artifact layout v%d, trace v%d)\n", c.Name, c.Version, c.ArtifactLayoutVersion, c.TraceSchemaVersion)
			for _, sub := range c.Commands {
				fmt.Fprintf(r.Stdout, "  %-12s %s\n", sub.ID, sub.Summary)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print JSON output")
	return cmd
}
