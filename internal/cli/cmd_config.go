package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/marcohefti/singlish-lab/internal/config"
)

type configShow struct {
	Settings config.FileV1     `json:"settings"`
	Sources  map[string]string `json:"sources"`
}

func (r Runner) newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage sgl.config.json",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	var (
		configPath string
		outRoot    string
		initJSON   bool
	)
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a project config with every default spelled out",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := config.InitProject(configPath, outRoot)
			if err != nil {
				return &CliError{Code: codeConfig, Message: err.Error()}
			}
			for _, p := range res.Problems {
				r.warn(codeConfig, res.ConfigPath+": "+p)
			}
			if initJSON {
				return writeJSON(r.Stdout, res)
			}
			verb := "kept existing"
			if res.Created {
				verb = "wrote"
			}
			fmt.Fprintf(r.Stdout, "%s %s (outRoot %s)\n", verb, res.ConfigPath, res.OutRoot)
			return nil
		},
	}
	initCmd.Flags().StringVar(&configPath, "config", config.DefaultProjectConfigPath, "project config path")
	initCmd.Flags().StringVar(&outRoot, "out-root", config.DefaultOutRoot, "artifact root")
	initCmd.Flags().BoolVar(&initJSON, "json", false, "print JSON output")

	var showJSON bool
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings and where each came from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := config.LoadMerged(config.Overrides{})
			if err != nil {
				return &CliError{Code: codeConfig, Message: err.Error()}
			}
			out := configShow{Settings: m.Settings.File(), Sources: m.Sources}
			if showJSON {
				return writeJSON(r.Stdout, out)
			}
			if err := writeJSON(r.Stdout, out.Settings); err != nil {
				return err
			}
			keys := make([]string, 0, len(m.Sources))
			for k := range m.Sources {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Fprintf(r.Stdout, "%-11s %s\n", k, m.Sources[k])
			}
			return nil
		},
	}
	showCmd.Flags().BoolVar(&showJSON, "json", false, "print JSON output")

	cmd.AddCommand(initCmd, showCmd)
	return cmd
}
