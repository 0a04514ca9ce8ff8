package main

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newTuningCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tuning",
		Short: "Print the effective calculator tuning as YAML",
		Long:  "tuning prints the built-in tables, with the --tuning overlay applied when given. The output is itself a valid overlay file.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, err := g.tuning()
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			defer enc.Close()
			return enc.Encode(t)
		},
	}
}
