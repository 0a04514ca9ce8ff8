package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/neo-impact-service/internal/scenario"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE...",
		Short: "Validate scenario files against the scenario schema",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, path := range args {
				if _, err := scenario.Load(path); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "FAIL %s\n  %v\n", path, err)
					failed++
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "ok   %s\n", path)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d scenario files invalid", failed, len(args))
			}
			return nil
		},
	}
}
