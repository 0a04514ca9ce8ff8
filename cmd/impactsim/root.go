package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/neo-impact-service/internal/effects"
	"github.com/couchcryptid/neo-impact-service/internal/observability"
)

type globalFlags struct {
	tuningFile string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:           "impactsim",
		Short:         "NEO impact simulation toolkit",
		Long:          "impactsim runs single impact simulations from flags or scenario files and inspects the calculator tuning.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&g.tuningFile, "tuning", "", "YAML overlay for the calculator tuning tables")
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(newRunCmd(g))
	root.AddCommand(newCheckCmd())
	root.AddCommand(newTuningCmd(g))
	return root
}

func (g *globalFlags) logger(cmd *cobra.Command) *slog.Logger {
	return observability.NewLoggerTo(cmd.ErrOrStderr(), g.logLevel, "text")
}

func (g *globalFlags) tuning() (effects.Tuning, error) {
	if g.tuningFile == "" {
		return effects.DefaultTuning(), nil
	}
	return effects.LoadTuning(g.tuningFile)
}
