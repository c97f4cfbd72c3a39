package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/spboyer/archlab/internal/config"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archlab",
		Short: "archlab - helpers for the computer architecture labs",
		Long: `archlab bundles the small tools used alongside the Pin based labs.

It sizes branch predictor configurations against the storage budget,
aggregates predictor accuracy from simulation outputs, and plots full
register against partial register dependency distance histograms.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	// Add subcommands
	cmd.AddCommand(newBitsCommand())
	cmd.AddCommand(newAggregateCommand())
	cmd.AddCommand(newPlotCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}

// loadConfig reads the file given by --config, or looks for .archlab.yaml
// starting at dir.
func loadConfig(path, dir string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load(dir)
}
