package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/spboyer/archlab/internal/outcome"
	"github.com/spboyer/archlab/internal/reporting"
	"github.com/spboyer/archlab/internal/utils"
)

var (
	aggregateConfigPath string
	aggregateDir        string
)

func newAggregateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "aggregate",
		Short: "Summarize branch predictor accuracy from simulation outputs",
		Long: `Scan every results* directory for branch predictor outcome files.

Each file holds correct and incorrect prediction counts in alternating
positions. Its accuracy is written to the report file ("final_results" by
default), followed by a total for each directory. A file without any counts
stops the run.`,
		Args: cobra.NoArgs,
		RunE: aggregateCommandE,
	}

	cmd.Flags().StringVar(&aggregateConfigPath, "config", "", "Path to a config file (default: search for .archlab.yaml)")
	cmd.Flags().StringVar(&aggregateDir, "dir", ".", "Directory containing the results* directories")

	return cmd
}

func aggregateCommandE(cmd *cobra.Command, _ []string) (err error) {
	cfg, err := loadConfig(aggregateConfigPath, aggregateDir)
	if err != nil {
		return err
	}

	reportPath := utils.ResolvePath(cfg.Aggregate.Report, aggregateDir)
	report := reporting.NewReport(reportPath, *cfg.Aggregate.Append)
	defer func() {
		if cerr := report.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing report: %w", cerr)
		}
	}()

	results, err := outcome.Aggregate(aggregateDir, outcome.Options{
		Prefix: cfg.Aggregate.Prefix,
		Slots:  *cfg.Aggregate.Slots,
	}, report)
	if err != nil {
		return fmt.Errorf("aggregating results: %w", err)
	}

	for _, r := range results {
		slog.Info("Aggregated result directory", "dir", r.Dir, "files", len(r.Files),
			"correct", r.Counts.Correct, "incorrect", r.Counts.Incorrect)
	}

	out := cmd.OutOrStdout()
	if !report.Opened() {
		fmt.Fprintf(out, "No %s* results found in %s\n", cfg.Aggregate.Prefix, aggregateDir) //nolint:errcheck
		return nil
	}
	fmt.Fprintf(out, "Report written: %s\n", report.Path()) //nolint:errcheck
	return nil
}
