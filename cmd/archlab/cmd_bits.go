package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/spboyer/archlab/internal/bitbudget"
)

var bitsConfigPath string

func newBitsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bits",
		Short: "Compute storage bits for branch predictor configurations",
		Long: `Compute the storage bits used by each configured branch predictor.

Predictors (tage, global, pap, tournament) and the totals to report come from
the bits section of .archlab.yaml. Without a config file the lab
configurations are used. Results above the bit budget are marked.`,
		Args: cobra.NoArgs,
		RunE: bitsCommandE,
	}

	cmd.Flags().StringVar(&bitsConfigPath, "config", "", "Path to a config file (default: search for .archlab.yaml)")

	return cmd
}

func bitsCommandE(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(bitsConfigPath, ".")
	if err != nil {
		return err
	}

	budget := 0
	if cfg.Bits.Budget != nil {
		budget = *cfg.Bits.Budget
	}

	results, err := bitbudget.Evaluate(cfg.Bits.Predictors, cfg.Bits.Totals, budget)
	if err != nil {
		return fmt.Errorf("computing bit budget: %w", err)
	}

	printBitsTable(cmd.OutOrStdout(), results, budget)
	return nil
}

func printBitsTable(w io.Writer, results []bitbudget.Result, budget int) {
	nameWidth := 0
	for _, r := range results {
		nameWidth = max(nameWidth, runewidth.StringWidth(r.Name)+1)
	}

	for _, r := range results {
		line := fmt.Sprintf("%s %d", padRight(r.Name+":", nameWidth), r.Bits)
		if r.OverBudget {
			line += fmt.Sprintf("  over budget (%d)", budget)
		}
		fmt.Fprintln(w, line) //nolint:errcheck
	}
}

// padRight pads s with spaces so its terminal display width reaches width.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}
