package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"

	"github.com/spboyer/archlab/internal/histogram"
	"github.com/spboyer/archlab/internal/plotting"
	"github.com/spboyer/archlab/internal/utils"
)

var (
	plotConfigPath string
	plotDir        string
)

func newPlotCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Plot full vs partial register dependency distance histograms",
		Long: `Plot full register against partial register dependency distances.

Files in results_full_reg and results_partial_reg are paired by their
position in the directory listing, not by name. Each pair becomes one panel
of a single figure, titled with the benchmark name taken from the full
register file.`,
		Args: cobra.NoArgs,
		RunE: plotCommandE,
	}

	cmd.Flags().StringVar(&plotConfigPath, "config", "", "Path to a config file (default: search for .archlab.yaml)")
	cmd.Flags().StringVar(&plotDir, "dir", ".", "Directory containing the histogram directories")

	return cmd
}

func plotCommandE(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(plotConfigPath, plotDir)
	if err != nil {
		return err
	}

	fullDir := utils.ResolvePath(cfg.Plot.FullDir, plotDir)
	partialDir := utils.ResolvePath(cfg.Plot.PartialDir, plotDir)

	panels, err := histogram.LoadPanels(fullDir, partialDir)
	if err != nil {
		return fmt.Errorf("loading histograms: %w", err)
	}
	slog.Debug("Loaded histogram pairs", "full", fullDir, "partial", partialDir, "pairs", len(panels))

	written, err := plotting.Render(panels, utils.ResolvePath(cfg.Plot.Output, plotDir), plotting.Options{
		Width:       vg.Length(cfg.Plot.Width) * vg.Inch,
		PanelHeight: vg.Length(cfg.Plot.PanelHeight) * vg.Inch,
	})
	if err != nil {
		return fmt.Errorf("rendering plot: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Plot written: %s (%d panels)\n", written, len(panels)) //nolint:errcheck
	return nil
}
