// Package config provides the Config struct and loader for .archlab.yaml
// files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/spboyer/archlab/internal/bitbudget"
	"github.com/spboyer/archlab/internal/utils"
)

// FileName is the configuration file looked up by Load.
const FileName = ".archlab.yaml"

// Default values. New() references them and no other code should duplicate
// them.
const (
	DefaultResultsPrefix = "results"
	DefaultReportPath    = "final_results"
	DefaultReportAppend  = true
	DefaultSlots         = 0

	DefaultFullRegDir    = "results_full_reg"
	DefaultPartialRegDir = "results_partial_reg"
	DefaultPlotOutput    = "plot.png"
	DefaultPlotWidth     = 12.0
	DefaultPanelHeight   = 4.0

	DefaultBitBudget = bitbudget.DefaultBudget
)

// AggregateConfig controls archlab aggregate.
type AggregateConfig struct {
	Prefix string `yaml:"prefix,omitempty"`
	Report string `yaml:"report,omitempty"`
	Append *bool  `yaml:"append,omitempty"`
	Slots  *int   `yaml:"slots,omitempty"`
}

// PlotConfig controls archlab plot. Sizes are in inches.
type PlotConfig struct {
	FullDir     string  `yaml:"full_dir,omitempty"`
	PartialDir  string  `yaml:"partial_dir,omitempty"`
	Output      string  `yaml:"output,omitempty"`
	Width       float64 `yaml:"width_in,omitempty"`
	PanelHeight float64 `yaml:"panel_height_in,omitempty"`
}

// BitsConfig controls archlab bits.
type BitsConfig struct {
	Budget     *int              `yaml:"budget,omitempty"`
	Predictors []bitbudget.Entry `yaml:"predictors,omitempty"`
	Totals     []bitbudget.Total `yaml:"totals,omitempty"`
}

// Config is the top-level configuration loaded from .archlab.yaml.
type Config struct {
	Aggregate AggregateConfig `yaml:"aggregate,omitempty"`
	Plot      PlotConfig      `yaml:"plot,omitempty"`
	Bits      BitsConfig      `yaml:"bits,omitempty"`
}

// New returns a Config with all hard-coded defaults populated.
func New() *Config {
	return &Config{
		Aggregate: AggregateConfig{
			Prefix: DefaultResultsPrefix,
			Report: DefaultReportPath,
			Append: utils.Ptr(DefaultReportAppend),
			Slots:  utils.Ptr(DefaultSlots),
		},
		Plot: PlotConfig{
			FullDir:     DefaultFullRegDir,
			PartialDir:  DefaultPartialRegDir,
			Output:      DefaultPlotOutput,
			Width:       DefaultPlotWidth,
			PanelHeight: DefaultPanelHeight,
		},
		Bits: BitsConfig{
			Budget:     utils.Ptr(DefaultBitBudget),
			Predictors: bitbudget.DefaultEntries(),
			Totals:     bitbudget.DefaultTotals(),
		},
	}
}

// Load finds .archlab.yaml by walking up from startDir (max 10 levels) and
// merges it onto the defaults. If no config file is found, returns defaults
// with a nil error.
func Load(startDir string) (*Config, error) {
	data, err := findConfigFile(startDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return New(), nil
		}
		return nil, fmt.Errorf("loading %s: %w", FileName, err)
	}
	return parse(data)
}

// LoadFile loads the configuration at path. Unlike Load, a missing file is
// an error.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	cfg, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func parse(data []byte) (*Config, error) {
	if err := ValidateBytes(data); err != nil {
		return nil, err
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", FileName, err)
	}

	cfg := New()
	mergeConfig(cfg, &fileCfg)
	return cfg, nil
}

// findConfigFile walks up from dir looking for .archlab.yaml (max 10 levels).
// Returns os.ErrNotExist if no config file is found.
func findConfigFile(dir string) ([]byte, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for i := 0; i < 10; i++ {
		p := filepath.Join(dir, FileName)
		data, err := os.ReadFile(p)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return nil, os.ErrNotExist
}

// mergeConfig overlays non-zero values from src onto dst.
func mergeConfig(dst, src *Config) {
	// Aggregate
	if src.Aggregate.Prefix != "" {
		dst.Aggregate.Prefix = src.Aggregate.Prefix
	}
	if src.Aggregate.Report != "" {
		dst.Aggregate.Report = src.Aggregate.Report
	}
	if src.Aggregate.Append != nil {
		dst.Aggregate.Append = src.Aggregate.Append
	}
	if src.Aggregate.Slots != nil {
		dst.Aggregate.Slots = src.Aggregate.Slots
	}

	// Plot
	if src.Plot.FullDir != "" {
		dst.Plot.FullDir = src.Plot.FullDir
	}
	if src.Plot.PartialDir != "" {
		dst.Plot.PartialDir = src.Plot.PartialDir
	}
	if src.Plot.Output != "" {
		dst.Plot.Output = src.Plot.Output
	}
	if src.Plot.Width != 0 {
		dst.Plot.Width = src.Plot.Width
	}
	if src.Plot.PanelHeight != 0 {
		dst.Plot.PanelHeight = src.Plot.PanelHeight
	}

	// Bits. Default totals name default predictors, so a file that brings
	// its own predictors also brings its own totals.
	if src.Bits.Budget != nil {
		dst.Bits.Budget = src.Bits.Budget
	}
	if src.Bits.Predictors != nil {
		dst.Bits.Predictors = src.Bits.Predictors
		dst.Bits.Totals = nil
	}
	if src.Bits.Totals != nil {
		dst.Bits.Totals = src.Bits.Totals
	}
}
