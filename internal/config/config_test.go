package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spboyer/archlab/internal/bitbudget"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestNew_ReturnsAllDefaults(t *testing.T) {
	cfg := New()

	assert.Equal(t, "results", cfg.Aggregate.Prefix)
	assert.Equal(t, "final_results", cfg.Aggregate.Report)
	require.NotNil(t, cfg.Aggregate.Append)
	assert.True(t, *cfg.Aggregate.Append)
	require.NotNil(t, cfg.Aggregate.Slots)
	assert.Equal(t, 0, *cfg.Aggregate.Slots)

	assert.Equal(t, "results_full_reg", cfg.Plot.FullDir)
	assert.Equal(t, "results_partial_reg", cfg.Plot.PartialDir)
	assert.Equal(t, "plot.png", cfg.Plot.Output)
	assert.Equal(t, 12.0, cfg.Plot.Width)
	assert.Equal(t, 4.0, cfg.Plot.PanelHeight)

	require.NotNil(t, cfg.Bits.Budget)
	assert.Equal(t, 33000, *cfg.Bits.Budget)
	assert.Len(t, cfg.Bits.Predictors, 4)
	assert.Len(t, cfg.Bits.Totals, 2)
}

func TestLoad_NoFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, New(), cfg)
}

func TestLoad_FullConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileName, `
aggregate:
  prefix: out
  report: summary.txt
  append: false
  slots: 4
plot:
  full_dir: full
  partial_dir: partial
  output: deps.svg
  width_in: 8
  panel_height_in: 2.5
bits:
  budget: 64000
  predictors:
    - name: big
      kind: tage
      params:
        hist_len: 640
        counter_bits: 3
        tag_bits: 10
        useful_bits: 2
        comp_index_bits: [10, 10, 10]
  totals:
    - name: Big twice
      sum: [big, big]
`)

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "out", cfg.Aggregate.Prefix)
	assert.Equal(t, "summary.txt", cfg.Aggregate.Report)
	assert.False(t, *cfg.Aggregate.Append)
	assert.Equal(t, 4, *cfg.Aggregate.Slots)
	assert.Equal(t, "full", cfg.Plot.FullDir)
	assert.Equal(t, "partial", cfg.Plot.PartialDir)
	assert.Equal(t, "deps.svg", cfg.Plot.Output)
	assert.Equal(t, 8.0, cfg.Plot.Width)
	assert.Equal(t, 2.5, cfg.Plot.PanelHeight)
	assert.Equal(t, 64000, *cfg.Bits.Budget)

	require.Len(t, cfg.Bits.Predictors, 1)
	assert.Equal(t, bitbudget.KindTAGE, cfg.Bits.Predictors[0].Kind)

	results, err := bitbudget.Evaluate(cfg.Bits.Predictors, cfg.Bits.Totals, *cfg.Bits.Budget)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, 15*3*1024+640, results[0].Bits)
	assert.Equal(t, 2*results[0].Bits, results[1].Bits)
}

func TestLoad_PartialConfigKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileName, "aggregate:\n  report: other_results\n")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "other_results", cfg.Aggregate.Report)
	assert.Equal(t, "results", cfg.Aggregate.Prefix)
	assert.True(t, *cfg.Aggregate.Append)
	assert.Equal(t, "results_full_reg", cfg.Plot.FullDir)
	assert.Equal(t, bitbudget.DefaultEntries(), cfg.Bits.Predictors)
	assert.Equal(t, bitbudget.DefaultTotals(), cfg.Bits.Totals)
}

func TestLoad_PredictorsWithoutTotalsDropDefaultTotals(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileName, `
bits:
  predictors:
    - name: g
      kind: global
      params: {pattern_bits: 4, counter_bits: 2}
`)

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Nil(t, cfg.Bits.Totals)
}

func TestLoad_WalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, FileName, "plot:\n  output: parent.png\n")
	child := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(child, 0o755))

	cfg, err := Load(child)
	require.NoError(t, err)
	assert.Equal(t, "parent.png", cfg.Plot.Output)
}

func TestLoad_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileName, "")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, New(), cfg)
}

func TestLoad_SchemaViolations(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileName, `
aggregate:
  slots: -1
  colour: red
bits:
  predictors:
    - name: x
      kind: perceptron
`)

	_, err := Load(dir)
	require.Error(t, err)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	joined := ve.Error()
	assert.Contains(t, joined, "/aggregate/slots")
	assert.Contains(t, joined, "colour")
	assert.Contains(t, joined, "/bits/predictors/0/kind")
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileName, "aggregate: [unclosed\n")

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "YAML parse error")
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "custom.yaml", "aggregate:\n  prefix: sim\n")

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "sim", cfg.Aggregate.Prefix)

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidateBytes_ParamsShapeLeftToDecoder(t *testing.T) {
	// The schema does not constrain params, so a scalar comp_index_bits is
	// reported by the predictor decoder as a type error.
	err := ValidateBytes([]byte(`
bits:
  predictors:
    - name: t
      kind: tage
      params: {comp_index_bits: 9}
`))
	require.NoError(t, err)
}
