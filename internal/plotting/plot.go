// Package plotting draws full register and partial register dependency
// distance histograms side by side.
package plotting

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/spboyer/archlab/internal/histogram"
)

const (
	FullLabel    = "full register"
	PartialLabel = "partial register"

	XLabel = "dependency distance"
	YLabel = "count"

	DefaultFormat = "png"
)

var (
	fullColor    = color.RGBA{R: 255, A: 255}
	partialColor = color.RGBA{B: 255, A: 255}
)

// ErrNoPanels is returned when there is nothing to draw.
var ErrNoPanels = errors.New("no histogram pairs to plot")

// Options sizes the figure.
type Options struct {
	Width       vg.Length
	PanelHeight vg.Length
}

// DefaultOptions returns the figure size used when none is configured.
func DefaultOptions() Options {
	return Options{Width: 12 * vg.Inch, PanelHeight: 4 * vg.Inch}
}

// NewPanelPlot builds the plot for a single panel: both series as lines on
// shared axes with a legend.
func NewPanelPlot(panel histogram.Panel) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = panel.Title
	p.X.Label.Text = XLabel
	p.Y.Label.Text = YLabel
	p.Add(plotter.NewGrid())

	series := []struct {
		label string
		data  histogram.Series
		color color.Color
	}{
		{FullLabel, panel.Full, fullColor},
		{PartialLabel, panel.Partial, partialColor},
	}
	for _, s := range series {
		if len(s.data) == 0 {
			continue
		}
		line, err := plotter.NewLine(toXYs(s.data))
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", panel.Title, s.label, err)
		}
		line.LineStyle.Color = s.color
		line.LineStyle.Width = vg.Points(1.5)
		p.Add(line)
		p.Legend.Add(s.label, line)
	}
	p.Legend.Top = true

	return p, nil
}

// Render stacks one panel per histogram pair into a single figure and
// writes it to path. The image format follows the file extension; a path
// without one gets ".png" appended. It returns the path written.
func Render(panels []histogram.Panel, path string, opts Options) (string, error) {
	if len(panels) == 0 {
		return "", ErrNoPanels
	}
	if opts.Width <= 0 || opts.PanelHeight <= 0 {
		opts = DefaultOptions()
	}

	format := strings.TrimPrefix(filepath.Ext(path), ".")
	if format == "" {
		format = DefaultFormat
		path += "." + format
	}

	plots := make([][]*plot.Plot, len(panels))
	for i, panel := range panels {
		p, err := NewPanelPlot(panel)
		if err != nil {
			return "", err
		}
		plots[i] = []*plot.Plot{p}
	}

	height := opts.PanelHeight * vg.Length(len(panels))
	c, err := draw.NewFormattedCanvas(opts.Width, height, strings.ToLower(format))
	if err != nil {
		return "", fmt.Errorf("creating %s canvas: %w", format, err)
	}

	tiles := draw.Tiles{
		Rows:      len(panels),
		Cols:      1,
		PadX:      vg.Millimeter,
		PadY:      5 * vg.Millimeter,
		PadTop:    2 * vg.Millimeter,
		PadBottom: 2 * vg.Millimeter,
		PadLeft:   2 * vg.Millimeter,
		PadRight:  2 * vg.Millimeter,
	}
	canvases := plot.Align(plots, tiles, draw.New(c))
	for i := range plots {
		plots[i][0].Draw(canvases[i][0])
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", path, err)
	}
	if _, err := c.WriteTo(f); err != nil {
		f.Close() //nolint:errcheck
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", path, err)
	}
	return path, nil
}

func toXYs(s histogram.Series) plotter.XYs {
	pts := make(plotter.XYs, len(s))
	for i, v := range s {
		pts[i].X = float64(i)
		pts[i].Y = float64(v)
	}
	return pts
}
