// Package scale turns entity series into renderer-ready plot data: padded and
// transformed values, axis ranges and tick marks for heatmaps and
// dual-polarity bar plots.
package scale

import (
	"fmt"

	"github.com/cleavviz/cleavviz/pkg/core"
)

// Kind identifies the plot a Scaler produced.
type Kind string

const (
	KindHeatmap  Kind = "heatmap"
	KindDualAxis Kind = "dual-axis"
)

// AxisScale is the scale kind of a rendered axis.
type AxisScale string

const (
	ScaleLinear AxisScale = "linear"
	ScaleLog    AxisScale = "log"
)

// Scaler converts entities into a Plot.
type Scaler interface {
	Scale(entities []core.Entity) (*Plot, error)
}

// AxisSpec describes one rendered axis. TickValues and TickLabels always have
// the same length and are ordered by value.
type AxisSpec struct {
	Range      [2]float64
	TickValues []float64
	TickLabels []string
	Scale      AxisScale
}

// ScaledSeries holds the plotted values of one series together with the
// untransformed values shown on hover.
type ScaledSeries struct {
	Display   []float64
	Hover     []float64
	HoverText []string
}

// ScaledEntity is the scaled form of one input entity.
type ScaledEntity struct {
	Label    string
	LabelPos string
	LabelNeg string
	Positive ScaledSeries
	Negative *ScaledSeries // nil for heatmap rows
}

// Extents records the maxima and the mirror factor of a dual-axis plot.
type Extents struct {
	MaxYPos             float64
	MaxYNeg             float64
	MaxScaledYPos       float64
	MaxScaledYNeg       float64
	NegativeScaleFactor float64
	Degenerate          bool // both polarities had zero extent
}

// Plot is the renderer-agnostic output of a Scaler.
type Plot struct {
	Kind      Kind
	Legend    [2]string // Positive and negative trace names (dual-axis)
	Positions []int     // 1-based amino acid positions shared by all rows
	Entities  []ScaledEntity
	Axes      []AxisSpec
	Extents   *Extents

	// Empty is set when no entities were supplied. Renderers should show a
	// "no data" message rather than an empty chart.
	Empty bool
}

// Matrix returns the plotted positive rows, the heatmap z matrix.
func (p *Plot) Matrix() [][]float64 {
	z := make([][]float64, len(p.Entities))
	for i, e := range p.Entities {
		z[i] = e.Positive.Display
	}
	return z
}

// Labels returns the entity labels in row order.
func (p *Plot) Labels() []string {
	labels := make([]string, len(p.Entities))
	for i, e := range p.Entities {
		labels[i] = e.Label
	}
	return labels
}

func positions(n int) []int {
	xs := make([]int, n)
	for i := range xs {
		xs[i] = i + 1
	}
	return xs
}

func validate(entities []core.Entity) error {
	for i := range entities {
		if err := entities[i].Validate(); err != nil {
			return fmt.Errorf("entity %d: %w", i, err)
		}
	}
	return nil
}

func scaledSeries(display, hover []float64) ScaledSeries {
	return ScaledSeries{
		Display:   display,
		Hover:     hover,
		HoverText: core.FormatValues(hover),
	}
}
