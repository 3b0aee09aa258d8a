package scale

import (
	"fmt"

	"github.com/cleavviz/cleavviz/pkg/core"
	"github.com/cleavviz/cleavviz/pkg/ticks"
)

const (
	// DefaultExtent replaces a scaled maximum when both polarities are flat.
	DefaultExtent = 1.0

	// DefaultRangePadding leaves headroom above the tallest bar.
	DefaultRangePadding = 1.2

	// sideTicks is the number of ticks on each side of zero.
	sideTicks = 2

	// labelPrecision drops the floating point noise left by undoing the
	// mirror factor before a label is formatted.
	labelPrecision = 9
)

// DualAxisScaler scales paired positive/negative series onto one mirrored
// axis per entity.
type DualAxisScaler struct {
	UseLogScaleYPos     bool
	UseLogScaleYNeg     bool
	LogarithmizeDataPos bool
	LogarithmizeDataNeg bool

	// ReferenceMode draws both polarities on one shared numeric scale.
	ReferenceMode bool

	LegendPos    string  // "Intensity" when empty
	LegendNeg    string  // "Count" when empty
	RangePadding float64 // DefaultRangePadding when 0
}

// Scale implements Scaler.
func (d DualAxisScaler) Scale(entities []core.Entity) (*Plot, error) {
	plot := &Plot{
		Kind:   KindDualAxis,
		Legend: [2]string{orDefault(d.LegendPos, "Intensity"), orDefault(d.LegendNeg, "Count")},
	}
	if len(entities) == 0 {
		plot.Empty = true
		return plot, nil
	}
	if err := validate(entities); err != nil {
		return nil, err
	}

	// Pad both polarities together so every row shares one x axis.
	n := len(entities)
	all := make([][]float64, 0, 2*n)
	for i := range entities {
		all = append(all, entities[i].Positive)
	}
	for i := range entities {
		all = append(all, entities[i].Negative)
	}
	all = core.Pad(all)
	rawPos, rawNeg := all[:n], all[n:]

	loggedPos, loggedNeg := rawPos, rawNeg
	if d.LogarithmizeDataPos {
		loggedPos = core.LogTransformAll(rawPos)
	}
	if d.LogarithmizeDataNeg {
		loggedNeg = core.LogTransformAll(rawNeg)
	}

	ext := d.extents(loggedPos, loggedNeg)
	plot.Extents = ext

	axis, err := d.axis(ext)
	if err != nil {
		return nil, err
	}

	plot.Entities = make([]ScaledEntity, n)
	plot.Axes = make([]AxisSpec, n)
	if len(rawPos) > 0 {
		plot.Positions = positions(len(rawPos[0]))
	}

	for i := range entities {
		pos := loggedPos[i]
		if d.UseLogScaleYPos {
			pos = core.LogTransform(pos)
		}

		neg := loggedNeg[i]
		if d.UseLogScaleYNeg {
			neg = core.LogTransform(neg)
		}
		neg = multiply(neg, ext.NegativeScaleFactor)

		negative := scaledSeries(neg, rawNeg[i])
		se := ScaledEntity{
			Label:    entities[i].Label,
			Positive: scaledSeries(pos, rawPos[i]),
			Negative: &negative,
		}
		if d.ReferenceMode {
			se.LabelPos = entities[i].LabelPos
			se.LabelNeg = entities[i].LabelNeg
		}

		plot.Entities[i] = se
		plot.Axes[i] = axis.clone()
	}

	return plot, nil
}

// extents computes the polarity maxima and the factor that mirrors the
// negative half onto the extent of the positive half.
func (d DualAxisScaler) extents(pos, neg [][]float64) *Extents {
	ext := &Extents{}
	for _, row := range pos {
		ext.MaxYPos = core.MaxValue(row, ext.MaxYPos)
	}
	for _, row := range neg {
		ext.MaxYNeg = core.MaxValue(row, ext.MaxYNeg)
	}

	if d.ReferenceMode {
		m := max(ext.MaxYPos, ext.MaxYNeg)
		ext.MaxYPos, ext.MaxYNeg = m, m
	}

	ext.MaxScaledYPos = ext.MaxYPos
	if d.UseLogScaleYPos {
		ext.MaxScaledYPos = core.Log10(ext.MaxYPos)
	}
	ext.MaxScaledYNeg = ext.MaxYNeg
	if d.UseLogScaleYNeg {
		ext.MaxScaledYNeg = core.Log10(ext.MaxYNeg)
	}

	// A flat side borrows the extent of the other one.
	switch {
	case ext.MaxScaledYPos <= 0 && ext.MaxScaledYNeg <= 0:
		ext.MaxScaledYPos, ext.MaxScaledYNeg = DefaultExtent, DefaultExtent
		ext.Degenerate = true
	case ext.MaxScaledYPos <= 0:
		ext.MaxScaledYPos = ext.MaxScaledYNeg
	case ext.MaxScaledYNeg <= 0:
		ext.MaxScaledYNeg = ext.MaxScaledYPos
	}

	ext.NegativeScaleFactor = -(ext.MaxScaledYPos / ext.MaxScaledYNeg)
	return ext
}

// axis builds the shared mirrored axis: negative ticks, zero, positive ticks.
func (d DualAxisScaler) axis(ext *Extents) (AxisSpec, error) {
	posTicks, err := ticks.LinearTicks(ext.MaxScaledYPos, sideTicks)
	if err != nil {
		return AxisSpec{}, fmt.Errorf("positive axis: %w", err)
	}
	negTicks, err := ticks.LinearTicks(ext.MaxScaledYNeg, sideTicks)
	if err != nil {
		return AxisSpec{}, fmt.Errorf("negative axis: %w", err)
	}

	factor := ext.NegativeScaleFactor
	spec := AxisSpec{Scale: ScaleLinear}
	if d.UseLogScaleYPos || d.UseLogScaleYNeg {
		spec.Scale = ScaleLog
	}

	for i := len(negTicks) - 1; i >= 0; i-- {
		v := negTicks[i] * factor
		label := core.RoundFloat(v/factor, labelPrecision)
		if d.UseLogScaleYNeg {
			label = core.Pow10(label)
		}
		spec.TickValues = append(spec.TickValues, v)
		spec.TickLabels = append(spec.TickLabels, core.FormatValue(label))
	}

	spec.TickValues = append(spec.TickValues, 0)
	spec.TickLabels = append(spec.TickLabels, "0")

	for _, v := range posTicks {
		label := v
		if d.UseLogScaleYPos {
			label = core.Pow10(v)
		}
		spec.TickValues = append(spec.TickValues, v)
		spec.TickLabels = append(spec.TickLabels, core.FormatValue(label))
	}

	pad := d.RangePadding
	if pad <= 0 {
		pad = DefaultRangePadding
	}
	spec.Range = [2]float64{ext.MaxScaledYNeg * factor * pad, ext.MaxScaledYPos * pad}

	return spec, nil
}

func (a AxisSpec) clone() AxisSpec {
	a.TickValues = append([]float64(nil), a.TickValues...)
	a.TickLabels = append([]string(nil), a.TickLabels...)
	return a
}

func multiply(values []float64, factor float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = v * factor
	}
	return out
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
