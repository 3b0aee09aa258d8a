package scale

import (
	"github.com/cleavviz/cleavviz/pkg/core"
	"github.com/cleavviz/cleavviz/pkg/ticks"
)

// HeatmapScaler scales one series per entity into a heatmap matrix.
type HeatmapScaler struct {
	LogarithmizeData bool // Replace the values themselves by log10(v)
	UseLogScale      bool // Map colors on a log10 scale
	TickCount        int  // Color-bar ticks; ticks.DefaultTickCount when 0
}

// Scale implements Scaler. Only the Positive series of each entity is used.
func (h HeatmapScaler) Scale(entities []core.Entity) (*Plot, error) {
	if len(entities) == 0 {
		return &Plot{Kind: KindHeatmap, Empty: true}, nil
	}
	if err := validate(entities); err != nil {
		return nil, err
	}

	raw := make([][]float64, len(entities))
	for i := range entities {
		raw[i] = entities[i].Positive
	}
	display := core.Pad(raw)

	if h.LogarithmizeData {
		display = core.LogTransformAll(display)
	}

	// The color mapping is derived from the display values, so both flags
	// compose: logarithmized data on a log scale is log10(log10(v)).
	logged := core.LogTransformAll(display)

	z := display
	var axis AxisSpec
	if h.UseLogScale {
		z = logged
		set := ticks.LogTicks(display, h.TickCount)
		axis = colorAxis(set, ScaleLog)
	} else {
		set := ticks.RangeTicks(display, h.TickCount)
		axis = colorAxis(set, ScaleLinear)
	}

	plot := &Plot{
		Kind:     KindHeatmap,
		Entities: make([]ScaledEntity, len(entities)),
		Axes:     []AxisSpec{axis},
	}
	if len(display) > 0 {
		plot.Positions = positions(len(display[0]))
	}

	for i := range entities {
		plot.Entities[i] = ScaledEntity{
			Label:    entities[i].Label,
			Positive: scaledSeries(z[i], display[i]),
		}
	}

	return plot, nil
}

func colorAxis(set ticks.TickSet, scale AxisScale) AxisSpec {
	return AxisSpec{
		Range:      [2]float64{set.ZMin, set.ZMax},
		TickValues: set.Values,
		TickLabels: set.Labels,
		Scale:      scale,
	}
}
