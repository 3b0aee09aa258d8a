package ticks

import (
	"math"

	"gonum.org/v1/plot"

	"github.com/cleavviz/cleavviz/pkg/core"
)

// Linear implements the plot.Ticker interface on top of LinearTicks. Zero is
// added when it lies inside the axis range.
type Linear struct {
	Count int // Interior ticks; 2 when unset
}

// Ticks returns the ticks between min and max.
// It implements the plot.Ticker interface.
func (t Linear) Ticks(min, max float64) []plot.Tick {
	count := t.Count
	if count <= 0 {
		count = 2
	}

	vals, err := LinearTicks(max, count)
	if err != nil {
		return plot.DefaultTicks{}.Ticks(min, max)
	}

	var out []plot.Tick
	if min <= 0 && max >= 0 {
		out = append(out, plot.Tick{Value: 0, Label: "0"})
	}
	for _, v := range vals {
		if v >= min {
			out = append(out, plot.Tick{Value: v, Label: core.FormatValue(v)})
		}
	}
	return out
}

// Log implements the plot.Ticker interface for axes whose coordinates are
// already log10 transformed, such as a log-scaled heatmap color bar.
type Log struct {
	Count int // Requested ticks; DefaultTickCount when unset
}

// Ticks returns the ticks between min and max, labeled in original scale.
// It implements the plot.Ticker interface.
func (t Log) Ticks(min, max float64) []plot.Tick {
	set := LogTicks([][]float64{{math.Pow(10, max)}}, t.Count)

	var out []plot.Tick
	for i, v := range set.Values {
		if v < min-tolerance {
			continue
		}
		out = append(out, plot.Tick{Value: v, Label: set.Labels[i]})
	}
	return out
}
