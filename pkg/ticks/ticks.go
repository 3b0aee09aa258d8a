// Package ticks computes axis tick positions and labels for linear and
// logarithmic axes.
//
// The scalers use LinearTicks, LogTicks and RangeTicks directly. Linear and
// Log wrap the same rules as gonum plot.Ticker values; they are the entry
// point for renderers drawing a scaled plot with gonum.org/v1/plot.
package ticks

import (
	"fmt"
	"math"

	"github.com/cleavviz/cleavviz/pkg/core"
)

const (
	// DefaultTickCount is the number of color-bar ticks when none is requested.
	DefaultTickCount = 4

	// maxPrecision bounds the decimal places tried by LinearTicks.
	maxPrecision = 12

	// tolerance absorbs accumulated floating point error when stepping.
	tolerance = 1e-9

	// maxDecade is the largest power of ten representable as a float64.
	maxDecade = 308
)

// InvalidRangeError reports a tick request over a range that cannot hold
// positive ticks.
type InvalidRangeError struct {
	Max   float64
	Count int
}

func (e *InvalidRangeError) Error() string {
	if e.Count < 1 {
		return fmt.Sprintf("invalid tick range: count %d must be at least 1", e.Count)
	}
	return fmt.Sprintf("invalid tick range: max %g must be positive", e.Max)
}

// TickSet is a color-bar tick description.
type TickSet struct {
	Values []float64 // Tick positions in plotted (possibly log) space
	Labels []string  // Labels in original scale
	ZMin   float64
	ZMax   float64
}

// LinearTicks divides [0, max] into count interior ticks at max/(count+1)
// spacing, rounded half up to integers. For small ranges where integer
// rounding would collapse or reach max, the coarsest decimal precision that
// keeps the ticks strictly increasing, positive and below max is used.
func LinearTicks(max float64, count int) ([]float64, error) {
	if count < 1 || math.IsNaN(max) || math.IsInf(max, 0) || max <= 0 {
		return nil, &InvalidRangeError{Max: max, Count: count}
	}

	step := max / float64(count+1)
	for prec := 0; prec <= maxPrecision; prec++ {
		vals := make([]float64, count)
		for i := range vals {
			vals[i] = core.RoundFloat(step*float64(i+1), prec)
		}
		if interior(vals, max) {
			return vals, nil
		}
	}

	vals := make([]float64, count)
	for i := range vals {
		vals[i] = step * float64(i+1)
	}
	return vals, nil
}

// interior reports whether vals are strictly increasing within (0, max).
func interior(vals []float64, max float64) bool {
	prev := 0.0
	for _, v := range vals {
		if v <= prev || v >= max {
			return false
		}
		prev = v
	}
	return true
}

// LogTicks builds color-bar ticks for a log-scaled heatmap. The floor is fixed
// at zero rather than the smallest value so the scale always starts at a true
// zero. Positions are in log10 space, labels in original scale. The top decade
// is capped at 1e308, so +Inf yields the same ticks as math.MaxFloat64.
func LogTicks(matrix [][]float64, tickCount int) TickSet {
	if tickCount <= 0 {
		tickCount = DefaultTickCount
	}
	if tickCount < 2 {
		tickCount = 2
	}

	minVal := 0.0
	maxVal := matrixMax(matrix)
	if math.IsInf(maxVal, 1) {
		maxVal = math.MaxFloat64
	}

	logMin := math.Floor(math.Log10(positiveOr(minVal, 1)))
	logMax := logMin
	if maxVal > 0 {
		logMax = math.Max(logMin, math.Ceil(core.Log10(maxVal)))
		logMax = math.Min(logMax, maxDecade)
	}

	step := (logMax - logMin) / float64(tickCount-1)
	if logMax-logMin > 3 {
		step = math.Floor(step)
	}
	if step <= 0 {
		step = 1
	}

	set := TickSet{ZMin: logMin, ZMax: logMax}
	n := int(math.Floor((logMax-logMin)/step+tolerance)) + 1
	for i := 0; i < n; i++ {
		v := logMin + float64(i)*step
		set.Values = append(set.Values, v)
		set.Labels = append(set.Labels, core.FormatValue(core.Pow10(v)))
	}
	return set
}

// RangeTicks builds evenly spaced color-bar ticks from zero to the largest
// value of a linearly scaled heatmap.
func RangeTicks(matrix [][]float64, tickCount int) TickSet {
	if tickCount <= 0 {
		tickCount = DefaultTickCount
	}
	if tickCount < 2 {
		tickCount = 2
	}

	maxVal := matrixMax(matrix)
	set := TickSet{ZMin: 0, ZMax: maxVal}
	if maxVal <= 0 {
		set.Values = []float64{0}
		set.Labels = []string{"0"}
		return set
	}

	step := maxVal / float64(tickCount-1)
	for i := 0; i < tickCount; i++ {
		v := float64(i) * step
		set.Values = append(set.Values, v)
		set.Labels = append(set.Labels, core.FormatValue(v))
	}
	return set
}

func matrixMax(matrix [][]float64) float64 {
	max := 0.0
	for _, row := range matrix {
		max = core.MaxValue(row, max)
	}
	return max
}

func positiveOr(v, fallback float64) float64 {
	if v > 0 {
		return v
	}
	return fallback
}
