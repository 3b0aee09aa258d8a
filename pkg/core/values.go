package core

import (
	"math"
	"strconv"
)

// Missing marks a padded position that holds no measurement. It is NaN so it
// can never be confused with a real zero.
var Missing = math.NaN()

// IsMissing reports whether v is the missing marker.
func IsMissing(v float64) bool {
	return math.IsNaN(v)
}

// Pad right-pads every series with Missing up to the longest length. The
// inputs are copied, never modified.
func Pad(series [][]float64) [][]float64 {
	if len(series) == 0 {
		return [][]float64{}
	}

	maxLen := 0
	for _, s := range series {
		if len(s) > maxLen {
			maxLen = len(s)
		}
	}

	padded := make([][]float64, len(series))
	for i, s := range series {
		row := make([]float64, maxLen)
		n := copy(row, s)
		for j := n; j < maxLen; j++ {
			row[j] = Missing
		}
		padded[i] = row
	}
	return padded
}

// Log10 returns log10(v) for positive v and 0 otherwise. Missing stays missing.
func Log10(v float64) float64 {
	if IsMissing(v) {
		return v
	}
	if v > 0 {
		l := math.Log10(v)
		// exact powers of ten must land on integers or ceil/floor drift a decade
		if r := math.Round(l); math.Pow(10, r) == v {
			return r
		}
		return l
	}
	return 0
}

// Pow10 inverts Log10 for tick labels: 10^x for positive x and 0 otherwise,
// so the floor position keeps reading as a true zero.
func Pow10(x float64) float64 {
	if x > 0 {
		return math.Pow(10, x)
	}
	return 0
}

// LogTransform applies Log10 to every value and returns a new slice.
func LogTransform(values []float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = Log10(v)
	}
	return out
}

// LogTransformAll applies LogTransform to each row.
func LogTransformAll(rows [][]float64) [][]float64 {
	out := make([][]float64, len(rows))
	for i, row := range rows {
		out[i] = LogTransform(row)
	}
	return out
}

// MaxValue returns the largest non-missing value, or floor if every value is
// missing or below it.
func MaxValue(values []float64, floor float64) float64 {
	max := floor
	for _, v := range values {
		if !IsMissing(v) && v > max {
			max = v
		}
	}
	return max
}

// FormatValue renders a value for tick labels and hover text: magnitudes of
// 100 and above in exponential notation, smaller ones as plain numbers, both
// with 3 significant digits. Missing renders as the empty string.
func FormatValue(v float64) string {
	if IsMissing(v) {
		return ""
	}
	if math.Abs(v) >= 100 {
		return strconv.FormatFloat(v, 'e', 2, 64)
	}
	return strconv.FormatFloat(v, 'g', 3, 64)
}

// FormatValues applies FormatValue to every value.
func FormatValues(values []float64) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = FormatValue(v)
	}
	return out
}

// RoundFloat rounds a float to n decimal places, halves away from zero.
func RoundFloat(val float64, precision int) float64 {
	ratio := math.Pow(10, float64(precision))
	return math.Round(val*ratio) / ratio
}
