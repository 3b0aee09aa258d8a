package ticks

import (
	"errors"
	"math"
	"testing"

	"github.com/cleavviz/cleavviz/pkg/core"
)

func TestLinearTicks(t *testing.T) {
	tests := []struct {
		name  string
		max   float64
		count int
		want  []float64
	}{
		{"log decades", 3, 2, []float64{1, 2}},
		{"thousand", 1000, 2, []float64{333, 667}},
		{"half rounds up", 7, 1, []float64{4}},
		{"three ticks", 100, 3, []float64{25, 50, 75}},
		{"small range keeps decimals", 0.9, 2, []float64{0.3, 0.6}},
		{"unit range", 1, 2, []float64{0.3, 0.7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LinearTicks(tt.max, tt.count)
			if err != nil {
				t.Fatalf("LinearTicks() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("LinearTicks() = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if math.Abs(got[i]-tt.want[i]) > 1e-9 {
					t.Errorf("LinearTicks()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestLinearTicksInterior(t *testing.T) {
	for _, max := range []float64{1e-6, 0.01, 0.5, 1, 2, 3, 7.5, 42, 1e3, 1e9} {
		for count := 1; count <= 5; count++ {
			got, err := LinearTicks(max, count)
			if err != nil {
				t.Fatalf("LinearTicks(%v, %d) error = %v", max, count, err)
			}
			if len(got) != count {
				t.Fatalf("LinearTicks(%v, %d) returned %d ticks", max, count, len(got))
			}
			prev := 0.0
			for i, v := range got {
				if v <= prev || v >= max {
					t.Errorf("LinearTicks(%v, %d)[%d] = %v is not strictly increasing within (0, max)", max, count, i, v)
				}
				prev = v
			}
		}
	}
}

func TestLinearTicksInvalidRange(t *testing.T) {
	tests := []struct {
		name  string
		max   float64
		count int
	}{
		{"zero max", 0, 2},
		{"negative max", -3, 2},
		{"NaN max", math.NaN(), 2},
		{"zero count", 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LinearTicks(tt.max, tt.count)
			var rangeErr *InvalidRangeError
			if !errors.As(err, &rangeErr) {
				t.Fatalf("Expected *InvalidRangeError, got %v", err)
			}
		})
	}
}

func TestLogTicks(t *testing.T) {
	tests := []struct {
		name       string
		matrix     [][]float64
		tickCount  int
		wantValues []float64
		wantLabels []string
		wantZMax   float64
	}{
		{
			name:       "three decades",
			matrix:     [][]float64{{10, 500}, {1000, 2}},
			tickCount:  4,
			wantValues: []float64{0, 1, 2, 3},
			wantLabels: []string{"0", "10", "1.00e+02", "1.00e+03"},
			wantZMax:   3,
		},
		{
			name:       "wide span floors the step",
			matrix:     [][]float64{{1e6}},
			tickCount:  4,
			wantValues: []float64{0, 2, 4, 6},
			wantLabels: []string{"0", "1.00e+02", "1.00e+04", "1.00e+06"},
			wantZMax:   6,
		},
		{
			name:       "uneven span keeps fractional step",
			matrix:     [][]float64{{50}},
			tickCount:  3,
			wantValues: []float64{0, 1, 2},
			wantLabels: []string{"0", "10", "1.00e+02"},
			wantZMax:   2,
		},
		{
			name:       "default tick count",
			matrix:     [][]float64{{999}},
			tickCount:  0,
			wantValues: []float64{0, 1, 2, 3},
			wantLabels: []string{"0", "10", "1.00e+02", "1.00e+03"},
			wantZMax:   3,
		},
		{
			name:       "infinite maximum is capped",
			matrix:     [][]float64{{1, math.Inf(1)}},
			tickCount:  4,
			wantValues: []float64{0, 102, 204, 306},
			wantLabels: []string{"0", "1.00e+102", "1.00e+204", "1.00e+306"},
			wantZMax:   308,
		},
		{
			name:       "largest float shares the capped decade",
			matrix:     [][]float64{{math.MaxFloat64}},
			tickCount:  4,
			wantValues: []float64{0, 102, 204, 306},
			wantLabels: []string{"0", "1.00e+102", "1.00e+204", "1.00e+306"},
			wantZMax:   308,
		},
		{
			name:       "missing values are skipped",
			matrix:     [][]float64{{core.Missing, 10}},
			tickCount:  2,
			wantValues: []float64{0, 1},
			wantLabels: []string{"0", "10"},
			wantZMax:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LogTicks(tt.matrix, tt.tickCount)
			if len(got.Values) != len(got.Labels) {
				t.Fatalf("Values and labels differ in length: %v / %v", got.Values, got.Labels)
			}
			if len(got.Values) != len(tt.wantValues) {
				t.Fatalf("LogTicks() values = %v, want %v", got.Values, tt.wantValues)
			}
			for i := range tt.wantValues {
				if math.Abs(got.Values[i]-tt.wantValues[i]) > 1e-9 {
					t.Errorf("Value %d = %v, want %v", i, got.Values[i], tt.wantValues[i])
				}
				if got.Labels[i] != tt.wantLabels[i] {
					t.Errorf("Label %d = %q, want %q", i, got.Labels[i], tt.wantLabels[i])
				}
			}
			if got.ZMin != 0 {
				t.Errorf("ZMin = %v, want 0", got.ZMin)
			}
			if got.ZMax != tt.wantZMax {
				t.Errorf("ZMax = %v, want %v", got.ZMax, tt.wantZMax)
			}
		})
	}
}

func TestLogTicksTerminatesOnFlatRange(t *testing.T) {
	tests := []struct {
		name   string
		matrix [][]float64
	}{
		{"empty", nil},
		{"all zero", [][]float64{{0, 0}}},
		{"all one", [][]float64{{1, 1}}},
		{"below one", [][]float64{{0.001}}},
		{"negative", [][]float64{{-5}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LogTicks(tt.matrix, 4)
			if len(got.Values) != 1 || got.Values[0] != 0 {
				t.Errorf("Expected a single tick at 0, got %v", got.Values)
			}
			if got.ZMin != got.ZMax {
				t.Errorf("Expected flat domain, got [%v, %v]", got.ZMin, got.ZMax)
			}
		})
	}
}

func TestRangeTicks(t *testing.T) {
	got := RangeTicks([][]float64{{3, 6}, {core.Missing, 1}}, 4)
	want := []float64{0, 2, 4, 6}
	if len(got.Values) != len(want) {
		t.Fatalf("RangeTicks() = %v, want %v", got.Values, want)
	}
	for i := range want {
		if math.Abs(got.Values[i]-want[i]) > 1e-9 {
			t.Errorf("Value %d = %v, want %v", i, got.Values[i], want[i])
		}
	}
	if got.Labels[3] != "6" {
		t.Errorf("Expected last label 6, got %q", got.Labels[3])
	}
	if got.ZMin != 0 || got.ZMax != 6 {
		t.Errorf("Expected domain [0, 6], got [%v, %v]", got.ZMin, got.ZMax)
	}

	empty := RangeTicks(nil, 4)
	if len(empty.Values) != 1 || empty.Labels[0] != "0" {
		t.Errorf("Expected a single zero tick, got %v", empty.Values)
	}
}
