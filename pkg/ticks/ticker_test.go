package ticks

import (
	"math"
	"testing"

	"gonum.org/v1/plot"
)

var (
	_ plot.Ticker = Linear{}
	_ plot.Ticker = Log{}
)

func TestLinearTicker(t *testing.T) {
	got := Linear{Count: 2}.Ticks(-3, 3)
	want := []plot.Tick{
		{Value: 0, Label: "0"},
		{Value: 1, Label: "1"},
		{Value: 2, Label: "2"},
	}

	if len(got) != len(want) {
		t.Fatalf("Ticks() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Tick %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLinearTickerFallsBackOnInvalidRange(t *testing.T) {
	got := Linear{}.Ticks(-10, -1)
	if len(got) == 0 {
		t.Error("Expected default ticks for a negative-only range")
	}
}

func TestLogTicker(t *testing.T) {
	got := Log{Count: 4}.Ticks(0, 3)
	labels := []string{"0", "10", "1.00e+02", "1.00e+03"}

	if len(got) != len(labels) {
		t.Fatalf("Ticks() = %v, want %d ticks", got, len(labels))
	}
	for i, tick := range got {
		if tick.Value != float64(i) {
			t.Errorf("Tick %d value = %v, want %d", i, tick.Value, i)
		}
		if tick.Label != labels[i] {
			t.Errorf("Tick %d label = %q, want %q", i, tick.Label, labels[i])
		}
	}
}

func TestLogTickerOverflowingMax(t *testing.T) {
	tests := []struct {
		name string
		max  float64
	}{
		{"beyond float range", 400},
		{"infinite", math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Log{Count: 4}.Ticks(0, tt.max)
			if len(got) != 4 {
				t.Fatalf("Ticks() = %v, want 4 ticks", got)
			}
			last := got[len(got)-1]
			if last.Value != 306 || last.Label != "1.00e+306" {
				t.Errorf("Unexpected top tick %+v", last)
			}
		})
	}
}
