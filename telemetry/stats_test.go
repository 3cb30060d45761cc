package telemetry

import (
	"math"
	"testing"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty", nil, 0.5, 0},
		{"single", []float64{42}, 0.9, 42},
		{"min", []float64{2, 4, 6, 8}, 0, 2},
		{"max", []float64{2, 4, 6, 8}, 1, 8},
		{"median even", []float64{2, 4, 6, 8}, 0.5, 5},
		{"median odd", []float64{3, 9, 27}, 0.5, 9},
		{"p30 interpolates", []float64{10, 20, 30, 40, 50}, 0.3, 22},
		{"p90 interpolates", []float64{5, 10, 15, 20}, 0.9, 18.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestComputeHealthStats(t *testing.T) {
	healths := []float64{1200, 1500, 1800, 2100, 2400, 2700}
	mean, p10, p50, p90 := ComputeHealthStats(healths)

	checks := []struct {
		name string
		got  float64
		want float64
	}{
		{"mean", mean, 1950},
		{"p10", p10, 1350},
		{"p50", p50, 1950},
		{"p90", p90, 2550},
	}
	for _, c := range checks {
		if math.Abs(c.got-c.want) > 0.01 {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
}

func TestComputeHealthStatsEmpty(t *testing.T) {
	mean, p10, p50, p90 := ComputeHealthStats(nil)
	if mean != 0 || p10 != 0 || p50 != 0 || p90 != 0 {
		t.Errorf("stats of no samples = (%v, %v, %v, %v), want all zero", mean, p10, p50, p90)
	}
}

func TestComputeHealthStatsSortsACopy(t *testing.T) {
	healths := []float64{900, 250, 610}

	_, _, p50, _ := ComputeHealthStats(healths)
	if p50 != 610 {
		t.Errorf("p50 of unsorted input = %v, want 610", p50)
	}
	if healths[0] != 900 || healths[1] != 250 || healths[2] != 610 {
		t.Errorf("input slice was reordered: %v", healths)
	}
}
