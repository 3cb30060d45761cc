package systems

import (
	"math"
	"testing"
)

func TestClampVelocity(t *testing.T) {
	tests := []struct {
		name           string
		vx, vy         float32
		maxVel         float32
		wantVX, wantVY float32
	}{
		{"within bounds", 1.5, -1.2, 2, 1.5, -1.2},
		{"x above max", 5, 0.5, 2, 2, 0.5},
		{"x below min", -7, 1, 2, -2, 1},
		{"y above max", 0, 3.4, 2, 0, 2},
		{"y below min", 1, -2.1, 2, 1, -2},
		{"both clamped", 9, -9, 2, 2, -2},
		{"exactly at max", 2, -2, 2, 2, -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotX, gotY := ClampVelocity(tt.vx, tt.vy, tt.maxVel)
			if gotX != tt.wantVX || gotY != tt.wantVY {
				t.Errorf("ClampVelocity(%v, %v) = (%v, %v), want (%v, %v)",
					tt.vx, tt.vy, gotX, gotY, tt.wantVX, tt.wantVY)
			}
			if absf(gotX) > tt.maxVel || absf(gotY) > tt.maxVel {
				t.Errorf("clamped velocity (%v, %v) exceeds max %v", gotX, gotY, tt.maxVel)
			}
		})
	}
}

func TestCohesionForceSingleton(t *testing.T) {
	fx, fy := CohesionForce(40, 60, 40, 60, 1, 100)
	if fx != 0 || fy != 0 {
		t.Errorf("singleton cohesion = (%v, %v), want exactly (0, 0)", fx, fy)
	}
}

func TestCohesionForce(t *testing.T) {
	tests := []struct {
		name         string
		px, py       float32
		sumX, sumY   float32
		members      int
		wantX, wantY float32
	}{
		// One other member at (100, 0): its barycenter is itself.
		{"pair pulls toward partner", 0, 0, 100, 0, 2, 1, 0},
		// Others at (30, 0) and (0, 30): barycenter (15, 15).
		{"trio pulls toward pair barycenter", 0, 0, 30, 30, 3, 0.15, 0.15},
		// Agent already at the barycenter of the others: no pull.
		{"centered agent feels nothing", 10, 10, 30, 30, 3, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotX, gotY := CohesionForce(tt.px, tt.py, tt.sumX, tt.sumY, tt.members, 100)
			if math.Abs(float64(gotX-tt.wantX)) > 1e-5 || math.Abs(float64(gotY-tt.wantY)) > 1e-5 {
				t.Errorf("CohesionForce = (%v, %v), want (%v, %v)", gotX, gotY, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestSeparationForce(t *testing.T) {
	tests := []struct {
		name         string
		neighbors    []Neighbor
		wantX, wantY float32
	}{
		{"no neighbors", nil, 0, 0},
		{"single neighbor pushes away", []Neighbor{{DX: 10, DY: -5}}, -10, 5},
		{"contributions accumulate", []Neighbor{{DX: 10, DY: 0}, {DX: -4, DY: 8}}, -6, -8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotX, gotY := SeparationForce(tt.neighbors)
			if gotX != tt.wantX || gotY != tt.wantY {
				t.Errorf("SeparationForce = (%v, %v), want (%v, %v)", gotX, gotY, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestPursuitForce(t *testing.T) {
	fx, fy := PursuitForce(100, 200, 500, 120, 40)
	if math.Abs(float64(fx-10)) > 1e-5 || math.Abs(float64(fy+2)) > 1e-5 {
		t.Errorf("PursuitForce = (%v, %v), want (10, -2)", fx, fy)
	}
}
