package camera

import (
	"math"
	"testing"
)

func approx(got, want float32) bool {
	return math.Abs(float64(got-want)) < 0.01
}

func TestNewCentersOnWorld(t *testing.T) {
	cam := New(1280, 720, 2560, 1440)

	if cam.X != 1280 || cam.Y != 720 {
		t.Errorf("center = (%f, %f), want (1280, 720)", cam.X, cam.Y)
	}
	if cam.Zoom != 1.0 {
		t.Errorf("zoom = %f, want 1.0", cam.Zoom)
	}
	// max(1280/2560, 720/1440) = 0.5
	if cam.MinZoom != 0.5 {
		t.Errorf("MinZoom = %f, want 0.5", cam.MinZoom)
	}
}

func TestWorldToScreen(t *testing.T) {
	tests := []struct {
		name   string
		zoom   float32
		wx, wy float32
		sx, sy float32
	}{
		{"center maps to screen center", 1, 1280, 720, 640, 360},
		{"left of camera lands left", 1, 640, 720, 0, 360},
		{"zoom doubles the offset", 2, 1380, 720, 840, 360},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := New(1280, 720, 2560, 1440)
			cam.SetZoom(tt.zoom)

			sx, sy := cam.WorldToScreen(tt.wx, tt.wy)
			if !approx(sx, tt.sx) || !approx(sy, tt.sy) {
				t.Errorf("WorldToScreen(%f, %f) = (%f, %f), want (%f, %f)",
					tt.wx, tt.wy, sx, sy, tt.sx, tt.sy)
			}
		})
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	for _, zoom := range []float32{0.5, 1, 2.5} {
		cam := New(1280, 720, 2560, 1440)
		cam.SetZoom(zoom)

		for _, pt := range [][2]float32{{640, 360}, {100, 100}, {1200, 600}} {
			wx, wy := cam.ScreenToWorld(pt[0], pt[1])
			sx, sy := cam.WorldToScreen(wx, wy)
			if !approx(sx, pt[0]) || !approx(sy, pt[1]) {
				t.Errorf("zoom %.1f: (%f,%f) -> world (%f,%f) -> (%f,%f)",
					zoom, pt[0], pt[1], wx, wy, sx, sy)
			}
		}
	}
}

func TestPanClampsAtWorldEdge(t *testing.T) {
	cam := New(1280, 720, 2560, 1440)

	// At zoom 1 the half-viewport is 640, so the center can't go below it
	cam.Pan(-100000, 0)
	if cam.X != 640 {
		t.Errorf("X after far-left pan = %f, want 640", cam.X)
	}

	cam.Pan(100000, 0)
	if cam.X != 2560-640 {
		t.Errorf("X after far-right pan = %f, want %f", cam.X, float32(2560-640))
	}

	cam.Pan(0, 100000)
	if cam.Y != 1440-360 {
		t.Errorf("Y after far-down pan = %f, want %f", cam.Y, float32(1440-360))
	}
}

func TestSetZoomClampsToRange(t *testing.T) {
	cam := New(1280, 720, 2560, 1440)

	cam.SetZoom(0.1)
	if cam.Zoom != cam.MinZoom {
		t.Errorf("zoom below min = %f, want %f", cam.Zoom, cam.MinZoom)
	}

	cam.SetZoom(10.0)
	if cam.Zoom != cam.MaxZoom {
		t.Errorf("zoom above max = %f, want %f", cam.Zoom, cam.MaxZoom)
	}
}

func TestMinZoomPreventsDeadSpace(t *testing.T) {
	// Asymmetric ratios: max(800/1600, 600/800) = 0.75
	cam := New(800, 600, 1600, 800)
	if !approx(cam.MinZoom, 0.75) {
		t.Fatalf("MinZoom = %f, want 0.75", cam.MinZoom)
	}

	// At min zoom the visible extent exactly fits the limiting axis
	cam.SetZoom(cam.MinZoom)
	if visibleH := cam.ViewportH / cam.Zoom; !approx(visibleH, cam.WorldH) {
		t.Errorf("visible height at min zoom = %f, want %f", visibleH, cam.WorldH)
	}
}

func TestZoomOutReclampsCenter(t *testing.T) {
	cam := New(1280, 720, 2560, 1440)

	// Park at the left edge while zoomed in
	cam.SetZoom(2.0)
	cam.Pan(-100000, 0)
	if cam.X != 320 {
		t.Fatalf("X while zoomed = %f, want 320", cam.X)
	}

	// Zooming back out widens the view, which must push the center in
	cam.SetZoom(1.0)
	if cam.X != 640 {
		t.Errorf("X after zoom out = %f, want 640", cam.X)
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(1280, 720, 2560, 1440)

	// Visible world area is (640, 360) to (1920, 1080)
	tests := []struct {
		name   string
		x, y   float32
		radius float32
		want   bool
	}{
		{"camera center", 1280, 720, 10, true},
		{"far outside", 2400, 1300, 10, false},
		{"outside but radius reaches in", 600, 720, 100, true},
		{"just past the margin", 500, 720, 100, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cam.IsVisible(tt.x, tt.y, tt.radius); got != tt.want {
				t.Errorf("IsVisible(%f, %f, %f) = %v, want %v", tt.x, tt.y, tt.radius, got, tt.want)
			}
		})
	}
}

func TestResetRecenters(t *testing.T) {
	cam := New(1280, 720, 2560, 1440)
	cam.SetZoom(2.5)
	cam.Pan(-400, -300)

	cam.Reset()

	if cam.X != 1280 || cam.Y != 720 {
		t.Errorf("center after reset = (%f, %f), want (1280, 720)", cam.X, cam.Y)
	}
	if cam.Zoom != 1.0 {
		t.Errorf("zoom after reset = %f, want 1.0", cam.Zoom)
	}
}
