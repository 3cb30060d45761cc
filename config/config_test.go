package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading embedded defaults: %v", err)
	}

	if cfg.Screen.Width != 1800 || cfg.Screen.Height != 1000 {
		t.Errorf("expected 1800x1000 screen, got %dx%d", cfg.Screen.Width, cfg.Screen.Height)
	}
	if cfg.Screen.TargetFPS != 60 {
		t.Errorf("expected 60 fps, got %d", cfg.Screen.TargetFPS)
	}
	if cfg.Forces.MaxVel != 2.0 {
		t.Errorf("expected max_vel 2.0, got %v", cfg.Forces.MaxVel)
	}
	if cfg.Forces.Space != 25.0 {
		t.Errorf("expected space 25.0, got %v", cfg.Forces.Space)
	}
	if cfg.Unity.SplitThreshold != 20 {
		t.Errorf("expected split threshold 20, got %d", cfg.Unity.SplitThreshold)
	}
	if cfg.Resource.SpentThreshold != 250 {
		t.Errorf("expected spent threshold 250, got %d", cfg.Resource.SpentThreshold)
	}
	if cfg.Resource.InitialCount != 5 {
		t.Errorf("expected 5 initial resources, got %d", cfg.Resource.InitialCount)
	}
	if cfg.Agent.MinHealth != 1000 || cfg.Agent.MaxHealth != 3000 {
		t.Errorf("expected health range 1000..3000, got %d..%d", cfg.Agent.MinHealth, cfg.Agent.MaxHealth)
	}
}

func TestDerivedValues(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading embedded defaults: %v", err)
	}

	// World defaults to screen dimensions when unset
	if cfg.Derived.WorldW32 != 1800 || cfg.Derived.WorldH32 != 1000 {
		t.Errorf("expected world 1800x1000, got %vx%v", cfg.Derived.WorldW32, cfg.Derived.WorldH32)
	}

	// Boundary maxima leave room for the agent box
	if cfg.Derived.BoundsMaxX != 1789 {
		t.Errorf("expected bounds max x 1789, got %v", cfg.Derived.BoundsMaxX)
	}
	if cfg.Derived.BoundsMaxY != 970 {
		t.Errorf("expected bounds max y 970, got %v", cfg.Derived.BoundsMaxY)
	}

	if cfg.Derived.MaxVel32 != 2.0 {
		t.Errorf("expected derived max vel 2.0, got %v", cfg.Derived.MaxVel32)
	}
	if cfg.Derived.CohesionDiv32 != 100.0 {
		t.Errorf("expected derived cohesion divisor 100.0, got %v", cfg.Derived.CohesionDiv32)
	}
}

func TestUserOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "override.yaml")
	overlay := []byte("forces:\n  max_vel: 4.5\nworld:\n  width: 3600\n")
	if err := os.WriteFile(path, overlay, 0644); err != nil {
		t.Fatalf("writing overlay file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("loading overlay config: %v", err)
	}

	// Overridden fields take the file's value
	if cfg.Forces.MaxVel != 4.5 {
		t.Errorf("expected overridden max_vel 4.5, got %v", cfg.Forces.MaxVel)
	}
	if cfg.Derived.WorldW32 != 3600 {
		t.Errorf("expected overridden world width 3600, got %v", cfg.Derived.WorldW32)
	}

	// Untouched fields keep their defaults
	if cfg.Forces.Space != 25.0 {
		t.Errorf("expected default space 25.0, got %v", cfg.Forces.Space)
	}
	if cfg.Derived.WorldH32 != 1000 {
		t.Errorf("expected default world height 1000, got %v", cfg.Derived.WorldH32)
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading embedded defaults: %v", err)
	}
	cfg.Forces.CohesionDivisor = 80

	dir := t.TempDir()
	path := filepath.Join(dir, "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("reloading written config: %v", err)
	}
	if reloaded.Forces.CohesionDivisor != 80 {
		t.Errorf("expected cohesion divisor 80 after round trip, got %v", reloaded.Forces.CohesionDivisor)
	}
	if reloaded.Screen.Width != 1800 {
		t.Errorf("expected screen width 1800 after round trip, got %d", reloaded.Screen.Width)
	}
}

func TestBadPathFails(t *testing.T) {
	if _, err := Load("/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error for missing config file, got nil")
	}
}
