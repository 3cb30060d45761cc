package systems

import (
	"math/rand"
	"testing"
)

func TestResourceHitMonotonic(t *testing.T) {
	r := &Resource{Health: 1000, Radius: 10}
	prev := r.Health
	for i := 0; i < 800; i++ {
		r.Hit()
		if r.Health > prev {
			t.Fatalf("health increased from %d to %d", prev, r.Health)
		}
		prev = r.Health
	}
	if r.Health != 200 {
		t.Errorf("health after 800 hits = %d, want 200", r.Health)
	}
}

func TestResourceSpentThreshold(t *testing.T) {
	r := &Resource{Health: 252}
	if r.Spent(250) {
		t.Error("resource above threshold reported spent")
	}
	r.Hit()
	r.Hit()
	if !r.Spent(250) {
		t.Error("resource at threshold not reported spent")
	}
	// Once spent, stays spent.
	for i := 0; i < 100; i++ {
		r.Hit()
		if !r.Spent(250) {
			t.Fatal("spent resource reverted to unspent")
		}
	}
}

func TestResourceIntensity(t *testing.T) {
	r := &Resource{Health: 1000}
	cr, cg, cb := r.Intensity()
	if cr != 100 || cg != 200 || cb != 100 {
		t.Errorf("intensity at full health = (%v, %v, %v), want (100, 200, 100)", cr, cg, cb)
	}

	r.Health = -40
	cr, cg, cb = r.Intensity()
	if cr != 0 || cg != 0 || cb != 0 {
		t.Errorf("intensity must saturate at zero, got (%v, %v, %v)", cr, cg, cb)
	}
}

func TestResourcePoolSpawnWithinArea(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	area := SpawnArea{MinX: 100, MaxX: 1500, MinY: 100, MaxY: 800}
	pool := NewResourcePool(area, 1000, 10)

	for i := 0; i < 200; i++ {
		r := pool.Spawn(rng)
		if r.X < area.MinX || r.X > area.MaxX || r.Y < area.MinY || r.Y > area.MaxY {
			t.Fatalf("resource spawned at (%d, %d) outside the spawn area", r.X, r.Y)
		}
		if r.Health != 1000 || r.Radius != 10 {
			t.Fatalf("resource spawned with health %d radius %d", r.Health, r.Radius)
		}
	}
	if pool.Count() != 200 {
		t.Errorf("pool count = %d, want 200", pool.Count())
	}
}

func TestResourcePoolRemoveTolerant(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	pool := NewResourcePool(SpawnArea{MaxX: 100, MaxY: 100}, 1000, 10)

	a := pool.Spawn(rng)
	b := pool.Spawn(rng)
	c := pool.Spawn(rng)

	pool.Remove(b.ID)
	if pool.Count() != 2 {
		t.Fatalf("pool count after remove = %d, want 2", pool.Count())
	}
	if _, ok := pool.Lookup(b.ID); ok {
		t.Error("removed resource still resolves")
	}

	// Double removal is a silent no-op.
	pool.Remove(b.ID)
	if pool.Count() != 2 {
		t.Errorf("pool count after double remove = %d, want 2", pool.Count())
	}

	all := pool.All(nil)
	if len(all) != 2 || all[0].ID != a.ID || all[1].ID != c.ID {
		t.Errorf("remaining resources out of order: got %d entries", len(all))
	}
}

func TestResourcePoolRandomID(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	pool := NewResourcePool(SpawnArea{MaxX: 100, MaxY: 100}, 1000, 10)

	want := make(map[ResourceID]bool)
	for i := 0; i < 5; i++ {
		want[pool.Spawn(rng).ID] = true
	}

	// Uniform selection should cover the whole pool over many draws.
	seen := make(map[ResourceID]bool)
	for i := 0; i < 500; i++ {
		id := pool.RandomID(rng)
		if !want[id] {
			t.Fatalf("selected ID %d not in pool", id)
		}
		seen[id] = true
	}
	if len(seen) != len(want) {
		t.Errorf("selection covered %d of %d resources", len(seen), len(want))
	}
}

func TestResourcePoolRandomIDEmptyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic selecting from an empty pool")
		}
	}()
	pool := NewResourcePool(SpawnArea{MaxX: 10, MaxY: 10}, 100, 5)
	pool.RandomID(rand.New(rand.NewSource(1)))
}
