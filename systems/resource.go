package systems

// ResourceID identifies a resource in the world pool. IDs are never reused,
// so a stale ID held by a unity is a safe lookup miss rather than a
// dangling reference.
type ResourceID uint32

// Resource is a fixed point in the plane whose health decays as unities
// exploit it.
type Resource struct {
	ID     ResourceID
	X, Y   int32
	Radius int32
	Health int32
}

// Hit decays the resource by one point of health.
func (r *Resource) Hit() {
	r.Health--
}

// Intensity returns the display color triple derived from health,
// saturating at zero as the resource is exhausted.
func (r *Resource) Intensity() (float32, float32, float32) {
	h := float32(r.Health)
	return maxf(0, 0.1*h), maxf(0, 0.2*h), maxf(0, 0.1*h)
}

// Spent reports whether health has decayed to or below the threshold that
// makes the resource eligible for metabolism.
func (r *Resource) Spent(threshold int32) bool {
	return r.Health <= threshold
}

// RNG is the randomness the pool needs for spawning and selection.
type RNG interface {
	Intn(n int) int
}

// SpawnArea bounds random resource placement, inclusive on all edges.
type SpawnArea struct {
	MinX, MaxX int32
	MinY, MaxY int32
}

// ResourcePool is the world-owned registry of active resources. Entries are
// keyed by stable ID, with an insertion-ordered ID slice for deterministic
// iteration and uniform random selection.
type ResourcePool struct {
	byID   map[ResourceID]*Resource
	ids    []ResourceID
	nextID ResourceID

	area   SpawnArea
	health int32
	radius int32
}

// NewResourcePool creates an empty pool that spawns resources within area
// with the given initial health and radius.
func NewResourcePool(area SpawnArea, health, radius int32) *ResourcePool {
	return &ResourcePool{
		byID:   make(map[ResourceID]*Resource),
		area:   area,
		health: health,
		radius: radius,
	}
}

// Spawn creates a resource at a uniformly random position within the spawn
// area and registers it as active.
func (p *ResourcePool) Spawn(rng RNG) *Resource {
	r := &Resource{
		ID:     p.nextID,
		X:      p.area.MinX + int32(rng.Intn(int(p.area.MaxX-p.area.MinX)+1)),
		Y:      p.area.MinY + int32(rng.Intn(int(p.area.MaxY-p.area.MinY)+1)),
		Radius: p.radius,
		Health: p.health,
	}
	p.nextID++
	p.byID[r.ID] = r
	p.ids = append(p.ids, r.ID)
	return r
}

// Lookup resolves an ID against the active pool.
func (p *ResourcePool) Lookup(id ResourceID) (*Resource, bool) {
	r, ok := p.byID[id]
	return r, ok
}

// Remove drops a resource from the active pool. Removing an ID that is
// already gone is a no-op, since two unities may metabolise the same
// resource in one tick.
func (p *ResourcePool) Remove(id ResourceID) {
	if _, ok := p.byID[id]; !ok {
		return
	}
	delete(p.byID, id)
	for i, other := range p.ids {
		if other == id {
			p.ids = append(p.ids[:i], p.ids[i+1:]...)
			break
		}
	}
}

// RandomID returns a uniformly random active resource ID. The pool must not
// be empty; selection from an empty pool has no defined target and is a
// caller contract violation.
func (p *ResourcePool) RandomID(rng RNG) ResourceID {
	if len(p.ids) == 0 {
		panic("resource pool: random selection from empty pool")
	}
	return p.ids[rng.Intn(len(p.ids))]
}

// Count returns the number of active resources.
func (p *ResourcePool) Count() int {
	return len(p.ids)
}

// All appends the active resources to dst in insertion order and returns
// the updated slice. Reuse dst across calls to avoid allocations.
func (p *ResourcePool) All(dst []*Resource) []*Resource {
	for _, id := range p.ids {
		dst = append(dst, p.byID[id])
	}
	return dst
}
