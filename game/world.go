package game

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/s-lawrence/autopoiesis/components"
	"github.com/s-lawrence/autopoiesis/config"
	"github.com/s-lawrence/autopoiesis/systems"
	"github.com/s-lawrence/autopoiesis/telemetry"
)

// moveIntent is a movement staged during the force phase and applied during
// the commit phase. Forces for every agent are computed against the same
// start-of-tick snapshot before any position changes.
type moveIntent struct {
	e      ecs.Entity
	u      *Unity
	vx, vy float32
}

// spawnRequest is an agent birth staged during the commit phase and applied
// after all movement has been committed.
type spawnRequest struct {
	u    *Unity
	x, y float32
}

// World holds the complete simulation state.
type World struct {
	ecs *ecs.World
	rng *rand.Rand
	cfg *config.Config

	// Entity mappers - using the 4 components we need
	agentMapper *ecs.Map4[
		components.Position,
		components.Velocity,
		components.Motion,
		components.Vitals,
	]
	agentFilter *ecs.Filter4[
		components.Position,
		components.Velocity,
		components.Motion,
		components.Vitals,
	]

	// Individual component mappers for lookups
	posMap *ecs.Map1[components.Position]
	velMap *ecs.Map1[components.Velocity]
	motMap *ecs.Map1[components.Motion]
	vitMap *ecs.Map1[components.Vitals]

	// Unity registry in founding order
	unities     []*Unity
	nextUnityID uint32

	// Resource pool and spatial index
	pool *systems.ResourcePool
	grid *systems.SpatialGrid

	// Telemetry
	collector *telemetry.Collector
	tracker   *telemetry.UnityTracker
	perf      *telemetry.PerfCollector

	// State
	tick       int32
	pursue     bool
	agentCount int
	dt         float32 // simulated seconds per tick

	// Per-tick scratch, reused across ticks to avoid allocations
	neighbors     []systems.Neighbor
	intents       []moveIntent
	active        []*Unity
	splitting     []*Unity
	dissolving    []*Unity
	spawnRequests []spawnRequest
	resourceBuf   []*systems.Resource
}

// NewWorld creates a simulation world, seeds the resource pool, and drips
// the first agent to found the seed colony.
func NewWorld(cfg *config.Config, rng *rand.Rand, statsWindowSec float64) *World {
	world := ecs.NewWorld()

	w := &World{
		ecs: world,
		rng: rng,
		cfg: cfg,
		agentMapper: ecs.NewMap4[
			components.Position,
			components.Velocity,
			components.Motion,
			components.Vitals,
		](world),
		agentFilter: ecs.NewFilter4[
			components.Position,
			components.Velocity,
			components.Motion,
			components.Vitals,
		](world),
		posMap: ecs.NewMap1[components.Position](world),
		velMap: ecs.NewMap1[components.Velocity](world),
		motMap: ecs.NewMap1[components.Motion](world),
		vitMap: ecs.NewMap1[components.Vitals](world),
	}

	fps := cfg.Screen.TargetFPS
	if fps <= 0 {
		fps = 60
	}
	w.dt = 1.0 / float32(fps)

	w.pool = systems.NewResourcePool(systems.SpawnArea{
		MinX: int32(cfg.Resource.SpawnMinX),
		MaxX: int32(cfg.Resource.SpawnMaxX),
		MinY: int32(cfg.Resource.SpawnMinY),
		MaxY: int32(cfg.Resource.SpawnMaxY),
	}, int32(cfg.Resource.Health), int32(cfg.Resource.Radius))

	w.grid = systems.NewSpatialGrid(cfg.Derived.WorldW32, cfg.Derived.WorldH32, float32(cfg.Physics.GridCellSize))

	w.collector = telemetry.NewCollector(statsWindowSec, w.dt)
	w.tracker = telemetry.NewUnityTracker()
	w.perf = telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow)

	// Seed the resource pool
	for i := 0; i < cfg.Resource.InitialCount; i++ {
		w.pool.Spawn(rng)
	}

	// The tick-zero drip founds the seed colony
	w.dripSeed()

	return w
}

// spawnAgent creates a new agent entity at the given position.
func (w *World) spawnAgent(x, y float32) ecs.Entity {
	cfg := w.cfg

	pos := components.Position{X: x, Y: y}
	vel := components.Velocity{
		X: float32(cfg.Agent.InitialVX),
		Y: float32(cfg.Agent.InitialVY),
	}
	mot := components.Motion{Heading: w.rng.Float32()}
	vit := components.Vitals{
		Health: float32(cfg.Agent.MinHealth + w.rng.Intn(cfg.Agent.MaxHealth-cfg.Agent.MinHealth+1)),
	}

	e := w.agentMapper.NewEntity(&pos, &vel, &mot, &vit)
	w.agentCount++
	return e
}

// foundUnity registers a new unity over the given members.
func (w *World) foundUnity(members []ecs.Entity, generation int) *Unity {
	u := &Unity{
		id:         w.nextUnityID,
		members:    members,
		radius:     float32(w.cfg.Unity.InitialRadius),
		generation: generation,
	}
	w.nextUnityID++
	w.unities = append(w.unities, u)
	w.tracker.Register(u.id, w.tick, generation)
	return u
}

// dripSeed spawns one agent at the configured seeding point. It joins the
// oldest unity, or founds a new one when every colony has dissolved.
func (w *World) dripSeed() {
	cfg := w.cfg
	e := w.spawnAgent(float32(cfg.Seeding.SpawnX), float32(cfg.Seeding.SpawnY))

	if len(w.unities) == 0 {
		w.foundUnity([]ecs.Entity{e}, 0)
		return
	}
	u := w.unities[0]
	u.members = append(u.members, e)
}

// Tick returns the current simulation tick.
func (w *World) Tick() int32 {
	return w.tick
}

// AgentCount returns the number of living agents.
func (w *World) AgentCount() int {
	return w.agentCount
}

// UnityCount returns the number of living unities.
func (w *World) UnityCount() int {
	return len(w.unities)
}

// ResourceCount returns the number of active resources.
func (w *World) ResourceCount() int {
	return w.pool.Count()
}

// Pursue reports whether pursuit steering is active.
func (w *World) Pursue() bool {
	return w.pursue
}

// Unities returns the live unities in founding order. The slice is owned by
// the world; callers must not mutate it.
func (w *World) Unities() []*Unity {
	return w.unities
}

// Resources appends the active resources to dst and returns the updated
// slice.
func (w *World) Resources(dst []*systems.Resource) []*systems.Resource {
	return w.pool.All(dst)
}

// sampleHealths appends the health of every living agent to dst and returns
// the updated slice.
func (w *World) sampleHealths(dst []float64) []float64 {
	query := w.agentFilter.Query()
	for query.Next() {
		_, _, _, vit := query.Get()
		dst = append(dst, float64(vit.Health))
	}
	return dst
}
