package game

import (
	"github.com/s-lawrence/autopoiesis/systems"
	"github.com/s-lawrence/autopoiesis/telemetry"
)

// Advance runs a single tick of the simulation.
//
// The tick is phased so that every force is computed against the same
// start-of-tick snapshot: deaths are settled first, then positions are
// snapshotted, then forces and movement are staged for all agents, and only
// then are moves committed and lifecycle changes applied.
func (w *World) Advance() {
	cfg := w.cfg
	w.perf.StartTick()

	w.perf.StartPhase(telemetry.PhaseLifecycle)

	// Population drip while the seeding window is open
	if cfg.Seeding.DripInterval > 0 &&
		w.tick > 0 && w.tick <= int32(cfg.Seeding.DripEndTick) &&
		w.tick%int32(cfg.Seeding.DripInterval) == 0 {
		w.dripSeed()
		w.collector.RecordSpawn()
	}

	w.pursue = w.tick >= int32(cfg.Run.PursueAtTick)

	w.updateLifecycle()

	w.perf.StartPhase(telemetry.PhaseSnapshot)
	w.updateSnapshot()

	w.perf.StartPhase(telemetry.PhaseSpatialGrid)
	w.updateSpatialGrid()

	w.perf.StartPhase(telemetry.PhaseForces)
	w.updateForces()

	w.perf.StartPhase(telemetry.PhaseCommit)
	w.commitMoves()

	w.perf.StartPhase(telemetry.PhaseLifecycle)
	w.applyLifecycle()

	w.perf.StartPhase(telemetry.PhaseReplenish)
	w.replenishResources()

	w.perf.StartPhase(telemetry.PhaseTelemetry)
	w.updateTrackers()

	w.tick++
	w.perf.EndTick()
}

// updateLifecycle decays health, removes dead agents, and sorts each unity
// into its branch for this tick: dissolving, splitting, or active.
func (w *World) updateLifecycle() {
	cfg := w.cfg

	w.active = w.active[:0]
	w.splitting = w.splitting[:0]
	w.dissolving = w.dissolving[:0]
	w.intents = w.intents[:0]
	w.spawnRequests = w.spawnRequests[:0]

	for _, u := range w.unities {
		removed := false
		alive := u.members[:0]
		for _, e := range u.members {
			vit := w.vitMap.Get(e)
			vit.Health -= w.rng.Float32()
			if vit.Health <= 0 {
				w.agentMapper.Remove(e)
				w.collector.RecordDeath()
				w.agentCount--
				removed = true
				continue
			}
			alive = append(alive, e)
		}
		u.members = alive
		if removed {
			u.radius = float32(len(u.members)) / 2
		}

		switch {
		case len(u.members) == 0:
			w.dissolving = append(w.dissolving, u)
		case len(u.members) >= cfg.Unity.SplitThreshold:
			// A splitting unity spends the tick dividing; it does not move
			w.splitting = append(w.splitting, u)
		default:
			w.active = append(w.active, u)
		}
	}
}

// updateSnapshot rebuilds each unity's barycenter accumulators from the
// post-death membership.
func (w *World) updateSnapshot() {
	for _, u := range w.unities {
		u.sumX, u.sumY = 0, 0
		for _, e := range u.members {
			pos := w.posMap.Get(e)
			u.sumX += pos.X
			u.sumY += pos.Y
		}
	}
}

// updateSpatialGrid rebuilds the spatial index. Every living agent is
// inserted, including members of splitting unities, so separation sees the
// whole population.
func (w *World) updateSpatialGrid() {
	w.grid.Clear()
	for _, u := range w.unities {
		for _, e := range u.members {
			pos := w.posMap.Get(e)
			w.grid.Insert(e, pos.X, pos.Y)
		}
	}
}

// ensureTarget keeps a unity's resource target valid, reassigning from the
// pool when the previous target is gone. With an empty pool the unity is
// left targetless until replenishment.
func (w *World) ensureTarget(u *Unity) {
	if u.hasTarget {
		if _, ok := w.pool.Lookup(u.target); ok {
			return
		}
		u.hasTarget = false
	}
	if w.pool.Count() == 0 {
		return
	}
	u.target = w.pool.RandomID(w.rng)
	u.hasTarget = true
}

// updateForces computes steering for every member of every active unity and
// stages the resulting movement.
func (w *World) updateForces() {
	d := &w.cfg.Derived

	for _, u := range w.active {
		w.ensureTarget(u)

		var tx, ty float32
		pursueTarget := false
		if w.pursue && u.hasTarget {
			if res, ok := w.pool.Lookup(u.target); ok {
				tx, ty = float32(res.X), float32(res.Y)
				pursueTarget = true
			}
		}

		members := len(u.members)
		for _, e := range u.members {
			pos := w.posMap.Get(e)
			vel := w.velMap.Get(e)
			mot := w.motMap.Get(e)

			ax, ay := systems.CohesionForce(pos.X, pos.Y, u.sumX, u.sumY, members, d.CohesionDiv32)

			w.neighbors = w.grid.QueryRadiusInto(w.neighbors[:0], pos.X, pos.Y, d.Space32, e)
			sx, sy := systems.SeparationForce(w.neighbors)
			ax += sx
			ay += sy

			if pursueTarget {
				px, py := systems.PursuitForce(pos.X, pos.Y, tx, ty, d.PursuitDiv32)
				ax += px
				ay += py
			}

			mot.AccelX, mot.AccelY = ax, ay

			vx, vy := systems.ClampVelocity(vel.X+ax, vel.Y+ay, d.MaxVel32)
			w.intents = append(w.intents, moveIntent{e: e, u: u, vx: vx, vy: vy})
		}
	}
}

// commitMoves applies staged movement in order: obstacle contact with the
// unity's target, then boundary bounce, then the position and velocity
// write. Contact with the target also drives metabolism.
func (w *World) commitMoves() {
	cfg := w.cfg
	d := &cfg.Derived
	spentThreshold := int32(cfg.Resource.SpentThreshold)

	for _, in := range w.intents {
		pos := w.posMap.Get(in.e)
		vel := w.velMap.Get(in.e)
		mot := w.motMap.Get(in.e)

		nx, ny := pos.X+in.vx, pos.Y+in.vy
		vx, vy := in.vx, in.vy

		// The target is looked up per intent: an earlier agent this tick may
		// have metabolised it and reassigned the unity.
		if in.u.hasTarget {
			if res, ok := w.pool.Lookup(in.u.target); ok {
				nx, ny, vx, vy, _ = systems.ResolveObstacle(
					nx, ny, pos.X, pos.Y, vx, vy,
					float32(res.X), float32(res.Y), float32(res.Radius), d.Damping32,
				)
			}
		}

		nx, ny, vx, vy = systems.ResolveBoundary(nx, ny, vx, vy, d.BoundsMaxX, d.BoundsMaxY)

		pos.X, pos.Y = nx, ny
		vel.X, vel.Y = vx, vy
		mot.Heading = systems.AdvanceHeading(mot.Heading, d.AngularVel32)

		// Metabolism: contact between the unity's reach around this agent
		// and the target decays it, and a spent target is consumed.
		if in.u.hasTarget {
			if res, ok := w.pool.Lookup(in.u.target); ok {
				if systems.OverlapAABB(pos.X, pos.Y, float32(len(in.u.members)), float32(res.X), float32(res.Y), float32(res.Radius)) {
					res.Hit()
					if res.Spent(spentThreshold) {
						w.metaboliseTarget(in.u, res)
					}
				}
			}
		}
	}
}

// metaboliseTarget consumes a spent resource: new agents are staged at the
// resource position, the resource leaves the pool, and the unity is
// immediately retargeted.
func (w *World) metaboliseTarget(u *Unity, res *systems.Resource) {
	for i := 0; i < w.cfg.Resource.MetaboliseSpawn; i++ {
		w.spawnRequests = append(w.spawnRequests, spawnRequest{
			u: u,
			x: float32(res.X),
			y: float32(res.Y),
		})
	}

	w.pool.Remove(res.ID)
	u.metabolised++
	w.tracker.RecordMetabolise(u.id)
	w.collector.RecordMetabolise()

	if w.pool.Count() > 0 {
		u.target = w.pool.RandomID(w.rng)
		u.hasTarget = true
	} else {
		u.hasTarget = false
	}
}

// applyLifecycle applies the staged lifecycle changes: dissolves, then
// splits, then metabolism births.
func (w *World) applyLifecycle() {
	for _, u := range w.dissolving {
		w.tracker.UpdateSurvivalTime(u.id, w.tick, w.dt)
		w.tracker.Remove(u.id)
	}
	if len(w.dissolving) > 0 {
		alive := w.unities[:0]
		for _, u := range w.unities {
			if len(u.members) > 0 {
				alive = append(alive, u)
			}
		}
		w.unities = alive
	}

	for _, u := range w.splitting {
		keep, transfer := systems.Partition(w.rng, u.members)
		u.members = keep
		u.radius /= 2
		u.splits++
		w.collector.RecordSplit()
		w.tracker.RecordSplit(u.id)

		child := w.foundUnity(transfer, u.generation+1)
		w.tracker.RecordChild(u.id)

		// Transferred agents decelerate progressively so the child colony
		// drifts apart from the parent instead of shadowing it
		for i, e := range child.members {
			vel := w.velMap.Get(e)
			div := float32(i + 1)
			vel.X /= div
			vel.Y /= div
		}
	}

	for _, req := range w.spawnRequests {
		e := w.spawnAgent(req.x, req.y)
		req.u.members = append(req.u.members, e)
		req.u.radius = float32(len(req.u.members)) / 2
		w.collector.RecordSpawn()
	}
}

// replenishResources tops up the pool when it runs low. The pool is never
// left empty: a targetless world would stall every unity.
func (w *World) replenishResources() {
	cfg := w.cfg

	if w.pool.Count() <= cfg.Resource.ReplenishThreshold {
		n := w.rng.Intn(cfg.Resource.ReplenishMax + 1)
		for i := 0; i < n; i++ {
			w.pool.Spawn(w.rng)
			w.collector.RecordResourceSpawn()
		}
	}
	if w.pool.Count() == 0 {
		w.pool.Spawn(w.rng)
		w.collector.RecordResourceSpawn()
	}
}

// updateTrackers refreshes per-unity lifetime stats.
func (w *World) updateTrackers() {
	for _, u := range w.unities {
		w.tracker.UpdateMembers(u.id, len(u.members))
		w.tracker.UpdateSurvivalTime(u.id, w.tick, w.dt)
	}
}
