package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/s-lawrence/autopoiesis/systems"
)

// Unity is a flocking group of agents sharing one resource target. A unity
// is the unit of selection: it splits when it grows past the threshold and
// dissolves when its last member dies.
type Unity struct {
	id      uint32
	members []ecs.Entity

	// Current resource target. hasTarget is false while the pool is empty
	// or the previous target was metabolised by another unity.
	target    systems.ResourceID
	hasTarget bool

	radius     float32
	generation int

	// Lifecycle counters
	splits      int
	metabolised int

	// Barycenter accumulators, rebuilt each tick from the position snapshot
	sumX, sumY float32
}

// ID returns the unity's stable identifier.
func (u *Unity) ID() uint32 {
	return u.id
}

// Size returns the current member count.
func (u *Unity) Size() int {
	return len(u.members)
}

// Generation returns how many splits separate this unity from the seed colony.
func (u *Unity) Generation() int {
	return u.generation
}

// Barycenter returns the mean member position from the current snapshot.
// Only valid after the snapshot phase of the tick has run.
func (u *Unity) Barycenter() (float32, float32) {
	n := float32(len(u.members))
	if n == 0 {
		return 0, 0
	}
	return u.sumX / n, u.sumY / n
}
