// Package components defines ECS components for the simulation.
package components

// Position represents an entity's world position.
type Position struct {
	X, Y float32
}

// Velocity represents an entity's velocity.
// Components are clamped independently to [-MaxVel, MaxVel] each tick.
type Velocity struct {
	X, Y float32
}

// Motion holds transient per-tick motion state.
// Accel is recomputed from steering forces every tick; Heading is advanced
// at a fixed angular rate and only consumed by the renderer.
type Motion struct {
	AccelX  float32
	AccelY  float32
	Heading float32 // Radians, presentation only
}

// Vitals holds an agent's remaining health.
// Health decreases every tick; an agent at or below zero is removed from
// its unity before the next force computation.
type Vitals struct {
	Health float32
}
