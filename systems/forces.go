package systems

// Steering forces are pure functions over a position snapshot taken at the
// start of the tick. Divisors and ranges come from the caller so the same
// math serves the live simulation, tests, and parameter search.

// CohesionForce returns the pull toward the barycenter of the other members
// of an agent's unity. sumX and sumY are position sums over all members
// including the agent itself; members is the member count. A unity of one
// has no barycenter to seek and yields the zero vector.
func CohesionForce(px, py, sumX, sumY float32, members int, divisor float32) (float32, float32) {
	if members <= 1 {
		return 0, 0
	}
	others := float32(members - 1)
	bx := (sumX - px) / others
	by := (sumY - py) / others
	return (bx - px) / divisor, (by - py) / divisor
}

// SeparationForce accumulates repulsion away from every neighbor returned
// by a spatial query. Each contribution is the negated offset to the
// neighbor, so the push is directly away from each flockmate in range.
func SeparationForce(neighbors []Neighbor) (float32, float32) {
	var fx, fy float32
	for _, n := range neighbors {
		fx -= n.DX
		fy -= n.DY
	}
	return fx, fy
}

// PursuitForce returns the pull from an agent position toward a target point.
func PursuitForce(px, py, tx, ty, divisor float32) (float32, float32) {
	return (tx - px) / divisor, (ty - py) / divisor
}

// ClampVelocity limits each velocity component independently to
// [-maxVel, maxVel], preserving its sign.
func ClampVelocity(vx, vy, maxVel float32) (float32, float32) {
	if vx > maxVel {
		vx = maxVel
	} else if vx < -maxVel {
		vx = -maxVel
	}
	if vy > maxVel {
		vy = maxVel
	} else if vy < -maxVel {
		vy = -maxVel
	}
	return vx, vy
}
