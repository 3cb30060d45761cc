package systems

// AdvanceHeading advances a presentation heading by a fixed angular
// velocity, wrapped to [0, 2*Pi). Heading never feeds back into physics.
func AdvanceHeading(heading, angularVel float32) float32 {
	return normalizeHeading(heading + angularVel)
}

// OverlapAABB reports whether two axis-aligned boxes, centered at the given
// points with the given half-widths, overlap on both axes. Boxes that only
// touch at the boundary do not overlap.
func OverlapAABB(x1, y1, half1, x2, y2, half2 float32) bool {
	reach := half1 + half2
	return absf(x1-x2) < reach && absf(y1-y2) < reach
}

// ResolveObstacle checks a proposed move (nx, ny) against an obstacle box
// centered at (obsX, obsY) with the given half-width. On contact the move
// is pushed back outward by the offset from the agent's current position
// (px, py) to the obstacle center, and the velocity is inverted and
// dampened. Returns the resolved position and velocity, and whether contact
// occurred.
func ResolveObstacle(nx, ny, px, py, vx, vy, obsX, obsY, half, damp float32) (float32, float32, float32, float32, bool) {
	if absf(nx-obsX) >= half || absf(ny-obsY) >= half {
		return nx, ny, vx, vy, false
	}
	rx := nx - (obsX - px)
	ry := ny - (obsY - py)
	return rx, ry, -vx * damp, -vy * damp, true
}

// ResolveBoundary clamps a proposed move to [0, maxX] x [0, maxY] and flips
// the velocity component on each axis that clamped. The bounce is fully
// elastic.
func ResolveBoundary(nx, ny, vx, vy, maxX, maxY float32) (float32, float32, float32, float32) {
	if nx < 0 {
		nx = 0
		vx = -vx
	} else if nx > maxX {
		nx = maxX
		vx = -vx
	}
	if ny < 0 {
		ny = 0
		vy = -vy
	} else if ny > maxY {
		ny = maxY
		vy = -vy
	}
	return nx, ny, vx, vy
}
