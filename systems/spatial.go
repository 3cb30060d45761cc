// Package systems provides the simulation math and spatial structures.
package systems

import (
	"github.com/mlange-42/ark/ecs"
)

// Neighbor holds a nearby entity with precomputed spatial data.
// This avoids recomputing deltas and distances in the force pass.
type Neighbor struct {
	E      ecs.Entity
	DX, DY float32 // Delta from query origin to the neighbor
	DistSq float32 // Squared distance (avoid sqrt in hot path)
}

type gridEntry struct {
	e    ecs.Entity
	x, y float32
}

// SpatialGrid provides O(1) neighbor lookups using a cell-based grid over a
// bounded world. Positions are captured at insert time, so queries observe
// the state of the tick the grid was built from even while entities move.
type SpatialGrid struct {
	cellSize float32
	cols     int
	rows     int
	cells    [][]gridEntry
}

// NewSpatialGrid creates a spatial grid covering the given world size.
func NewSpatialGrid(width, height, cellSize float32) *SpatialGrid {
	cols := int(width/cellSize) + 1
	rows := int(height/cellSize) + 1

	cells := make([][]gridEntry, cols*rows)
	for i := range cells {
		cells[i] = make([]gridEntry, 0, 8) // pre-allocate small capacity
	}

	return &SpatialGrid{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		cells:    cells,
	}
}

// Clear removes all entries from the grid.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert adds an entity to the grid at the given position.
func (g *SpatialGrid) Insert(e ecs.Entity, x, y float32) {
	idx := g.cellIndex(x, y)
	g.cells[idx] = append(g.cells[idx], gridEntry{e: e, x: x, y: y})
}

// MaxQueryResults caps the number of neighbors returned by spatial queries.
// This prevents density spikes from causing unbounded work.
const MaxQueryResults = 128

// QueryRadiusInto finds entries strictly within radius and appends them to
// dst (up to MaxQueryResults). Returns the updated slice. Reuse dst across
// calls to avoid allocations.
func (g *SpatialGrid) QueryRadiusInto(dst []Neighbor, x, y, radius float32, exclude ecs.Entity) []Neighbor {
	cellRadius := int(radius/g.cellSize) + 1

	centerCol := int(x / g.cellSize)
	centerRow := int(y / g.cellSize)

	radiusSq := radius * radius

	for dc := -cellRadius; dc <= cellRadius; dc++ {
		col := centerCol + dc
		if col < 0 || col >= g.cols {
			continue
		}
		for dr := -cellRadius; dr <= cellRadius; dr++ {
			row := centerRow + dr
			if row < 0 || row >= g.rows {
				continue
			}

			for _, entry := range g.cells[row*g.cols+col] {
				if entry.e == exclude {
					continue
				}

				dx := entry.x - x
				dy := entry.y - y
				distSq := dx*dx + dy*dy

				if distSq < radiusSq {
					dst = append(dst, Neighbor{E: entry.e, DX: dx, DY: dy, DistSq: distSq})
					// Early exit if we hit the cap
					if len(dst) >= MaxQueryResults {
						return dst
					}
				}
			}
		}
	}

	return dst
}

// cellIndex returns the flat index for a world position, clamped to the grid.
func (g *SpatialGrid) cellIndex(x, y float32) int {
	col := int(x / g.cellSize)
	row := int(y / g.cellSize)

	if col < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}
	if row < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}

	return row*g.cols + col
}
