package telemetry

import "sort"

// UnityStats tracks per-unity statistics over its lifetime.
type UnityStats struct {
	UnityID     uint32
	Generation  int
	FoundedTick int32

	SurvivalTimeSec float32

	// Lifecycle events
	Splits          int
	Metabolised     int
	ChildrenFounded int

	// Membership
	PeakMembers int

	Alive bool
}

// UnityTracker manages per-unity lifetime statistics.
// Dissolved unities are retained for end-of-run reporting.
type UnityTracker struct {
	live map[uint32]*UnityStats
	dead []*UnityStats
}

// NewUnityTracker creates a new unity tracker.
func NewUnityTracker() *UnityTracker {
	return &UnityTracker{
		live: make(map[uint32]*UnityStats),
	}
}

// Register creates stats for a newly founded unity.
func (ut *UnityTracker) Register(unityID uint32, foundedTick int32, generation int) {
	ut.live[unityID] = &UnityStats{
		UnityID:     unityID,
		Generation:  generation,
		FoundedTick: foundedTick,
		Alive:       true,
	}
}

// Get returns the stats for a living unity, or nil if not found.
func (ut *UnityTracker) Get(unityID uint32) *UnityStats {
	return ut.live[unityID]
}

// Remove retires a unity's stats and returns them.
// The caller should call UpdateSurvivalTime first so the final
// survival time is recorded.
func (ut *UnityTracker) Remove(unityID uint32) *UnityStats {
	stats := ut.live[unityID]
	if stats == nil {
		return nil
	}
	delete(ut.live, unityID)
	stats.Alive = false
	ut.dead = append(ut.dead, stats)
	return stats
}

// RecordSplit increments the split count.
func (ut *UnityTracker) RecordSplit(unityID uint32) {
	if s := ut.live[unityID]; s != nil {
		s.Splits++
	}
}

// RecordMetabolise increments the metabolised resource count.
func (ut *UnityTracker) RecordMetabolise(unityID uint32) {
	if s := ut.live[unityID]; s != nil {
		s.Metabolised++
	}
}

// RecordChild increments the founded-children count.
func (ut *UnityTracker) RecordChild(parentID uint32) {
	if s := ut.live[parentID]; s != nil {
		s.ChildrenFounded++
	}
}

// UpdateMembers tracks peak membership.
func (ut *UnityTracker) UpdateMembers(unityID uint32, members int) {
	if s := ut.live[unityID]; s != nil {
		if members > s.PeakMembers {
			s.PeakMembers = members
		}
	}
}

// UpdateSurvivalTime updates the survival time based on current tick.
func (ut *UnityTracker) UpdateSurvivalTime(unityID uint32, currentTick int32, dt float32) {
	if s := ut.live[unityID]; s != nil {
		s.SurvivalTimeSec = float32(currentTick-s.FoundedTick) * dt
	}
}

// LiveCount returns the number of living unities tracked.
func (ut *UnityTracker) LiveCount() int {
	return len(ut.live)
}

// Records returns stats for every unity ever registered, living and
// dissolved, ordered by unity ID.
func (ut *UnityTracker) Records() []*UnityStats {
	records := make([]*UnityStats, 0, len(ut.live)+len(ut.dead))
	for _, s := range ut.live {
		records = append(records, s)
	}
	records = append(records, ut.dead...)
	sort.Slice(records, func(i, j int) bool {
		return records[i].UnityID < records[j].UnityID
	})
	return records
}
