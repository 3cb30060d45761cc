package telemetry

// windowCounters holds the event tallies for one stats window.
type windowCounters struct {
	spawns         int
	deaths         int
	splits         int
	metabolised    int
	resourceSpawns int
}

// Collector tallies lifecycle events between window flushes.
type Collector struct {
	windowTicks int32
	dt          float32

	windowStart int32
	counts      windowCounters
}

// NewCollector creates a collector whose windows span windowDurationSec
// of simulated time. dt is seconds per tick.
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	ticks := int32(windowDurationSec / float64(dt))
	if ticks < 1 {
		ticks = 1
	}
	return &Collector{windowTicks: ticks, dt: dt}
}

// RecordSpawn records an agent entering the world.
func (c *Collector) RecordSpawn() {
	c.counts.spawns++
}

// RecordDeath records an agent death.
func (c *Collector) RecordDeath() {
	c.counts.deaths++
}

// RecordSplit records a unity self-reproduction.
func (c *Collector) RecordSplit() {
	c.counts.splits++
}

// RecordMetabolise records a resource consumed by a unity.
func (c *Collector) RecordMetabolise() {
	c.counts.metabolised++
}

// RecordResourceSpawn records a resource entering the pool.
func (c *Collector) RecordResourceSpawn() {
	c.counts.resourceSpawns++
}

// ShouldFlush reports whether the current window is over.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStart >= c.windowTicks
}

// Flush closes the window at currentTick and returns its stats. The
// population counts and health samples describe the world as of the
// flush; the event tallies cover the whole window.
func (c *Collector) Flush(
	currentTick int32,
	unityCount, agentCount, resourceCount int,
	healths []float64,
	pursue bool,
) WindowStats {
	healthMean, healthP10, healthP50, healthP90 := ComputeHealthStats(healths)

	stats := WindowStats{
		WindowStartTick: c.windowStart,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * float64(c.dt),

		UnityCount:    unityCount,
		AgentCount:    agentCount,
		ResourceCount: resourceCount,

		Spawns:         c.counts.spawns,
		Deaths:         c.counts.deaths,
		Splits:         c.counts.splits,
		Metabolised:    c.counts.metabolised,
		ResourceSpawns: c.counts.resourceSpawns,

		HealthMean: healthMean,
		HealthP10:  healthP10,
		HealthP50:  healthP50,
		HealthP90:  healthP90,

		Pursue: pursue,
	}

	c.windowStart = currentTick
	c.counts = windowCounters{}

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowTicks
}
