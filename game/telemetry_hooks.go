package game

import (
	"log/slog"
)

// flushTelemetry flushes the stats window when due and routes the result to
// the configured sinks.
func (g *Game) flushTelemetry() {
	w := g.w
	if !w.collector.ShouldFlush(w.tick) {
		return
	}

	g.healths = w.sampleHealths(g.healths[:0])

	stats := w.collector.Flush(
		w.tick,
		len(w.unities),
		w.agentCount,
		w.pool.Count(),
		g.healths,
		w.pursue,
	)
	perfStats := w.perf.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}
