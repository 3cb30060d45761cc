package game

import (
	"fmt"
	"io"
)

// logWriter is the destination for log output.
var logWriter io.Writer

// SetLogWriter sets the log output destination.
func SetLogWriter(w io.Writer) {
	logWriter = w
}

// Logf writes a formatted log message.
func Logf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if logWriter != nil {
		fmt.Fprintln(logWriter, msg)
	} else {
		fmt.Println(msg)
	}
}

// logWorldState dumps the current world state, one block per unity.
func (g *Game) logWorldState() {
	w := g.w

	phase := "drift"
	if w.pursue {
		phase = "pursuit"
	}

	Logf("=== Tick %d (%s) ===", w.tick, phase)
	Logf("Unities: %d, Agents: %d, Resources: %d", len(w.unities), w.agentCount, w.pool.Count())

	for _, u := range w.unities {
		bx, by := u.Barycenter()

		var minHealth, maxHealth, totalHealth float32
		minHealth = 9999999
		for _, e := range u.members {
			h := w.vitMap.Get(e).Health
			totalHealth += h
			if h < minHealth {
				minHealth = h
			}
			if h > maxHealth {
				maxHealth = h
			}
		}
		avgHealth := float32(0)
		if len(u.members) > 0 {
			avgHealth = totalHealth / float32(len(u.members))
		}
		if minHealth == 9999999 {
			minHealth = 0
		}

		target := "none"
		if u.hasTarget {
			if res, ok := w.pool.Lookup(u.target); ok {
				target = fmt.Sprintf("#%d @ (%d,%d) hp=%d", res.ID, res.X, res.Y, res.Health)
			}
		}

		Logf("Unity %d (gen %d): %d members @ (%.0f,%.0f), radius %.1f", u.id, u.generation, len(u.members), bx, by, u.radius)
		Logf("  Health: %.0f avg, %.0f-%.0f range | Splits: %d, Metabolised: %d", avgHealth, minHealth, maxHealth, u.splits, u.metabolised)
		Logf("  Target: %s", target)
	}
	Logf("")
}
