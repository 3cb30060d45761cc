package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// UnityRow is a flat per-unity record for CSV export.
type UnityRow struct {
	UnityID     uint32  `csv:"unity_id"`
	Generation  int     `csv:"generation"`
	FoundedTick int32   `csv:"founded_tick"`
	SurvivalSec float32 `csv:"survival_sec"`
	PeakMembers int     `csv:"peak_members"`
	Splits      int     `csv:"splits"`
	Metabolised int     `csv:"metabolised"`
	Children    int     `csv:"children"`
	Alive       bool    `csv:"alive"`
}

// Report summarises a completed run.
type Report struct {
	FinalTick      int32
	UnitiesFounded int
	UnitiesAlive   int
	MaxGeneration  int

	TotalSplits      int
	TotalMetabolised int

	SurvivalMeanSec float64
	SurvivalStdSec  float64
	SurvivalP50Sec  float64

	Rows []UnityRow
}

// BuildReport assembles the end-of-run report from the unity tracker.
// Survival of still-living unities is measured to finalTick.
func BuildReport(tracker *UnityTracker, finalTick int32, dt float32) Report {
	records := tracker.Records()

	r := Report{
		FinalTick:      finalTick,
		UnitiesFounded: len(records),
		Rows:           make([]UnityRow, 0, len(records)),
	}

	survivals := make([]float64, 0, len(records))
	for _, s := range records {
		if s.Alive {
			s.SurvivalTimeSec = float32(finalTick-s.FoundedTick) * dt
			r.UnitiesAlive++
		}
		if s.Generation > r.MaxGeneration {
			r.MaxGeneration = s.Generation
		}
		r.TotalSplits += s.Splits
		r.TotalMetabolised += s.Metabolised
		survivals = append(survivals, float64(s.SurvivalTimeSec))

		r.Rows = append(r.Rows, UnityRow{
			UnityID:     s.UnityID,
			Generation:  s.Generation,
			FoundedTick: s.FoundedTick,
			SurvivalSec: s.SurvivalTimeSec,
			PeakMembers: s.PeakMembers,
			Splits:      s.Splits,
			Metabolised: s.Metabolised,
			Children:    s.ChildrenFounded,
			Alive:       s.Alive,
		})
	}

	if len(survivals) > 0 {
		r.SurvivalMeanSec = stat.Mean(survivals, nil)
		sort.Float64s(survivals)
		r.SurvivalP50Sec = stat.Quantile(0.5, stat.Empirical, survivals, nil)
	}
	// Sample std dev needs at least two observations
	if len(survivals) > 1 {
		r.SurvivalStdSec = stat.StdDev(survivals, nil)
	}

	return r
}

// LogSummary logs the report as a single structured record.
func (r Report) LogSummary() {
	slog.Info("run_report",
		"final_tick", r.FinalTick,
		"unities_founded", r.UnitiesFounded,
		"unities_alive", r.UnitiesAlive,
		"max_generation", r.MaxGeneration,
		"total_splits", r.TotalSplits,
		"total_metabolised", r.TotalMetabolised,
		"survival_mean_sec", r.SurvivalMeanSec,
		"survival_std_sec", r.SurvivalStdSec,
		"survival_p50_sec", r.SurvivalP50Sec,
	)
}
