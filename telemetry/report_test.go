package telemetry

import (
	"math"
	"testing"
)

func TestBuildReport(t *testing.T) {
	dt := float32(1.0 / 60.0)
	ut := NewUnityTracker()

	// Unity 1: founded at 0, dissolved at 600 (10s)
	ut.Register(1, 0, 0)
	ut.RecordSplit(1)
	ut.RecordChild(1)
	ut.UpdateMembers(1, 20)
	ut.UpdateSurvivalTime(1, 600, dt)
	ut.Remove(1)

	// Unity 2: founded at 300, still alive at 1200 (15s)
	ut.Register(2, 300, 1)
	ut.RecordMetabolise(2)

	// Unity 3: founded at 0, still alive at 1200 (20s)
	ut.Register(3, 0, 0)

	r := BuildReport(ut, 1200, dt)

	if r.UnitiesFounded != 3 {
		t.Errorf("expected 3 unities founded, got %d", r.UnitiesFounded)
	}
	if r.UnitiesAlive != 2 {
		t.Errorf("expected 2 unities alive, got %d", r.UnitiesAlive)
	}
	if r.MaxGeneration != 1 {
		t.Errorf("expected max generation 1, got %d", r.MaxGeneration)
	}
	if r.TotalSplits != 1 || r.TotalMetabolised != 1 {
		t.Errorf("expected 1 split and 1 metabolised, got %d and %d", r.TotalSplits, r.TotalMetabolised)
	}

	// Survivals are 10, 15, 20 seconds
	if math.Abs(r.SurvivalMeanSec-15.0) > 0.001 {
		t.Errorf("expected mean survival 15s, got %v", r.SurvivalMeanSec)
	}
	if math.Abs(r.SurvivalStdSec-5.0) > 0.001 {
		t.Errorf("expected survival std 5s, got %v", r.SurvivalStdSec)
	}
	if math.Abs(r.SurvivalP50Sec-15.0) > 0.001 {
		t.Errorf("expected median survival 15s, got %v", r.SurvivalP50Sec)
	}

	if len(r.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(r.Rows))
	}
	if r.Rows[0].UnityID != 1 || r.Rows[0].Alive {
		t.Errorf("expected row 0 to be dissolved unity 1, got id %d alive %v", r.Rows[0].UnityID, r.Rows[0].Alive)
	}
	if r.Rows[0].PeakMembers != 20 || r.Rows[0].Children != 1 {
		t.Errorf("unexpected row 0 counters: peak %d children %d", r.Rows[0].PeakMembers, r.Rows[0].Children)
	}
	if math.Abs(float64(r.Rows[1].SurvivalSec)-15.0) > 0.001 {
		t.Errorf("expected unity 2 survival 15s, got %v", r.Rows[1].SurvivalSec)
	}
}

func TestBuildReportEmpty(t *testing.T) {
	r := BuildReport(NewUnityTracker(), 1000, 1.0/60.0)

	if r.UnitiesFounded != 0 || r.UnitiesAlive != 0 {
		t.Errorf("expected empty report, got %d founded %d alive", r.UnitiesFounded, r.UnitiesAlive)
	}
	if r.SurvivalMeanSec != 0 || r.SurvivalStdSec != 0 {
		t.Error("expected zero survival stats for empty report")
	}
	if len(r.Rows) != 0 {
		t.Errorf("expected no rows, got %d", len(r.Rows))
	}
}
