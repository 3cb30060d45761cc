package telemetry

import (
	"math"
	"testing"
)

func TestUnityTrackerLifecycle(t *testing.T) {
	ut := NewUnityTracker()

	ut.Register(1, 0, 0)
	ut.Register(2, 100, 1)

	if ut.LiveCount() != 2 {
		t.Fatalf("expected 2 live unities, got %d", ut.LiveCount())
	}

	ut.RecordSplit(1)
	ut.RecordChild(1)
	ut.RecordMetabolise(2)
	ut.UpdateMembers(1, 12)
	ut.UpdateMembers(1, 8)

	s := ut.Get(1)
	if s == nil {
		t.Fatal("expected stats for unity 1")
	}
	if s.Splits != 1 || s.ChildrenFounded != 1 {
		t.Errorf("expected 1 split and 1 child, got %d and %d", s.Splits, s.ChildrenFounded)
	}
	if s.PeakMembers != 12 {
		t.Errorf("expected peak members 12, got %d", s.PeakMembers)
	}

	ut.UpdateSurvivalTime(1, 600, 1.0/60.0)
	if math.Abs(float64(s.SurvivalTimeSec)-10.0) > 0.001 {
		t.Errorf("expected survival ~10s, got %v", s.SurvivalTimeSec)
	}

	removed := ut.Remove(1)
	if removed == nil {
		t.Fatal("expected removed stats for unity 1")
	}
	if removed.Alive {
		t.Error("removed unity should be marked dead")
	}
	if ut.LiveCount() != 1 {
		t.Errorf("expected 1 live unity after removal, got %d", ut.LiveCount())
	}
	if ut.Get(1) != nil {
		t.Error("expected nil stats for removed unity")
	}
}

func TestUnityTrackerRemoveUnknown(t *testing.T) {
	ut := NewUnityTracker()

	if ut.Remove(99) != nil {
		t.Error("expected nil when removing unknown unity")
	}
}

func TestUnityTrackerIgnoresUnknownIDs(t *testing.T) {
	ut := NewUnityTracker()

	// Events for unregistered unities should be dropped, not panic
	ut.RecordSplit(42)
	ut.RecordChild(42)
	ut.RecordMetabolise(42)
	ut.UpdateMembers(42, 10)
	ut.UpdateSurvivalTime(42, 100, 1.0/60.0)
}

func TestUnityTrackerRecords(t *testing.T) {
	ut := NewUnityTracker()

	ut.Register(3, 50, 1)
	ut.Register(1, 0, 0)
	ut.Register(2, 25, 0)
	ut.Remove(2)

	records := ut.Records()
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}

	// Ordered by unity ID regardless of alive state
	for i, wantID := range []uint32{1, 2, 3} {
		if records[i].UnityID != wantID {
			t.Errorf("record %d: expected unity %d, got %d", i, wantID, records[i].UnityID)
		}
	}
	if records[1].Alive {
		t.Error("expected unity 2 to be dead in records")
	}
	if !records[0].Alive || !records[2].Alive {
		t.Error("expected unities 1 and 3 to be alive in records")
	}
}
