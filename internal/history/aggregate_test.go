package history

import (
	"math"
	"testing"
	"time"

	"target-scorer/internal/pattern"
	"target-scorer/pkg/geometry"
)

func rec(day int, shots int, mpiX, radius float64) Record {
	return Record{
		Timestamp:     time.Date(2026, 8, day, 10, 0, 0, 0, time.UTC),
		ShotCount:     shots,
		ClusterMPI:    geometry.NewPoint2D(mpiX, 0),
		ClusterRadius: radius,
	}
}

func TestAggregateWeightsByShotCount(t *testing.T) {
	records := []Record{
		rec(1, 10, 0.10, 0.30),
		rec(2, 5, 0.40, 0.60),
	}
	agg := Aggregate(records)

	wantMPI := (10*0.10 + 5*0.40) / 15
	if math.Abs(agg.MPI.X-wantMPI) > 1e-12 {
		t.Errorf("weighted MPI = %.4f, want %.4f", agg.MPI.X, wantMPI)
	}
	wantRadius := (10*0.30 + 5*0.60) / 15
	if math.Abs(agg.MeanRadius-wantRadius) > 1e-12 {
		t.Errorf("weighted radius = %.4f, want %.4f", agg.MeanRadius, wantRadius)
	}
	if agg.TotalShots != 15 {
		t.Errorf("total shots = %d", agg.TotalShots)
	}
	if agg.Confidence != pattern.ConfidenceHigh {
		t.Errorf("confidence for 15 shots = %s", agg.Confidence)
	}
}

func TestAggregateTrendImproving(t *testing.T) {
	// Six sessions with steadily shrinking radius.
	records := []Record{
		rec(1, 10, 0, 0.60),
		rec(5, 10, 0, 0.55),
		rec(9, 10, 0, 0.50),
		rec(13, 10, 0, 0.40),
		rec(17, 10, 0, 0.32),
		rec(21, 10, 0, 0.28),
	}
	if agg := Aggregate(records); agg.Trend != TrendImproving {
		t.Errorf("trend = %s, want improving", agg.Trend)
	}
}

func TestAggregateTrendDeclining(t *testing.T) {
	records := []Record{
		rec(1, 10, 0, 0.25),
		rec(5, 10, 0, 0.28),
		rec(9, 10, 0, 0.40),
		rec(13, 10, 0, 0.48),
	}
	if agg := Aggregate(records); agg.Trend != TrendDeclining {
		t.Errorf("trend = %s, want declining", agg.Trend)
	}
}

func TestAggregateTrendStableWithinTolerance(t *testing.T) {
	records := []Record{
		rec(1, 10, 0, 0.30),
		rec(5, 10, 0, 0.32),
		rec(9, 10, 0, 0.29),
		rec(13, 10, 0, 0.31),
	}
	if agg := Aggregate(records); agg.Trend != TrendStable {
		t.Errorf("trend = %s, want stable", agg.Trend)
	}
}

func TestAggregateTrendNeedsEnoughSessions(t *testing.T) {
	records := []Record{
		rec(1, 10, 0, 0.60),
		rec(5, 10, 0, 0.30),
		rec(9, 10, 0, 0.20),
	}
	if agg := Aggregate(records); agg.Trend != TrendStable {
		t.Errorf("trend over 3 sessions = %s, want stable", agg.Trend)
	}
}

func TestAggregateShotsByDay(t *testing.T) {
	records := []Record{
		rec(1, 10, 0, 0.3),
		rec(1, 5, 0, 0.3),
		rec(2, 7, 0, 0.3),
	}
	agg := Aggregate(records)
	if agg.ShotsByDay["2026-08-01"] != 15 {
		t.Errorf("2026-08-01 shots = %d, want 15", agg.ShotsByDay["2026-08-01"])
	}
	if agg.ShotsByDay["2026-08-02"] != 7 {
		t.Errorf("2026-08-02 shots = %d, want 7", agg.ShotsByDay["2026-08-02"])
	}
}

func TestAggregateEmpty(t *testing.T) {
	agg := Aggregate(nil)
	if agg.SessionCount != 0 || agg.TotalShots != 0 {
		t.Errorf("empty aggregate = %+v", agg)
	}
	if agg.Trend != TrendStable {
		t.Errorf("empty trend = %s", agg.Trend)
	}
	if agg.Confidence != pattern.ConfidenceLow {
		t.Errorf("empty confidence = %s", agg.Confidence)
	}
}

func TestAggregateOutlierRate(t *testing.T) {
	records := []Record{
		{Timestamp: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), ShotCount: 10, OutlierCount: 1, ClusterRadius: 0.3},
		{Timestamp: time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC), ShotCount: 10, OutlierCount: 3, ClusterRadius: 0.3},
	}
	agg := Aggregate(records)
	if math.Abs(agg.OutlierRate-0.2) > 1e-12 {
		t.Errorf("outlier rate = %.3f, want 0.2", agg.OutlierRate)
	}
}

func TestRangeFor(t *testing.T) {
	now := time.Date(2026, 8, 25, 14, 30, 0, 0, time.UTC)

	today, err := RangeFor("today", now)
	if err != nil {
		t.Fatalf("today: %v", err)
	}
	if want := time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC); !today.From.Equal(want) {
		t.Errorf("today from = %v, want %v", today.From, want)
	}

	week, err := RangeFor("week", now)
	if err != nil {
		t.Fatalf("week: %v", err)
	}
	if want := now.AddDate(0, 0, -7); !week.From.Equal(want) {
		t.Errorf("week from = %v, want %v", week.From, want)
	}

	all, err := RangeFor("all", now)
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if !all.From.IsZero() || !all.To.IsZero() {
		t.Errorf("all should be unbounded: %+v", all)
	}

	if _, err := RangeFor("year", now); err == nil {
		t.Error("unknown range should return an error")
	}
}
