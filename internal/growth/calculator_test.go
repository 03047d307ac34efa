package growth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/camposur/herdtrack/internal/domain"
)

func weighingAt(t *testing.T, at string, kg float64) domain.Weighing {
	t.Helper()
	weighedAt, err := time.Parse(time.RFC3339, at)
	if err != nil {
		t.Fatalf("bad test date %q: %v", at, err)
	}
	return domain.NewWeighing(uuid.New(), weighedAt, decimal.NewFromFloat(kg))
}

func TestCompute_FewerThanTwoObservations(t *testing.T) {
	if m := Compute(nil); m.GrowthLast != nil || m.GrowthTrailing30 != nil {
		t.Fatalf("empty history should yield undefined rates: %+v", m)
	}

	single := []domain.Weighing{weighingAt(t, "2024-01-01T00:00:00Z", 500)}
	m := Compute(single)
	if m.GrowthLast != nil || m.GrowthTrailing30 != nil {
		t.Fatalf("single observation should yield undefined rates: %+v", m)
	}
	if !m.LatestWeightKg.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("latest weight should carry through, got %s", m.LatestWeightKg)
	}
}

func TestCompute_LastIntervalRate(t *testing.T) {
	history := []domain.Weighing{
		weighingAt(t, "2024-01-01T00:00:00Z", 500),
		weighingAt(t, "2024-01-11T00:00:00Z", 520),
	}

	m := Compute(history)
	if m.GrowthLast == nil {
		t.Fatal("expected a defined last-interval rate")
	}
	if *m.GrowthLast != 2.0 {
		t.Fatalf("expected 2.0 kg/day, got %v", *m.GrowthLast)
	}
}

func TestCompute_UnorderedBackfill(t *testing.T) {
	// A backfilled historical weighing arrives after newer ones; the two most
	// recent distinct days must still be picked by date, not insert order.
	history := []domain.Weighing{
		weighingAt(t, "2024-01-21T00:00:00Z", 530),
		weighingAt(t, "2024-01-01T00:00:00Z", 500),
		weighingAt(t, "2024-01-11T00:00:00Z", 520),
	}

	m := Compute(history)
	if m.GrowthLast == nil || *m.GrowthLast != 1.0 {
		t.Fatalf("expected 1.0 kg/day between Jan 11 and Jan 21, got %+v", m.GrowthLast)
	}
	if !m.LatestWeightKg.Equal(decimal.NewFromInt(530)) {
		t.Fatalf("latest weight should be the chronologically last, got %s", m.LatestWeightKg)
	}
}

func TestCompute_SameDayDuplicateUsesLatestEntry(t *testing.T) {
	history := []domain.Weighing{
		weighingAt(t, "2024-01-01T00:00:00Z", 500),
		weighingAt(t, "2024-01-11T08:00:00Z", 999), // double entry, corrected below
		weighingAt(t, "2024-01-11T08:00:00Z", 999),
	}
	corrected := weighingAt(t, "2024-01-11T16:00:00Z", 520)
	history = append(history, corrected)

	m := Compute(history)
	if !m.LatestWeightKg.Equal(decimal.NewFromInt(520)) {
		t.Fatalf("latest same-day entry should win, got %s", m.LatestWeightKg)
	}
}

func TestCompute_Trailing30Window(t *testing.T) {
	history := []domain.Weighing{
		weighingAt(t, "2024-01-01T00:00:00Z", 480), // outside the window
		weighingAt(t, "2024-02-10T00:00:00Z", 500),
		weighingAt(t, "2024-02-20T00:00:00Z", 505),
		weighingAt(t, "2024-03-01T00:00:00Z", 520),
	}

	m := Compute(history)
	if m.GrowthTrailing30 == nil {
		t.Fatal("expected a defined trailing rate")
	}
	// Window anchors at Mar 1 and reaches back to Jan 31, so Feb 10 is the
	// earliest point inside it: (520-500)/20 = 1.0 kg/day.
	if *m.GrowthTrailing30 != 1.0 {
		t.Fatalf("expected 1.0 kg/day trailing, got %v", *m.GrowthTrailing30)
	}
}

func TestCompute_TrailingUndefinedWithLonePointInWindow(t *testing.T) {
	history := []domain.Weighing{
		weighingAt(t, "2024-01-01T00:00:00Z", 480),
		weighingAt(t, "2024-03-15T00:00:00Z", 520),
	}

	m := Compute(history)
	if m.GrowthTrailing30 != nil {
		t.Fatalf("trailing rate should be undefined with one point in window, got %v", *m.GrowthTrailing30)
	}
	if m.GrowthLast == nil {
		t.Fatal("last-interval rate should still be defined")
	}
}

func TestCompute_Idempotent(t *testing.T) {
	history := []domain.Weighing{
		weighingAt(t, "2024-01-01T00:00:00Z", 500),
		weighingAt(t, "2024-01-11T00:00:00Z", 520),
		weighingAt(t, "2024-01-25T00:00:00Z", 540),
	}

	first := Compute(history)
	second := Compute(history)

	if *first.GrowthLast != *second.GrowthLast || *first.GrowthTrailing30 != *second.GrowthTrailing30 {
		t.Fatalf("recomputation must be idempotent: %+v vs %+v", first, second)
	}
}
