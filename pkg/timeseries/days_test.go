package timeseries

import (
	"errors"
	"testing"
	"time"
)

type stamped struct {
	at    time.Time
	value float64
}

func mustParse(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := ParseInstant(value)
	if err != nil {
		t.Fatalf("failed to parse %q: %v", value, err)
	}
	return parsed
}

func TestDayDiff_RoundsToNearestDay(t *testing.T) {
	earlier := mustParse(t, "2024-01-10T08:00:00Z")

	cases := []struct {
		later string
		want  int
	}{
		{"2024-01-10T08:00:00Z", 0},
		{"2024-01-20T08:00:00Z", 10},
		{"2024-01-20T07:00:00Z", 10}, // 9.96 days rounds up
		{"2024-01-20T21:00:00Z", 11}, // 10.54 days rounds up
		{"2024-01-09T08:00:00Z", -1},
	}

	for _, tc := range cases {
		if got := DayDiff(mustParse(t, tc.later), earlier); got != tc.want {
			t.Fatalf("DayDiff(%s) = %d, want %d", tc.later, got, tc.want)
		}
	}
}

func TestDayDiff_InterCalvingExample(t *testing.T) {
	first := mustParse(t, "2023-01-10")
	second := mustParse(t, "2024-03-01")

	if got := DayDiff(second, first); got != 416 {
		t.Fatalf("expected 416 days between calvings, got %d", got)
	}
}

func TestDayDiffExact_FractionalDays(t *testing.T) {
	earlier := mustParse(t, "2024-01-10T00:00:00Z")
	later := mustParse(t, "2024-01-11T12:00:00Z")

	if got := DayDiffExact(later, earlier); got != 1.5 {
		t.Fatalf("expected 1.5 days, got %v", got)
	}
}

func TestDedupByCalendarDay_LatestTimestampWins(t *testing.T) {
	points := []stamped{
		{at: mustParse(t, "2024-02-03T09:00:00Z"), value: 410},
		{at: mustParse(t, "2024-02-01T10:00:00Z"), value: 400},
		{at: mustParse(t, "2024-02-03T16:30:00Z"), value: 412},
		{at: mustParse(t, "2024-02-02T08:00:00Z"), value: 405},
	}

	deduped := DedupByCalendarDay(points, func(p stamped) time.Time { return p.at })

	if len(deduped) != 3 {
		t.Fatalf("expected 3 distinct days, got %d", len(deduped))
	}
	if deduped[0].value != 400 || deduped[1].value != 405 || deduped[2].value != 412 {
		t.Fatalf("unexpected dedup result: %+v", deduped)
	}
}

func TestDedupByCalendarDay_Empty(t *testing.T) {
	if got := DedupByCalendarDay(nil, func(p stamped) time.Time { return p.at }); got != nil {
		t.Fatalf("expected nil for empty input, got %+v", got)
	}
}

func TestParseInstant_AcceptedLayouts(t *testing.T) {
	for _, value := range []string{
		"2024-03-01T10:00:00Z",
		"2024-03-01",
		"2024-03-01 10:00:00",
		"2024/03/01",
	} {
		if _, err := ParseInstant(value); err != nil {
			t.Fatalf("expected %q to parse, got %v", value, err)
		}
	}
}

func TestParseInstant_Rejected(t *testing.T) {
	for _, value := range []string{"", "   ", "not-a-date", "31-31-2024"} {
		_, err := ParseInstant(value)
		if !errors.Is(err, ErrUnparsableInstant) {
			t.Fatalf("expected ErrUnparsableInstant for %q, got %v", value, err)
		}
	}
}
