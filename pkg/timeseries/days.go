// Package timeseries holds the day-level arithmetic shared by the growth and
// reproductive KPI engines: calendar-day differences, calendar-day
// deduplication and timestamp parsing.
package timeseries

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
)

// ErrUnparsableInstant is returned when a timestamp matches none of the
// accepted layouts.
var ErrUnparsableInstant = errors.New("unparsable timestamp")

const hoursPerDay = 24.0

var instantLayouts = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.000",
	"2006/01/02",
	"02/01/2006",
}

// DayDiff returns the number of calendar days between two instants, rounded
// to the nearest whole day. Used for discrete KPIs such as the inter-calving
// interval and days open.
func DayDiff(later, earlier time.Time) int {
	return int(math.Round(DayDiffExact(later, earlier)))
}

// DayDiffExact returns the fractional number of days between two instants.
// Growth-rate denominators use this form because weighings rarely land a
// whole number of days apart.
func DayDiffExact(later, earlier time.Time) float64 {
	return later.Sub(earlier).Hours() / hoursPerDay
}

// DayKey collapses an instant to its calendar date, discarding time of day.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// DedupByCalendarDay reduces a sequence to at most one item per calendar
// date. When several items share a date, the one with the latest timestamp
// wins. The result is ordered by timestamp ascending.
func DedupByCalendarDay[T any](items []T, at func(T) time.Time) []T {
	if len(items) == 0 {
		return nil
	}

	byDay := make(map[string]T, len(items))
	for _, item := range items {
		key := DayKey(at(item))
		existing, ok := byDay[key]
		if !ok || at(item).After(at(existing)) {
			byDay[key] = item
		}
	}

	deduped := make([]T, 0, len(byDay))
	for _, item := range byDay {
		deduped = append(deduped, item)
	}
	sort.Slice(deduped, func(i, j int) bool {
		return at(deduped[i]).Before(at(deduped[j]))
	})

	return deduped
}

// ParseInstant parses an externally supplied timestamp. RFC3339 is the
// canonical encoding; a handful of common date-only spellings are accepted
// for imported historical records.
func ParseInstant(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, fmt.Errorf("%w: empty value", ErrUnparsableInstant)
	}

	for _, layout := range instantLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrUnparsableInstant, value)
}
