// Package growth derives daily weight-gain metrics from an animal's weighing
// history and records new weighings atomically.
package growth

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/camposur/herdtrack/internal/domain"
	"github.com/camposur/herdtrack/pkg/timeseries"
)

// trailingWindow is the span of the trailing growth-rate window, ending at
// the most recent observation inclusive.
const trailingWindow = 30 * 24 * time.Hour

// Metrics is the outcome of a recomputation over a full weighing history.
// Nil rates mean the metric is undefined for the current history.
type Metrics struct {
	LatestWeightKg   decimal.Decimal
	GrowthLast       *float64
	GrowthTrailing30 *float64
}

// Compute recomputes both growth rates from the complete history. The input
// may arrive unordered and may contain same-day double entries; it is always
// deduplicated by calendar day (latest timestamp wins) and sorted before any
// rate is derived, so a backfilled historical weighing reshuffles the window
// correctly. Pure function: identical histories yield identical metrics.
func Compute(history []domain.Weighing) Metrics {
	observations := timeseries.DedupByCalendarDay(history, func(w domain.Weighing) time.Time {
		return w.WeighedAt
	})

	if len(observations) == 0 {
		return Metrics{}
	}

	latest := observations[len(observations)-1]
	metrics := Metrics{LatestWeightKg: latest.WeightKg}

	if len(observations) < 2 {
		return metrics
	}

	previous := observations[len(observations)-2]
	metrics.GrowthLast = RateBetween(previous, latest)

	windowStart := latest.WeighedAt.Add(-trailingWindow)
	var earliestInWindow *domain.Weighing
	for i := range observations {
		if !observations[i].WeighedAt.Before(windowStart) {
			earliestInWindow = &observations[i]
			break
		}
	}
	if earliestInWindow != nil && earliestInWindow.ID != latest.ID {
		metrics.GrowthTrailing30 = RateBetween(*earliestInWindow, latest)
	}

	return metrics
}

// RateBetween derives kg/day between two observations, using the exact
// fractional day gap. Returns nil when the gap is zero.
func RateBetween(earlier, later domain.Weighing) *float64 {
	gap := timeseries.DayDiffExact(later.WeighedAt, earlier.WeighedAt)
	if gap == 0 {
		return nil
	}
	rate := later.WeightKg.Sub(earlier.WeightKg).InexactFloat64() / gap
	return &rate
}
