// Package scoring maps KPI records to the three-tier traffic-light
// classification and aggregates KPIs across a herd.
package scoring

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/camposur/herdtrack/internal/domain"
)

// Tier is the traffic-light classification.
type Tier string

const (
	TierGreen  Tier = "green"
	TierYellow Tier = "yellow"
	TierRed    Tier = "red"
)

// Classification is the scoring outcome: the worst triggered tier plus the
// unique human-readable reasons in first-seen order.
type Classification struct {
	AnimalID uuid.UUID
	Tag      string
	Tier     Tier
	Reasons  []string
}

const (
	reasonInsufficientHistory = "insufficient history"
	reasonRepeatEmpty         = "two consecutive empty diagnoses"
	reasonLastEmpty           = "most recent diagnosis: empty"
)

// Classify evaluates every rule independently against one KPI record; the
// final tier is the worst one triggered. Metric thresholds layer: a value
// above the critical threshold reports both the yellow-max reason and the
// critical reason. Overlap is intentional, both flags are user-facing.
func Classify(record domain.KPIRecord, thresholds domain.SelectionThresholds) Classification {
	result := Classification{AnimalID: record.AnimalID, Tag: record.Tag, Tier: TierGreen}
	seen := make(map[string]bool)

	raise := func(tier Tier, reason string) {
		if tierRank(tier) > tierRank(result.Tier) {
			result.Tier = tier
		}
		if !seen[reason] {
			seen[reason] = true
			result.Reasons = append(result.Reasons, reason)
		}
	}

	if !record.HasHistory() {
		raise(TierYellow, reasonInsufficientHistory)
	}

	if record.IsRepeatEmpty {
		raise(TierRed, reasonRepeatEmpty)
	} else if record.IsEmpty {
		raise(TierYellow, reasonLastEmpty)
	}

	if record.OpenDays != nil {
		scoreMetric(raise, "days-open", *record.OpenDays,
			thresholds.OpenDaysGreenMax, thresholds.OpenDaysYellowMax, thresholds.OpenDaysCritical)
	}
	if record.IEPDays != nil {
		scoreMetric(raise, "calving interval", *record.IEPDays,
			thresholds.IEPGreenMax, thresholds.IEPYellowMax, thresholds.IEPCritical)
	}

	return result
}

// scoreMetric applies the shared three-tier pattern: above yellowMax is red,
// else above greenMax is yellow; above critical an extra red reason is
// layered on top of the yellowMax one.
func scoreMetric(raise func(Tier, string), metric string, value, greenMax, yellowMax, critical int) {
	if value > yellowMax {
		raise(TierRed, fmt.Sprintf("%s above %d", metric, yellowMax))
	} else if value > greenMax {
		raise(TierYellow, fmt.Sprintf("%s above %d", metric, greenMax))
	}
	if value > critical {
		raise(TierRed, fmt.Sprintf("%s above %d", metric, critical))
	}
}

func tierRank(tier Tier) int {
	switch tier {
	case TierRed:
		return 2
	case TierYellow:
		return 1
	default:
		return 0
	}
}

// HerdSummary aggregates KPIs across a herd for reporting. Means and the
// above-threshold share are computed over animals whose metric is defined.
type HerdSummary struct {
	Animals int

	MeanOpenDays        *float64
	PctOpenAboveYellow  *float64
	MeanCalvingInterval *float64
	PregnancyRate       *float64
	PregnantExposed     int
	TotalExposed        int
	RedCount            int
	YellowCount         int
	GreenCount          int
	TopAlerts           []Classification
}

// Aggregate computes the herd-level summary. The overall pregnancy rate uses
// the same two policies as the per-animal engine, summed across the herd:
// pregnant-exposed over total-exposed in season mode, pregnant window
// diagnoses over all window diagnoses in rolling mode. RED-tier animals are
// ranked by descending days open for the top-alerts list; an undefined
// days-open sorts lowest.
func Aggregate(records []domain.KPIRecord, scope *domain.SeasonScope, thresholds domain.SelectionThresholds) HerdSummary {
	summary := HerdSummary{Animals: len(records)}

	var openSum, iepSum float64
	var openCount, iepCount, openAboveYellow int
	var windowPregnant, windowDiagnosed int
	redOpenDays := make(map[uuid.UUID]*int)

	for _, record := range records {
		if record.OpenDays != nil {
			openSum += float64(*record.OpenDays)
			openCount++
			if *record.OpenDays > thresholds.OpenDaysYellowMax {
				openAboveYellow++
			}
		}
		if record.IEPDays != nil {
			iepSum += float64(*record.IEPDays)
			iepCount++
		}

		if scope != nil {
			if record.Exposed != nil && *record.Exposed {
				summary.TotalExposed++
				if record.PregnancyRate != nil && *record.PregnancyRate == 1.0 {
					summary.PregnantExposed++
				}
			}
		} else {
			windowPregnant += record.WindowPregnant
			windowDiagnosed += record.WindowDiagnosed
		}

		classification := Classify(record, thresholds)
		switch classification.Tier {
		case TierRed:
			summary.RedCount++
			summary.TopAlerts = append(summary.TopAlerts, classification)
			redOpenDays[record.AnimalID] = record.OpenDays
		case TierYellow:
			summary.YellowCount++
		default:
			summary.GreenCount++
		}
	}

	if openCount > 0 {
		mean := openSum / float64(openCount)
		summary.MeanOpenDays = &mean
		pct := float64(openAboveYellow) / float64(openCount) * 100
		summary.PctOpenAboveYellow = &pct
	}
	if iepCount > 0 {
		mean := iepSum / float64(iepCount)
		summary.MeanCalvingInterval = &mean
	}

	if scope != nil {
		if summary.TotalExposed > 0 {
			rate := float64(summary.PregnantExposed) / float64(summary.TotalExposed)
			summary.PregnancyRate = &rate
		}
	} else if windowDiagnosed > 0 {
		rate := float64(windowPregnant) / float64(windowDiagnosed)
		summary.PregnancyRate = &rate
	}

	sort.SliceStable(summary.TopAlerts, func(i, j int) bool {
		return openDaysRank(redOpenDays[summary.TopAlerts[i].AnimalID]) >
			openDaysRank(redOpenDays[summary.TopAlerts[j].AnimalID])
	})

	return summary
}

func openDaysRank(openDays *int) int {
	if openDays == nil {
		return -1
	}
	return *openDays
}
