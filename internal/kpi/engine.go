// Package kpi derives reproductive performance indicators from an animal's
// append-only event log. The computation is a pure projection: no event is
// mutated and nothing is cached, the log is consumed fresh per call.
package kpi

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/camposur/herdtrack/internal/domain"
	"github.com/camposur/herdtrack/pkg/timeseries"
)

// RollingWindowDays is the span of the pregnancy-rate window used when a
// farm operates without breeding seasons.
const RollingWindowDays = 120

// Engine computes per-animal KPI records. The clock is injectable because
// the rolling window falls back to "now" for animals with neither a
// diagnosis nor a calving.
type Engine struct {
	now func() time.Time
}

// NewEngine creates a KPI engine using the wall clock.
func NewEngine() *Engine {
	return &Engine{now: time.Now}
}

// NewEngineAt creates a KPI engine with a fixed clock.
func NewEngineAt(now func() time.Time) *Engine {
	return &Engine{now: now}
}

// Compute derives the flat KPI record for one female animal. The event log
// may arrive in any order; ordering is always established by sorting
// descending by event date first. A nil scope selects the rolling-window
// pregnancy-rate policy, a non-nil one the season-scoped policy.
func (e *Engine) Compute(animalID uuid.UUID, tag string, events []domain.ReproEvent, scope *domain.SeasonScope) domain.KPIRecord {
	sorted := make([]domain.ReproEvent, len(events))
	copy(sorted, events)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].EventDate.After(sorted[j].EventDate)
	})

	record := domain.KPIRecord{AnimalID: animalID, Tag: tag}

	var calvings, diagnoses []domain.ReproEvent
	for _, event := range sorted {
		switch {
		case event.Type == domain.EventCalving:
			calvings = append(calvings, event)
		case event.IsDiagnosis():
			diagnoses = append(diagnoses, event)
		}
	}

	if len(calvings) > 0 {
		lastCalving := calvings[0].EventDate
		record.LastCalvingDate = &lastCalving
	}
	if len(calvings) >= 2 {
		iep := timeseries.DayDiff(calvings[0].EventDate, calvings[1].EventDate)
		record.IEPDays = &iep
	}

	if record.LastCalvingDate != nil {
		if confirmed := firstPregnantAfter(diagnoses, *record.LastCalvingDate); confirmed != nil {
			open := timeseries.DayDiff(confirmed.EventDate, *record.LastCalvingDate)
			record.OpenDays = &open
		}
	}

	if len(diagnoses) > 0 {
		lastCheck := diagnoses[0].EventDate
		record.LastPregCheck = &lastCheck
		record.IsEmpty = *diagnoses[0].DiagnosisStatus == domain.DiagnosisEmpty
		record.IsRepeatEmpty = len(diagnoses) >= 2 &&
			record.IsEmpty && *diagnoses[1].DiagnosisStatus == domain.DiagnosisEmpty
	}

	if scope != nil {
		e.seasonRate(&record, diagnoses, scope)
	} else {
		e.rollingRate(&record, calvings, diagnoses)
	}

	return record
}

// seasonRate applies the season-scoped policy: exposed animals score 1 when
// any diagnosis inside the season window is pregnant and 0 otherwise;
// unexposed animals have no rate of their own.
func (e *Engine) seasonRate(record *domain.KPIRecord, diagnoses []domain.ReproEvent, scope *domain.SeasonScope) {
	exposed := scope.IsExposed(record.AnimalID)
	record.Exposed = &exposed
	if !exposed {
		return
	}

	rate := 0.0
	for _, diagnosis := range diagnoses {
		if scope.Season.Contains(diagnosis.EventDate) && *diagnosis.DiagnosisStatus == domain.DiagnosisPregnant {
			rate = 1.0
			break
		}
	}
	record.PregnancyRate = &rate
}

// rollingRate applies the rolling-window policy. The window ends at the most
// recent diagnosis, or failing that the most recent calving, or "now".
func (e *Engine) rollingRate(record *domain.KPIRecord, calvings, diagnoses []domain.ReproEvent) {
	windowEnd := e.now()
	switch {
	case len(diagnoses) > 0:
		windowEnd = diagnoses[0].EventDate
	case len(calvings) > 0:
		windowEnd = calvings[0].EventDate
	}
	windowStart := windowEnd.AddDate(0, 0, -RollingWindowDays)

	for _, diagnosis := range diagnoses {
		at := diagnosis.EventDate
		if at.Before(windowStart) || at.After(windowEnd) {
			continue
		}
		record.WindowDiagnosed++
		if *diagnosis.DiagnosisStatus == domain.DiagnosisPregnant {
			record.WindowPregnant++
		}
	}

	if record.WindowDiagnosed > 0 {
		rate := float64(record.WindowPregnant) / float64(record.WindowDiagnosed)
		record.PregnancyRate = &rate
	}
}

// firstPregnantAfter returns the chronologically first confirmed-pregnant
// diagnosis strictly after the given calving date.
func firstPregnantAfter(diagnoses []domain.ReproEvent, calving time.Time) *domain.ReproEvent {
	var earliest *domain.ReproEvent
	for i := range diagnoses {
		diagnosis := diagnoses[i]
		if !diagnosis.EventDate.After(calving) {
			continue
		}
		if *diagnosis.DiagnosisStatus != domain.DiagnosisPregnant {
			continue
		}
		if earliest == nil || diagnosis.EventDate.Before(earliest.EventDate) {
			earliest = &diagnoses[i]
		}
	}
	return earliest
}
