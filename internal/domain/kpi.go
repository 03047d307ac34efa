package domain

import (
	"time"

	"github.com/google/uuid"
)

// SeasonScope carries the breeding season and its exposure set when a farm
// computes KPIs in season mode. A nil scope selects the rolling-window
// policy.
type SeasonScope struct {
	Season  BreedingSeason
	Exposed map[uuid.UUID]bool
}

// IsExposed reports whether the animal was marked exposed for the season.
func (s *SeasonScope) IsExposed(animalID uuid.UUID) bool {
	if s == nil {
		return false
	}
	return s.Exposed[animalID]
}

// KPIRecord is the flat projection the reproductive engine derives from one
// animal's event log. Pointer fields are nil when the underlying metric is
// undefined for the animal.
type KPIRecord struct {
	AnimalID uuid.UUID
	Tag      string

	// IEPDays is the inter-calving interval between the two most recent
	// calvings.
	IEPDays *int

	// OpenDays spans the most recent calving to the first confirmed-pregnant
	// diagnosis after it.
	OpenDays *int

	IsEmpty       bool
	IsRepeatEmpty bool

	// PregnancyRate follows the farm's windowing policy: 0/1 per exposed
	// animal in season mode, pregnant-fraction of windowed diagnoses in
	// rolling mode.
	PregnancyRate *float64

	// Exposed is set in season mode only.
	Exposed *bool

	// WindowPregnant and WindowDiagnosed are the rolling-window counts
	// behind PregnancyRate; herd aggregation sums them across animals.
	WindowPregnant  int
	WindowDiagnosed int

	LastCalvingDate *time.Time
	LastPregCheck   *time.Time
}

// HasHistory reports whether any usable reproductive history exists. Animals
// without it are flagged for review rather than scored green by default.
func (k KPIRecord) HasHistory() bool {
	return k.OpenDays != nil || k.IEPDays != nil || k.LastPregCheck != nil || k.LastCalvingDate != nil
}

// SelectionThresholds is the farm's traffic-light configuration, in days.
// Values above GreenMax score yellow, above YellowMax red, and above Critical
// an additional red flag is layered on top of the YellowMax one.
type SelectionThresholds struct {
	OpenDaysGreenMax  int
	OpenDaysYellowMax int
	OpenDaysCritical  int
	IEPGreenMax       int
	IEPYellowMax      int
	IEPCritical       int
}

// DefaultSelectionThresholds returns the stock thresholds used when a farm
// has no overrides configured.
func DefaultSelectionThresholds() SelectionThresholds {
	return SelectionThresholds{
		OpenDaysGreenMax:  120,
		OpenDaysYellowMax: 180,
		OpenDaysCritical:  240,
		IEPGreenMax:       430,
		IEPYellowMax:      480,
		IEPCritical:       540,
	}
}
