package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ReproEventType enumerates the reproductive event log entry kinds.
type ReproEventType string

const (
	EventBreeding           ReproEventType = "breeding"
	EventTimedInsemination  ReproEventType = "timed_insemination"
	EventPregnancyDiagnosis ReproEventType = "pregnancy_diagnosis"
	EventCalving            ReproEventType = "calving"
	EventWeaning            ReproEventType = "weaning"
)

// DiagnosisStatus is the structured payload of a pregnancy-diagnosis event.
type DiagnosisStatus string

const (
	DiagnosisPregnant DiagnosisStatus = "pregnant"
	DiagnosisEmpty    DiagnosisStatus = "empty"
)

// ReproEvent is one append-only entry in a female animal's reproductive log.
// DiagnosisStatus is set only for pregnancy-diagnosis events.
type ReproEvent struct {
	ID              uuid.UUID
	FarmID          uuid.UUID
	AnimalID        uuid.UUID
	Type            ReproEventType
	EventDate       time.Time
	SeasonID        *uuid.UUID
	DiagnosisStatus *DiagnosisStatus
	Notes           string
	CreatedAt       time.Time
}

// IsDiagnosis reports whether the event carries a pregnancy-diagnosis payload.
func (e ReproEvent) IsDiagnosis() bool {
	return e.Type == EventPregnancyDiagnosis && e.DiagnosisStatus != nil
}

// BreedingSeason is a farm's named breeding window. Diagnoses dated inside
// [StartsOn, EndsOn] count toward the season-scoped pregnancy rate.
type BreedingSeason struct {
	ID        uuid.UUID
	FarmID    uuid.UUID
	Name      string
	StartsOn  time.Time
	EndsOn    time.Time
	CreatedAt time.Time
}

// Contains reports whether a date falls inside the season window, inclusive
// on both ends.
func (s BreedingSeason) Contains(t time.Time) bool {
	return !t.Before(s.StartsOn) && !t.After(s.EndsOn)
}

// Exposure marks that a female was deliberately presented for breeding in a
// season, independent of outcome.
type Exposure struct {
	SeasonID  uuid.UUID
	AnimalID  uuid.UUID
	CreatedAt time.Time
}

// SelectionDecision is the zootechnical culling verdict for one animal.
type SelectionDecision struct {
	FarmID    uuid.UUID
	AnimalID  uuid.UUID
	Decision  Decision
	Reason    string
	DecidedAt time.Time
}

// Decision enumerates the culling verdicts.
type Decision string

const (
	DecisionKeep    Decision = "keep"
	DecisionWatch   Decision = "watch"
	DecisionDiscard Decision = "discard"
)

// Validate enforces the decision rules: discard must carry a reason.
func (d SelectionDecision) Validate() error {
	switch d.Decision {
	case DecisionKeep, DecisionWatch:
		return nil
	case DecisionDiscard:
		if strings.TrimSpace(d.Reason) == "" {
			return ErrDiscardReasonRequired
		}
		return nil
	default:
		return fmt.Errorf("unknown decision %q", d.Decision)
	}
}
