package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AnimalKind distinguishes the two registration variants an animal can carry.
type AnimalKind string

const (
	AnimalKindRegistered AnimalKind = "registered"
	AnimalKindPedigreed  AnimalKind = "pedigreed"
)

// Sex of an animal. Reproductive KPIs are only derived for females.
type Sex string

const (
	SexFemale Sex = "female"
	SexMale   Sex = "male"
)

// Farm is the ownership scope for every entity in the system. ReproMode
// selects the pregnancy-rate windowing policy.
type Farm struct {
	ID        uuid.UUID
	Name      string
	ReproMode ReproMode
	CreatedAt time.Time
}

// ReproMode is a farm-level setting choosing between season-scoped and
// rolling-window reproductive KPIs.
type ReproMode string

const (
	ReproModeSeason  ReproMode = "season"
	ReproModeRolling ReproMode = "rolling"
)

// Paddock is a grazing area within a farm.
type Paddock struct {
	ID        uuid.UUID
	FarmID    uuid.UUID
	Name      string
	AreaHa    decimal.Decimal
	CreatedAt time.Time
}

// Animal is the central entity. CurrentPaddockID mirrors the animal's open
// occupancy record: it is nil exactly when no open record exists, and
// otherwise names the same paddock.
type Animal struct {
	ID               uuid.UUID
	FarmID           uuid.UUID
	Tag              string
	Kind             AnimalKind
	Sex              Sex
	CurrentPaddockID *uuid.UUID
	CurrentWeightKg  *decimal.Decimal
	GrowthLast       *float64
	GrowthTrailing30 *float64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewAnimal creates an animal with no occupancy and no weighing history.
func NewAnimal(farmID uuid.UUID, tag string, kind AnimalKind, sex Sex) Animal {
	now := time.Now()
	return Animal{
		ID:        uuid.New(),
		FarmID:    farmID,
		Tag:       tag,
		Kind:      kind,
		Sex:       sex,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
