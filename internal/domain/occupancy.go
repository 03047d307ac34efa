package domain

import (
	"time"

	"github.com/google/uuid"
)

// OccupancyRecord tracks one stay of an animal in a paddock. A nil EndedAt
// marks the open (current) record; committed state never holds more than one
// open record per animal.
type OccupancyRecord struct {
	ID        uuid.UUID
	FarmID    uuid.UUID
	PaddockID uuid.UUID
	AnimalID  uuid.UUID
	StartedAt time.Time
	EndedAt   *time.Time
	Notes     string
	CreatedAt time.Time
}

// Open reports whether the record is the animal's current occupancy.
func (r OccupancyRecord) Open() bool {
	return r.EndedAt == nil
}

// NewOccupancyRecord opens a new occupancy starting at the given instant.
func NewOccupancyRecord(farmID, paddockID, animalID uuid.UUID, startedAt time.Time, notes string) OccupancyRecord {
	return OccupancyRecord{
		ID:        uuid.New(),
		FarmID:    farmID,
		PaddockID: paddockID,
		AnimalID:  animalID,
		StartedAt: startedAt,
		Notes:     notes,
		CreatedAt: time.Now(),
	}
}

// MoveResult reports a completed transition so callers can raise
// occupancy-change notifications.
type MoveResult struct {
	Record      OccupancyRecord
	FromPaddock *uuid.UUID
	ToPaddock   uuid.UUID
}

// ValidateRegister checks the No Occupancy -> Occupying transition. The open
// record, if any, must be absent.
func ValidateRegister(open *OccupancyRecord) error {
	if open != nil {
		return ErrAlreadyOccupying
	}
	return nil
}

// ValidateMove checks the Occupying -> Occupying transition against the
// currently open record. A move may not be back-dated to or before the open
// record's start, and moving into the current paddock is a no-op conflict.
func ValidateMove(open *OccupancyRecord, toPaddock uuid.UUID, at time.Time) error {
	if open == nil {
		return ErrNotOccupying
	}
	if !at.After(open.StartedAt) {
		return ErrBackdatedMove
	}
	if open.PaddockID == toPaddock {
		return ErrNoOpMove
	}
	return nil
}
