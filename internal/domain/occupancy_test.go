package domain

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
)

func openRecordAt(t *testing.T, started string) *OccupancyRecord {
	t.Helper()
	startedAt, err := time.Parse(time.RFC3339, started)
	if err != nil {
		t.Fatalf("bad test date %q: %v", started, err)
	}
	record := NewOccupancyRecord(uuid.New(), uuid.New(), uuid.New(), startedAt, "")
	return &record
}

func TestValidateRegister(t *testing.T) {
	if err := ValidateRegister(nil); err != nil {
		t.Fatalf("register from no occupancy should succeed, got %v", err)
	}

	open := openRecordAt(t, "2024-01-01T00:00:00Z")
	if err := ValidateRegister(open); !errors.Is(err, ErrAlreadyOccupying) {
		t.Fatalf("expected ErrAlreadyOccupying, got %v", err)
	}
}

func TestValidateMove_Backdated(t *testing.T) {
	open := openRecordAt(t, "2024-05-10T12:00:00Z")

	for _, at := range []string{"2024-05-10T12:00:00Z", "2024-05-09T00:00:00Z"} {
		moveAt, _ := time.Parse(time.RFC3339, at)
		err := ValidateMove(open, uuid.New(), moveAt)
		if !errors.Is(err, ErrBackdatedMove) {
			t.Fatalf("move at %s: expected ErrBackdatedMove, got %v", at, err)
		}
	}
}

func TestValidateMove_NoOp(t *testing.T) {
	open := openRecordAt(t, "2024-05-10T12:00:00Z")
	moveAt := open.StartedAt.Add(48 * time.Hour)

	err := ValidateMove(open, open.PaddockID, moveAt)
	if !errors.Is(err, ErrNoOpMove) {
		t.Fatalf("expected ErrNoOpMove, got %v", err)
	}
}

func TestValidateMove_RequiresOpenRecord(t *testing.T) {
	err := ValidateMove(nil, uuid.New(), time.Now())
	if !errors.Is(err, ErrNotOccupying) {
		t.Fatalf("expected ErrNotOccupying, got %v", err)
	}
}

func TestValidateMove_Valid(t *testing.T) {
	open := openRecordAt(t, "2024-05-10T12:00:00Z")
	moveAt := open.StartedAt.Add(time.Minute)

	if err := ValidateMove(open, uuid.New(), moveAt); err != nil {
		t.Fatalf("expected valid move, got %v", err)
	}
}

func TestValidateWeightKg(t *testing.T) {
	if _, err := ValidateWeightKg(412.5); err != nil {
		t.Fatalf("expected valid weight, got %v", err)
	}

	for _, bad := range []float64{0, -10, math.NaN(), math.Inf(1)} {
		if _, err := ValidateWeightKg(bad); !errors.Is(err, ErrInvalidWeight) {
			t.Fatalf("weight %v: expected ErrInvalidWeight, got %v", bad, err)
		}
	}
}

func TestSelectionDecisionValidate(t *testing.T) {
	base := SelectionDecision{FarmID: uuid.New(), AnimalID: uuid.New()}

	keep := base
	keep.Decision = DecisionKeep
	if err := keep.Validate(); err != nil {
		t.Fatalf("keep should validate, got %v", err)
	}

	discard := base
	discard.Decision = DecisionDiscard
	discard.Reason = "   "
	if err := discard.Validate(); !errors.Is(err, ErrDiscardReasonRequired) {
		t.Fatalf("expected ErrDiscardReasonRequired, got %v", err)
	}

	discard.Reason = "repeat empty after two seasons"
	if err := discard.Validate(); err != nil {
		t.Fatalf("discard with reason should validate, got %v", err)
	}
}
