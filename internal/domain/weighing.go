package domain

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Weighing is one weight observation for an animal. WeighedOn is the
// observation's calendar date; the store keeps at most one weighing per
// animal per calendar day. GrowthSincePrev is the derived kg/day rate against
// the previous distinct-day observation, nil for the first one.
type Weighing struct {
	ID              uuid.UUID
	AnimalID        uuid.UUID
	WeighedAt       time.Time
	WeighedOn       time.Time
	WeightKg        decimal.Decimal
	GrowthSincePrev *float64
	CreatedAt       time.Time
}

// NewWeighing builds a weighing observation from a validated weight.
func NewWeighing(animalID uuid.UUID, weighedAt time.Time, weightKg decimal.Decimal) Weighing {
	year, month, day := weighedAt.Date()
	return Weighing{
		ID:        uuid.New(),
		AnimalID:  animalID,
		WeighedAt: weighedAt,
		WeighedOn: time.Date(year, month, day, 0, 0, 0, 0, time.UTC),
		WeightKg:  weightKg,
		CreatedAt: time.Now(),
	}
}

// GrowthUpdate carries the recomputed growth fields applied to an animal
// after a weighing is recorded. Nil rates mean the metric is undefined for
// the current history.
type GrowthUpdate struct {
	WeightKg         decimal.Decimal
	GrowthLast       *float64
	GrowthTrailing30 *float64
}

// ValidateWeightKg rejects non-finite and non-positive weights before they
// reach the store.
func ValidateWeightKg(weightKg float64) (decimal.Decimal, error) {
	if math.IsNaN(weightKg) || math.IsInf(weightKg, 0) {
		return decimal.Decimal{}, fmt.Errorf("%w: got %v", ErrInvalidWeight, weightKg)
	}
	if weightKg <= 0 {
		return decimal.Decimal{}, fmt.Errorf("%w: got %v", ErrInvalidWeight, weightKg)
	}
	return decimal.NewFromFloat(weightKg), nil
}
