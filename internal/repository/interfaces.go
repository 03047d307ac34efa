package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/camposur/herdtrack/internal/domain"
)

// AnimalRepository defines the interface for animal operations. Every lookup
// is farm-scoped; an animal under another farm reads as missing.
type AnimalRepository interface {
	Create(ctx context.Context, animal domain.Animal) (domain.Animal, error)
	GetByID(ctx context.Context, farmID, animalID uuid.UUID) (domain.Animal, error)
	// GetByIDForUpdate locks the animal row for the duration of the
	// surrounding transaction, serializing same-animal mutations.
	GetByIDForUpdate(ctx context.Context, farmID, animalID uuid.UUID) (domain.Animal, error)
	ListFemales(ctx context.Context, farmID uuid.UUID) ([]domain.Animal, error)
	SetCurrentPaddock(ctx context.Context, animalID, paddockID uuid.UUID) error
	SetGrowth(ctx context.Context, animalID uuid.UUID, update domain.GrowthUpdate) error
}

// PaddockRepository defines the interface for paddock operations.
type PaddockRepository interface {
	Create(ctx context.Context, paddock domain.Paddock) (domain.Paddock, error)
	GetByID(ctx context.Context, farmID, paddockID uuid.UUID) (domain.Paddock, error)
}

// OccupancyRepository defines the low-level occupancy record operations. The
// occupancy service composes them inside one serializable transaction.
type OccupancyRepository interface {
	FindOpen(ctx context.Context, animalID uuid.UUID) (*domain.OccupancyRecord, error)
	Insert(ctx context.Context, record domain.OccupancyRecord) (domain.OccupancyRecord, error)
	CloseAt(ctx context.Context, recordID uuid.UUID, endedAt time.Time) error
	ListByAnimal(ctx context.Context, animalID uuid.UUID) ([]domain.OccupancyRecord, error)
}

// WeighingRepository defines weighing history operations.
type WeighingRepository interface {
	Insert(ctx context.Context, weighing domain.Weighing) (domain.Weighing, error)
	ListByAnimal(ctx context.Context, animalID uuid.UUID) ([]domain.Weighing, error)
}

// ReproEventRepository defines the append-only reproductive event log.
type ReproEventRepository interface {
	Append(ctx context.Context, event domain.ReproEvent) (domain.ReproEvent, error)
	ListByAnimal(ctx context.Context, farmID, animalID uuid.UUID) ([]domain.ReproEvent, error)
	Delete(ctx context.Context, farmID, eventID uuid.UUID) error
}

// SeasonRepository defines breeding season and exposure operations.
type SeasonRepository interface {
	Create(ctx context.Context, season domain.BreedingSeason) (domain.BreedingSeason, error)
	GetByID(ctx context.Context, farmID, seasonID uuid.UUID) (domain.BreedingSeason, error)
	MarkExposed(ctx context.Context, seasonID, animalID uuid.UUID) error
	ExposedAnimalIDs(ctx context.Context, seasonID uuid.UUID) (map[uuid.UUID]bool, error)
}

// SelectionDecisionRepository upserts the per-animal culling decision.
type SelectionDecisionRepository interface {
	Upsert(ctx context.Context, decision domain.SelectionDecision) (domain.SelectionDecision, error)
	Get(ctx context.Context, farmID, animalID uuid.UUID) (domain.SelectionDecision, error)
}
