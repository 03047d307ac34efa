package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/camposur/herdtrack/internal/domain"
)

// animalRepository implements AnimalRepository over a pgx executor.
type animalRepository struct {
	db DB
}

// NewAnimalRepository creates a new animal repository.
func NewAnimalRepository(db DB) AnimalRepository {
	return &animalRepository{db: db}
}

const animalColumns = `
	id, farm_id, tag, kind, sex, current_paddock_id,
	current_weight_kg, growth_last, growth_trailing_30, created_at, updated_at`

func (r *animalRepository) Create(ctx context.Context, animal domain.Animal) (domain.Animal, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO animals (id, farm_id, tag, kind, sex, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+animalColumns,
		animal.ID, animal.FarmID, animal.Tag, animal.Kind, animal.Sex,
		animal.CreatedAt, animal.UpdatedAt,
	)

	created, err := scanAnimal(row)
	if err != nil {
		return domain.Animal{}, fmt.Errorf("create animal: %w", err)
	}
	return created, nil
}

func (r *animalRepository) GetByID(ctx context.Context, farmID, animalID uuid.UUID) (domain.Animal, error) {
	return r.get(ctx, farmID, animalID, "")
}

func (r *animalRepository) GetByIDForUpdate(ctx context.Context, farmID, animalID uuid.UUID) (domain.Animal, error) {
	return r.get(ctx, farmID, animalID, " FOR UPDATE")
}

func (r *animalRepository) get(ctx context.Context, farmID, animalID uuid.UUID, suffix string) (domain.Animal, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+animalColumns+`
		FROM animals
		WHERE id = $1 AND farm_id = $2`+suffix,
		animalID, farmID,
	)

	animal, err := scanAnimal(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Animal{}, fmt.Errorf("animal %s: %w", animalID, domain.ErrNotFound)
		}
		return domain.Animal{}, fmt.Errorf("get animal: %w", err)
	}
	return animal, nil
}

func (r *animalRepository) ListFemales(ctx context.Context, farmID uuid.UUID) ([]domain.Animal, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+animalColumns+`
		FROM animals
		WHERE farm_id = $1 AND sex = $2
		ORDER BY tag`,
		farmID, domain.SexFemale,
	)
	if err != nil {
		return nil, fmt.Errorf("list females: %w", err)
	}
	defer rows.Close()

	var animals []domain.Animal
	for rows.Next() {
		animal, err := scanAnimal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan animal: %w", err)
		}
		animals = append(animals, animal)
	}
	return animals, rows.Err()
}

func (r *animalRepository) SetCurrentPaddock(ctx context.Context, animalID, paddockID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE animals SET current_paddock_id = $2, updated_at = now()
		WHERE id = $1`,
		animalID, paddockID,
	)
	if err != nil {
		return fmt.Errorf("set current paddock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("animal %s: %w", animalID, domain.ErrNotFound)
	}
	return nil
}

func (r *animalRepository) SetGrowth(ctx context.Context, animalID uuid.UUID, update domain.GrowthUpdate) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE animals
		SET current_weight_kg = $2, growth_last = $3, growth_trailing_30 = $4, updated_at = now()
		WHERE id = $1`,
		animalID, update.WeightKg, update.GrowthLast, update.GrowthTrailing30,
	)
	if err != nil {
		return fmt.Errorf("set growth: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("animal %s: %w", animalID, domain.ErrNotFound)
	}
	return nil
}

func scanAnimal(row pgx.Row) (domain.Animal, error) {
	var animal domain.Animal
	err := row.Scan(
		&animal.ID, &animal.FarmID, &animal.Tag, &animal.Kind, &animal.Sex,
		&animal.CurrentPaddockID, &animal.CurrentWeightKg,
		&animal.GrowthLast, &animal.GrowthTrailing30,
		&animal.CreatedAt, &animal.UpdatedAt,
	)
	if err != nil {
		return domain.Animal{}, err
	}
	return animal, nil
}
