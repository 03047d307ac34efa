package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/camposur/herdtrack/internal/domain"
)

type seasonRepository struct {
	db DB
}

// NewSeasonRepository creates a new breeding season repository.
func NewSeasonRepository(db DB) SeasonRepository {
	return &seasonRepository{db: db}
}

func (r *seasonRepository) Create(ctx context.Context, season domain.BreedingSeason) (domain.BreedingSeason, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO breeding_seasons (id, farm_id, name, starts_on, ends_on, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, farm_id, name, starts_on, ends_on, created_at`,
		season.ID, season.FarmID, season.Name, season.StartsOn, season.EndsOn, season.CreatedAt,
	)

	var created domain.BreedingSeason
	err := row.Scan(&created.ID, &created.FarmID, &created.Name, &created.StartsOn, &created.EndsOn, &created.CreatedAt)
	if err != nil {
		return domain.BreedingSeason{}, fmt.Errorf("create season: %w", err)
	}
	return created, nil
}

func (r *seasonRepository) GetByID(ctx context.Context, farmID, seasonID uuid.UUID) (domain.BreedingSeason, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, farm_id, name, starts_on, ends_on, created_at
		FROM breeding_seasons
		WHERE id = $1 AND farm_id = $2`,
		seasonID, farmID,
	)

	var season domain.BreedingSeason
	err := row.Scan(&season.ID, &season.FarmID, &season.Name, &season.StartsOn, &season.EndsOn, &season.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.BreedingSeason{}, fmt.Errorf("season %s: %w", seasonID, domain.ErrNotFound)
		}
		return domain.BreedingSeason{}, fmt.Errorf("get season: %w", err)
	}
	return season, nil
}

func (r *seasonRepository) MarkExposed(ctx context.Context, seasonID, animalID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO season_exposures (season_id, animal_id)
		VALUES ($1, $2)
		ON CONFLICT (season_id, animal_id) DO NOTHING`,
		seasonID, animalID,
	)
	if err != nil {
		return fmt.Errorf("mark exposed: %w", err)
	}
	return nil
}

func (r *seasonRepository) ExposedAnimalIDs(ctx context.Context, seasonID uuid.UUID) (map[uuid.UUID]bool, error) {
	rows, err := r.db.Query(ctx, `
		SELECT animal_id FROM season_exposures WHERE season_id = $1`,
		seasonID,
	)
	if err != nil {
		return nil, fmt.Errorf("list exposures: %w", err)
	}
	defer rows.Close()

	exposed := make(map[uuid.UUID]bool)
	for rows.Next() {
		var animalID uuid.UUID
		if err := rows.Scan(&animalID); err != nil {
			return nil, fmt.Errorf("scan exposure: %w", err)
		}
		exposed[animalID] = true
	}
	return exposed, rows.Err()
}
