package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/camposur/herdtrack/internal/domain"
)

type weighingRepository struct {
	db DB
}

// NewWeighingRepository creates a new weighing repository.
func NewWeighingRepository(db DB) WeighingRepository {
	return &weighingRepository{db: db}
}

const weighingColumns = `
	id, animal_id, weighed_at, weighed_on, weight_kg, growth_since_prev, created_at`

func (r *weighingRepository) Insert(ctx context.Context, weighing domain.Weighing) (domain.Weighing, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO weighings (id, animal_id, weighed_at, weighed_on, weight_kg, growth_since_prev, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+weighingColumns,
		weighing.ID, weighing.AnimalID, weighing.WeighedAt, weighing.WeighedOn,
		weighing.WeightKg, weighing.GrowthSincePrev, weighing.CreatedAt,
	)

	created, err := scanWeighing(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.Weighing{}, fmt.Errorf(
				"animal %s on %s: %w",
				weighing.AnimalID, weighing.WeighedOn.Format("2006-01-02"), domain.ErrDuplicateWeighing,
			)
		}
		return domain.Weighing{}, fmt.Errorf("insert weighing: %w", err)
	}
	return created, nil
}

func (r *weighingRepository) ListByAnimal(ctx context.Context, animalID uuid.UUID) ([]domain.Weighing, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+weighingColumns+`
		FROM weighings
		WHERE animal_id = $1
		ORDER BY weighed_at`,
		animalID,
	)
	if err != nil {
		return nil, fmt.Errorf("list weighings: %w", err)
	}
	defer rows.Close()

	var weighings []domain.Weighing
	for rows.Next() {
		weighing, err := scanWeighing(rows)
		if err != nil {
			return nil, fmt.Errorf("scan weighing: %w", err)
		}
		weighings = append(weighings, weighing)
	}
	return weighings, rows.Err()
}

func scanWeighing(row pgx.Row) (domain.Weighing, error) {
	var weighing domain.Weighing
	err := row.Scan(
		&weighing.ID, &weighing.AnimalID, &weighing.WeighedAt, &weighing.WeighedOn,
		&weighing.WeightKg, &weighing.GrowthSincePrev, &weighing.CreatedAt,
	)
	if err != nil {
		return domain.Weighing{}, err
	}
	return weighing, nil
}
