package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/camposur/herdtrack/internal/domain"
)

type paddockRepository struct {
	db DB
}

// NewPaddockRepository creates a new paddock repository.
func NewPaddockRepository(db DB) PaddockRepository {
	return &paddockRepository{db: db}
}

func (r *paddockRepository) Create(ctx context.Context, paddock domain.Paddock) (domain.Paddock, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO paddocks (id, farm_id, name, area_ha, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, farm_id, name, area_ha, created_at`,
		paddock.ID, paddock.FarmID, paddock.Name, paddock.AreaHa, paddock.CreatedAt,
	)

	var created domain.Paddock
	if err := row.Scan(&created.ID, &created.FarmID, &created.Name, &created.AreaHa, &created.CreatedAt); err != nil {
		return domain.Paddock{}, fmt.Errorf("create paddock: %w", err)
	}
	return created, nil
}

// GetByID resolves a paddock inside the farm scope. A paddock under another
// farm reads as ErrInvalidPaddock, keeping the scope check and the existence
// check indistinguishable.
func (r *paddockRepository) GetByID(ctx context.Context, farmID, paddockID uuid.UUID) (domain.Paddock, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, farm_id, name, area_ha, created_at
		FROM paddocks
		WHERE id = $1 AND farm_id = $2`,
		paddockID, farmID,
	)

	var paddock domain.Paddock
	err := row.Scan(&paddock.ID, &paddock.FarmID, &paddock.Name, &paddock.AreaHa, &paddock.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Paddock{}, fmt.Errorf("paddock %s: %w", paddockID, domain.ErrInvalidPaddock)
		}
		return domain.Paddock{}, fmt.Errorf("get paddock: %w", err)
	}
	return paddock, nil
}
