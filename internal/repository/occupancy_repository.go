package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/camposur/herdtrack/internal/domain"
)

type occupancyRepository struct {
	db DB
}

// NewOccupancyRepository creates a new occupancy record repository.
func NewOccupancyRepository(db DB) OccupancyRepository {
	return &occupancyRepository{db: db}
}

const occupancyColumns = `
	id, farm_id, paddock_id, animal_id, started_at, ended_at, notes, created_at`

// FindOpen returns the animal's current occupancy record, or nil when the
// animal occupies no paddock.
func (r *occupancyRepository) FindOpen(ctx context.Context, animalID uuid.UUID) (*domain.OccupancyRecord, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+occupancyColumns+`
		FROM paddock_occupancies
		WHERE animal_id = $1 AND ended_at IS NULL`,
		animalID,
	)

	record, err := scanOccupancy(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find open occupancy: %w", err)
	}
	return &record, nil
}

func (r *occupancyRepository) Insert(ctx context.Context, record domain.OccupancyRecord) (domain.OccupancyRecord, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO paddock_occupancies (id, farm_id, paddock_id, animal_id, started_at, ended_at, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+occupancyColumns,
		record.ID, record.FarmID, record.PaddockID, record.AnimalID,
		record.StartedAt, record.EndedAt, record.Notes, record.CreatedAt,
	)

	created, err := scanOccupancy(row)
	if err != nil {
		return domain.OccupancyRecord{}, fmt.Errorf("insert occupancy: %w", err)
	}
	return created, nil
}

func (r *occupancyRepository) CloseAt(ctx context.Context, recordID uuid.UUID, endedAt time.Time) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE paddock_occupancies SET ended_at = $2
		WHERE id = $1 AND ended_at IS NULL`,
		recordID, endedAt,
	)
	if err != nil {
		return fmt.Errorf("close occupancy: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("occupancy %s already closed: %w", recordID, domain.ErrNotFound)
	}
	return nil
}

func (r *occupancyRepository) ListByAnimal(ctx context.Context, animalID uuid.UUID) ([]domain.OccupancyRecord, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+occupancyColumns+`
		FROM paddock_occupancies
		WHERE animal_id = $1
		ORDER BY started_at`,
		animalID,
	)
	if err != nil {
		return nil, fmt.Errorf("list occupancies: %w", err)
	}
	defer rows.Close()

	var records []domain.OccupancyRecord
	for rows.Next() {
		record, err := scanOccupancy(rows)
		if err != nil {
			return nil, fmt.Errorf("scan occupancy: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func scanOccupancy(row pgx.Row) (domain.OccupancyRecord, error) {
	var record domain.OccupancyRecord
	err := row.Scan(
		&record.ID, &record.FarmID, &record.PaddockID, &record.AnimalID,
		&record.StartedAt, &record.EndedAt, &record.Notes, &record.CreatedAt,
	)
	if err != nil {
		return domain.OccupancyRecord{}, err
	}
	return record, nil
}
