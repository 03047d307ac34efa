package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/camposur/herdtrack/internal/domain"
)

type reproEventRepository struct {
	db DB
}

// NewReproEventRepository creates a new reproductive event log repository.
func NewReproEventRepository(db DB) ReproEventRepository {
	return &reproEventRepository{db: db}
}

const reproEventColumns = `
	id, farm_id, animal_id, event_type, event_date, season_id, diagnosis_status, notes, created_at`

func (r *reproEventRepository) Append(ctx context.Context, event domain.ReproEvent) (domain.ReproEvent, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO repro_events (id, farm_id, animal_id, event_type, event_date, season_id, diagnosis_status, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+reproEventColumns,
		event.ID, event.FarmID, event.AnimalID, event.Type, event.EventDate,
		event.SeasonID, event.DiagnosisStatus, event.Notes, event.CreatedAt,
	)

	created, err := scanReproEvent(row)
	if err != nil {
		return domain.ReproEvent{}, fmt.Errorf("append repro event: %w", err)
	}
	return created, nil
}

func (r *reproEventRepository) ListByAnimal(ctx context.Context, farmID, animalID uuid.UUID) ([]domain.ReproEvent, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+reproEventColumns+`
		FROM repro_events
		WHERE farm_id = $1 AND animal_id = $2
		ORDER BY event_date DESC`,
		farmID, animalID,
	)
	if err != nil {
		return nil, fmt.Errorf("list repro events: %w", err)
	}
	defer rows.Close()

	var events []domain.ReproEvent
	for rows.Next() {
		event, err := scanReproEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan repro event: %w", err)
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

func (r *reproEventRepository) Delete(ctx context.Context, farmID, eventID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM repro_events WHERE id = $1 AND farm_id = $2`,
		eventID, farmID,
	)
	if err != nil {
		return fmt.Errorf("delete repro event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repro event %s: %w", eventID, domain.ErrNotFound)
	}
	return nil
}

func scanReproEvent(row pgx.Row) (domain.ReproEvent, error) {
	var event domain.ReproEvent
	err := row.Scan(
		&event.ID, &event.FarmID, &event.AnimalID, &event.Type, &event.EventDate,
		&event.SeasonID, &event.DiagnosisStatus, &event.Notes, &event.CreatedAt,
	)
	if err != nil {
		return domain.ReproEvent{}, err
	}
	return event, nil
}
