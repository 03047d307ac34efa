package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/camposur/herdtrack/internal/domain"
)

type selectionDecisionRepository struct {
	db DB
}

// NewSelectionDecisionRepository creates a new selection decision repository.
func NewSelectionDecisionRepository(db DB) SelectionDecisionRepository {
	return &selectionDecisionRepository{db: db}
}

// Upsert stores the per-animal culling decision, replacing any previous one.
// Validation (discard requires a reason) happens before the write.
func (r *selectionDecisionRepository) Upsert(ctx context.Context, decision domain.SelectionDecision) (domain.SelectionDecision, error) {
	if err := decision.Validate(); err != nil {
		return domain.SelectionDecision{}, err
	}

	row := r.db.QueryRow(ctx, `
		INSERT INTO selection_decisions (farm_id, animal_id, decision, reason, decided_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (farm_id, animal_id)
		DO UPDATE SET decision = EXCLUDED.decision, reason = EXCLUDED.reason, decided_at = EXCLUDED.decided_at
		RETURNING farm_id, animal_id, decision, reason, decided_at`,
		decision.FarmID, decision.AnimalID, decision.Decision, decision.Reason, decision.DecidedAt,
	)

	var stored domain.SelectionDecision
	err := row.Scan(&stored.FarmID, &stored.AnimalID, &stored.Decision, &stored.Reason, &stored.DecidedAt)
	if err != nil {
		return domain.SelectionDecision{}, fmt.Errorf("upsert selection decision: %w", err)
	}
	return stored, nil
}

func (r *selectionDecisionRepository) Get(ctx context.Context, farmID, animalID uuid.UUID) (domain.SelectionDecision, error) {
	row := r.db.QueryRow(ctx, `
		SELECT farm_id, animal_id, decision, reason, decided_at
		FROM selection_decisions
		WHERE farm_id = $1 AND animal_id = $2`,
		farmID, animalID,
	)

	var decision domain.SelectionDecision
	err := row.Scan(&decision.FarmID, &decision.AnimalID, &decision.Decision, &decision.Reason, &decision.DecidedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.SelectionDecision{}, fmt.Errorf("selection decision for %s: %w", animalID, domain.ErrNotFound)
		}
		return domain.SelectionDecision{}, fmt.Errorf("get selection decision: %w", err)
	}
	return decision, nil
}
