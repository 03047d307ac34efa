package growth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/camposur/herdtrack/internal/db"
	"github.com/camposur/herdtrack/internal/domain"
	"github.com/camposur/herdtrack/internal/repository"
	"github.com/camposur/herdtrack/pkg/timeseries"
)

// Service records weighings and keeps the animal's derived growth fields
// consistent with its full history.
type Service struct {
	conn *db.Connection
	log  *zap.Logger
}

// NewService creates a growth metrics service.
func NewService(conn *db.Connection, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{conn: conn, log: log}
}

// RecordWeighing validates and persists one weighing, then recomputes both
// growth rates from the complete post-insert history inside the same
// serializable transaction. The full-history recompute matters: the new
// observation may be a backfill that changes which points are most recent or
// which ones fall in the trailing window. On domain.ErrTxConflict the caller
// should retry the whole call.
func (s *Service) RecordWeighing(ctx context.Context, farmID, animalID uuid.UUID, date string, weightKg float64) (Metrics, error) {
	weight, err := domain.ValidateWeightKg(weightKg)
	if err != nil {
		return Metrics{}, err
	}

	weighedAt, err := timeseries.ParseInstant(date)
	if err != nil {
		return Metrics{}, fmt.Errorf("%w: %v", domain.ErrInvalidDate, err)
	}

	var metrics Metrics
	err = s.conn.WithSerializableTx(ctx, func(tx pgx.Tx) error {
		animals := repository.NewAnimalRepository(tx)
		weighings := repository.NewWeighingRepository(tx)

		// Locking the animal row serializes concurrent weighings (and
		// backfills) for the same animal; the read below and the writes
		// after it commit as one unit.
		animal, err := animals.GetByIDForUpdate(ctx, farmID, animalID)
		if err != nil {
			return err
		}

		history, err := weighings.ListByAnimal(ctx, animal.ID)
		if err != nil {
			return err
		}

		weighing := domain.NewWeighing(animal.ID, weighedAt, weight)
		weighing.GrowthSincePrev = rateSincePredecessor(history, weighing)

		inserted, err := weighings.Insert(ctx, weighing)
		if err != nil {
			return err
		}

		metrics = Compute(append(history, inserted))
		return animals.SetGrowth(ctx, animal.ID, domain.GrowthUpdate{
			WeightKg:         metrics.LatestWeightKg,
			GrowthLast:       metrics.GrowthLast,
			GrowthTrailing30: metrics.GrowthTrailing30,
		})
	})
	if err != nil {
		return Metrics{}, err
	}

	s.log.Info("weighing recorded",
		zap.String("animal_id", animalID.String()),
		zap.String("weighed_at", weighedAt.Format(time.RFC3339)),
		zap.Float64("weight_kg", weightKg),
	)

	return metrics, nil
}

// rateSincePredecessor derives the new observation's growth-since-previous
// against its chronological predecessor in the deduplicated history, which
// for a backfill is not the most recently inserted row.
func rateSincePredecessor(history []domain.Weighing, next domain.Weighing) *float64 {
	observations := timeseries.DedupByCalendarDay(history, func(w domain.Weighing) time.Time {
		return w.WeighedAt
	})

	var predecessor *domain.Weighing
	for i := range observations {
		if observations[i].WeighedAt.Before(next.WeighedAt) {
			predecessor = &observations[i]
		}
	}
	if predecessor == nil {
		return nil
	}
	return RateBetween(*predecessor, next)
}
