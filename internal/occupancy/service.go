// Package occupancy enforces the paddock-occupancy state machine: every
// animal occupies at most one paddock at any instant, and transitions are
// atomic.
package occupancy

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/camposur/herdtrack/internal/db"
	"github.com/camposur/herdtrack/internal/domain"
	"github.com/camposur/herdtrack/internal/repository"
	"github.com/camposur/herdtrack/pkg/timeseries"
)

// Service performs occupancy transitions. Each operation runs in its own
// serializable transaction keyed by the animal row lock; concurrent
// transitions for the same animal serialize, different animals proceed in
// parallel.
type Service struct {
	conn *db.Connection
	log  *zap.Logger
}

// NewService creates a paddock occupancy service.
func NewService(conn *db.Connection, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{conn: conn, log: log}
}

// Register opens the first occupancy record for an animal with no occupancy
// history and points the animal at the paddock. Valid only from the
// No Occupancy state.
func (s *Service) Register(ctx context.Context, farmID, animalID, paddockID uuid.UUID, startTime string) (domain.OccupancyRecord, error) {
	startedAt, err := timeseries.ParseInstant(startTime)
	if err != nil {
		return domain.OccupancyRecord{}, fmt.Errorf("%w: %v", domain.ErrInvalidDate, err)
	}

	var record domain.OccupancyRecord
	err = s.conn.WithSerializableTx(ctx, func(tx pgx.Tx) error {
		animals := repository.NewAnimalRepository(tx)
		paddocks := repository.NewPaddockRepository(tx)
		occupancies := repository.NewOccupancyRepository(tx)

		animal, err := animals.GetByIDForUpdate(ctx, farmID, animalID)
		if err != nil {
			return err
		}
		paddock, err := paddocks.GetByID(ctx, farmID, paddockID)
		if err != nil {
			return err
		}

		open, err := occupancies.FindOpen(ctx, animal.ID)
		if err != nil {
			return err
		}
		if err := domain.ValidateRegister(open); err != nil {
			return err
		}

		record, err = occupancies.Insert(ctx, domain.NewOccupancyRecord(farmID, paddock.ID, animal.ID, startedAt, ""))
		if err != nil {
			return err
		}
		return animals.SetCurrentPaddock(ctx, animal.ID, paddock.ID)
	})
	if err != nil {
		return domain.OccupancyRecord{}, err
	}

	s.log.Info("animal registered in paddock",
		zap.String("animal_id", animalID.String()),
		zap.String("paddock_id", paddockID.String()),
	)
	return record, nil
}

// Move transitions an animal to a new paddock: it closes the open occupancy
// record at startTime, opens a new one and updates the animal's current
// paddock, all in one atomic unit. A concurrent observer sees either the
// fully-old or the fully-new state, never zero or two open records.
func (s *Service) Move(ctx context.Context, farmID, animalID, paddockID uuid.UUID, startTime, notes string) (domain.MoveResult, error) {
	startedAt, err := timeseries.ParseInstant(startTime)
	if err != nil {
		return domain.MoveResult{}, fmt.Errorf("%w: %v", domain.ErrInvalidDate, err)
	}

	var result domain.MoveResult
	err = s.conn.WithSerializableTx(ctx, func(tx pgx.Tx) error {
		animals := repository.NewAnimalRepository(tx)
		paddocks := repository.NewPaddockRepository(tx)
		occupancies := repository.NewOccupancyRepository(tx)

		animal, err := animals.GetByIDForUpdate(ctx, farmID, animalID)
		if err != nil {
			return err
		}
		paddock, err := paddocks.GetByID(ctx, farmID, paddockID)
		if err != nil {
			return err
		}

		open, err := occupancies.FindOpen(ctx, animal.ID)
		if err != nil {
			return err
		}
		if err := domain.ValidateMove(open, paddock.ID, startedAt); err != nil {
			return err
		}

		if err := occupancies.CloseAt(ctx, open.ID, startedAt); err != nil {
			return err
		}
		record, err := occupancies.Insert(ctx, domain.NewOccupancyRecord(farmID, paddock.ID, animal.ID, startedAt, notes))
		if err != nil {
			return err
		}
		if err := animals.SetCurrentPaddock(ctx, animal.ID, paddock.ID); err != nil {
			return err
		}

		from := open.PaddockID
		result = domain.MoveResult{Record: record, FromPaddock: &from, ToPaddock: paddock.ID}
		return nil
	})
	if err != nil {
		s.log.Warn("paddock move rejected",
			zap.String("animal_id", animalID.String()),
			zap.String("paddock_id", paddockID.String()),
			zap.Error(err),
		)
		return domain.MoveResult{}, err
	}

	s.log.Info("animal moved",
		zap.String("animal_id", animalID.String()),
		zap.Stringp("from_paddock", uuidStringp(result.FromPaddock)),
		zap.String("to_paddock", result.ToPaddock.String()),
		zap.Time("started_at", startedAt),
	)
	return result, nil
}

// History lists an animal's occupancy records, oldest first.
func (s *Service) History(ctx context.Context, farmID, animalID uuid.UUID) ([]domain.OccupancyRecord, error) {
	animals := repository.NewAnimalRepository(s.conn.Pool)
	animal, err := animals.GetByID(ctx, farmID, animalID)
	if err != nil {
		return nil, err
	}
	return repository.NewOccupancyRepository(s.conn.Pool).ListByAnimal(ctx, animal.ID)
}

func uuidStringp(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
