package domain

import "errors"

// Sentinel errors shared across services and repositories. Callers branch on
// these with errors.Is; repositories wrap them with operation context.
var (
	// ErrNotFound covers both genuinely missing entities and entities that
	// exist under a different farm. Scope violations deliberately look like
	// missing rows so that cross-tenant existence never leaks.
	ErrNotFound = errors.New("not found")

	// ErrInvalidPaddock is returned when the target paddock does not belong
	// to the operation's farm scope.
	ErrInvalidPaddock = errors.New("paddock not found in farm")

	// ErrBackdatedMove is returned when a paddock move starts at or before
	// the currently open occupancy record.
	ErrBackdatedMove = errors.New("move start predates open occupancy")

	// ErrNoOpMove is returned when an animal is moved into the paddock it
	// already occupies.
	ErrNoOpMove = errors.New("animal already occupies target paddock")

	// ErrNotOccupying is returned when a move is requested for an animal
	// with no open occupancy record.
	ErrNotOccupying = errors.New("animal has no open occupancy")

	// ErrAlreadyOccupying is returned when registration is attempted for an
	// animal that already has an occupancy history.
	ErrAlreadyOccupying = errors.New("animal already registered in a paddock")

	// ErrInvalidWeight rejects non-finite or non-positive weights.
	ErrInvalidWeight = errors.New("weight must be a positive finite number")

	// ErrInvalidDate rejects timestamps that fail to parse.
	ErrInvalidDate = errors.New("invalid date")

	// ErrDuplicateWeighing is returned when a weighing already exists for
	// the animal on the same calendar day.
	ErrDuplicateWeighing = errors.New("weighing already recorded for this day")

	// ErrDiscardReasonRequired is returned when a discard selection decision
	// carries no reason.
	ErrDiscardReasonRequired = errors.New("discard decision requires a reason")

	// ErrTxConflict marks a serialization failure under concurrent
	// same-animal operations. It is the only error class callers should
	// retry, and the retry must re-run the whole operation.
	ErrTxConflict = errors.New("transaction conflict, retry the operation")
)
