package occupancy

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/camposur/herdtrack/internal/domain"
)

func TestRegister_RejectsInvalidDate(t *testing.T) {
	svc := NewService(nil, nil)

	_, err := svc.Register(context.Background(), uuid.New(), uuid.New(), uuid.New(), "yesterday-ish")
	if !errors.Is(err, domain.ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

func TestMove_RejectsInvalidDate(t *testing.T) {
	svc := NewService(nil, nil)

	_, err := svc.Move(context.Background(), uuid.New(), uuid.New(), uuid.New(), "", "notes")
	if !errors.Is(err, domain.ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}
