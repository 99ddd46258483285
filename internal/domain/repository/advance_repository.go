package repository

import (
	"context"

	"github.com/jhoicas/hotel-pms-api/internal/domain/entity"
)

// AdvanceRepository puerto de persistencia de anticipos.
type AdvanceRepository interface {
	Create(ctx context.Context, a *entity.Advance) error
	ListByReservation(ctx context.Context, reservationID string) ([]*entity.Advance, error)
}
