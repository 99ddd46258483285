package repository

import (
	"context"
	"time"

	"github.com/jhoicas/hotel-pms-api/internal/domain/entity"
)

// CheckInRepository puerto de persistencia de check-ins.
type CheckInRepository interface {
	Create(ctx context.Context, ci *entity.CheckIn) error
	// GetByID devuelve el check-in con su reserva cargada (si tiene).
	GetByID(ctx context.Context, id string) (*entity.CheckIn, error)
	Update(ctx context.Context, ci *entity.CheckIn) error
	// ListActiveDueBefore check-ins activos con salida prevista anterior a t.
	ListActiveDueBefore(ctx context.Context, t time.Time) ([]*entity.CheckIn, error)
	GetActiveByRoom(ctx context.Context, roomID string) (*entity.CheckIn, error)
}
