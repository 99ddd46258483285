package repository

import (
	"context"
	"time"

	"github.com/jhoicas/hotel-pms-api/internal/domain/entity"
)

// ReservationFilter criterios de listado; los campos vacíos no filtran.
type ReservationFilter struct {
	Status   string
	ArriveOn *time.Time
	Limit    int
	Offset   int
}

// ReservationRepository puerto de persistencia de reservas.
type ReservationRepository interface {
	Create(ctx context.Context, r *entity.Reservation) error
	GetByID(ctx context.Context, id string) (*entity.Reservation, error)
	List(ctx context.Context, f ReservationFilter) ([]*entity.Reservation, error)
	UpdateStatus(ctx context.Context, id, status string, at time.Time) error
}
