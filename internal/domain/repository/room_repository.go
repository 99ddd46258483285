package repository

import (
	"context"
	"time"

	"github.com/jhoicas/hotel-pms-api/internal/domain/entity"
)

// RoomRepository puerto de persistencia de habitaciones.
type RoomRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Room, error)
	// List filtra por estado si status no es vacío.
	List(ctx context.Context, status string) ([]*entity.Room, error)
	UpdateStatus(ctx context.Context, id, status string, at time.Time) error
}

// HousekeepingTaskRepository puerto de persistencia de tareas de housekeeping.
type HousekeepingTaskRepository interface {
	Create(ctx context.Context, t *entity.HousekeepingTask) error
	GetByID(ctx context.Context, id string) (*entity.HousekeepingTask, error)
	Update(ctx context.Context, t *entity.HousekeepingTask) error
	// List filtra por habitación y/o estado; vacío no filtra.
	List(ctx context.Context, roomID, status string) ([]*entity.HousekeepingTask, error)
	CountOpenByRoom(ctx context.Context, roomID string) (int, error)
}
