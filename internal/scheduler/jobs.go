package scheduler

import (
	"context"
	"time"

	"github.com/jhoicas/hotel-pms-api/internal/application/rooms"
	"github.com/jhoicas/hotel-pms-api/pkg/config"
	"github.com/jhoicas/hotel-pms-api/pkg/metrics"
)

// Nombres de los jobs registrados por RegisterDefaults.
const (
	JobRoomStatus     = "room-status-auto"
	JobOverdue        = "overdue-checkouts"
	JobBlacklistPrune = "blacklist-prune"
)

// RoomStatusProcessor operaciones de RoomStatusService que ejecuta el scheduler.
type RoomStatusProcessor interface {
	ProcessAutomaticRoomStatusUpdates(ctx context.Context) (*rooms.RoomStatusResult, error)
	ProcessOverdueCheckouts(ctx context.Context) (*rooms.RoomStatusResult, error)
}

// Pruner lista negra con limpieza de entradas vencidas (solo el backend en memoria).
type Pruner interface {
	Prune(now time.Time) int
}

// PruneResult resultado del job de limpieza.
type PruneResult struct {
	Removed int `json:"removed"`
}

// RegisterDefaults registra los jobs de habitaciones y, si pruner no es nil, el de la lista negra.
func RegisterDefaults(s *Scheduler, cfg config.SchedulerConfig, svc RoomStatusProcessor, pruner Pruner) error {
	if err := s.Register(JobRoomStatus, cfg.RoomStatusCron,
		roomJob(JobRoomStatus, svc.ProcessAutomaticRoomStatusUpdates, s.metrics)); err != nil {
		return err
	}
	if err := s.Register(JobOverdue, cfg.OverdueCron,
		roomJob(JobOverdue, svc.ProcessOverdueCheckouts, s.metrics)); err != nil {
		return err
	}
	if pruner == nil {
		return nil
	}
	return s.Register(JobBlacklistPrune, cfg.BlacklistPrune, func(context.Context) (interface{}, error) {
		return &PruneResult{Removed: pruner.Prune(time.Now())}, nil
	})
}

func roomJob(name string, fn func(context.Context) (*rooms.RoomStatusResult, error), m *metrics.Metrics) JobFunc {
	return func(ctx context.Context) (interface{}, error) {
		res, err := fn(ctx)
		if res != nil && m != nil {
			m.RoomsProcessed.WithLabelValues(name, "ok").Add(float64(res.Successful))
			m.RoomsProcessed.WithLabelValues(name, "failed").Add(float64(res.Failed))
		}
		if err != nil {
			return nil, err
		}
		return res, nil
	}
}
