// Package rooms casos de uso de habitaciones, housekeeping y la actualización
// automática de estados que ejecuta el scheduler.
package rooms

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/hotel-pms-api/internal/domain/entity"
	"github.com/jhoicas/hotel-pms-api/internal/domain/repository"
	"github.com/jhoicas/hotel-pms-api/pkg/logger"
)

// RoomStatusDetail resultado por habitación de una corrida.
type RoomStatusDetail struct {
	RoomID         string `json:"room_id"`
	RoomNumber     string `json:"room_number,omitempty"`
	CheckInID      string `json:"check_in_id,omitempty"`
	PreviousStatus string `json:"previous_status"`
	NewStatus      string `json:"new_status,omitempty"`
	Success        bool   `json:"success"`
	Reason         string `json:"reason,omitempty"`
}

// RoomStatusResult resumen de una corrida.
type RoomStatusResult struct {
	ProcessingDate time.Time          `json:"processing_date"`
	TotalProcessed int                `json:"total_processed"`
	Successful     int                `json:"successful"`
	Failed         int                `json:"failed"`
	Details        []RoomStatusDetail `json:"details"`
}

// MarshalZerologObject detalle por habitación en el resumen logueado.
func (d RoomStatusDetail) MarshalZerologObject(e *zerolog.Event) {
	e.Str("room_id", d.RoomID).
		Str("previous_status", d.PreviousStatus).
		Bool("success", d.Success)
	if d.RoomNumber != "" {
		e.Str("room_number", d.RoomNumber)
	}
	if d.CheckInID != "" {
		e.Str("check_in_id", d.CheckInID)
	}
	if d.NewStatus != "" {
		e.Str("new_status", d.NewStatus)
	}
	if d.Reason != "" {
		e.Str("reason", d.Reason)
	}
}

type detailArray []RoomStatusDetail

func (a detailArray) MarshalZerologArray(arr *zerolog.Array) {
	for _, d := range a {
		arr.Object(d)
	}
}

func (r *RoomStatusResult) add(d RoomStatusDetail) {
	r.TotalProcessed++
	if d.Success {
		r.Successful++
	} else {
		r.Failed++
	}
	r.Details = append(r.Details, d)
}

// RoomStatusService transiciones automáticas de estado de habitación.
// Un fallo en una habitación se registra en el resultado y no detiene la corrida.
type RoomStatusService struct {
	rooms    repository.RoomRepository
	tasks    repository.HousekeepingTaskRepository
	checkIns repository.CheckInRepository
	log      *logger.Logger
	now      func() time.Time
}

// NewRoomStatusService construye el servicio.
func NewRoomStatusService(
	rooms repository.RoomRepository,
	tasks repository.HousekeepingTaskRepository,
	checkIns repository.CheckInRepository,
	log *logger.Logger,
) *RoomStatusService {
	return &RoomStatusService{rooms: rooms, tasks: tasks, checkIns: checkIns, log: log, now: time.Now}
}

// ProcessAutomaticRoomStatusUpdates libera (AVAILABLE) las habitaciones CHECKED_OUT
// cuyas tareas de housekeeping están todas completadas.
func (s *RoomStatusService) ProcessAutomaticRoomStatusUpdates(ctx context.Context) (*RoomStatusResult, error) {
	now := s.now()
	result := &RoomStatusResult{ProcessingDate: now, Details: []RoomStatusDetail{}}

	list, err := s.rooms.List(ctx, entity.RoomCheckedOut)
	if err != nil {
		return nil, fmt.Errorf("listar habitaciones en check-out: %w", err)
	}
	for _, room := range list {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		detail := RoomStatusDetail{RoomID: room.ID, RoomNumber: room.Number, PreviousStatus: room.Status}

		open, err := s.tasks.CountOpenByRoom(ctx, room.ID)
		switch {
		case err != nil:
			detail.Reason = err.Error()
		case open > 0:
			detail.Reason = fmt.Sprintf("%d tareas de housekeeping pendientes", open)
		default:
			if err := s.rooms.UpdateStatus(ctx, room.ID, entity.RoomAvailable, now); err != nil {
				detail.Reason = err.Error()
			} else {
				detail.Success = true
				detail.NewStatus = entity.RoomAvailable
			}
		}
		result.add(detail)
	}

	s.logSummary(result, "actualización automática de habitaciones")
	return result, nil
}

// ProcessOverdueCheckouts marca como vencidos los check-ins activos cuya salida
// prevista ya pasó y pone su habitación en OVERDUE.
func (s *RoomStatusService) ProcessOverdueCheckouts(ctx context.Context) (*RoomStatusResult, error) {
	now := s.now()
	result := &RoomStatusResult{ProcessingDate: now, Details: []RoomStatusDetail{}}

	list, err := s.checkIns.ListActiveDueBefore(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("listar check-ins vencidos: %w", err)
	}
	for _, ci := range list {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		detail := RoomStatusDetail{RoomID: ci.RoomID, CheckInID: ci.ID}
		if room, err := s.rooms.GetByID(ctx, ci.RoomID); err == nil && room != nil {
			detail.RoomNumber = room.Number
			detail.PreviousStatus = room.Status
		}
		if !ci.IsOverdueAt(now) {
			continue
		}

		if !ci.Overdue {
			ci.Overdue = true
			ci.UpdatedAt = now
			if err := s.checkIns.Update(ctx, ci); err != nil {
				detail.Reason = err.Error()
				result.add(detail)
				continue
			}
		}
		if err := s.rooms.UpdateStatus(ctx, ci.RoomID, entity.RoomOverdue, now); err != nil {
			detail.Reason = err.Error()
		} else {
			detail.Success = true
			detail.NewStatus = entity.RoomOverdue
		}
		result.add(detail)
	}

	s.logSummary(result, "revisión de salidas vencidas")
	return result, nil
}

// logSummary resumen de la corrida con el detalle por habitación; nivel warn si hubo fallos.
func (s *RoomStatusService) logSummary(result *RoomStatusResult, msg string) {
	ev := s.log.Info()
	if result.Failed > 0 {
		ev = s.log.Warn()
	}
	ev.Time("processing_date", result.ProcessingDate).
		Int("total", result.TotalProcessed).
		Int("successful", result.Successful).
		Int("failed", result.Failed).
		Array("details", detailArray(result.Details)).
		Msg(msg)
}
