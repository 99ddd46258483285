package rooms

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/hotel-pms-api/internal/application/dto"
	"github.com/jhoicas/hotel-pms-api/internal/domain"
	"github.com/jhoicas/hotel-pms-api/internal/domain/entity"
	"github.com/jhoicas/hotel-pms-api/internal/domain/repository"
)

// RoomUseCase consulta y cambio manual de estado de habitaciones.
type RoomUseCase struct {
	rooms repository.RoomRepository
	tasks repository.HousekeepingTaskRepository
	now   func() time.Time
}

// NewRoomUseCase construye el caso de uso.
func NewRoomUseCase(rooms repository.RoomRepository, tasks repository.HousekeepingTaskRepository) *RoomUseCase {
	return &RoomUseCase{rooms: rooms, tasks: tasks, now: time.Now}
}

// List habitaciones; status vacío no filtra.
func (uc *RoomUseCase) List(ctx context.Context, status string) ([]dto.RoomResponse, error) {
	if status != "" && !entity.IsValidRoomStatus(status) {
		return nil, fmt.Errorf("%w: estado de habitación %q", domain.ErrInvalidInput, status)
	}
	list, err := uc.rooms.List(ctx, status)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RoomResponse, 0, len(list))
	for _, r := range list {
		out = append(out, toRoomResponse(r))
	}
	return out, nil
}

// UpdateStatus cambia el estado manualmente. Pasar a AVAILABLE exige que no queden
// tareas de housekeeping abiertas.
func (uc *RoomUseCase) UpdateStatus(ctx context.Context, id string, in dto.UpdateRoomStatusRequest) (*dto.RoomResponse, error) {
	if !entity.IsValidRoomStatus(in.Status) {
		return nil, fmt.Errorf("%w: estado de habitación %q", domain.ErrInvalidInput, in.Status)
	}
	room, err := uc.rooms.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, domain.ErrNotFound
	}
	if in.Status == entity.RoomAvailable && room.Status != entity.RoomAvailable {
		open, err := uc.tasks.CountOpenByRoom(ctx, id)
		if err != nil {
			return nil, err
		}
		if open > 0 {
			return nil, domain.NewRuleError("habitación no lista", fmt.Sprintf("%d tareas de housekeeping pendientes", open))
		}
	}
	now := uc.now()
	if err := uc.rooms.UpdateStatus(ctx, id, in.Status, now); err != nil {
		return nil, err
	}
	room.Status = in.Status
	room.UpdatedAt = now
	out := toRoomResponse(room)
	return &out, nil
}

// HousekeepingUseCase tareas de limpieza e inspección.
type HousekeepingUseCase struct {
	rooms repository.RoomRepository
	tasks repository.HousekeepingTaskRepository
	now   func() time.Time
}

// NewHousekeepingUseCase construye el caso de uso.
func NewHousekeepingUseCase(rooms repository.RoomRepository, tasks repository.HousekeepingTaskRepository) *HousekeepingUseCase {
	return &HousekeepingUseCase{rooms: rooms, tasks: tasks, now: time.Now}
}

// Create abre una tarea pendiente para la habitación.
func (uc *HousekeepingUseCase) Create(ctx context.Context, in dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	room, err := uc.rooms.GetByID(ctx, in.RoomID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, domain.ErrNotFound
	}
	now := uc.now()
	task := &entity.HousekeepingTask{
		ID:         uuid.New().String(),
		RoomID:     room.ID,
		Kind:       in.Kind,
		Status:     entity.TaskPending,
		AssignedTo: in.AssignedTo,
		Notes:      in.Notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	out := toTaskResponse(task)
	return &out, nil
}

// List tareas filtradas por habitación y estado.
func (uc *HousekeepingUseCase) List(ctx context.Context, roomID, status string) ([]dto.TaskResponse, error) {
	list, err := uc.tasks.List(ctx, roomID, status)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TaskResponse, 0, len(list))
	for _, t := range list {
		out = append(out, toTaskResponse(t))
	}
	return out, nil
}

// Complete marca la tarea como completada. La liberación de la habitación la hace
// el job de estado automático.
func (uc *HousekeepingUseCase) Complete(ctx context.Context, id string) (*dto.TaskResponse, error) {
	task, err := uc.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, domain.ErrNotFound
	}
	if task.Status == entity.TaskCompleted {
		return nil, domain.NewRuleError("tarea ya completada", task.ID)
	}
	now := uc.now()
	task.Status = entity.TaskCompleted
	task.CompletedAt = &now
	task.UpdatedAt = now
	if err := uc.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	out := toTaskResponse(task)
	return &out, nil
}

func toRoomResponse(r *entity.Room) dto.RoomResponse {
	return dto.RoomResponse{
		ID:        r.ID,
		Number:    r.Number,
		TypeCode:  r.TypeCode,
		Floor:     r.Floor,
		Status:    r.Status,
		UpdatedAt: r.UpdatedAt,
	}
}

func toTaskResponse(t *entity.HousekeepingTask) dto.TaskResponse {
	return dto.TaskResponse{
		ID:          t.ID,
		RoomID:      t.RoomID,
		Kind:        t.Kind,
		Status:      t.Status,
		AssignedTo:  t.AssignedTo,
		Notes:       t.Notes,
		CompletedAt: t.CompletedAt,
		CreatedAt:   t.CreatedAt,
	}
}
