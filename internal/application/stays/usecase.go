// Package stays casos de uso de check-in y check-out.
package stays

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/hotel-pms-api/internal/application/access"
	"github.com/jhoicas/hotel-pms-api/internal/application/dto"
	"github.com/jhoicas/hotel-pms-api/internal/domain"
	"github.com/jhoicas/hotel-pms-api/internal/domain/entity"
	"github.com/jhoicas/hotel-pms-api/internal/domain/repository"
)

// TaskKindCheckoutClean limpieza generada al liberar la habitación.
const TaskKindCheckoutClean = "CHECKOUT_CLEAN"

// Repos repositorios que una estadía modifica a la vez.
type Repos struct {
	CheckIns     repository.CheckInRepository
	Reservations repository.ReservationRepository
	Rooms        repository.RoomRepository
	Tasks        repository.HousekeepingTaskRepository
}

// TxRunner ejecuta fn con Repos atados a una transacción.
type TxRunner interface {
	RunStay(ctx context.Context, fn func(Repos) error) error
}

// UseCase check-in, check-out y consulta de estadías.
type UseCase struct {
	checkIns repository.CheckInRepository
	tx       TxRunner
	now      func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(checkIns repository.CheckInRepository, tx TxRunner) *UseCase {
	return &UseCase{checkIns: checkIns, tx: tx, now: time.Now}
}

// CheckIn registra la llegada del huésped: la habitación pasa a OCCUPIED y la
// reserva (si hay) a CHECKED_IN.
func (uc *UseCase) CheckIn(ctx context.Context, in dto.CreateCheckInRequest) (*dto.CheckInResponse, error) {
	now := uc.now()
	if !in.ExpectedCheckout.After(now) {
		return nil, fmt.Errorf("%w: expected_checkout debe ser futura", domain.ErrInvalidInput)
	}
	ci := &entity.CheckIn{
		ID:               uuid.New().String(),
		ReservationID:    in.ReservationID,
		RoomID:           in.RoomID,
		GuestName:        in.GuestName,
		CheckInAt:        now,
		ExpectedCheckout: in.ExpectedCheckout,
		Status:           entity.CheckInActive,
		CreatedBy:        actor(ctx),
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	err := uc.tx.RunStay(ctx, func(r Repos) error {
		// ── 1. Habitación disponible ──────────────────────────────────────────
		room, err := r.Rooms.GetByID(ctx, in.RoomID)
		if err != nil {
			return err
		}
		if room == nil {
			return domain.ErrNotFound
		}
		if room.Status != entity.RoomAvailable {
			return fmt.Errorf("%w: habitación %s en estado %s", domain.ErrRoomNotReady, room.Number, room.Status)
		}

		// ── 2. Reserva confirmada ─────────────────────────────────────────────
		if in.ReservationID != nil {
			res, err := r.Reservations.GetByID(ctx, *in.ReservationID)
			if err != nil {
				return err
			}
			if res == nil {
				return domain.ErrNotFound
			}
			if res.Status != entity.ReservationConfirmed {
				return domain.NewRuleError("check-in", "la reserva está en estado "+res.Status)
			}
			if ci.GuestName == "" {
				ci.GuestName = res.GuestName
			}
			if err := r.Reservations.UpdateStatus(ctx, res.ID, entity.ReservationCheckedIn, now); err != nil {
				return err
			}
		}
		if ci.GuestName == "" {
			return fmt.Errorf("%w: guest_name es obligatorio sin reserva", domain.ErrInvalidInput)
		}

		// ── 3. Registrar y ocupar ─────────────────────────────────────────────
		if err := r.CheckIns.Create(ctx, ci); err != nil {
			return err
		}
		return r.Rooms.UpdateStatus(ctx, room.ID, entity.RoomOccupied, now)
	})
	if err != nil {
		return nil, err
	}
	return ToResponse(ci), nil
}

// Checkout cierra la estadía: la habitación queda CHECKED_OUT con una tarea de
// limpieza pendiente, y la reserva pasa a COMPLETED.
func (uc *UseCase) Checkout(ctx context.Context, id string) (*dto.CheckInResponse, error) {
	var out *entity.CheckIn
	err := uc.tx.RunStay(ctx, func(r Repos) error {
		ci, err := r.CheckIns.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if ci == nil {
			return domain.ErrNotFound
		}
		if ci.Status != entity.CheckInActive {
			return domain.NewRuleError("check-out", "el check-in no está activo")
		}

		now := uc.now()
		ci.Status = entity.CheckInCheckedOut
		ci.CheckedOutAt = &now
		ci.Overdue = false
		ci.UpdatedAt = now
		if err := r.CheckIns.Update(ctx, ci); err != nil {
			return err
		}
		if err := r.Rooms.UpdateStatus(ctx, ci.RoomID, entity.RoomCheckedOut, now); err != nil {
			return err
		}
		task := &entity.HousekeepingTask{
			ID:        uuid.New().String(),
			RoomID:    ci.RoomID,
			Kind:      TaskKindCheckoutClean,
			Status:    entity.TaskPending,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := r.Tasks.Create(ctx, task); err != nil {
			return err
		}
		if ci.ReservationID != nil {
			if err := r.Reservations.UpdateStatus(ctx, *ci.ReservationID, entity.ReservationCompleted, now); err != nil {
				return err
			}
		}
		out = ci
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ToResponse(out), nil
}

// Get devuelve un check-in; domain.ErrNotFound si no existe.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.CheckInResponse, error) {
	ci, err := uc.checkIns.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ci == nil {
		return nil, domain.ErrNotFound
	}
	return ToResponse(ci), nil
}

// ToResponse convierte la entidad a DTO.
func ToResponse(ci *entity.CheckIn) *dto.CheckInResponse {
	return &dto.CheckInResponse{
		ID:               ci.ID,
		ReservationID:    ci.ReservationID,
		RoomID:           ci.RoomID,
		GuestName:        ci.GuestName,
		CheckInAt:        ci.CheckInAt,
		ExpectedCheckout: ci.ExpectedCheckout,
		CheckedOutAt:     ci.CheckedOutAt,
		Status:           ci.Status,
		Overdue:          ci.Overdue,
	}
}

func actor(ctx context.Context) string {
	if p, ok := access.PrincipalFrom(ctx); ok {
		return p.Username
	}
	return "system"
}
