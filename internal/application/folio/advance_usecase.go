package folio

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

// AdvanceUseCase cobro y consulta de anticipos.
type AdvanceUseCase struct {
	reservations repository.ReservationRepository
	checkIns     repository.CheckInRepository
	advances     repository.AdvanceRepository
	tx           TxRunner
	now          func() time.Time
}

// NewAdvanceUseCase construye el caso de uso.
func NewAdvanceUseCase(
	reservations repository.ReservationRepository,
	checkIns repository.CheckInRepository,
	advances repository.AdvanceRepository,
	tx TxRunner,
) *AdvanceUseCase {
	return &AdvanceUseCase{reservations: reservations, checkIns: checkIns, advances: advances, tx: tx, now: time.Now}
}

// Create registra un anticipo. Si indica check-in, se aplica al folio abierto más
// antiguo de ese check-in.
func (uc *AdvanceUseCase) Create(ctx context.Context, in dto.CreateAdvanceRequest) (*dto.AdvanceResponse, error) {
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount debe ser positivo", domain.ErrInvalidInput)
	}
	res, err := uc.reservations.GetByID(ctx, in.ReservationID)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, domain.ErrNotFound
	}
	if res.Status == entity.ReservationCancelled {
		return nil, domain.NewRuleError("anticipo", "la reserva está cancelada")
	}
	if in.CheckInID != nil {
		ci, err := uc.checkIns.GetByID(ctx, *in.CheckInID)
		if err != nil {
			return nil, err
		}
		if ci == nil {
			return nil, domain.ErrNotFound
		}
		if ci.ReservationID == nil || *ci.ReservationID != res.ID {
			return nil, domain.NewRuleError("anticipo", "el check-in no pertenece a la reserva")
		}
	}

	now := uc.now()
	adv := &entity.Advance{
		ID:            uuid.New().String(),
		ReservationID: res.ID,
		CheckInID:     in.CheckInID,
		Amount:        in.Amount,
		Method:        in.Method,
		Reference:     in.Reference,
		ReceivedBy:    actor(ctx),
		CreatedAt:     now,
	}
	var applied []string
	err = uc.tx.RunFolio(ctx, func(bills repository.BillRepository, advances repository.AdvanceRepository) error {
		if err := advances.Create(ctx, adv); err != nil {
			return err
		}
		if adv.CheckInID == nil {
			return nil
		}
		list, err := bills.ListByCheckIn(ctx, *adv.CheckInID)
		if err != nil {
			return err
		}
		for _, b := range list {
			if b.IsClosed() {
				continue
			}
			// El listado no trae la reserva; se recarga (y bloquea) para conservar la base por tarifa.
			full, err := bills.GetByIDForUpdate(ctx, b.ID)
			if err != nil {
				return err
			}
			if full == nil {
				continue
			}
			full.SetAdvanceAmount(full.AdvanceAmount.Add(adv.Amount))
			full.UpdatedAt = now
			if err := bills.Update(ctx, full); err != nil {
				return err
			}
			applied = append(applied, full.ID)
			return nil
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := toAdvanceResponse(adv)
	out.AppliedBills = applied
	return &out, nil
}

// ListByReservation anticipos de una reserva.
func (uc *AdvanceUseCase) ListByReservation(ctx context.Context, reservationID string) ([]dto.AdvanceResponse, error) {
	if reservationID == "" {
		return nil, fmt.Errorf("%w: reservation_id es obligatorio", domain.ErrInvalidInput)
	}
	list, err := uc.advances.ListByReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AdvanceResponse, 0, len(list))
	for _, a := range list {
		out = append(out, toAdvanceResponse(a))
	}
	return out, nil
}

func toAdvanceResponse(a *entity.Advance) dto.AdvanceResponse {
	return dto.AdvanceResponse{
		ID:            a.ID,
		ReservationID: a.ReservationID,
		CheckInID:     a.CheckInID,
		Amount:        a.Amount,
		Method:        a.Method,
		Reference:     a.Reference,
		CreatedAt:     a.CreatedAt,
	}
}
