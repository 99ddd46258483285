// Package reservations casos de uso de reservas.
package reservations

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/hotel-pms-api/internal/application/access"
	"github.com/jhoicas/hotel-pms-api/internal/application/dto"
	"github.com/jhoicas/hotel-pms-api/internal/domain"
	"github.com/jhoicas/hotel-pms-api/internal/domain/entity"
	"github.com/jhoicas/hotel-pms-api/internal/domain/repository"
)

// UseCase alta, consulta y cancelación de reservas.
type UseCase struct {
	repo repository.ReservationRepository
	now  func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.ReservationRepository) *UseCase {
	return &UseCase{repo: repo, now: time.Now}
}

// Create registra una reserva confirmada.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateReservationRequest) (*dto.ReservationResponse, error) {
	if !in.DepartureDate.After(in.ArrivalDate) {
		return nil, fmt.Errorf("%w: departure_date debe ser posterior a arrival_date", domain.ErrInvalidInput)
	}
	if in.Rate != nil && in.Rate.IsNegative() {
		return nil, fmt.Errorf("%w: rate negativa", domain.ErrInvalidInput)
	}
	now := uc.now()
	res := &entity.Reservation{
		ID:            uuid.New().String(),
		GuestName:     in.GuestName,
		GuestEmail:    in.GuestEmail,
		GuestPhone:    in.GuestPhone,
		RoomTypeCode:  in.RoomTypeCode,
		RoomID:        in.RoomID,
		ArrivalDate:   truncateDay(in.ArrivalDate),
		DepartureDate: truncateDay(in.DepartureDate),
		Adults:        in.Adults,
		Children:      in.Children,
		Status:        entity.ReservationConfirmed,
		CreatedBy:     createdBy(ctx),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if in.Rate != nil {
		res.Rate = decimal.NewNullDecimal(*in.Rate)
	}
	if err := uc.repo.Create(ctx, res); err != nil {
		return nil, err
	}
	return ToResponse(res), nil
}

// Get devuelve una reserva; domain.ErrNotFound si no existe.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.ReservationResponse, error) {
	res, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, domain.ErrNotFound
	}
	return ToResponse(res), nil
}

// List lista reservas con paginación y filtro de estado.
func (uc *UseCase) List(ctx context.Context, in dto.ReservationListRequest) ([]dto.ReservationResponse, error) {
	in.DefaultPage()
	list, err := uc.repo.List(ctx, repository.ReservationFilter{Status: in.Status, Limit: in.Limit, Offset: in.Offset})
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReservationResponse, 0, len(list))
	for _, r := range list {
		out = append(out, *ToResponse(r))
	}
	return out, nil
}

// Cancel cancela una reserva confirmada. Cancelar dos veces no es error.
func (uc *UseCase) Cancel(ctx context.Context, id string) error {
	res, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if res == nil {
		return domain.ErrNotFound
	}
	switch res.Status {
	case entity.ReservationCancelled:
		return nil
	case entity.ReservationConfirmed:
		return uc.repo.UpdateStatus(ctx, id, entity.ReservationCancelled, uc.now())
	default:
		return domain.NewRuleError("cancelación", "la reserva está en estado "+res.Status)
	}
}

// ToResponse convierte la entidad a DTO.
func ToResponse(r *entity.Reservation) *dto.ReservationResponse {
	out := &dto.ReservationResponse{
		ID:            r.ID,
		GuestName:     r.GuestName,
		GuestEmail:    r.GuestEmail,
		GuestPhone:    r.GuestPhone,
		RoomTypeCode:  r.RoomTypeCode,
		RoomID:        r.RoomID,
		ArrivalDate:   r.ArrivalDate,
		DepartureDate: r.DepartureDate,
		Nights:        r.Nights(),
		Adults:        r.Adults,
		Children:      r.Children,
		Status:        r.Status,
		CreatedBy:     r.CreatedBy,
		CreatedAt:     r.CreatedAt,
	}
	if r.Rate.Valid {
		rate := r.Rate.Decimal
		out.Rate = &rate
	}
	return out
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func createdBy(ctx context.Context) string {
	if p, ok := access.PrincipalFrom(ctx); ok {
		return p.Username
	}
	return "system"
}
