package reservations_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/hotel-pms-api/internal/application/access"
	"github.com/jhoicas/hotel-pms-api/internal/application/dto"
	"github.com/jhoicas/hotel-pms-api/internal/application/reservations"
	"github.com/jhoicas/hotel-pms-api/internal/domain"
	"github.com/jhoicas/hotel-pms-api/internal/domain/entity"
	"github.com/jhoicas/hotel-pms-api/internal/domain/rbac"
	"github.com/jhoicas/hotel-pms-api/internal/domain/repository"
)

type memRepo struct {
	items map[string]*entity.Reservation
	last  repository.ReservationFilter
}

func (m *memRepo) Create(_ context.Context, r *entity.Reservation) error {
	m.items[r.ID] = r
	return nil
}

func (m *memRepo) GetByID(_ context.Context, id string) (*entity.Reservation, error) {
	return m.items[id], nil
}

func (m *memRepo) List(_ context.Context, f repository.ReservationFilter) ([]*entity.Reservation, error) {
	m.last = f
	var out []*entity.Reservation
	for _, r := range m.items {
		if f.Status == "" || r.Status == f.Status {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memRepo) UpdateStatus(_ context.Context, id, status string, _ time.Time) error {
	m.items[id].Status = status
	return nil
}

func request() dto.CreateReservationRequest {
	rate := decimal.RequireFromString("180.00")
	return dto.CreateReservationRequest{
		GuestName:     "Lucía Gómez",
		RoomTypeCode:  "DBL",
		ArrivalDate:   time.Date(2026, 5, 10, 15, 0, 0, 0, time.UTC),
		DepartureDate: time.Date(2026, 5, 13, 11, 0, 0, 0, time.UTC),
		Adults:        2,
		Rate:          &rate,
	}
}

func TestCreate(t *testing.T) {
	repo := &memRepo{items: map[string]*entity.Reservation{}}
	uc := reservations.NewUseCase(repo)
	ctx := access.WithPrincipal(context.Background(), &access.Principal{Username: "recepcion1", Role: rbac.RoleReceptionist})

	out, err := uc.Create(ctx, request())
	require.NoError(t, err)
	assert.Equal(t, entity.ReservationConfirmed, out.Status)
	assert.Equal(t, 3, out.Nights)
	assert.Equal(t, "recepcion1", out.CreatedBy)
	require.NotNil(t, out.Rate)
	assert.Equal(t, "180", out.Rate.String())
	assert.True(t, repo.items[out.ID].Rate.Valid)
}

func TestCreate_FechasInvalidas(t *testing.T) {
	uc := reservations.NewUseCase(&memRepo{items: map[string]*entity.Reservation{}})
	in := request()
	in.DepartureDate = in.ArrivalDate
	_, err := uc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCancel(t *testing.T) {
	repo := &memRepo{items: map[string]*entity.Reservation{
		"r-1": {ID: "r-1", Status: entity.ReservationConfirmed},
		"r-2": {ID: "r-2", Status: entity.ReservationCheckedIn},
	}}
	uc := reservations.NewUseCase(repo)
	ctx := context.Background()

	require.NoError(t, uc.Cancel(ctx, "r-1"))
	assert.Equal(t, entity.ReservationCancelled, repo.items["r-1"].Status)
	require.NoError(t, uc.Cancel(ctx, "r-1"))

	assert.ErrorIs(t, uc.Cancel(ctx, "r-2"), domain.ErrBusinessRule)
	assert.ErrorIs(t, uc.Cancel(ctx, "nope"), domain.ErrNotFound)
}

func TestList_PaginacionPorDefecto(t *testing.T) {
	repo := &memRepo{items: map[string]*entity.Reservation{"r-1": {ID: "r-1", Status: entity.ReservationConfirmed}}}
	uc := reservations.NewUseCase(repo)

	out, err := uc.List(context.Background(), dto.ReservationListRequest{Status: entity.ReservationConfirmed})
	require.NoError(t, err)
	assert.Len(t, out, 1)
	assert.Equal(t, 20, repo.last.Limit)
}
