package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/hotel-pms-api/internal/application/stays"
	"github.com/jhoicas/hotel-pms-api/internal/domain"
	"github.com/jhoicas/hotel-pms-api/internal/domain/entity"
	"github.com/jhoicas/hotel-pms-api/internal/domain/repository"
)

var reservationCols = []string{
	"id", "guest_name", "guest_email", "guest_phone", "room_type_code", "room_id", "arrival_date",
	"departure_date", "adults", "children", "rate", "status", "created_by", "created_at", "updated_at",
}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func reservationRow(mock pgxmock.PgxPoolIface, id string) *pgxmock.Rows {
	arrival := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	return mock.NewRows(reservationCols).AddRow(
		id, "Ana Pérez", nil, nil, "DBL", nil, arrival,
		arrival.AddDate(0, 0, 2), 2, 0, decimal.NewNullDecimal(decimal.NewFromInt(300000)),
		entity.ReservationConfirmed, "u-1", arrival, arrival,
	)
}

// ─── Reservas ───────────────────────────────────────────────────────────────

func TestReservationRepo_CreateHabitacionInexistente(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec("INSERT INTO reservations").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23503"})

	err := NewReservationRepository(mock).Create(context.Background(), &entity.Reservation{ID: "r-1"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationRepo_GetByID(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery("FROM reservations WHERE id = \\$1").
		WithArgs("r-1").
		WillReturnRows(reservationRow(mock, "r-1"))

	res, err := NewReservationRepository(mock).GetByID(context.Background(), "r-1")
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, "Ana Pérez", res.GuestName)
	assert.Empty(t, res.GuestEmail)
	assert.Nil(t, res.RoomID)
	assert.True(t, res.Rate.Valid)
	assert.Equal(t, 2, res.Nights())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationRepo_GetByIDNoExiste(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery("FROM reservations WHERE id = \\$1").
		WithArgs("nope").
		WillReturnError(pgx.ErrNoRows)

	res, err := NewReservationRepository(mock).GetByID(context.Background(), "nope")
	assert.NoError(t, err)
	assert.Nil(t, res)
}

func TestReservationRepo_ListConFiltro(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery("WHERE status = \\$1 ORDER BY arrival_date, created_at LIMIT \\$2 OFFSET \\$3").
		WithArgs(entity.ReservationConfirmed, 20, 0).
		WillReturnRows(reservationRow(mock, "r-1"))

	list, err := NewReservationRepository(mock).List(context.Background(), repository.ReservationFilter{
		Status: entity.ReservationConfirmed, Limit: 20,
	})
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationRepo_UpdateStatusSinFilas(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec("UPDATE reservations SET status").
		WithArgs("r-9", entity.ReservationCancelled, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := NewReservationRepository(mock).UpdateStatus(context.Background(), "r-9", entity.ReservationCancelled, time.Now())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ─── Transacciones ──────────────────────────────────────────────────────────

func TestTxRunner_RollbackSiFalla(t *testing.T) {
	mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	err := NewTxRunner(mock).RunFolio(context.Background(), func(repository.BillRepository, repository.AdvanceRepository) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxRunner_Commit(t *testing.T) {
	mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE rooms SET status").
		WithArgs("room-1", entity.RoomAvailable, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	err := NewTxRunner(mock).RunStay(context.Background(), func(r stays.Repos) error {
		return r.Rooms.UpdateStatus(context.Background(), "room-1", entity.RoomAvailable, time.Now())
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
