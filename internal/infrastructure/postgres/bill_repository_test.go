package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/hotel-pms-api/internal/domain/billing"
)

var billWithStayCols = []string{
	"id", "check_in_id", "total_amount", "paid_amount", "advance_amount", "balance_amount",
	"settlement_status", "rate_basis", "notes", "closed_at", "created_at", "updated_at",
	"reservation_id", "room_id", "guest_name", "rate",
}

func ptr(s string) *string { return &s }

func billRow(mock pgxmock.PgxPoolIface, status string, rate decimal.NullDecimal) *pgxmock.Rows {
	at := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	return mock.NewRows(billWithStayCols).AddRow(
		"b-1", ptr("ci-1"), decimal.NewFromInt(1500), decimal.Zero, decimal.NewFromInt(500), decimal.NewFromInt(1500),
		status, decimal.NullDecimal{}, "", nil, at, at,
		ptr("res-1"), ptr("room-101"), ptr("Ana Pérez"), rate,
	)
}

// ─── Folios ─────────────────────────────────────────────────────────────────

func TestBillRepo_GetByIDForUpdateBloqueaLaFila(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(`WHERE b\.id = \$1 FOR UPDATE OF b`).
		WithArgs("b-1").
		WillReturnRows(billRow(mock, "PARTIAL", decimal.NewNullDecimal(decimal.NewFromInt(2000))))

	b, err := NewBillRepository(mock).GetByIDForUpdate(context.Background(), "b-1")
	require.NoError(t, err)
	require.NotNil(t, b)
	require.NotNil(t, b.CheckIn)
	require.NotNil(t, b.CheckIn.Reservation)
	assert.Equal(t, "room-101", b.CheckIn.RoomID)
	assert.True(t, b.RateBasis().Valid)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBillRepo_GetByIDNoBloquea(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(`WHERE b\.id = \$1$`).
		WithArgs("b-1").
		WillReturnRows(billRow(mock, "PARTIAL", decimal.NullDecimal{}))

	b, err := NewBillRepository(mock).GetByID(context.Background(), "b-1")
	require.NoError(t, err)
	require.NotNil(t, b)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBillRepo_GetByIDForUpdateNoExiste(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery("FOR UPDATE OF b").
		WithArgs("nope").
		WillReturnError(pgx.ErrNoRows)

	b, err := NewBillRepository(mock).GetByIDForUpdate(context.Background(), "nope")
	assert.NoError(t, err)
	assert.Nil(t, b)
}

func TestBillRepo_EstadoDesconocidoSeDerivaConLaTarifa(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery("FROM bills b").
		WithArgs("b-1").
		WillReturnRows(billRow(mock, "BOGUS", decimal.NewNullDecimal(decimal.NewFromInt(2000))))

	b, err := NewBillRepository(mock).GetByID(context.Background(), "b-1")
	require.NoError(t, err)
	require.NotNil(t, b)
	// saldo 1500 contra tarifa 2000: parcial aunque iguale el total
	assert.Equal(t, billing.StatusPartial, b.SettlementStatus)
	assert.True(t, decimal.NewFromInt(1500).Equal(b.BalanceAmount))
}

func TestBillRepo_EstadoDesconocidoSinTarifaUsaElTotal(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery("FROM bills b").
		WithArgs("b-1").
		WillReturnRows(billRow(mock, "BOGUS", decimal.NullDecimal{}))

	b, err := NewBillRepository(mock).GetByID(context.Background(), "b-1")
	require.NoError(t, err)
	assert.Equal(t, billing.StatusUnsettled, b.SettlementStatus)
}
