package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/hotel-pms-api/internal/domain/billing"
)

// Bill representa el folio (cuenta) de un huésped asociado a un check-in.
//
// BalanceAmount y SettlementStatus son derivados: se recalculan en cada setter de
// montos, de modo que el resultado final no depende del orden de asignación.
// Los campos derivados se exponen para lectura y persistencia; para modificarlos
// usar siempre los setters.
type Bill struct {
	ID               string
	CheckInID        *string
	TotalAmount      decimal.Decimal
	PaidAmount       decimal.Decimal
	AdvanceAmount    decimal.Decimal
	BalanceAmount    decimal.Decimal
	SettlementStatus billing.SettlementStatus
	Notes            string
	ClosedAt         *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// BasisRate tarifa propia del folio (partes de una división). Si es válida tiene
	// prioridad sobre la tarifa de la reserva.
	BasisRate decimal.NullDecimal

	// CheckIn se carga opcionalmente (con su reserva) para la base por tarifa.
	CheckIn *CheckIn
}

// NewBill crea un folio con saldo y estado ya derivados.
func NewBill(id string, checkInID *string, total decimal.Decimal, now time.Time) *Bill {
	b := &Bill{ID: id, CheckInID: checkInID, CreatedAt: now, UpdatedAt: now}
	b.SetTotalAmount(total)
	return b
}

// SetTotalAmount asigna el total y recalcula saldo y estado.
func (b *Bill) SetTotalAmount(v decimal.Decimal) {
	b.TotalAmount = v
	b.Recalculate()
}

// SetPaidAmount asigna lo pagado y recalcula saldo y estado.
func (b *Bill) SetPaidAmount(v decimal.Decimal) {
	b.PaidAmount = v
	b.Recalculate()
}

// SetAdvanceAmount asigna los anticipos aplicados y recalcula saldo y estado.
func (b *Bill) SetAdvanceAmount(v decimal.Decimal) {
	b.AdvanceAmount = v
	b.Recalculate()
}

// SetBalanceAmount fija el saldo directamente; solo el estado se re-deriva.
func (b *Bill) SetBalanceAmount(v decimal.Decimal) {
	if v.IsNegative() {
		v = decimal.Zero
	}
	b.BalanceAmount = v
	b.RederiveStatus()
}

// RederiveStatus deriva el estado desde el saldo actual y la base vigente
// (tarifa propia, tarifa de la reserva o total), sin tocar el saldo.
func (b *Bill) RederiveStatus() {
	b.SettlementStatus = billing.StatusForBalance(b.BalanceAmount, b.balanceInput().Basis())
}

// SetBasisRate fija la tarifa propia del folio y recalcula.
func (b *Bill) SetBasisRate(rate decimal.Decimal) {
	b.BasisRate = decimal.NewNullDecimal(rate)
	b.Recalculate()
}

// SetCheckIn adjunta el check-in cargado (con su reserva) y recalcula.
func (b *Bill) SetCheckIn(ci *CheckIn) {
	b.CheckIn = ci
	if ci != nil {
		id := ci.ID
		b.CheckInID = &id
	}
	b.Recalculate()
}

// Recalculate deriva saldo y estado desde los montos de entrada.
func (b *Bill) Recalculate() {
	b.BalanceAmount, b.SettlementStatus = billing.ComputeBalance(b.balanceInput())
}

// RateBasis devuelve la tarifa que actúa como base: la propia del folio o, si no
// tiene, la de la reserva vinculada.
func (b *Bill) RateBasis() decimal.NullDecimal {
	if b.BasisRate.Valid {
		return b.BasisRate
	}
	if b.CheckIn == nil || b.CheckIn.Reservation == nil {
		return decimal.NullDecimal{}
	}
	return b.CheckIn.Reservation.Rate
}

// IsClosed indica si el folio fue cerrado (por ejemplo tras dividirlo).
func (b *Bill) IsClosed() bool { return b.ClosedAt != nil }

func (b *Bill) balanceInput() billing.BalanceInput {
	return billing.BalanceInput{
		Total:   b.TotalAmount,
		Paid:    b.PaidAmount,
		Advance: b.AdvanceAmount,
		Rate:    b.RateBasis(),
	}
}
