// Package billing contiene el cálculo de saldo y estado de liquidación de un folio.
//
// Reglas:
//
//	base       = tarifa de la reserva si existe; si no, total del folio
//	deducción  = anticipos si la base es la tarifa; si no, pagos
//	saldo      = max(base - deducción, 0)
//	estado     = SETTLED si saldo == 0, UNSETTLED si saldo == base, PARTIAL en otro caso
//
// Montos negativos se normalizan a cero. Nunca devuelve error.
package billing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// SettlementStatus estado de liquidación de un folio.
type SettlementStatus string

const (
	StatusUnknown   SettlementStatus = ""
	StatusUnsettled SettlementStatus = "UNSETTLED"
	StatusPartial   SettlementStatus = "PARTIAL"
	StatusSettled   SettlementStatus = "SETTLED"
)

func (s SettlementStatus) String() string { return string(s) }

// ParseSettlementStatus interpreta el texto persistido; ok=false si no es un estado conocido.
func ParseSettlementStatus(s string) (SettlementStatus, bool) {
	switch SettlementStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case StatusUnsettled:
		return StatusUnsettled, true
	case StatusPartial:
		return StatusPartial, true
	case StatusSettled:
		return StatusSettled, true
	default:
		return StatusUnknown, false
	}
}

// BalanceInput montos de entrada del cálculo. Rate es la tarifa de la reserva asociada
// al check-in del folio (Valid=false si no hay reserva o no tiene tarifa).
type BalanceInput struct {
	Total   decimal.Decimal
	Paid    decimal.Decimal
	Advance decimal.Decimal
	Rate    decimal.NullDecimal
}

// UsesRateBasis indica si el cálculo toma la tarifa como base.
func (in BalanceInput) UsesRateBasis() bool { return in.Rate.Valid }

// Basis devuelve la base del cálculo ya normalizada (≥ 0).
func (in BalanceInput) Basis() decimal.Decimal {
	if in.Rate.Valid {
		return nonNegative(in.Rate.Decimal)
	}
	return nonNegative(in.Total)
}

func (in BalanceInput) deduction() decimal.Decimal {
	if in.Rate.Valid {
		return nonNegative(in.Advance)
	}
	return nonNegative(in.Paid)
}

// ComputeBalance calcula saldo y estado a partir de los montos.
func ComputeBalance(in BalanceInput) (decimal.Decimal, SettlementStatus) {
	basis := in.Basis()
	balance := nonNegative(basis.Sub(in.deduction()))
	return balance, StatusForBalance(balance, basis)
}

// StatusForBalance deriva el estado a partir de un saldo fijado externamente.
// Un saldo negativo se trata como cero.
func StatusForBalance(balance, basis decimal.Decimal) SettlementStatus {
	balance = nonNegative(balance)
	basis = nonNegative(basis)
	switch {
	case balance.IsZero():
		return StatusSettled
	case balance.GreaterThanOrEqual(basis):
		return StatusUnsettled
	default:
		return StatusPartial
	}
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
