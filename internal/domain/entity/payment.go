package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment pago registrado contra un folio. Un pago anulado deja de sumar en PaidAmount.
type Payment struct {
	ID        string
	BillID    string
	Amount    decimal.Decimal
	Method    string // CASH, CARD, TRANSFER
	Reference string
	CreatedBy string
	VoidedAt  *time.Time
	VoidedBy  string
	CreatedAt time.Time
}

// IsVoided indica si el pago fue anulado.
func (p *Payment) IsVoided() bool { return p.VoidedAt != nil }

// Charge cargo (consumo, noche, servicio) que incrementa el total del folio.
type Charge struct {
	ID          string
	BillID      string
	Description string
	Amount      decimal.Decimal
	CreatedBy   string
	CreatedAt   time.Time
}
