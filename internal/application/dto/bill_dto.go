package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateBillRequest body para POST /api/bills (generación de folio).
type CreateBillRequest struct {
	CheckInID   *string         `json:"check_in_id,omitempty" validate:"omitempty,uuid"`
	TotalAmount decimal.Decimal `json:"total_amount" validate:"gte=0"`
	Notes       string          `json:"notes" validate:"max=500"`
}

// PaymentRequest body para POST /api/bills/:id/payments.
type PaymentRequest struct {
	Amount    decimal.Decimal `json:"amount" validate:"gt=0"`
	Method    string          `json:"method" validate:"required,oneof=CASH CARD TRANSFER"`
	Reference string          `json:"reference" validate:"max=100"`
}

// ChargeRequest body para POST /api/bills/:id/charges.
type ChargeRequest struct {
	Description string          `json:"description" validate:"required,max=200"`
	Amount      decimal.Decimal `json:"amount" validate:"gt=0"`
}

// SplitBillRequest body para POST /api/bills/:id/split. La suma de los montos debe
// coincidir con el total del folio.
type SplitBillRequest struct {
	Amounts []decimal.Decimal `json:"amounts" validate:"required,min=2,max=10"`
}

// CreateAdvanceRequest body para POST /api/advances.
type CreateAdvanceRequest struct {
	ReservationID string          `json:"reservation_id" validate:"required,uuid"`
	CheckInID     *string         `json:"check_in_id,omitempty" validate:"omitempty,uuid"`
	Amount        decimal.Decimal `json:"amount" validate:"gt=0"`
	Method        string          `json:"method" validate:"required,oneof=CASH CARD TRANSFER"`
	Reference     string          `json:"reference" validate:"max=100"`
}

// BillResponse folio con saldo y estado derivados.
type BillResponse struct {
	ID               string            `json:"id"`
	CheckInID        *string           `json:"check_in_id,omitempty"`
	TotalAmount      decimal.Decimal   `json:"total_amount"`
	PaidAmount       decimal.Decimal   `json:"paid_amount"`
	AdvanceAmount    decimal.Decimal   `json:"advance_amount"`
	BalanceAmount    decimal.Decimal   `json:"balance_amount"`
	SettlementStatus string            `json:"settlement_status"`
	Notes            string            `json:"notes,omitempty"`
	ClosedAt         *time.Time        `json:"closed_at,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
	Payments         []PaymentResponse `json:"payments,omitempty"`
	Charges          []ChargeResponse  `json:"charges,omitempty"`
}

// PaymentResponse pago en respuestas.
type PaymentResponse struct {
	ID        string          `json:"id"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"`
	Reference string          `json:"reference,omitempty"`
	Voided    bool            `json:"voided"`
	CreatedAt time.Time       `json:"created_at"`
}

// ChargeResponse cargo en respuestas.
type ChargeResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	CreatedAt   time.Time       `json:"created_at"`
}

// AdvanceResponse anticipo en respuestas; AppliedBills son los folios actualizados.
type AdvanceResponse struct {
	ID            string          `json:"id"`
	ReservationID string          `json:"reservation_id"`
	CheckInID     *string         `json:"check_in_id,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Method        string          `json:"method"`
	Reference     string          `json:"reference,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	AppliedBills  []string        `json:"applied_bills,omitempty"`
}
