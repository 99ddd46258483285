package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Advance anticipo cobrado contra una reserva (antes o durante la estadía).
type Advance struct {
	ID            string
	ReservationID string
	CheckInID     *string
	Amount        decimal.Decimal
	Method        string // CASH, CARD, TRANSFER
	Reference     string
	ReceivedBy    string
	CreatedAt     time.Time
}
