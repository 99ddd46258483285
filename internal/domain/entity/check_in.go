package entity

import "time"

// Estados de un check-in.
const (
	CheckInActive     = "ACTIVE"
	CheckInCheckedOut = "CHECKED_OUT"
)

// CheckIn estadía en curso (o finalizada) de un huésped en una habitación.
type CheckIn struct {
	ID               string
	ReservationID    *string
	RoomID           string
	GuestName        string
	CheckInAt        time.Time
	ExpectedCheckout time.Time
	CheckedOutAt     *time.Time
	Status           string
	Overdue          bool
	CreatedBy        string
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// Reservation se carga opcionalmente para obtener la tarifa.
	Reservation *Reservation
}

// IsOverdueAt informa si la salida esperada ya pasó y el huésped sigue dentro.
func (c *CheckIn) IsOverdueAt(now time.Time) bool {
	if c.Status != CheckInActive {
		return false
	}
	return now.After(c.ExpectedCheckout)
}
