package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una reserva.
const (
	ReservationConfirmed = "CONFIRMED"
	ReservationCheckedIn = "CHECKED_IN"
	ReservationCancelled = "CANCELLED"
	ReservationCompleted = "COMPLETED"
)

// Reservation reserva de habitación. Rate es la tarifa pactada para la estadía;
// cuando existe, es la base del saldo de los folios del check-in.
type Reservation struct {
	ID            string
	GuestName     string
	GuestEmail    string
	GuestPhone    string
	RoomTypeCode  string
	RoomID        *string
	ArrivalDate   time.Time
	DepartureDate time.Time
	Adults        int
	Children      int
	Rate          decimal.NullDecimal
	Status        string
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Nights noches de la estadía (mínimo 1).
func (r *Reservation) Nights() int {
	n := int(r.DepartureDate.Sub(r.ArrivalDate).Hours() / 24)
	if n < 1 {
		return 1
	}
	return n
}
