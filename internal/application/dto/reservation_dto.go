package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateReservationRequest body para POST /api/reservations.
type CreateReservationRequest struct {
	GuestName     string           `json:"guest_name" validate:"required,min=2,max=200"`
	GuestEmail    string           `json:"guest_email" validate:"omitempty,email"`
	GuestPhone    string           `json:"guest_phone" validate:"omitempty,max=30"`
	RoomTypeCode  string           `json:"room_type_code" validate:"required,max=20"`
	RoomID        *string          `json:"room_id,omitempty" validate:"omitempty,uuid"`
	ArrivalDate   time.Time        `json:"arrival_date" validate:"required"`
	DepartureDate time.Time        `json:"departure_date" validate:"required,gtfield=ArrivalDate"`
	Adults        int              `json:"adults" validate:"required,min=1,max=10"`
	Children      int              `json:"children" validate:"min=0,max=10"`
	Rate          *decimal.Decimal `json:"rate,omitempty"`
}

// ReservationListRequest query de GET /api/reservations.
type ReservationListRequest struct {
	PageRequest
	Status string `query:"status" validate:"omitempty,oneof=CONFIRMED CHECKED_IN CANCELLED COMPLETED"`
}

// ReservationResponse reserva en respuestas.
type ReservationResponse struct {
	ID            string           `json:"id"`
	GuestName     string           `json:"guest_name"`
	GuestEmail    string           `json:"guest_email,omitempty"`
	GuestPhone    string           `json:"guest_phone,omitempty"`
	RoomTypeCode  string           `json:"room_type_code"`
	RoomID        *string          `json:"room_id,omitempty"`
	ArrivalDate   time.Time        `json:"arrival_date"`
	DepartureDate time.Time        `json:"departure_date"`
	Nights        int              `json:"nights"`
	Adults        int              `json:"adults"`
	Children      int              `json:"children"`
	Rate          *decimal.Decimal `json:"rate,omitempty"`
	Status        string           `json:"status"`
	CreatedBy     string           `json:"created_by"`
	CreatedAt     time.Time        `json:"created_at"`
}
