package dto

import "time"

// CreateCheckInRequest body para POST /api/check-ins. Sin reserva es un walk-in y
// guest_name es obligatorio.
type CreateCheckInRequest struct {
	ReservationID    *string   `json:"reservation_id,omitempty" validate:"omitempty,uuid"`
	RoomID           string    `json:"room_id" validate:"required,uuid"`
	GuestName        string    `json:"guest_name" validate:"required_without=ReservationID,max=200"`
	ExpectedCheckout time.Time `json:"expected_checkout" validate:"required"`
}

// CheckInResponse check-in en respuestas.
type CheckInResponse struct {
	ID               string     `json:"id"`
	ReservationID    *string    `json:"reservation_id,omitempty"`
	RoomID           string     `json:"room_id"`
	GuestName        string     `json:"guest_name"`
	CheckInAt        time.Time  `json:"check_in_at"`
	ExpectedCheckout time.Time  `json:"expected_checkout"`
	CheckedOutAt     *time.Time `json:"checked_out_at,omitempty"`
	Status           string     `json:"status"`
	Overdue          bool       `json:"overdue"`
}
