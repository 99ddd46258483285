package entity

import "time"

// Estados de habitación.
const (
	RoomAvailable   = "AVAILABLE"
	RoomOccupied    = "OCCUPIED"
	RoomCheckedOut  = "CHECKED_OUT"
	RoomMaintenance = "MAINTENANCE"
	RoomOverdue     = "OVERDUE"
)

// Room habitación física del hotel.
type Room struct {
	ID        string
	Number    string
	TypeCode  string
	Floor     int
	Status    string
	UpdatedAt time.Time
}

// IsValidRoomStatus valida un estado recibido por la API.
func IsValidRoomStatus(s string) bool {
	switch s {
	case RoomAvailable, RoomOccupied, RoomCheckedOut, RoomMaintenance, RoomOverdue:
		return true
	}
	return false
}
