package entity

import "time"

// Estados de una tarea de housekeeping.
const (
	TaskPending    = "PENDING"
	TaskInProgress = "IN_PROGRESS"
	TaskCompleted  = "COMPLETED"
)

// HousekeepingTask tarea de limpieza o revisión de una habitación.
type HousekeepingTask struct {
	ID          string
	RoomID      string
	Kind        string // CHECKOUT_CLEAN, DAILY_SERVICE, INSPECTION
	Status      string
	AssignedTo  string
	Notes       string
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
