package dto

import (
	"time"

	"github.com/jhoicas/hotel-pms-api/internal/domain/rbac"
)

// UpdateRoomStatusRequest body para PATCH /api/rooms/:id/status.
type UpdateRoomStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=AVAILABLE OCCUPIED CHECKED_OUT MAINTENANCE OVERDUE"`
}

// RoomResponse habitación en respuestas.
type RoomResponse struct {
	ID        string    `json:"id"`
	Number    string    `json:"number"`
	TypeCode  string    `json:"type_code"`
	Floor     int       `json:"floor"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateTaskRequest body para POST /api/housekeeping/tasks.
type CreateTaskRequest struct {
	RoomID     string `json:"room_id" validate:"required,uuid"`
	Kind       string `json:"kind" validate:"required,oneof=CHECKOUT_CLEAN DAILY_SERVICE INSPECTION"`
	AssignedTo string `json:"assigned_to" validate:"max=100"`
	Notes      string `json:"notes" validate:"max=500"`
}

// TaskResponse tarea de housekeeping en respuestas.
type TaskResponse struct {
	ID          string     `json:"id"`
	RoomID      string     `json:"room_id"`
	Kind        string     `json:"kind"`
	Status      string     `json:"status"`
	AssignedTo  string     `json:"assigned_to,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// PermissionResponse nivel de un rol sobre un módulo.
type PermissionResponse struct {
	Module string               `json:"module"`
	Level  rbac.PermissionLevel `json:"level"`
}

// RolePermissionsResponse plantilla vigente de un rol.
type RolePermissionsResponse struct {
	Role        string               `json:"role"`
	DisplayName string               `json:"display_name"`
	Code        string               `json:"code"`
	Permissions []PermissionResponse `json:"permissions"`
}
