package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/hotel-pms-api/internal/application/dto"
	"github.com/jhoicas/hotel-pms-api/internal/application/rooms"
	"github.com/jhoicas/hotel-pms-api/pkg/response"
)

// RoomHandler maneja /api/rooms.
type RoomHandler struct {
	uc *rooms.RoomUseCase
}

// NewRoomHandler construye el handler.
func NewRoomHandler(uc *rooms.RoomUseCase) *RoomHandler {
	return &RoomHandler{uc: uc}
}

// List GET /api/rooms?status=
func (h *RoomHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.Query("status"))
	if err != nil {
		return err
	}
	return response.Success(c, "habitaciones", out)
}

// UpdateStatus PATCH /api/rooms/:id/status
func (h *RoomHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateRoomStatusRequest
	if err := bindBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.UpdateStatus(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return response.Success(c, "estado actualizado", out)
}

// HousekeepingHandler maneja /api/housekeeping/tasks.
type HousekeepingHandler struct {
	uc *rooms.HousekeepingUseCase
}

// NewHousekeepingHandler construye el handler.
func NewHousekeepingHandler(uc *rooms.HousekeepingUseCase) *HousekeepingHandler {
	return &HousekeepingHandler{uc: uc}
}

// Create POST /api/housekeeping/tasks
func (h *HousekeepingHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTaskRequest
	if err := bindBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return response.Created(c, "tarea creada", out)
}

// List GET /api/housekeeping/tasks?room_id=&status=
func (h *HousekeepingHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.Query("room_id"), c.Query("status"))
	if err != nil {
		return err
	}
	return response.Success(c, "tareas", out)
}

// Complete PATCH /api/housekeeping/tasks/:id/complete
func (h *HousekeepingHandler) Complete(c *fiber.Ctx) error {
	out, err := h.uc.Complete(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return response.Success(c, "tarea completada", out)
}
