package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/hotel-pms-api/internal/application/dto"
	"github.com/jhoicas/hotel-pms-api/internal/application/stays"
	"github.com/jhoicas/hotel-pms-api/pkg/response"
)

// CheckInHandler maneja /api/check-ins.
type CheckInHandler struct {
	uc *stays.UseCase
}

// NewCheckInHandler construye el handler.
func NewCheckInHandler(uc *stays.UseCase) *CheckInHandler {
	return &CheckInHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar check-in (con reserva o walk-in)
// @Tags         check-ins
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCheckInRequest  true  "habitación, reserva y salida esperada"
// @Success      201   {object}  response.Response{data=dto.CheckInResponse}
// @Failure      400   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Router       /api/check-ins [post]
func (h *CheckInHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCheckInRequest
	if err := bindBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.CheckIn(c.UserContext(), in)
	if err != nil {
		return err
	}
	return response.Created(c, "check-in registrado", out)
}

// GetByID GET /api/check-ins/:id
func (h *CheckInHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return response.Success(c, "check-in", out)
}

// Checkout POST /api/check-ins/:id/checkout
func (h *CheckInHandler) Checkout(c *fiber.Ctx) error {
	out, err := h.uc.Checkout(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return response.Success(c, "checkout registrado", out)
}
