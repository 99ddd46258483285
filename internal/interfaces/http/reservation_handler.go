package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/hotel-pms-api/internal/application/dto"
	"github.com/jhoicas/hotel-pms-api/internal/application/reservations"
	"github.com/jhoicas/hotel-pms-api/pkg/response"
)

// ReservationHandler maneja /api/reservations.
type ReservationHandler struct {
	uc *reservations.UseCase
}

// NewReservationHandler construye el handler.
func NewReservationHandler(uc *reservations.UseCase) *ReservationHandler {
	return &ReservationHandler{uc: uc}
}

// Create godoc
// @Summary      Crear reserva
// @Tags         reservations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReservationRequest  true  "datos de la reserva"
// @Success      201   {object}  response.Response{data=dto.ReservationResponse}
// @Failure      400   {object}  response.Response
// @Router       /api/reservations [post]
func (h *ReservationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateReservationRequest
	if err := bindBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return response.Created(c, "reserva creada", out)
}

// List GET /api/reservations?status=&limit=&offset=
func (h *ReservationHandler) List(c *fiber.Ctx) error {
	var in dto.ReservationListRequest
	in.DefaultPage()
	if err := bindQuery(c, &in); err != nil {
		return err
	}
	out, err := h.uc.List(c.UserContext(), in)
	if err != nil {
		return err
	}
	return response.Success(c, "reservas", out)
}

// GetByID GET /api/reservations/:id
func (h *ReservationHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return response.Success(c, "reserva", out)
}

// Cancel DELETE /api/reservations/:id
func (h *ReservationHandler) Cancel(c *fiber.Ctx) error {
	if err := h.uc.Cancel(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return response.Success(c, "reserva cancelada", nil)
}
