package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/hotel-pms-api/internal/application/dto"
	"github.com/jhoicas/hotel-pms-api/internal/application/folio"
	"github.com/jhoicas/hotel-pms-api/pkg/response"
)

// BillHandler maneja /api/bills (folios, pagos, cargos, división y PDF).
type BillHandler struct {
	uc    *folio.BillUseCase
	pdfUC *folio.PDFUseCase
}

// NewBillHandler construye el handler.
func NewBillHandler(uc *folio.BillUseCase, pdfUC *folio.PDFUseCase) *BillHandler {
	return &BillHandler{uc: uc, pdfUC: pdfUC}
}

// Create godoc
// @Summary      Generar folio
// @Description  Crea el folio; si se indica check-in, toma la tarifa de su reserva y los anticipos ya recibidos.
// @Tags         bills
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBillRequest  true  "check-in y total"
// @Success      201   {object}  response.Response{data=dto.BillResponse}
// @Failure      400   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /api/bills [post]
func (h *BillHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBillRequest
	if err := bindBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return response.Created(c, "folio generado", out)
}

// GetByID GET /api/bills/:id
func (h *BillHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return response.Success(c, "folio", out)
}

// ListByCheckIn GET /api/bills?check_in_id=
func (h *BillHandler) ListByCheckIn(c *fiber.Ctx) error {
	checkInID := c.Query("check_in_id")
	if checkInID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "check_in_id es obligatorio")
	}
	out, err := h.uc.ListByCheckIn(c.UserContext(), checkInID)
	if err != nil {
		return err
	}
	return response.Success(c, "folios", out)
}

// AddPayment POST /api/bills/:id/payments
func (h *BillHandler) AddPayment(c *fiber.Ctx) error {
	var in dto.PaymentRequest
	if err := bindBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.AddPayment(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return response.Created(c, "pago registrado", out)
}

// VoidPayment DELETE /api/bills/:id/payments/:paymentId (MANAGER o ADMIN).
func (h *BillHandler) VoidPayment(c *fiber.Ctx) error {
	out, err := h.uc.VoidPayment(c.UserContext(), c.Params("id"), c.Params("paymentId"))
	if err != nil {
		return err
	}
	return response.Success(c, "pago anulado", out)
}

// AddCharge POST /api/bills/:id/charges
func (h *BillHandler) AddCharge(c *fiber.Ctx) error {
	var in dto.ChargeRequest
	if err := bindBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.AddCharge(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return response.Created(c, "cargo registrado", out)
}

// Split godoc
// @Summary      Dividir folio
// @Description  Los montos deben ser positivos y sumar exactamente el total del folio. Requiere FULL sobre bills.
// @Tags         bills
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del folio"
// @Param        body  body  dto.SplitBillRequest   true  "montos de cada parte"
// @Success      201   {object}  response.Response{data=[]dto.BillResponse}
// @Failure      400   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Router       /api/bills/{id}/split [post]
func (h *BillHandler) Split(c *fiber.Ctx) error {
	var in dto.SplitBillRequest
	if err := bindBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Split(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return response.Created(c, "folio dividido", out)
}

// DownloadPDF GET /api/bills/:id/pdf
func (h *BillHandler) DownloadPDF(c *fiber.Ctx) error {
	pdf, filename, err := h.pdfUC.Download(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, "attachment; filename="+strconv.Quote(filename))
	return c.Send(pdf)
}

// AdvanceHandler maneja /api/advances.
type AdvanceHandler struct {
	uc *folio.AdvanceUseCase
}

// NewAdvanceHandler construye el handler.
func NewAdvanceHandler(uc *folio.AdvanceUseCase) *AdvanceHandler {
	return &AdvanceHandler{uc: uc}
}

// Create POST /api/advances
func (h *AdvanceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAdvanceRequest
	if err := bindBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return response.Created(c, "anticipo registrado", out)
}

// ListByReservation GET /api/advances?reservation_id=
func (h *AdvanceHandler) ListByReservation(c *fiber.Ctx) error {
	reservationID := c.Query("reservation_id")
	if reservationID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "reservation_id es obligatorio")
	}
	out, err := h.uc.ListByReservation(c.UserContext(), reservationID)
	if err != nil {
		return err
	}
	return response.Success(c, "anticipos", out)
}
