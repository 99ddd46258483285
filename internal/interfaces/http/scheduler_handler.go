package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/hotel-pms-api/internal/scheduler"
	"github.com/jhoicas/hotel-pms-api/pkg/response"
)

// SchedulerHandler consulta y dispara los jobs programados.
type SchedulerHandler struct {
	sched *scheduler.Scheduler
}

// NewSchedulerHandler construye el handler.
func NewSchedulerHandler(s *scheduler.Scheduler) *SchedulerHandler {
	return &SchedulerHandler{sched: s}
}

// List GET /api/scheduler/jobs
func (h *SchedulerHandler) List(c *fiber.Ctx) error {
	return response.Success(c, "jobs", h.sched.Jobs())
}

// Run godoc
// @Summary      Ejecutar un job programado ahora
// @Description  Si el job ya está corriendo se espera y devuelve el resultado de esa ejecución.
// @Tags         scheduler
// @Security     Bearer
// @Produce      json
// @Param        name  path  string  true  "room-status-auto | overdue-checkouts | blacklist-prune"
// @Success      200   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /api/scheduler/jobs/{name}/run [post]
func (h *SchedulerHandler) Run(c *fiber.Ctx) error {
	name := c.Params("name")
	out, err := h.sched.RunNow(c.UserContext(), name)
	if err != nil {
		if errors.Is(err, scheduler.ErrUnknownJob) {
			return fiber.NewError(fiber.StatusNotFound, "job desconocido: "+name)
		}
		return err
	}
	return response.Success(c, "job ejecutado", out)
}
