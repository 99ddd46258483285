package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/hotel-pms-api/internal/domain"
	"github.com/jhoicas/hotel-pms-api/pkg/logger"
	"github.com/jhoicas/hotel-pms-api/pkg/response"
	"github.com/jhoicas/hotel-pms-api/pkg/validation"
)

// ErrInvalidBody cuerpo JSON que no se pudo decodificar.
var ErrInvalidBody = errors.New("cuerpo inválido")

// NewErrorHandler devuelve el fiber.ErrorHandler de la app: traduce errores de dominio,
// de validación y *fiber.Error al envoltorio {success, message, data}.
func NewErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	if log == nil {
		log = logger.Nop()
	}
	return func(c *fiber.Ctx, err error) error {
		if fields := validation.FieldErrors(err); fields != nil {
			return response.Error(c, fiber.StatusBadRequest, "datos inválidos", fields)
		}

		var rule *domain.RuleError
		if errors.As(err, &rule) {
			return response.Error(c, fiber.StatusBadRequest, rule.Error(), fiber.Map{"rule": rule.Rule})
		}

		var fe *fiber.Error
		if errors.As(err, &fe) {
			return response.Error(c, fe.Code, fe.Message, nil)
		}

		switch {
		case errors.Is(err, ErrInvalidBody), errors.Is(err, domain.ErrInvalidInput):
			return response.Error(c, fiber.StatusBadRequest, err.Error(), nil)
		case errors.Is(err, domain.ErrBusinessRule), errors.Is(err, domain.ErrRoomNotReady):
			return response.Error(c, fiber.StatusBadRequest, err.Error(), nil)
		case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
			return response.Error(c, fiber.StatusNotFound, err.Error(), nil)
		case errors.Is(err, domain.ErrDuplicate), errors.Is(err, domain.ErrConflict):
			return response.Error(c, fiber.StatusConflict, err.Error(), nil)
		case errors.Is(err, domain.ErrUnauthorized):
			return response.Error(c, fiber.StatusUnauthorized, err.Error(), nil)
		case errors.Is(err, domain.ErrForbidden):
			return response.Error(c, fiber.StatusForbidden, err.Error(), nil)
		}

		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error no controlado")
		return response.Error(c, fiber.StatusInternalServerError, "internal server error", nil)
	}
}
