package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/hotel-pms-api/pkg/validation"
)

// bindBody decodifica el JSON del cuerpo y valida los tags `validate` del DTO.
func bindBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	return validation.Struct(out)
}

// bindQuery decodifica y valida los parámetros de consulta.
func bindQuery(c *fiber.Ctx, out interface{}) error {
	if err := c.QueryParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "parámetros de consulta inválidos")
	}
	return validation.Struct(out)
}
