package response

import "github.com/gofiber/fiber/v2"

// Response envoltorio uniforme de la API.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// Success responde 200 con el envoltorio estándar.
func Success(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(Response{Success: true, Message: message, Data: data})
}

// Created responde 201.
func Created(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(Response{Success: true, Message: message, Data: data})
}

// Error responde con el código indicado; data puede llevar detalle (errores por campo).
func Error(c *fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(Response{Success: false, Message: message, Data: data})
}
