package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/hotel-pms-api/internal/domain/rbac"
)

// permissionChecker es el contrato mínimo que necesitan los middlewares de ruta.
// Lo implementa *access.Checker; el uso de interfaz evita acoplar el router al store.
type permissionChecker interface {
	HasModulePermission(ctx context.Context, module rbac.Module, required rbac.PermissionLevel) bool
	HasAnyRole(ctx context.Context, codes ...string) bool
}

// RequireModuleLevel exige un nivel sobre el módulo por encima del que pide el método HTTP.
// Debe usarse DESPUÉS de AccessInterceptor (necesita el principal en el contexto).
func RequireModuleLevel(module rbac.Module, level rbac.PermissionLevel, checker permissionChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !checker.HasModulePermission(c.UserContext(), module, level) {
			return forbidden(c, "insufficient permissions")
		}
		return c.Next()
	}
}

// RequireRole restringe la ruta a los roles indicados (por código o nombre).
func RequireRole(checker permissionChecker, codes ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !checker.HasAnyRole(c.UserContext(), codes...) {
			return forbidden(c, "role not allowed")
		}
		return c.Next()
	}
}

func forbidden(c *fiber.Ctx, msg string) error {
	body := fiber.Map{"error": msg}
	if p := GetPrincipal(c); p != nil {
		body["role"] = p.Role.Name()
	}
	return c.Status(fiber.StatusForbidden).JSON(body)
}
