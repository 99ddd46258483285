package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/hotel-pms-api/internal/application/access"
	"github.com/jhoicas/hotel-pms-api/internal/application/dto"
	"github.com/jhoicas/hotel-pms-api/internal/domain/rbac"
	"github.com/jhoicas/hotel-pms-api/pkg/response"
)

// PermissionHandler expone la plantilla de permisos en solo lectura.
type PermissionHandler struct {
	store *access.Store
}

// NewPermissionHandler construye el handler.
func NewPermissionHandler(store *access.Store) *PermissionHandler {
	return &PermissionHandler{store: store}
}

// Me GET /api/permissions/me
func (h *PermissionHandler) Me(c *fiber.Ctx) error {
	p := GetPrincipal(c)
	if p == nil {
		return fiber.NewError(fiber.StatusUnauthorized, "no autenticado")
	}
	return response.Success(c, "permisos", h.rolePermissions(p.Role))
}

// ByRole GET /api/permissions/roles/:role (nombre, código o alias).
func (h *PermissionHandler) ByRole(c *fiber.Ctx) error {
	raw := c.Params("role")
	role, ok := rbac.ParseRoleName(raw)
	if !ok {
		role, ok = rbac.ParseRoleCode(raw)
	}
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "rol desconocido: "+raw)
	}
	return response.Success(c, "permisos", h.rolePermissions(role))
}

func (h *PermissionHandler) rolePermissions(role rbac.Role) dto.RolePermissionsResponse {
	perms := h.store.Permissions(role)
	out := dto.RolePermissionsResponse{
		Role:        role.Name(),
		DisplayName: role.DisplayName(),
		Code:        role.Code(),
		Permissions: make([]dto.PermissionResponse, 0, len(perms)),
	}
	for _, p := range perms {
		out.Permissions = append(out.Permissions, dto.PermissionResponse{Module: p.Module.Name(), Level: p.Level})
	}
	return out
}
