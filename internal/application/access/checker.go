package access

import (
	"context"

	"github.com/jhoicas/hotel-pms-api/internal/domain/rbac"
)

// Checker verificación de permisos dentro de los casos de uso. Lee el principal del
// contexto; sin principal todo se deniega.
type Checker struct {
	store *Store
}

// NewChecker construye el verificador sobre el almacén de plantillas.
func NewChecker(store *Store) *Checker {
	return &Checker{store: store}
}

// CurrentRole rol del principal de ctx.
func (c *Checker) CurrentRole(ctx context.Context) (rbac.Role, bool) {
	p, ok := PrincipalFrom(ctx)
	if !ok {
		return rbac.RoleUnknown, false
	}
	return p.Role, true
}

// HasModulePermission informa si el principal alcanza required sobre module.
func (c *Checker) HasModulePermission(ctx context.Context, module rbac.Module, required rbac.PermissionLevel) bool {
	role, ok := c.CurrentRole(ctx)
	if !ok {
		return false
	}
	return c.store.HasModuleAccess(role, module, required)
}

// HasAnyRole informa si el rol del principal coincide con alguno de los códigos dados
// (código de tipo de usuario o nombre canónico).
func (c *Checker) HasAnyRole(ctx context.Context, codes ...string) bool {
	role, ok := c.CurrentRole(ctx)
	if !ok {
		return false
	}
	for _, code := range codes {
		if code == role.Code() || code == role.Name() {
			return true
		}
	}
	return false
}
