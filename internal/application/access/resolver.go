package access

import "github.com/jhoicas/hotel-pms-api/internal/domain/rbac"

// TokenIdentity claims del token relevantes para resolver el rol.
type TokenIdentity struct {
	Username     string
	UserTypeID   string
	UserTypeRole string
}

// RoleResolver estrategia de resolución; ok=false si no puede resolver.
type RoleResolver interface {
	Resolve(id TokenIdentity) (rbac.Role, bool)
}

// RoleResolverFunc adapta una función a RoleResolver.
type RoleResolverFunc func(id TokenIdentity) (rbac.Role, bool)

func (f RoleResolverFunc) Resolve(id TokenIdentity) (rbac.Role, bool) { return f(id) }

// ByRoleName resuelve por el claim de nombre de rol (nombre, código, nombre visible o alias).
var ByRoleName RoleResolverFunc = func(id TokenIdentity) (rbac.Role, bool) {
	return rbac.ParseRoleName(id.UserTypeRole)
}

// ByRoleCode resuelve por el claim de código de tipo de usuario, exacto.
var ByRoleCode RoleResolverFunc = func(id TokenIdentity) (rbac.Role, bool) {
	return rbac.ParseRoleCode(id.UserTypeID)
}

// ResolverChain compone estrategias de izquierda a derecha; gana la primera que resuelve.
type ResolverChain []RoleResolver

// DefaultResolverChain nombre de rol primero y, si falla, código de tipo de usuario.
func DefaultResolverChain() ResolverChain {
	return ResolverChain{ByRoleName, ByRoleCode}
}

// Resolve aplica la cadena. Sin coincidencia devuelve RoleUnknown: no hay rol por defecto.
func (c ResolverChain) Resolve(id TokenIdentity) (rbac.Role, bool) {
	for _, r := range c {
		if role, ok := r.Resolve(id); ok {
			return role, true
		}
	}
	return rbac.RoleUnknown, false
}
