package access

import (
	"context"

	"github.com/jhoicas/hotel-pms-api/internal/domain/rbac"
)

// Principal identidad autenticada de la petición, resuelta por el interceptor de acceso.
type Principal struct {
	UserID     string
	Username   string
	UserTypeID string
	Role       rbac.Role
	Token      string
}

type principalKey struct{}

// WithPrincipal adjunta el principal al contexto de la petición.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom recupera el principal; ok=false si la petición no está autenticada.
func PrincipalFrom(ctx context.Context) (*Principal, bool) {
	if ctx == nil {
		return nil, false
	}
	p, ok := ctx.Value(principalKey{}).(*Principal)
	if !ok || p == nil || !p.Role.IsKnown() {
		return nil, false
	}
	return p, true
}
