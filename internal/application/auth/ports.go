package auth

import (
	"context"
	"time"
)

// TokenBlacklist registro de tokens revocados (logout). Una entrada deja de importar
// cuando el token expira por sí mismo.
type TokenBlacklist interface {
	IsBlacklisted(ctx context.Context, token string) (bool, error)
	Blacklist(ctx context.Context, token string, expiresAt time.Time) error
}

// TokenService emisión y validación de JWT (implementado por pkg/jwt).
type TokenService interface {
	Generate(userID, username, userTypeID, userTypeRole string) (string, error)
	ExpiresAt(token string) (time.Time, error)
}
