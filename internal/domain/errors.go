package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// El manejador HTTP de nivel superior traduce cada uno a su código de estado.
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrUserNotFound = errors.New("usuario no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")
	ErrBusinessRule = errors.New("regla de negocio violada")
	ErrRoomNotReady = errors.New("la habitación no está disponible")
)

// RuleError detalla una violación de regla de negocio; errors.Is(err, ErrBusinessRule) es true.
type RuleError struct {
	Rule   string
	Detail string
}

func (e *RuleError) Error() string {
	if e.Detail == "" {
		return e.Rule
	}
	return e.Rule + ": " + e.Detail
}

func (e *RuleError) Unwrap() error { return ErrBusinessRule }

// NewRuleError construye un RuleError.
func NewRuleError(rule, detail string) error {
	return &RuleError{Rule: rule, Detail: detail}
}
