package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenExpired = errors.New("token expirado")
	ErrTokenInvalid = errors.New("token inválido")
	ErrEmptySecret  = errors.New("jwt: secret vacío")
)

// Claims incluye los claims estándar JWT más los campos del personal del hotel.
// UserTypeID es el código de rol ("MGR", "CSH"...) y UserTypeRole el nombre legible
// del tipo de usuario; el interceptor de acceso resuelve el rol a partir de ambos.
type Claims struct {
	jwt.RegisteredClaims
	UserID       string `json:"user_id"`
	Username     string `json:"username"`
	UserTypeID   string `json:"user_type_id"`
	UserTypeRole string `json:"user_type_role,omitempty"`
}

// Service firma y valida tokens HS256 con un secreto compartido.
type Service struct {
	secret     []byte
	issuer     string
	expMinutes int
	now        func() time.Time
}

// NewService construye el servicio de tokens.
func NewService(secret, issuer string, expMinutes int) (*Service, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return &Service{secret: []byte(secret), issuer: issuer, expMinutes: expMinutes, now: time.Now}, nil
}

// Generate genera un token firmado para el usuario indicado.
func (s *Service) Generate(userID, username, userTypeID, userTypeRole string) (string, error) {
	now := s.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now.Add(-time.Second)),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.expMinutes) * time.Minute)),
		},
		UserID:       userID,
		Username:     username,
		UserTypeID:   userTypeID,
		UserTypeRole: userTypeRole,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Parse valida firma y expiración y devuelve los claims. Un token sin exp es inválido.
// Distingue ErrTokenExpired de ErrTokenInvalid; cualquier otro fallo es ErrTokenInvalid.
func (s *Service) Parse(tokenString string) (claims *Claims, err error) {
	// Un pánico del parser se reporta como token inválido.
	defer func() {
		if r := recover(); r != nil {
			claims, err = nil, fmt.Errorf("%w: %v", ErrTokenInvalid, r)
		}
	}()

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	c, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	return c, nil
}

// ValidateToken informa si el token es válido (firma + vigencia).
func (s *Service) ValidateToken(tokenString string) bool {
	_, err := s.Parse(tokenString)
	return err == nil
}

// ExtractUsername devuelve el subject/username del token.
func (s *Service) ExtractUsername(tokenString string) (string, error) {
	c, err := s.Parse(tokenString)
	if err != nil {
		return "", err
	}
	if c.Username != "" {
		return c.Username, nil
	}
	return c.Subject, nil
}

// ExtractUserTypeID devuelve el código del tipo de usuario.
func (s *Service) ExtractUserTypeID(tokenString string) (string, error) {
	c, err := s.Parse(tokenString)
	if err != nil {
		return "", err
	}
	return c.UserTypeID, nil
}

// ExtractUserTypeRole devuelve el nombre del rol del tipo de usuario (puede venir vacío).
func (s *Service) ExtractUserTypeRole(tokenString string) (string, error) {
	c, err := s.Parse(tokenString)
	if err != nil {
		return "", err
	}
	return c.UserTypeRole, nil
}

// ExpiresAt devuelve la expiración de un token válido.
func (s *Service) ExpiresAt(tokenString string) (time.Time, error) {
	c, err := s.Parse(tokenString)
	if err != nil {
		return time.Time{}, err
	}
	return c.ExpiresAtTime(), nil
}

// ExpiresAtTime devuelve la expiración del token; cero si no trae exp (claims sin validar).
func (c *Claims) ExpiresAtTime() time.Time {
	if c == nil || c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}
