package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/hotel-pms-api/internal/application/dto"
	"github.com/jhoicas/hotel-pms-api/internal/domain"
	"github.com/jhoicas/hotel-pms-api/internal/domain/entity"
	"github.com/jhoicas/hotel-pms-api/internal/domain/repository"
	"github.com/jhoicas/hotel-pms-api/pkg/jwt"
)

// StatusActive estado de un usuario habilitado para iniciar sesión.
const StatusActive = "active"

// AuthUseCase casos de uso de autenticación: login y logout.
type AuthUseCase struct {
	userRepo  repository.UserRepository
	tokens    TokenService
	blacklist TokenBlacklist
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, tokens TokenService, blacklist TokenBlacklist) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, tokens: tokens, blacklist: blacklist}
}

// Login verifica usuario/password y emite un JWT con los claims de tipo de usuario.
// Usuario inexistente y password incorrecta devuelven el mismo ErrUnauthorized.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != StatusActive {
		return nil, domain.ErrForbidden
	}
	token, err := uc.tokens.Generate(user.ID, user.Username, user.UserTypeID, user.UserTypeRole)
	if err != nil {
		return nil, fmt.Errorf("auth: generar token: %w", err)
	}
	exp, err := uc.tokens.ExpiresAt(token)
	if err != nil {
		return nil, fmt.Errorf("auth: leer expiración: %w", err)
	}
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: exp,
		User:      *ToUserResponse(user),
	}, nil
}

// Logout revoca el token hasta su expiración. Un token ya expirado no requiere registro.
func (uc *AuthUseCase) Logout(ctx context.Context, token string) error {
	if token == "" {
		return domain.ErrUnauthorized
	}
	exp, err := uc.tokens.ExpiresAt(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil
		}
		return domain.ErrUnauthorized
	}
	if err := uc.blacklist.Blacklist(ctx, token, exp); err != nil {
		return fmt.Errorf("auth: registrar token revocado: %w", err)
	}
	return nil
}

// HashPassword genera el hash bcrypt de una password del personal.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// ToUserResponse convierte la entidad a DTO (sin hash).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		FullName:     u.FullName,
		UserTypeID:   u.UserTypeID,
		UserTypeRole: u.UserTypeRole,
		Status:       u.Status,
		CreatedAt:    u.CreatedAt,
	}
}
