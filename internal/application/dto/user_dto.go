package dto

import "time"

// LoginRequest credenciales del personal.
type LoginRequest struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	Password string `json:"password" validate:"required"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	FullName     string    `json:"full_name"`
	UserTypeID   string    `json:"user_type_id"`
	UserTypeRole string    `json:"user_type_role"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// LoginResponse token JWT emitido y datos del usuario.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}
