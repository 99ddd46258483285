package entity

import "time"

// User representa un usuario del personal del hotel.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	FullName     string
	UserTypeID   string // código de rol: MGR, CSH, RCP, ADM, HKS
	UserTypeRole string // nombre del tipo de usuario tal como lo ve el personal
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
