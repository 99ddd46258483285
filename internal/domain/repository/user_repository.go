package repository

import (
	"context"

	"github.com/jhoicas/hotel-pms-api/internal/domain/entity"
)

// UserRepository puerto de persistencia del personal.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
}
