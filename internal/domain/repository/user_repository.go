package repository

import (
	"context"

	"github.com/ymatsuda/coffee-journal/internal/domain/entity"
)

// UserRepository defines user-identity persistence operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	SetVerified(ctx context.Context, id string) error
}
