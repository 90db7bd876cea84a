package repository

import (
	"context"

	"github.com/ymatsuda/coffee-journal/internal/domain/entity"
)

// ProfileRepository defines profile persistence operations. Profile rows
// are created by a database trigger on user registration, so there is no
// Create here.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*entity.Profile, error)
	Update(ctx context.Context, p *entity.Profile) error
}
