package repository

import (
	"context"

	"github.com/ymatsuda/coffee-journal/internal/domain/entity"
)

// EntryRepository defines tasting-entry persistence operations.
// All reads are owner-scoped: a user can only ever see their own entries.
type EntryRepository interface {
	Create(ctx context.Context, e *entity.Entry) error
	// ListByUser returns the full base set ordered by creation time descending.
	ListByUser(ctx context.Context, userID string) ([]entity.Entry, error)
	RecentByUser(ctx context.Context, userID string, limit int) ([]entity.Entry, error)
	GetByID(ctx context.Context, userID, id string) (*entity.Entry, error)
}
