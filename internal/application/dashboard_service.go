package application

import (
	"context"
	"time"

	"github.com/ymatsuda/coffee-journal/internal/aggregate"
	repo "github.com/ymatsuda/coffee-journal/internal/domain/repository"
)

// DashboardService fetches the full entry collection and reduces it to the
// dashboard statistics. Nothing is cached between requests; every render
// recomputes from a fresh fetch.
type DashboardService struct {
	Entries repo.EntryRepository

	// Now is swappable for tests; defaults to time.Now.
	Now func() time.Time
}

func (s *DashboardService) Summary(ctx context.Context, userID string) (aggregate.Summary, error) {
	entries, err := s.Entries.ListByUser(ctx, userID)
	if err != nil {
		return aggregate.Summary{}, err
	}
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	return aggregate.BuildSummary(entries, now), nil
}
