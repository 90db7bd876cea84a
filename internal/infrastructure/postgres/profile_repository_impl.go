package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ymatsuda/coffee-journal/internal/domain/entity"
	"github.com/ymatsuda/coffee-journal/internal/domain/repository"
)

type ProfileRepository struct {
	pool *pgxpool.Pool
}

func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID string) (*entity.Profile, error) {
	p := &entity.Profile{}
	row := r.pool.QueryRow(ctx, `
		SELECT user_id, nickname, bio, favorite_types, avatar_url, created_at, updated_at
		FROM profiles
		WHERE user_id = $1
	`, userID)
	if err := row.Scan(&p.UserID, &p.Nickname, &p.Bio, &p.FavoriteTypes, &p.AvatarURL, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *ProfileRepository) Update(ctx context.Context, p *entity.Profile) error {
	p.UpdatedAt = time.Now()
	res, err := r.pool.Exec(ctx, `
		UPDATE profiles
		SET nickname = $1, bio = $2, favorite_types = $3, avatar_url = $4, updated_at = $5
		WHERE user_id = $6
	`, p.Nickname, p.Bio, p.FavoriteTypes, p.AvatarURL, p.UpdatedAt, p.UserID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

var _ repository.ProfileRepository = (*ProfileRepository)(nil)
