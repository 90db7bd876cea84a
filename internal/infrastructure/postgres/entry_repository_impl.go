package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ymatsuda/coffee-journal/internal/domain/entity"
	"github.com/ymatsuda/coffee-journal/internal/domain/repository"
)

const entryColumns = `
	id, user_id, bean_name, origin, roast_level, shop, brew_method,
	made_by_user, grind_size, sourness, sweetness, bitterness, richness,
	flavor_notes, rating, memo, photo_urls, created_at`

type EntryRepository struct {
	pool *pgxpool.Pool
}

func NewEntryRepository(pool *pgxpool.Pool) *EntryRepository {
	return &EntryRepository{pool: pool}
}

func (r *EntryRepository) Create(ctx context.Context, e *entity.Entry) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO entries (
			user_id, bean_name, origin, roast_level, shop, brew_method,
			made_by_user, grind_size, sourness, sweetness, bitterness, richness,
			flavor_notes, rating, memo, photo_urls
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id, created_at
	`, e.UserID, e.BeanName, e.Origin, e.RoastLevel, e.Shop, e.BrewMethod,
		e.MadeByUser, e.GrindSize, e.Sourness, e.Sweetness, e.Bitterness, e.Richness,
		e.FlavorNote, e.Rating, e.Memo, e.PhotoURLs)

	return classify(row.Scan(&e.ID, &e.CreatedAt))
}

func (r *EntryRepository) ListByUser(ctx context.Context, userID string) ([]entity.Entry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+entryColumns+`
		FROM entries
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEntries(rows)
}

func (r *EntryRepository) RecentByUser(ctx context.Context, userID string, limit int) ([]entity.Entry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+entryColumns+`
		FROM entries
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEntries(rows)
}

func (r *EntryRepository) GetByID(ctx context.Context, userID, id string) (*entity.Entry, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+entryColumns+`
		FROM entries
		WHERE user_id = $1 AND id = $2
	`, userID, id)

	e := entity.Entry{}
	if err := scanEntry(row, &e); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

func scanEntries(rows pgx.Rows) ([]entity.Entry, error) {
	entries := []entity.Entry{}
	for rows.Next() {
		var e entity.Entry
		if err := scanEntry(rows, &e); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func scanEntry(row pgx.Row, e *entity.Entry) error {
	return row.Scan(
		&e.ID, &e.UserID, &e.BeanName, &e.Origin, &e.RoastLevel, &e.Shop, &e.BrewMethod,
		&e.MadeByUser, &e.GrindSize, &e.Sourness, &e.Sweetness, &e.Bitterness, &e.Richness,
		&e.FlavorNote, &e.Rating, &e.Memo, &e.PhotoURLs, &e.CreatedAt,
	)
}

var _ repository.EntryRepository = (*EntryRepository)(nil)
