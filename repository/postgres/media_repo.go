package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lifedesk/backend/domain"
	"github.com/lifedesk/backend/repository"
)

type movieSeriesRepository struct {
	pool *pgxpool.Pool
}

// NewMovieSeriesRepository returns a Postgres-backed implementation of MovieSeriesRepository.
func NewMovieSeriesRepository(pool *pgxpool.Pool) repository.MovieSeriesRepository {
	return &movieSeriesRepository{pool: pool}
}

const movieSeriesColumns = `id, user_id, name, type, status, description, created_at, updated_at`

func (r *movieSeriesRepository) GetByID(ctx context.Context, userID, id string) (*domain.MovieSeries, error) {
	const query = `
	SELECT ` + movieSeriesColumns + `
	FROM movies_series
	WHERE id = $1 AND user_id = $2
	`
	return scanMovieSeries(r.pool.QueryRow(ctx, query, id, userID))
}

func (r *movieSeriesRepository) List(ctx context.Context, filter repository.MediaFilter) ([]domain.MovieSeries, error) {
	const query = `
	SELECT ` + movieSeriesColumns + `
	FROM movies_series
	WHERE user_id = $1
	  AND ($2 = '' OR type = $2)
	  AND ($3 = '' OR status = $3)
	ORDER BY created_at DESC
	LIMIT $4
	`
	rows, err := r.pool.Query(ctx, query,
		filter.UserID,
		filter.Type,
		filter.Status,
		clampLimit(filter.Limit, 100),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.MovieSeries
	for rows.Next() {
		item, err := scanMovieSeries(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func (r *movieSeriesRepository) Create(ctx context.Context, item *domain.MovieSeries) (*domain.MovieSeries, error) {
	if item == nil {
		return nil, domain.ErrInvalidPayload
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO movies_series (id, user_id, name, type, status, description)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING created_at, updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		item.ID,
		item.UserID,
		item.Name,
		item.Type,
		item.Status,
		item.Description,
	).Scan(&item.CreatedAt, &item.UpdatedAt); err != nil {
		return nil, err
	}
	return item, nil
}

func (r *movieSeriesRepository) Update(ctx context.Context, item *domain.MovieSeries) error {
	if item == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE movies_series
	SET name = $3,
		type = $4,
		status = $5,
		description = $6,
		updated_at = NOW()
	WHERE id = $1 AND user_id = $2
	RETURNING updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		item.ID,
		item.UserID,
		item.Name,
		item.Type,
		item.Status,
		item.Description,
	).Scan(&item.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrMediaNotFound
		}
		return err
	}
	return nil
}

func (r *movieSeriesRepository) Delete(ctx context.Context, userID, id string) error {
	const query = `DELETE FROM movies_series WHERE id = $1 AND user_id = $2`
	tag, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMediaNotFound
	}
	return nil
}

func scanMovieSeries(row pgx.Row) (*domain.MovieSeries, error) {
	var item domain.MovieSeries
	if err := row.Scan(
		&item.ID,
		&item.UserID,
		&item.Name,
		&item.Type,
		&item.Status,
		&item.Description,
		&item.CreatedAt,
		&item.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMediaNotFound
		}
		return nil, err
	}
	return &item, nil
}

type bookPodcastRepository struct {
	pool *pgxpool.Pool
}

// NewBookPodcastRepository returns a Postgres-backed implementation of BookPodcastRepository.
func NewBookPodcastRepository(pool *pgxpool.Pool) repository.BookPodcastRepository {
	return &bookPodcastRepository{pool: pool}
}

const bookPodcastColumns = `id, user_id, name, type, status, url, created_at, updated_at`

func (r *bookPodcastRepository) GetByID(ctx context.Context, userID, id string) (*domain.BookPodcast, error) {
	const query = `
	SELECT ` + bookPodcastColumns + `
	FROM books_podcasts
	WHERE id = $1 AND user_id = $2
	`
	return scanBookPodcast(r.pool.QueryRow(ctx, query, id, userID))
}

func (r *bookPodcastRepository) List(ctx context.Context, filter repository.MediaFilter) ([]domain.BookPodcast, error) {
	const query = `
	SELECT ` + bookPodcastColumns + `
	FROM books_podcasts
	WHERE user_id = $1
	  AND ($2 = '' OR type = $2)
	  AND ($3 = '' OR status = $3)
	ORDER BY created_at DESC
	LIMIT $4
	`
	rows, err := r.pool.Query(ctx, query,
		filter.UserID,
		filter.Type,
		filter.Status,
		clampLimit(filter.Limit, 100),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.BookPodcast
	for rows.Next() {
		item, err := scanBookPodcast(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func (r *bookPodcastRepository) Create(ctx context.Context, item *domain.BookPodcast) (*domain.BookPodcast, error) {
	if item == nil {
		return nil, domain.ErrInvalidPayload
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO books_podcasts (id, user_id, name, type, status, url)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING created_at, updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		item.ID,
		item.UserID,
		item.Name,
		item.Type,
		item.Status,
		item.URL,
	).Scan(&item.CreatedAt, &item.UpdatedAt); err != nil {
		return nil, err
	}
	return item, nil
}

func (r *bookPodcastRepository) Update(ctx context.Context, item *domain.BookPodcast) error {
	if item == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE books_podcasts
	SET name = $3,
		type = $4,
		status = $5,
		url = $6,
		updated_at = NOW()
	WHERE id = $1 AND user_id = $2
	RETURNING updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		item.ID,
		item.UserID,
		item.Name,
		item.Type,
		item.Status,
		item.URL,
	).Scan(&item.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrMediaNotFound
		}
		return err
	}
	return nil
}

func (r *bookPodcastRepository) Delete(ctx context.Context, userID, id string) error {
	const query = `DELETE FROM books_podcasts WHERE id = $1 AND user_id = $2`
	tag, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMediaNotFound
	}
	return nil
}

func scanBookPodcast(row pgx.Row) (*domain.BookPodcast, error) {
	var item domain.BookPodcast
	if err := row.Scan(
		&item.ID,
		&item.UserID,
		&item.Name,
		&item.Type,
		&item.Status,
		&item.URL,
		&item.CreatedAt,
		&item.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMediaNotFound
		}
		return nil, err
	}
	return &item, nil
}
