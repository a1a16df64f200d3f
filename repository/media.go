package repository

import (
	"context"

	"github.com/lifedesk/backend/domain"
)

type MediaFilter struct {
	UserID string
	Type   string
	Status string
	Limit  int
}

type MovieSeriesRepository interface {
	GetByID(ctx context.Context, userID, id string) (*domain.MovieSeries, error)
	List(ctx context.Context, filter MediaFilter) ([]domain.MovieSeries, error)
	Create(ctx context.Context, item *domain.MovieSeries) (*domain.MovieSeries, error)
	Update(ctx context.Context, item *domain.MovieSeries) error
	Delete(ctx context.Context, userID, id string) error
}

type BookPodcastRepository interface {
	GetByID(ctx context.Context, userID, id string) (*domain.BookPodcast, error)
	List(ctx context.Context, filter MediaFilter) ([]domain.BookPodcast, error)
	Create(ctx context.Context, item *domain.BookPodcast) (*domain.BookPodcast, error)
	Update(ctx context.Context, item *domain.BookPodcast) error
	Delete(ctx context.Context, userID, id string) error
}
