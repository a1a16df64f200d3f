package repository

import (
	"context"

	"github.com/lifedesk/backend/domain"
)

type ClientRepository interface {
	GetByID(ctx context.Context, userID, id string) (*domain.Client, error)
	List(ctx context.Context, userID, status string) ([]domain.Client, error)
	Create(ctx context.Context, client *domain.Client) (*domain.Client, error)
	Update(ctx context.Context, client *domain.Client) error
	Delete(ctx context.Context, userID, id string) error
}
