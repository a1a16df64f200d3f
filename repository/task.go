package repository

import (
	"context"

	"github.com/lifedesk/backend/domain"
)

type TaskFilter struct {
	UserID    string
	Status    string
	Priority  string
	ProjectID string
	Limit     int
}

type TaskRepository interface {
	GetByID(ctx context.Context, userID, id string) (*domain.Task, error)
	List(ctx context.Context, filter TaskFilter) ([]domain.Task, error)
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, userID, id string) error
}
