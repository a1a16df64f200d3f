package repository

import (
	"context"

	"github.com/lifedesk/backend/domain"
)

type ProjectFilter struct {
	UserID   string
	Status   string
	Priority string
	Category string
	Limit    int
}

type ProjectRepository interface {
	GetByID(ctx context.Context, userID, id string) (*domain.Project, error)
	List(ctx context.Context, filter ProjectFilter) ([]domain.Project, error)
	SearchByTitle(ctx context.Context, userID, fragment string, limit int) ([]domain.Project, error)
	Create(ctx context.Context, project *domain.Project) (*domain.Project, error)
	Update(ctx context.Context, project *domain.Project) error
	Delete(ctx context.Context, userID, id string) error
}
