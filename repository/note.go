package repository

import (
	"context"

	"github.com/lifedesk/backend/domain"
)

type NoteFilter struct {
	UserID string
	Folder string
	Limit  int
}

type NoteRepository interface {
	GetByID(ctx context.Context, userID, id string) (*domain.Note, error)
	// List orders pinned notes first, then by latest update.
	List(ctx context.Context, filter NoteFilter) ([]domain.Note, error)
	Create(ctx context.Context, note *domain.Note) (*domain.Note, error)
	Update(ctx context.Context, note *domain.Note) error
	Delete(ctx context.Context, userID, id string) error
}
