package repository

import (
	"context"

	"github.com/lifedesk/backend/domain"
)

type HabitRepository interface {
	GetByID(ctx context.Context, userID, id string) (*domain.Habit, error)
	List(ctx context.Context, userID string) ([]domain.Habit, error)
	Create(ctx context.Context, habit *domain.Habit) (*domain.Habit, error)
	Update(ctx context.Context, habit *domain.Habit) error
	Delete(ctx context.Context, userID, id string) error

	// GetCompletion returns the completion row for (habit, date),
	// or (nil, nil) when no such row exists.
	GetCompletion(ctx context.Context, userID, habitID, date string) (*domain.HabitCompletion, error)
	CreateCompletion(ctx context.Context, completion *domain.HabitCompletion) (*domain.HabitCompletion, error)
	DeleteCompletion(ctx context.Context, userID, habitID, date string) error
	ListCompletions(ctx context.Context, userID, date string) ([]domain.HabitCompletion, error)
}
