package repository

import (
	"context"

	"github.com/lifedesk/backend/domain"
)

type CourseRepository interface {
	GetByID(ctx context.Context, userID, id string) (*domain.Course, error)
	List(ctx context.Context, userID, status string) ([]domain.Course, error)
	SearchByTitle(ctx context.Context, userID, fragment string, limit int) ([]domain.Course, error)
	Create(ctx context.Context, course *domain.Course) (*domain.Course, error)
	Update(ctx context.Context, course *domain.Course) error
	Delete(ctx context.Context, userID, id string) error
}

type LessonRepository interface {
	GetByID(ctx context.Context, userID, id string) (*domain.Lesson, error)
	// ListByCourse orders lessons by sort_order ascending.
	ListByCourse(ctx context.Context, userID, courseID string) ([]domain.Lesson, error)
	// MaxSortOrder returns the highest sort_order within a course, 0 when empty.
	MaxSortOrder(ctx context.Context, userID, courseID string) (int, error)
	Create(ctx context.Context, lesson *domain.Lesson) (*domain.Lesson, error)
	Update(ctx context.Context, lesson *domain.Lesson) error
	Delete(ctx context.Context, userID, id string) error
	DeleteByCourse(ctx context.Context, userID, courseID string) error
}
