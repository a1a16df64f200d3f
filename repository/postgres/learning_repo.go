package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lifedesk/backend/domain"
	"github.com/lifedesk/backend/repository"
)

type courseRepository struct {
	pool *pgxpool.Pool
}

// NewCourseRepository returns a Postgres-backed implementation of CourseRepository.
func NewCourseRepository(pool *pgxpool.Pool) repository.CourseRepository {
	return &courseRepository{pool: pool}
}

const courseColumns = `id, user_id, title, platform, instructor, status, notes, target_date, created_at, updated_at`

func (r *courseRepository) GetByID(ctx context.Context, userID, id string) (*domain.Course, error) {
	const query = `
	SELECT ` + courseColumns + `
	FROM courses
	WHERE id = $1 AND user_id = $2
	`
	return scanCourse(r.pool.QueryRow(ctx, query, id, userID))
}

func (r *courseRepository) List(ctx context.Context, userID, status string) ([]domain.Course, error) {
	const query = `
	SELECT ` + courseColumns + `
	FROM courses
	WHERE user_id = $1 AND ($2 = '' OR status = $2)
	ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, userID, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectCourses(rows)
}

func (r *courseRepository) SearchByTitle(ctx context.Context, userID, fragment string, limit int) ([]domain.Course, error) {
	const query = `
	SELECT ` + courseColumns + `
	FROM courses
	WHERE user_id = $1 AND title ILIKE '%' || $2 || '%'
	ORDER BY created_at DESC
	LIMIT $3
	`
	rows, err := r.pool.Query(ctx, query, userID, fragment, clampLimit(limit, 5))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectCourses(rows)
}

func (r *courseRepository) Create(ctx context.Context, course *domain.Course) (*domain.Course, error) {
	if course == nil {
		return nil, domain.ErrInvalidPayload
	}
	if course.ID == "" {
		course.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO courses (id, user_id, title, platform, instructor, status, notes, target_date)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING created_at, updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		course.ID,
		course.UserID,
		course.Title,
		course.Platform,
		course.Instructor,
		course.Status,
		course.Notes,
		nullTime(course.TargetDate),
	).Scan(&course.CreatedAt, &course.UpdatedAt); err != nil {
		return nil, err
	}
	return course, nil
}

func (r *courseRepository) Update(ctx context.Context, course *domain.Course) error {
	if course == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE courses
	SET title = $3,
		platform = $4,
		instructor = $5,
		status = $6,
		notes = $7,
		target_date = $8,
		updated_at = NOW()
	WHERE id = $1 AND user_id = $2
	RETURNING updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		course.ID,
		course.UserID,
		course.Title,
		course.Platform,
		course.Instructor,
		course.Status,
		course.Notes,
		nullTime(course.TargetDate),
	).Scan(&course.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrCourseNotFound
		}
		return err
	}
	return nil
}

func (r *courseRepository) Delete(ctx context.Context, userID, id string) error {
	const query = `DELETE FROM courses WHERE id = $1 AND user_id = $2`
	tag, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCourseNotFound
	}
	return nil
}

func collectCourses(rows pgx.Rows) ([]domain.Course, error) {
	var courses []domain.Course
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, *course)
	}
	return courses, rows.Err()
}

func scanCourse(row pgx.Row) (*domain.Course, error) {
	var (
		course domain.Course
		target *time.Time
	)
	if err := row.Scan(
		&course.ID,
		&course.UserID,
		&course.Title,
		&course.Platform,
		&course.Instructor,
		&course.Status,
		&course.Notes,
		&target,
		&course.CreatedAt,
		&course.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, err
	}
	course.TargetDate = target
	return &course, nil
}

type lessonRepository struct {
	pool *pgxpool.Pool
}

// NewLessonRepository returns a Postgres-backed implementation of LessonRepository.
func NewLessonRepository(pool *pgxpool.Pool) repository.LessonRepository {
	return &lessonRepository{pool: pool}
}

const lessonColumns = `id, user_id, course_id, title, description, duration_minutes, section, sort_order, is_completed, completed_at, created_at, updated_at`

func (r *lessonRepository) GetByID(ctx context.Context, userID, id string) (*domain.Lesson, error) {
	const query = `
	SELECT ` + lessonColumns + `
	FROM lessons
	WHERE id = $1 AND user_id = $2
	`
	return scanLesson(r.pool.QueryRow(ctx, query, id, userID))
}

func (r *lessonRepository) ListByCourse(ctx context.Context, userID, courseID string) ([]domain.Lesson, error) {
	const query = `
	SELECT ` + lessonColumns + `
	FROM lessons
	WHERE user_id = $1 AND course_id = $2
	ORDER BY sort_order ASC
	`
	rows, err := r.pool.Query(ctx, query, userID, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lessons []domain.Lesson
	for rows.Next() {
		lesson, err := scanLesson(rows)
		if err != nil {
			return nil, err
		}
		lessons = append(lessons, *lesson)
	}
	return lessons, rows.Err()
}

func (r *lessonRepository) MaxSortOrder(ctx context.Context, userID, courseID string) (int, error) {
	const query = `
	SELECT COALESCE(MAX(sort_order), 0)
	FROM lessons
	WHERE user_id = $1 AND course_id = $2
	`
	var max int
	if err := r.pool.QueryRow(ctx, query, userID, courseID).Scan(&max); err != nil {
		return 0, err
	}
	return max, nil
}

func (r *lessonRepository) Create(ctx context.Context, lesson *domain.Lesson) (*domain.Lesson, error) {
	if lesson == nil {
		return nil, domain.ErrInvalidPayload
	}
	if lesson.ID == "" {
		lesson.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO lessons (id, user_id, course_id, title, description, duration_minutes, section, sort_order, is_completed, completed_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	RETURNING created_at, updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		lesson.ID,
		lesson.UserID,
		lesson.CourseID,
		lesson.Title,
		lesson.Description,
		lesson.DurationMinutes,
		lesson.Section,
		lesson.SortOrder,
		lesson.IsCompleted,
		nullTime(lesson.CompletedAt),
	).Scan(&lesson.CreatedAt, &lesson.UpdatedAt); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (r *lessonRepository) Update(ctx context.Context, lesson *domain.Lesson) error {
	if lesson == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE lessons
	SET title = $3,
		description = $4,
		duration_minutes = $5,
		section = $6,
		sort_order = $7,
		is_completed = $8,
		completed_at = $9,
		updated_at = NOW()
	WHERE id = $1 AND user_id = $2
	RETURNING updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		lesson.ID,
		lesson.UserID,
		lesson.Title,
		lesson.Description,
		lesson.DurationMinutes,
		lesson.Section,
		lesson.SortOrder,
		lesson.IsCompleted,
		nullTime(lesson.CompletedAt),
	).Scan(&lesson.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrLessonNotFound
		}
		return err
	}
	return nil
}

func (r *lessonRepository) Delete(ctx context.Context, userID, id string) error {
	const query = `DELETE FROM lessons WHERE id = $1 AND user_id = $2`
	tag, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrLessonNotFound
	}
	return nil
}

func (r *lessonRepository) DeleteByCourse(ctx context.Context, userID, courseID string) error {
	const query = `DELETE FROM lessons WHERE user_id = $1 AND course_id = $2`
	_, err := r.pool.Exec(ctx, query, userID, courseID)
	return err
}

func scanLesson(row pgx.Row) (*domain.Lesson, error) {
	var (
		lesson    domain.Lesson
		completed *time.Time
	)
	if err := row.Scan(
		&lesson.ID,
		&lesson.UserID,
		&lesson.CourseID,
		&lesson.Title,
		&lesson.Description,
		&lesson.DurationMinutes,
		&lesson.Section,
		&lesson.SortOrder,
		&lesson.IsCompleted,
		&completed,
		&lesson.CreatedAt,
		&lesson.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrLessonNotFound
		}
		return nil, err
	}
	lesson.CompletedAt = completed
	return &lesson, nil
}
