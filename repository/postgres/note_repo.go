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

type noteRepository struct {
	pool *pgxpool.Pool
}

// NewNoteRepository returns a Postgres-backed implementation of NoteRepository.
func NewNoteRepository(pool *pgxpool.Pool) repository.NoteRepository {
	return &noteRepository{pool: pool}
}

const noteColumns = `id, user_id, title, content, folder, is_pinned, created_at, updated_at`

func (r *noteRepository) GetByID(ctx context.Context, userID, id string) (*domain.Note, error) {
	const query = `
	SELECT ` + noteColumns + `
	FROM notes
	WHERE id = $1 AND user_id = $2
	`
	return scanNote(r.pool.QueryRow(ctx, query, id, userID))
}

func (r *noteRepository) List(ctx context.Context, filter repository.NoteFilter) ([]domain.Note, error) {
	const query = `
	SELECT ` + noteColumns + `
	FROM notes
	WHERE user_id = $1
	  AND ($2 = '' OR folder = $2)
	ORDER BY is_pinned DESC, updated_at DESC
	LIMIT $3
	`
	rows, err := r.pool.Query(ctx, query, filter.UserID, filter.Folder, clampLimit(filter.Limit, 100))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []domain.Note
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, *note)
	}
	return notes, rows.Err()
}

func (r *noteRepository) Create(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	if note == nil {
		return nil, domain.ErrInvalidPayload
	}
	if note.ID == "" {
		note.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO notes (id, user_id, title, content, folder, is_pinned)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING created_at, updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		note.ID,
		note.UserID,
		note.Title,
		note.Content,
		note.Folder,
		note.IsPinned,
	).Scan(&note.CreatedAt, &note.UpdatedAt); err != nil {
		return nil, err
	}
	return note, nil
}

func (r *noteRepository) Update(ctx context.Context, note *domain.Note) error {
	if note == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE notes
	SET title = $3,
		content = $4,
		folder = $5,
		is_pinned = $6,
		updated_at = NOW()
	WHERE id = $1 AND user_id = $2
	RETURNING updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		note.ID,
		note.UserID,
		note.Title,
		note.Content,
		note.Folder,
		note.IsPinned,
	).Scan(&note.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNoteNotFound
		}
		return err
	}
	return nil
}

func (r *noteRepository) Delete(ctx context.Context, userID, id string) error {
	const query = `DELETE FROM notes WHERE id = $1 AND user_id = $2`
	tag, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNoteNotFound
	}
	return nil
}

func scanNote(row pgx.Row) (*domain.Note, error) {
	var note domain.Note
	if err := row.Scan(
		&note.ID,
		&note.UserID,
		&note.Title,
		&note.Content,
		&note.Folder,
		&note.IsPinned,
		&note.CreatedAt,
		&note.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNoteNotFound
		}
		return nil, err
	}
	return &note, nil
}
