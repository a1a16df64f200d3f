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

type clientRepository struct {
	pool *pgxpool.Pool
}

// NewClientRepository returns a Postgres-backed implementation of ClientRepository.
func NewClientRepository(pool *pgxpool.Pool) repository.ClientRepository {
	return &clientRepository{pool: pool}
}

const clientColumns = `id, user_id, name, email, phone, company, status, notes, created_at, updated_at`

func (r *clientRepository) GetByID(ctx context.Context, userID, id string) (*domain.Client, error) {
	const query = `
	SELECT ` + clientColumns + `
	FROM clients
	WHERE id = $1 AND user_id = $2
	`
	return scanClient(r.pool.QueryRow(ctx, query, id, userID))
}

func (r *clientRepository) List(ctx context.Context, userID, status string) ([]domain.Client, error) {
	const query = `
	SELECT ` + clientColumns + `
	FROM clients
	WHERE user_id = $1 AND ($2 = '' OR status = $2)
	ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, userID, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []domain.Client
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, *client)
	}
	return clients, rows.Err()
}

func (r *clientRepository) Create(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	if client == nil {
		return nil, domain.ErrInvalidPayload
	}
	if client.ID == "" {
		client.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO clients (id, user_id, name, email, phone, company, status, notes)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING created_at, updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		client.ID,
		client.UserID,
		client.Name,
		client.Email,
		client.Phone,
		client.Company,
		client.Status,
		client.Notes,
	).Scan(&client.CreatedAt, &client.UpdatedAt); err != nil {
		return nil, err
	}
	return client, nil
}

func (r *clientRepository) Update(ctx context.Context, client *domain.Client) error {
	if client == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE clients
	SET name = $3,
		email = $4,
		phone = $5,
		company = $6,
		status = $7,
		notes = $8,
		updated_at = NOW()
	WHERE id = $1 AND user_id = $2
	RETURNING updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		client.ID,
		client.UserID,
		client.Name,
		client.Email,
		client.Phone,
		client.Company,
		client.Status,
		client.Notes,
	).Scan(&client.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrClientNotFound
		}
		return err
	}
	return nil
}

func (r *clientRepository) Delete(ctx context.Context, userID, id string) error {
	const query = `DELETE FROM clients WHERE id = $1 AND user_id = $2`
	tag, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}

func scanClient(row pgx.Row) (*domain.Client, error) {
	var client domain.Client
	if err := row.Scan(
		&client.ID,
		&client.UserID,
		&client.Name,
		&client.Email,
		&client.Phone,
		&client.Company,
		&client.Status,
		&client.Notes,
		&client.CreatedAt,
		&client.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrClientNotFound
		}
		return nil, err
	}
	return &client, nil
}
