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

type transactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository returns a Postgres-backed implementation of TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) repository.TransactionRepository {
	return &transactionRepository{pool: pool}
}

const transactionColumns = `id, user_id, type, amount, category, description, date, currency, project_id, created_at, updated_at`

func (r *transactionRepository) GetByID(ctx context.Context, userID, id string) (*domain.Transaction, error) {
	const query = `
	SELECT ` + transactionColumns + `
	FROM transactions
	WHERE id = $1 AND user_id = $2
	`
	return scanTransaction(r.pool.QueryRow(ctx, query, id, userID))
}

func (r *transactionRepository) List(ctx context.Context, filter repository.TransactionFilter) ([]domain.Transaction, error) {
	const query = `
	SELECT ` + transactionColumns + `
	FROM transactions
	WHERE user_id = $1
	  AND ($2 = '' OR type = $2)
	  AND ($3 = '' OR category = $3)
	ORDER BY date DESC, created_at DESC
	LIMIT $4
	`
	rows, err := r.pool.Query(ctx, query,
		filter.UserID,
		filter.Type,
		filter.Category,
		clampLimit(filter.Limit, 20),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []domain.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txs = append(txs, *tx)
	}
	return txs, rows.Err()
}

func (r *transactionRepository) Create(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
	if tx == nil {
		return nil, domain.ErrInvalidPayload
	}
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO transactions (id, user_id, type, amount, category, description, date, currency, project_id)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	RETURNING created_at, updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		tx.ID,
		tx.UserID,
		tx.Type,
		tx.Amount,
		tx.Category,
		tx.Description,
		tx.Date,
		tx.Currency,
		tx.ProjectID,
	).Scan(&tx.CreatedAt, &tx.UpdatedAt); err != nil {
		return nil, err
	}
	return tx, nil
}

func (r *transactionRepository) Update(ctx context.Context, tx *domain.Transaction) error {
	if tx == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE transactions
	SET type = $3,
		amount = $4,
		category = $5,
		description = $6,
		date = $7,
		currency = $8,
		project_id = $9,
		updated_at = NOW()
	WHERE id = $1 AND user_id = $2
	RETURNING updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		tx.ID,
		tx.UserID,
		tx.Type,
		tx.Amount,
		tx.Category,
		tx.Description,
		tx.Date,
		tx.Currency,
		tx.ProjectID,
	).Scan(&tx.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrTransactionNotFound
		}
		return err
	}
	return nil
}

func (r *transactionRepository) Delete(ctx context.Context, userID, id string) error {
	const query = `DELETE FROM transactions WHERE id = $1 AND user_id = $2`
	tag, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var tx domain.Transaction
	if err := row.Scan(
		&tx.ID,
		&tx.UserID,
		&tx.Type,
		&tx.Amount,
		&tx.Category,
		&tx.Description,
		&tx.Date,
		&tx.Currency,
		&tx.ProjectID,
		&tx.CreatedAt,
		&tx.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}
	return &tx, nil
}
