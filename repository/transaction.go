package repository

import (
	"context"

	"github.com/lifedesk/backend/domain"
)

type TransactionFilter struct {
	UserID   string
	Type     string
	Category string
	Limit    int
}

type TransactionRepository interface {
	GetByID(ctx context.Context, userID, id string) (*domain.Transaction, error)
	List(ctx context.Context, filter TransactionFilter) ([]domain.Transaction, error)
	Create(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error)
	Update(ctx context.Context, tx *domain.Transaction) error
	Delete(ctx context.Context, userID, id string) error
}
