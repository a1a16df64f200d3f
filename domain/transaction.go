package domain

import "time"

// Transaction types.
const (
	TransactionIncome  = "income"
	TransactionExpense = "expense"
)

// Transaction is a single income or expense entry.
type Transaction struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Type        string    `json:"type"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category"`
	Description string    `json:"description,omitempty"`
	Date        string    `json:"date"` // YYYY-MM-DD, defaults to creation date
	Currency    string    `json:"currency"`
	ProjectID   *string   `json:"project_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ValidTransactionType reports whether t is income or expense.
func ValidTransactionType(t string) bool {
	return t == TransactionIncome || t == TransactionExpense
}
