package assistant

import (
	"context"
	"fmt"

	"github.com/lifedesk/backend/domain"
	"github.com/lifedesk/backend/repository"
)

const defaultCurrency = "USD"

func (e *Executor) manageTransactions(ctx context.Context, userID string, args map[string]interface{}) domain.ToolResult {
	switch strArg(args, "action") {
	case "create":
		return e.createTransaction(ctx, userID, args)
	case "update":
		return e.updateTransaction(ctx, userID, args)
	case "delete":
		return e.deleteTransaction(ctx, userID, args)
	case "list":
		return e.listTransactions(ctx, userID, args)
	default:
		return fail("Unknown action for manage_transactions. Use create, update, delete or list.")
	}
}

func (e *Executor) createTransaction(ctx context.Context, userID string, args map[string]interface{}) domain.ToolResult {
	txType := strArg(args, "type")
	if !domain.ValidTransactionType(txType) {
		return fail("Transaction type is required and must be income or expense.")
	}

	amount, supplied := floatArg(args, "amount")
	if !supplied {
		return fail("Transaction amount is required.")
	}
	if amount <= 0 {
		return fail("Transaction amount must be positive.")
	}

	category := strArg(args, "category")
	if category == "" {
		return fail("Transaction category is required.")
	}

	date := todayStamp()
	if parsed, ok := optionalDate(args, "date"); !ok {
		return fail("Transaction date must be in YYYY-MM-DD format.")
	} else if parsed != nil {
		date = parsed.Format("2006-01-02")
	}

	currency := strArg(args, "currency")
	if currency == "" {
		currency = defaultCurrency
	}

	tx := &domain.Transaction{
		UserID:      userID,
		Type:        txType,
		Amount:      amount,
		Category:    category,
		Description: strArg(args, "description"),
		Date:        date,
		Currency:    currency,
	}
	if projectID := strArg(args, "project_id"); projectID != "" {
		if _, err := e.repos.Projects.GetByID(ctx, userID, projectID); err != nil {
			return fail("Project not found. Resolve the project with search_project first.")
		}
		tx.ProjectID = &projectID
	}

	created, err := e.repos.Transactions.Create(ctx, tx)
	if err != nil {
		return storeFail(err, "Failed to record the transaction.")
	}
	return succeed(fmt.Sprintf("Recorded %s of %.2f %s in %s.", created.Type, created.Amount, created.Currency, created.Category), created)
}

func (e *Executor) updateTransaction(ctx context.Context, userID string, args map[string]interface{}) domain.ToolResult {
	id := strArg(args, "transaction_id")
	if id == "" {
		return fail("transaction_id is required to update a transaction.")
	}

	tx, err := e.repos.Transactions.GetByID(ctx, userID, id)
	if err != nil {
		return storeFail(err, "Failed to load the transaction.")
	}

	if hasArg(args, "type") {
		txType := strArg(args, "type")
		if !domain.ValidTransactionType(txType) {
			return fail("Transaction type must be income or expense.")
		}
		tx.Type = txType
	}
	if amount, supplied := floatArg(args, "amount"); supplied {
		if amount <= 0 {
			return fail("Transaction amount must be positive.")
		}
		tx.Amount = amount
	}
	if hasArg(args, "category") {
		category := strArg(args, "category")
		if category == "" {
			return fail("Transaction category must not be empty.")
		}
		tx.Category = category
	}
	if hasArg(args, "description") {
		tx.Description = strArg(args, "description")
	}
	if hasArg(args, "date") {
		parsed, ok := optionalDate(args, "date")
		if !ok {
			return fail("Transaction date must be in YYYY-MM-DD format.")
		}
		if parsed != nil {
			tx.Date = parsed.Format("2006-01-02")
		}
	}
	if hasArg(args, "currency") {
		tx.Currency = strArg(args, "currency")
	}

	if err := e.repos.Transactions.Update(ctx, tx); err != nil {
		return storeFail(err, "Failed to update the transaction.")
	}
	return succeed("Transaction updated.", tx)
}

func (e *Executor) deleteTransaction(ctx context.Context, userID string, args map[string]interface{}) domain.ToolResult {
	id := strArg(args, "transaction_id")
	if id == "" {
		return fail("transaction_id is required to delete a transaction.")
	}
	if err := e.repos.Transactions.Delete(ctx, userID, id); err != nil {
		return storeFail(err, "Failed to delete the transaction.")
	}
	return succeed("Transaction deleted.", nil)
}

func (e *Executor) listTransactions(ctx context.Context, userID string, args map[string]interface{}) domain.ToolResult {
	txs, err := e.repos.Transactions.List(ctx, repository.TransactionFilter{
		UserID:   userID,
		Type:     strArg(args, "type"),
		Category: strArg(args, "category"),
		Limit:    20,
	})
	if err != nil {
		return fail("Failed to list transactions.")
	}
	if len(txs) == 0 {
		return succeed("No transactions found.", txs)
	}

	var income, expense float64
	for _, tx := range txs {
		switch tx.Type {
		case domain.TransactionIncome:
			income += tx.Amount
		case domain.TransactionExpense:
			expense += tx.Amount
		}
	}
	return succeed(
		fmt.Sprintf("Found %d transaction(s): %.2f income, %.2f expense.", len(txs), income, expense),
		map[string]interface{}{"transactions": txs, "income_total": income, "expense_total": expense},
	)
}
