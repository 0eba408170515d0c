package store

import (
	"context"
	"time"

	"danawise/internal/models"
)

type TransactionStore struct {
	db DB
}

func NewTransactionStore(db DB) *TransactionStore {
	return &TransactionStore{db: db}
}

type TransactionInput struct {
	ID              string
	UserID          string
	CategoryID      string
	BudgetAccountID *string
	Amount          int64
	Type            string
	Description     string
	Date            time.Time
}

// TransactionDetail joins a transaction with the names of its category and
// budget account for list and dashboard views.
type TransactionDetail struct {
	models.Transaction
	CategoryName *string `db:"category_name"`
	AccountName  *string `db:"account_name"`
	AccountType  *string `db:"account_type"`
}

// CategoryTotal is one bucket of the expense-by-category grouping.
type CategoryTotal struct {
	CategoryName *string `db:"category_name"`
	Total        int64   `db:"total"`
}

// SeriesRow is the minimal shape the time-series grouping needs.
type SeriesRow struct {
	Date   time.Time `db:"date"`
	Amount int64     `db:"amount"`
	Type   string    `db:"type"`
}

// RecentLine is the trimmed transaction shape embedded in insight prompts.
type RecentLine struct {
	Type        string `db:"type"`
	Amount      int64  `db:"amount"`
	Description string `db:"description"`
}

// GroundingRow is the shape fed into the chat system prompt.
type GroundingRow struct {
	Amount       int64     `db:"amount"`
	Type         string    `db:"type"`
	Date         time.Time `db:"date"`
	Description  string    `db:"description"`
	CategoryName string    `db:"category_name"`
}

func (s *TransactionStore) Create(ctx context.Context, tx Execer, input TransactionInput) error {
	query := `
		INSERT INTO transactions (id, user_id, category_id, budget_account_id, amount, type, description, date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := tx.ExecContext(ctx, query,
		input.ID, input.UserID, input.CategoryID, input.BudgetAccountID,
		input.Amount, input.Type, input.Description, input.Date,
	)
	return err
}

func (s *TransactionStore) ListByUser(ctx context.Context, userID string, limit, offset int) ([]TransactionDetail, error) {
	var rows []TransactionDetail
	err := s.db.SelectContext(ctx, &rows, `
		SELECT t.id, t.user_id, t.category_id, t.budget_account_id, t.amount, t.type,
		       t.description, t.date, t.created_at, t.updated_at,
		       c.name AS category_name,
		       a.name AS account_name,
		       a.type AS account_type
		FROM transactions t
		LEFT JOIN categories c ON c.id = t.category_id
		LEFT JOIN budget_accounts a ON a.id = t.budget_account_id
		WHERE t.user_id = $1
		ORDER BY t.date DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *TransactionStore) CountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := s.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM transactions WHERE user_id = $1`, userID)
	return count, err
}

func (s *TransactionStore) GetByIDAndUser(ctx context.Context, transactionID, userID string) (models.Transaction, error) {
	var row models.Transaction
	err := s.db.GetContext(ctx, &row, `
		SELECT id, user_id, category_id, budget_account_id, amount, type, description, date, created_at, updated_at
		FROM transactions
		WHERE id = $1 AND user_id = $2
	`, transactionID, userID)
	if err != nil {
		return models.Transaction{}, err
	}
	return row, nil
}

func (s *TransactionStore) Delete(ctx context.Context, transactionID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, transactionID)
	return err
}

// SumByType totals the user's transactions of one type, optionally filtered
// to a single budget account. Empty result sets sum to zero.
func (s *TransactionStore) SumByType(ctx context.Context, userID, txType, accountID string) (int64, error) {
	var total int64
	if accountID == "" {
		err := s.db.GetContext(ctx, &total, `
			SELECT COALESCE(SUM(amount), 0)
			FROM transactions
			WHERE user_id = $1 AND type = $2
		`, userID, txType)
		return total, err
	}
	err := s.db.GetContext(ctx, &total, `
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE user_id = $1 AND type = $2 AND budget_account_id = $3
	`, userID, txType, accountID)
	return total, err
}

func (s *TransactionStore) GroupExpenseByCategory(ctx context.Context, userID, accountID string) ([]CategoryTotal, error) {
	var rows []CategoryTotal
	query := `
		SELECT c.name AS category_name, SUM(t.amount) AS total
		FROM transactions t
		LEFT JOIN categories c ON c.id = t.category_id
		WHERE t.user_id = $1 AND t.type = 'EXPENSE'
	`
	args := []any{userID}
	if accountID != "" {
		query += ` AND t.budget_account_id = $2`
		args = append(args, accountID)
	}
	query += `
		GROUP BY c.name
		ORDER BY total DESC
	`
	err := s.db.SelectContext(ctx, &rows, query, args...)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *TransactionStore) ListSince(ctx context.Context, userID, accountID string, since time.Time) ([]SeriesRow, error) {
	var rows []SeriesRow
	query := `
		SELECT date, amount, type
		FROM transactions
		WHERE user_id = $1 AND date >= $2
	`
	args := []any{userID, since}
	if accountID != "" {
		query += ` AND budget_account_id = $3`
		args = append(args, accountID)
	}
	query += ` ORDER BY date ASC`
	err := s.db.SelectContext(ctx, &rows, query, args...)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *TransactionStore) RecentDetailed(ctx context.Context, userID string, limit int) ([]TransactionDetail, error) {
	var rows []TransactionDetail
	err := s.db.SelectContext(ctx, &rows, `
		SELECT t.id, t.user_id, t.category_id, t.budget_account_id, t.amount, t.type,
		       t.description, t.date, t.created_at, t.updated_at,
		       c.name AS category_name,
		       a.name AS account_name,
		       a.type AS account_type
		FROM transactions t
		LEFT JOIN categories c ON c.id = t.category_id
		LEFT JOIN budget_accounts a ON a.id = t.budget_account_id
		WHERE t.user_id = $1
		ORDER BY t.date DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *TransactionStore) Recent(ctx context.Context, userID string, limit int) ([]RecentLine, error) {
	var rows []RecentLine
	err := s.db.SelectContext(ctx, &rows, `
		SELECT type, amount, description
		FROM transactions
		WHERE user_id = $1
		ORDER BY date DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *TransactionStore) RecentWithCategory(ctx context.Context, userID string, limit int) ([]GroundingRow, error) {
	var rows []GroundingRow
	err := s.db.SelectContext(ctx, &rows, `
		SELECT t.amount, t.type, t.date, t.description,
		       COALESCE(c.name, '') AS category_name
		FROM transactions t
		LEFT JOIN categories c ON c.id = t.category_id
		WHERE t.user_id = $1
		ORDER BY t.date DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
