package store

import (
	"context"

	"danawise/internal/models"
)

type AccountStore struct {
	db DB
}

func NewAccountStore(db DB) *AccountStore {
	return &AccountStore{db: db}
}

// AccountWithCount is an account row joined with its transaction count.
type AccountWithCount struct {
	models.BudgetAccount
	TransactionCount int64 `db:"transaction_count"`
}

type AccountInput struct {
	ID      string
	UserID  string
	Name    string
	Type    string
	Balance int64
	Color   *string
	Icon    *string
}

type AccountUpdate struct {
	Name     string
	Type     string
	Balance  int64
	Color    *string
	Icon     *string
	IsActive bool
}

func (s *AccountStore) Create(ctx context.Context, input AccountInput) error {
	query := `
		INSERT INTO budget_accounts (id, user_id, name, type, balance, color, icon)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(ctx, query,
		input.ID, input.UserID, input.Name, input.Type, input.Balance, input.Color, input.Icon,
	)
	return err
}

func (s *AccountStore) ListActiveByUser(ctx context.Context, userID string) ([]AccountWithCount, error) {
	var rows []AccountWithCount
	err := s.db.SelectContext(ctx, &rows, `
		SELECT a.id, a.user_id, a.name, a.type, a.balance, a.color, a.icon, a.is_active,
		       a.created_at, a.updated_at,
		       COUNT(t.id) AS transaction_count
		FROM budget_accounts a
		LEFT JOIN transactions t ON t.budget_account_id = a.id
		WHERE a.user_id = $1 AND a.is_active
		GROUP BY a.id
		ORDER BY a.created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *AccountStore) TopActiveByBalance(ctx context.Context, userID string, limit int) ([]models.BudgetAccount, error) {
	var rows []models.BudgetAccount
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, user_id, name, type, balance, color, icon, is_active, created_at, updated_at
		FROM budget_accounts
		WHERE user_id = $1 AND is_active
		ORDER BY balance DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *AccountStore) GetByIDAndUser(ctx context.Context, accountID, userID string) (models.BudgetAccount, error) {
	var row models.BudgetAccount
	err := s.db.GetContext(ctx, &row, `
		SELECT id, user_id, name, type, balance, color, icon, is_active, created_at, updated_at
		FROM budget_accounts
		WHERE id = $1 AND user_id = $2
	`, accountID, userID)
	if err != nil {
		return models.BudgetAccount{}, err
	}
	return row, nil
}

// GetActiveForUpdate locks an active owner-scoped account row for the
// duration of the surrounding transaction.
func (s *AccountStore) GetActiveForUpdate(ctx context.Context, tx Getter, accountID, userID string) (models.BudgetAccount, error) {
	var row models.BudgetAccount
	err := tx.GetContext(ctx, &row, `
		SELECT id, user_id, name, type, balance, color, icon, is_active, created_at, updated_at
		FROM budget_accounts
		WHERE id = $1 AND user_id = $2 AND is_active
		FOR UPDATE
	`, accountID, userID)
	if err != nil {
		return models.BudgetAccount{}, err
	}
	return row, nil
}

// ActiveNameExists reports whether another active account of the same user
// already carries the name. Inactive accounts do not block reuse.
func (s *AccountStore) ActiveNameExists(ctx context.Context, userID, name, excludeAccountID string) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists, `
		SELECT EXISTS(
			SELECT 1 FROM budget_accounts
			WHERE user_id = $1 AND name = $2 AND id <> $3 AND is_active
		)
	`, userID, name, excludeAccountID)
	return exists, err
}

func (s *AccountStore) Update(ctx context.Context, accountID string, update AccountUpdate) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE budget_accounts
		SET name = $1, type = $2, balance = $3, color = $4, icon = $5, is_active = $6, updated_at = NOW()
		WHERE id = $7
	`, update.Name, update.Type, update.Balance, update.Color, update.Icon, update.IsActive, accountID)
	return err
}

func (s *AccountStore) AdjustBalance(ctx context.Context, tx Execer, accountID string, delta int64) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE budget_accounts
		SET balance = balance + $1, updated_at = NOW()
		WHERE id = $2
	`, delta, accountID)
	return err
}

func (s *AccountStore) CountTransactions(ctx context.Context, accountID, userID string) (int64, error) {
	var count int64
	err := s.db.GetContext(ctx, &count, `
		SELECT COUNT(*)
		FROM transactions
		WHERE budget_account_id = $1 AND user_id = $2
	`, accountID, userID)
	return count, err
}

func (s *AccountStore) Deactivate(ctx context.Context, accountID string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE budget_accounts
		SET is_active = FALSE, updated_at = NOW()
		WHERE id = $1
	`, accountID)
	return err
}

func (s *AccountStore) Delete(ctx context.Context, accountID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM budget_accounts WHERE id = $1`, accountID)
	return err
}
