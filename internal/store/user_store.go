package store

import (
	"context"

	"danawise/internal/models"
)

type UserStore struct {
	db DB
}

func NewUserStore(db DB) *UserStore {
	return &UserStore{db: db}
}

// UserCounts carries the per-entity totals shown on the profile page.
type UserCounts struct {
	Transactions   int64 `db:"transactions"`
	Categories     int64 `db:"categories"`
	BudgetAccounts int64 `db:"budget_accounts"`
}

func (s *UserStore) Create(ctx context.Context, tx Execer, id, name, email string, passwordHash, image *string) error {
	query := `
		INSERT INTO users (id, name, email, password_hash, image)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := tx.ExecContext(ctx, query, id, name, email, passwordHash, image)
	return err
}

func (s *UserStore) GetByID(ctx context.Context, userID string) (models.User, error) {
	var row models.User
	err := s.db.GetContext(ctx, &row, `
		SELECT id, name, email, password_hash, image, created_at, updated_at
		FROM users
		WHERE id = $1
	`, userID)
	if err != nil {
		return models.User{}, err
	}
	return row, nil
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var row models.User
	err := s.db.GetContext(ctx, &row, `
		SELECT id, name, email, password_hash, image, created_at, updated_at
		FROM users
		WHERE email = $1
	`, email)
	if err != nil {
		return models.User{}, err
	}
	return row, nil
}

// EmailTaken reports whether another user already owns the given email.
func (s *UserStore) EmailTaken(ctx context.Context, email, excludeUserID string) (bool, error) {
	var taken bool
	err := s.db.GetContext(ctx, &taken, `
		SELECT EXISTS(SELECT 1 FROM users WHERE email = $1 AND id <> $2)
	`, email, excludeUserID)
	return taken, err
}

func (s *UserStore) UpdateProfile(ctx context.Context, userID, name, email string, image *string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE users
		SET name = $1, email = $2, image = $3, updated_at = NOW()
		WHERE id = $4
	`, name, email, image, userID)
	return err
}

func (s *UserStore) Counts(ctx context.Context, userID string) (UserCounts, error) {
	var counts UserCounts
	err := s.db.GetContext(ctx, &counts, `
		SELECT
			(SELECT COUNT(*) FROM transactions WHERE user_id = $1) AS transactions,
			(SELECT COUNT(*) FROM categories WHERE user_id = $1) AS categories,
			(SELECT COUNT(*) FROM budget_accounts WHERE user_id = $1) AS budget_accounts
	`, userID)
	if err != nil {
		return UserCounts{}, err
	}
	return counts, nil
}
