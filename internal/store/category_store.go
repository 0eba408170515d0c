package store

import (
	"context"

	"danawise/internal/models"
)

type CategoryStore struct {
	db DB
}

func NewCategoryStore(db DB) *CategoryStore {
	return &CategoryStore{db: db}
}

func (s *CategoryStore) Create(ctx context.Context, id, userID, name string) error {
	query := `
		INSERT INTO categories (id, user_id, name)
		VALUES ($1, $2, $3)
	`
	_, err := s.db.ExecContext(ctx, query, id, userID, name)
	return err
}

func (s *CategoryStore) ListByUser(ctx context.Context, userID string) ([]models.Category, error) {
	var rows []models.Category
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, user_id, name, created_at, updated_at
		FROM categories
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *CategoryStore) GetByIDAndUser(ctx context.Context, categoryID, userID string) (models.Category, error) {
	var row models.Category
	err := s.db.GetContext(ctx, &row, `
		SELECT id, user_id, name, created_at, updated_at
		FROM categories
		WHERE id = $1 AND user_id = $2
	`, categoryID, userID)
	if err != nil {
		return models.Category{}, err
	}
	return row, nil
}

// CountTransactions reports how many of the user's transactions still
// reference the category. A non-zero count blocks deletion.
func (s *CategoryStore) CountTransactions(ctx context.Context, categoryID, userID string) (int64, error) {
	var count int64
	err := s.db.GetContext(ctx, &count, `
		SELECT COUNT(*)
		FROM transactions
		WHERE category_id = $1 AND user_id = $2
	`, categoryID, userID)
	return count, err
}

func (s *CategoryStore) Delete(ctx context.Context, categoryID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, categoryID)
	return err
}
