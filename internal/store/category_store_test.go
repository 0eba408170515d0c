package store

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"danawise/internal/models"
)

func TestCategoryStoreCreate(t *testing.T) {
	ctx := context.Background()
	store := NewCategoryStore(stubDB{
		execFn: func(_ context.Context, query string, args ...any) (sql.Result, error) {
			if !strings.Contains(query, "INSERT INTO categories") {
				t.Fatalf("unexpected query: %s", query)
			}
			if len(args) != 3 || args[2] != "Food" {
				t.Fatalf("unexpected args: %#v", args)
			}
			return stubResult{rows: 1}, nil
		},
	})
	if err := store.Create(ctx, "cat-1", "user-1", "Food"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCategoryStoreGetByIDAndUser(t *testing.T) {
	ctx := context.Background()
	store := NewCategoryStore(stubDB{
		getFn: func(_ context.Context, dest any, query string, args ...any) error {
			if !strings.Contains(query, "WHERE id = $1 AND user_id = $2") {
				t.Fatalf("lookup must be owner scoped: %s", query)
			}
			row := dest.(*models.Category)
			*row = models.Category{ID: "cat-1", UserID: "user-1", Name: "Food"}
			return nil
		},
	})
	row, err := store.GetByIDAndUser(ctx, "cat-1", "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if row.Name != "Food" {
		t.Fatalf("unexpected row: %#v", row)
	}
}

func TestCategoryStoreCountTransactions(t *testing.T) {
	ctx := context.Background()
	store := NewCategoryStore(stubDB{
		getFn: func(_ context.Context, dest any, query string, args ...any) error {
			if !strings.Contains(query, "category_id = $1 AND user_id = $2") {
				t.Fatalf("unexpected query: %s", query)
			}
			*dest.(*int64) = 3
			return nil
		},
	})
	count, err := store.CountTransactions(ctx, "cat-1", "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 3 {
		t.Fatalf("unexpected count: %d", count)
	}
}
