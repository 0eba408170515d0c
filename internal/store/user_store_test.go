package store

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"danawise/internal/models"
)

func TestUserStoreCreate(t *testing.T) {
	ctx := context.Background()
	hash := "bcrypt-hash"
	execer := stubExecer{
		execFn: func(_ context.Context, query string, args ...any) (sql.Result, error) {
			if !strings.Contains(query, "INSERT INTO users") {
				t.Fatalf("unexpected query: %s", query)
			}
			if len(args) != 5 || args[0] != "user-1" || args[2] != "alice@example.com" {
				t.Fatalf("unexpected args: %#v", args)
			}
			return stubResult{rows: 1}, nil
		},
	}
	store := NewUserStore(stubDB{})
	if err := store.Create(ctx, execer, "user-1", "Alice", "alice@example.com", &hash, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUserStoreGetByEmail(t *testing.T) {
	ctx := context.Background()
	store := NewUserStore(stubDB{
		getFn: func(_ context.Context, dest any, query string, args ...any) error {
			if !strings.Contains(query, "WHERE email = $1") {
				t.Fatalf("unexpected query: %s", query)
			}
			if len(args) != 1 || args[0] != "alice@example.com" {
				t.Fatalf("unexpected args: %#v", args)
			}
			row := dest.(*models.User)
			*row = models.User{ID: "user-1", Email: "alice@example.com"}
			return nil
		},
	})
	row, err := store.GetByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if row.ID != "user-1" {
		t.Fatalf("unexpected row: %#v", row)
	}
}

func TestUserStoreEmailTaken(t *testing.T) {
	ctx := context.Background()
	store := NewUserStore(stubDB{
		getFn: func(_ context.Context, dest any, query string, args ...any) error {
			if !strings.Contains(query, "id <> $2") {
				t.Fatalf("check must exclude the caller: %s", query)
			}
			*dest.(*bool) = true
			return nil
		},
	})
	taken, err := store.EmailTaken(ctx, "alice@example.com", "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !taken {
		t.Fatal("expected taken email")
	}
}

func TestUserStoreCounts(t *testing.T) {
	ctx := context.Background()
	store := NewUserStore(stubDB{
		getFn: func(_ context.Context, dest any, query string, args ...any) error {
			if !strings.Contains(query, "FROM transactions") || !strings.Contains(query, "FROM budget_accounts") {
				t.Fatalf("unexpected query: %s", query)
			}
			counts := dest.(*UserCounts)
			*counts = UserCounts{Transactions: 10, Categories: 3, BudgetAccounts: 2}
			return nil
		},
	})
	counts, err := store.Counts(ctx, "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if counts.Transactions != 10 || counts.BudgetAccounts != 2 {
		t.Fatalf("unexpected counts: %#v", counts)
	}
}
