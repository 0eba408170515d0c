package services

import (
	"context"
	"time"

	"danawise/internal/ai"
	"danawise/internal/models"
	"danawise/internal/store"
	"danawise/internal/websocket"

	"github.com/jmoiron/sqlx"
)

type fakeTxRunner struct {
	withTxFn func(ctx context.Context, fn func(*sqlx.Tx) error) error
}

func (f fakeTxRunner) WithTx(ctx context.Context, fn func(*sqlx.Tx) error) error {
	if f.withTxFn != nil {
		return f.withTxFn(ctx, fn)
	}
	return fn(nil)
}

type stubCategoryStore struct {
	getByIDAndUserFn func(ctx context.Context, categoryID, userID string) (models.Category, error)
}

func (s stubCategoryStore) GetByIDAndUser(ctx context.Context, categoryID, userID string) (models.Category, error) {
	if s.getByIDAndUserFn == nil {
		return models.Category{ID: categoryID, UserID: userID}, nil
	}
	return s.getByIDAndUserFn(ctx, categoryID, userID)
}

type stubAccountStore struct {
	getActiveForUpdateFn func(ctx context.Context, tx store.Getter, accountID, userID string) (models.BudgetAccount, error)
	adjustBalanceFn      func(ctx context.Context, tx store.Execer, accountID string, delta int64) error
	topActiveFn          func(ctx context.Context, userID string, limit int) ([]models.BudgetAccount, error)
}

func (s stubAccountStore) GetActiveForUpdate(ctx context.Context, tx store.Getter, accountID, userID string) (models.BudgetAccount, error) {
	if s.getActiveForUpdateFn == nil {
		return models.BudgetAccount{ID: accountID, UserID: userID, IsActive: true}, nil
	}
	return s.getActiveForUpdateFn(ctx, tx, accountID, userID)
}

func (s stubAccountStore) AdjustBalance(ctx context.Context, tx store.Execer, accountID string, delta int64) error {
	if s.adjustBalanceFn == nil {
		return nil
	}
	return s.adjustBalanceFn(ctx, tx, accountID, delta)
}

func (s stubAccountStore) TopActiveByBalance(ctx context.Context, userID string, limit int) ([]models.BudgetAccount, error) {
	if s.topActiveFn == nil {
		return nil, nil
	}
	return s.topActiveFn(ctx, userID, limit)
}

type stubTransactionStore struct {
	createFn           func(ctx context.Context, tx store.Execer, input store.TransactionInput) error
	sumByTypeFn        func(ctx context.Context, userID, txType, accountID string) (int64, error)
	recentDetailedFn   func(ctx context.Context, userID string, limit int) ([]store.TransactionDetail, error)
	groupByCategoryFn  func(ctx context.Context, userID, accountID string) ([]store.CategoryTotal, error)
	listSinceFn        func(ctx context.Context, userID, accountID string, since time.Time) ([]store.SeriesRow, error)
	recentFn           func(ctx context.Context, userID string, limit int) ([]store.RecentLine, error)
	recentWithCatFn    func(ctx context.Context, userID string, limit int) ([]store.GroundingRow, error)
}

func (s stubTransactionStore) Create(ctx context.Context, tx store.Execer, input store.TransactionInput) error {
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, tx, input)
}

func (s stubTransactionStore) SumByType(ctx context.Context, userID, txType, accountID string) (int64, error) {
	if s.sumByTypeFn == nil {
		return 0, nil
	}
	return s.sumByTypeFn(ctx, userID, txType, accountID)
}

func (s stubTransactionStore) RecentDetailed(ctx context.Context, userID string, limit int) ([]store.TransactionDetail, error) {
	if s.recentDetailedFn == nil {
		return nil, nil
	}
	return s.recentDetailedFn(ctx, userID, limit)
}

func (s stubTransactionStore) GroupExpenseByCategory(ctx context.Context, userID, accountID string) ([]store.CategoryTotal, error) {
	if s.groupByCategoryFn == nil {
		return nil, nil
	}
	return s.groupByCategoryFn(ctx, userID, accountID)
}

func (s stubTransactionStore) ListSince(ctx context.Context, userID, accountID string, since time.Time) ([]store.SeriesRow, error) {
	if s.listSinceFn == nil {
		return nil, nil
	}
	return s.listSinceFn(ctx, userID, accountID, since)
}

func (s stubTransactionStore) Recent(ctx context.Context, userID string, limit int) ([]store.RecentLine, error) {
	if s.recentFn == nil {
		return nil, nil
	}
	return s.recentFn(ctx, userID, limit)
}

func (s stubTransactionStore) RecentWithCategory(ctx context.Context, userID string, limit int) ([]store.GroundingRow, error) {
	if s.recentWithCatFn == nil {
		return nil, nil
	}
	return s.recentWithCatFn(ctx, userID, limit)
}

type stubHub struct {
	broadcasts []websocket.BalanceUpdate
}

func (s *stubHub) BroadcastBalance(userID string, update websocket.BalanceUpdate) {
	s.broadcasts = append(s.broadcasts, update)
}

type stubGenerator struct {
	generateFn func(ctx context.Context, prompt string) (string, error)
	chatFn     func(ctx context.Context, system, greeting string, history []ai.Message, message string) (<-chan ai.Chunk, error)
	calls      int
}

func (s *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	s.calls++
	if s.generateFn == nil {
		return "save more", nil
	}
	return s.generateFn(ctx, prompt)
}

func (s *stubGenerator) Chat(ctx context.Context, system, greeting string, history []ai.Message, message string) (<-chan ai.Chunk, error) {
	s.calls++
	if s.chatFn == nil {
		out := make(chan ai.Chunk)
		close(out)
		return out, nil
	}
	return s.chatFn(ctx, system, greeting, history, message)
}
