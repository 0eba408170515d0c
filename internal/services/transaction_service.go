package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"danawise/internal/db"
	"danawise/internal/models"
	"danawise/internal/money"
	"danawise/internal/store"
	"danawise/internal/websocket"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var (
	ErrInvalidAmount    = errors.New("amount must be positive")
	ErrInvalidType      = errors.New("invalid transaction type")
	ErrCategoryNotFound = errors.New("category not found")
	ErrAccountNotFound  = errors.New("budget account not found or inactive")
)

type CategoryStore interface {
	GetByIDAndUser(ctx context.Context, categoryID, userID string) (models.Category, error)
}

type AccountStore interface {
	GetActiveForUpdate(ctx context.Context, tx store.Getter, accountID, userID string) (models.BudgetAccount, error)
	AdjustBalance(ctx context.Context, tx store.Execer, accountID string, delta int64) error
}

type TransactionStore interface {
	Create(ctx context.Context, tx store.Execer, input store.TransactionInput) error
}

type BalanceHub interface {
	BroadcastBalance(userID string, update websocket.BalanceUpdate)
}

// TransactionService creates transactions and keeps the linked budget
// account's balance in step. Both writes happen in one database transaction.
type TransactionService struct {
	txRunner     db.TxRunner
	categories   CategoryStore
	accounts     AccountStore
	transactions TransactionStore
	hub          BalanceHub
}

func NewTransactionService(txRunner db.TxRunner, categories CategoryStore, accounts AccountStore, transactions TransactionStore, hub BalanceHub) *TransactionService {
	return &TransactionService{
		txRunner:     txRunner,
		categories:   categories,
		accounts:     accounts,
		transactions: transactions,
		hub:          hub,
	}
}

type CreateTransactionRequest struct {
	UserID          string
	CategoryID      string
	BudgetAccountID *string
	AmountMinor     int64
	Type            string
	Description     string
	Date            time.Time
}

func (s *TransactionService) Create(ctx context.Context, req CreateTransactionRequest) (models.Transaction, error) {
	if req.AmountMinor <= 0 {
		return models.Transaction{}, ErrInvalidAmount
	}
	if !models.ValidTransactionType(req.Type) {
		return models.Transaction{}, ErrInvalidType
	}
	if _, err := s.categories.GetByIDAndUser(ctx, req.CategoryID, req.UserID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Transaction{}, ErrCategoryNotFound
		}
		return models.Transaction{}, err
	}

	transactionID := uuid.NewString()
	var touchedAccount models.BudgetAccount
	var balanceAfter int64
	touched := false

	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		if req.BudgetAccountID != nil && *req.BudgetAccountID != "" {
			account, err := s.accounts.GetActiveForUpdate(ctx, tx, *req.BudgetAccountID, req.UserID)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return ErrAccountNotFound
				}
				return err
			}
			delta := req.AmountMinor
			if req.Type == models.TransactionExpense {
				delta = -delta
			}
			if err := s.accounts.AdjustBalance(ctx, tx, account.ID, delta); err != nil {
				return err
			}
			touchedAccount = account
			balanceAfter = account.Balance + delta
			touched = true
		}
		return s.transactions.Create(ctx, tx, store.TransactionInput{
			ID:              transactionID,
			UserID:          req.UserID,
			CategoryID:      req.CategoryID,
			BudgetAccountID: req.BudgetAccountID,
			Amount:          req.AmountMinor,
			Type:            req.Type,
			Description:     req.Description,
			Date:            req.Date,
		})
	})
	if err != nil {
		return models.Transaction{}, err
	}

	if touched {
		s.hub.BroadcastBalance(req.UserID, websocket.BalanceUpdate{
			AccountID: touchedAccount.ID,
			Name:      touchedAccount.Name,
			Balance:   money.FormatMinor(balanceAfter),
		})
	}

	return models.Transaction{
		ID:              transactionID,
		UserID:          req.UserID,
		CategoryID:      req.CategoryID,
		BudgetAccountID: req.BudgetAccountID,
		Amount:          req.AmountMinor,
		Type:            req.Type,
		Description:     req.Description,
		Date:            req.Date,
	}, nil
}
