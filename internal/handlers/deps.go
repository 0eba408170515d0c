package handlers

import (
	"context"

	"danawise/internal/ai"
	"danawise/internal/auth"
	"danawise/internal/models"
	"danawise/internal/services"
	"danawise/internal/store"
)

type UserStore interface {
	Create(ctx context.Context, tx store.Execer, id, name, email string, passwordHash, image *string) error
	GetByID(ctx context.Context, userID string) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	EmailTaken(ctx context.Context, email, excludeUserID string) (bool, error)
	UpdateProfile(ctx context.Context, userID, name, email string, image *string) error
	Counts(ctx context.Context, userID string) (store.UserCounts, error)
}

type CategoryStore interface {
	Create(ctx context.Context, id, userID, name string) error
	ListByUser(ctx context.Context, userID string) ([]models.Category, error)
	GetByIDAndUser(ctx context.Context, categoryID, userID string) (models.Category, error)
	CountTransactions(ctx context.Context, categoryID, userID string) (int64, error)
	Delete(ctx context.Context, categoryID string) error
}

type AccountStore interface {
	Create(ctx context.Context, input store.AccountInput) error
	ListActiveByUser(ctx context.Context, userID string) ([]store.AccountWithCount, error)
	GetByIDAndUser(ctx context.Context, accountID, userID string) (models.BudgetAccount, error)
	ActiveNameExists(ctx context.Context, userID, name, excludeAccountID string) (bool, error)
	Update(ctx context.Context, accountID string, update store.AccountUpdate) error
	CountTransactions(ctx context.Context, accountID, userID string) (int64, error)
	Deactivate(ctx context.Context, accountID string) error
	Delete(ctx context.Context, accountID string) error
}

type TransactionStore interface {
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]store.TransactionDetail, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
	GetByIDAndUser(ctx context.Context, transactionID, userID string) (models.Transaction, error)
	Delete(ctx context.Context, transactionID string) error
}

type TransactionService interface {
	Create(ctx context.Context, req services.CreateTransactionRequest) (models.Transaction, error)
}

type DashboardService interface {
	Overview(ctx context.Context, userID, accountID string, rangeDays int) (services.Overview, error)
}

type InsightService interface {
	Tip(ctx context.Context, userID string) (string, error)
}

type ChatService interface {
	Stream(ctx context.Context, userID string, messages []ai.Message) (<-chan ai.Chunk, error)
}

type GoogleVerifier interface {
	AuthURL(state string) (string, error)
	Exchange(ctx context.Context, code string) (auth.GoogleProfile, error)
}
