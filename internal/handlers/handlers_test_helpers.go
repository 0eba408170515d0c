package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"time"

	"danawise/internal/ai"
	"danawise/internal/auth"
	"danawise/internal/config"
	"danawise/internal/middleware"
	"danawise/internal/models"
	"danawise/internal/services"
	"danawise/internal/store"
	"danawise/internal/websocket"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
)

func testConfig() config.Config {
	return config.Config{
		AppEnv:       "test",
		Port:         "8080",
		JWTSecret:    "secret",
		TokenTTL:     time.Minute,
		GeminiAPIKey: "test-key",
	}
}

type fakeTxRunner struct {
	withTxFn func(ctx context.Context, fn func(*sqlx.Tx) error) error
}

func (f fakeTxRunner) WithTx(ctx context.Context, fn func(*sqlx.Tx) error) error {
	if f.withTxFn != nil {
		return f.withTxFn(ctx, fn)
	}
	return fn(nil)
}

type stubUserStore struct {
	createFn        func(ctx context.Context, tx store.Execer, id, name, email string, passwordHash, image *string) error
	getByIDFn       func(ctx context.Context, userID string) (models.User, error)
	getByEmailFn    func(ctx context.Context, email string) (models.User, error)
	emailTakenFn    func(ctx context.Context, email, excludeUserID string) (bool, error)
	updateProfileFn func(ctx context.Context, userID, name, email string, image *string) error
	countsFn        func(ctx context.Context, userID string) (store.UserCounts, error)
}

func (s stubUserStore) Create(ctx context.Context, tx store.Execer, id, name, email string, passwordHash, image *string) error {
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, tx, id, name, email, passwordHash, image)
}

func (s stubUserStore) GetByID(ctx context.Context, userID string) (models.User, error) {
	if s.getByIDFn == nil {
		return models.User{ID: userID}, nil
	}
	return s.getByIDFn(ctx, userID)
}

func (s stubUserStore) GetByEmail(ctx context.Context, email string) (models.User, error) {
	if s.getByEmailFn == nil {
		return models.User{}, nil
	}
	return s.getByEmailFn(ctx, email)
}

func (s stubUserStore) EmailTaken(ctx context.Context, email, excludeUserID string) (bool, error) {
	if s.emailTakenFn == nil {
		return false, nil
	}
	return s.emailTakenFn(ctx, email, excludeUserID)
}

func (s stubUserStore) UpdateProfile(ctx context.Context, userID, name, email string, image *string) error {
	if s.updateProfileFn == nil {
		return nil
	}
	return s.updateProfileFn(ctx, userID, name, email, image)
}

func (s stubUserStore) Counts(ctx context.Context, userID string) (store.UserCounts, error) {
	if s.countsFn == nil {
		return store.UserCounts{}, nil
	}
	return s.countsFn(ctx, userID)
}

type stubCategoryStore struct {
	createFn            func(ctx context.Context, id, userID, name string) error
	listByUserFn        func(ctx context.Context, userID string) ([]models.Category, error)
	getByIDAndUserFn    func(ctx context.Context, categoryID, userID string) (models.Category, error)
	countTransactionsFn func(ctx context.Context, categoryID, userID string) (int64, error)
	deleteFn            func(ctx context.Context, categoryID string) error
}

func (s stubCategoryStore) Create(ctx context.Context, id, userID, name string) error {
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, id, userID, name)
}

func (s stubCategoryStore) ListByUser(ctx context.Context, userID string) ([]models.Category, error) {
	if s.listByUserFn == nil {
		return nil, nil
	}
	return s.listByUserFn(ctx, userID)
}

func (s stubCategoryStore) GetByIDAndUser(ctx context.Context, categoryID, userID string) (models.Category, error) {
	if s.getByIDAndUserFn == nil {
		return models.Category{ID: categoryID, UserID: userID}, nil
	}
	return s.getByIDAndUserFn(ctx, categoryID, userID)
}

func (s stubCategoryStore) CountTransactions(ctx context.Context, categoryID, userID string) (int64, error) {
	if s.countTransactionsFn == nil {
		return 0, nil
	}
	return s.countTransactionsFn(ctx, categoryID, userID)
}

func (s stubCategoryStore) Delete(ctx context.Context, categoryID string) error {
	if s.deleteFn == nil {
		return nil
	}
	return s.deleteFn(ctx, categoryID)
}

type stubAccountStore struct {
	createFn            func(ctx context.Context, input store.AccountInput) error
	listActiveByUserFn  func(ctx context.Context, userID string) ([]store.AccountWithCount, error)
	getByIDAndUserFn    func(ctx context.Context, accountID, userID string) (models.BudgetAccount, error)
	activeNameExistsFn  func(ctx context.Context, userID, name, excludeAccountID string) (bool, error)
	updateFn            func(ctx context.Context, accountID string, update store.AccountUpdate) error
	countTransactionsFn func(ctx context.Context, accountID, userID string) (int64, error)
	deactivateFn        func(ctx context.Context, accountID string) error
	deleteFn            func(ctx context.Context, accountID string) error
}

func (s stubAccountStore) Create(ctx context.Context, input store.AccountInput) error {
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, input)
}

func (s stubAccountStore) ListActiveByUser(ctx context.Context, userID string) ([]store.AccountWithCount, error) {
	if s.listActiveByUserFn == nil {
		return nil, nil
	}
	return s.listActiveByUserFn(ctx, userID)
}

func (s stubAccountStore) GetByIDAndUser(ctx context.Context, accountID, userID string) (models.BudgetAccount, error) {
	if s.getByIDAndUserFn == nil {
		return models.BudgetAccount{ID: accountID, UserID: userID, IsActive: true}, nil
	}
	return s.getByIDAndUserFn(ctx, accountID, userID)
}

func (s stubAccountStore) ActiveNameExists(ctx context.Context, userID, name, excludeAccountID string) (bool, error) {
	if s.activeNameExistsFn == nil {
		return false, nil
	}
	return s.activeNameExistsFn(ctx, userID, name, excludeAccountID)
}

func (s stubAccountStore) Update(ctx context.Context, accountID string, update store.AccountUpdate) error {
	if s.updateFn == nil {
		return nil
	}
	return s.updateFn(ctx, accountID, update)
}

func (s stubAccountStore) CountTransactions(ctx context.Context, accountID, userID string) (int64, error) {
	if s.countTransactionsFn == nil {
		return 0, nil
	}
	return s.countTransactionsFn(ctx, accountID, userID)
}

func (s stubAccountStore) Deactivate(ctx context.Context, accountID string) error {
	if s.deactivateFn == nil {
		return nil
	}
	return s.deactivateFn(ctx, accountID)
}

func (s stubAccountStore) Delete(ctx context.Context, accountID string) error {
	if s.deleteFn == nil {
		return nil
	}
	return s.deleteFn(ctx, accountID)
}

type stubTransactionStore struct {
	listByUserFn     func(ctx context.Context, userID string, limit, offset int) ([]store.TransactionDetail, error)
	countByUserFn    func(ctx context.Context, userID string) (int64, error)
	getByIDAndUserFn func(ctx context.Context, transactionID, userID string) (models.Transaction, error)
	deleteFn         func(ctx context.Context, transactionID string) error
}

func (s stubTransactionStore) ListByUser(ctx context.Context, userID string, limit, offset int) ([]store.TransactionDetail, error) {
	if s.listByUserFn == nil {
		return nil, nil
	}
	return s.listByUserFn(ctx, userID, limit, offset)
}

func (s stubTransactionStore) CountByUser(ctx context.Context, userID string) (int64, error) {
	if s.countByUserFn == nil {
		return 0, nil
	}
	return s.countByUserFn(ctx, userID)
}

func (s stubTransactionStore) GetByIDAndUser(ctx context.Context, transactionID, userID string) (models.Transaction, error) {
	if s.getByIDAndUserFn == nil {
		return models.Transaction{ID: transactionID, UserID: userID}, nil
	}
	return s.getByIDAndUserFn(ctx, transactionID, userID)
}

func (s stubTransactionStore) Delete(ctx context.Context, transactionID string) error {
	if s.deleteFn == nil {
		return nil
	}
	return s.deleteFn(ctx, transactionID)
}

type stubTxService struct {
	createFn func(ctx context.Context, req services.CreateTransactionRequest) (models.Transaction, error)
}

func (s stubTxService) Create(ctx context.Context, req services.CreateTransactionRequest) (models.Transaction, error) {
	if s.createFn == nil {
		return models.Transaction{
			ID:          "tx-1",
			UserID:      req.UserID,
			CategoryID:  req.CategoryID,
			Amount:      req.AmountMinor,
			Type:        req.Type,
			Description: req.Description,
			Date:        req.Date,
		}, nil
	}
	return s.createFn(ctx, req)
}

type stubDashboard struct {
	overviewFn func(ctx context.Context, userID, accountID string, rangeDays int) (services.Overview, error)
}

func (s stubDashboard) Overview(ctx context.Context, userID, accountID string, rangeDays int) (services.Overview, error) {
	if s.overviewFn == nil {
		return services.Overview{}, nil
	}
	return s.overviewFn(ctx, userID, accountID, rangeDays)
}

type stubInsight struct {
	tipFn func(ctx context.Context, userID string) (string, error)
}

func (s stubInsight) Tip(ctx context.Context, userID string) (string, error) {
	if s.tipFn == nil {
		return "save more", nil
	}
	return s.tipFn(ctx, userID)
}

type stubChat struct {
	streamFn func(ctx context.Context, userID string, messages []ai.Message) (<-chan ai.Chunk, error)
}

func (s stubChat) Stream(ctx context.Context, userID string, messages []ai.Message) (<-chan ai.Chunk, error) {
	if s.streamFn == nil {
		out := make(chan ai.Chunk)
		close(out)
		return out, nil
	}
	return s.streamFn(ctx, userID, messages)
}

type stubGoogle struct {
	authURLFn  func(state string) (string, error)
	exchangeFn func(ctx context.Context, code string) (auth.GoogleProfile, error)
}

func (s stubGoogle) AuthURL(state string) (string, error) {
	if s.authURLFn == nil {
		return "https://accounts.google.com/o/oauth2/auth?state=" + state, nil
	}
	return s.authURLFn(state)
}

func (s stubGoogle) Exchange(ctx context.Context, code string) (auth.GoogleProfile, error) {
	if s.exchangeFn == nil {
		return auth.GoogleProfile{Email: "g@example.com", Name: "G User"}, nil
	}
	return s.exchangeFn(ctx, code)
}

type testDeps struct {
	cfg          config.Config
	txRunner     fakeTxRunner
	users        stubUserStore
	categories   stubCategoryStore
	accounts     stubAccountStore
	transactions stubTransactionStore
	txService    stubTxService
	dashboard    stubDashboard
	insight      stubInsight
	chat         stubChat
	google       stubGoogle
}

func newTestHandler(deps testDeps) *Handler {
	cfg := deps.cfg
	if cfg.JWTSecret == "" {
		cfg = testConfig()
	}
	return New(cfg, deps.txRunner, deps.users, deps.categories, deps.accounts,
		deps.transactions, deps.txService, deps.dashboard, deps.insight, deps.chat,
		deps.google, websocket.NewHub())
}

// authedRequest builds a request whose context already carries the user,
// skipping the token round-trip that the middleware tests cover.
func authedRequest(method, target, userID string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, target, body)
	return req.WithContext(middleware.WithUserID(req.Context(), userID))
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}
