package handlers

import (
	"net/http"

	"danawise/internal/config"
	"danawise/internal/db"
	"danawise/internal/middleware"
	"danawise/internal/websocket"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Handler struct {
	cfg          config.Config
	txRunner     db.TxRunner
	users        UserStore
	categories   CategoryStore
	accounts     AccountStore
	transactions TransactionStore
	txService    TransactionService
	dashboard    DashboardService
	insight      InsightService
	chat         ChatService
	google       GoogleVerifier
	hub          *websocket.Hub
}

func New(cfg config.Config, txRunner db.TxRunner, users UserStore, categories CategoryStore, accounts AccountStore, transactions TransactionStore, txService TransactionService, dashboard DashboardService, insight InsightService, chat ChatService, google GoogleVerifier, hub *websocket.Hub) *Handler {
	return &Handler{
		cfg:          cfg,
		txRunner:     txRunner,
		users:        users,
		categories:   categories,
		accounts:     accounts,
		transactions: transactions,
		txService:    txService,
		dashboard:    dashboard,
		insight:      insight,
		chat:         chat,
		google:       google,
		hub:          hub,
	}
}

func (h *Handler) Routes() http.Handler {
	router := chi.NewRouter()
	router.Use(chimiddleware.Logger)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{h.cfg.AllowedOrigins},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Get("/google/url", h.GoogleAuthURL)
		r.Post("/google", h.GoogleLogin)
		r.With(middleware.Auth(h.cfg.JWTSecret)).Get("/me", h.Me)
	})

	router.Route("/api", func(r chi.Router) {
		r.Post("/user", h.Register)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(h.cfg.JWTSecret))
			r.Get("/categories", h.ListCategories)
			r.Post("/categories", h.CreateCategory)
			r.Delete("/categories/{id}", h.DeleteCategory)
			r.Get("/budget-accounts", h.ListAccounts)
			r.Post("/budget-accounts", h.CreateAccount)
			r.Put("/budget-accounts/{id}", h.UpdateAccount)
			r.Delete("/budget-accounts/{id}", h.DeleteAccount)
			r.Get("/transactions", h.ListTransactions)
			r.Post("/transactions", h.CreateTransaction)
			r.Delete("/transactions/{id}", h.DeleteTransaction)
			r.Get("/user/profile", h.GetProfile)
			r.Put("/user/profile", h.UpdateProfile)
			r.Get("/dashboard", h.Dashboard)
			r.Get("/insight", h.Insight)
			r.Post("/chat", h.Chat)
		})
	})

	router.Get("/ws/balances", h.WSBalances)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	return router
}
