package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"danawise/internal/ai"
	"danawise/internal/auth"
	"danawise/internal/cache"
	"danawise/internal/config"
	"danawise/internal/db"
	"danawise/internal/handlers"
	"danawise/internal/services"
	"danawise/internal/store"
	"danawise/internal/websocket"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
	cfg := config.Load()
	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer database.Close()

	users := store.NewUserStore(database)
	categories := store.NewCategoryStore(database)
	accounts := store.NewAccountStore(database)
	transactions := store.NewTransactionStore(database)
	txRunner := db.NewTxRunner(database)
	hub := websocket.NewHub()

	var generator interface {
		services.Generator
		services.ChatGenerator
	} = ai.Disabled{}
	if cfg.GeminiAPIKey != "" {
		gemini, err := ai.NewGemini(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Fatalf("failed to init AI provider: %v", err)
		}
		generator = gemini
	} else {
		log.Printf("GOOGLE_GENERATIVE_AI_API_KEY not set, AI features disabled")
	}

	txService := services.NewTransactionService(txRunner, categories, accounts, transactions, hub)
	dashboard := services.NewDashboardService(transactions, accounts)
	insight := services.NewInsightService(transactions, generator, cache.NewTTL[string](cfg.InsightCacheTTL))
	chat := services.NewChatService(transactions, generator)
	google := auth.NewGoogleVerifier(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL)

	handler := handlers.New(cfg, txRunner, users, categories, accounts, transactions, txService, dashboard, insight, chat, google, hub)
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("danawise API listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	<-shutdown

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("shutdown error: %v", err)
	}
}
