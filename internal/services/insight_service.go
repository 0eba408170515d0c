package services

import (
	"context"
	"fmt"
	"strings"

	"danawise/internal/cache"
	"danawise/internal/money"
	"danawise/internal/store"
)

// NoDataInsight is returned without contacting the provider when the user has
// no transactions yet.
const NoDataInsight = "No transaction data available to analyze."

const insightTransactionLimit = 10

type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type InsightTransactionStore interface {
	Recent(ctx context.Context, userID string, limit int) ([]store.RecentLine, error)
}

// InsightService produces one short financial tip per user, grounded in their
// latest transactions, and caches it so repeat requests within the window
// never reach the provider.
type InsightService struct {
	transactions InsightTransactionStore
	generator    Generator
	cache        *cache.TTL[string]
}

func NewInsightService(transactions InsightTransactionStore, generator Generator, tips *cache.TTL[string]) *InsightService {
	return &InsightService{
		transactions: transactions,
		generator:    generator,
		cache:        tips,
	}
}

func (s *InsightService) Tip(ctx context.Context, userID string) (string, error) {
	if cached, ok := s.cache.Get(userID); ok {
		return cached, nil
	}
	recent, err := s.transactions.Recent(ctx, userID, insightTransactionLimit)
	if err != nil {
		return "", err
	}
	if len(recent) == 0 {
		return NoDataInsight, nil
	}
	tip, err := s.generator.Generate(ctx, insightPrompt(recent))
	if err != nil {
		return "", err
	}
	s.cache.Set(userID, tip)
	return tip, nil
}

func insightPrompt(recent []store.RecentLine) string {
	var income, expense int64
	for _, line := range recent {
		if line.Type == "INCOME" {
			income += line.Amount
		} else {
			expense += line.Amount
		}
	}
	var b strings.Builder
	b.WriteString("You are Dana, a friendly AI financial assistant. Analyze these stats and recent transactions, then give ONE actionable tip. Keep it under 50 words and friendly.\n\n")
	fmt.Fprintf(&b, "Stats:\n- Total income: %s\n- Total expense: %s\n- Balance: %s\n\n",
		money.FormatMinor(income), money.FormatMinor(expense), money.FormatMinor(income-expense))
	b.WriteString("Recent transactions:\n")
	for _, line := range recent {
		fmt.Fprintf(&b, "- %s %s: %s\n", line.Type, money.FormatMinor(line.Amount), line.Description)
	}
	b.WriteString("\nGive a helpful, personal tip to improve their financial health.")
	return b.String()
}
