package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"danawise/internal/cache"
	"danawise/internal/store"
)

func TestTipNoData(t *testing.T) {
	generator := &stubGenerator{}
	service := NewInsightService(stubTransactionStore{}, generator, cache.NewTTL[string](time.Minute))
	tip, err := service.Tip(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tip != NoDataInsight {
		t.Fatalf("expected no-data message, got %q", tip)
	}
	if generator.calls != 0 {
		t.Fatal("provider must not be called without data")
	}
}

func TestTipCachesPerUser(t *testing.T) {
	generator := &stubGenerator{
		generateFn: func(context.Context, string) (string, error) { return "cut your subscriptions", nil },
	}
	service := NewInsightService(stubTransactionStore{
		recentFn: func(context.Context, string, int) ([]store.RecentLine, error) {
			return []store.RecentLine{{Type: "EXPENSE", Amount: 5000, Description: "Netflix"}}, nil
		},
	}, generator, cache.NewTTL[string](time.Minute))

	first, err := service.Tip(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := service.Tip(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Fatalf("expected identical cached tip, got %q then %q", first, second)
	}
	if generator.calls != 1 {
		t.Fatalf("expected one provider call, got %d", generator.calls)
	}
}

func TestTipCacheExpires(t *testing.T) {
	generator := &stubGenerator{}
	service := NewInsightService(stubTransactionStore{
		recentFn: func(context.Context, string, int) ([]store.RecentLine, error) {
			return []store.RecentLine{{Type: "INCOME", Amount: 100000, Description: "Salary"}}, nil
		},
	}, generator, cache.NewTTL[string](10*time.Millisecond))

	if _, err := service.Tip(context.Background(), "user-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	time.Sleep(25 * time.Millisecond)
	if _, err := service.Tip(context.Background(), "user-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if generator.calls != 2 {
		t.Fatalf("expected expired cache to hit the provider again, got %d calls", generator.calls)
	}
}

func TestTipPromptContainsTotals(t *testing.T) {
	var prompt string
	generator := &stubGenerator{
		generateFn: func(_ context.Context, p string) (string, error) {
			prompt = p
			return "tip", nil
		},
	}
	service := NewInsightService(stubTransactionStore{
		recentFn: func(context.Context, string, int) ([]store.RecentLine, error) {
			return []store.RecentLine{
				{Type: "INCOME", Amount: 100000, Description: "Salary"},
				{Type: "EXPENSE", Amount: 20000, Description: "Groceries"},
			}, nil
		},
	}, generator, cache.NewTTL[string](time.Minute))

	if _, err := service.Tip(context.Background(), "user-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"1000.00", "200.00", "800.00", "Groceries"} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestTipProviderFailureNotCached(t *testing.T) {
	boom := errors.New("quota exceeded")
	generator := &stubGenerator{
		generateFn: func(context.Context, string) (string, error) { return "", boom },
	}
	service := NewInsightService(stubTransactionStore{
		recentFn: func(context.Context, string, int) ([]store.RecentLine, error) {
			return []store.RecentLine{{Type: "EXPENSE", Amount: 100, Description: "x"}}, nil
		},
	}, generator, cache.NewTTL[string](time.Minute))

	if _, err := service.Tip(context.Background(), "user-1"); !errors.Is(err, boom) {
		t.Fatalf("expected provider error, got %v", err)
	}
	generator.generateFn = func(context.Context, string) (string, error) { return "better now", nil }
	tip, err := service.Tip(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tip != "better now" {
		t.Fatalf("expected fresh provider call after failure, got %q", tip)
	}
}
