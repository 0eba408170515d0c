package services

import (
	"context"
	"testing"
	"time"

	"danawise/internal/models"
	"danawise/internal/store"
)

func TestOverviewEmptyData(t *testing.T) {
	service := NewDashboardService(stubTransactionStore{}, stubAccountStore{})
	overview, err := service.Overview(context.Background(), "user-1", "", 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if overview.Stats.Income != 0 || overview.Stats.Expense != 0 || overview.Stats.Balance != 0 {
		t.Fatalf("expected zero stats, got %#v", overview.Stats)
	}
	if len(overview.CategoryData) != 0 || len(overview.TimeSeriesData) != 0 {
		t.Fatalf("expected empty slices, got %#v", overview)
	}
}

func TestOverviewStats(t *testing.T) {
	service := NewDashboardService(stubTransactionStore{
		sumByTypeFn: func(_ context.Context, _, txType, _ string) (int64, error) {
			if txType == models.TransactionIncome {
				return 100000, nil
			}
			return 30000, nil
		},
	}, stubAccountStore{})
	overview, err := service.Overview(context.Background(), "user-1", "", 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if overview.Stats.Income != 100000 || overview.Stats.Expense != 30000 || overview.Stats.Balance != 70000 {
		t.Fatalf("unexpected stats: %#v", overview.Stats)
	}
}

func TestOverviewInvalidRangeFallsBackTo30Days(t *testing.T) {
	var gotSince time.Time
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	service := NewDashboardService(stubTransactionStore{
		listSinceFn: func(_ context.Context, _, _ string, since time.Time) ([]store.SeriesRow, error) {
			gotSince = since
			return nil, nil
		},
	}, stubAccountStore{})
	service.now = func() time.Time { return now }

	if _, err := service.Overview(context.Background(), "user-1", "", 13); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := now.AddDate(0, 0, -30); !gotSince.Equal(want) {
		t.Fatalf("expected 30-day window start %v, got %v", want, gotSince)
	}
}

func TestTopCategoriesKeepsFiveAndBucketsUncategorized(t *testing.T) {
	names := []string{"Food", "Transport", "Rent", "Fun", "Bills", "Misc"}
	grouped := make([]store.CategoryTotal, 0, len(names)+1)
	for i, name := range names {
		n := name
		grouped = append(grouped, store.CategoryTotal{CategoryName: &n, Total: int64(1000 * (i + 1))})
	}
	grouped = append(grouped, store.CategoryTotal{CategoryName: nil, Total: 9000})

	service := NewDashboardService(stubTransactionStore{
		groupByCategoryFn: func(context.Context, string, string) ([]store.CategoryTotal, error) {
			return grouped, nil
		},
	}, stubAccountStore{})
	overview, err := service.Overview(context.Background(), "user-1", "", 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(overview.CategoryData) != 5 {
		t.Fatalf("expected 5 category slices, got %d", len(overview.CategoryData))
	}
	if overview.CategoryData[0].Name != "Uncategorized" || overview.CategoryData[0].Value != 9000 {
		t.Fatalf("expected fallback bucket ranked first, got %#v", overview.CategoryData[0])
	}
	if overview.CategoryData[0].Percent != "30.0" {
		t.Fatalf("expected 30.0 percent, got %q", overview.CategoryData[0].Percent)
	}
	for _, slice := range overview.CategoryData {
		if slice.Name == "Food" {
			t.Fatal("smallest bucket should have been trimmed")
		}
	}
}

func TestBuildSeriesGroupsByDay(t *testing.T) {
	day1 := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 8, 11, 18, 0, 0, 0, time.UTC)
	service := NewDashboardService(stubTransactionStore{
		listSinceFn: func(context.Context, string, string, time.Time) ([]store.SeriesRow, error) {
			return []store.SeriesRow{
				{Date: day2, Amount: 500, Type: models.TransactionExpense},
				{Date: day1, Amount: 1000, Type: models.TransactionIncome},
				{Date: day1.Add(2 * time.Hour), Amount: 200, Type: models.TransactionExpense},
			}, nil
		},
	}, stubAccountStore{})
	overview, err := service.Overview(context.Background(), "user-1", "", 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	series := overview.TimeSeriesData
	if len(series) != 2 {
		t.Fatalf("expected 2 points, got %#v", series)
	}
	if series[0].Date != "2026-08-10" || series[0].Income != 1000 || series[0].Expense != 200 {
		t.Fatalf("unexpected first point: %#v", series[0])
	}
	if series[1].Date != "2026-08-11" || series[1].Expense != 500 {
		t.Fatalf("unexpected second point: %#v", series[1])
	}
}

func TestBuildSeriesPadsSinglePoint(t *testing.T) {
	only := time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)
	service := NewDashboardService(stubTransactionStore{
		listSinceFn: func(context.Context, string, string, time.Time) ([]store.SeriesRow, error) {
			return []store.SeriesRow{{Date: only, Amount: 1500, Type: models.TransactionIncome}}, nil
		},
	}, stubAccountStore{})
	overview, err := service.Overview(context.Background(), "user-1", "", 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	series := overview.TimeSeriesData
	if len(series) != 3 {
		t.Fatalf("expected padded series of 3, got %#v", series)
	}
	if series[0].Date != "2026-08-14" || series[0].Income != 0 || series[0].Expense != 0 {
		t.Fatalf("unexpected leading pad: %#v", series[0])
	}
	if series[1].Date != "2026-08-15" || series[1].Income != 1500 {
		t.Fatalf("unexpected middle point: %#v", series[1])
	}
	if series[2].Date != "2026-08-16" || series[2].Income != 0 {
		t.Fatalf("unexpected trailing pad: %#v", series[2])
	}
}
