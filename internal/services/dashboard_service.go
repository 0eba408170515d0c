package services

import (
	"context"
	"sort"
	"time"

	"danawise/internal/models"
	"danawise/internal/money"
	"danawise/internal/store"

	"golang.org/x/sync/errgroup"
)

const (
	topCategoryLimit = 5
	recentLimit      = 5
	topAccountLimit  = 5
	fallbackCategory = "Uncategorized"
)

type DashboardTransactionStore interface {
	SumByType(ctx context.Context, userID, txType, accountID string) (int64, error)
	RecentDetailed(ctx context.Context, userID string, limit int) ([]store.TransactionDetail, error)
	GroupExpenseByCategory(ctx context.Context, userID, accountID string) ([]store.CategoryTotal, error)
	ListSince(ctx context.Context, userID, accountID string, since time.Time) ([]store.SeriesRow, error)
}

type DashboardAccountStore interface {
	TopActiveByBalance(ctx context.Context, userID string, limit int) ([]models.BudgetAccount, error)
}

// DashboardService fans out the independent dashboard reads concurrently and
// reshapes the rows into the view model the client renders.
type DashboardService struct {
	transactions DashboardTransactionStore
	accounts     DashboardAccountStore
	now          func() time.Time
}

func NewDashboardService(transactions DashboardTransactionStore, accounts DashboardAccountStore) *DashboardService {
	return &DashboardService{
		transactions: transactions,
		accounts:     accounts,
		now:          time.Now,
	}
}

// The handlers reshape these into wire maps, formatting minor units there.
type Stats struct {
	Income  int64
	Expense int64
	Balance int64
}

type CategorySlice struct {
	Name    string
	Value   int64
	Percent string
}

type SeriesPoint struct {
	Date    string
	Income  int64
	Expense int64
}

type Overview struct {
	Stats              Stats
	RecentTransactions []store.TransactionDetail
	CategoryData       []CategorySlice
	TimeSeriesData     []SeriesPoint
	BudgetAccounts     []models.BudgetAccount
}

// Overview builds the dashboard for one user. accountID narrows sums, the
// category breakdown and the series to a single budget account; rangeDays is
// one of 7/30/90/365 and anything else falls back to 30. Empty data produces
// zero totals and empty slices, never an error.
func (s *DashboardService) Overview(ctx context.Context, userID, accountID string, rangeDays int) (Overview, error) {
	switch rangeDays {
	case 7, 30, 90, 365:
	default:
		rangeDays = 30
	}
	since := s.now().AddDate(0, 0, -rangeDays)

	var (
		income    int64
		expense   int64
		recent    []store.TransactionDetail
		accounts  []models.BudgetAccount
		grouped   []store.CategoryTotal
		seriesRaw []store.SeriesRow
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		income, err = s.transactions.SumByType(gctx, userID, models.TransactionIncome, accountID)
		return err
	})
	g.Go(func() error {
		var err error
		expense, err = s.transactions.SumByType(gctx, userID, models.TransactionExpense, accountID)
		return err
	})
	g.Go(func() error {
		var err error
		recent, err = s.transactions.RecentDetailed(gctx, userID, recentLimit)
		return err
	})
	g.Go(func() error {
		var err error
		accounts, err = s.accounts.TopActiveByBalance(gctx, userID, topAccountLimit)
		return err
	})
	g.Go(func() error {
		var err error
		grouped, err = s.transactions.GroupExpenseByCategory(gctx, userID, accountID)
		return err
	})
	g.Go(func() error {
		var err error
		seriesRaw, err = s.transactions.ListSince(gctx, userID, accountID, since)
		return err
	})
	if err := g.Wait(); err != nil {
		return Overview{}, err
	}

	return Overview{
		Stats: Stats{
			Income:  income,
			Expense: expense,
			Balance: income - expense,
		},
		RecentTransactions: recent,
		CategoryData:       topCategories(grouped),
		TimeSeriesData:     buildSeries(seriesRaw),
		BudgetAccounts:     accounts,
	}, nil
}

// topCategories keeps the five largest expense buckets. Rows without a
// category name land in the fallback bucket.
func topCategories(grouped []store.CategoryTotal) []CategorySlice {
	var total int64
	for _, row := range grouped {
		total += row.Total
	}
	slices := make([]CategorySlice, 0, len(grouped))
	for _, row := range grouped {
		name := fallbackCategory
		if row.CategoryName != nil && *row.CategoryName != "" {
			name = *row.CategoryName
		}
		slices = append(slices, CategorySlice{
			Name:    name,
			Value:   row.Total,
			Percent: money.Percentage(row.Total, total),
		})
	}
	sort.SliceStable(slices, func(i, j int) bool { return slices[i].Value > slices[j].Value })
	if len(slices) > topCategoryLimit {
		slices = slices[:topCategoryLimit]
	}
	return slices
}

// buildSeries groups transactions by calendar day, summing income and expense
// separately, ascending by day. A single-point series is padded with a zero
// point on each side so chart axes get a usable domain.
func buildSeries(rows []store.SeriesRow) []SeriesPoint {
	byDay := make(map[string]*SeriesPoint)
	for _, row := range rows {
		day := row.Date.UTC().Format("2006-01-02")
		point, ok := byDay[day]
		if !ok {
			point = &SeriesPoint{Date: day}
			byDay[day] = point
		}
		if row.Type == models.TransactionIncome {
			point.Income += row.Amount
		} else {
			point.Expense += row.Amount
		}
	}
	series := make([]SeriesPoint, 0, len(byDay))
	for _, point := range byDay {
		series = append(series, *point)
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Date < series[j].Date })

	if len(series) == 1 {
		only, err := time.Parse("2006-01-02", series[0].Date)
		if err != nil {
			return series
		}
		return []SeriesPoint{
			{Date: only.AddDate(0, 0, -1).Format("2006-01-02")},
			series[0],
			{Date: only.AddDate(0, 0, 1).Format("2006-01-02")},
		}
	}
	return series
}
