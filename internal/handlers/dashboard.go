package handlers

import (
	"log"
	"net/http"

	"danawise/internal/middleware"
	"danawise/internal/money"
)

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	query := r.URL.Query()
	accountID := query.Get("accountId")
	rangeDays := parseRange(query.Get("range"))

	overview, err := h.dashboard.Overview(r.Context(), userID, accountID, rangeDays)
	if err != nil {
		log.Printf("dashboard failed: %v", err)
		respondError(w, http.StatusInternalServerError, "unable to load dashboard")
		return
	}

	recent := make([]map[string]any, 0, len(overview.RecentTransactions))
	for _, row := range overview.RecentTransactions {
		recent = append(recent, transactionToMap(row))
	}
	categories := make([]map[string]any, 0, len(overview.CategoryData))
	for _, slice := range overview.CategoryData {
		categories = append(categories, map[string]any{
			"name":       slice.Name,
			"value":      money.FormatMinor(slice.Value),
			"percentage": slice.Percent,
		})
	}
	series := make([]map[string]any, 0, len(overview.TimeSeriesData))
	for _, point := range overview.TimeSeriesData {
		series = append(series, map[string]any{
			"date":    point.Date,
			"income":  money.FormatMinor(point.Income),
			"expense": money.FormatMinor(point.Expense),
		})
	}
	accounts := make([]map[string]any, 0, len(overview.BudgetAccounts))
	for _, account := range overview.BudgetAccounts {
		accounts = append(accounts, map[string]any{
			"id":      account.ID,
			"name":    account.Name,
			"type":    account.Type,
			"balance": money.FormatMinor(account.Balance),
			"color":   account.Color,
			"icon":    account.Icon,
		})
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"stats": map[string]any{
			"income":  money.FormatMinor(overview.Stats.Income),
			"expense": money.FormatMinor(overview.Stats.Expense),
			"balance": money.FormatMinor(overview.Stats.Balance),
		},
		"recentTransactions": recent,
		"categoryData":       categories,
		"timeSeriesData":     series,
		"budgetAccounts":     accounts,
	})
}
