package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"danawise/internal/models"
	"danawise/internal/services"
)

func TestDashboardShapesPayload(t *testing.T) {
	handler := newTestHandler(testDeps{
		dashboard: stubDashboard{
			overviewFn: func(_ context.Context, _, accountID string, rangeDays int) (services.Overview, error) {
				if accountID != "acc-1" || rangeDays != 90 {
					t.Fatalf("query params not forwarded: %q %d", accountID, rangeDays)
				}
				return services.Overview{
					Stats: services.Stats{Income: 100000, Expense: 30000, Balance: 70000},
					CategoryData: []services.CategorySlice{
						{Name: "Food", Value: 20000, Percent: "66.7"},
					},
					TimeSeriesData: []services.SeriesPoint{
						{Date: "2026-08-20", Income: 100000, Expense: 30000},
					},
					BudgetAccounts: []models.BudgetAccount{
						{ID: "acc-1", Name: "BCA", Type: models.AccountBank, Balance: 100000},
					},
				}, nil
			},
		},
	})

	req := authedRequest(http.MethodGet, "/api/dashboard?accountId=acc-1&range=90d", "user-1", nil)
	rr := httptest.NewRecorder()
	handler.Dashboard(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var payload struct {
		Stats struct {
			Income  string `json:"income"`
			Expense string `json:"expense"`
			Balance string `json:"balance"`
		} `json:"stats"`
		CategoryData []struct {
			Name       string `json:"name"`
			Value      string `json:"value"`
			Percentage string `json:"percentage"`
		} `json:"categoryData"`
		TimeSeriesData []struct {
			Date    string `json:"date"`
			Income  string `json:"income"`
			Expense string `json:"expense"`
		} `json:"timeSeriesData"`
		BudgetAccounts []struct {
			Balance string `json:"balance"`
		} `json:"budgetAccounts"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload.Stats.Income != "1000.00" || payload.Stats.Balance != "700.00" {
		t.Fatalf("unexpected stats: %#v", payload.Stats)
	}
	if len(payload.CategoryData) != 1 || payload.CategoryData[0].Percentage != "66.7" {
		t.Fatalf("unexpected category data: %#v", payload.CategoryData)
	}
	if payload.TimeSeriesData[0].Expense != "300.00" {
		t.Fatalf("unexpected series: %#v", payload.TimeSeriesData)
	}
	if payload.BudgetAccounts[0].Balance != "1000.00" {
		t.Fatalf("unexpected accounts: %#v", payload.BudgetAccounts)
	}
}

func TestDashboardEmptySlicesNotNull(t *testing.T) {
	handler := newTestHandler(testDeps{})
	req := authedRequest(http.MethodGet, "/api/dashboard", "user-1", nil)
	rr := httptest.NewRecorder()
	handler.Dashboard(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var payload map[string]json.RawMessage
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	for _, key := range []string{"recentTransactions", "categoryData", "timeSeriesData", "budgetAccounts"} {
		if string(payload[key]) == "null" {
			t.Fatalf("%s must encode as [], got null", key)
		}
	}
}
