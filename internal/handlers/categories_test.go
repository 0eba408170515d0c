package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"danawise/internal/models"

	"github.com/lib/pq"
)

func TestListCategories(t *testing.T) {
	handler := newTestHandler(testDeps{
		categories: stubCategoryStore{
			listByUserFn: func(_ context.Context, userID string) ([]models.Category, error) {
				return []models.Category{{ID: "cat-1", UserID: userID, Name: "Food"}}, nil
			},
		},
	})

	req := authedRequest(http.MethodGet, "/api/categories", "user-1", nil)
	rr := httptest.NewRecorder()
	handler.ListCategories(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var payload []models.Category
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(payload) != 1 || payload[0].Name != "Food" {
		t.Fatalf("unexpected payload: %#v", payload)
	}
}

func TestCreateCategory(t *testing.T) {
	var gotName string
	handler := newTestHandler(testDeps{
		categories: stubCategoryStore{
			createFn: func(_ context.Context, _, _, name string) error {
				gotName = name
				return nil
			},
		},
	})

	req := authedRequest(http.MethodPost, "/api/categories", "user-1", strings.NewReader(`{"name":"Transport"}`))
	rr := httptest.NewRecorder()
	handler.CreateCategory(rr, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	if gotName != "Transport" {
		t.Fatalf("unexpected created name: %q", gotName)
	}
}

func TestCreateCategoryDuplicateName(t *testing.T) {
	handler := newTestHandler(testDeps{
		categories: stubCategoryStore{
			createFn: func(context.Context, string, string, string) error {
				return &pq.Error{Code: "23505"}
			},
		},
	})

	req := authedRequest(http.MethodPost, "/api/categories", "user-1", strings.NewReader(`{"name":"Food"}`))
	rr := httptest.NewRecorder()
	handler.CreateCategory(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "already exists") {
		t.Fatalf("unexpected body: %s", rr.Body.String())
	}
}

func TestCreateCategoryBlankName(t *testing.T) {
	handler := newTestHandler(testDeps{})
	req := authedRequest(http.MethodPost, "/api/categories", "user-1", strings.NewReader(`{"name":"   "}`))
	rr := httptest.NewRecorder()
	handler.CreateCategory(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for blank name, got %d", rr.Code)
	}
}

func TestDeleteCategoryBlockedWhenReferenced(t *testing.T) {
	handler := newTestHandler(testDeps{
		categories: stubCategoryStore{
			countTransactionsFn: func(context.Context, string, string) (int64, error) {
				return 3, nil
			},
			deleteFn: func(context.Context, string) error {
				t.Fatal("referenced category must not be deleted")
				return nil
			},
		},
	})

	req := withURLParam(authedRequest(http.MethodDelete, "/api/categories/cat-1", "user-1", nil), "id", "cat-1")
	rr := httptest.NewRecorder()
	handler.DeleteCategory(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	var payload struct {
		Message          string `json:"message"`
		TransactionCount int64  `json:"transactionCount"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload.TransactionCount != 3 || !strings.Contains(payload.Message, "3 transaction(s)") {
		t.Fatalf("unexpected payload: %#v", payload)
	}
}

func TestDeleteCategoryUnreferenced(t *testing.T) {
	deleted := false
	handler := newTestHandler(testDeps{
		categories: stubCategoryStore{
			deleteFn: func(_ context.Context, categoryID string) error {
				deleted = categoryID == "cat-1"
				return nil
			},
		},
	})

	req := withURLParam(authedRequest(http.MethodDelete, "/api/categories/cat-1", "user-1", nil), "id", "cat-1")
	rr := httptest.NewRecorder()
	handler.DeleteCategory(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !deleted {
		t.Fatal("expected category delete")
	}
}

func TestDeleteCategoryNotFound(t *testing.T) {
	handler := newTestHandler(testDeps{
		categories: stubCategoryStore{
			getByIDAndUserFn: func(context.Context, string, string) (models.Category, error) {
				return models.Category{}, sql.ErrNoRows
			},
		},
	})

	req := withURLParam(authedRequest(http.MethodDelete, "/api/categories/missing", "user-1", nil), "id", "missing")
	rr := httptest.NewRecorder()
	handler.DeleteCategory(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}
