package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestInsight(t *testing.T) {
	handler := newTestHandler(testDeps{
		insight: stubInsight{
			tipFn: func(context.Context, string) (string, error) {
				return "Cut back on coffee runs.", nil
			},
		},
	})

	req := authedRequest(http.MethodGet, "/api/insight", "user-1", nil)
	rr := httptest.NewRecorder()
	handler.Insight(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if got := rr.Header().Get("Cache-Control"); got != "s-maxage=300, stale-while-revalidate=600" {
		t.Fatalf("unexpected Cache-Control: %q", got)
	}
	var payload map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload["insight"] != "Cut back on coffee runs." {
		t.Fatalf("unexpected payload: %#v", payload)
	}
}

func TestInsightProviderFailure(t *testing.T) {
	handler := newTestHandler(testDeps{
		insight: stubInsight{
			tipFn: func(context.Context, string) (string, error) {
				return "", errors.New("provider down")
			},
		},
	})

	req := authedRequest(http.MethodGet, "/api/insight", "user-1", nil)
	rr := httptest.NewRecorder()
	handler.Insight(rr, req)
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
}
