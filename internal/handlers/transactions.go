package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"danawise/internal/middleware"
	"danawise/internal/money"
	"danawise/internal/services"
	"danawise/internal/store"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"
)

func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	query := r.URL.Query()
	page := parseInt(query.Get("page"), 1)
	limit := parseInt(query.Get("limit"), 10)
	offset := (page - 1) * limit

	var (
		rows  []store.TransactionDetail
		total int64
	)
	g, gctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		rows, err = h.transactions.ListByUser(gctx, userID, limit, offset)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = h.transactions.CountByUser(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		log.Printf("list transactions failed: %v", err)
		respondError(w, http.StatusInternalServerError, "unable to load transactions")
		return
	}

	normalized := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		normalized = append(normalized, transactionToMap(row))
	}
	totalPages := total / int64(limit)
	if total%int64(limit) != 0 {
		totalPages++
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"transactions": normalized,
		"pagination": map[string]any{
			"page":       page,
			"limit":      limit,
			"total":      total,
			"totalPages": totalPages,
		},
	})
}

type createTransactionRequest struct {
	Amount          string  `json:"amount" validate:"required"`
	Type            string  `json:"type" validate:"required,oneof=INCOME EXPENSE"`
	Description     string  `json:"description" validate:"required,notblank"`
	Date            string  `json:"date" validate:"required"`
	CategoryID      string  `json:"categoryId" validate:"required"`
	BudgetAccountID *string `json:"budgetAccountId,omitempty"`
}

func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if fields, err := h.check(req); err != nil {
		respondError(w, http.StatusInternalServerError, "validation failed")
		return
	} else if fields != nil {
		respondValidation(w, fields)
		return
	}
	amount, ok := parseAmountMinor(req.Amount)
	if !ok {
		respondError(w, http.StatusBadRequest, "Amount must be a positive number")
		return
	}
	date, ok := parseDate(req.Date)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid date")
		return
	}
	created, err := h.txService.Create(r.Context(), services.CreateTransactionRequest{
		UserID:          userID,
		CategoryID:      req.CategoryID,
		BudgetAccountID: req.BudgetAccountID,
		AmountMinor:     amount,
		Type:            req.Type,
		Description:     req.Description,
		Date:            date,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCategoryNotFound):
			respondError(w, http.StatusBadRequest, "Category not found")
		case errors.Is(err, services.ErrAccountNotFound):
			respondError(w, http.StatusBadRequest, "Budget account not found")
		case errors.Is(err, services.ErrInvalidAmount), errors.Is(err, services.ErrInvalidType):
			respondError(w, http.StatusBadRequest, "invalid transaction")
		default:
			log.Printf("create transaction failed: %v", err)
			respondError(w, http.StatusInternalServerError, "unable to create transaction")
		}
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{
		"id":                created.ID,
		"amount":            money.FormatMinor(created.Amount),
		"type":              created.Type,
		"description":       created.Description,
		"date":              created.Date,
		"category_id":       created.CategoryID,
		"budget_account_id": created.BudgetAccountID,
	})
}

func (h *Handler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	transactionID := chi.URLParam(r, "id")
	if _, err := h.transactions.GetByIDAndUser(r.Context(), transactionID, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "Transaction not found")
			return
		}
		log.Printf("load transaction failed: %v", err)
		respondError(w, http.StatusInternalServerError, "unable to load transaction")
		return
	}
	if err := h.transactions.Delete(r.Context(), transactionID); err != nil {
		log.Printf("delete transaction failed: %v", err)
		respondError(w, http.StatusInternalServerError, "unable to delete transaction")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func transactionToMap(row store.TransactionDetail) map[string]any {
	result := map[string]any{
		"id":          row.ID,
		"amount":      money.FormatMinor(row.Amount),
		"type":        row.Type,
		"description": row.Description,
		"date":        row.Date,
		"created_at":  row.CreatedAt,
		"category": map[string]any{
			"id":   row.CategoryID,
			"name": derefString(row.CategoryName),
		},
	}
	if row.BudgetAccountID != nil {
		result["budgetAccount"] = map[string]any{
			"id":   *row.BudgetAccountID,
			"name": derefString(row.AccountName),
			"type": derefString(row.AccountType),
		}
	} else {
		result["budgetAccount"] = nil
	}
	return result
}

func derefString(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
