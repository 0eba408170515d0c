package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"danawise/internal/middleware"
	"danawise/internal/models"
	"danawise/internal/money"
	"danawise/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

func (h *Handler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	accounts, err := h.accounts.ListActiveByUser(r.Context(), userID)
	if err != nil {
		log.Printf("list accounts failed: %v", err)
		respondError(w, http.StatusInternalServerError, "unable to load budget accounts")
		return
	}
	normalized := make([]map[string]any, 0, len(accounts))
	for _, account := range accounts {
		normalized = append(normalized, accountToMap(account.BudgetAccount, account.TransactionCount))
	}
	respondJSON(w, http.StatusOK, normalized)
}

type createAccountRequest struct {
	Name    string  `json:"name" validate:"required,notblank,max=50"`
	Type    string  `json:"type" validate:"required,oneof=BANK EWALLET CASH INVESTMENT CREDIT_CARD"`
	Balance string  `json:"balance" validate:"required"`
	Color   *string `json:"color,omitempty"`
	Icon    *string `json:"icon,omitempty"`
}

func (h *Handler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req createAccountRequest
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
	balance, ok := parseBalanceMinor(req.Balance)
	if !ok {
		respondError(w, http.StatusBadRequest, "Balance cannot be negative")
		return
	}
	exists, err := h.accounts.ActiveNameExists(r.Context(), userID, req.Name, "")
	if err != nil {
		log.Printf("account name check failed: %v", err)
		respondError(w, http.StatusInternalServerError, "unable to create budget account")
		return
	}
	if exists {
		respondError(w, http.StatusBadRequest, "Account name already exists")
		return
	}
	accountID := uuid.NewString()
	err = h.accounts.Create(r.Context(), store.AccountInput{
		ID:      accountID,
		UserID:  userID,
		Name:    req.Name,
		Type:    req.Type,
		Balance: balance,
		Color:   req.Color,
		Icon:    req.Icon,
	})
	if err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			respondError(w, http.StatusBadRequest, "Account name already exists")
			return
		}
		log.Printf("create account failed: %v", err)
		respondError(w, http.StatusInternalServerError, "unable to create budget account")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{
		"id":                accountID,
		"name":              req.Name,
		"type":              req.Type,
		"balance":           money.FormatMinor(balance),
		"color":             req.Color,
		"icon":              req.Icon,
		"is_active":         true,
		"transaction_count": int64(0),
	})
}

type updateAccountRequest struct {
	Name     *string `json:"name,omitempty"`
	Type     *string `json:"type,omitempty"`
	Balance  *string `json:"balance,omitempty"`
	Color    *string `json:"color,omitempty"`
	Icon     *string `json:"icon,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

func (h *Handler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	accountID := chi.URLParam(r, "id")
	var req updateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	existing, err := h.accounts.GetByIDAndUser(r.Context(), accountID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "Budget account not found")
			return
		}
		log.Printf("load account failed: %v", err)
		respondError(w, http.StatusInternalServerError, "unable to load budget account")
		return
	}

	update := store.AccountUpdate{
		Name:     existing.Name,
		Type:     existing.Type,
		Balance:  existing.Balance,
		Color:    existing.Color,
		Icon:     existing.Icon,
		IsActive: existing.IsActive,
	}
	if req.Name != nil {
		update.Name = *req.Name
	}
	if req.Type != nil {
		if !models.ValidAccountType(*req.Type) {
			respondError(w, http.StatusBadRequest, "invalid account type")
			return
		}
		update.Type = *req.Type
	}
	if req.Balance != nil {
		balance, ok := parseBalanceMinor(*req.Balance)
		if !ok {
			respondError(w, http.StatusBadRequest, "Balance cannot be negative")
			return
		}
		update.Balance = balance
	}
	if req.Color != nil {
		update.Color = req.Color
	}
	if req.Icon != nil {
		update.Icon = req.Icon
	}
	if req.IsActive != nil {
		update.IsActive = *req.IsActive
	}
	if update.Name == "" {
		respondError(w, http.StatusBadRequest, "Name is required")
		return
	}
	if update.Name != existing.Name {
		exists, err := h.accounts.ActiveNameExists(r.Context(), userID, update.Name, accountID)
		if err != nil {
			log.Printf("account name check failed: %v", err)
			respondError(w, http.StatusInternalServerError, "unable to update budget account")
			return
		}
		if exists {
			respondError(w, http.StatusBadRequest, "Account name already exists")
			return
		}
	}
	if err := h.accounts.Update(r.Context(), accountID, update); err != nil {
		log.Printf("update account failed: %v", err)
		respondError(w, http.StatusInternalServerError, "unable to update budget account")
		return
	}
	count, err := h.accounts.CountTransactions(r.Context(), accountID, userID)
	if err != nil {
		log.Printf("count account transactions failed: %v", err)
		respondError(w, http.StatusInternalServerError, "unable to load budget account")
		return
	}
	updated := existing
	updated.Name = update.Name
	updated.Type = update.Type
	updated.Balance = update.Balance
	updated.Color = update.Color
	updated.Icon = update.Icon
	updated.IsActive = update.IsActive
	respondJSON(w, http.StatusOK, accountToMap(updated, count))
}

// DeleteAccount soft-deletes a referenced account and hard-deletes an
// unreferenced one, reporting which happened.
func (h *Handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	accountID := chi.URLParam(r, "id")
	if _, err := h.accounts.GetByIDAndUser(r.Context(), accountID, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "Budget account not found")
			return
		}
		log.Printf("load account failed: %v", err)
		respondError(w, http.StatusInternalServerError, "unable to load budget account")
		return
	}
	count, err := h.accounts.CountTransactions(r.Context(), accountID, userID)
	if err != nil {
		log.Printf("count account transactions failed: %v", err)
		respondError(w, http.StatusInternalServerError, "unable to delete budget account")
		return
	}
	if count > 0 {
		if err := h.accounts.Deactivate(r.Context(), accountID); err != nil {
			log.Printf("deactivate account failed: %v", err)
			respondError(w, http.StatusInternalServerError, "unable to delete budget account")
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{
			"message":          "Budget account deactivated successfully",
			"transactionCount": count,
		})
		return
	}
	if err := h.accounts.Delete(r.Context(), accountID); err != nil {
		log.Printf("delete account failed: %v", err)
		respondError(w, http.StatusInternalServerError, "unable to delete budget account")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Budget account deleted successfully"})
}

func accountToMap(account models.BudgetAccount, transactionCount int64) map[string]any {
	return map[string]any{
		"id":                account.ID,
		"name":              account.Name,
		"type":              account.Type,
		"balance":           money.FormatMinor(account.Balance),
		"color":             account.Color,
		"icon":              account.Icon,
		"is_active":         account.IsActive,
		"created_at":        account.CreatedAt,
		"updated_at":        account.UpdatedAt,
		"transaction_count": transactionCount,
	}
}
