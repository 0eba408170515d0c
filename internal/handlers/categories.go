package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"danawise/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	categories, err := h.categories.ListByUser(r.Context(), userID)
	if err != nil {
		log.Printf("list categories failed: %v", err)
		respondError(w, http.StatusInternalServerError, "unable to load categories")
		return
	}
	respondJSON(w, http.StatusOK, categories)
}

type createCategoryRequest struct {
	Name string `json:"name" validate:"required,notblank,max=50"`
}

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req createCategoryRequest
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
	categoryID := uuid.NewString()
	if err := h.categories.Create(r.Context(), categoryID, userID, req.Name); err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			respondError(w, http.StatusBadRequest, "Category name already exists")
			return
		}
		log.Printf("create category failed: %v", err)
		respondError(w, http.StatusInternalServerError, "unable to create category")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{
		"id":   categoryID,
		"name": req.Name,
	})
}

func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	categoryID := chi.URLParam(r, "id")
	if _, err := h.categories.GetByIDAndUser(r.Context(), categoryID, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "Category not found")
			return
		}
		log.Printf("load category failed: %v", err)
		respondError(w, http.StatusInternalServerError, "unable to load category")
		return
	}
	count, err := h.categories.CountTransactions(r.Context(), categoryID, userID)
	if err != nil {
		log.Printf("count category transactions failed: %v", err)
		respondError(w, http.StatusInternalServerError, "unable to delete category")
		return
	}
	if count > 0 {
		respondJSON(w, http.StatusBadRequest, map[string]any{
			"message":          fmt.Sprintf("Category is used by %d transaction(s) and cannot be deleted", count),
			"transactionCount": count,
		})
		return
	}
	if err := h.categories.Delete(r.Context(), categoryID); err != nil {
		log.Printf("delete category failed: %v", err)
		respondError(w, http.StatusInternalServerError, "unable to delete category")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Category deleted successfully"})
}
