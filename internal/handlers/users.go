package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"danawise/internal/middleware"
	"danawise/internal/models"
	"danawise/internal/store"
)

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	user, err := h.users.GetByID(r.Context(), userID)
	if err != nil {
		log.Printf("load profile failed: %v", err)
		respondError(w, http.StatusInternalServerError, "unable to load profile")
		return
	}
	counts, err := h.users.Counts(r.Context(), userID)
	if err != nil {
		log.Printf("load profile counts failed: %v", err)
		respondError(w, http.StatusInternalServerError, "unable to load profile")
		return
	}
	respondJSON(w, http.StatusOK, profileToMap(user, counts))
}

type updateProfileRequest struct {
	Name  string  `json:"name" validate:"required,notblank,max=100"`
	Email string  `json:"email" validate:"required,email"`
	Image *string `json:"image,omitempty"`
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req updateProfileRequest
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
	taken, err := h.users.EmailTaken(r.Context(), req.Email, userID)
	if err != nil {
		log.Printf("email lookup failed: %v", err)
		respondError(w, http.StatusInternalServerError, "unable to update profile")
		return
	}
	if taken {
		respondError(w, http.StatusBadRequest, "Email already exists")
		return
	}
	if err := h.users.UpdateProfile(r.Context(), userID, req.Name, req.Email, req.Image); err != nil {
		log.Printf("update profile failed: %v", err)
		respondError(w, http.StatusInternalServerError, "unable to update profile")
		return
	}
	user, err := h.users.GetByID(r.Context(), userID)
	if err != nil {
		log.Printf("reload profile failed: %v", err)
		respondError(w, http.StatusInternalServerError, "unable to load profile")
		return
	}
	counts, err := h.users.Counts(r.Context(), userID)
	if err != nil {
		log.Printf("reload profile counts failed: %v", err)
		respondError(w, http.StatusInternalServerError, "unable to load profile")
		return
	}
	respondJSON(w, http.StatusOK, profileToMap(user, counts))
}

func profileToMap(user models.User, counts store.UserCounts) map[string]any {
	return map[string]any{
		"id":         user.ID,
		"name":       user.Name,
		"email":      user.Email,
		"image":      user.Image,
		"created_at": user.CreatedAt,
		"_count": map[string]any{
			"transactions":   counts.Transactions,
			"categories":     counts.Categories,
			"budgetAccounts": counts.BudgetAccounts,
		},
	}
}
