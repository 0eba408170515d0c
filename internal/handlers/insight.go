package handlers

import (
	"log"
	"net/http"

	"danawise/internal/middleware"
)

func (h *Handler) Insight(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	tip, err := h.insight.Tip(r.Context(), userID)
	if err != nil {
		log.Printf("insight failed: %v", err)
		respondError(w, http.StatusInternalServerError, "unable to generate insight")
		return
	}
	w.Header().Set("Cache-Control", "s-maxage=300, stale-while-revalidate=600")
	respondJSON(w, http.StatusOK, map[string]any{"insight": tip})
}
