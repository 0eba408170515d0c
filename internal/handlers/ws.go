package handlers

import (
	"net/http"
	"strings"

	"danawise/internal/auth"
	"danawise/internal/websocket"
)

// WSBalances upgrades the connection and subscribes the caller to balance
// pushes. Browsers cannot set headers on websocket handshakes, so the token
// is accepted from the query string as well as the Authorization header.
func (h *Handler) WSBalances(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		header := r.Header.Get("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			token = strings.TrimPrefix(header, "Bearer ")
		}
	}
	if token == "" {
		respondError(w, http.StatusUnauthorized, "missing token")
		return
	}
	claims, err := auth.ParseToken(h.cfg.JWTSecret, token)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "invalid token")
		return
	}
	websocket.ServeWS(w, r, h.hub, claims.UserID)
}
