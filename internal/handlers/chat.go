package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"danawise/internal/ai"
	"danawise/internal/middleware"
)

const chatApology = "Sorry, something went wrong while processing the response. Please try again."

type chatRequest struct {
	Messages []ai.Message `json:"messages"`
}

// Chat streams the assistant reply as plain text chunks. Failures after the
// first byte cannot change the status code anymore, so mid-stream errors are
// reported as an apology chunk instead.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if h.cfg.GeminiAPIKey == "" {
		respondError(w, http.StatusInternalServerError, "AI assistant is not configured")
		return
	}
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if len(req.Messages) == 0 {
		respondError(w, http.StatusBadRequest, "messages must not be empty")
		return
	}
	for _, msg := range req.Messages {
		if (msg.Role != "user" && msg.Role != "assistant") || msg.Content == "" {
			respondError(w, http.StatusBadRequest, "invalid message")
			return
		}
	}
	if req.Messages[len(req.Messages)-1].Role != "user" {
		respondError(w, http.StatusBadRequest, "last message must be from the user")
		return
	}

	chunks, err := h.chat.Stream(r.Context(), userID, req.Messages)
	if err != nil {
		log.Printf("chat stream failed: %v", err)
		respondError(w, http.StatusInternalServerError, "unable to start chat")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		respondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	for chunk := range chunks {
		if chunk.Err != nil {
			log.Printf("chat stream interrupted: %v", chunk.Err)
			w.Write([]byte(chatApology))
			flusher.Flush()
			return
		}
		if chunk.Text == "" {
			continue
		}
		if _, err := w.Write([]byte(chunk.Text)); err != nil {
			return
		}
		flusher.Flush()
	}
}
