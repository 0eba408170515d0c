package handlers

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"danawise/internal/auth"
	"danawise/internal/middleware"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type registerRequest struct {
	Name     string `json:"name" validate:"required,notblank,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
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
	if _, err := h.users.GetByEmail(r.Context(), req.Email); err == nil {
		respondError(w, http.StatusConflict, "User with this email already exists")
		return
	} else if !errors.Is(err, sql.ErrNoRows) {
		respondError(w, http.StatusInternalServerError, "registration failed")
		return
	}
	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to secure password")
		return
	}
	userID := uuid.NewString()
	err = h.txRunner.WithTx(r.Context(), func(tx *sqlx.Tx) error {
		return h.users.Create(r.Context(), tx, userID, req.Name, req.Email, &passwordHash, nil)
	})
	if err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			respondError(w, http.StatusConflict, "User with this email already exists")
			return
		}
		log.Printf("register failed: %v", err)
		respondError(w, http.StatusInternalServerError, "registration failed")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{
		"user": map[string]string{
			"id":    userID,
			"name":  req.Name,
			"email": req.Email,
		},
		"message": "User created successfully",
	})
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
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
	user, err := h.users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		log.Printf("login lookup failed: %v", err)
		respondError(w, http.StatusInternalServerError, "login failed")
		return
	}
	if user.PasswordHash == nil || !auth.CheckPassword(*user.PasswordHash, req.Password) {
		respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	token, err := auth.GenerateToken(h.cfg.JWTSecret, user.ID, h.cfg.TokenTTL)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (h *Handler) GoogleAuthURL(w http.ResponseWriter, r *http.Request) {
	state := make([]byte, 16)
	if _, err := rand.Read(state); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to generate state")
		return
	}
	url, err := h.google.AuthURL(hex.EncodeToString(state))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "google login not configured")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"url":   url,
		"state": hex.EncodeToString(state),
	})
}

type googleLoginRequest struct {
	Code string `json:"code" validate:"required"`
}

// GoogleLogin exchanges an OAuth authorization code for a session token,
// creating the user on first sign-in.
func (h *Handler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	var req googleLoginRequest
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
	profile, err := h.google.Exchange(r.Context(), req.Code)
	if err != nil {
		if errors.Is(err, auth.ErrGoogleNotConfigured) {
			respondError(w, http.StatusInternalServerError, "google login not configured")
			return
		}
		respondError(w, http.StatusUnauthorized, "google sign-in failed")
		return
	}
	user, err := h.users.GetByEmail(r.Context(), profile.Email)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Printf("google login lookup failed: %v", err)
			respondError(w, http.StatusInternalServerError, "login failed")
			return
		}
		userID := uuid.NewString()
		var image *string
		if profile.Picture != "" {
			image = &profile.Picture
		}
		err = h.txRunner.WithTx(r.Context(), func(tx *sqlx.Tx) error {
			return h.users.Create(r.Context(), tx, userID, profile.Name, profile.Email, nil, image)
		})
		if err != nil {
			log.Printf("google user create failed: %v", err)
			respondError(w, http.StatusInternalServerError, "login failed")
			return
		}
		user.ID = userID
	}
	token, err := auth.GenerateToken(h.cfg.JWTSecret, user.ID, h.cfg.TokenTTL)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	user, err := h.users.GetByID(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load user")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"id":         user.ID,
		"name":       user.Name,
		"email":      user.Email,
		"image":      user.Image,
		"created_at": user.CreatedAt,
	})
}
