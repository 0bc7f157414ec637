package user

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/AP-Porag/book-management-app/internal/httpx"
	"github.com/AP-Porag/book-management-app/internal/platform/crypto"
)

type HTTPHandler struct {
	service  *Service
	secret   string
	tokenTTL time.Duration
}

func NewHTTPHandler(service *Service, secret string, tokenTTL time.Duration) *HTTPHandler {
	return &HTTPHandler{service: service, secret: secret, tokenTTL: tokenTTL}
}

type registerReq struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// Register handles POST /auth/register
func (h *HTTPHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)

	if validationErrors := httpx.ValidateStruct(req); len(validationErrors) > 0 {
		httpx.JSONError(w, http.StatusBadRequest, "Invalid input", validationErrors)
		return
	}

	newUser, err := h.service.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			httpx.JSONError(w, http.StatusConflict, "Email already registered", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "Server Error", nil)
		return
	}

	token, err := crypto.GenerateToken(h.secret, newUser.ID, h.tokenTTL)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "Server Error", nil)
		return
	}

	httpx.JSON(w, http.StatusCreated, map[string]any{
		"token": token,
		"user":  newUser,
	})
}

type loginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login handles POST /auth/login
func (h *HTTPHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	req.Email = strings.TrimSpace(req.Email)

	if validationErrors := httpx.ValidateStruct(req); len(validationErrors) > 0 {
		httpx.JSONError(w, http.StatusBadRequest, "Invalid input", validationErrors)
		return
	}

	u, err := h.service.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			httpx.JSONError(w, http.StatusUnauthorized, "Invalid email or password", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "Server Error", nil)
		return
	}

	token, err := crypto.GenerateToken(h.secret, u.ID, h.tokenTTL)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "Server Error", nil)
		return
	}

	httpx.JSON(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  u,
	})
}

// Profile handles GET /auth/profile
func (h *HTTPHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFrom(r)
	if userID == "" {
		httpx.JSONError(w, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	u, err := h.service.GetByID(r.Context(), userID)
	if err != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	httpx.JSON(w, http.StatusOK, u)
}
