package auth

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/NordCoder/Bloggerus/internal/obs"
	"github.com/NordCoder/Bloggerus/internal/services/blog-api/httpx"
)

type Handler struct {
	log *zap.Logger
	uc  *Usecase
}

func NewHandler(log *zap.Logger, uc *Usecase) *Handler {
	return &Handler{log: log, uc: uc}
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	UserID       int64  `json:"user_id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type refreshResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" || req.Email == "" {
		httpx.Error(w, http.StatusBadRequest, "username, password and email are required")
		return
	}

	log := obs.WithTrace(r.Context(), h.log)
	log.Info("auth.register", zap.String("username", req.Username))

	if _, err := h.uc.Register(r.Context(), req.Username, req.Email, req.Password); err != nil {
		if errors.Is(err, ErrUserExists) {
			httpx.Error(w, http.StatusConflict, "User already exists")
			return
		}
		log.Error("register failed", zap.Error(err))
		httpx.Error(w, http.StatusInternalServerError, "Something went wrong")
		return
	}
	httpx.Message(w, http.StatusOK, "User created successfully")
}

// Token is the OAuth2-style password grant: credentials arrive form-encoded.
func (h *Handler) Token(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid form body")
		return
	}
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	log := obs.WithTrace(r.Context(), h.log)
	log.Info("auth.token", zap.String("username", username))

	rec, access, refresh, err := h.uc.Login(r.Context(), username, password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			httpx.Error(w, http.StatusUnauthorized, "Invalid username or password")
			return
		}
		log.Error("login failed", zap.Error(err))
		httpx.Error(w, http.StatusInternalServerError, "Something went wrong")
		return
	}
	httpx.JSON(w, http.StatusOK, tokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
		UserID:       rec.ID,
		Username:     rec.Username,
		Email:        rec.Email,
	})
}

func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := httpx.Decode(r, &req); err != nil || req.RefreshToken == "" {
		httpx.Error(w, http.StatusBadRequest, "refresh_token is required")
		return
	}

	access, err := h.uc.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, ErrRefreshExpired):
			httpx.Error(w, http.StatusUnauthorized, "Refresh token expired")
		case errors.Is(err, ErrRefreshInvalid):
			httpx.Error(w, http.StatusUnauthorized, "Invalid refresh token")
		default:
			obs.WithTrace(r.Context(), h.log).Error("refresh failed", zap.Error(err))
			httpx.Error(w, http.StatusInternalServerError, "Something went wrong")
		}
		return
	}
	httpx.JSON(w, http.StatusOK, refreshResponse{AccessToken: access, TokenType: "bearer"})
}
