package contact

import (
	"net/http"
	"net/mail"

	"go.uber.org/zap"

	"github.com/NordCoder/Bloggerus/internal/domain/contact"
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

type submitRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" || req.Email == "" || req.Subject == "" || req.Message == "" {
		httpx.Error(w, http.StatusBadRequest, "name, email, subject and message are required")
		return
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid email address")
		return
	}

	log := obs.WithTrace(r.Context(), h.log)
	log.Info("contact.submit", zap.String("email", req.Email), zap.String("subject", req.Subject))

	err := h.uc.Submit(r.Context(), &contact.Contact{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		log.Error("contact submit failed", zap.Error(err))
		httpx.Error(w, http.StatusInternalServerError, "Something went wrong")
		return
	}
	httpx.Message(w, http.StatusOK, "Message sent successfully")
}
