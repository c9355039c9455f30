package comment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/NordCoder/Bloggerus/internal/domain/comment"
	"github.com/NordCoder/Bloggerus/internal/obs"
	"github.com/NordCoder/Bloggerus/internal/repository/postgres"
	"github.com/NordCoder/Bloggerus/internal/services/blog-api/auth"
	"github.com/NordCoder/Bloggerus/internal/services/blog-api/httpx"
)

type Handler struct {
	log *zap.Logger
	uc  *Usecase
}

func NewHandler(log *zap.Logger, uc *Usecase) *Handler {
	return &Handler{log: log, uc: uc}
}

type createRequest struct {
	BlogID  int64  `json:"blog_id"`
	Content string `json:"content"`
}

type updateRequest struct {
	Content string `json:"content"`
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CallerFrom(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}
	var req createRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Content == "" || req.BlogID == 0 {
		httpx.Error(w, http.StatusBadRequest, "blog_id and content are required")
		return
	}

	obs.WithTrace(r.Context(), h.log).Info("comment.create",
		zap.Int64("uid", caller.ID), zap.Int64("blog_id", req.BlogID))

	c, err := h.uc.Create(r.Context(), caller.ID, req.BlogID, req.Content)
	if err != nil {
		if errors.Is(err, ErrBlogNotFound) {
			httpx.Error(w, http.StatusNotFound, "Blog not found")
			return
		}
		h.fail(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, c)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid comment id")
		return
	}
	c, err := h.uc.Get(r.Context(), id)
	if err != nil {
		h.mapErr(w, r, err, "")
		return
	}
	httpx.JSON(w, http.StatusOK, c)
}

func (h *Handler) ListByBlog(w http.ResponseWriter, r *http.Request) {
	blogID, err := pathID(r)
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid blog id")
		return
	}
	list, err := h.uc.ListByBlog(r.Context(), blogID)
	if err != nil {
		if errors.Is(err, ErrBlogNotFound) {
			httpx.Error(w, http.StatusNotFound, "Blog not found")
			return
		}
		h.fail(w, r, err)
		return
	}
	if list == nil {
		list = []*comment.Comment{}
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CallerFrom(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}
	id, err := pathID(r)
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid comment id")
		return
	}
	var req updateRequest
	if err := httpx.Decode(r, &req); err != nil || req.Content == "" {
		httpx.Error(w, http.StatusBadRequest, "content is required")
		return
	}
	c, err := h.uc.Update(r.Context(), caller.ID, id, req.Content)
	if err != nil {
		h.mapErr(w, r, err, "Not authorized to update this comment")
		return
	}
	httpx.JSON(w, http.StatusOK, c)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CallerFrom(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}
	id, err := pathID(r)
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid comment id")
		return
	}
	if err := h.uc.Delete(r.Context(), caller.ID, id); err != nil {
		h.mapErr(w, r, err, "Not authorized to delete this comment")
		return
	}
	httpx.Message(w, http.StatusOK, "Comment deleted successfully")
}

func (h *Handler) mapErr(w http.ResponseWriter, r *http.Request, err error, forbiddenMsg string) {
	switch {
	case errors.Is(err, postgres.ErrNotFound):
		httpx.Error(w, http.StatusNotFound, "Comment not found")
	case errors.Is(err, ErrForbidden):
		httpx.Error(w, http.StatusForbidden, forbiddenMsg)
	default:
		h.fail(w, r, err)
	}
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	obs.WithTrace(r.Context(), h.log).Error("comment handler error", zap.Error(err))
	httpx.Error(w, http.StatusInternalServerError, "Something went wrong")
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}
