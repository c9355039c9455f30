package blog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/NordCoder/Bloggerus/internal/domain/blog"
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

type blogRequest struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	IsPublished bool   `json:"is_published"`
	CategoryID  *int64 `json:"category_id"`
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CallerFrom(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}
	var req blogRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Title == "" || req.Content == "" {
		httpx.Error(w, http.StatusBadRequest, "title and content are required")
		return
	}

	obs.WithTrace(r.Context(), h.log).Info("blog.create",
		zap.Int64("uid", caller.ID), zap.String("title", req.Title))

	b, err := h.uc.Create(r.Context(), caller.ID, &blog.Blog{
		Title:       req.Title,
		Content:     req.Content,
		IsPublished: req.IsPublished,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		if errors.Is(err, postgres.ErrConstraint) {
			httpx.Error(w, http.StatusBadRequest, "Category not found")
			return
		}
		h.fail(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, b)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CallerFrom(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}
	id, err := pathID(r)
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid blog id")
		return
	}
	b, err := h.uc.Get(r.Context(), caller.ID, id)
	if err != nil {
		h.mapErr(w, r, err, "Not authorized to read this blog")
		return
	}
	httpx.JSON(w, http.StatusOK, b)
}

func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CallerFrom(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}
	list, err := h.uc.ListMine(r.Context(), caller.ID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if list == nil {
		list = []*blog.Blog{}
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
		httpx.Error(w, http.StatusBadRequest, "invalid blog id")
		return
	}
	var req blogRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Title == "" || req.Content == "" {
		httpx.Error(w, http.StatusBadRequest, "title and content are required")
		return
	}

	obs.WithTrace(r.Context(), h.log).Info("blog.update",
		zap.Int64("uid", caller.ID), zap.Int64("id", id))

	b, err := h.uc.Update(r.Context(), caller.ID, &blog.Blog{
		ID:          id,
		Title:       req.Title,
		Content:     req.Content,
		IsPublished: req.IsPublished,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		if errors.Is(err, postgres.ErrConstraint) {
			httpx.Error(w, http.StatusBadRequest, "Category not found")
			return
		}
		h.mapErr(w, r, err, "Not authorized to update this blog")
		return
	}
	httpx.JSON(w, http.StatusOK, b)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CallerFrom(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}
	id, err := pathID(r)
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid blog id")
		return
	}

	obs.WithTrace(r.Context(), h.log).Info("blog.delete",
		zap.Int64("uid", caller.ID), zap.Int64("id", id))

	if err := h.uc.Delete(r.Context(), caller.ID, id); err != nil {
		h.mapErr(w, r, err, "Not authorized to delete this blog")
		return
	}
	httpx.Message(w, http.StatusOK, "Blog deleted successfully")
}

// ListPublished is the public feed; no auth required.
func (h *Handler) ListPublished(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	list, err := h.uc.ListPublished(r.Context(), limit, offset)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if list == nil {
		list = []*blog.Blog{}
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	list, err := h.uc.Search(r.Context(), q)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if list == nil {
		list = []*blog.Blog{}
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) mapErr(w http.ResponseWriter, r *http.Request, err error, forbiddenMsg string) {
	switch {
	case errors.Is(err, postgres.ErrNotFound):
		httpx.Error(w, http.StatusNotFound, "Blog not found")
	case errors.Is(err, ErrForbidden):
		httpx.Error(w, http.StatusForbidden, forbiddenMsg)
	default:
		h.fail(w, r, err)
	}
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	obs.WithTrace(r.Context(), h.log).Error("blog handler error", zap.Error(err))
	httpx.Error(w, http.StatusInternalServerError, "Something went wrong")
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}
