package category

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/NordCoder/Bloggerus/internal/domain/blog"
	"github.com/NordCoder/Bloggerus/internal/domain/category"
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

type categoryRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CallerFrom(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}
	var req categoryRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		httpx.Error(w, http.StatusBadRequest, "name is required")
		return
	}

	obs.WithTrace(r.Context(), h.log).Info("category.create",
		zap.Int64("uid", caller.ID), zap.String("name", req.Name))

	c, err := h.uc.Create(r.Context(), caller.ID, req.Name, req.Description)
	if err != nil {
		if errors.Is(err, postgres.ErrConflict) {
			httpx.Error(w, http.StatusConflict, "Category already exists")
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
		httpx.Error(w, http.StatusBadRequest, "invalid category id")
		return
	}
	c, err := h.uc.Get(r.Context(), id)
	if err != nil {
		h.mapErr(w, r, err, "")
		return
	}
	httpx.JSON(w, http.StatusOK, c)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.uc.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if list == nil {
		list = []*category.Category{}
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
		httpx.Error(w, http.StatusBadRequest, "invalid category id")
		return
	}
	var req categoryRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		httpx.Error(w, http.StatusBadRequest, "name is required")
		return
	}

	c, err := h.uc.Update(r.Context(), caller.ID, &category.Category{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, postgres.ErrConflict) {
			httpx.Error(w, http.StatusConflict, "Category already exists")
			return
		}
		h.mapErr(w, r, err, "Not authorized to update this category")
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
		httpx.Error(w, http.StatusBadRequest, "invalid category id")
		return
	}
	if err := h.uc.Delete(r.Context(), caller.ID, id); err != nil {
		h.mapErr(w, r, err, "Not authorized to delete this category")
		return
	}
	httpx.Message(w, http.StatusOK, "Category deleted successfully")
}

func (h *Handler) Blogs(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid category id")
		return
	}
	list, err := h.uc.Blogs(r.Context(), id)
	if err != nil {
		h.mapErr(w, r, err, "")
		return
	}
	if list == nil {
		list = []*blog.WithCategory{}
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) mapErr(w http.ResponseWriter, r *http.Request, err error, forbiddenMsg string) {
	switch {
	case errors.Is(err, postgres.ErrNotFound):
		httpx.Error(w, http.StatusNotFound, "Category not found")
	case errors.Is(err, ErrForbidden):
		httpx.Error(w, http.StatusForbidden, forbiddenMsg)
	default:
		h.fail(w, r, err)
	}
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	obs.WithTrace(r.Context(), h.log).Error("category handler error", zap.Error(err))
	httpx.Error(w, http.StatusInternalServerError, "Something went wrong")
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}
