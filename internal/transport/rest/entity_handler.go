package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/openclerk/backoffice/internal/transport"
	"github.com/openclerk/backoffice/pkg/logger"
)

// CRUDService is what an entity handler needs from the service layer.
type CRUDService[T any] interface {
	GetAll(ctx context.Context) ([]T, error)
	GetByID(ctx context.Context, id uint) (*T, error)
	Create(ctx context.Context, e *T) (*T, error)
	Update(ctx context.Context, id uint, e *T) (*T, error)
	Delete(ctx context.Context, id uint) error
}

// EntityHandler serves the uniform CRUD surface for one entity type.
type EntityHandler[T any] struct {
	*transport.BaseHandler
	Service CRUDService[T]
}

func NewEntityHandler[T any](svc CRUDService[T]) *EntityHandler[T] {
	lg := logger.L()
	if lg == nil {
		lg = slog.Default()
	}
	return &EntityHandler[T]{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

func (h *EntityHandler[T]) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.GetAll(r.Context())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, items)
}

func (h *EntityHandler[T]) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}

	item, err := h.Service.GetByID(r.Context(), id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, item)
}

func (h *EntityHandler[T]) Create(w http.ResponseWriter, r *http.Request) {
	var body T
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.Service.Create(r.Context(), &body)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, created)
}

func (h *EntityHandler[T]) Replace(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}

	var body T
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.Service.Update(r.Context(), id, &body)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, updated)
}

func (h *EntityHandler[T]) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}

	if err := h.Service.Delete(r.Context(), id); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *EntityHandler[T]) idParam(w http.ResponseWriter, r *http.Request) (uint, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		h.WriteError(w, http.StatusBadRequest, "invalid id parameter")
		return 0, false
	}
	return uint(id), true
}

// RegisterCRUDRoutes mounts the five CRUD verbs for one entity under a
// route group, each guarded by the matching Module:Action permission.
func RegisterCRUDRoutes[T any](r chi.Router, h *EntityHandler[T], module string, guard func(module, action string) func(http.Handler) http.Handler) {
	r.With(guard(module, "Read")).Get("/", h.List)
	r.With(guard(module, "Read")).Get("/{id}", h.Get)
	r.With(guard(module, "Create")).Post("/", h.Create)
	r.With(guard(module, "Update")).Put("/{id}", h.Replace)
	r.With(guard(module, "Delete")).Delete("/{id}", h.Delete)
}
