package audittrail

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/openclerk/backoffice/internal/transport"
	"github.com/openclerk/backoffice/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Service *Service
}

func NewHandler(svc *Service) *Handler {
	lg := logger.L()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

func (h *Handler) GetEntityTrail(w http.ResponseWriter, r *http.Request) {
	entityType := chi.URLParam(r, "entityType")
	raw := chi.URLParam(r, "entityID")
	entityID, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || entityID == 0 {
		h.WriteError(w, http.StatusBadRequest, "invalid entityID parameter")
		return
	}

	trails, err := h.Service.GetEntityTrail(r.Context(), entityType, uint(entityID))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, trails)
}

func (h *Handler) GetUserTrail(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "userID")
	userID, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || userID == 0 {
		h.WriteError(w, http.StatusBadRequest, "invalid userID parameter")
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	trails, err := h.Service.GetUserTrail(r.Context(), uint(userID), limit)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, trails)
}
