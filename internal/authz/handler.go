package authz

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/openclerk/backoffice/internal"
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

type assignRoleDTO struct {
	RoleID uint `json:"role_id"`
}

type grantPermissionDTO struct {
	PermissionID uint `json:"permission_id"`
}

func (h *Handler) GetUserRoles(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.uintParam(w, r, "userID")
	if !ok {
		return
	}

	roles, err := h.Service.GetUserRoles(r.Context(), userID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, roles)
}

func (h *Handler) GetUserPermissions(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.uintParam(w, r, "userID")
	if !ok {
		return
	}

	permissions, err := h.Service.GetUserPermissions(r.Context(), userID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, permissions)
}

func (h *Handler) AssignRole(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.uintParam(w, r, "userID")
	if !ok {
		return
	}

	var dto assignRoleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil || dto.RoleID == 0 {
		h.WriteError(w, http.StatusBadRequest, "role_id is required")
		return
	}

	if err := h.Service.AssignRole(r.Context(), userID, dto.RoleID); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) RemoveRole(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.uintParam(w, r, "userID")
	if !ok {
		return
	}
	roleID, ok := h.uintParam(w, r, "roleID")
	if !ok {
		return
	}

	if err := h.Service.RemoveRole(r.Context(), userID, roleID); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GrantPermission(w http.ResponseWriter, r *http.Request) {
	roleID, ok := h.uintParam(w, r, "roleID")
	if !ok {
		return
	}

	var dto grantPermissionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil || dto.PermissionID == 0 {
		h.WriteError(w, http.StatusBadRequest, "permission_id is required")
		return
	}

	if err := h.Service.GrantPermission(r.Context(), roleID, dto.PermissionID); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) RevokePermission(w http.ResponseWriter, r *http.Request) {
	roleID, ok := h.uintParam(w, r, "roleID")
	if !ok {
		return
	}
	permissionID, ok := h.uintParam(w, r, "permissionID")
	if !ok {
		return
	}

	if err := h.Service.RevokePermission(r.Context(), roleID, permissionID); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CheckPermission answers whether a user holds Module:Action. Useful for
// admin tooling to preview access without attempting the operation.
func (h *Handler) CheckPermission(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.uintParam(w, r, "userID")
	if !ok {
		return
	}

	module := r.URL.Query().Get("module")
	action := r.URL.Query().Get("action")
	if module == "" || action == "" {
		h.HandleServiceError(w, internal.NewValidationError("module and action query parameters are required", internal.ErrCodeMissingField))
		return
	}

	allowed, err := h.Service.UserHasPermission(r.Context(), userID, module, action)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]bool{"allowed": allowed})
}

func (h *Handler) uintParam(w http.ResponseWriter, r *http.Request, name string) (uint, bool) {
	raw := chi.URLParam(r, name)
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || v == 0 {
		h.WriteError(w, http.StatusBadRequest, "invalid "+name+" parameter")
		return 0, false
	}
	return uint(v), true
}
