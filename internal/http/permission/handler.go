package permission

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/invoicer/internal/http/middleware"
	"github.com/MrJamesThe3rd/invoicer/internal/permission"
)

type Handler struct {
	policy *permission.Policy
}

func NewHandler(policy *permission.Policy) *Handler {
	return &Handler{policy: policy}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/permissions", h.list)
}

type permissionsResponse struct {
	Identity    permission.Identity     `json:"identity"`
	Permissions []permission.Permission `json:"permissions"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	id := middleware.IdentityFrom(r.Context())

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(permissionsResponse{
		Identity:    id,
		Permissions: h.policy.Resolve(id).List(),
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
