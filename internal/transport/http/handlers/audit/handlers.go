package audithandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"jscorphr/internal/domain/audit"
	"jscorphr/internal/domain/auth"
	"jscorphr/internal/transport/http/api"
	"jscorphr/internal/transport/http/middleware"
	"jscorphr/internal/transport/http/shared"
)

type Handler struct {
	Audit *audit.Service
}

func NewHandler(auditSvc *audit.Service) *Handler {
	return &Handler{Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequirePermission(auth.PermAuditRead)).Get("/audit/events", h.handleListEvents)
}

func (h *Handler) handleListEvents(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	filter := audit.Filter{
		Action:     r.URL.Query().Get("action"),
		EntityType: r.URL.Query().Get("entityType"),
		ActorUser:  r.URL.Query().Get("actorUserId"),
	}
	includeDetails := r.URL.Query().Get("details") == "true"
	page := shared.ParsePagination(r, 50, 500)

	total, err := h.Audit.Count(r.Context(), filter)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "audit_failed", "failed to count audit events", requestID)
		return
	}
	events, err := h.Audit.List(r.Context(), filter, includeDetails, page.Limit, page.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "audit_failed", "failed to list audit events", requestID)
		return
	}

	api.Success(w, map[string]any{"total": total, "events": events}, requestID)
}
