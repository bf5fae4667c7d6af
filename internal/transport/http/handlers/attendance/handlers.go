package attendancehandler

import (
	"net/http"
	"regexp"

	"github.com/go-chi/chi/v5"

	"jscorphr/internal/domain/attendance"
	"jscorphr/internal/domain/auth"
	"jscorphr/internal/transport/http/api"
	"jscorphr/internal/transport/http/middleware"
)

// year_month is a 6-digit YYYYMM string throughout the schema.
var yearMonthPattern = regexp.MustCompile(`^\d{4}(0[1-9]|1[0-2])$`)

type Handler struct {
	Store  *attendance.Store
	Scopes *auth.ScopeResolver
}

func NewHandler(store *attendance.Store, scopes *auth.ScopeResolver) *Handler {
	return &Handler{Store: store, Scopes: scopes}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequirePermission(auth.PermAttendanceRead)).Get("/attendance/monthly", h.handleListMonthly)
}

func (h *Handler) handleListMonthly(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	yearMonth := r.URL.Query().Get("yearMonth")
	if !yearMonthPattern.MatchString(yearMonth) {
		api.Fail(w, http.StatusBadRequest, "invalid_year_month", "yearMonth must be YYYYMM", requestID)
		return
	}

	scope, err := h.Scopes.Resolve(r.Context(), actor)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "scope_failed", "failed to resolve access scope", requestID)
		return
	}

	summaries, err := h.Store.ListMonthly(r.Context(), scope, yearMonth)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "attendance_failed", "failed to list attendance", requestID)
		return
	}
	api.Success(w, summaries, requestID)
}
