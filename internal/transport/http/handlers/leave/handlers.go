package leavehandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"jscorphr/internal/domain/audit"
	"jscorphr/internal/domain/auth"
	"jscorphr/internal/domain/leave"
	"jscorphr/internal/transport/http/api"
	"jscorphr/internal/transport/http/middleware"
	"jscorphr/internal/transport/http/shared"
)

type Handler struct {
	Service *leave.Service
	Scopes  *auth.ScopeResolver
	Audit   audit.Recorder
}

func NewHandler(service *leave.Service, scopes *auth.ScopeResolver, auditSvc audit.Recorder) *Handler {
	return &Handler{Service: service, Scopes: scopes, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/leave", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermLeaveRead)).Get("/requests", h.handleListRequests)
		r.With(middleware.RequirePermission(auth.PermLeaveRead)).Get("/requests/{requestID}", h.handleGetRequest)
		r.With(middleware.RequirePermission(auth.PermLeaveWrite)).Post("/requests", h.handleCreateRequest)
		r.With(middleware.RequirePermission(auth.PermLeaveApprove)).Post("/requests/{requestID}/approve", h.handleApprove)
		r.With(middleware.RequirePermission(auth.PermLeaveApprove)).Post("/requests/{requestID}/reject", h.handleReject)
	})
}

type createRequestPayload struct {
	LeaveType string  `json:"leaveType"`
	StartDate string  `json:"startDate"`
	EndDate   string  `json:"endDate"`
	Days      float64 `json:"days"`
	Reason    string  `json:"reason"`
}

func (h *Handler) handleCreateRequest(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	var payload createRequestPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	start, err := shared.ParseDate(payload.StartDate)
	if err != nil || start.IsZero() {
		api.Fail(w, http.StatusBadRequest, "invalid_date", "startDate must be YYYY-MM-DD", requestID)
		return
	}
	end, err := shared.ParseDate(payload.EndDate)
	if err != nil || end.IsZero() {
		api.Fail(w, http.StatusBadRequest, "invalid_date", "endDate must be YYYY-MM-DD", requestID)
		return
	}
	if payload.Days <= 0 {
		api.Fail(w, http.StatusBadRequest, "invalid_days", "days must be positive", requestID)
		return
	}

	created, err := h.Service.Request(r.Context(), actor, leave.CreateInput{
		LeaveType: payload.LeaveType,
		StartDate: start,
		EndDate:   end,
		Days:      payload.Days,
		Reason:    payload.Reason,
	})
	if err != nil {
		h.failLeave(w, err, requestID)
		return
	}

	if err := h.Audit.Record(r.Context(), actor.UserID, "leave.request.create", "leave_request", created.ID, requestID, shared.ClientIP(r), nil, created); err != nil {
		slog.Warn("audit leave.request.create failed", "err", err)
	}
	api.Created(w, created, requestID)
}

func (h *Handler) handleListRequests(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	scope, err := h.Scopes.Resolve(r.Context(), actor)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "scope_failed", "failed to resolve access scope", requestID)
		return
	}

	page := shared.ParsePagination(r, 50, 200)
	requests, err := h.Service.List(r.Context(), scope, leave.ListFilter{
		Status:     r.URL.Query().Get("status"),
		EmployeeID: r.URL.Query().Get("employeeId"),
		Limit:      page.Limit,
		Offset:     page.Offset,
	})
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "leave_failed", "failed to list leave requests", requestID)
		return
	}
	api.Success(w, requests, requestID)
}

func (h *Handler) handleGetRequest(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	req, err := h.Service.Get(r.Context(), actor, chi.URLParam(r, "requestID"))
	if err != nil {
		h.failLeave(w, err, requestID)
		return
	}
	api.Success(w, req, requestID)
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, leave.OutcomeApprove, "leave.request.approve")
}

func (h *Handler) handleReject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, leave.OutcomeReject, "leave.request.reject")
}

func (h *Handler) decide(w http.ResponseWriter, r *http.Request, outcome, action string) {
	requestID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())
	leaveRequestID := chi.URLParam(r, "requestID")

	decided, err := h.Service.Decide(r.Context(), actor, leaveRequestID, outcome)
	if err != nil {
		h.failLeave(w, err, requestID)
		return
	}

	if err := h.Audit.Record(r.Context(), actor.UserID, action, "leave_request", leaveRequestID, requestID, shared.ClientIP(r), nil, decided); err != nil {
		slog.Warn("audit "+action+" failed", "err", err)
	}
	api.Success(w, decided, requestID)
}

func (h *Handler) failLeave(w http.ResponseWriter, err error, requestID string) {
	switch {
	case errors.Is(err, leave.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "leave request not found", requestID)
	case errors.Is(err, leave.ErrForbidden):
		api.Fail(w, http.StatusForbidden, "forbidden", "leave request out of scope", requestID)
	case errors.Is(err, leave.ErrInvalidTransition):
		api.Fail(w, http.StatusConflict, "invalid_transition", "leave request already decided", requestID)
	case errors.Is(err, leave.ErrProfileNotLinked):
		api.Fail(w, http.StatusConflict, "profile_not_linked", "user has no linked employee profile", requestID)
	case errors.Is(err, leave.ErrInvalidRange):
		api.Fail(w, http.StatusBadRequest, "invalid_range", "endDate must not precede startDate", requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, "leave_failed", "leave operation failed", requestID)
	}
}
