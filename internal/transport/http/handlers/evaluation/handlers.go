package evaluationhandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"jscorphr/internal/domain/audit"
	"jscorphr/internal/domain/auth"
	"jscorphr/internal/domain/evaluation"
	"jscorphr/internal/transport/http/api"
	"jscorphr/internal/transport/http/middleware"
	"jscorphr/internal/transport/http/shared"
)

type Handler struct {
	Service *evaluation.Service
	Scopes  *auth.ScopeResolver
	Audit   audit.Recorder
}

func NewHandler(service *evaluation.Service, scopes *auth.ScopeResolver, auditSvc audit.Recorder) *Handler {
	return &Handler{Service: service, Scopes: scopes, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/evaluation", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermEvaluationRead)).Get("/plans", h.handleListPlans)
		r.With(middleware.RequirePermission(auth.PermEvaluationRead)).Get("/plans/{planID}/items", h.handleListItems)
		r.With(middleware.RequirePermission(auth.PermEvaluationWrite)).Post("/plans/{planID}/self-scores", h.handleSubmitSelfScores)
		r.With(middleware.RequirePermission(auth.PermEvaluationReview)).Post("/plans/{planID}/employees/{employeeID}/scores", h.handleSubmitReviewerScores)
		r.With(middleware.RequirePermission(auth.PermEvaluationAggr)).Post("/plans/{planID}/aggregate", h.handleAggregate)
		r.With(middleware.RequirePermission(auth.PermEvaluationRead)).Get("/plans/{planID}/results", h.handleListResults)
	})
}

type submitScoresRequest struct {
	Scores []evaluation.ItemScoreInput `json:"scores"`
}

func (h *Handler) handleListPlans(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	plans, err := h.Service.ListPlans(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "plans_failed", "failed to list evaluation plans", requestID)
		return
	}
	api.Success(w, plans, requestID)
}

func (h *Handler) handleListItems(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	items, err := h.Service.ListItems(r.Context(), actor, chi.URLParam(r, "planID"))
	if err != nil {
		h.failEvaluation(w, err, requestID)
		return
	}
	api.Success(w, items, requestID)
}

func (h *Handler) handleSubmitSelfScores(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	var payload submitScoresRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	planID := chi.URLParam(r, "planID")
	items, err := h.Service.SubmitSelfScores(r.Context(), actor, planID, payload.Scores)
	if err != nil {
		h.failEvaluation(w, err, requestID)
		return
	}

	if err := h.Audit.Record(r.Context(), actor.UserID, "evaluation.scores.self", "evaluation_plan", planID, requestID, shared.ClientIP(r), nil, payload.Scores); err != nil {
		slog.Warn("audit evaluation.scores.self failed", "err", err)
	}
	api.Success(w, items, requestID)
}

func (h *Handler) handleSubmitReviewerScores(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	var payload submitScoresRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	planID := chi.URLParam(r, "planID")
	employeeID := chi.URLParam(r, "employeeID")
	items, err := h.Service.SubmitReviewerScores(r.Context(), actor, planID, employeeID, payload.Scores)
	if err != nil {
		h.failEvaluation(w, err, requestID)
		return
	}

	after := map[string]any{"employeeId": employeeID, "scores": payload.Scores}
	if err := h.Audit.Record(r.Context(), actor.UserID, "evaluation.scores.review", "evaluation_plan", planID, requestID, shared.ClientIP(r), nil, after); err != nil {
		slog.Warn("audit evaluation.scores.review failed", "err", err)
	}
	api.Success(w, items, requestID)
}

func (h *Handler) handleAggregate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())
	planID := chi.URLParam(r, "planID")

	result, err := h.Service.AggregatePlan(r.Context(), planID, actor)
	if err != nil {
		h.failEvaluation(w, err, requestID)
		return
	}

	if err := h.Audit.Record(r.Context(), actor.UserID, "evaluation.plan.aggregate", "evaluation_plan", planID, requestID, shared.ClientIP(r), nil, result); err != nil {
		slog.Warn("audit evaluation.plan.aggregate failed", "err", err)
	}
	api.Success(w, result, requestID)
}

func (h *Handler) handleListResults(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	scope, err := h.Scopes.Resolve(r.Context(), actor)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "scope_failed", "failed to resolve access scope", requestID)
		return
	}

	results, err := h.Service.ListResults(r.Context(), chi.URLParam(r, "planID"), scope)
	if err != nil {
		h.failEvaluation(w, err, requestID)
		return
	}
	api.Success(w, results, requestID)
}

func (h *Handler) failEvaluation(w http.ResponseWriter, err error, requestID string) {
	switch {
	case errors.Is(err, evaluation.ErrPlanNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "evaluation plan not found", requestID)
	case errors.Is(err, evaluation.ErrEmployeeNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", requestID)
	case errors.Is(err, evaluation.ErrPlanNotOpen):
		api.Fail(w, http.StatusConflict, "plan_not_open", "evaluation plan is not open", requestID)
	case errors.Is(err, evaluation.ErrProfileNotLinked):
		api.Fail(w, http.StatusConflict, "profile_not_linked", "user has no linked employee profile", requestID)
	case errors.Is(err, evaluation.ErrForbidden):
		api.Fail(w, http.StatusForbidden, "forbidden", "target employee out of scope", requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, "evaluation_failed", "evaluation operation failed", requestID)
	}
}
