package payrollhandler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"jscorphr/internal/domain/audit"
	"jscorphr/internal/domain/auth"
	"jscorphr/internal/domain/org"
	"jscorphr/internal/domain/payroll"
	"jscorphr/internal/transport/http/api"
	"jscorphr/internal/transport/http/middleware"
	"jscorphr/internal/transport/http/shared"
)

type Handler struct {
	Service *payroll.Service
	Scopes  *auth.ScopeResolver
	Audit   audit.Recorder
}

func NewHandler(service *payroll.Service, scopes *auth.ScopeResolver, auditSvc audit.Recorder) *Handler {
	return &Handler{Service: service, Scopes: scopes, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/payroll", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermPayrollRead)).Get("/runs", h.handleListRuns)
		r.With(middleware.RequirePermission(auth.PermPayrollRead)).Get("/runs/{runID}", h.handleGetRun)
		r.With(middleware.RequirePermission(auth.PermPayrollRun)).Post("/runs/{runID}/calculate", h.handleCalculate)
		r.With(middleware.RequirePermission(auth.PermPayrollRead)).Get("/runs/{runID}/results", h.handleListResults)
		r.With(middleware.RequirePermission(auth.PermPayrollExport)).Get("/runs/{runID}/register", h.handleExportRegister)
		r.With(middleware.RequirePermission(auth.PermPayrollRead)).Post("/runs/{runID}/payslips/{employeeID}", h.handleGeneratePayslip)
	})
}

func (h *Handler) handleListRuns(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	runs, err := h.Service.ListRuns(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "runs_failed", "failed to list pay runs", requestID)
		return
	}
	api.Success(w, runs, requestID)
}

func (h *Handler) handleGetRun(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	run, err := h.Service.GetRun(r.Context(), chi.URLParam(r, "runID"))
	if err != nil {
		h.failRun(w, err, requestID)
		return
	}
	api.Success(w, run, requestID)
}

func (h *Handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())
	runID := chi.URLParam(r, "runID")

	result, err := h.Service.Calculate(r.Context(), runID, actor)
	if err != nil {
		h.failRun(w, err, requestID)
		return
	}

	if err := h.Audit.Record(r.Context(), actor.UserID, "payroll.run.calculate", "pay_run", runID, requestID, shared.ClientIP(r), nil, result); err != nil {
		slog.Warn("audit payroll.run.calculate failed", "err", err)
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

	results, err := h.Service.ListResults(r.Context(), chi.URLParam(r, "runID"), scope)
	if err != nil {
		h.failRun(w, err, requestID)
		return
	}
	api.Success(w, results, requestID)
}

func (h *Handler) handleExportRegister(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	runID := chi.URLParam(r, "runID")

	payload, err := h.Service.ExportRegisterXLSX(r.Context(), runID)
	if err != nil {
		h.failRun(w, err, requestID)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=register_%s.xlsx", runID))
	_, _ = w.Write(payload)
}

func (h *Handler) handleGeneratePayslip(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())
	runID := chi.URLParam(r, "runID")
	employeeID := chi.URLParam(r, "employeeID")

	permitted, err := h.Scopes.Permits(r.Context(), actor, employeeID)
	if err != nil {
		if errors.Is(err, org.ErrEmployeeNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "employee not found", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "scope_failed", "failed to resolve access scope", requestID)
		return
	}
	if !permitted {
		api.Fail(w, http.StatusForbidden, "forbidden", "employee out of scope", requestID)
		return
	}

	path, err := h.Service.GeneratePayslipPDF(r.Context(), runID, employeeID)
	if err != nil {
		h.failRun(w, err, requestID)
		return
	}

	if err := h.Audit.Record(r.Context(), actor.UserID, "payroll.payslip.generate", "pay_run", runID, requestID, shared.ClientIP(r), nil, map[string]string{"employeeId": employeeID, "path": path}); err != nil {
		slog.Warn("audit payroll.payslip.generate failed", "err", err)
	}
	api.Created(w, map[string]string{"path": path}, requestID)
}

func (h *Handler) failRun(w http.ResponseWriter, err error, requestID string) {
	switch {
	case errors.Is(err, payroll.ErrRunNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "pay run not found", requestID)
	case errors.Is(err, payroll.ErrResultNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "pay result not found", requestID)
	case errors.Is(err, payroll.ErrForbidden):
		api.Fail(w, http.StatusForbidden, "forbidden", "insufficient permissions", requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, "payroll_failed", "payroll operation failed", requestID)
	}
}
