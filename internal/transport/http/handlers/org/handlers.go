package orghandler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"jscorphr/internal/domain/auth"
	"jscorphr/internal/domain/org"
	"jscorphr/internal/transport/http/api"
	"jscorphr/internal/transport/http/middleware"
	"jscorphr/internal/transport/http/shared"
)

type Handler struct {
	Store  *org.Store
	Scopes *auth.ScopeResolver
}

func NewHandler(store *org.Store, scopes *auth.ScopeResolver) *Handler {
	return &Handler{Store: store, Scopes: scopes}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequirePermission(auth.PermEmployeesRead)).Get("/employees", h.handleListEmployees)
	r.With(middleware.RequirePermission(auth.PermEmployeesRead)).Get("/employees/{employeeID}", h.handleGetEmployee)
	r.With(middleware.RequirePermission(auth.PermOrgRead)).Get("/departments", h.handleListDepartments)
	r.With(middleware.RequirePermission(auth.PermOrgRead)).Get("/pay-groups", h.handleListPayGroups)
}

func (h *Handler) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	scope, err := h.Scopes.Resolve(r.Context(), actor)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "scope_failed", "failed to resolve access scope", requestID)
		return
	}

	page := shared.ParsePagination(r, 50, 200)
	employees, err := h.Store.ListEmployees(r.Context(), scope, page.Limit, page.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employees_failed", "failed to list employees", requestID)
		return
	}
	api.Success(w, employees, requestID)
}

func (h *Handler) handleGetEmployee(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())
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

	employee, err := h.Store.EmployeeByID(r.Context(), employeeID)
	if err != nil {
		if errors.Is(err, org.ErrEmployeeNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "employee not found", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "employee_failed", "failed to load employee", requestID)
		return
	}
	api.Success(w, employee, requestID)
}

func (h *Handler) handleListDepartments(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	departments, err := h.Store.ListDepartments(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "departments_failed", "failed to list departments", requestID)
		return
	}
	api.Success(w, departments, requestID)
}

func (h *Handler) handleListPayGroups(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	groups, err := h.Store.ListPayGroups(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "pay_groups_failed", "failed to list pay groups", requestID)
		return
	}
	api.Success(w, groups, requestID)
}
