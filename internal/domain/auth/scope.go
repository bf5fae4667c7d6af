package auth

import (
	"context"
	"fmt"
)

type ScopeKind string

const (
	ScopeAll        ScopeKind = "ALL"
	ScopeDepartment ScopeKind = "DEPARTMENT"
	ScopeSelf       ScopeKind = "SELF"
	ScopeNone       ScopeKind = "NONE"
)

// ScopeFilter is the set of employee records an actor may see or act on.
type ScopeFilter struct {
	Kind         ScopeKind
	DepartmentID string // set when Kind is DEPARTMENT
	EmployeeID   string // set when Kind is SELF
}

// EmployeeRef is the minimal employee projection scope decisions need.
type EmployeeRef struct {
	ID           string
	DepartmentID string
}

// EmployeeDirectory resolves employee ids to their department. Implemented
// by the org store; a lookup for an unknown id returns org.ErrEmployeeNotFound.
type EmployeeDirectory interface {
	EmployeeRef(ctx context.Context, employeeID string) (EmployeeRef, error)
}

// ScopeResolver maps (role, linked employee) to a ScopeFilter. Every listing
// endpoint filters rows through the resolved scope and every single-entity
// mutation calls Permits; the resolver itself never mutates anything.
type ScopeResolver struct {
	Directory EmployeeDirectory
}

func NewScopeResolver(directory EmployeeDirectory) *ScopeResolver {
	return &ScopeResolver{Directory: directory}
}

func (r *ScopeResolver) Resolve(ctx context.Context, actor Actor) (ScopeFilter, error) {
	switch actor.Role {
	case RoleAdmin, RoleHRAdmin:
		return ScopeFilter{Kind: ScopeAll}, nil
	case RoleManager:
		if !actor.Linked() {
			return ScopeFilter{Kind: ScopeNone}, nil
		}
		ref, err := r.Directory.EmployeeRef(ctx, actor.EmployeeID)
		if err != nil {
			return ScopeFilter{}, err
		}
		return ScopeFilter{Kind: ScopeDepartment, DepartmentID: ref.DepartmentID}, nil
	default:
		// EMPLOYEE and any unrecognized role: own records only.
		if !actor.Linked() {
			return ScopeFilter{Kind: ScopeNone}, nil
		}
		return ScopeFilter{Kind: ScopeSelf, EmployeeID: actor.EmployeeID}, nil
	}
}

// Permits reports whether a single target employee falls inside the actor's
// scope. ADMIN and HR_ADMIN short-circuit to true before any lookup, so an
// admin account without an employee profile is still fully privileged.
func (r *ScopeResolver) Permits(ctx context.Context, actor Actor, employeeID string) (bool, error) {
	if actor.Role == RoleAdmin || actor.Role == RoleHRAdmin {
		return true, nil
	}
	scope, err := r.Resolve(ctx, actor)
	if err != nil {
		return false, err
	}
	switch scope.Kind {
	case ScopeAll:
		return true, nil
	case ScopeDepartment:
		target, err := r.Directory.EmployeeRef(ctx, employeeID)
		if err != nil {
			return false, err
		}
		return target.DepartmentID != "" && target.DepartmentID == scope.DepartmentID, nil
	case ScopeSelf:
		return employeeID == scope.EmployeeID, nil
	default:
		return false, nil
	}
}

// SQLCondition renders the filter as a predicate over the given employee id
// and department id columns, numbering placeholders from argIndex. Stores
// append the returned args to their own.
func (f ScopeFilter) SQLCondition(empIDCol, deptIDCol string, argIndex int) (string, []any) {
	switch f.Kind {
	case ScopeAll:
		return "TRUE", nil
	case ScopeDepartment:
		return fmt.Sprintf("%s = $%d", deptIDCol, argIndex), []any{f.DepartmentID}
	case ScopeSelf:
		return fmt.Sprintf("%s = $%d", empIDCol, argIndex), []any{f.EmployeeID}
	default:
		return "FALSE", nil
	}
}
