package auth

import (
	"context"
	"errors"
	"testing"
)

type fakeDirectory struct {
	refs map[string]EmployeeRef
}

func (d *fakeDirectory) EmployeeRef(_ context.Context, employeeID string) (EmployeeRef, error) {
	ref, ok := d.refs[employeeID]
	if !ok {
		return EmployeeRef{}, errors.New("employee not found")
	}
	return ref, nil
}

func newTestResolver() *ScopeResolver {
	return NewScopeResolver(&fakeDirectory{refs: map[string]EmployeeRef{
		"e1": {ID: "e1", DepartmentID: "d1"},
		"e2": {ID: "e2", DepartmentID: "d1"},
		"e3": {ID: "e3", DepartmentID: "d2"},
	}})
}

func TestResolveAdminRolesGetAll(t *testing.T) {
	resolver := newTestResolver()
	for _, role := range []string{RoleAdmin, RoleHRAdmin} {
		scope, err := resolver.Resolve(context.Background(), Actor{UserID: "u1", Role: role})
		if err != nil {
			t.Fatalf("resolve %s: %v", role, err)
		}
		if scope.Kind != ScopeAll {
			t.Fatalf("expected ALL for %s, got %s", role, scope.Kind)
		}
	}
}

func TestResolveManagerGetsDepartment(t *testing.T) {
	resolver := newTestResolver()
	scope, err := resolver.Resolve(context.Background(), Actor{UserID: "u1", Role: RoleManager, EmployeeID: "e1"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if scope.Kind != ScopeDepartment || scope.DepartmentID != "d1" {
		t.Fatalf("expected DEPARTMENT(d1), got %s(%s)", scope.Kind, scope.DepartmentID)
	}
}

func TestResolveUnlinkedManagerGetsNone(t *testing.T) {
	resolver := newTestResolver()
	scope, err := resolver.Resolve(context.Background(), Actor{UserID: "u1", Role: RoleManager})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if scope.Kind != ScopeNone {
		t.Fatalf("expected NONE, got %s", scope.Kind)
	}
}

func TestResolveEmployeeGetsSelf(t *testing.T) {
	resolver := newTestResolver()
	scope, err := resolver.Resolve(context.Background(), Actor{UserID: "u1", Role: RoleEmployee, EmployeeID: "e2"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if scope.Kind != ScopeSelf || scope.EmployeeID != "e2" {
		t.Fatalf("expected SELF(e2), got %s(%s)", scope.Kind, scope.EmployeeID)
	}
}

func TestResolveUnknownRoleBehavesLikeEmployee(t *testing.T) {
	resolver := newTestResolver()
	scope, err := resolver.Resolve(context.Background(), Actor{UserID: "u1", Role: "INTERN", EmployeeID: "e3"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if scope.Kind != ScopeSelf || scope.EmployeeID != "e3" {
		t.Fatalf("expected SELF(e3), got %s(%s)", scope.Kind, scope.EmployeeID)
	}

	scope, err = resolver.Resolve(context.Background(), Actor{UserID: "u1", Role: "INTERN"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if scope.Kind != ScopeNone {
		t.Fatalf("expected NONE for unlinked unknown role, got %s", scope.Kind)
	}
}

func TestPermitsSelfScope(t *testing.T) {
	resolver := newTestResolver()
	actor := Actor{UserID: "u1", Role: RoleEmployee, EmployeeID: "e1"}

	ok, err := resolver.Permits(context.Background(), actor, "e1")
	if err != nil || !ok {
		t.Fatalf("expected self access, got ok=%v err=%v", ok, err)
	}
	ok, err = resolver.Permits(context.Background(), actor, "e2")
	if err != nil {
		t.Fatalf("permits: %v", err)
	}
	if ok {
		t.Fatal("employee must not reach another employee's records")
	}
}

func TestPermitsDepartmentScope(t *testing.T) {
	resolver := newTestResolver()
	manager := Actor{UserID: "u1", Role: RoleManager, EmployeeID: "e1"}

	ok, err := resolver.Permits(context.Background(), manager, "e2")
	if err != nil || !ok {
		t.Fatalf("expected same-department access, got ok=%v err=%v", ok, err)
	}
	ok, err = resolver.Permits(context.Background(), manager, "e3")
	if err != nil {
		t.Fatalf("permits: %v", err)
	}
	if ok {
		t.Fatal("manager must not reach another department")
	}
}

func TestPermitsAdminShortCircuitsWithoutLookup(t *testing.T) {
	// A directory that always fails proves no lookup happens.
	resolver := NewScopeResolver(&fakeDirectory{refs: map[string]EmployeeRef{}})
	ok, err := resolver.Permits(context.Background(), Actor{UserID: "u1", Role: RoleHRAdmin}, "whoever")
	if err != nil || !ok {
		t.Fatalf("expected admin shortcut, got ok=%v err=%v", ok, err)
	}
}

func TestScopeSQLCondition(t *testing.T) {
	cond, args := ScopeFilter{Kind: ScopeAll}.SQLCondition("e.id", "e.dept_id", 1)
	if cond != "TRUE" || len(args) != 0 {
		t.Fatalf("unexpected ALL condition %q %v", cond, args)
	}
	cond, args = ScopeFilter{Kind: ScopeDepartment, DepartmentID: "d1"}.SQLCondition("e.id", "e.dept_id", 3)
	if cond != "e.dept_id = $3" || len(args) != 1 || args[0] != "d1" {
		t.Fatalf("unexpected DEPARTMENT condition %q %v", cond, args)
	}
	cond, args = ScopeFilter{Kind: ScopeSelf, EmployeeID: "e9"}.SQLCondition("e.id", "e.dept_id", 2)
	if cond != "e.id = $2" || len(args) != 1 || args[0] != "e9" {
		t.Fatalf("unexpected SELF condition %q %v", cond, args)
	}
	cond, args = ScopeFilter{Kind: ScopeNone}.SQLCondition("e.id", "e.dept_id", 1)
	if cond != "FALSE" || len(args) != 0 {
		t.Fatalf("unexpected NONE condition %q %v", cond, args)
	}
}
