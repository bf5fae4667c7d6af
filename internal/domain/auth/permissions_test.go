package auth

import "testing"

func TestRoleHasPermission(t *testing.T) {
	cases := []struct {
		role       string
		permission string
		want       bool
	}{
		{RoleAdmin, PermPayrollRun, true},
		{RoleAdmin, "anything.at.all", true},
		{RoleHRAdmin, PermPayrollRun, true},
		{RoleHRAdmin, PermEvaluationAggr, true},
		{RoleManager, PermPayrollRun, false},
		{RoleManager, PermLeaveApprove, true},
		{RoleManager, PermEvaluationReview, true},
		{RoleEmployee, PermLeaveApprove, false},
		{RoleEmployee, PermLeaveWrite, true},
		{"UNKNOWN", PermEmployeesRead, false},
	}
	for _, tc := range cases {
		if got := RoleHasPermission(tc.role, tc.permission); got != tc.want {
			t.Errorf("RoleHasPermission(%s, %s) = %v, want %v", tc.role, tc.permission, got, tc.want)
		}
	}
}

func TestKnownRole(t *testing.T) {
	for _, role := range Roles {
		if !KnownRole(role) {
			t.Errorf("KnownRole(%s) = false", role)
		}
	}
	if KnownRole("SUPERUSER") {
		t.Error("KnownRole(SUPERUSER) = true")
	}
}
