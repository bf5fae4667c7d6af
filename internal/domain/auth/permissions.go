package auth

const (
	PermEmployeesRead     = "core.employees.read"
	PermOrgRead           = "core.org.read"
	PermAttendanceRead    = "attendance.read"
	PermPayrollRead       = "payroll.read"
	PermPayrollRun        = "payroll.run"
	PermPayrollExport     = "payroll.export"
	PermEvaluationRead    = "evaluation.read"
	PermEvaluationWrite   = "evaluation.write"
	PermEvaluationReview  = "evaluation.review"
	PermEvaluationAggr    = "evaluation.aggregate"
	PermLeaveRead         = "leave.read"
	PermLeaveWrite        = "leave.write"
	PermLeaveApprove      = "leave.approve"
	PermAuditRead         = "audit.read"
	PermMetricsRead       = "metrics.read"
)

// RolePermissions is a fixed map over the closed role set. Scoping of which
// rows an action may touch is the resolver's job; this map only gates which
// endpoints a role may call at all.
var RolePermissions = map[string][]string{
	RoleEmployee: {
		PermEmployeesRead,
		PermOrgRead,
		PermAttendanceRead,
		PermPayrollRead,
		PermEvaluationRead,
		PermEvaluationWrite,
		PermLeaveRead,
		PermLeaveWrite,
	},
	RoleManager: {
		PermEmployeesRead,
		PermOrgRead,
		PermAttendanceRead,
		PermPayrollRead,
		PermEvaluationRead,
		PermEvaluationWrite,
		PermEvaluationReview,
		PermLeaveRead,
		PermLeaveWrite,
		PermLeaveApprove,
	},
	RoleHRAdmin: {
		PermEmployeesRead,
		PermOrgRead,
		PermAttendanceRead,
		PermPayrollRead,
		PermPayrollRun,
		PermPayrollExport,
		PermEvaluationRead,
		PermEvaluationWrite,
		PermEvaluationReview,
		PermEvaluationAggr,
		PermLeaveRead,
		PermLeaveWrite,
		PermLeaveApprove,
		PermAuditRead,
	},
}

func RoleHasPermission(role, permission string) bool {
	if role == RoleAdmin {
		return true
	}
	for _, granted := range RolePermissions[role] {
		if granted == permission {
			return true
		}
	}
	return false
}
