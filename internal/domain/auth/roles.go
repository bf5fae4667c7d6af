package auth

const (
	RoleAdmin    = "ADMIN"
	RoleHRAdmin  = "HR_ADMIN"
	RoleManager  = "MANAGER"
	RoleEmployee = "EMPLOYEE"
)

var Roles = []string{RoleAdmin, RoleHRAdmin, RoleManager, RoleEmployee}

func KnownRole(role string) bool {
	for _, known := range Roles {
		if role == known {
			return true
		}
	}
	return false
}

// Actor is an authenticated caller: a user account plus the employee
// profile linked to it, if any.
type Actor struct {
	UserID     string
	Role       string
	EmployeeID string // empty when no employee profile is linked
}

func (a Actor) Linked() bool {
	return a.EmployeeID != ""
}
