package org

import "time"

const (
	EmployeeStatusActive     = "ACTIVE"
	EmployeeStatusInactive   = "INACTIVE"
	EmployeeStatusTerminated = "TERMINATED"
)

type Department struct {
	ID       string `json:"id"`
	Code     string `json:"code"`
	Name     string `json:"name"`
	ParentID string `json:"parentId,omitempty"`
}

type Employee struct {
	ID           string    `json:"id"`
	EmpNo        string    `json:"empNo"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	Status       string    `json:"status"`
	DepartmentID string    `json:"departmentId,omitempty"`
	PayGroupID   string    `json:"payGroupId,omitempty"`
	HireDate     time.Time `json:"hireDate"`
	CreatedAt    time.Time `json:"createdAt"`
}

type PayGroup struct {
	ID       string `json:"id"`
	Code     string `json:"code"`
	Name     string `json:"name"`
	PayCycle string `json:"payCycle"`
}
