package leave

import "time"

type Request struct {
	ID                 string     `json:"id"`
	EmployeeID         string     `json:"employeeId"`
	LeaveType          string     `json:"leaveType"`
	StartDate          time.Time  `json:"startDate"`
	EndDate            time.Time  `json:"endDate"`
	Days               float64    `json:"days"`
	Reason             string     `json:"reason,omitempty"`
	Status             string     `json:"status"`
	ApproverEmployeeID *string    `json:"approverEmployeeId,omitempty"`
	ApprovedAt         *time.Time `json:"approvedAt,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
}

type CreateInput struct {
	LeaveType string    `json:"leaveType"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	Days      float64   `json:"days"`
	Reason    string    `json:"reason,omitempty"`
}

type ListFilter struct {
	Status     string
	EmployeeID string
	Limit      int
	Offset     int
}
