package payroll

import "time"

type PayRun struct {
	ID           string     `json:"id"`
	PayGroupID   string     `json:"payGroupId"`
	YearMonth    string     `json:"yearMonth"`
	RunType      string     `json:"runType"`
	Status       string     `json:"status"`
	CalculatedAt *time.Time `json:"calculatedAt,omitempty"`
	PaidAt       *time.Time `json:"paidAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

type PayResult struct {
	ID          string  `json:"id"`
	PayRunID    string  `json:"payRunId"`
	EmployeeID  string  `json:"employeeId"`
	GrossAmount float64 `json:"grossAmount"`
	DeductAmount float64 `json:"deductAmount"`
	NetAmount   float64 `json:"netAmount"`
	Currency    string  `json:"currency"`
	Status      string  `json:"status"`
}

// CalculateResult reports how many PayResult rows a run produced vs refreshed.
type CalculateResult struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
}

type RegisterRow struct {
	EmployeeID  string
	EmpNo       string
	FirstName   string
	LastName    string
	GrossAmount float64
	DeductAmount float64
	NetAmount   float64
	Currency    string
}

type PayslipData struct {
	EmpNo       string
	FirstName   string
	LastName    string
	Email       string
	YearMonth   string
	GrossAmount float64
	DeductAmount float64
	NetAmount   float64
	Currency    string
}
