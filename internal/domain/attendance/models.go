package attendance

import "time"

// MonthSummary is a locked-in monthly attendance rollup produced by the
// time-tracking side of the system. The payroll engine only reads it.
type MonthSummary struct {
	ID              string    `json:"id"`
	EmployeeID      string    `json:"employeeId"`
	YearMonth       string    `json:"yearMonth"`
	PlannedHours    float64   `json:"plannedHours"`
	WorkedHours     float64   `json:"workedHours"`
	OvertimeHours   float64   `json:"overtimeHours"`
	LateCount       int       `json:"lateCount"`
	EarlyLeaveCount int       `json:"earlyLeaveCount"`
	AbsenceCount    int       `json:"absenceCount"`
	IsLocked        bool      `json:"isLocked"`
	CreatedAt       time.Time `json:"createdAt"`
}
