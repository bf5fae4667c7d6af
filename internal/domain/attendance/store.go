package attendance

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"jscorphr/internal/domain/auth"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

// WorkedHours returns the recorded hours for (employee, yearMonth). A
// missing summary row means zero worked hours, not an error.
func (s *Store) WorkedHours(ctx context.Context, employeeID, yearMonth string) (float64, error) {
	var hours float64
	err := s.DB.QueryRow(ctx, `
    SELECT worked_hours
    FROM attendance_month_summaries
    WHERE emp_id = $1 AND year_month = $2
  `, employeeID, yearMonth).Scan(&hours)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	return hours, err
}

func (s *Store) ListMonthly(ctx context.Context, scope auth.ScopeFilter, yearMonth string) ([]MonthSummary, error) {
	cond, args := scope.SQLCondition("e.id", "e.dept_id", 2)
	query := fmt.Sprintf(`
    SELECT s.id, s.emp_id, s.year_month, s.planned_hours, s.worked_hours, s.overtime_hours,
           s.late_count, s.early_leave_count, s.absence_count, s.is_locked, s.created_at
    FROM attendance_month_summaries s
    JOIN employees e ON s.emp_id = e.id
    WHERE s.year_month = $1 AND %s
    ORDER BY e.emp_no
  `, cond)
	args = append([]any{yearMonth}, args...)

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []MonthSummary
	for rows.Next() {
		var sum MonthSummary
		if err := rows.Scan(&sum.ID, &sum.EmployeeID, &sum.YearMonth, &sum.PlannedHours,
			&sum.WorkedHours, &sum.OvertimeHours, &sum.LateCount, &sum.EarlyLeaveCount,
			&sum.AbsenceCount, &sum.IsLocked, &sum.CreatedAt); err != nil {
			return nil, err
		}
		summaries = append(summaries, sum)
	}
	return summaries, rows.Err()
}
