package payroll

import (
	"context"
	"errors"
	"fmt"
	"time"

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

func (s *Store) BeginTx(ctx context.Context) (pgx.Tx, error) {
	return s.DB.Begin(ctx)
}

func (s *Store) RunForUpdateTx(ctx context.Context, tx pgx.Tx, runID string) (PayRun, error) {
	var run PayRun
	err := tx.QueryRow(ctx, `
    SELECT id, pay_group_id, year_month, run_type, status, calculated_at, paid_at, created_at
    FROM pay_runs
    WHERE id = $1
    FOR UPDATE
  `, runID).Scan(&run.ID, &run.PayGroupID, &run.YearMonth, &run.RunType, &run.Status,
		&run.CalculatedAt, &run.PaidAt, &run.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return PayRun{}, ErrRunNotFound
	}
	return run, err
}

func (s *Store) ActivePayGroupEmployeesTx(ctx context.Context, tx pgx.Tx, payGroupID string) ([]string, error) {
	rows, err := tx.Query(ctx, `
    SELECT id
    FROM employees
    WHERE pay_group_id = $1 AND status = $2
    ORDER BY emp_no
  `, payGroupID, "ACTIVE")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *Store) WorkedHoursTx(ctx context.Context, tx pgx.Tx, employeeID, yearMonth string) (float64, error) {
	var hours float64
	err := tx.QueryRow(ctx, `
    SELECT worked_hours
    FROM attendance_month_summaries
    WHERE emp_id = $1 AND year_month = $2
  `, employeeID, yearMonth).Scan(&hours)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	return hours, err
}

func (s *Store) ResultEmployeesTx(ctx context.Context, tx pgx.Tx, runID string) (map[string]bool, error) {
	rows, err := tx.Query(ctx, "SELECT emp_id FROM pay_results WHERE pay_run_id = $1", runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	existing := map[string]bool{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		existing[id] = true
	}
	return existing, rows.Err()
}

func (s *Store) UpsertResultTx(ctx context.Context, tx pgx.Tx, runID, employeeID string, gross, deduction, net float64) error {
	_, err := tx.Exec(ctx, `
    INSERT INTO pay_results (pay_run_id, emp_id, gross_amount, deduct_amount, net_amount, currency, status)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
    ON CONFLICT (pay_run_id, emp_id)
    DO UPDATE SET gross_amount = EXCLUDED.gross_amount,
                  deduct_amount = EXCLUDED.deduct_amount,
                  net_amount = EXCLUDED.net_amount,
                  status = EXCLUDED.status,
                  updated_at = now()
  `, runID, employeeID, gross, deduction, net, DefaultCurrency, ResultStatusCalculated)
	return err
}

func (s *Store) MarkCalculatedTx(ctx context.Context, tx pgx.Tx, runID string, at time.Time) error {
	_, err := tx.Exec(ctx, `
    UPDATE pay_runs SET status = $1, calculated_at = $2, updated_at = now() WHERE id = $3
  `, RunStatusCalculated, at, runID)
	return err
}

func (s *Store) GetRun(ctx context.Context, runID string) (PayRun, error) {
	var run PayRun
	err := s.DB.QueryRow(ctx, `
    SELECT id, pay_group_id, year_month, run_type, status, calculated_at, paid_at, created_at
    FROM pay_runs
    WHERE id = $1
  `, runID).Scan(&run.ID, &run.PayGroupID, &run.YearMonth, &run.RunType, &run.Status,
		&run.CalculatedAt, &run.PaidAt, &run.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return PayRun{}, ErrRunNotFound
	}
	return run, err
}

func (s *Store) ListRuns(ctx context.Context) ([]PayRun, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, pay_group_id, year_month, run_type, status, calculated_at, paid_at, created_at
    FROM pay_runs
    ORDER BY year_month DESC, created_at DESC
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []PayRun
	for rows.Next() {
		var run PayRun
		if err := rows.Scan(&run.ID, &run.PayGroupID, &run.YearMonth, &run.RunType, &run.Status,
			&run.CalculatedAt, &run.PaidAt, &run.CreatedAt); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func (s *Store) ListResults(ctx context.Context, runID string, scope auth.ScopeFilter) ([]PayResult, error) {
	cond, args := scope.SQLCondition("e.id", "e.dept_id", 2)
	query := fmt.Sprintf(`
    SELECT r.id, r.pay_run_id, r.emp_id, r.gross_amount, r.deduct_amount, r.net_amount, r.currency, r.status
    FROM pay_results r
    JOIN employees e ON r.emp_id = e.id
    WHERE r.pay_run_id = $1 AND %s
    ORDER BY e.emp_no
  `, cond)
	args = append([]any{runID}, args...)

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []PayResult
	for rows.Next() {
		var res PayResult
		if err := rows.Scan(&res.ID, &res.PayRunID, &res.EmployeeID, &res.GrossAmount,
			&res.DeductAmount, &res.NetAmount, &res.Currency, &res.Status); err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, rows.Err()
}

func (s *Store) RegisterRows(ctx context.Context, runID string) ([]RegisterRow, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT e.id, e.emp_no, e.first_name, e.last_name, r.gross_amount, r.deduct_amount, r.net_amount, r.currency
    FROM pay_results r
    JOIN employees e ON r.emp_id = e.id
    WHERE r.pay_run_id = $1
    ORDER BY e.emp_no
  `, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RegisterRow
	for rows.Next() {
		var row RegisterRow
		if err := rows.Scan(&row.EmployeeID, &row.EmpNo, &row.FirstName, &row.LastName,
			&row.GrossAmount, &row.DeductAmount, &row.NetAmount, &row.Currency); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (s *Store) PayslipData(ctx context.Context, runID, employeeID string) (PayslipData, error) {
	var data PayslipData
	err := s.DB.QueryRow(ctx, `
    SELECT e.emp_no, e.first_name, e.last_name, e.email, pr.year_month,
           r.gross_amount, r.deduct_amount, r.net_amount, r.currency
    FROM pay_results r
    JOIN employees e ON r.emp_id = e.id
    JOIN pay_runs pr ON r.pay_run_id = pr.id
    WHERE r.pay_run_id = $1 AND r.emp_id = $2
  `, runID, employeeID).Scan(&data.EmpNo, &data.FirstName, &data.LastName, &data.Email,
		&data.YearMonth, &data.GrossAmount, &data.DeductAmount, &data.NetAmount, &data.Currency)
	if errors.Is(err, pgx.ErrNoRows) {
		return PayslipData{}, ErrResultNotFound
	}
	return data, err
}
