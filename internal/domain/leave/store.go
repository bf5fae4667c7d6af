package leave

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

const requestColumns = `id, emp_id, leave_type, start_date, end_date, days, COALESCE(reason, ''),
  status, approver_emp_id, approved_at, created_at`

func scanRequest(row pgx.Row) (Request, error) {
	var req Request
	err := row.Scan(&req.ID, &req.EmployeeID, &req.LeaveType, &req.StartDate, &req.EndDate,
		&req.Days, &req.Reason, &req.Status, &req.ApproverEmployeeID, &req.ApprovedAt, &req.CreatedAt)
	return req, err
}

func (s *Store) CreateRequest(ctx context.Context, employeeID string, in CreateInput) (Request, error) {
	row := s.DB.QueryRow(ctx, `
    INSERT INTO leave_requests (emp_id, leave_type, start_date, end_date, days, reason, status)
    VALUES ($1,$2,$3,$4,$5,NULLIF($6,''),$7)
    RETURNING `+requestColumns,
		employeeID, in.LeaveType, in.StartDate, in.EndDate, in.Days, in.Reason, StatusRequested)
	return scanRequest(row)
}

func (s *Store) GetRequest(ctx context.Context, id string) (Request, error) {
	req, err := scanRequest(s.DB.QueryRow(ctx,
		"SELECT "+requestColumns+" FROM leave_requests WHERE id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Request{}, ErrNotFound
	}
	return req, err
}

func (s *Store) ListRequests(ctx context.Context, scope auth.ScopeFilter, filter ListFilter) ([]Request, error) {
	cond, args := scope.SQLCondition("e.id", "e.dept_id", 1)
	query := fmt.Sprintf(`
    SELECT r.id, r.emp_id, r.leave_type, r.start_date, r.end_date, r.days, COALESCE(r.reason, ''),
           r.status, r.approver_emp_id, r.approved_at, r.created_at
    FROM leave_requests r
    JOIN employees e ON r.emp_id = e.id
    WHERE %s`, cond)
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND r.status = $%d", len(args))
	}
	if filter.EmployeeID != "" {
		args = append(args, filter.EmployeeID)
		query += fmt.Sprintf(" AND r.emp_id = $%d", len(args))
	}
	query += " ORDER BY r.created_at DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

func (s *Store) BeginTx(ctx context.Context) (pgx.Tx, error) {
	return s.DB.Begin(ctx)
}

func (s *Store) RequestForUpdateTx(ctx context.Context, tx pgx.Tx, id string) (Request, error) {
	req, err := scanRequest(tx.QueryRow(ctx,
		"SELECT "+requestColumns+" FROM leave_requests WHERE id = $1 FOR UPDATE", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Request{}, ErrNotFound
	}
	return req, err
}

func (s *Store) DecideRequestTx(ctx context.Context, tx pgx.Tx, id, status string, approverEmployeeID *string, decidedAt time.Time) (bool, error) {
	tag, err := tx.Exec(ctx, `
    UPDATE leave_requests
    SET status = $1, approver_emp_id = $2, approved_at = $3
    WHERE id = $4 AND status = $5
  `, status, approverEmployeeID, decidedAt, id, StatusRequested)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
