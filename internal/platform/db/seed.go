package db

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"jscorphr/internal/domain/auth"
	"jscorphr/internal/platform/config"
)

// Seed provisions the bootstrap data a fresh database needs: a department
// tree, a monthly pay group, and the admin account. Every step is an
// ensure, so re-running against a populated database is a no-op.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	deptID, err := ensureDepartment(ctx, pool, "HQ", "Headquarters", "")
	if err != nil {
		return err
	}
	for _, dept := range [][2]string{
		{"ENG", "Engineering"},
		{"HR", "People Team"},
		{"FIN", "Finance"},
	} {
		if _, err := ensureDepartment(ctx, pool, dept[0], dept[1], deptID); err != nil {
			return err
		}
	}

	payGroupID, err := ensurePayGroup(ctx, pool, "MONTHLY", "Monthly Payroll", "MONTHLY")
	if err != nil {
		return err
	}

	if err := ensureAdminUser(ctx, pool, cfg.SeedAdminUsername, cfg.SeedAdminPassword); err != nil {
		return err
	}

	if cfg.Environment != "production" {
		return ensureSampleData(ctx, pool, payGroupID)
	}
	return nil
}

// ensureSampleData gives a development database one employee with an
// attendance month, enough to exercise a payroll run end to end.
func ensureSampleData(ctx context.Context, pool *pgxpool.Pool, payGroupID string) error {
	var deptID string
	if err := pool.QueryRow(ctx, "SELECT id FROM departments WHERE code = 'ENG'").Scan(&deptID); err != nil {
		return err
	}

	var empID string
	err := pool.QueryRow(ctx, "SELECT id FROM employees WHERE emp_no = 'E0001'").Scan(&empID)
	if err != nil {
		err = pool.QueryRow(ctx, `
      INSERT INTO employees (emp_no, first_name, last_name, email, status, dept_id, pay_group_id, hire_date)
      VALUES ('E0001', 'Minsu', 'Kim', 'minsu.kim@example.com', 'ACTIVE', $1, $2, '2022-03-02')
      RETURNING id
    `, deptID, payGroupID).Scan(&empID)
		if err != nil {
			return err
		}
	}

	_, err = pool.Exec(ctx, `
    INSERT INTO attendance_month_summaries (emp_id, year_month, planned_hours, worked_hours)
    VALUES ($1, '202601', 160, 160)
    ON CONFLICT (emp_id, year_month) DO NOTHING
  `, empID)
	return err
}

func ensureDepartment(ctx context.Context, pool *pgxpool.Pool, code, name, parentID string) (string, error) {
	var id string
	err := pool.QueryRow(ctx, "SELECT id FROM departments WHERE code = $1", code).Scan(&id)
	if err == nil {
		return id, nil
	}

	var parent any
	if parentID != "" {
		parent = parentID
	}
	err = pool.QueryRow(ctx,
		"INSERT INTO departments (code, name, parent_id) VALUES ($1, $2, $3) RETURNING id",
		code, name, parent).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func ensurePayGroup(ctx context.Context, pool *pgxpool.Pool, code, name, cycle string) (string, error) {
	var id string
	err := pool.QueryRow(ctx, "SELECT id FROM pay_groups WHERE code = $1", code).Scan(&id)
	if err == nil {
		return id, nil
	}

	err = pool.QueryRow(ctx,
		"INSERT INTO pay_groups (code, name, pay_cycle) VALUES ($1, $2, $3) RETURNING id",
		code, name, cycle).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func ensureAdminUser(ctx context.Context, pool *pgxpool.Pool, username, password string) error {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" {
		return nil
	}

	var id string
	err := pool.QueryRow(ctx, "SELECT id FROM users WHERE username = $1", username).Scan(&id)
	if err == nil {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	return pool.QueryRow(ctx,
		"INSERT INTO users (username, password_hash, role, is_active) VALUES ($1, $2, $3, TRUE) RETURNING id",
		username, hash, auth.RoleAdmin).Scan(&id)
}
