package org

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"jscorphr/internal/domain/auth"
)

var ErrEmployeeNotFound = errors.New("employee not found")

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

// EmployeeRef implements auth.EmployeeDirectory.
func (s *Store) EmployeeRef(ctx context.Context, employeeID string) (auth.EmployeeRef, error) {
	var ref auth.EmployeeRef
	err := s.DB.QueryRow(ctx, `
    SELECT id, COALESCE(dept_id::text, '')
    FROM employees
    WHERE id = $1
  `, employeeID).Scan(&ref.ID, &ref.DepartmentID)
	if errors.Is(err, pgx.ErrNoRows) {
		return auth.EmployeeRef{}, ErrEmployeeNotFound
	}
	return ref, err
}

func (s *Store) EmployeeByID(ctx context.Context, employeeID string) (Employee, error) {
	var emp Employee
	err := s.DB.QueryRow(ctx, `
    SELECT id, emp_no, first_name, last_name, email, status,
           COALESCE(dept_id::text, ''), COALESCE(pay_group_id::text, ''), hire_date, created_at
    FROM employees
    WHERE id = $1
  `, employeeID).Scan(&emp.ID, &emp.EmpNo, &emp.FirstName, &emp.LastName, &emp.Email,
		&emp.Status, &emp.DepartmentID, &emp.PayGroupID, &emp.HireDate, &emp.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, ErrEmployeeNotFound
	}
	return emp, err
}

func (s *Store) ListEmployees(ctx context.Context, scope auth.ScopeFilter, limit, offset int) ([]Employee, error) {
	cond, args := scope.SQLCondition("e.id", "e.dept_id", 1)
	query := fmt.Sprintf(`
    SELECT e.id, e.emp_no, e.first_name, e.last_name, e.email, e.status,
           COALESCE(e.dept_id::text, ''), COALESCE(e.pay_group_id::text, ''), e.hire_date, e.created_at
    FROM employees e
    WHERE %s
    ORDER BY e.emp_no
    LIMIT $%d OFFSET $%d
  `, cond, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		var emp Employee
		if err := rows.Scan(&emp.ID, &emp.EmpNo, &emp.FirstName, &emp.LastName, &emp.Email,
			&emp.Status, &emp.DepartmentID, &emp.PayGroupID, &emp.HireDate, &emp.CreatedAt); err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

func (s *Store) ListDepartments(ctx context.Context) ([]Department, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, code, name, COALESCE(parent_id::text, '')
    FROM departments
    ORDER BY code
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var departments []Department
	for rows.Next() {
		var dept Department
		if err := rows.Scan(&dept.ID, &dept.Code, &dept.Name, &dept.ParentID); err != nil {
			return nil, err
		}
		departments = append(departments, dept)
	}
	return departments, rows.Err()
}

func (s *Store) ListPayGroups(ctx context.Context) ([]PayGroup, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, code, name, pay_cycle
    FROM pay_groups
    ORDER BY code
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []PayGroup
	for rows.Next() {
		var group PayGroup
		if err := rows.Scan(&group.ID, &group.Code, &group.Name, &group.PayCycle); err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}
	return groups, rows.Err()
}
