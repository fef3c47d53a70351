package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/worklane/hrms/internal/domain"
)

// Batch loaders for the fixed eager-load sets. Each takes the ids gathered
// from one page of parent rows and returns a lookup map, so relations cost
// one extra query per relation instead of one per row.

func collectIDs(ids []int64, refs ...*int64) []int64 {
	seen := make(map[int64]struct{}, len(ids)+len(refs))
	out := make([]int64, 0, len(ids)+len(refs))
	add := func(id int64) {
		if id == 0 {
			return
		}
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	for _, id := range ids {
		add(id)
	}
	for _, ref := range refs {
		if ref != nil {
			add(*ref)
		}
	}
	return out
}

func loadUsersByID(ctx context.Context, db *sql.DB, ids []int64) (map[int64]*domain.User, error) {
	users := make(map[int64]*domain.User, len(ids))
	if len(ids) == 0 {
		return users, nil
	}

	rows, err := db.QueryContext(ctx,
		`SELECT id, name, email, created_at, updated_at FROM users WHERE id = ANY($1)`,
		pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users[u.ID] = &u
	}
	return users, rows.Err()
}

func loadDepartmentsByID(ctx context.Context, db *sql.DB, ids []int64) (map[int64]*domain.Department, error) {
	departments := make(map[int64]*domain.Department, len(ids))
	if len(ids) == 0 {
		return departments, nil
	}

	rows, err := db.QueryContext(ctx,
		`SELECT id, code, name, timezone, parent_department_id FROM departments WHERE id = ANY($1)`,
		pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("load departments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var d domain.Department
		if err := rows.Scan(&d.ID, &d.Code, &d.Name, &d.Timezone, &d.ParentDepartmentID); err != nil {
			return nil, fmt.Errorf("scan department: %w", err)
		}
		departments[d.ID] = &d
	}
	return departments, rows.Err()
}

func loadDesignationsByID(ctx context.Context, db *sql.DB, ids []int64) (map[int64]*domain.Designation, error) {
	designations := make(map[int64]*domain.Designation, len(ids))
	if len(ids) == 0 {
		return designations, nil
	}

	rows, err := db.QueryContext(ctx,
		`SELECT id, department_id, name FROM designations WHERE id = ANY($1)`,
		pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("load designations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var d domain.Designation
		if err := rows.Scan(&d.ID, &d.DepartmentID, &d.Name); err != nil {
			return nil, fmt.Errorf("scan designation: %w", err)
		}
		designations[d.ID] = &d
	}
	return designations, rows.Err()
}

func loadEmployeesByID(ctx context.Context, db *sql.DB, ids []int64) (map[int64]*domain.Employee, error) {
	employees := make(map[int64]*domain.Employee, len(ids))
	if len(ids) == 0 {
		return employees, nil
	}

	rows, err := db.QueryContext(ctx,
		`SELECT id, department_id, designation_id, first_name, last_name, email FROM employees WHERE id = ANY($1)`,
		pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("load employees: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var e domain.Employee
		if err := rows.Scan(&e.ID, &e.DepartmentID, &e.DesignationID, &e.FirstName, &e.LastName, &e.Email); err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		employees[e.ID] = &e
	}
	return employees, rows.Err()
}

func loadLeaveTypesByID(ctx context.Context, db *sql.DB, ids []int64) (map[int64]*domain.LeaveType, error) {
	leaveTypes := make(map[int64]*domain.LeaveType, len(ids))
	if len(ids) == 0 {
		return leaveTypes, nil
	}

	rows, err := db.QueryContext(ctx,
		`SELECT id, name, annual_quota FROM leave_types WHERE id = ANY($1)`,
		pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("load leave types: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var lt domain.LeaveType
		if err := rows.Scan(&lt.ID, &lt.Name, &lt.AnnualQuota); err != nil {
			return nil, fmt.Errorf("scan leave type: %w", err)
		}
		leaveTypes[lt.ID] = &lt
	}
	return leaveTypes, rows.Err()
}

func loadCurrenciesByCode(ctx context.Context, db *sql.DB, codes []string) (map[string]*domain.Currency, error) {
	currencies := make(map[string]*domain.Currency, len(codes))
	if len(codes) == 0 {
		return currencies, nil
	}

	rows, err := db.QueryContext(ctx,
		`SELECT id, code, name, symbol FROM currencies WHERE code = ANY($1)`,
		pq.Array(codes))
	if err != nil {
		return nil, fmt.Errorf("load currencies: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c domain.Currency
		if err := rows.Scan(&c.ID, &c.Code, &c.Name, &c.Symbol); err != nil {
			return nil, fmt.Errorf("scan currency: %w", err)
		}
		currencies[c.Code] = &c
	}
	return currencies, rows.Err()
}
