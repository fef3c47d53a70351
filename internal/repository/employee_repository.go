package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/worklane/hrms/internal/database"
	"github.com/worklane/hrms/internal/domain"
	"github.com/worklane/hrms/internal/query"
	"github.com/worklane/hrms/internal/repository/builder"
)

// employeeQuery is the declarative list configuration for employees: the
// filter and sort allow-lists and the relation join registry. Anything not
// listed here is silently dropped from requests.
var employeeQuery = query.Definition{
	Table:      "employees",
	SoftDelete: true,
	Filters: []query.Filter{
		{Key: "first_name", Kind: query.Partial, Column: "employees.first_name"},
		{Key: "last_name", Kind: query.Partial, Column: "employees.last_name"},
		{Key: "email", Kind: query.Partial, Column: "employees.email"},
		{Key: "phone", Kind: query.Partial, Column: "employees.phone"},
		{Key: "department_id", Kind: query.Exact, Column: "employees.department_id"},
		{Key: "designation_id", Kind: query.Exact, Column: "employees.designation_id"},
		{Key: "department.name", Kind: query.Partial, Column: "departments.name"},
		{Key: "designation.name", Kind: query.Partial, Column: "designations.name"},
		{Key: "hire_date_range", Kind: query.Scoped, Scope: query.DateRange("employees.hire_date")},
	},
	Sorts: map[string]string{
		"first_name":       "employees.first_name",
		"last_name":        "employees.last_name",
		"email":            "employees.email",
		"hire_date":        "employees.hire_date",
		"created_at":       "employees.created_at",
		"department.name":  "departments.name",
		"designation.name": "designations.name",
	},
	Joins: map[string]query.Join{
		"department":  {Table: "departments", On: "departments.id = employees.department_id"},
		"designation": {Table: "designations", On: "designations.id = employees.designation_id"},
	},
}

var employeeColumns = []string{
	"employees.id", "employees.user_id", "employees.department_id",
	"employees.designation_id", "employees.first_name", "employees.last_name",
	"employees.email", "employees.phone", "employees.hire_date",
	"employees.created_at", "employees.updated_at", "employees.deleted_at",
	"employees.created_by", "employees.updated_by", "employees.deleted_by",
}

type employeeRepository struct {
	db *sql.DB
}

// NewEmployeeRepository creates a new instance of EmployeeRepository.
func NewEmployeeRepository(db *sql.DB) domain.EmployeeRepository {
	return &employeeRepository{db: db}
}

func scanEmployee(s rowScanner) (domain.Employee, error) {
	var e domain.Employee
	err := s.Scan(
		&e.ID, &e.UserID, &e.DepartmentID, &e.DesignationID,
		&e.FirstName, &e.LastName, &e.Email, &e.Phone, &e.HireDate,
		&e.CreatedAt, &e.UpdatedAt, &e.DeletedAt,
		&e.CreatedBy, &e.UpdatedBy, &e.DeletedBy,
	)
	return e, err
}

func (r *employeeRepository) List(ctx context.Context, desc query.Descriptor) (*domain.Page[domain.Employee], error) {
	page, err := fetchPage(ctx, r.db, employeeQuery, desc, employeeColumns, scanEmployee)
	if err != nil {
		return nil, err
	}

	items := make([]*domain.Employee, len(page.Items))
	for i := range page.Items {
		items[i] = &page.Items[i]
	}
	if err := r.attachRelations(ctx, items); err != nil {
		return nil, err
	}
	return page, nil
}

func (r *employeeRepository) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	return r.get(ctx, id, true)
}

func (r *employeeRepository) GetAnyByID(ctx context.Context, id int64) (*domain.Employee, error) {
	return r.get(ctx, id, false)
}

func (r *employeeRepository) get(ctx context.Context, id int64, scoped bool) (*domain.Employee, error) {
	b := builder.NewSQLBuilder().
		Select(employeeColumns...).
		From("employees").
		Where("employees.id = ?", id)
	if scoped {
		b.Where("employees.deleted_at IS NULL")
	}
	stmt, args := b.Build()

	e, err := scanEmployee(r.db.QueryRowContext(ctx, stmt, args...))
	if err != nil {
		return nil, database.TranslateError(err, "employee")
	}
	if err := r.attachRelations(ctx, []*domain.Employee{&e}); err != nil {
		return nil, err
	}
	return &e, nil
}

// attachRelations resolves the fixed eager-load set for employees: user,
// department, designation and the audit users.
func (r *employeeRepository) attachRelations(ctx context.Context, items []*domain.Employee) error {
	var userIDs, departmentIDs, designationIDs []int64
	for _, e := range items {
		userIDs = collectIDs(userIDs, e.UserID, e.CreatedBy, e.UpdatedBy, e.DeletedBy)
		departmentIDs = collectIDs(departmentIDs, &e.DepartmentID)
		designationIDs = collectIDs(designationIDs, &e.DesignationID)
	}

	users, err := loadUsersByID(ctx, r.db, userIDs)
	if err != nil {
		return err
	}
	departments, err := loadDepartmentsByID(ctx, r.db, departmentIDs)
	if err != nil {
		return err
	}
	designations, err := loadDesignationsByID(ctx, r.db, designationIDs)
	if err != nil {
		return err
	}

	for _, e := range items {
		if e.UserID != nil {
			e.User = users[*e.UserID]
		}
		e.Department = departments[e.DepartmentID]
		e.Designation = designations[e.DesignationID]
		if e.CreatedBy != nil {
			e.CreatedByUser = users[*e.CreatedBy]
		}
		if e.UpdatedBy != nil {
			e.UpdatedByUser = users[*e.UpdatedBy]
		}
		if e.DeletedBy != nil {
			e.DeletedByUser = users[*e.DeletedBy]
		}
	}
	return nil
}

func (r *employeeRepository) Create(ctx context.Context, e *domain.Employee) error {
	now := time.Now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now

	stmt, args := builder.NewSQLBuilder().
		Insert("employees",
			"user_id", "department_id", "designation_id", "first_name",
			"last_name", "email", "phone", "hire_date",
			"created_at", "updated_at", "created_by", "updated_by").
		Values(e.UserID, e.DepartmentID, e.DesignationID, e.FirstName,
			e.LastName, e.Email, e.Phone, e.HireDate,
			e.CreatedAt, e.UpdatedAt, e.CreatedBy, e.UpdatedBy).
		Returning("id").
		Build()

	if err := r.db.QueryRowContext(ctx, stmt, args...).Scan(&e.ID); err != nil {
		return database.TranslateError(err, "employee")
	}
	return nil
}

func (r *employeeRepository) Update(ctx context.Context, e *domain.Employee) error {
	e.UpdatedAt = time.Now().UTC()

	stmt, args := builder.NewSQLBuilder().
		Update("employees").
		Set("user_id", e.UserID).
		Set("department_id", e.DepartmentID).
		Set("designation_id", e.DesignationID).
		Set("first_name", e.FirstName).
		Set("last_name", e.LastName).
		Set("email", e.Email).
		Set("phone", e.Phone).
		Set("hire_date", e.HireDate).
		Set("updated_at", e.UpdatedAt).
		Set("updated_by", e.UpdatedBy).
		Where("id = ?", e.ID).
		Where("deleted_at IS NULL").
		Build()

	res, err := r.db.ExecContext(ctx, stmt, args...)
	if err != nil {
		return database.TranslateError(err, "employee")
	}
	return database.TranslateError(requireAffected(res), "employee")
}

func (r *employeeRepository) SoftDelete(ctx context.Context, id int64, actor *int64) error {
	now := time.Now().UTC()
	stmt, args := builder.NewSQLBuilder().
		Update("employees").
		Set("deleted_at", now).
		Set("deleted_by", actor).
		Set("updated_at", now).
		Where("id = ?", id).
		Where("deleted_at IS NULL").
		Build()

	res, err := r.db.ExecContext(ctx, stmt, args...)
	if err != nil {
		return database.TranslateError(err, "employee")
	}
	return database.TranslateError(requireAffected(res), "employee")
}

func (r *employeeRepository) Options(ctx context.Context) ([]domain.Option, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, first_name || ' ' || last_name FROM employees
		 WHERE deleted_at IS NULL ORDER BY first_name, last_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var options []domain.Option
	for rows.Next() {
		var o domain.Option
		if err := rows.Scan(&o.ID, &o.Name); err != nil {
			return nil, err
		}
		options = append(options, o)
	}
	return options, rows.Err()
}
