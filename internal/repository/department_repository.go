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

// Dotted keys are not offered for the parent relation: the self-join would
// need table aliasing the builder does not carry, and the dashboard filters
// by parent id.
var departmentQuery = query.Definition{
	Table:      "departments",
	SoftDelete: true,
	Filters: []query.Filter{
		{Key: "code", Kind: query.Partial, Column: "departments.code"},
		{Key: "name", Kind: query.Partial, Column: "departments.name"},
		{Key: "timezone", Kind: query.Exact, Column: "departments.timezone"},
		{Key: "parent_department_id", Kind: query.Exact, Column: "departments.parent_department_id"},
	},
	Sorts: map[string]string{
		"code":       "departments.code",
		"name":       "departments.name",
		"timezone":   "departments.timezone",
		"created_at": "departments.created_at",
	},
}

var departmentColumns = []string{
	"departments.id", "departments.code", "departments.name",
	"departments.timezone", "departments.parent_department_id",
	"departments.created_at", "departments.updated_at", "departments.deleted_at",
	"departments.created_by", "departments.updated_by", "departments.deleted_by",
}

type departmentRepository struct {
	db *sql.DB
}

// NewDepartmentRepository creates a new instance of DepartmentRepository.
func NewDepartmentRepository(db *sql.DB) domain.DepartmentRepository {
	return &departmentRepository{db: db}
}

func scanDepartment(s rowScanner) (domain.Department, error) {
	var d domain.Department
	err := s.Scan(
		&d.ID, &d.Code, &d.Name, &d.Timezone, &d.ParentDepartmentID,
		&d.CreatedAt, &d.UpdatedAt, &d.DeletedAt,
		&d.CreatedBy, &d.UpdatedBy, &d.DeletedBy,
	)
	return d, err
}

func (r *departmentRepository) List(ctx context.Context, desc query.Descriptor) (*domain.Page[domain.Department], error) {
	page, err := fetchPage(ctx, r.db, departmentQuery, desc, departmentColumns, scanDepartment)
	if err != nil {
		return nil, err
	}

	items := make([]*domain.Department, len(page.Items))
	for i := range page.Items {
		items[i] = &page.Items[i]
	}
	if err := r.attachRelations(ctx, items); err != nil {
		return nil, err
	}
	return page, nil
}

func (r *departmentRepository) GetByID(ctx context.Context, id int64) (*domain.Department, error) {
	return r.get(ctx, id, true)
}

func (r *departmentRepository) GetAnyByID(ctx context.Context, id int64) (*domain.Department, error) {
	return r.get(ctx, id, false)
}

func (r *departmentRepository) get(ctx context.Context, id int64, scoped bool) (*domain.Department, error) {
	b := builder.NewSQLBuilder().
		Select(departmentColumns...).
		From("departments").
		Where("departments.id = ?", id)
	if scoped {
		b.Where("departments.deleted_at IS NULL")
	}
	stmt, args := b.Build()

	d, err := scanDepartment(r.db.QueryRowContext(ctx, stmt, args...))
	if err != nil {
		return nil, database.TranslateError(err, "department")
	}
	if err := r.attachRelations(ctx, []*domain.Department{&d}); err != nil {
		return nil, err
	}
	return &d, nil
}

// attachRelations resolves the fixed eager-load set for departments: parent
// department and the audit users.
func (r *departmentRepository) attachRelations(ctx context.Context, items []*domain.Department) error {
	var userIDs, parentIDs []int64
	for _, d := range items {
		userIDs = collectIDs(userIDs, d.CreatedBy, d.UpdatedBy, d.DeletedBy)
		parentIDs = collectIDs(parentIDs, d.ParentDepartmentID)
	}

	users, err := loadUsersByID(ctx, r.db, userIDs)
	if err != nil {
		return err
	}
	parents, err := loadDepartmentsByID(ctx, r.db, parentIDs)
	if err != nil {
		return err
	}

	for _, d := range items {
		if d.ParentDepartmentID != nil {
			d.Parent = parents[*d.ParentDepartmentID]
		}
		if d.CreatedBy != nil {
			d.CreatedByUser = users[*d.CreatedBy]
		}
		if d.UpdatedBy != nil {
			d.UpdatedByUser = users[*d.UpdatedBy]
		}
		if d.DeletedBy != nil {
			d.DeletedByUser = users[*d.DeletedBy]
		}
	}
	return nil
}

func (r *departmentRepository) Create(ctx context.Context, d *domain.Department) error {
	now := time.Now().UTC()
	d.CreatedAt = now
	d.UpdatedAt = now

	stmt, args := builder.NewSQLBuilder().
		Insert("departments",
			"code", "name", "timezone", "parent_department_id",
			"created_at", "updated_at", "created_by", "updated_by").
		Values(d.Code, d.Name, d.Timezone, d.ParentDepartmentID,
			d.CreatedAt, d.UpdatedAt, d.CreatedBy, d.UpdatedBy).
		Returning("id").
		Build()

	if err := r.db.QueryRowContext(ctx, stmt, args...).Scan(&d.ID); err != nil {
		return database.TranslateError(err, "department")
	}
	return nil
}

func (r *departmentRepository) Update(ctx context.Context, d *domain.Department) error {
	d.UpdatedAt = time.Now().UTC()

	stmt, args := builder.NewSQLBuilder().
		Update("departments").
		Set("code", d.Code).
		Set("name", d.Name).
		Set("timezone", d.Timezone).
		Set("parent_department_id", d.ParentDepartmentID).
		Set("updated_at", d.UpdatedAt).
		Set("updated_by", d.UpdatedBy).
		Where("id = ?", d.ID).
		Where("deleted_at IS NULL").
		Build()

	res, err := r.db.ExecContext(ctx, stmt, args...)
	if err != nil {
		return database.TranslateError(err, "department")
	}
	return database.TranslateError(requireAffected(res), "department")
}

func (r *departmentRepository) SoftDelete(ctx context.Context, id int64, actor *int64) error {
	now := time.Now().UTC()
	stmt, args := builder.NewSQLBuilder().
		Update("departments").
		Set("deleted_at", now).
		Set("deleted_by", actor).
		Set("updated_at", now).
		Where("id = ?", id).
		Where("deleted_at IS NULL").
		Build()

	res, err := r.db.ExecContext(ctx, stmt, args...)
	if err != nil {
		return database.TranslateError(err, "department")
	}
	return database.TranslateError(requireAffected(res), "department")
}

func (r *departmentRepository) Options(ctx context.Context) ([]domain.Option, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name FROM departments WHERE deleted_at IS NULL ORDER BY name`)
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
