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

var designationQuery = query.Definition{
	Table:      "designations",
	SoftDelete: true,
	Filters: []query.Filter{
		{Key: "name", Kind: query.Partial, Column: "designations.name"},
		{Key: "department_id", Kind: query.Exact, Column: "designations.department_id"},
		{Key: "department.name", Kind: query.Partial, Column: "departments.name"},
	},
	Sorts: map[string]string{
		"name":            "designations.name",
		"created_at":      "designations.created_at",
		"department.name": "departments.name",
	},
	Joins: map[string]query.Join{
		"department": {Table: "departments", On: "departments.id = designations.department_id"},
	},
}

var designationColumns = []string{
	"designations.id", "designations.department_id", "designations.name",
	"designations.created_at", "designations.updated_at", "designations.deleted_at",
	"designations.created_by", "designations.updated_by", "designations.deleted_by",
}

type designationRepository struct {
	db *sql.DB
}

// NewDesignationRepository creates a new instance of DesignationRepository.
func NewDesignationRepository(db *sql.DB) domain.DesignationRepository {
	return &designationRepository{db: db}
}

func scanDesignation(s rowScanner) (domain.Designation, error) {
	var d domain.Designation
	err := s.Scan(
		&d.ID, &d.DepartmentID, &d.Name,
		&d.CreatedAt, &d.UpdatedAt, &d.DeletedAt,
		&d.CreatedBy, &d.UpdatedBy, &d.DeletedBy,
	)
	return d, err
}

func (r *designationRepository) List(ctx context.Context, desc query.Descriptor) (*domain.Page[domain.Designation], error) {
	page, err := fetchPage(ctx, r.db, designationQuery, desc, designationColumns, scanDesignation)
	if err != nil {
		return nil, err
	}

	items := make([]*domain.Designation, len(page.Items))
	for i := range page.Items {
		items[i] = &page.Items[i]
	}
	if err := r.attachRelations(ctx, items); err != nil {
		return nil, err
	}
	return page, nil
}

func (r *designationRepository) GetByID(ctx context.Context, id int64) (*domain.Designation, error) {
	return r.get(ctx, id, true)
}

func (r *designationRepository) GetAnyByID(ctx context.Context, id int64) (*domain.Designation, error) {
	return r.get(ctx, id, false)
}

func (r *designationRepository) get(ctx context.Context, id int64, scoped bool) (*domain.Designation, error) {
	b := builder.NewSQLBuilder().
		Select(designationColumns...).
		From("designations").
		Where("designations.id = ?", id)
	if scoped {
		b.Where("designations.deleted_at IS NULL")
	}
	stmt, args := b.Build()

	d, err := scanDesignation(r.db.QueryRowContext(ctx, stmt, args...))
	if err != nil {
		return nil, database.TranslateError(err, "designation")
	}
	if err := r.attachRelations(ctx, []*domain.Designation{&d}); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *designationRepository) attachRelations(ctx context.Context, items []*domain.Designation) error {
	var userIDs, departmentIDs []int64
	for _, d := range items {
		userIDs = collectIDs(userIDs, d.CreatedBy, d.UpdatedBy, d.DeletedBy)
		departmentIDs = collectIDs(departmentIDs, &d.DepartmentID)
	}

	users, err := loadUsersByID(ctx, r.db, userIDs)
	if err != nil {
		return err
	}
	departments, err := loadDepartmentsByID(ctx, r.db, departmentIDs)
	if err != nil {
		return err
	}

	for _, d := range items {
		d.Department = departments[d.DepartmentID]
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

func (r *designationRepository) Create(ctx context.Context, d *domain.Designation) error {
	now := time.Now().UTC()
	d.CreatedAt = now
	d.UpdatedAt = now

	stmt, args := builder.NewSQLBuilder().
		Insert("designations",
			"department_id", "name",
			"created_at", "updated_at", "created_by", "updated_by").
		Values(d.DepartmentID, d.Name,
			d.CreatedAt, d.UpdatedAt, d.CreatedBy, d.UpdatedBy).
		Returning("id").
		Build()

	if err := r.db.QueryRowContext(ctx, stmt, args...).Scan(&d.ID); err != nil {
		return database.TranslateError(err, "designation")
	}
	return nil
}

func (r *designationRepository) Update(ctx context.Context, d *domain.Designation) error {
	d.UpdatedAt = time.Now().UTC()

	stmt, args := builder.NewSQLBuilder().
		Update("designations").
		Set("department_id", d.DepartmentID).
		Set("name", d.Name).
		Set("updated_at", d.UpdatedAt).
		Set("updated_by", d.UpdatedBy).
		Where("id = ?", d.ID).
		Where("deleted_at IS NULL").
		Build()

	res, err := r.db.ExecContext(ctx, stmt, args...)
	if err != nil {
		return database.TranslateError(err, "designation")
	}
	return database.TranslateError(requireAffected(res), "designation")
}

func (r *designationRepository) SoftDelete(ctx context.Context, id int64, actor *int64) error {
	now := time.Now().UTC()
	stmt, args := builder.NewSQLBuilder().
		Update("designations").
		Set("deleted_at", now).
		Set("deleted_by", actor).
		Set("updated_at", now).
		Where("id = ?", id).
		Where("deleted_at IS NULL").
		Build()

	res, err := r.db.ExecContext(ctx, stmt, args...)
	if err != nil {
		return database.TranslateError(err, "designation")
	}
	return database.TranslateError(requireAffected(res), "designation")
}

func (r *designationRepository) Options(ctx context.Context) ([]domain.Option, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name FROM designations WHERE deleted_at IS NULL ORDER BY name`)
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
