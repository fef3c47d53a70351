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

var leaveTypeQuery = query.Definition{
	Table:      "leave_types",
	SoftDelete: true,
	Filters: []query.Filter{
		{Key: "name", Kind: query.Partial, Column: "leave_types.name"},
	},
	Sorts: map[string]string{
		"name":         "leave_types.name",
		"annual_quota": "leave_types.annual_quota",
		"created_at":   "leave_types.created_at",
	},
}

var leaveTypeColumns = []string{
	"leave_types.id", "leave_types.name", "leave_types.annual_quota",
	"leave_types.created_at", "leave_types.updated_at", "leave_types.deleted_at",
	"leave_types.created_by", "leave_types.updated_by", "leave_types.deleted_by",
}

type leaveTypeRepository struct {
	db *sql.DB
}

// NewLeaveTypeRepository creates a new instance of LeaveTypeRepository.
func NewLeaveTypeRepository(db *sql.DB) domain.LeaveTypeRepository {
	return &leaveTypeRepository{db: db}
}

func scanLeaveType(s rowScanner) (domain.LeaveType, error) {
	var lt domain.LeaveType
	err := s.Scan(
		&lt.ID, &lt.Name, &lt.AnnualQuota,
		&lt.CreatedAt, &lt.UpdatedAt, &lt.DeletedAt,
		&lt.CreatedBy, &lt.UpdatedBy, &lt.DeletedBy,
	)
	return lt, err
}

func (r *leaveTypeRepository) List(ctx context.Context, desc query.Descriptor) (*domain.Page[domain.LeaveType], error) {
	page, err := fetchPage(ctx, r.db, leaveTypeQuery, desc, leaveTypeColumns, scanLeaveType)
	if err != nil {
		return nil, err
	}

	items := make([]*domain.LeaveType, len(page.Items))
	for i := range page.Items {
		items[i] = &page.Items[i]
	}
	if err := r.attachRelations(ctx, items); err != nil {
		return nil, err
	}
	return page, nil
}

func (r *leaveTypeRepository) GetByID(ctx context.Context, id int64) (*domain.LeaveType, error) {
	return r.get(ctx, id, true)
}

func (r *leaveTypeRepository) GetAnyByID(ctx context.Context, id int64) (*domain.LeaveType, error) {
	return r.get(ctx, id, false)
}

func (r *leaveTypeRepository) get(ctx context.Context, id int64, scoped bool) (*domain.LeaveType, error) {
	b := builder.NewSQLBuilder().
		Select(leaveTypeColumns...).
		From("leave_types").
		Where("leave_types.id = ?", id)
	if scoped {
		b.Where("leave_types.deleted_at IS NULL")
	}
	stmt, args := b.Build()

	lt, err := scanLeaveType(r.db.QueryRowContext(ctx, stmt, args...))
	if err != nil {
		return nil, database.TranslateError(err, "leave type")
	}
	if err := r.attachRelations(ctx, []*domain.LeaveType{&lt}); err != nil {
		return nil, err
	}
	return &lt, nil
}

func (r *leaveTypeRepository) attachRelations(ctx context.Context, items []*domain.LeaveType) error {
	var userIDs []int64
	for _, lt := range items {
		userIDs = collectIDs(userIDs, lt.CreatedBy, lt.UpdatedBy, lt.DeletedBy)
	}

	users, err := loadUsersByID(ctx, r.db, userIDs)
	if err != nil {
		return err
	}
	for _, lt := range items {
		if lt.CreatedBy != nil {
			lt.CreatedByUser = users[*lt.CreatedBy]
		}
		if lt.UpdatedBy != nil {
			lt.UpdatedByUser = users[*lt.UpdatedBy]
		}
		if lt.DeletedBy != nil {
			lt.DeletedByUser = users[*lt.DeletedBy]
		}
	}
	return nil
}

func (r *leaveTypeRepository) Create(ctx context.Context, lt *domain.LeaveType) error {
	now := time.Now().UTC()
	lt.CreatedAt = now
	lt.UpdatedAt = now

	stmt, args := builder.NewSQLBuilder().
		Insert("leave_types",
			"name", "annual_quota",
			"created_at", "updated_at", "created_by", "updated_by").
		Values(lt.Name, lt.AnnualQuota,
			lt.CreatedAt, lt.UpdatedAt, lt.CreatedBy, lt.UpdatedBy).
		Returning("id").
		Build()

	if err := r.db.QueryRowContext(ctx, stmt, args...).Scan(&lt.ID); err != nil {
		return database.TranslateError(err, "leave type")
	}
	return nil
}

func (r *leaveTypeRepository) Update(ctx context.Context, lt *domain.LeaveType) error {
	lt.UpdatedAt = time.Now().UTC()

	stmt, args := builder.NewSQLBuilder().
		Update("leave_types").
		Set("name", lt.Name).
		Set("annual_quota", lt.AnnualQuota).
		Set("updated_at", lt.UpdatedAt).
		Set("updated_by", lt.UpdatedBy).
		Where("id = ?", lt.ID).
		Where("deleted_at IS NULL").
		Build()

	res, err := r.db.ExecContext(ctx, stmt, args...)
	if err != nil {
		return database.TranslateError(err, "leave type")
	}
	return database.TranslateError(requireAffected(res), "leave type")
}

func (r *leaveTypeRepository) SoftDelete(ctx context.Context, id int64, actor *int64) error {
	now := time.Now().UTC()
	stmt, args := builder.NewSQLBuilder().
		Update("leave_types").
		Set("deleted_at", now).
		Set("deleted_by", actor).
		Set("updated_at", now).
		Where("id = ?", id).
		Where("deleted_at IS NULL").
		Build()

	res, err := r.db.ExecContext(ctx, stmt, args...)
	if err != nil {
		return database.TranslateError(err, "leave type")
	}
	return database.TranslateError(requireAffected(res), "leave type")
}

func (r *leaveTypeRepository) Options(ctx context.Context) ([]domain.Option, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name FROM leave_types WHERE deleted_at IS NULL ORDER BY name`)
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
