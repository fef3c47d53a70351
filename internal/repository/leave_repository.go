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

var leaveQuery = query.Definition{
	Table:      "leaves",
	SoftDelete: true,
	Filters: []query.Filter{
		{Key: "status", Kind: query.Scoped, Scope: query.OneOf("leaves.status",
			domain.LeaveStatusPending, domain.LeaveStatusApproved,
			domain.LeaveStatusRejected, domain.LeaveStatusCancelled)},
		{Key: "for_employee", Kind: query.Scoped, Scope: query.EqualsID("leaves.employee_id")},
		{Key: "date_range", Kind: query.Scoped, Scope: query.DateRange("leaves.start_date")},
		{Key: "leave_type_id", Kind: query.Exact, Column: "leaves.leave_type_id"},
		{Key: "leave_type.name", Kind: query.Partial, Column: "leave_types.name"},
		{Key: "employee.first_name", Kind: query.Partial, Column: "employees.first_name"},
	},
	Sorts: map[string]string{
		"start_date":          "leaves.start_date",
		"end_date":            "leaves.end_date",
		"status":              "leaves.status",
		"created_at":          "leaves.created_at",
		"leave_type.name":     "leave_types.name",
		"employee.first_name": "employees.first_name",
	},
	Joins: map[string]query.Join{
		"leave_type": {Table: "leave_types", On: "leave_types.id = leaves.leave_type_id"},
		"employee":   {Table: "employees", On: "employees.id = leaves.employee_id"},
	},
}

var leaveColumns = []string{
	"leaves.id", "leaves.employee_id", "leaves.leave_type_id",
	"leaves.start_date", "leaves.end_date", "leaves.total_days",
	"leaves.reason", "leaves.status",
	"leaves.created_at", "leaves.updated_at", "leaves.deleted_at",
	"leaves.created_by", "leaves.updated_by", "leaves.deleted_by",
}

type leaveRepository struct {
	db *sql.DB
}

// NewLeaveRepository creates a new instance of LeaveRepository.
func NewLeaveRepository(db *sql.DB) domain.LeaveRepository {
	return &leaveRepository{db: db}
}

func scanLeave(s rowScanner) (domain.Leave, error) {
	var l domain.Leave
	err := s.Scan(
		&l.ID, &l.EmployeeID, &l.LeaveTypeID,
		&l.StartDate, &l.EndDate, &l.TotalDays, &l.Reason, &l.Status,
		&l.CreatedAt, &l.UpdatedAt, &l.DeletedAt,
		&l.CreatedBy, &l.UpdatedBy, &l.DeletedBy,
	)
	return l, err
}

func (r *leaveRepository) List(ctx context.Context, desc query.Descriptor) (*domain.Page[domain.Leave], error) {
	page, err := fetchPage(ctx, r.db, leaveQuery, desc, leaveColumns, scanLeave)
	if err != nil {
		return nil, err
	}

	items := make([]*domain.Leave, len(page.Items))
	for i := range page.Items {
		items[i] = &page.Items[i]
	}
	if err := r.attachRelations(ctx, items); err != nil {
		return nil, err
	}
	return page, nil
}

func (r *leaveRepository) GetByID(ctx context.Context, id int64) (*domain.Leave, error) {
	return r.get(ctx, id, true)
}

func (r *leaveRepository) GetAnyByID(ctx context.Context, id int64) (*domain.Leave, error) {
	return r.get(ctx, id, false)
}

func (r *leaveRepository) get(ctx context.Context, id int64, scoped bool) (*domain.Leave, error) {
	b := builder.NewSQLBuilder().
		Select(leaveColumns...).
		From("leaves").
		Where("leaves.id = ?", id)
	if scoped {
		b.Where("leaves.deleted_at IS NULL")
	}
	stmt, args := b.Build()

	l, err := scanLeave(r.db.QueryRowContext(ctx, stmt, args...))
	if err != nil {
		return nil, database.TranslateError(err, "leave")
	}
	if err := r.attachRelations(ctx, []*domain.Leave{&l}); err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *leaveRepository) attachRelations(ctx context.Context, items []*domain.Leave) error {
	var userIDs, employeeIDs, leaveTypeIDs []int64
	for _, l := range items {
		userIDs = collectIDs(userIDs, l.CreatedBy, l.UpdatedBy, l.DeletedBy)
		employeeIDs = collectIDs(employeeIDs, &l.EmployeeID)
		leaveTypeIDs = collectIDs(leaveTypeIDs, &l.LeaveTypeID)
	}

	users, err := loadUsersByID(ctx, r.db, userIDs)
	if err != nil {
		return err
	}
	employees, err := loadEmployeesByID(ctx, r.db, employeeIDs)
	if err != nil {
		return err
	}
	leaveTypes, err := loadLeaveTypesByID(ctx, r.db, leaveTypeIDs)
	if err != nil {
		return err
	}

	for _, l := range items {
		l.Employee = employees[l.EmployeeID]
		l.LeaveType = leaveTypes[l.LeaveTypeID]
		if l.CreatedBy != nil {
			l.CreatedByUser = users[*l.CreatedBy]
		}
		if l.UpdatedBy != nil {
			l.UpdatedByUser = users[*l.UpdatedBy]
		}
		if l.DeletedBy != nil {
			l.DeletedByUser = users[*l.DeletedBy]
		}
	}
	return nil
}

func (r *leaveRepository) Create(ctx context.Context, l *domain.Leave) error {
	now := time.Now().UTC()
	l.CreatedAt = now
	l.UpdatedAt = now

	stmt, args := builder.NewSQLBuilder().
		Insert("leaves",
			"employee_id", "leave_type_id", "start_date", "end_date",
			"total_days", "reason", "status",
			"created_at", "updated_at", "created_by", "updated_by").
		Values(l.EmployeeID, l.LeaveTypeID, l.StartDate, l.EndDate,
			l.TotalDays, l.Reason, l.Status,
			l.CreatedAt, l.UpdatedAt, l.CreatedBy, l.UpdatedBy).
		Returning("id").
		Build()

	if err := r.db.QueryRowContext(ctx, stmt, args...).Scan(&l.ID); err != nil {
		return database.TranslateError(err, "leave")
	}
	return nil
}

func (r *leaveRepository) Update(ctx context.Context, l *domain.Leave) error {
	l.UpdatedAt = time.Now().UTC()

	stmt, args := builder.NewSQLBuilder().
		Update("leaves").
		Set("employee_id", l.EmployeeID).
		Set("leave_type_id", l.LeaveTypeID).
		Set("start_date", l.StartDate).
		Set("end_date", l.EndDate).
		Set("total_days", l.TotalDays).
		Set("reason", l.Reason).
		Set("status", l.Status).
		Set("updated_at", l.UpdatedAt).
		Set("updated_by", l.UpdatedBy).
		Where("id = ?", l.ID).
		Where("deleted_at IS NULL").
		Build()

	res, err := r.db.ExecContext(ctx, stmt, args...)
	if err != nil {
		return database.TranslateError(err, "leave")
	}
	return database.TranslateError(requireAffected(res), "leave")
}

func (r *leaveRepository) SoftDelete(ctx context.Context, id int64, actor *int64) error {
	now := time.Now().UTC()
	stmt, args := builder.NewSQLBuilder().
		Update("leaves").
		Set("deleted_at", now).
		Set("deleted_by", actor).
		Set("updated_at", now).
		Where("id = ?", id).
		Where("deleted_at IS NULL").
		Build()

	res, err := r.db.ExecContext(ctx, stmt, args...)
	if err != nil {
		return database.TranslateError(err, "leave")
	}
	return database.TranslateError(requireAffected(res), "leave")
}
