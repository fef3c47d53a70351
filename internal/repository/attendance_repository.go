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

var attendanceQuery = query.Definition{
	Table:      "attendance_records",
	SoftDelete: false,
	Filters: []query.Filter{
		{Key: "for_employee", Kind: query.Scoped, Scope: query.EqualsID("attendance_records.employee_id")},
		{Key: "date_range", Kind: query.Scoped, Scope: query.DateRange("attendance_records.log_date")},
		{Key: "log_date", Kind: query.Exact, Column: "attendance_records.log_date"},
		{Key: "employee.first_name", Kind: query.Partial, Column: "employees.first_name"},
		{Key: "employee.last_name", Kind: query.Partial, Column: "employees.last_name"},
	},
	Sorts: map[string]string{
		"log_date":            "attendance_records.log_date",
		"check_in":            "attendance_records.check_in",
		"hours_worked":        "attendance_records.hours_worked",
		"created_at":          "attendance_records.created_at",
		"employee.first_name": "employees.first_name",
	},
	Joins: map[string]query.Join{
		"employee": {Table: "employees", On: "employees.id = attendance_records.employee_id"},
	},
}

var attendanceColumns = []string{
	"attendance_records.id", "attendance_records.employee_id",
	"attendance_records.check_in", "attendance_records.check_out",
	"attendance_records.log_date", "attendance_records.hours_worked",
	"attendance_records.notes",
	"attendance_records.created_at", "attendance_records.updated_at",
}

type attendanceRepository struct {
	db *sql.DB
}

// NewAttendanceRepository creates a new instance of AttendanceRepository.
// Attendance records hard-delete; there is no soft-delete column.
func NewAttendanceRepository(db *sql.DB) domain.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func scanAttendance(s rowScanner) (domain.AttendanceRecord, error) {
	var a domain.AttendanceRecord
	err := s.Scan(
		&a.ID, &a.EmployeeID, &a.CheckIn, &a.CheckOut,
		&a.LogDate, &a.HoursWorked, &a.Notes,
		&a.CreatedAt, &a.UpdatedAt,
	)
	return a, err
}

func (r *attendanceRepository) List(ctx context.Context, desc query.Descriptor) (*domain.Page[domain.AttendanceRecord], error) {
	page, err := fetchPage(ctx, r.db, attendanceQuery, desc, attendanceColumns, scanAttendance)
	if err != nil {
		return nil, err
	}

	items := make([]*domain.AttendanceRecord, len(page.Items))
	for i := range page.Items {
		items[i] = &page.Items[i]
	}
	if err := r.attachRelations(ctx, items); err != nil {
		return nil, err
	}
	return page, nil
}

func (r *attendanceRepository) GetByID(ctx context.Context, id int64) (*domain.AttendanceRecord, error) {
	stmt, args := builder.NewSQLBuilder().
		Select(attendanceColumns...).
		From("attendance_records").
		Where("attendance_records.id = ?", id).
		Build()

	a, err := scanAttendance(r.db.QueryRowContext(ctx, stmt, args...))
	if err != nil {
		return nil, database.TranslateError(err, "attendance record")
	}
	if err := r.attachRelations(ctx, []*domain.AttendanceRecord{&a}); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *attendanceRepository) attachRelations(ctx context.Context, items []*domain.AttendanceRecord) error {
	var employeeIDs []int64
	for _, a := range items {
		employeeIDs = collectIDs(employeeIDs, &a.EmployeeID)
	}

	employees, err := loadEmployeesByID(ctx, r.db, employeeIDs)
	if err != nil {
		return err
	}
	for _, a := range items {
		a.Employee = employees[a.EmployeeID]
	}
	return nil
}

func (r *attendanceRepository) Create(ctx context.Context, a *domain.AttendanceRecord) error {
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now

	stmt, args := builder.NewSQLBuilder().
		Insert("attendance_records",
			"employee_id", "check_in", "check_out", "log_date",
			"hours_worked", "notes", "created_at", "updated_at").
		Values(a.EmployeeID, a.CheckIn, a.CheckOut, a.LogDate,
			a.HoursWorked, a.Notes, a.CreatedAt, a.UpdatedAt).
		Returning("id").
		Build()

	if err := r.db.QueryRowContext(ctx, stmt, args...).Scan(&a.ID); err != nil {
		return database.TranslateError(err, "attendance record")
	}
	return nil
}

func (r *attendanceRepository) Update(ctx context.Context, a *domain.AttendanceRecord) error {
	a.UpdatedAt = time.Now().UTC()

	stmt, args := builder.NewSQLBuilder().
		Update("attendance_records").
		Set("employee_id", a.EmployeeID).
		Set("check_in", a.CheckIn).
		Set("check_out", a.CheckOut).
		Set("log_date", a.LogDate).
		Set("hours_worked", a.HoursWorked).
		Set("notes", a.Notes).
		Set("updated_at", a.UpdatedAt).
		Where("id = ?", a.ID).
		Build()

	res, err := r.db.ExecContext(ctx, stmt, args...)
	if err != nil {
		return database.TranslateError(err, "attendance record")
	}
	return database.TranslateError(requireAffected(res), "attendance record")
}

func (r *attendanceRepository) Delete(ctx context.Context, id int64) error {
	stmt, args := builder.NewSQLBuilder().
		Delete("attendance_records").
		Where("id = ?", id).
		Build()

	res, err := r.db.ExecContext(ctx, stmt, args...)
	if err != nil {
		return database.TranslateError(err, "attendance record")
	}
	return database.TranslateError(requireAffected(res), "attendance record")
}
