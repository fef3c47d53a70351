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

var salaryQuery = query.Definition{
	Table:      "salaries",
	SoftDelete: true,
	Filters: []query.Filter{
		{Key: "for_employee", Kind: query.Scoped, Scope: query.EqualsID("salaries.employee_id")},
		{Key: "currency_code", Kind: query.Exact, Column: "salaries.currency_code"},
		{Key: "effective_date_range", Kind: query.Scoped, Scope: query.DateRange("salaries.effective_date")},
		{Key: "employee.first_name", Kind: query.Partial, Column: "employees.first_name"},
		{Key: "employee.last_name", Kind: query.Partial, Column: "employees.last_name"},
	},
	Sorts: map[string]string{
		"basic":               "salaries.basic",
		"net":                 "salaries.net",
		"effective_date":      "salaries.effective_date",
		"created_at":          "salaries.created_at",
		"employee.first_name": "employees.first_name",
	},
	Joins: map[string]query.Join{
		"employee": {Table: "employees", On: "employees.id = salaries.employee_id"},
	},
}

var salaryColumns = []string{
	"salaries.id", "salaries.employee_id", "salaries.currency_code",
	"salaries.basic", "salaries.allowances", "salaries.deductions",
	"salaries.net", "salaries.effective_date",
	"salaries.created_at", "salaries.updated_at", "salaries.deleted_at",
	"salaries.created_by", "salaries.updated_by", "salaries.deleted_by",
}

type salaryRepository struct {
	db *sql.DB
}

// NewSalaryRepository creates a new instance of SalaryRepository.
func NewSalaryRepository(db *sql.DB) domain.SalaryRepository {
	return &salaryRepository{db: db}
}

func scanSalary(s rowScanner) (domain.Salary, error) {
	var sal domain.Salary
	err := s.Scan(
		&sal.ID, &sal.EmployeeID, &sal.CurrencyCode,
		&sal.Basic, &sal.Allowances, &sal.Deductions,
		&sal.Net, &sal.EffectiveDate,
		&sal.CreatedAt, &sal.UpdatedAt, &sal.DeletedAt,
		&sal.CreatedBy, &sal.UpdatedBy, &sal.DeletedBy,
	)
	return sal, err
}

func (r *salaryRepository) List(ctx context.Context, desc query.Descriptor) (*domain.Page[domain.Salary], error) {
	page, err := fetchPage(ctx, r.db, salaryQuery, desc, salaryColumns, scanSalary)
	if err != nil {
		return nil, err
	}

	items := make([]*domain.Salary, len(page.Items))
	for i := range page.Items {
		items[i] = &page.Items[i]
	}
	if err := r.attachRelations(ctx, items); err != nil {
		return nil, err
	}
	return page, nil
}

func (r *salaryRepository) GetByID(ctx context.Context, id int64) (*domain.Salary, error) {
	return r.get(ctx, id, true)
}

func (r *salaryRepository) GetAnyByID(ctx context.Context, id int64) (*domain.Salary, error) {
	return r.get(ctx, id, false)
}

func (r *salaryRepository) get(ctx context.Context, id int64, scoped bool) (*domain.Salary, error) {
	b := builder.NewSQLBuilder().
		Select(salaryColumns...).
		From("salaries").
		Where("salaries.id = ?", id)
	if scoped {
		b.Where("salaries.deleted_at IS NULL")
	}
	stmt, args := b.Build()

	s, err := scanSalary(r.db.QueryRowContext(ctx, stmt, args...))
	if err != nil {
		return nil, database.TranslateError(err, "salary")
	}
	if err := r.attachRelations(ctx, []*domain.Salary{&s}); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *salaryRepository) attachRelations(ctx context.Context, items []*domain.Salary) error {
	var userIDs, employeeIDs []int64
	var currencyCodes []string
	seenCodes := make(map[string]struct{})
	for _, s := range items {
		userIDs = collectIDs(userIDs, s.CreatedBy, s.UpdatedBy, s.DeletedBy)
		employeeIDs = collectIDs(employeeIDs, &s.EmployeeID)
		if _, ok := seenCodes[s.CurrencyCode]; !ok {
			seenCodes[s.CurrencyCode] = struct{}{}
			currencyCodes = append(currencyCodes, s.CurrencyCode)
		}
	}

	users, err := loadUsersByID(ctx, r.db, userIDs)
	if err != nil {
		return err
	}
	employees, err := loadEmployeesByID(ctx, r.db, employeeIDs)
	if err != nil {
		return err
	}
	currencies, err := loadCurrenciesByCode(ctx, r.db, currencyCodes)
	if err != nil {
		return err
	}

	for _, s := range items {
		s.Employee = employees[s.EmployeeID]
		s.Currency = currencies[s.CurrencyCode]
		if s.CreatedBy != nil {
			s.CreatedByUser = users[*s.CreatedBy]
		}
		if s.UpdatedBy != nil {
			s.UpdatedByUser = users[*s.UpdatedBy]
		}
		if s.DeletedBy != nil {
			s.DeletedByUser = users[*s.DeletedBy]
		}
	}
	return nil
}

func (r *salaryRepository) Create(ctx context.Context, s *domain.Salary) error {
	now := time.Now().UTC()
	s.CreatedAt = now
	s.UpdatedAt = now

	stmt, args := builder.NewSQLBuilder().
		Insert("salaries",
			"employee_id", "currency_code", "basic", "allowances",
			"deductions", "net", "effective_date",
			"created_at", "updated_at", "created_by", "updated_by").
		Values(s.EmployeeID, s.CurrencyCode, s.Basic, s.Allowances,
			s.Deductions, s.Net, s.EffectiveDate,
			s.CreatedAt, s.UpdatedAt, s.CreatedBy, s.UpdatedBy).
		Returning("id").
		Build()

	if err := r.db.QueryRowContext(ctx, stmt, args...).Scan(&s.ID); err != nil {
		return database.TranslateError(err, "salary")
	}
	return nil
}

func (r *salaryRepository) Update(ctx context.Context, s *domain.Salary) error {
	s.UpdatedAt = time.Now().UTC()

	stmt, args := builder.NewSQLBuilder().
		Update("salaries").
		Set("employee_id", s.EmployeeID).
		Set("currency_code", s.CurrencyCode).
		Set("basic", s.Basic).
		Set("allowances", s.Allowances).
		Set("deductions", s.Deductions).
		Set("net", s.Net).
		Set("effective_date", s.EffectiveDate).
		Set("updated_at", s.UpdatedAt).
		Set("updated_by", s.UpdatedBy).
		Where("id = ?", s.ID).
		Where("deleted_at IS NULL").
		Build()

	res, err := r.db.ExecContext(ctx, stmt, args...)
	if err != nil {
		return database.TranslateError(err, "salary")
	}
	return database.TranslateError(requireAffected(res), "salary")
}

func (r *salaryRepository) SoftDelete(ctx context.Context, id int64, actor *int64) error {
	now := time.Now().UTC()
	stmt, args := builder.NewSQLBuilder().
		Update("salaries").
		Set("deleted_at", now).
		Set("deleted_by", actor).
		Set("updated_at", now).
		Where("id = ?", id).
		Where("deleted_at IS NULL").
		Build()

	res, err := r.db.ExecContext(ctx, stmt, args...)
	if err != nil {
		return database.TranslateError(err, "salary")
	}
	return database.TranslateError(requireAffected(res), "salary")
}
