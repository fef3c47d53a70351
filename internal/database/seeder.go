package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Seeder creates the schema and loads demo data for local development.
type Seeder struct {
	db *sql.DB
}

func NewSeeder(db *sql.DB) *Seeder {
	return &Seeder{db: db}
}

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS departments (
		id BIGSERIAL PRIMARY KEY,
		code TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		timezone TEXT NOT NULL DEFAULT '',
		parent_department_id BIGINT REFERENCES departments(id),
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		deleted_at TIMESTAMPTZ,
		created_by BIGINT REFERENCES users(id),
		updated_by BIGINT REFERENCES users(id),
		deleted_by BIGINT REFERENCES users(id)
	)`,
	`CREATE TABLE IF NOT EXISTS designations (
		id BIGSERIAL PRIMARY KEY,
		department_id BIGINT NOT NULL REFERENCES departments(id),
		name TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		deleted_at TIMESTAMPTZ,
		created_by BIGINT REFERENCES users(id),
		updated_by BIGINT REFERENCES users(id),
		deleted_by BIGINT REFERENCES users(id)
	)`,
	`CREATE TABLE IF NOT EXISTS employees (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT REFERENCES users(id),
		department_id BIGINT NOT NULL REFERENCES departments(id),
		designation_id BIGINT NOT NULL REFERENCES designations(id),
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		phone TEXT NOT NULL DEFAULT '',
		hire_date DATE NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		deleted_at TIMESTAMPTZ,
		created_by BIGINT REFERENCES users(id),
		updated_by BIGINT REFERENCES users(id),
		deleted_by BIGINT REFERENCES users(id)
	)`,
	`CREATE TABLE IF NOT EXISTS attendance_records (
		id BIGSERIAL PRIMARY KEY,
		employee_id BIGINT NOT NULL REFERENCES employees(id),
		check_in TIMESTAMPTZ NOT NULL,
		check_out TIMESTAMPTZ,
		log_date DATE NOT NULL,
		hours_worked DOUBLE PRECISION,
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS leave_types (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		annual_quota INT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		deleted_at TIMESTAMPTZ,
		created_by BIGINT REFERENCES users(id),
		updated_by BIGINT REFERENCES users(id),
		deleted_by BIGINT REFERENCES users(id)
	)`,
	`CREATE TABLE IF NOT EXISTS leaves (
		id BIGSERIAL PRIMARY KEY,
		employee_id BIGINT NOT NULL REFERENCES employees(id),
		leave_type_id BIGINT NOT NULL REFERENCES leave_types(id),
		start_date DATE NOT NULL,
		end_date DATE NOT NULL,
		total_days INT NOT NULL,
		reason TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'pending',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		deleted_at TIMESTAMPTZ,
		created_by BIGINT REFERENCES users(id),
		updated_by BIGINT REFERENCES users(id),
		deleted_by BIGINT REFERENCES users(id)
	)`,
	`CREATE TABLE IF NOT EXISTS currencies (
		id BIGSERIAL PRIMARY KEY,
		code TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		symbol TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		deleted_at TIMESTAMPTZ,
		created_by BIGINT REFERENCES users(id),
		updated_by BIGINT REFERENCES users(id),
		deleted_by BIGINT REFERENCES users(id)
	)`,
	`CREATE TABLE IF NOT EXISTS salaries (
		id BIGSERIAL PRIMARY KEY,
		employee_id BIGINT NOT NULL REFERENCES employees(id),
		currency_code TEXT NOT NULL REFERENCES currencies(code),
		basic DOUBLE PRECISION NOT NULL,
		allowances DOUBLE PRECISION NOT NULL DEFAULT 0,
		deductions DOUBLE PRECISION NOT NULL DEFAULT 0,
		net DOUBLE PRECISION NOT NULL,
		effective_date DATE NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		deleted_at TIMESTAMPTZ,
		created_by BIGINT REFERENCES users(id),
		updated_by BIGINT REFERENCES users(id),
		deleted_by BIGINT REFERENCES users(id)
	)`,
	`CREATE TABLE IF NOT EXISTS employee_documents (
		id BIGSERIAL PRIMARY KEY,
		employee_id BIGINT NOT NULL REFERENCES employees(id),
		title TEXT NOT NULL,
		file_path TEXT NOT NULL,
		mime_type TEXT NOT NULL DEFAULT '',
		size_bytes BIGINT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		deleted_at TIMESTAMPTZ,
		created_by BIGINT REFERENCES users(id),
		updated_by BIGINT REFERENCES users(id),
		deleted_by BIGINT REFERENCES users(id)
	)`,
	`CREATE TABLE IF NOT EXISTS audit_logs (
		id BIGSERIAL PRIMARY KEY,
		table_name TEXT NOT NULL,
		record_id BIGINT NOT NULL,
		action TEXT NOT NULL,
		acting_user_id BIGINT REFERENCES users(id),
		created_at TIMESTAMPTZ NOT NULL
	)`,
}

// Migrate creates all tables when missing.
func (s *Seeder) Migrate(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

// Seed loads a small demo dataset. It is idempotent only on an empty
// database; rerunning against seeded data duplicates rows with new keys.
func (s *Seeder) Seed(ctx context.Context) error {
	now := time.Now().UTC()

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	var adminID int64
	err = s.db.QueryRowContext(ctx,
		`INSERT INTO users (name, email, password, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $4) RETURNING id`,
		"Admin", "admin@example.com", string(hash), now).Scan(&adminID)
	if err != nil {
		return fmt.Errorf("seed users: %w", err)
	}

	var engID, hrID int64
	err = s.db.QueryRowContext(ctx,
		`INSERT INTO departments (code, name, timezone, created_at, updated_at, created_by, updated_by)
		 VALUES ($1, $2, $3, $4, $4, $5, $5) RETURNING id`,
		"ENG", "Engineering", "UTC", now, adminID).Scan(&engID)
	if err != nil {
		return fmt.Errorf("seed departments: %w", err)
	}
	err = s.db.QueryRowContext(ctx,
		`INSERT INTO departments (code, name, timezone, parent_department_id, created_at, updated_at, created_by, updated_by)
		 VALUES ($1, $2, $3, $4, $5, $5, $6, $6) RETURNING id`,
		"HR", "Human Resources", "UTC", engID, now, adminID).Scan(&hrID)
	if err != nil {
		return fmt.Errorf("seed departments: %w", err)
	}

	var devID int64
	err = s.db.QueryRowContext(ctx,
		`INSERT INTO designations (department_id, name, created_at, updated_at, created_by, updated_by)
		 VALUES ($1, $2, $3, $3, $4, $4) RETURNING id`,
		engID, "Software Engineer", now, adminID).Scan(&devID)
	if err != nil {
		return fmt.Errorf("seed designations: %w", err)
	}

	var empID int64
	err = s.db.QueryRowContext(ctx,
		`INSERT INTO employees (department_id, designation_id, first_name, last_name, email, phone, hire_date, created_at, updated_at, created_by, updated_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8, $9, $9) RETURNING id`,
		engID, devID, "Ada", "Lovelace", "ada@example.com", "555-0100",
		now.AddDate(-2, 0, 0), now, adminID).Scan(&empID)
	if err != nil {
		return fmt.Errorf("seed employees: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO leave_types (name, annual_quota, created_at, updated_at, created_by, updated_by)
		 VALUES ($1, $2, $3, $3, $4, $4), ($5, $6, $3, $3, $4, $4)`,
		"Annual Leave", 20, now, adminID, "Sick Leave", 10)
	if err != nil {
		return fmt.Errorf("seed leave types: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO currencies (code, name, symbol, created_at, updated_at, created_by, updated_by)
		 VALUES ('USD', 'US Dollar', '$', $1, $1, $2, $2),
		        ('EUR', 'Euro', '€', $1, $1, $2, $2)`,
		now, adminID)
	if err != nil {
		return fmt.Errorf("seed currencies: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO salaries (employee_id, currency_code, basic, allowances, deductions, net, effective_date, created_at, updated_at, created_by, updated_by)
		 VALUES ($1, 'USD', 6000, 500, 200, 6300, $2, $3, $3, $4, $4)`,
		empID, now.AddDate(0, -1, 0), now, adminID)
	if err != nil {
		return fmt.Errorf("seed salaries: %w", err)
	}

	checkIn := time.Date(now.Year(), now.Month(), now.Day(), 9, 0, 0, 0, time.UTC)
	checkOut := checkIn.Add(8 * time.Hour)
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO attendance_records (employee_id, check_in, check_out, log_date, hours_worked, notes, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, 8, '', $5, $5)`,
		empID, checkIn, checkOut, checkIn.Format("2006-01-02"), now)
	if err != nil {
		return fmt.Errorf("seed attendance: %w", err)
	}

	return nil
}

// Clear drops all rows, children first.
func (s *Seeder) Clear(ctx context.Context) error {
	tables := []string{
		"audit_logs", "employee_documents", "salaries", "leaves",
		"attendance_records", "employees", "designations", "departments",
		"leave_types", "currencies", "users",
	}
	for _, t := range tables {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+t); err != nil {
			return fmt.Errorf("clear %s: %w", t, err)
		}
	}
	return nil
}
