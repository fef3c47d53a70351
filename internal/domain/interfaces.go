package domain

import (
	"context"

	"github.com/worklane/hrms/internal/query"
)

// Repository interfaces for the HR resources. List operations consume the
// normalized query descriptor; eager-load sets are fixed per repository, not
// client-controlled. GetByID excludes soft-deleted rows; GetAnyByID is the
// explicit bypass for audit lookups.

type UserRepository interface {
	List(ctx context.Context, desc query.Descriptor) (*Page[User], error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, u *User) error
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id int64) error
	Options(ctx context.Context) ([]Option, error)
}

type DepartmentRepository interface {
	List(ctx context.Context, desc query.Descriptor) (*Page[Department], error)
	GetByID(ctx context.Context, id int64) (*Department, error)
	GetAnyByID(ctx context.Context, id int64) (*Department, error)
	Create(ctx context.Context, d *Department) error
	Update(ctx context.Context, d *Department) error
	SoftDelete(ctx context.Context, id int64, actor *int64) error
	Options(ctx context.Context) ([]Option, error)
}

type DesignationRepository interface {
	List(ctx context.Context, desc query.Descriptor) (*Page[Designation], error)
	GetByID(ctx context.Context, id int64) (*Designation, error)
	GetAnyByID(ctx context.Context, id int64) (*Designation, error)
	Create(ctx context.Context, d *Designation) error
	Update(ctx context.Context, d *Designation) error
	SoftDelete(ctx context.Context, id int64, actor *int64) error
	Options(ctx context.Context) ([]Option, error)
}

type EmployeeRepository interface {
	List(ctx context.Context, desc query.Descriptor) (*Page[Employee], error)
	GetByID(ctx context.Context, id int64) (*Employee, error)
	GetAnyByID(ctx context.Context, id int64) (*Employee, error)
	Create(ctx context.Context, e *Employee) error
	Update(ctx context.Context, e *Employee) error
	SoftDelete(ctx context.Context, id int64, actor *int64) error
	Options(ctx context.Context) ([]Option, error)
}

type AttendanceRepository interface {
	List(ctx context.Context, desc query.Descriptor) (*Page[AttendanceRecord], error)
	GetByID(ctx context.Context, id int64) (*AttendanceRecord, error)
	Create(ctx context.Context, a *AttendanceRecord) error
	Update(ctx context.Context, a *AttendanceRecord) error
	Delete(ctx context.Context, id int64) error
}

type LeaveTypeRepository interface {
	List(ctx context.Context, desc query.Descriptor) (*Page[LeaveType], error)
	GetByID(ctx context.Context, id int64) (*LeaveType, error)
	GetAnyByID(ctx context.Context, id int64) (*LeaveType, error)
	Create(ctx context.Context, lt *LeaveType) error
	Update(ctx context.Context, lt *LeaveType) error
	SoftDelete(ctx context.Context, id int64, actor *int64) error
	Options(ctx context.Context) ([]Option, error)
}

type LeaveRepository interface {
	List(ctx context.Context, desc query.Descriptor) (*Page[Leave], error)
	GetByID(ctx context.Context, id int64) (*Leave, error)
	GetAnyByID(ctx context.Context, id int64) (*Leave, error)
	Create(ctx context.Context, l *Leave) error
	Update(ctx context.Context, l *Leave) error
	SoftDelete(ctx context.Context, id int64, actor *int64) error
}

type CurrencyRepository interface {
	List(ctx context.Context, desc query.Descriptor) (*Page[Currency], error)
	GetByID(ctx context.Context, id int64) (*Currency, error)
	GetByCode(ctx context.Context, code string) (*Currency, error)
	Create(ctx context.Context, c *Currency) error
	Update(ctx context.Context, c *Currency) error
	SoftDelete(ctx context.Context, id int64, actor *int64) error
	Options(ctx context.Context) ([]CurrencyOption, error)
}

type SalaryRepository interface {
	List(ctx context.Context, desc query.Descriptor) (*Page[Salary], error)
	GetByID(ctx context.Context, id int64) (*Salary, error)
	GetAnyByID(ctx context.Context, id int64) (*Salary, error)
	Create(ctx context.Context, s *Salary) error
	Update(ctx context.Context, s *Salary) error
	SoftDelete(ctx context.Context, id int64, actor *int64) error
}

type DocumentRepository interface {
	List(ctx context.Context, desc query.Descriptor) (*Page[EmployeeDocument], error)
	GetByID(ctx context.Context, id int64) (*EmployeeDocument, error)
	GetAnyByID(ctx context.Context, id int64) (*EmployeeDocument, error)
	Create(ctx context.Context, d *EmployeeDocument) error
	Update(ctx context.Context, d *EmployeeDocument) error
	SoftDelete(ctx context.Context, id int64, actor *int64) error
}

type AuditLogRepository interface {
	List(ctx context.Context, desc query.Descriptor) (*Page[AuditLog], error)
	GetByID(ctx context.Context, id int64) (*AuditLog, error)
	Create(ctx context.Context, entry *AuditLog) error
}
