package domain

import "time"

// Audit columns shared by the soft-deletable entities. The *By references
// point at users and stay nil when no acting user accompanied the write.
type AuditFields struct {
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at" db:"deleted_at"`
	CreatedBy *int64     `json:"created_by" db:"created_by"`
	UpdatedBy *int64     `json:"updated_by" db:"updated_by"`
	DeletedBy *int64     `json:"deleted_by" db:"deleted_by"`
}

// User represents the users table. Users hard-delete.
type User struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Password  string    `json:"-" db:"password"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Department represents the departments table. ParentDepartmentID forms a
// self-referential hierarchy; writes must not introduce cycles.
type Department struct {
	ID                 int64  `json:"id" db:"id"`
	Code               string `json:"code" db:"code"`
	Name               string `json:"name" db:"name"`
	Timezone           string `json:"timezone" db:"timezone"`
	ParentDepartmentID *int64 `json:"parent_department_id" db:"parent_department_id"`
	AuditFields

	Parent        *Department `json:"-"`
	CreatedByUser *User       `json:"-"`
	UpdatedByUser *User       `json:"-"`
	DeletedByUser *User       `json:"-"`
}

// Designation represents the designations table; each belongs to exactly one
// department.
type Designation struct {
	ID           int64  `json:"id" db:"id"`
	DepartmentID int64  `json:"department_id" db:"department_id"`
	Name         string `json:"name" db:"name"`
	AuditFields

	Department    *Department `json:"-"`
	CreatedByUser *User       `json:"-"`
	UpdatedByUser *User       `json:"-"`
	DeletedByUser *User       `json:"-"`
}

// Employee represents the employees table.
type Employee struct {
	ID            int64      `json:"id" db:"id"`
	UserID        *int64     `json:"user_id" db:"user_id"`
	DepartmentID  int64      `json:"department_id" db:"department_id"`
	DesignationID int64      `json:"designation_id" db:"designation_id"`
	FirstName     string     `json:"first_name" db:"first_name"`
	LastName      string     `json:"last_name" db:"last_name"`
	Email         string     `json:"email" db:"email"`
	Phone         string     `json:"phone" db:"phone"`
	HireDate      time.Time  `json:"hire_date" db:"hire_date"`
	AuditFields

	User          *User        `json:"-"`
	Department    *Department  `json:"-"`
	Designation   *Designation `json:"-"`
	CreatedByUser *User        `json:"-"`
	UpdatedByUser *User        `json:"-"`
	DeletedByUser *User        `json:"-"`
}

// AttendanceRecord represents the attendance_records table. Scoped to one
// employee and one calendar day; LogDate derives from CheckIn and
// HoursWorked from the check-in/check-out pair. Attendance hard-deletes.
type AttendanceRecord struct {
	ID          int64      `json:"id" db:"id"`
	EmployeeID  int64      `json:"employee_id" db:"employee_id"`
	CheckIn     time.Time  `json:"check_in" db:"check_in"`
	CheckOut    *time.Time `json:"check_out" db:"check_out"`
	LogDate     time.Time  `json:"log_date" db:"log_date"`
	HoursWorked *float64   `json:"hours_worked" db:"hours_worked"`
	Notes       string     `json:"notes" db:"notes"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`

	Employee *Employee `json:"-"`
}

// LeaveType represents the leave_types table.
type LeaveType struct {
	ID          int64  `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	AnnualQuota int    `json:"annual_quota" db:"annual_quota"`
	AuditFields

	CreatedByUser *User `json:"-"`
	UpdatedByUser *User `json:"-"`
	DeletedByUser *User `json:"-"`
}

// Leave statuses. Pending transitions once into one of the terminal states.
const (
	LeaveStatusPending   = "pending"
	LeaveStatusApproved  = "approved"
	LeaveStatusRejected  = "rejected"
	LeaveStatusCancelled = "cancelled"
)

// Leave represents the leaves table.
type Leave struct {
	ID          int64     `json:"id" db:"id"`
	EmployeeID  int64     `json:"employee_id" db:"employee_id"`
	LeaveTypeID int64     `json:"leave_type_id" db:"leave_type_id"`
	StartDate   time.Time `json:"start_date" db:"start_date"`
	EndDate     time.Time `json:"end_date" db:"end_date"`
	TotalDays   int       `json:"total_days" db:"total_days"`
	Reason      string    `json:"reason" db:"reason"`
	Status      string    `json:"status" db:"status"`
	AuditFields

	Employee      *Employee  `json:"-"`
	LeaveType     *LeaveType `json:"-"`
	CreatedByUser *User      `json:"-"`
	UpdatedByUser *User      `json:"-"`
	DeletedByUser *User      `json:"-"`
}

// Currency represents the currencies table, keyed by ISO code.
type Currency struct {
	ID     int64  `json:"id" db:"id"`
	Code   string `json:"code" db:"code"`
	Name   string `json:"name" db:"name"`
	Symbol string `json:"symbol" db:"symbol"`
	AuditFields
}

// Salary represents the salaries table. Net is derived as
// basic + allowances - deductions.
type Salary struct {
	ID            int64     `json:"id" db:"id"`
	EmployeeID    int64     `json:"employee_id" db:"employee_id"`
	CurrencyCode  string    `json:"currency_code" db:"currency_code"`
	Basic         float64   `json:"basic" db:"basic"`
	Allowances    float64   `json:"allowances" db:"allowances"`
	Deductions    float64   `json:"deductions" db:"deductions"`
	Net           float64   `json:"net" db:"net"`
	EffectiveDate time.Time `json:"effective_date" db:"effective_date"`
	AuditFields

	Employee      *Employee `json:"-"`
	Currency      *Currency `json:"-"`
	CreatedByUser *User     `json:"-"`
	UpdatedByUser *User     `json:"-"`
	DeletedByUser *User     `json:"-"`
}

// EmployeeDocument represents the employee_documents table. FilePath points
// into the external file store.
type EmployeeDocument struct {
	ID         int64  `json:"id" db:"id"`
	EmployeeID int64  `json:"employee_id" db:"employee_id"`
	Title      string `json:"title" db:"title"`
	FilePath   string `json:"file_path" db:"file_path"`
	MimeType   string `json:"mime_type" db:"mime_type"`
	SizeBytes  int64  `json:"size_bytes" db:"size_bytes"`
	AuditFields

	Employee      *Employee `json:"-"`
	CreatedByUser *User     `json:"-"`
	UpdatedByUser *User     `json:"-"`
	DeletedByUser *User     `json:"-"`
}

// AuditLog represents the audit_logs table, appended on every write to a
// soft-deletable resource. Read-only over the API.
type AuditLog struct {
	ID           int64     `json:"id" db:"id"`
	TableName    string    `json:"table_name" db:"table_name"`
	RecordID     int64     `json:"record_id" db:"record_id"`
	Action       string    `json:"action" db:"action"`
	ActingUserID *int64    `json:"acting_user_id" db:"acting_user_id"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`

	ActingUser *User `json:"-"`
}

// Option is the trimmed projection used by the form-data endpoints.
type Option struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CurrencyOption is the trimmed currency projection for form selects.
type CurrencyOption struct {
	Code string `json:"code"`
	Name string `json:"name"`
}
