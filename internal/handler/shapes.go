package handler

import (
	"time"

	"github.com/worklane/hrms/internal/domain"
	"github.com/worklane/hrms/internal/service/serviceutils"
)

// Response shaping. Each resource renders to a map so that relation keys
// appear exactly when the repository eager-loaded them: a loaded relation
// with a null foreign key renders as an explicit null, while a relation
// outside the resource's eager-load set has no key at all.

const dateLayout = "2006-01-02"

func shapePage[T any](p *domain.Page[T], shape func(*T) map[string]interface{}) ([]map[string]interface{}, serviceutils.PageMeta) {
	items := make([]map[string]interface{}, len(p.Items))
	for i := range p.Items {
		items[i] = shape(&p.Items[i])
	}
	meta := serviceutils.PageMeta{
		CurrentPage: p.Page,
		PerPage:     p.PerPage,
		Total:       p.Total,
		LastPage:    p.LastPage,
	}
	return items, meta
}

func userRef(u *domain.User) interface{} {
	if u == nil {
		return nil
	}
	return map[string]interface{}{"id": u.ID, "name": u.Name}
}

func departmentRef(d *domain.Department) interface{} {
	if d == nil {
		return nil
	}
	return map[string]interface{}{"id": d.ID, "code": d.Code, "name": d.Name}
}

func designationRef(d *domain.Designation) interface{} {
	if d == nil {
		return nil
	}
	return map[string]interface{}{"id": d.ID, "name": d.Name}
}

func employeeRef(e *domain.Employee) interface{} {
	if e == nil {
		return nil
	}
	return map[string]interface{}{
		"id":         e.ID,
		"first_name": e.FirstName,
		"last_name":  e.LastName,
		"email":      e.Email,
	}
}

func leaveTypeRef(lt *domain.LeaveType) interface{} {
	if lt == nil {
		return nil
	}
	return map[string]interface{}{"id": lt.ID, "name": lt.Name, "annual_quota": lt.AnnualQuota}
}

func currencyRef(c *domain.Currency) interface{} {
	if c == nil {
		return nil
	}
	return map[string]interface{}{"id": c.ID, "code": c.Code, "name": c.Name, "symbol": c.Symbol}
}

func nullableTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.UTC()
}

// auditInto adds the audit columns plus the eager-loaded acting-user
// relations onto an already-shaped resource map.
func auditInto(m map[string]interface{}, f domain.AuditFields, createdBy, updatedBy, deletedBy *domain.User) {
	m["created_at"] = f.CreatedAt.UTC()
	m["updated_at"] = f.UpdatedAt.UTC()
	m["deleted_at"] = nullableTime(f.DeletedAt)
	m["created_by"] = userRef(createdBy)
	m["updated_by"] = userRef(updatedBy)
	m["deleted_by"] = userRef(deletedBy)
}

func shapeUser(u *domain.User) map[string]interface{} {
	return map[string]interface{}{
		"id":         u.ID,
		"name":       u.Name,
		"email":      u.Email,
		"created_at": u.CreatedAt.UTC(),
		"updated_at": u.UpdatedAt.UTC(),
	}
}

func shapeDepartment(d *domain.Department) map[string]interface{} {
	m := map[string]interface{}{
		"id":                   d.ID,
		"code":                 d.Code,
		"name":                 d.Name,
		"timezone":             d.Timezone,
		"parent_department_id": d.ParentDepartmentID,
		"parent":               departmentRef(d.Parent),
	}
	auditInto(m, d.AuditFields, d.CreatedByUser, d.UpdatedByUser, d.DeletedByUser)
	return m
}

func shapeDesignation(d *domain.Designation) map[string]interface{} {
	m := map[string]interface{}{
		"id":            d.ID,
		"department_id": d.DepartmentID,
		"name":          d.Name,
		"department":    departmentRef(d.Department),
	}
	auditInto(m, d.AuditFields, d.CreatedByUser, d.UpdatedByUser, d.DeletedByUser)
	return m
}

func shapeEmployee(e *domain.Employee) map[string]interface{} {
	m := map[string]interface{}{
		"id":             e.ID,
		"user_id":        e.UserID,
		"department_id":  e.DepartmentID,
		"designation_id": e.DesignationID,
		"first_name":     e.FirstName,
		"last_name":      e.LastName,
		"email":          e.Email,
		"phone":          e.Phone,
		"hire_date":      e.HireDate.Format(dateLayout),
		"user":           userRef(e.User),
		"department":     departmentRef(e.Department),
		"designation":    designationRef(e.Designation),
	}
	auditInto(m, e.AuditFields, e.CreatedByUser, e.UpdatedByUser, e.DeletedByUser)
	return m
}

// Attendance is the one resource whose output keys diverge from the column
// names: check_in/check_out render as checkIn/checkOut.
func shapeAttendance(a *domain.AttendanceRecord) map[string]interface{} {
	return map[string]interface{}{
		"id":           a.ID,
		"employee_id":  a.EmployeeID,
		"checkIn":      a.CheckIn.UTC(),
		"checkOut":     nullableTime(a.CheckOut),
		"log_date":     a.LogDate.Format(dateLayout),
		"hours_worked": a.HoursWorked,
		"notes":        a.Notes,
		"created_at":   a.CreatedAt.UTC(),
		"updated_at":   a.UpdatedAt.UTC(),
		"employee":     employeeRef(a.Employee),
	}
}

func shapeLeaveType(lt *domain.LeaveType) map[string]interface{} {
	m := map[string]interface{}{
		"id":           lt.ID,
		"name":         lt.Name,
		"annual_quota": lt.AnnualQuota,
	}
	auditInto(m, lt.AuditFields, lt.CreatedByUser, lt.UpdatedByUser, lt.DeletedByUser)
	return m
}

func shapeLeave(l *domain.Leave) map[string]interface{} {
	m := map[string]interface{}{
		"id":            l.ID,
		"employee_id":   l.EmployeeID,
		"leave_type_id": l.LeaveTypeID,
		"start_date":    l.StartDate.Format(dateLayout),
		"end_date":      l.EndDate.Format(dateLayout),
		"total_days":    l.TotalDays,
		"reason":        l.Reason,
		"status":        l.Status,
		"employee":      employeeRef(l.Employee),
		"leave_type":    leaveTypeRef(l.LeaveType),
	}
	auditInto(m, l.AuditFields, l.CreatedByUser, l.UpdatedByUser, l.DeletedByUser)
	return m
}

func shapeCurrency(c *domain.Currency) map[string]interface{} {
	// Currencies carry no eager-loaded relations; the audit references stay
	// raw ids.
	return map[string]interface{}{
		"id":         c.ID,
		"code":       c.Code,
		"name":       c.Name,
		"symbol":     c.Symbol,
		"created_at": c.CreatedAt.UTC(),
		"updated_at": c.UpdatedAt.UTC(),
		"deleted_at": nullableTime(c.DeletedAt),
		"created_by": c.CreatedBy,
		"updated_by": c.UpdatedBy,
		"deleted_by": c.DeletedBy,
	}
}

func shapeSalary(s *domain.Salary) map[string]interface{} {
	m := map[string]interface{}{
		"id":             s.ID,
		"employee_id":    s.EmployeeID,
		"currency_code":  s.CurrencyCode,
		"basic":          s.Basic,
		"allowances":     s.Allowances,
		"deductions":     s.Deductions,
		"net":            s.Net,
		"effective_date": s.EffectiveDate.Format(dateLayout),
		"employee":       employeeRef(s.Employee),
		"currency":       currencyRef(s.Currency),
	}
	auditInto(m, s.AuditFields, s.CreatedByUser, s.UpdatedByUser, s.DeletedByUser)
	return m
}

func shapeDocument(d *domain.EmployeeDocument) map[string]interface{} {
	m := map[string]interface{}{
		"id":          d.ID,
		"employee_id": d.EmployeeID,
		"title":       d.Title,
		"file_path":   d.FilePath,
		"mime_type":   d.MimeType,
		"size_bytes":  d.SizeBytes,
		"employee":    employeeRef(d.Employee),
	}
	auditInto(m, d.AuditFields, d.CreatedByUser, d.UpdatedByUser, d.DeletedByUser)
	return m
}

func shapeAuditLog(a *domain.AuditLog) map[string]interface{} {
	return map[string]interface{}{
		"id":             a.ID,
		"table_name":     a.TableName,
		"record_id":      a.RecordID,
		"action":         a.Action,
		"acting_user_id": a.ActingUserID,
		"acting_user":    userRef(a.ActingUser),
		"created_at":     a.CreatedAt.UTC(),
	}
}
