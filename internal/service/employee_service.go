package service

import (
	"context"

	"github.com/worklane/hrms/internal/apperror"
	"github.com/worklane/hrms/internal/database"
	"github.com/worklane/hrms/internal/domain"
	"github.com/worklane/hrms/internal/logger"
	"github.com/worklane/hrms/internal/query"
	"github.com/worklane/hrms/internal/validate"
)

// EmployeeService handles business logic for employees.
type EmployeeService struct {
	repo         domain.EmployeeRepository
	departments  domain.DepartmentRepository
	designations domain.DesignationRepository
	users        domain.UserRepository
	audit        domain.AuditLogRepository
	search       *database.EmployeeIndex
}

func NewEmployeeService(
	repo domain.EmployeeRepository,
	departments domain.DepartmentRepository,
	designations domain.DesignationRepository,
	users domain.UserRepository,
	audit domain.AuditLogRepository,
	search *database.EmployeeIndex,
) *EmployeeService {
	return &EmployeeService{
		repo:         repo,
		departments:  departments,
		designations: designations,
		users:        users,
		audit:        audit,
		search:       search,
	}
}

type CreateEmployeeInput struct {
	UserID        *int64 `json:"user_id"`
	DepartmentID  int64  `json:"department_id"`
	DesignationID int64  `json:"designation_id"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	HireDate      string `json:"hire_date"`
}

type UpdateEmployeeInput struct {
	UserID        *int64  `json:"user_id"`
	DepartmentID  *int64  `json:"department_id"`
	DesignationID *int64  `json:"designation_id"`
	FirstName     *string `json:"first_name"`
	LastName      *string `json:"last_name"`
	Email         *string `json:"email"`
	Phone         *string `json:"phone"`
	HireDate      *string `json:"hire_date"`
}

func (es *EmployeeService) List(ctx context.Context, desc query.Descriptor) (*domain.Page[domain.Employee], error) {
	return es.repo.List(ctx, desc)
}

func (es *EmployeeService) Get(ctx context.Context, id int64) (*domain.Employee, error) {
	return es.repo.GetByID(ctx, id)
}

func (es *EmployeeService) Create(ctx context.Context, in CreateEmployeeInput, actor *int64) (*domain.Employee, error) {
	errs := validate.Errors{}
	validate.RequiredString(errs, "first_name", in.FirstName)
	validate.MaxLen(errs, "first_name", in.FirstName, 100)
	validate.RequiredString(errs, "last_name", in.LastName)
	validate.MaxLen(errs, "last_name", in.LastName, 100)
	validate.RequiredString(errs, "email", in.Email)
	validate.Email(errs, "email", in.Email)
	validate.MaxLen(errs, "phone", in.Phone, 30)
	validate.RequiredID(errs, "department_id", in.DepartmentID)
	validate.RequiredID(errs, "designation_id", in.DesignationID)
	hireDate := validate.Date(errs, "hire_date", in.HireDate)
	if !errs.Empty() {
		return nil, apperror.Validation(errs)
	}

	if err := es.checkReferences(ctx, errs, in.UserID, &in.DepartmentID, &in.DesignationID); err != nil {
		return nil, err
	}
	if !errs.Empty() {
		return nil, apperror.Validation(errs)
	}

	e := &domain.Employee{
		UserID:        in.UserID,
		DepartmentID:  in.DepartmentID,
		DesignationID: in.DesignationID,
		FirstName:     in.FirstName,
		LastName:      in.LastName,
		Email:         in.Email,
		Phone:         in.Phone,
		HireDate:      hireDate,
	}
	e.CreatedBy = actor
	e.UpdatedBy = actor

	if err := es.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	recordAudit(ctx, es.audit, "employees", e.ID, auditActionCreate, actor)
	es.syncSearchIndex(ctx, e)

	return es.repo.GetByID(ctx, e.ID)
}

func (es *EmployeeService) Update(ctx context.Context, id int64, in UpdateEmployeeInput, actor *int64) (*domain.Employee, error) {
	e, err := es.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	errs := validate.Errors{}
	if in.FirstName != nil {
		e.FirstName = *in.FirstName
		validate.RequiredString(errs, "first_name", e.FirstName)
		validate.MaxLen(errs, "first_name", e.FirstName, 100)
	}
	if in.LastName != nil {
		e.LastName = *in.LastName
		validate.RequiredString(errs, "last_name", e.LastName)
		validate.MaxLen(errs, "last_name", e.LastName, 100)
	}
	if in.Email != nil {
		e.Email = *in.Email
		validate.RequiredString(errs, "email", e.Email)
		validate.Email(errs, "email", e.Email)
	}
	if in.Phone != nil {
		e.Phone = *in.Phone
		validate.MaxLen(errs, "phone", e.Phone, 30)
	}
	if in.HireDate != nil {
		e.HireDate = validate.Date(errs, "hire_date", *in.HireDate)
	}
	if in.DepartmentID != nil {
		e.DepartmentID = *in.DepartmentID
		validate.RequiredID(errs, "department_id", e.DepartmentID)
	}
	if in.DesignationID != nil {
		e.DesignationID = *in.DesignationID
		validate.RequiredID(errs, "designation_id", e.DesignationID)
	}
	if in.UserID != nil {
		e.UserID = in.UserID
	}
	if !errs.Empty() {
		return nil, apperror.Validation(errs)
	}

	if err := es.checkReferences(ctx, errs, in.UserID, in.DepartmentID, in.DesignationID); err != nil {
		return nil, err
	}
	if !errs.Empty() {
		return nil, apperror.Validation(errs)
	}

	e.UpdatedBy = actor
	if err := es.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	recordAudit(ctx, es.audit, "employees", e.ID, auditActionUpdate, actor)
	es.syncSearchIndex(ctx, e)

	return es.repo.GetByID(ctx, e.ID)
}

func (es *EmployeeService) Delete(ctx context.Context, id int64, actor *int64) error {
	if err := es.repo.SoftDelete(ctx, id, actor); err != nil {
		return err
	}
	recordAudit(ctx, es.audit, "employees", id, auditActionDelete, actor)

	if err := es.search.Remove(ctx, id); err != nil {
		logger.ErrorLog(ctx, "failed to remove employee from search index", err)
	}
	return nil
}

// Search queries the full-text employee index. When no index is configured
// the feature degrades to an empty result set.
func (es *EmployeeService) Search(ctx context.Context, q string, size int) ([]database.EmployeeDoc, error) {
	if size <= 0 || size > 100 {
		size = 20
	}
	docs, err := es.search.Search(ctx, q, size)
	if err != nil {
		return nil, err
	}
	if docs == nil {
		docs = []database.EmployeeDoc{}
	}
	return docs, nil
}

// FormData bundles the select options an employee form needs.
func (es *EmployeeService) FormData(ctx context.Context) (map[string]interface{}, error) {
	departments, err := es.departments.Options(ctx)
	if err != nil {
		return nil, err
	}
	designations, err := es.designations.Options(ctx)
	if err != nil {
		return nil, err
	}
	users, err := es.users.Options(ctx)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"departments":  departments,
		"designations": designations,
		"users":        users,
	}, nil
}

// checkReferences validates the foreign keys that are being set. A nil id
// means the field is not part of this write.
func (es *EmployeeService) checkReferences(ctx context.Context, errs validate.Errors, userID, departmentID, designationID *int64) error {
	if departmentID != nil {
		if _, err := es.departments.GetByID(ctx, *departmentID); err != nil {
			if apperror.GetCode(err) != apperror.CodeNotFound {
				return err
			}
			errs.Add("department_id", "the selected department does not exist")
		}
	}
	if designationID != nil {
		if _, err := es.designations.GetByID(ctx, *designationID); err != nil {
			if apperror.GetCode(err) != apperror.CodeNotFound {
				return err
			}
			errs.Add("designation_id", "the selected designation does not exist")
		}
	}
	if userID != nil {
		if _, err := es.users.GetByID(ctx, *userID); err != nil {
			if apperror.GetCode(err) != apperror.CodeNotFound {
				return err
			}
			errs.Add("user_id", "the selected user does not exist")
		}
	}
	return nil
}

// syncSearchIndex is best-effort; indexing failures never fail the write.
func (es *EmployeeService) syncSearchIndex(ctx context.Context, e *domain.Employee) {
	err := es.search.Index(ctx, database.EmployeeDoc{
		ID:        e.ID,
		FirstName: e.FirstName,
		LastName:  e.LastName,
		Email:     e.Email,
		HireDate:  e.HireDate,
	})
	if err != nil {
		logger.ErrorLog(ctx, "failed to index employee for search", err)
	}
}
