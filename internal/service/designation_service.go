package service

import (
	"context"

	"github.com/worklane/hrms/internal/apperror"
	"github.com/worklane/hrms/internal/domain"
	"github.com/worklane/hrms/internal/query"
	"github.com/worklane/hrms/internal/validate"
)

// DesignationService handles business logic for designations.
type DesignationService struct {
	repo        domain.DesignationRepository
	departments domain.DepartmentRepository
	audit       domain.AuditLogRepository
}

func NewDesignationService(repo domain.DesignationRepository, departments domain.DepartmentRepository, audit domain.AuditLogRepository) *DesignationService {
	return &DesignationService{repo: repo, departments: departments, audit: audit}
}

type CreateDesignationInput struct {
	DepartmentID int64  `json:"department_id"`
	Name         string `json:"name"`
}

type UpdateDesignationInput struct {
	DepartmentID *int64  `json:"department_id"`
	Name         *string `json:"name"`
}

func (ds *DesignationService) List(ctx context.Context, desc query.Descriptor) (*domain.Page[domain.Designation], error) {
	return ds.repo.List(ctx, desc)
}

func (ds *DesignationService) Get(ctx context.Context, id int64) (*domain.Designation, error) {
	return ds.repo.GetByID(ctx, id)
}

func (ds *DesignationService) Create(ctx context.Context, in CreateDesignationInput, actor *int64) (*domain.Designation, error) {
	errs := validate.Errors{}
	validate.RequiredString(errs, "name", in.Name)
	validate.MaxLen(errs, "name", in.Name, 150)
	validate.RequiredID(errs, "department_id", in.DepartmentID)
	if !errs.Empty() {
		return nil, apperror.Validation(errs)
	}

	if _, err := ds.departments.GetByID(ctx, in.DepartmentID); err != nil {
		if apperror.GetCode(err) != apperror.CodeNotFound {
			return nil, err
		}
		return nil, apperror.ValidationField("department_id", "the selected department does not exist")
	}

	d := &domain.Designation{
		DepartmentID: in.DepartmentID,
		Name:         in.Name,
	}
	d.CreatedBy = actor
	d.UpdatedBy = actor

	if err := ds.repo.Create(ctx, d); err != nil {
		return nil, err
	}
	recordAudit(ctx, ds.audit, "designations", d.ID, auditActionCreate, actor)

	return ds.repo.GetByID(ctx, d.ID)
}

func (ds *DesignationService) Update(ctx context.Context, id int64, in UpdateDesignationInput, actor *int64) (*domain.Designation, error) {
	d, err := ds.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	errs := validate.Errors{}
	if in.Name != nil {
		d.Name = *in.Name
		validate.RequiredString(errs, "name", d.Name)
		validate.MaxLen(errs, "name", d.Name, 150)
	}
	if in.DepartmentID != nil {
		d.DepartmentID = *in.DepartmentID
		validate.RequiredID(errs, "department_id", d.DepartmentID)
	}
	if !errs.Empty() {
		return nil, apperror.Validation(errs)
	}

	if in.DepartmentID != nil {
		if _, err := ds.departments.GetByID(ctx, d.DepartmentID); err != nil {
			if apperror.GetCode(err) != apperror.CodeNotFound {
				return nil, err
			}
			return nil, apperror.ValidationField("department_id", "the selected department does not exist")
		}
	}

	d.UpdatedBy = actor
	if err := ds.repo.Update(ctx, d); err != nil {
		return nil, err
	}
	recordAudit(ctx, ds.audit, "designations", d.ID, auditActionUpdate, actor)

	return ds.repo.GetByID(ctx, d.ID)
}

func (ds *DesignationService) Delete(ctx context.Context, id int64, actor *int64) error {
	if err := ds.repo.SoftDelete(ctx, id, actor); err != nil {
		return err
	}
	recordAudit(ctx, ds.audit, "designations", id, auditActionDelete, actor)
	return nil
}

func (ds *DesignationService) Options(ctx context.Context) ([]domain.Option, error) {
	return ds.repo.Options(ctx)
}
