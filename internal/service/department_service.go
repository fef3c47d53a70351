package service

import (
	"context"

	"github.com/worklane/hrms/internal/apperror"
	"github.com/worklane/hrms/internal/domain"
	"github.com/worklane/hrms/internal/query"
	"github.com/worklane/hrms/internal/validate"
)

// maxHierarchyDepth bounds the parent-chain walk so a corrupted hierarchy
// cannot loop forever.
const maxHierarchyDepth = 64

// DepartmentService handles business logic for departments, including the
// acyclicity rule over the parent hierarchy.
type DepartmentService struct {
	repo  domain.DepartmentRepository
	audit domain.AuditLogRepository
}

func NewDepartmentService(repo domain.DepartmentRepository, audit domain.AuditLogRepository) *DepartmentService {
	return &DepartmentService{repo: repo, audit: audit}
}

type CreateDepartmentInput struct {
	Code               string `json:"code"`
	Name               string `json:"name"`
	Timezone           string `json:"timezone"`
	ParentDepartmentID *int64 `json:"parent_department_id"`
}

type UpdateDepartmentInput struct {
	Code               *string `json:"code"`
	Name               *string `json:"name"`
	Timezone           *string `json:"timezone"`
	ParentDepartmentID *int64  `json:"parent_department_id"`
	ClearParent        bool    `json:"clear_parent"`
}

func (ds *DepartmentService) List(ctx context.Context, desc query.Descriptor) (*domain.Page[domain.Department], error) {
	return ds.repo.List(ctx, desc)
}

func (ds *DepartmentService) Get(ctx context.Context, id int64) (*domain.Department, error) {
	return ds.repo.GetByID(ctx, id)
}

func (ds *DepartmentService) Create(ctx context.Context, in CreateDepartmentInput, actor *int64) (*domain.Department, error) {
	errs := validate.Errors{}
	validate.RequiredString(errs, "code", in.Code)
	validate.MaxLen(errs, "code", in.Code, 20)
	validate.RequiredString(errs, "name", in.Name)
	validate.MaxLen(errs, "name", in.Name, 150)
	validate.MaxLen(errs, "timezone", in.Timezone, 64)
	if !errs.Empty() {
		return nil, apperror.Validation(errs)
	}

	if in.ParentDepartmentID != nil {
		if _, err := ds.repo.GetByID(ctx, *in.ParentDepartmentID); err != nil {
			if apperror.GetCode(err) != apperror.CodeNotFound {
				return nil, err
			}
			return nil, apperror.ValidationField("parent_department_id", "the selected parent department does not exist")
		}
	}

	d := &domain.Department{
		Code:               in.Code,
		Name:               in.Name,
		Timezone:           in.Timezone,
		ParentDepartmentID: in.ParentDepartmentID,
	}
	d.CreatedBy = actor
	d.UpdatedBy = actor

	if err := ds.repo.Create(ctx, d); err != nil {
		return nil, err
	}
	recordAudit(ctx, ds.audit, "departments", d.ID, auditActionCreate, actor)

	return ds.repo.GetByID(ctx, d.ID)
}

func (ds *DepartmentService) Update(ctx context.Context, id int64, in UpdateDepartmentInput, actor *int64) (*domain.Department, error) {
	d, err := ds.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	errs := validate.Errors{}
	if in.Code != nil {
		d.Code = *in.Code
		validate.RequiredString(errs, "code", d.Code)
		validate.MaxLen(errs, "code", d.Code, 20)
	}
	if in.Name != nil {
		d.Name = *in.Name
		validate.RequiredString(errs, "name", d.Name)
		validate.MaxLen(errs, "name", d.Name, 150)
	}
	if in.Timezone != nil {
		d.Timezone = *in.Timezone
		validate.MaxLen(errs, "timezone", d.Timezone, 64)
	}
	if !errs.Empty() {
		return nil, apperror.Validation(errs)
	}

	switch {
	case in.ClearParent:
		d.ParentDepartmentID = nil
	case in.ParentDepartmentID != nil:
		if err := ds.checkParent(ctx, id, *in.ParentDepartmentID); err != nil {
			return nil, err
		}
		d.ParentDepartmentID = in.ParentDepartmentID
	}

	d.UpdatedBy = actor
	if err := ds.repo.Update(ctx, d); err != nil {
		return nil, err
	}
	recordAudit(ctx, ds.audit, "departments", d.ID, auditActionUpdate, actor)

	return ds.repo.GetByID(ctx, d.ID)
}

func (ds *DepartmentService) Delete(ctx context.Context, id int64, actor *int64) error {
	if err := ds.repo.SoftDelete(ctx, id, actor); err != nil {
		return err
	}
	recordAudit(ctx, ds.audit, "departments", id, auditActionDelete, actor)
	return nil
}

func (ds *DepartmentService) Options(ctx context.Context) ([]domain.Option, error) {
	return ds.repo.Options(ctx)
}

// checkParent rejects a parent assignment that would make the hierarchy
// cyclic, walking the proposed parent's chain up to the root.
func (ds *DepartmentService) checkParent(ctx context.Context, id, parentID int64) error {
	if parentID == id {
		return apperror.ValidationField("parent_department_id", "a department cannot be its own parent")
	}

	current := parentID
	for depth := 0; depth < maxHierarchyDepth; depth++ {
		parent, err := ds.repo.GetByID(ctx, current)
		if err != nil {
			if apperror.GetCode(err) == apperror.CodeNotFound {
				return apperror.ValidationField("parent_department_id", "the selected parent department does not exist")
			}
			return err
		}
		if parent.ParentDepartmentID == nil {
			return nil
		}
		if *parent.ParentDepartmentID == id {
			return apperror.ValidationField("parent_department_id", "the selected parent would create a cycle in the department hierarchy")
		}
		current = *parent.ParentDepartmentID
	}
	return apperror.ValidationField("parent_department_id", "the department hierarchy is too deep")
}
